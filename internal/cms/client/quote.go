package client

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
)

// QuoteFile is one design file attached to a quote request.
type QuoteFile struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// QuoteRequest carries the fields of the public quote form.
type QuoteRequest struct {
	Service        string
	Quantity       int
	DesignUnit     string
	Material       string
	MaterialType   string
	Color          string
	Specifications string
	Email          string
	Mobile         string
	Files          []QuoteFile
}

func (q QuoteRequest) fields() [][2]string {
	return [][2]string{
		{"selectedService", q.Service},
		{"quantity", strconv.Itoa(q.Quantity)},
		{"designUnit", q.DesignUnit},
		{"selectedMaterial", q.Material},
		{"selectedMaterialType", q.MaterialType},
		{"color", q.Color},
		{"specifications", q.Specifications},
		{"email", q.Email},
		{"mobile", q.Mobile},
	}
}

// SubmitQuote streams q to the backend as multipart form data and returns
// the backend's message id.
func (c *Client) SubmitQuote(ctx context.Context, q QuoteRequest) (string, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeQuote(mw, q))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+QuotePath, pr)
	if err != nil {
		pr.Close()
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	env, err := c.send(ctx, "submit_quote", c.quoteClient, req)
	if err != nil {
		return "", err
	}
	return env.MessageID, nil
}

func writeQuote(mw *multipart.Writer, q QuoteRequest) error {
	for _, f := range q.fields() {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return err
		}
	}
	for _, f := range q.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, f.Name))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := mw.CreatePart(h)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, f.Body); err != nil {
			return fmt.Errorf("copy %s: %w", f.Name, err)
		}
	}
	return mw.Close()
}
