package site

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fonovalabs/fonova-web/internal/cms/client"
	"github.com/fonovalabs/fonova-web/internal/cms/domain"
	"github.com/fonovalabs/fonova-web/internal/site/content"
	"github.com/fonovalabs/fonova-web/internal/site/feed"
	"github.com/fonovalabs/fonova-web/internal/site/quote"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSource[T any] struct {
	items []T
	err   error
}

func (s stubSource[T]) ListPublished(context.Context) ([]T, error) { return s.items, s.err }

type recordingSubmitter struct {
	got   client.QuoteRequest
	files map[string]string
	err   error
}

func (r *recordingSubmitter) SubmitQuote(_ context.Context, q client.QuoteRequest) (string, error) {
	r.got = q
	r.files = map[string]string{}
	for _, f := range q.Files {
		b, _ := io.ReadAll(f.Body)
		r.files[f.Name] = string(b)
	}
	if r.err != nil {
		return "", r.err
	}
	return "msg-42", nil
}

func setup(t *testing.T, projectsErr error, sub *recordingSubmitter) *gin.Engine {
	t.Helper()
	doc, err := content.Load("fonova", "")
	require.NoError(t, err)

	f := feed.New(
		stubSource[domain.Testimonial]{err: errors.New("down")},
		stubSource[domain.Project]{items: []domain.Project{{ID: "p1", Name: "Gear", Media: []domain.Media{}}}, err: projectsErr},
		feed.NewMemoryCache(), doc.PublishedTestimonials(), 0)

	r := gin.New()
	New(doc, f, quote.DefaultCatalog, sub, 1).Register(r.Group("/api/v1"))
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestSections(t *testing.T) {
	r := setup(t, nil, &recordingSubmitter{})

	w := get(r, "/api/v1/sections")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Brand    string                     `json:"brand"`
		Order    []string                   `json:"order"`
		Sections map[string]json.RawMessage `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "fonova", body.Brand)
	assert.Equal(t, content.SectionNames, body.Order)
	assert.Len(t, body.Sections, len(content.SectionNames))

	w = get(r, "/api/v1/sections/contact")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "info@fonovalabs.com")

	w = get(r, "/api/v1/sections/pricing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFeedEndpoints(t *testing.T) {
	r := setup(t, nil, &recordingSubmitter{})

	w := get(r, "/api/v1/testimonials")
	require.Equal(t, http.StatusOK, w.Code)
	var testimonials feed.Result[domain.Testimonial]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &testimonials))
	assert.Equal(t, feed.SourceStatic, testimonials.Source)
	assert.Len(t, testimonials.Items, 6)

	w = get(r, "/api/v1/projects")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"_id":"p1"`)
}

func TestProjectsUnavailable(t *testing.T) {
	r := setup(t, errors.New("down"), &recordingSubmitter{})
	w := get(r, "/api/v1/projects")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestQuoteOptions(t *testing.T) {
	r := setup(t, nil, &recordingSubmitter{})
	w := get(r, "/api/v1/quote/options")
	require.Equal(t, http.StatusOK, w.Code)

	var catalog quote.Catalog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &catalog))
	assert.Len(t, catalog.Services, 4)
	assert.Len(t, catalog.Materials, 7)
}

func quoteBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for name, data := range files {
		part, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, _ = part.Write([]byte(data))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{
		"selectedService":      "sheet-metal",
		"quantity":             "3",
		"designUnit":           "inch",
		"selectedMaterial":     "stainless-steel",
		"selectedMaterialType": "316 Stainless Steel",
		"color":                "Brushed",
		"specifications":       "Deburr all edges",
		"email":                "buyer@example.com",
		"mobile":               "0771234567",
	}
}

func postQuote(r http.Handler, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quote", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitQuote_Forwarded(t *testing.T) {
	sub := &recordingSubmitter{}
	r := setup(t, nil, sub)

	body, ct := quoteBody(t, validFields(), map[string]string{"panel.dxf": "DXF", "panel.pdf": "PDF"})
	w := postQuote(r, body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"messageId":"msg-42"`)

	assert.Equal(t, "sheet-metal", sub.got.Service)
	assert.Equal(t, 3, sub.got.Quantity)
	assert.Equal(t, "inch", sub.got.DesignUnit)
	assert.Equal(t, "Deburr all edges", sub.got.Specifications)
	assert.Equal(t, map[string]string{"panel.dxf": "DXF", "panel.pdf": "PDF"}, sub.files)
}

func TestSubmitQuote_Validation(t *testing.T) {
	sub := &recordingSubmitter{}
	r := setup(t, nil, sub)

	fields := validFields()
	fields["email"] = "not-an-email"
	body, ct := quoteBody(t, fields, map[string]string{"a.step": "x"})
	w := postQuote(r, body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), quote.MsgEmail)

	body, ct = quoteBody(t, validFields(), nil)
	w = postQuote(r, body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), quote.MsgFiles)

	assert.Empty(t, sub.got.Service, "nothing forwarded")
}

func TestSubmitQuote_BackendFailure(t *testing.T) {
	sub := &recordingSubmitter{err: &client.APIError{Status: 500, Message: "SMTP down"}}
	r := setup(t, nil, sub)

	body, ct := quoteBody(t, validFields(), map[string]string{"a.step": "x"})
	w := postQuote(r, body, ct)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to submit request. SMTP down")
}

func TestSubmitQuote_NotMultipart(t *testing.T) {
	r := setup(t, nil, &recordingSubmitter{})
	w := postQuote(r, bytes.NewBufferString(`{}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
