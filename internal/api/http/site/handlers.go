package site

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/fonovalabs/fonova-web/internal/cms/client"
	"github.com/fonovalabs/fonova-web/internal/cms/domain"
	"github.com/fonovalabs/fonova-web/internal/logging"
	"github.com/fonovalabs/fonova-web/internal/site/content"
	"github.com/fonovalabs/fonova-web/internal/site/feed"
	"github.com/fonovalabs/fonova-web/internal/site/quote"
	"github.com/gin-gonic/gin"
)

// QuoteSubmitter forwards a validated quote request to the backend.
type QuoteSubmitter interface {
	SubmitQuote(ctx context.Context, q client.QuoteRequest) (string, error)
}

type Handler struct {
	content   *content.Document
	feed      *feed.Feed
	catalog   quote.Catalog
	submitter QuoteSubmitter
	maxUpload int64
}

func New(doc *content.Document, f *feed.Feed, catalog quote.Catalog, submitter QuoteSubmitter, maxUploadMB int) *Handler {
	if maxUploadMB <= 0 {
		maxUploadMB = 25
	}
	return &Handler{
		content:   doc,
		feed:      f,
		catalog:   catalog,
		submitter: submitter,
		maxUpload: int64(maxUploadMB) << 20,
	}
}

// Register mounts the site routes; quoteLimit guards quote submission.
func (h *Handler) Register(api gin.IRouter, quoteLimit ...gin.HandlerFunc) {
	api.GET("/sections", h.ListSections)
	api.GET("/sections/:name", h.GetSection)
	api.GET("/testimonials", h.Testimonials)
	api.GET("/projects", h.Projects)
	api.GET("/quote/options", h.QuoteOptions)
	api.POST("/quote", append(quoteLimit, h.SubmitQuote)...)
}

func (h *Handler) ListSections(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"brand":    h.content.Brand,
		"name":     h.content.Name,
		"order":    content.SectionNames,
		"sections": h.content.Sections,
	})
}

func (h *Handler) GetSection(c *gin.Context) {
	name := c.Param("name")
	body, err := h.content.Section(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "section not found"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (h *Handler) Testimonials(c *gin.Context) {
	res, err := h.feed.Testimonials(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "testimonials are unavailable"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Projects(c *gin.Context) {
	res, err := h.feed.Projects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "projects are unavailable"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) QuoteOptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog)
}

func (h *Handler) SubmitQuote(c *gin.Context) {
	logger := logging.NewLogger(c.Request.Context())

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "design files are too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	files := form.File["files"]
	q := quoteForm(form, files)
	q.Normalize()
	if err := h.catalog.Validate(q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.Message(err)})
		return
	}

	req := client.QuoteRequest{
		Service:        q.Service,
		Quantity:       q.Quantity,
		DesignUnit:     q.DesignUnit,
		Material:       q.Material,
		MaterialType:   q.MaterialType,
		Color:          q.Color,
		Specifications: q.Specifications,
		Email:          q.Email,
		Mobile:         q.Mobile,
	}
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			logger.LogError("quote_open_file", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read " + fh.Filename})
			return
		}
		defer f.Close()
		req.Files = append(req.Files, client.QuoteFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		})
	}

	messageID, err := h.submitter.SubmitQuote(c.Request.Context(), req)
	if err != nil {
		logger.LogError("quote_submit", err)
		msg := "Failed to submit request. "
		switch {
		case errors.Is(err, client.ErrUnreachable):
			msg += "Unable to connect to server."
		case client.BackendMessage(err) != "":
			msg += client.BackendMessage(err)
		default:
			msg += "Please try again or contact us directly."
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": msg})
		return
	}

	logger.LogInfof("quote_submit", "service=%s files=%d message_id=%s", req.Service, len(req.Files), messageID)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"messageId": messageID,
		"message":   "Request Submitted Successfully!",
	})
}

func quoteForm(form *multipart.Form, files []*multipart.FileHeader) quote.Form {
	value := func(key string) string {
		if v := form.Value[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	quantity, _ := strconv.Atoi(value("quantity"))
	q := quote.Form{
		Service:        value("selectedService"),
		Quantity:       quantity,
		DesignUnit:     value("designUnit"),
		Material:       value("selectedMaterial"),
		MaterialType:   value("selectedMaterialType"),
		Color:          value("color"),
		Specifications: value("specifications"),
		Email:          value("email"),
		Mobile:         value("mobile"),
	}
	for _, fh := range files {
		q.FileNames = append(q.FileNames, fh.Filename)
	}
	return q
}
