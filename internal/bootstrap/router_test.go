package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fonovalabs/fonova-web/internal/cms/client"
	"github.com/fonovalabs/fonova-web/internal/cms/domain"
	"github.com/fonovalabs/fonova-web/internal/site/content"
	"github.com/fonovalabs/fonova-web/internal/site/feed"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRouter(t *testing.T) {
	SetGinMode("production")
	defer gin.SetMode(gin.TestMode)

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/testimonials/published":
			_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"t9","name":"Live","content":"From the backend","rating":4,"isPublished":true}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false}`))
		}
	}))
	defer backend.Close()

	doc, err := content.Load("axora", "")
	require.NoError(t, err)

	api := client.New(backend.URL, time.Second)
	f := feed.New(
		client.NewResource[domain.Testimonial](api, client.TestimonialsPath),
		client.NewResource[domain.Project](api, client.ProjectsPath),
		feed.NewMemoryCache(), doc.PublishedTestimonials(), time.Minute)

	r := BuildRouter(RouterDeps{
		ServiceName:    "fonova-site",
		Version:        "test",
		AllowedOrigins: []string{"*"},
		Content:        doc,
		Feed:           f,
		Quotes:         api,
		QuotePerMin:    5,
		MaxUploadMB:    1,
	})

	for path, want := range map[string]string{
		"/health":                     `"brand":"axora"`,
		"/api/v1/sections/advantages": "The Axora Engineering Advantage",
		"/api/v1/testimonials":        `"id":"t9"`,
		"/api/v1/quote/options":       `"injection-molding"`,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.True(t, strings.Contains(w.Body.String(), want), "%s: %s", path, w.Body.String())
		assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
