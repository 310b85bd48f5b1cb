package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/fonovalabs/fonova-web/internal/site/feed"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthOf(t *testing.T, h *HealthHandler, path string) HealthResponse {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck_MemoryCache(t *testing.T) {
	resp := healthOf(t, NewHealthHandler("fonova-site", "1.2.3", "fonova", feed.NewMemoryCache()), "/health")

	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "fonova-site", resp.Service)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, "up", resp.Cache)
	assert.Equal(t, "memory", resp.CacheKind)
}

func TestHealthCheck_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	h := NewHealthHandler("fonova-site", "1.2.3", "fonova", feed.NewRedisCache(rdb))
	assert.Equal(t, "up", healthOf(t, h, "/healthz").Cache)

	mr.Close()
	assert.Equal(t, "down", healthOf(t, h, "/healthz").Cache)
}

func TestHealthCheck_NoCache(t *testing.T) {
	resp := healthOf(t, NewHealthHandler("fonova-site", "dev", "", nil), "/health")
	assert.Equal(t, "disabled", resp.Cache)
}
