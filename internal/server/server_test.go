package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleverai/api/internal/config"
	"cleverai/api/internal/handlers"
	"cleverai/api/internal/repository"
	"cleverai/api/internal/security"
	"cleverai/api/internal/service"
	"cleverai/api/internal/session"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.AppConfig{
		Environment:      "test",
		AllowCORSOrigins: []string{"https://app.example.com"},
		OpenAI:           config.OpenAIConfig{Timeout: time.Second},
	}
	mem := repository.NewMemoryStorage()
	h, err := handlers.NewHandlerSet(zerolog.Nop(), cfg, handlers.Dependencies{
		Users:    mem.Users(),
		Contacts: mem.Contacts(),
		Sessions: session.NewManager(session.NewMemoryStore(), time.Hour),
		Hasher:   service.NewScryptHasher(security.ScryptParams{N: 1024, R: 8, P: 1, KeyLen: 64, SaltLen: 16}),
	})
	require.NoError(t, err)
	return NewEngine(cfg, zerolog.Nop(), h)
}

func TestEngineRoutesUnderAPI(t *testing.T) {
	engine := newTestEngine(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Not found"}`, rec.Body.String())
}

func TestEngineCORSPreflight(t *testing.T) {
	engine := newTestEngine(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
