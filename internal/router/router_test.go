package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carbonfront/internal/config"
	"carbonfront/internal/handler"
	"carbonfront/internal/router"
	"carbonfront/internal/session"
	"carbonfront/internal/web"
	"carbonfront/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Environment: "test"},
		Upload:  config.UploadConfig{MaxPDFSizeMB: 50, MaxZIPSizeMB: 100},
		Session: config.SessionConfig{CookieName: "cf_session", TTL: time.Hour},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func setupRouter(t *testing.T) (*gin.Engine, *session.Store, *mocks.MockProcessingClient) {
	t.Helper()
	cfg := testConfig()
	logger := zap.NewNop()

	tmpl, err := web.Templates()
	require.NoError(t, err)
	intro, err := web.Markdown("landing.md")
	require.NoError(t, err)
	help, err := web.Markdown("bulk_help.md")
	require.NoError(t, err)

	client := new(mocks.MockProcessingClient)
	single := new(mocks.MockSingleService)
	bulk := new(mocks.MockBulkService)
	store := session.NewStore(cfg.Session.TTL, logger)

	r := router.Setup(cfg, logger, store,
		handler.NewPageHandler(tmpl, intro, help, single, bulk, &cfg.Upload, logger),
		handler.NewSingleHandler(single, &cfg.Upload),
		handler.NewBulkHandler(bulk, &cfg.Upload),
		handler.NewHealthHandler(client),
	)
	return r, store, client
}

func serve(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthDoesNotCreateSession(t *testing.T) {
	r, store, client := setupRouter(t)
	client.On("Ping", mock.Anything).Return(nil)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/healthz").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/readyz").Code)
	assert.Equal(t, 0, store.Len())
}

func TestRouter_PagesIssueSessionCookie(t *testing.T) {
	r, store, _ := setupRouter(t)

	w := serve(r, http.MethodGet, "/pdf-processor")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "cf_session=")
	assert.Equal(t, 1, store.Len())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_APIState(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := serve(r, http.MethodGet, "/api/v1/single")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), `"methodology":"spend"`)
}

func TestRouter_Metrics(t *testing.T) {
	r, _, _ := setupRouter(t)
	serve(r, http.MethodGet, "/")

	w := serve(r, http.MethodGet, "/metrics")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "carbonfront_http_requests_total")
}

func TestRouter_Swagger(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := serve(r, http.MethodGet, "/swagger/doc.json")

	require.Equal(t, http.StatusOK, w.Code)
	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "/", doc.BasePath)

	// every API and probe route is documented at its mounted path
	for _, route := range r.Routes() {
		if !strings.HasPrefix(route.Path, "/api/v1") && route.Path != "/healthz" && route.Path != "/readyz" {
			continue
		}
		path := strings.ReplaceAll(route.Path, ":key", "{key}")
		ops, ok := doc.Paths[path]
		if assert.True(t, ok, "undocumented path %s", path) {
			assert.Contains(t, ops, strings.ToLower(route.Method), "undocumented %s %s", route.Method, path)
		}
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	r, _, _ := setupRouter(t)

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/nope").Code)
}
