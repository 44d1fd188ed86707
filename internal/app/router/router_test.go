package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authgate/internal/app/config"
	"authgate/internal/app/di"
	"authgate/internal/platform/cookie"
	"authgate/internal/platform/metrics"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouter(t *testing.T, corsOrigins string) *gin.Engine {
	t.Helper()
	store, err := di.NewUserStore(di.StoreConfig{
		DatabaseURL:    "sqlite://" + filepath.Join(t.TempDir(), "users.db"),
		ConnectTimeout: time.Second,
	})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(t.Context()))

	app, err := di.NewApp(&config.Config{JWTSecret: "router-secret"}, store, metrics.New())
	require.NoError(t, err)
	return NewRouter(app, corsOrigins)
}

func do(r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenFrom(w *httptest.ResponseRecorder) string {
	for _, c := range w.Result().Cookies() {
		if c.Name == cookie.Name && c.MaxAge > 0 {
			return c.Value
		}
	}
	return ""
}

func TestRouter_SessionLifecycle(t *testing.T) {
	r := setupRouter(t, "")

	// 未ログインではパネルに入れない
	w := do(r, http.MethodGet, "/panel", nil, "")
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = do(r, http.MethodGet, "/login", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPost, "/auth/register", gin.H{"name": "A", "email": "a@x.com", "password": "p1"}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	token := tokenFrom(w)
	require.NotEmpty(t, token)

	w = do(r, http.MethodGet, "/panel/settings", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a@x.com")
	assert.Contains(t, w.Body.String(), "settings")

	// ログイン済みでログインページに来たらパネルへ
	w = do(r, http.MethodGet, "/login", nil, token)
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/panel", w.Header().Get("Location"))

	w = do(r, http.MethodPost, "/auth/login", gin.H{"email": "a@x.com", "password": "p1"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, tokenFrom(w))
}

func TestRouter_TamperedCookieIsCleared(t *testing.T) {
	r := setupRouter(t, "")

	w := do(r, http.MethodGet, "/panel", nil, "not-a-token")

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == cookie.Name && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "expected the session cookie to be expired")
}

func TestRouter_APIIsNotGated(t *testing.T) {
	r := setupRouter(t, "")

	w := do(r, http.MethodPost, "/auth/login", gin.H{"email": "nobody@x.com", "password": "p"}, "garbage")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_Operational(t *testing.T) {
	r := setupRouter(t, "")

	w := do(r, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/readyz", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	do(r, http.MethodGet, "/panel", nil, "")
	w = do(r, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `authgate_gate_decisions_total{decision="redirect_login"} 1`)
}

func TestRouter_CORS(t *testing.T) {
	r := setupRouter(t, "https://app.example.com, https://admin.example.com")

	req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestSplitOrigins(t *testing.T) {
	assert.Nil(t, splitOrigins(""))
	assert.Nil(t, splitOrigins(" , "))
	assert.Equal(t, []string{"a", "b"}, splitOrigins("a, b,"))
}
