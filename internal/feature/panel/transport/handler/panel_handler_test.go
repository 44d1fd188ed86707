package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authgate/internal/feature/panel/transport/views"
	"authgate/internal/platform/cookie"
	jwtmw "authgate/internal/platform/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newCodec(t *testing.T, opts ...jwtmw.Option) *jwtmw.Codec {
	t.Helper()
	codec, err := jwtmw.NewCodec("panel-secret", opts...)
	require.NoError(t, err)
	return codec
}

// setupRouter wires the pages without the gatekeeper so the guard is exercised on its own.
func setupRouter(codec *jwtmw.Codec) *gin.Engine {
	cookies := cookie.NewTransport(false)
	h := NewPanelHandler(NewGuard(codec, cookies), Paths{
		Login:          "/login",
		ProtectedEntry: "/panel",
		LoginEndpoint:  "/auth/login",
	})

	r := gin.New()
	r.SetHTMLTemplate(views.Templates())
	r.GET("/login", h.LoginPage)
	r.GET("/panel", h.Panel)
	r.GET("/panel/*rest", h.Panel)
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPanelHandler_LoginPage(t *testing.T) {
	r := setupRouter(newCodec(t))

	w := get(r, "/login", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<form id="login-form">`)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestPanelHandler_Panel_RendersUserContext(t *testing.T) {
	codec := newCodec(t)
	token, err := codec.Sign("65f0c0ffee0123456789abcd", "a@x.com")
	require.NoError(t, err)
	r := setupRouter(codec)

	w := get(r, "/panel", token)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<span data-field="id">65f0c0ffee0123456789abcd</span>`)
	assert.Contains(t, body, `<span data-field="email">a@x.com</span>`)
	assert.NotContains(t, body, "Section:")
}

func TestPanelHandler_Panel_SubPath(t *testing.T) {
	codec := newCodec(t)
	token, err := codec.Sign("user-1", "a@x.com")
	require.NoError(t, err)
	r := setupRouter(codec)

	w := get(r, "/panel/settings/profile", token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<code>settings/profile</code>")
}

func TestPanelHandler_Panel_EscapesClaims(t *testing.T) {
	codec := newCodec(t)
	token, err := codec.Sign("user-1", "<script>alert(1)</script>@x.com")
	require.NoError(t, err)
	r := setupRouter(codec)

	w := get(r, "/panel", token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<script>alert(1)</script>")
}

// TestPanelHandler_Panel_RedirectsWithoutSession は検証失敗時に何も描画せずログインへ戻すことを検証します。
func TestPanelHandler_Panel_RedirectsWithoutSession(t *testing.T) {
	past := time.Now().Add(-8 * 24 * time.Hour)
	expired, err := newCodec(t, jwtmw.WithClock(func() time.Time { return past })).Sign("user-1", "a@x.com")
	require.NoError(t, err)

	tests := []struct {
		name  string
		path  string
		token string
	}{
		{"no cookie", "/panel", ""},
		{"garbage cookie", "/panel", "garbage"},
		{"expired cookie", "/panel/settings", expired},
	}

	r := setupRouter(newCodec(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, tt.path, tt.token)

			assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
			assert.Equal(t, "/login", w.Header().Get("Location"))
			assert.NotContains(t, w.Body.String(), "Panel Page")
		})
	}
}

func TestGuard_Authenticate(t *testing.T) {
	codec := newCodec(t)
	token, err := codec.Sign("user-7", "seven@x.com")
	require.NoError(t, err)
	guard := NewGuard(codec, cookie.NewTransport(false))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/panel", nil)
	c.Request.AddCookie(&http.Cookie{Name: cookie.Name, Value: token})

	user, ok := guard.Authenticate(c)

	require.True(t, ok)
	assert.Equal(t, UserContext{ID: "user-7", Email: "seven@x.com"}, user)
}
