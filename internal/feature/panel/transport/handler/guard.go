// Package handler serves the login page and the protected panel.
package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"authgate/internal/platform/cookie"
	jwtmw "authgate/internal/platform/jwt"
)

// TokenVerifier verifies a session token.
type TokenVerifier interface {
	Verify(token string) (*jwtmw.Claims, error)
}

// UserContext is the verified identity handed to a protected render.
// It lives only for the request that produced it.
type UserContext struct {
	ID    string
	Email string
}

// Guard re-verifies the session cookie at render time. It does not rely on the
// gatekeeper having run for the same request.
type Guard struct {
	verifier TokenVerifier
	cookies  *cookie.Transport
}

// NewGuard creates a Guard.
func NewGuard(verifier TokenVerifier, cookies *cookie.Transport) *Guard {
	return &Guard{verifier: verifier, cookies: cookies}
}

// Authenticate returns the user behind the request's session cookie.
func (g *Guard) Authenticate(c *gin.Context) (UserContext, bool) {
	token, ok := g.cookies.Read(c)
	if !ok {
		slog.Info("guard: no token found in cookies", "path", c.Request.URL.Path)
		return UserContext{}, false
	}

	claims, err := g.verifier.Verify(token)
	if err != nil {
		slog.Warn("guard: token verification failed", "path", c.Request.URL.Path, "error", err)
		return UserContext{}, false
	}
	return UserContext{ID: claims.ID, Email: claims.Email}, true
}
