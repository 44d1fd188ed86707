package jwtmw

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"authgate/internal/platform/cookie"
)

// TokenVerifier verifies a session token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// DecisionRecorder observes gatekeeper decisions (metrics).
type DecisionRecorder interface {
	ObserveGate(decision string)
}

// Gatekeeper returns a Gin middleware that runs before any page on a matching path.
// Non-matching paths pass through untouched. The middleware keeps no state between
// requests beyond its fixed configuration.
func Gatekeeper(verifier TokenVerifier, cookies *cookie.Transport, cfg GateConfig, rec DecisionRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !cfg.Matches(path) {
			c.Next()
			return
		}

		// 1. Cookie の有無
		token, hasCookie := cookies.Read(c)
		verified := false
		if hasCookie {
			// 2. 署名と有効期限の検証
			if _, err := verifier.Verify(token); err != nil {
				slog.Warn("gatekeeper: token verification failed", "path", path, "error", err, "remote_addr", c.ClientIP())
			} else {
				verified = true
			}
		}

		decision := cfg.Decide(path, hasCookie, verified)
		if rec != nil {
			rec.ObserveGate(decision.String())
		}

		// 3. 判定結果を適用
		switch decision {
		case RedirectToLogin:
			slog.Info("gatekeeper: no session, redirecting to login", "path", path)
			c.Redirect(http.StatusTemporaryRedirect, cfg.LoginPath)
			c.Abort()
		case RedirectToLoginClearCookie:
			cookies.Clear(c)
			c.Redirect(http.StatusTemporaryRedirect, cfg.LoginPath)
			c.Abort()
		case RedirectToProtected:
			slog.Info("gatekeeper: session already valid, leaving login page", "path", path)
			c.Redirect(http.StatusTemporaryRedirect, cfg.ProtectedEntry)
			c.Abort()
		default:
			c.Next()
		}
	}
}
