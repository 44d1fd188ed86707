// Package cookie carries the session token between server and browser.
package cookie

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// Name is the session cookie name.
	Name = "token"

	// MaxAge matches the token lifetime: 7 days in seconds.
	MaxAge = 60 * 60 * 24 * 7

	path = "/"
)

// Transport sets, reads and clears the session cookie with fixed attributes:
// HttpOnly, SameSite=Strict, Path=/ and Secure when running in production.
type Transport struct {
	secure bool
}

// NewTransport creates a Transport. secure should be true in production.
func NewTransport(secure bool) *Transport {
	return &Transport{secure: secure}
}

// Set attaches token to the response.
func (t *Transport) Set(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(Name, token, MaxAge, path, "", t.secure, true)
}

// Read returns the token from the request, if any.
func (t *Transport) Read(c *gin.Context) (string, bool) {
	token, err := c.Cookie(Name)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

// Clear instructs the browser to drop the session cookie.
func (t *Transport) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(Name, "", -1, path, "", t.secure, true)
}
