// Package jwtmw signs and verifies session tokens and gates page requests on them.
package jwtmw

import "strings"

// Decision is the outcome of gatekeeping a single request.
type Decision int

const (
	// Allow lets the request through to the page.
	Allow Decision = iota
	// RedirectToLogin sends an unauthenticated visitor to the login page.
	RedirectToLogin
	// RedirectToLoginClearCookie also drops a session cookie that failed verification.
	RedirectToLoginClearCookie
	// RedirectToProtected sends an already signed-in visitor away from the login page.
	RedirectToProtected
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_login"
	case RedirectToLoginClearCookie:
		return "redirect_login_clear_cookie"
	case RedirectToProtected:
		return "redirect_protected"
	default:
		return "unknown"
	}
}

// GateConfig fixes which paths the gatekeeper acts on and where it redirects.
type GateConfig struct {
	// LoginPath is the login entry point, e.g. "/login".
	LoginPath string
	// ProtectedPrefix guards the prefix itself and every sub-path, e.g. "/panel".
	ProtectedPrefix string
	// ProtectedEntry is where signed-in visitors of LoginPath are sent.
	ProtectedEntry string
}

// DefaultGateConfig guards /panel/** and the /login page.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		LoginPath:       "/login",
		ProtectedPrefix: "/panel",
		ProtectedEntry:  "/panel",
	}
}

// IsLogin reports whether path is the login entry point.
func (g GateConfig) IsLogin(path string) bool {
	return path == g.LoginPath
}

// IsProtected reports whether path lies in the protected area.
func (g GateConfig) IsProtected(path string) bool {
	return path == g.ProtectedPrefix || strings.HasPrefix(path, g.ProtectedPrefix+"/")
}

// Matches reports whether the gatekeeper runs for path at all.
func (g GateConfig) Matches(path string) bool {
	return g.IsLogin(path) || g.IsProtected(path)
}

// Decide maps (path, cookie present, verification result) to a Decision.
// verified is ignored when hasCookie is false.
func (g GateConfig) Decide(path string, hasCookie, verified bool) Decision {
	login := g.IsLogin(path)
	switch {
	case !hasCookie && login:
		return Allow
	case !hasCookie:
		return RedirectToLogin
	case !verified:
		return RedirectToLoginClearCookie
	case login:
		return RedirectToProtected
	default:
		return Allow
	}
}
