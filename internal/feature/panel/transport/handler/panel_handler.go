package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Paths is where the pages live and where the login form posts.
type Paths struct {
	Login          string
	ProtectedEntry string
	LoginEndpoint  string
}

// PanelHandler renders the login page and the protected panel pages.
type PanelHandler struct {
	guard *Guard
	paths Paths
}

// NewPanelHandler creates a PanelHandler.
func NewPanelHandler(guard *Guard, paths Paths) *PanelHandler {
	return &PanelHandler{guard: guard, paths: paths}
}

type loginView struct {
	LoginEndpoint  string
	ProtectedEntry string
}

type panelView struct {
	User    UserContext
	SubPath string
}

// LoginPage handles GET /login.
func (h *PanelHandler) LoginPage(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, "login.html", loginView{
		LoginEndpoint:  h.paths.LoginEndpoint,
		ProtectedEntry: h.paths.ProtectedEntry,
	})
}

// Panel handles GET /panel and GET /panel/*rest.
// Nothing is written before the guard has accepted the session.
func (h *PanelHandler) Panel(c *gin.Context) {
	user, ok := h.guard.Authenticate(c)
	if !ok {
		c.Redirect(http.StatusTemporaryRedirect, h.paths.Login)
		c.Abort()
		return
	}
	h.renderPanel(c, user, strings.Trim(c.Param("rest"), "/"))
}

func (h *PanelHandler) renderPanel(c *gin.Context, user UserContext, subPath string) {
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, "panel.html", panelView{User: user, SubPath: subPath})
}
