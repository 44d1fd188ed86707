// Package router wires the HTTP surface onto a Gin engine.
package router

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"authgate/internal/app/di"
	"authgate/internal/feature/panel/transport/views"
	platformhandler "authgate/internal/platform/http/handler"
	jwtmw "authgate/internal/platform/jwt"
)

// NewRouter builds the engine. corsOrigins is a comma separated allow-list; empty disables CORS.
func NewRouter(app *di.App, corsOrigins string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if origins := splitOrigins(corsOrigins); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// ページ要求はハンドラーより先にゲートキーパーを通る
	r.Use(jwtmw.Gatekeeper(app.Codec, app.Cookies, app.Gate, app.Metrics))
	r.SetHTMLTemplate(views.Templates())

	// 導通確認用
	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)
	r.GET("/readyz", platformhandler.Readiness(app.Store))
	if app.Metrics != nil {
		r.GET("/metrics", gin.WrapH(app.Metrics.Handler()))
	}

	// 認証API（Cookie 発行）
	auth := r.Group("/auth")
	{
		auth.POST("/register", app.Auth.Register)
		auth.POST("/login", app.Auth.Login)
	}

	// ページ
	r.GET(app.Gate.LoginPath, app.Panel.LoginPage)
	r.GET(app.Gate.ProtectedPrefix, app.Panel.Panel)
	r.GET(app.Gate.ProtectedPrefix+"/*rest", app.Panel.Panel)

	return r
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
