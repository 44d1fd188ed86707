// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"authgate/internal/feature/auth/transport/http/dto"
	"authgate/internal/feature/auth/usecase"
	"authgate/internal/platform/cookie"
	"authgate/internal/platform/metrics"
)

const (
	flowRegister = "register"
	flowLogin    = "login"

	msgMissingFields      = "Missing fields"
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgInternal           = "Internal server error"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register creates an account and returns its session.
	Register(ctx context.Context, name, email, password string) (*usecase.Session, error)
	// Login authenticates and returns a session.
	Login(ctx context.Context, email, password string) (*usecase.Session, error)
}

// AuthRecorder counts flow outcomes.
type AuthRecorder interface {
	ObserveAuth(flow, outcome string)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth    AuthUsecase
	cookies *cookie.Transport
	rec     AuthRecorder
}

// NewAuthHandler creates an AuthHandler. rec may be nil.
func NewAuthHandler(auth AuthUsecase, cookies *cookie.Transport, rec AuthRecorder) *AuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies, rec: rec}
}

// Register handles POST /auth/register.
// - 入力不足は400
// - メール重複は409
// - それ以外の失敗は500
// - 成功時はセッションCookieを付けて201
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		h.fail(c, flowRegister, metrics.OutcomeInvalidInput, http.StatusBadRequest, msgMissingFields)
		return
	}

	session, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingFields):
			h.fail(c, flowRegister, metrics.OutcomeInvalidInput, http.StatusBadRequest, msgMissingFields)
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			slog.Warn("register rejected: duplicate email", "email", req.Email, "remote_addr", c.ClientIP())
			h.fail(c, flowRegister, metrics.OutcomeConflict, http.StatusConflict, msgUserExists)
		default:
			slog.Error("register failed", "error", err, "email", req.Email)
			h.fail(c, flowRegister, metrics.OutcomeError, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	h.cookies.Set(c, session.Token)
	h.observe(flowRegister, metrics.OutcomeSuccess)
	slog.Info("user registered", "user_id", session.UserID, "email", session.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "User registered"})
}

// Login handles POST /auth/login.
// ユーザー列挙攻撃を防止するため、「ユーザー不在」と「パスワード不一致」を区別しません。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		h.fail(c, flowLogin, metrics.OutcomeInvalidInput, http.StatusBadRequest, msgMissingFields)
		return
	}

	session, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingFields):
			h.fail(c, flowLogin, metrics.OutcomeInvalidInput, http.StatusBadRequest, msgMissingFields)
		case errors.Is(err, usecase.ErrInvalidCredentials):
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			h.fail(c, flowLogin, metrics.OutcomeUnauthorized, http.StatusUnauthorized, msgInvalidCredentials)
		default:
			slog.Error("login error", "error", err, "email", req.Email)
			h.fail(c, flowLogin, metrics.OutcomeError, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	h.cookies.Set(c, session.Token)
	h.observe(flowLogin, metrics.OutcomeSuccess)
	slog.Info("user login successful", "user_id", session.UserID, "email", session.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Login successful"})
}

func (h *AuthHandler) fail(c *gin.Context, flow, outcome string, status int, msg string) {
	h.observe(flow, outcome)
	c.JSON(status, dto.ErrorResponse{Error: msg})
}

func (h *AuthHandler) observe(flow, outcome string) {
	if h.rec != nil {
		h.rec.ObserveAuth(flow, outcome)
	}
}
