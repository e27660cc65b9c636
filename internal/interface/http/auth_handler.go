package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/goodnews-kr/platform-api/internal/application"
	"github.com/goodnews-kr/platform-api/internal/domain/apperrors"
	"github.com/goodnews-kr/platform-api/internal/domain/repository"
	"github.com/goodnews-kr/platform-api/internal/domain/service"
	"github.com/goodnews-kr/platform-api/internal/interface/middleware"
	"github.com/goodnews-kr/platform-api/pkg/helpers"
	"github.com/goodnews-kr/platform-api/pkg/mailer"
	"github.com/goodnews-kr/platform-api/pkg/response"
	"github.com/goodnews-kr/platform-api/pkg/validation"
)

// AuthHandler exposes registration, login, token refresh, and logout. All
// authentication decisions happen inside the use cases; the handler only
// binds payloads, maps errors, and manages cookies.
type AuthHandler struct {
	Register  *application.RegisterUseCase
	Login     *application.LoginUseCase
	Refresh   *application.RefreshTokenUseCase
	Auth      service.AuthService
	Users     repository.UserRepository
	Directory *application.UserDirectory
	Cookies   *helpers.Manager
	Pub       *helpers.RabbitPublisher
	Logger    *logrus.Logger
}

func NewAuthHandler(register *application.RegisterUseCase, login *application.LoginUseCase, refresh *application.RefreshTokenUseCase, auth service.AuthService, users repository.UserRepository, directory *application.UserDirectory, cookies *helpers.Manager, pub *helpers.RabbitPublisher, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		Register:  register,
		Login:     login,
		Refresh:   refresh,
		Auth:      auth,
		Users:     users,
		Directory: directory,
		Cookies:   cookies,
		Pub:       pub,
		Logger:    logger,
	}
}

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,pwd"`
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	ChurchName  string `json:"church_name"`
	Position    string `json:"position"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// HandleRegister POST /api/auth/register
func (h *AuthHandler) HandleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Register.Execute(c.Request.Context(), application.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		ChurchName:  req.ChurchName,
		Position:    req.Position,
	})
	middleware.CountAuthAttempt("register", err == nil)
	if err != nil {
		h.fail(c, err, "registration failed")
		return
	}

	h.afterRegister(c, res)
	h.Cookies.SetPair(c, res.Tokens.AccessToken, res.Tokens.AccessExpiresAt, res.Tokens.RefreshToken, res.Tokens.RefreshExpiresAt)
	response.Success(c, http.StatusCreated, res, "registered", nil)
}

// HandleLogin POST /api/auth/login
func (h *AuthHandler) HandleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Login.Execute(c.Request.Context(), application.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: clientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
	})
	middleware.CountAuthAttempt("login", err == nil)
	if err != nil {
		h.fail(c, err, "login failed")
		return
	}

	h.notify(c, res.User.Email, "login_notification", map[string]any{
		"name": res.User.Name,
		"ip":   clientIP(c),
		"time": time.Now().UTC().Format(time.RFC3339),
	})
	h.Cookies.SetPair(c, res.Tokens.AccessToken, res.Tokens.AccessExpiresAt, res.Tokens.RefreshToken, res.Tokens.RefreshExpiresAt)
	response.Success(c, http.StatusOK, res, "login successful", nil)
}

// HandleRefresh POST /api/auth/refresh
// Accepts the refresh token from the HttpOnly cookie or the JSON body.
func (h *AuthHandler) HandleRefresh(c *gin.Context) {
	token := h.refreshTokenFrom(c)
	if token == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}

	res, err := h.Refresh.Execute(c.Request.Context(), application.RefreshInput{
		RefreshToken: token,
		IPAddress:    clientIP(c),
		UserAgent:    c.GetHeader("User-Agent"),
	})
	middleware.CountAuthAttempt("refresh", err == nil)
	if err != nil {
		h.fail(c, err, "token refresh failed")
		return
	}

	h.Cookies.SetPair(c, res.Tokens.AccessToken, res.Tokens.AccessExpiresAt, res.Tokens.RefreshToken, res.Tokens.RefreshExpiresAt)
	response.Success(c, http.StatusOK, res, "token refreshed", nil)
}

// HandleLogout POST /api/auth/logout
// Revokes the presented refresh token (idempotent) and clears cookies.
func (h *AuthHandler) HandleLogout(c *gin.Context) {
	if token := h.refreshTokenFrom(c); token != "" {
		if err := h.Auth.RevokeRefreshToken(c.Request.Context(), token); err != nil && h.Logger != nil {
			h.Logger.WithError(err).Warn("refresh token revoke failed")
		}
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

func (h *AuthHandler) refreshTokenFrom(c *gin.Context) string {
	if t, err := c.Cookie("refresh_token"); err == nil && t != "" {
		return t
	}
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

// afterRegister runs the best-effort side effects of a successful
// registration: welcome mail and directory indexing.
func (h *AuthHandler) afterRegister(c *gin.Context, res *application.AuthResult) {
	h.notify(c, res.User.Email, "welcome", map[string]any{"name": res.User.Name})
	if h.Directory != nil && h.Users != nil {
		if u, err := h.Users.FindByID(c.Request.Context(), res.User.ID); err == nil {
			_ = h.Directory.IndexUser(c.Request.Context(), u)
		}
	}
}

func (h *AuthHandler) notify(c *gin.Context, to, template string, data map[string]any) {
	if h.Pub == nil {
		return
	}
	job := mailer.EmailJob{To: to, Template: template, Data: data}
	if err := h.Pub.PublishJSON(c.Request.Context(), job); err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("template", template).Warn("email job publish failed")
	}
}

// fail maps use-case errors onto HTTP statuses. Token failure subtypes are
// logged for diagnostics but never echoed to the client.
func (h *AuthHandler) fail(c *gin.Context, err error, msg string) {
	var (
		ve *apperrors.ValidationError
		ce *apperrors.ConflictError
		ae *apperrors.AuthenticationError
		ze *apperrors.AuthorizationError
		te *apperrors.TokenError
		ne *apperrors.NotFoundError
	)
	switch {
	case errors.As(err, &ve):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{ve.Field: ve.Message})
	case errors.As(err, &ce):
		response.Error[any](c, http.StatusConflict, ce.Message, nil)
	case errors.As(err, &ae):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.As(err, &ze):
		response.Error[any](c, http.StatusForbidden, ze.Message, nil)
	case errors.As(err, &te):
		if h.Logger != nil {
			h.Logger.WithField("code", te.Code).Info("refresh token rejected")
		}
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
	case errors.As(err, &ne):
		response.Error[any](c, http.StatusNotFound, ne.Error(), nil)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error(msg)
		}
		response.Error[any](c, http.StatusInternalServerError, msg, nil)
	}
}
