package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/goodnews-kr/platform-api/internal/container"
	handlers "github.com/goodnews-kr/platform-api/internal/interface/http"
	"github.com/goodnews-kr/platform-api/internal/interface/middleware"
)

// AuthModule wires the authentication endpoints.
// Public: POST /api/auth/register, /api/auth/login, /api/auth/refresh
// Protected: POST /api/auth/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.HandleRegister)
	rg.POST("/auth/login", loginLimiter, m.Handler.HandleLogin)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.HandleRefresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetAuthService()))
	{
		auth.POST("/auth/logout", m.Handler.HandleLogout)
	}
}
