package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/goodnews-kr/platform-api/internal/container"
	handlers "github.com/goodnews-kr/platform-api/internal/interface/http"
	"github.com/goodnews-kr/platform-api/internal/interface/middleware"
)

// ProfileModule wires the authenticated profile endpoints and the admin
// member directory.
type ProfileModule struct {
	Handler *handlers.ProfileHandler
}

func NewProfileModule(h *handlers.ProfileHandler) *ProfileModule {
	return &ProfileModule{Handler: h}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetAuthService()))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.POST("/profile/avatar", m.Handler.UploadAvatar)
	}

	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(container.GetAuthService()), middleware.AdminOnly())
	{
		admin.GET("/users", m.Handler.ListUsers)
		admin.GET("/users/search", m.Handler.SearchUsers)
	}
}
