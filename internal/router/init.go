package router

import (
	"github.com/goodnews-kr/platform-api/internal/application"
	"github.com/goodnews-kr/platform-api/internal/container"
	pginfra "github.com/goodnews-kr/platform-api/internal/infrastructure/postgres"
	handlers "github.com/goodnews-kr/platform-api/internal/interface/http"
	"github.com/goodnews-kr/platform-api/internal/router/modules"
	"github.com/goodnews-kr/platform-api/pkg/helpers"
)

// InitModules builds the repositories, use cases, and handlers from the
// container singletons and registers every feature module.
// Called once during application startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(container.GetPGPool())
	profiles := pginfra.NewUserProfileRepository(container.GetPGPool())
	auth := container.GetAuthService()

	registerUC := application.NewRegisterUseCase(users, profiles, auth, logger, cfg.BcryptCost)
	loginUC := application.NewLoginUseCase(users, auth, logger)
	refreshUC := application.NewRefreshTokenUseCase(users, auth, logger)
	profileUC := application.NewProfileUseCase(users, profiles, container.GetGCS(), cfg.GCSBucket, logger)
	directory := application.NewUserDirectory(container.GetES(), cfg.ESUsersIndex, logger)

	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	authHandler := handlers.NewAuthHandler(registerUC, loginUC, refreshUC, auth, users, directory, cookies, container.GetRabbitPub(), logger)
	profileHandler := handlers.NewProfileHandler(profileUC, users, directory, logger)

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewProfileModule(profileHandler))
}
