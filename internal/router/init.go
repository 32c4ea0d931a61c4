package router

import (
	"github.com/andikarya/go-user-service/internal/application"
	"github.com/andikarya/go-user-service/internal/container"
	"github.com/andikarya/go-user-service/internal/infrastructure/otpstore"
	pginfra "github.com/andikarya/go-user-service/internal/infrastructure/postgres"
	handlers "github.com/andikarya/go-user-service/internal/interface/http"
	"github.com/andikarya/go-user-service/internal/router/modules"
	"github.com/andikarya/go-user-service/pkg/helpers"
)

// InitModules builds the service graph from the container singletons and
// registers every feature module. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	repo := pginfra.NewUserRepository(container.GetPGPool())
	otp := otpstore.NewRedis(container.GetRedis())

	var pub *helpers.RabbitPublisher
	if cfg.MailSendEnabled {
		pub = container.GetRabbitPub()
	}

	svc := application.NewService(repo, otp, pub, container.GetLogger(), cfg.OTPTTL)

	cookies := helpers.NewCookie(cfg.SessionCookieName, cfg.CookieDomain, cfg.CookieSecure, cfg.SessionTTL)
	authHandler := handlers.NewAuthHandler(svc, container.GetLogger(), cookies)
	userHandler := handlers.NewUserHandler(svc, container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewUserModule(userHandler, svc))
}
