package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andikarya/go-user-service/internal/container"
	handlers "github.com/andikarya/go-user-service/internal/interface/http"
	"github.com/andikarya/go-user-service/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with per-IP rate limits; login and forgot-password are
	// the credential-guessing surface, so they get their own quota.
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath())
	forgotLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath())
	resetLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/forgot-password", forgotLimiter, m.Handler.ForgotPassword)
	rg.POST("/auth/reset-password", resetLimiter, m.Handler.ResetPassword)

	// Logout needs a resolved session before there is anything to revoke.
	sessionGuard := middleware.SessionAuth(m.Handler.Svc, container.GetConfig().SessionCookieName)
	rg.POST("/auth/logout", sessionGuard, m.Handler.Logout)
}
