package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andikarya/go-user-service/internal/application"
	"github.com/andikarya/go-user-service/internal/container"
	handlers "github.com/andikarya/go-user-service/internal/interface/http"
	"github.com/andikarya/go-user-service/internal/interface/middleware"
)

// UserModule wires the protected user routes behind the session guard.
// GET /users and PUT /users/:id never run without a valid session token.
type UserModule struct {
	Handler *handlers.UserHandler
	Svc     *application.Service
}

func NewUserModule(h *handlers.UserHandler, svc *application.Service) *UserModule {
	return &UserModule{Handler: h, Svc: svc}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.SessionAuth(m.Svc, container.GetConfig().SessionCookieName))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP()))
	{
		auth.GET("/users", m.Handler.List)
		auth.PUT("/users/:id", m.Handler.Update)
	}
}
