package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andikarya/go-user-service/internal/application"
	"github.com/andikarya/go-user-service/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
)

// SessionAuth validates the session cookie against the user-record store and
// aborts the chain when no logged-in account matches. It sets userID and
// userEmail in the Gin context on success.
func SessionAuth(svc *application.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			response.AbortError[any](c, http.StatusForbidden, "no session token provided", nil)
			return
		}
		u, err := svc.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, application.ErrInvalidSession) {
				response.AbortError[any](c, http.StatusForbidden, "invalid session token", nil)
				return
			}
			response.AbortError[any](c, http.StatusBadRequest, "could not validate session token", nil)
			return
		}
		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserEmailKey, u.Email)
		c.Next()
	}
}
