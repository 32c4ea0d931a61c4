package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/andikarya/go-user-service/internal/application"
	"github.com/andikarya/go-user-service/pkg/response"
	"github.com/andikarya/go-user-service/pkg/validation"
)

type UserHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// List GET /users?page=&limit=
func (h *UserHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	users, meta, err := h.Svc.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		h.Logger.WithError(err).Error("list users failed")
		response.Error[any](c, http.StatusInternalServerError, "something went wrong, please try again later", nil)
		return
	}
	response.Success(c, http.StatusOK, users, "users", meta)
}

type updateUserRequest struct {
	Username        string `json:"username"`
	FullName        string `json:"fullname"`
	Bio             string `json:"bio"`
	ProfileImageURL string `json:"profile_image_url" binding:"omitempty,url"`
}

// Update PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	pub, err := h.Svc.UpdateProfile(c.Request.Context(), id, application.UpdateProfileInput{
		Username:        req.Username,
		FullName:        req.FullName,
		Bio:             req.Bio,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("user_id", id).Error("update user failed")
		response.Error[any](c, http.StatusInternalServerError, "something went wrong, please try again later", nil)
		return
	}
	response.Success(c, http.StatusOK, pub, "user updated", nil)
}
