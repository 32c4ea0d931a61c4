package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/andikarya/go-user-service/internal/application"
	"github.com/andikarya/go-user-service/internal/interface/middleware"
	"github.com/andikarya/go-user-service/pkg/helpers"
	"github.com/andikarya/go-user-service/pkg/response"
	"github.com/andikarya/go-user-service/pkg/validation"
)

// genericLoginMsg is returned for both unknown-email and wrong-password so
// responses do not reveal which accounts exist. The status codes still differ
// (400 vs 403), matching the original behavior.
const genericLoginMsg = "invalid email or password"

type AuthHandler struct {
	Svc     *application.Service
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger, cookies *helpers.CookieManager) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: cookies}
}

type registerRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	FullName        string `json:"fullname"`
	Bio             string `json:"bio"`
	ProfileImageURL string `json:"profile_image_url" binding:"omitempty,url"`
}

// Register POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	pub, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		FullName:        req.FullName,
		Bio:             req.Bio,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error[any](c, http.StatusBadRequest, "email already registered", nil)
			return
		}
		h.Logger.WithError(err).WithField("email", req.Email).Error("register failed")
		response.Error[any](c, http.StatusInternalServerError, "something went wrong, please try again later", nil)
		return
	}
	response.Success(c, http.StatusOK, pub, "registration successful", nil)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "email and password are required", validation.ToDetails(err))
		return
	}
	token, pub, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusBadRequest, genericLoginMsg, nil)
		case errors.Is(err, application.ErrPasswordMismatch):
			response.Error[any](c, http.StatusForbidden, genericLoginMsg, nil)
		default:
			h.Logger.WithError(err).WithField("email", req.Email).Error("login failed")
			response.Error[any](c, http.StatusInternalServerError, "something went wrong, please try again later", nil)
		}
		return
	}
	h.Cookies.SetSession(c, token)
	response.Success(c, http.StatusOK, pub, "login successful", nil)
}

// Logout POST /auth/logout
//
// Runs behind the session guard, so the caller is already resolved to an
// account. Drops the stored token and expires the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	id := c.GetInt64(middleware.CtxUserIDKey)
	if err := h.Svc.Logout(c.Request.Context(), id); err != nil {
		h.Logger.WithError(err).WithField("user_id", id).Error("logout failed")
		response.Error[any](c, http.StatusInternalServerError, "something went wrong, please try again later", nil)
		return
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "logout successful", nil)
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword POST /auth/forgot-password
//
// The OTP is queued for email delivery and additionally exposed as demo_otp in
// the response body for clients without a mail sandbox.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "email is required", validation.ToDetails(err))
		return
	}
	code, err := h.Svc.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusBadRequest, "user not found with that email", nil)
			return
		}
		h.Logger.WithError(err).WithField("email", req.Email).Error("forgot-password failed")
		response.Error[any](c, http.StatusInternalServerError, "something went wrong, please try again later", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"demo_otp": code}, "otp issued", nil)
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,otp"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// ResetPassword POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "email, otp, and new password are required", validation.ToDetails(err))
		return
	}
	pub, err := h.Svc.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidOTP):
			response.Error[any](c, http.StatusBadRequest, "invalid otp or otp expired", nil)
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusBadRequest, "user not found with that email", nil)
		case errors.Is(err, application.ErrPasswordUnchanged):
			response.Error[any](c, http.StatusBadRequest, "new password cannot be the same as the old password", nil)
		default:
			h.Logger.WithError(err).WithField("email", req.Email).Error("reset-password failed")
			response.Error[any](c, http.StatusInternalServerError, "something went wrong, please try again later", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, pub, "password reset successfully", nil)
}
