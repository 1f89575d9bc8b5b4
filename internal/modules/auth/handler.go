package auth

import (
	"errors"
	"log"
	"net/http"

	"qavat/internal/pkg/apperr"
	"qavat/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/auth/admin/login", h.AdminLogin)
	public.POST("/auth/otp/request", h.RequestOTP)
	public.POST("/auth/otp/verify", h.VerifyOTP)
	public.POST("/auth/refresh", h.Refresh)

	protected.GET("/auth/me", h.GetMe)
}

func (h *Handler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	out, err := h.service.LoginAdmin(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
		case errors.Is(err, ErrUserInactive):
			response.Error(c, http.StatusForbidden, "USER_INACTIVE", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		}
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) RequestOTP(c *gin.Context) {
	var req RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.RequestOTP(c.Request.Context(), req.PhoneNumber); err != nil {
		var extErr *apperr.ExternalError
		if errors.As(err, &extErr) {
			log.Printf("external service failure: %v", extErr)
			response.Error(c, http.StatusBadGateway, "EXTERNAL_SERVICE_ERROR", "Failed to send SMS")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to request code")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sent": true})
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	out, err := h.service.VerifyOTP(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidOTP), errors.Is(err, ErrOTPExpired):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrUserInactive):
			response.Error(c, http.StatusForbidden, "USER_INACTIVE", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Verification failed")
		}
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRefresh):
			response.Error(c, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", err.Error())
		case errors.Is(err, ErrUserInactive):
			response.Error(c, http.StatusForbidden, "USER_INACTIVE", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Refresh failed")
		}
		return
	}
	response.Success(c, http.StatusOK, pair)
}

func (h *Handler) GetMe(c *gin.Context) {
	u, err := h.service.GetMe(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load profile")
		return
	}
	response.Success(c, http.StatusOK, u)
}
