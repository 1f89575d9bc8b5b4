package eimzo

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

func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	public.POST("/auth/eimzo", h.Login)
}

type loginRequest struct {
	Data string `json:"data" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	out, err := h.service.Login(c.Request.Context(), req.Data)
	if err != nil {
		var extErr *apperr.ExternalError
		switch {
		case errors.As(err, &extErr):
			log.Printf("external service failure: %v", extErr)
			response.Error(c, http.StatusBadGateway, "EXTERNAL_SERVICE_ERROR", "E-IMZO is unavailable")
		case errors.Is(err, ErrSignatureRejected), errors.Is(err, ErrNoSerialNumber):
			response.Error(c, http.StatusBadRequest, "ESIGNATURE_REJECTED", err.Error())
		case errors.Is(err, ErrUserInactive):
			response.Error(c, http.StatusForbidden, "USER_INACTIVE", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "E-signature login failed")
		}
		return
	}
	response.Success(c, http.StatusOK, out)
}
