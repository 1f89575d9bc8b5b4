package oneid

import (
	"errors"
	"log"
	"net/http"

	"qavat/internal/pkg/apperr"
	"qavat/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/oneid/url", h.AuthURL)
	protected.POST("/oneid/link", h.Link)
}

func (h *Handler) AuthURL(c *gin.Context) {
	state := uuid.NewString()
	response.Success(c, http.StatusOK, gin.H{
		"url":   h.service.AuthURL(state),
		"state": state,
	})
}

type linkRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *Handler) Link(c *gin.Context) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	u, err := h.service.Link(c.Request.Context(), c.GetInt64("user_id"), req.Code)
	if err != nil {
		var extErr *apperr.ExternalError
		switch {
		case errors.As(err, &extErr):
			log.Printf("external service failure: %v", extErr)
			response.Error(c, http.StatusBadGateway, "EXTERNAL_SERVICE_ERROR", "OneID is unavailable")
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to link OneID")
		}
		return
	}
	response.Success(c, http.StatusOK, u)
}
