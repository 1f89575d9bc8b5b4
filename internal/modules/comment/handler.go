package comment

import (
	"errors"
	"net/http"
	"strconv"

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
	public.GET("/ads/:id/comments", h.ListByAd)
	protected.POST("/ads/:id/comments", h.Create)
}

type createRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *Handler) Create(c *gin.Context) {
	adID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid ad id")
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	cm, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), adID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, ErrAdNotFound):
			response.Error(c, http.StatusNotFound, "AD_NOT_FOUND", err.Error())
		case errors.Is(err, ErrEmptyText):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create comment")
		}
		return
	}
	response.Success(c, http.StatusCreated, cm)
}

func (h *Handler) ListByAd(c *gin.Context) {
	adID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid ad id")
		return
	}

	comments, err := h.service.ListByAd(c.Request.Context(), adID)
	if err != nil {
		if errors.Is(err, ErrAdNotFound) {
			response.Error(c, http.StatusNotFound, "AD_NOT_FOUND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list comments")
		return
	}
	response.Success(c, http.StatusOK, comments)
}
