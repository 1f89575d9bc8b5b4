package favourite

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

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/favourites/:ad_id", h.Add)
	protected.DELETE("/favourites/:ad_id", h.Remove)
	protected.GET("/favourites", h.List)
	protected.GET("/favourites/:ad_id/check", h.Check)
}

func adIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("ad_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid ad id")
		return 0, false
	}
	return id, true
}

func (h *Handler) Add(c *gin.Context) {
	adID, ok := adIDParam(c)
	if !ok {
		return
	}

	fav, err := h.service.Add(c.Request.Context(), c.GetInt64("user_id"), adID)
	if err != nil {
		if errors.Is(err, ErrAdNotFound) {
			response.Error(c, http.StatusNotFound, "AD_NOT_FOUND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to add favourite")
		return
	}
	response.Success(c, http.StatusCreated, fav)
}

func (h *Handler) Remove(c *gin.Context) {
	adID, ok := adIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), c.GetInt64("user_id"), adID); err != nil {
		if errors.Is(err, ErrNotInList) {
			response.Error(c, http.StatusNotFound, "NOT_IN_FAVOURITES", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to remove favourite")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": true})
}

func (h *Handler) List(c *gin.Context) {
	favs, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list favourites")
		return
	}
	response.Success(c, http.StatusOK, favs)
}

func (h *Handler) Check(c *gin.Context) {
	adID, ok := adIDParam(c)
	if !ok {
		return
	}

	exists, err := h.service.Check(c.Request.Context(), c.GetInt64("user_id"), adID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check favourite")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"is_favourited": exists})
}
