package category

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

func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/categories", h.List)
	public.GET("/categories/roots", h.ListRoots)
	public.GET("/categories/:id", h.Get)

	admin.POST("/categories", h.Create)
	admin.PUT("/categories/:id", h.Update)
	admin.DELETE("/categories/:id", h.Delete)
}

func (h *Handler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", err.Error())
	case errors.Is(err, ErrParentNotFound):
		response.Error(c, http.StatusNotFound, "PARENT_NOT_FOUND", err.Error())
	case errors.Is(err, ErrSelfParent), errors.Is(err, ErrNoNames):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrHasChildren), errors.Is(err, ErrHasAds):
		response.Error(c, http.StatusConflict, "CATEGORY_IN_USE", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	cat, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toResponse(cat))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid category id")
		return
	}

	cat, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(cat))
}

func (h *Handler) List(c *gin.Context) {
	cats, err := h.service.List(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponses(cats))
}

func (h *Handler) ListRoots(c *gin.Context) {
	cats, err := h.service.ListRoots(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponses(cats))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid category id")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	cat, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(cat))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid category id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
