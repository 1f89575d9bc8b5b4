package ad

import (
	"errors"
	"net/http"
	"strconv"

	"qavat/internal/pkg/response"
	"qavat/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/ads", h.List)
	public.GET("/ads/nearby", h.Nearby)
	public.GET("/ads/:id", h.Get)

	protected.POST("/ads", h.Create)
	protected.GET("/ads/my", h.MyAds)
	protected.PUT("/ads/:id", h.Update)
	protected.DELETE("/ads/:id", h.Delete)
}

func (h *Handler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "AD_NOT_FOUND", "Ad not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrInvalidDealType),
		errors.Is(err, ErrInvalidCoordinates),
		errors.Is(err, ErrInvalidRadius):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrCategoryNotFound):
		response.Error(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	a, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid ad id")
		return
	}

	out, err := h.service.Get(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

// List разбирает независимые query-фильтры; незаданные не участвуют в запросе.
func (h *Handler) List(c *gin.Context) {
	f := repository.AdFilters{
		Search:   c.Query("search"),
		DealType: c.Query("deal_type"),
		City:     c.Query("city"),
	}

	if v := c.Query("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid category_id")
			return
		}
		f.CategoryID = &id
	}
	if v := c.Query("min_price"); v != "" {
		p, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid min_price")
			return
		}
		f.MinPrice = &p
	}
	if v := c.Query("max_price"); v != "" {
		p, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid max_price")
			return
		}
		f.MaxPrice = &p
	}
	if v := c.Query("rooms_count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid rooms_count")
			return
		}
		f.RoomsCount = &n
	}
	if v := c.Query("min_area"); v != "" {
		a, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid min_area")
			return
		}
		f.MinArea = &a
	}
	if v := c.Query("max_area"); v != "" {
		a, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid max_area")
			return
		}
		f.MaxArea = &a
	}
	f.Skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	out, err := h.service.List(c.Request.Context(), f, c.GetInt64("user_id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Nearby(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("latitude"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("longitude"), 64)
	radius, errRad := strconv.ParseFloat(c.DefaultQuery("radius_km", "5"), 64)
	if errLat != nil || errLon != nil || errRad != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "latitude, longitude and radius_km must be numbers")
		return
	}

	out, err := h.service.Nearby(c.Request.Context(), lat, lon, radius, c.GetInt64("user_id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) MyAds(c *gin.Context) {
	out, err := h.service.MyAds(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid ad id")
		return
	}

	var req UpdateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"), req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid ad id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role")); err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
