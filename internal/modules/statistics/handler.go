package statistics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"qavat/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler отдаёт агрегаты только администраторам.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/statistics/totals", h.Totals)
	admin.GET("/statistics/overview", h.Overview)
	admin.GET("/statistics/ads/by-month", h.AdsByMonth)
	admin.GET("/statistics/ads/by-year", h.AdsInYear)
	admin.GET("/statistics/realtors/ranking", h.RealtorRanking)
	admin.GET("/statistics/timeseries", h.Timeseries)
}

func yearParam(c *gin.Context) int {
	year, err := strconv.Atoi(c.DefaultQuery("year", ""))
	if err != nil || year <= 0 {
		return time.Now().UTC().Year()
	}
	return year
}

func (h *Handler) Totals(c *gin.Context) {
	out, err := h.service.Totals(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute totals")
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Overview(c *gin.Context) {
	out, err := h.service.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute overview")
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) AdsByMonth(c *gin.Context) {
	year := yearParam(c)

	if m := c.Query("month"); m != "" {
		month, err := strconv.Atoi(m)
		if err != nil || month < 1 || month > 12 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "month must be in 1..12")
			return
		}
		count, err := h.service.AdsInMonth(c.Request.Context(), year, month)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute statistics")
			return
		}
		response.Success(c, http.StatusOK, MonthCount{Year: year, Month: month, Count: count})
		return
	}

	out, err := h.service.AdsByMonth(c.Request.Context(), year)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute statistics")
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) AdsInYear(c *gin.Context) {
	year := yearParam(c)
	count, err := h.service.AdsInYear(c.Request.Context(), year)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute statistics")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"year": year, "count": count})
}

func (h *Handler) RealtorRanking(c *gin.Context) {
	out, err := h.service.RealtorRanking(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute ranking")
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Timeseries(c *gin.Context) {
	sy, err1 := strconv.Atoi(c.Query("start_year"))
	sm, err2 := strconv.Atoi(c.Query("start_month"))
	ey, err3 := strconv.Atoi(c.Query("end_year"))
	em, err4 := strconv.Atoi(c.Query("end_month"))
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil ||
		sm < 1 || sm > 12 || em < 1 || em > 12 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start_year, start_month, end_year and end_month are required")
		return
	}

	out, err := h.service.Timeseries(c.Request.Context(), sy, sm, ey, em)
	if err != nil {
		if errors.Is(err, ErrBadRange) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute timeseries")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"months": out})
}
