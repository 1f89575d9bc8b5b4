package verification

import (
	"errors"
	"net/http"
	"strconv"

	"qavat/internal/domain"
	"qavat/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes вешает маршруты на три группы: публичную (с optional-auth),
// защищённую и админскую.
func (h *Handler) RegisterRoutes(public, protected, admin *gin.RouterGroup) {
	public.GET("/ads/popular", h.ListPopular)

	protected.POST("/verification/gold", h.Submit)
	protected.GET("/verification/gold/my", h.ListMy)
	protected.POST("/verification/gold/:id/cancel", h.Cancel)

	admin.GET("/verification/gold", h.ListForAdmin)
	admin.GET("/verification/gold/ad/:ad_id", h.ListByAd)
	admin.PUT("/verification/gold/:id", h.Process)
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")
	r, err := h.service.Submit(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAdNotFound):
			response.Error(c, http.StatusNotFound, "AD_NOT_FOUND", "Ad not found")
		case errors.Is(err, ErrNotVerified):
			response.Error(c, http.StatusForbidden, "NOT_VERIFIED", err.Error())
		case errors.Is(err, ErrAlreadyPending):
			response.Error(c, http.StatusConflict, "ALREADY_PENDING", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit verification request")
		}
		return
	}

	response.Success(c, http.StatusCreated, toRequestResponse(r))
}

func (h *Handler) Process(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request id")
		return
	}

	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	adminID := c.GetInt64("user_id")
	r, err := h.service.Process(c.Request.Context(), adminID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrRequestNotFound):
			response.Error(c, http.StatusNotFound, "REQUEST_NOT_FOUND", err.Error())
		case errors.Is(err, ErrAlreadyProcessed):
			response.Error(c, http.StatusConflict, "ALREADY_PROCESSED", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process verification request")
		}
		return
	}

	response.Success(c, http.StatusOK, toRequestResponse(r))
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request id")
		return
	}

	userID := c.GetInt64("user_id")
	r, err := h.service.Cancel(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			response.Error(c, http.StatusNotFound, "REQUEST_NOT_FOUND", err.Error())
		case errors.Is(err, ErrNotPending):
			response.Error(c, http.StatusConflict, "NOT_PENDING", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel verification request")
		}
		return
	}

	response.Success(c, http.StatusOK, toRequestResponse(r))
}

func (h *Handler) ListMy(c *gin.Context) {
	userID := c.GetInt64("user_id")
	rs, err := h.service.ListMy(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list verification requests")
		return
	}
	response.Success(c, http.StatusOK, toRequestResponses(rs))
}

// ListForAdmin отдаёт либо все заявки, либо только pending (?status=pending).
func (h *Handler) ListForAdmin(c *gin.Context) {
	var (
		list []domain.GoldVerificationRequest
		err  error
	)
	if c.Query("status") == "pending" {
		list, err = h.service.ListPending(c.Request.Context())
	} else {
		list, err = h.service.ListAll(c.Request.Context())
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list verification requests")
		return
	}
	response.Success(c, http.StatusOK, toRequestResponses(list))
}

func (h *Handler) ListByAd(c *gin.Context) {
	adID, err := strconv.ParseInt(c.Param("ad_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid ad id")
		return
	}

	rs, err := h.service.ListByAd(c.Request.Context(), adID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list verification requests")
		return
	}
	response.Success(c, http.StatusOK, toRequestResponses(rs))
}

func (h *Handler) ListPopular(c *gin.Context) {
	viewerID := c.GetInt64("user_id") // 0 для анонима

	ads, err := h.service.ListPopular(c.Request.Context(), viewerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list gold ads")
		return
	}
	response.Success(c, http.StatusOK, ads)
}
