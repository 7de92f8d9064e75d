package reservation

import (
	"errors"
	"net/http"

	"quadra/internal/domain"
	"quadra/internal/middleware"
	"quadra/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.CreateReservation)
	rg.POST("/reservations/:id/cancel", h.CancelReservation)
	rg.GET("/reservations", h.ListForDay)
	rg.GET("/reservations/mine", h.ListMine)
}

func (h *Handler) CreateReservation(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.CreateReservation(c.Request.Context(), actor, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) CancelReservation(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation ID")
		return
	}

	res, err := h.service.CancelReservation(c.Request.Context(), actor, id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) ListForDay(c *gin.Context) {
	var courtID *uuid.UUID
	if raw := c.Query("court_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid court ID")
			return
		}
		courtID = &id
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date query parameter is required (YYYY-MM-DD)")
		return
	}

	list, err := h.service.ListForDay(c.Request.Context(), dateStr, courtID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservations": list})
}

func (h *Handler) ListMine(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	list, err := h.service.ListMine(c.Request.Context(), actor)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservations": list})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation request")
	case errors.Is(err, ErrQuotaExceeded):
		response.Error(c, http.StatusBadRequest, "QUOTA_EXCEEDED", "Daily limit exceeded (max 2h/day)")
	case errors.Is(err, domain.ErrNotActive):
		response.Error(c, http.StatusForbidden, "NOT_ELIGIBLE", "Beneficiary is not active")
	case errors.Is(err, domain.ErrMissingBirthDate):
		response.Error(c, http.StatusForbidden, "NOT_ELIGIBLE", "Beneficiary must set a birth date")
	case errors.Is(err, domain.ErrUnderage):
		response.Error(c, http.StatusForbidden, "NOT_ELIGIBLE", "Only 18+ can reserve the court")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, ErrSlotConflict):
		response.Error(c, http.StatusConflict, "RESERVATION_CONFLICT", "Time slot already reserved")
	case errors.Is(err, ErrBlackout):
		response.Error(c, http.StatusConflict, "BLACKOUT", "Slot falls inside a blackout window")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
