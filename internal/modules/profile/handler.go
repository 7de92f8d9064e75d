package profile

import (
	"errors"
	"net/http"

	"quadra/internal/domain"
	"quadra/internal/middleware"
	"quadra/internal/pkg/response"
	"quadra/internal/pkg/validator"

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
	// available pre-approval so applicants can fill in their details
	rg.GET("/users/me", h.Me)
	rg.PATCH("/users/me/profile", h.UpdateProfile)
	rg.POST("/users/me/change-requests", h.SubmitChange)

	decide := rg.Group("/change-requests")
	decide.Use(
		middleware.RequireActive(),
		middleware.RequireRoles(
			domain.RoleDoorman,
			domain.RoleSubManager,
			domain.RoleGeneralManager,
			domain.RoleSuperuser,
		),
	)
	{
		decide.GET("/pending", h.ListPending)
		decide.POST("/:id/approve", h.Approve)
		decide.POST("/:id/reject", h.Reject)
	}
}

func (h *Handler) Me(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": actor})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), actor, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) SubmitChange(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var input ChangeRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "field and new_value are required")
		return
	}
	if errs := validator.Validate(&input); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	req, err := h.service.SubmitChange(c.Request.Context(), actor, input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"request": req})
}

func (h *Handler) ListPending(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	requests, err := h.service.ListPending(c.Request.Context(), actor)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

func (h *Handler) Approve(c *gin.Context) {
	actor, requestID, note, ok := h.decisionInput(c)
	if !ok {
		return
	}

	req, err := h.service.Approve(c.Request.Context(), actor, requestID, note)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"request": req})
}

func (h *Handler) Reject(c *gin.Context) {
	actor, requestID, note, ok := h.decisionInput(c)
	if !ok {
		return
	}

	req, err := h.service.Reject(c.Request.Context(), actor, requestID, note)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"request": req})
}

func (h *Handler) decisionInput(c *gin.Context) (*domain.User, uuid.UUID, string, bool) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return nil, uuid.Nil, "", false
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request ID")
		return nil, uuid.Nil, "", false
	}

	var body DecisionRequest
	// body is optional for decisions
	_ = c.ShouldBindJSON(&body)

	return actor, requestID, body.Justification, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case errors.Is(err, ErrUnknownField):
		response.Error(c, http.StatusBadRequest, "UNKNOWN_FIELD", "Field cannot be changed by request")
	case errors.Is(err, ErrAlreadyDecided):
		response.Error(c, http.StatusBadRequest, "ALREADY_DECIDED", "Request is already decided")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Tower scope violation")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
