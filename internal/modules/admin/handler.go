package admin

import (
	"context"
	"errors"
	"net/http"
	"strconv"

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
	grp := rg.Group("/admin")
	grp.Use(middleware.RequireActive())

	staff := grp.Group("")
	staff.Use(middleware.RequireRoles(
		domain.RoleDoorman,
		domain.RoleSubManager,
		domain.RoleGeneralManager,
		domain.RoleSuperuser,
	))
	{
		staff.GET("/users", h.ListUsers)
	}

	managers := grp.Group("")
	managers.Use(middleware.RequireRoles(
		domain.RoleSubManager,
		domain.RoleGeneralManager,
		domain.RoleSuperuser,
	))
	{
		managers.POST("/assign-role", h.AssignRole)
		managers.POST("/users/:id/block", h.BlockUser)
		managers.POST("/users/:id/unblock", h.UnblockUser)
	}

	admins := grp.Group("")
	admins.Use(middleware.RequireRoles(
		domain.RoleGeneralManager,
		domain.RoleSuperuser,
	))
	{
		admins.GET("/stats", h.Stats)
		admins.POST("/blackouts", h.CreateBlackout)
		admins.GET("/blackouts", h.ListBlackouts)
		admins.DELETE("/blackouts/:id", h.DeleteBlackout)
	}
}

func (h *Handler) AssignRole(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "user_id and role are required")
		return
	}

	user, err := h.service.AssignRole(c.Request.Context(), actor, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ok": true, "user": user})
}

func (h *Handler) ListUsers(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	q := ListUsersQuery{
		Role:   c.Query("role"),
		Status: c.Query("status"),
		Query:  c.Query("q"),
	}
	if raw := c.Query("tower_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid tower_id")
			return
		}
		q.TowerID = &id
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, total, err := h.service.ListUsers(c.Request.Context(), actor, q)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"users": users,
		"total": total,
		"page":  q.Page,
		"limit": q.Limit,
	})
}

func (h *Handler) BlockUser(c *gin.Context) {
	h.setStatus(c, h.service.BlockUser)
}

func (h *Handler) UnblockUser(c *gin.Context) {
	h.setStatus(c, h.service.UnblockUser)
}

func (h *Handler) setStatus(c *gin.Context, op func(ctx context.Context, actor *domain.User, userID uuid.UUID) (*domain.User, error)) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user ID")
		return
	}

	user, err := op(c.Request.Context(), actor, userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

func (h *Handler) CreateBlackout(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CreateBlackoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start_time and end_time are required")
		return
	}

	window, err := h.service.CreateBlackout(c.Request.Context(), actor, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"blackout": window})
}

func (h *Handler) ListBlackouts(c *gin.Context) {
	windows, err := h.service.ListBlackouts(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"blackouts": windows})
}

func (h *Handler) DeleteBlackout(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid blackout ID")
		return
	}

	if err := h.service.DeleteBlackout(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Operation not permitted for your role")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
