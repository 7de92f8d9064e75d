package admin

import (
	"time"

	"github.com/google/uuid"
)

type AssignRoleRequest struct {
	UserID  uuid.UUID  `json:"user_id" binding:"required"`
	Role    string     `json:"role" binding:"required"`
	TowerID *uuid.UUID `json:"tower_id"`
}

type CreateBlackoutRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Reason    string    `json:"reason"`
}

type StatsResponse struct {
	ActiveUsers      int64 `json:"active_users"`
	PendingUsers     int64 `json:"pending_users"`
	BlockedUsers     int64 `json:"blocked_users"`
	PendingApprovals int64 `json:"pending_approvals"`
	Reservations     int64 `json:"reservations"`
	ReservationsWeek int64 `json:"reservations_last_7d"`
}
