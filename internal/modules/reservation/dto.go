package reservation

import (
	"time"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	CourtID           uuid.UUID  `json:"court_id" binding:"required"`
	StartTime         time.Time  `json:"start_time" binding:"required"`
	EndTime           time.Time  `json:"end_time" binding:"required"`
	Notes             string     `json:"notes"`
	ReservedForUserID *uuid.UUID `json:"reserved_for_user_id"`
}
