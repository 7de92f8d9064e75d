package domain

import (
	"time"

	"github.com/google/uuid"
)

type Court struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	IsActive bool      `json:"is_active"`
}

// BlackoutWindow is reserved capacity: the admission pipeline treats any
// reservation intersecting a window as a conflict.
type BlackoutWindow struct {
	ID        uuid.UUID `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Reason    string    `json:"reason"`
	CreatedBy uuid.UUID `json:"created_by"`
}
