package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

const (
	// MaxSlotDuration caps a single reservation.
	MaxSlotDuration = 2 * time.Hour
	// MaxDailyDuration caps the sum of a user's non-cancelled reservations
	// whose start_time falls on one UTC calendar day.
	MaxDailyDuration = 2 * time.Hour
)

// Reservation holds a [StartTime, EndTime) slot on a court. UserID is the
// beneficiary; CreatedByUserID is the actor who booked it.
type Reservation struct {
	ID              uuid.UUID         `json:"id"`
	CourtID         uuid.UUID         `json:"court_id"`
	UserID          uuid.UUID         `json:"user_id"`
	CreatedByUserID uuid.UUID         `json:"created_by_user_id"`
	StartTime       time.Time         `json:"start_time"`
	EndTime         time.Time         `json:"end_time"`
	Status          ReservationStatus `json:"status"`
	CancelledBy     *uuid.UUID        `json:"cancelled_by,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

func (r *Reservation) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Overlaps reports half-open interval intersection: touching boundaries
// (r.EndTime == start) do not conflict.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && r.EndTime.After(start)
}

type EventType string

const (
	EventCreated   EventType = "created"
	EventConfirmed EventType = "confirmed"
	EventReminder  EventType = "reminder"
	EventCancelled EventType = "cancelled"
)

type ReservationEvent struct {
	ID            uuid.UUID `json:"id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	Type          EventType `json:"type"`
	Payload       string    `json:"payload,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
