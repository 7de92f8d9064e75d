package repository

import (
	"context"
	"time"

	"quadra/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

type reservationEventModel struct {
	ID            uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	ReservationID uuid.UUID `gorm:"column:reservation_id;type:uuid;index"`
	Type          string    `gorm:"column:type"`
	Payload       string    `gorm:"column:payload"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (reservationEventModel) TableName() string { return "reservation_events" }

func (r *EventRepository) Append(ctx context.Context, ev *domain.ReservationEvent) error {
	m := reservationEventModel{
		ID:            ev.ID,
		ReservationID: ev.ReservationID,
		Type:          string(ev.Type),
		Payload:       ev.Payload,
		CreatedAt:     ev.CreatedAt,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	ev.ID = m.ID
	ev.CreatedAt = m.CreatedAt
	return nil
}

func (r *EventRepository) ListForReservation(ctx context.Context, reservationID uuid.UUID) ([]domain.ReservationEvent, error) {
	var models []reservationEventModel
	if err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	events := make([]domain.ReservationEvent, 0, len(models))
	for _, m := range models {
		events = append(events, domain.ReservationEvent{
			ID:            m.ID,
			ReservationID: m.ReservationID,
			Type:          domain.EventType(m.Type),
			Payload:       m.Payload,
			CreatedAt:     m.CreatedAt,
		})
	}
	return events, nil
}
