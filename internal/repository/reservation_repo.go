package repository

import (
	"context"
	"errors"
	"time"

	"quadra/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admission failures surfaced by CreateConfirmed, in check order.
var (
	ErrDailyQuotaExceeded = errors.New("daily reservation quota exceeded")
	ErrSlotTaken          = errors.New("time slot already reserved")
	ErrBlackout           = errors.New("slot falls inside a blackout window")
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID              uuid.UUID  `gorm:"column:id;primaryKey;type:uuid"`
	CourtID         uuid.UUID  `gorm:"column:court_id;type:uuid;index"`
	UserID          uuid.UUID  `gorm:"column:user_id;type:uuid;index"`
	CreatedByUserID uuid.UUID  `gorm:"column:created_by_user_id;type:uuid"`
	StartTime       time.Time  `gorm:"column:start_time;index"`
	EndTime         time.Time  `gorm:"column:end_time;index"`
	Status          string     `gorm:"column:status;index"`
	CancelledBy     *uuid.UUID `gorm:"column:cancelled_by;type:uuid"`
	Notes           *string    `gorm:"column:notes"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
}

func (reservationModel) TableName() string { return "reservations" }

func toDomainReservation(m reservationModel) *domain.Reservation {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.Reservation{
		ID:              m.ID,
		CourtID:         m.CourtID,
		UserID:          m.UserID,
		CreatedByUserID: m.CreatedByUserID,
		StartTime:       m.StartTime,
		EndTime:         m.EndTime,
		Status:          domain.ReservationStatus(m.Status),
		CancelledBy:     m.CancelledBy,
		Notes:           notes,
		CreatedAt:       m.CreatedAt,
	}
}

func toReservationModel(r *domain.Reservation) reservationModel {
	var notes *string
	if r.Notes != "" {
		v := r.Notes
		notes = &v
	}

	return reservationModel{
		ID:              r.ID,
		CourtID:         r.CourtID,
		UserID:          r.UserID,
		CreatedByUserID: r.CreatedByUserID,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		Status:          string(r.Status),
		CancelledBy:     r.CancelledBy,
		Notes:           notes,
		CreatedAt:       r.CreatedAt,
	}
}

// CreateConfirmed admits the reservation inside one transaction: daily
// quota, same-court overlap and blackout windows are re-checked against
// committed state right before the insert. On PostgreSQL the
// no_double_booking exclusion constraint backs the overlap scan; the
// service maps that driver error as well.
func (r *ReservationRepository) CreateConfirmed(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.Status = string(domain.ReservationConfirmed)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	dayStart := time.Date(
		res.StartTime.Year(), res.StartTime.Month(), res.StartTime.Day(),
		0, 0, 0, 0, time.UTC,
	)
	dayEnd := dayStart.Add(24 * time.Hour)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		used, err := sumDailyUsage(tx, res.UserID, dayStart, dayEnd)
		if err != nil {
			return err
		}
		if used+res.Duration() > domain.MaxDailyDuration {
			return ErrDailyQuotaExceeded
		}

		var overlapping int64
		if err := tx.Model(&reservationModel{}).
			Where("court_id = ?", res.CourtID).
			Where("status <> ?", string(domain.ReservationCancelled)).
			Where("start_time < ? AND end_time > ?", res.EndTime, res.StartTime).
			Count(&overlapping).Error; err != nil {
			return err
		}
		if overlapping > 0 {
			return ErrSlotTaken
		}

		var blackouts int64
		if err := tx.Model(&blackoutWindowModel{}).
			Where("start_time < ? AND end_time > ?", res.EndTime, res.StartTime).
			Count(&blackouts).Error; err != nil {
			return err
		}
		if blackouts > 0 {
			return ErrBlackout
		}

		return tx.Create(&m).Error
	})
	if err != nil {
		return err
	}

	*res = *toDomainReservation(m)
	return nil
}

func sumDailyUsage(tx *gorm.DB, userID uuid.UUID, dayStart, dayEnd time.Time) (time.Duration, error) {
	var rows []reservationModel
	if err := tx.
		Where("user_id = ?", userID).
		Where("status <> ?", string(domain.ReservationCancelled)).
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Find(&rows).Error; err != nil {
		return 0, err
	}

	var used time.Duration
	for _, row := range rows {
		used += row.EndTime.Sub(row.StartTime)
	}
	return used, nil
}

// SumDailyUsage reports the beneficiary's booked time for one UTC day,
// cancelled slots excluded.
func (r *ReservationRepository) SumDailyUsage(ctx context.Context, userID uuid.UUID, dayStart, dayEnd time.Time) (time.Duration, error) {
	return sumDailyUsage(r.db.WithContext(ctx), userID, dayStart, dayEnd)
}

func (r *ReservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	var m reservationModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return toDomainReservation(m), nil
}

// Cancel marks the reservation cancelled and records the actor. Cancelled
// rows stay in place; every admission query excludes them.
func (r *ReservationRepository) Cancel(ctx context.Context, id, actorID uuid.UUID) (*domain.Reservation, error) {
	tx := r.db.WithContext(ctx).Model(&reservationModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       string(domain.ReservationCancelled),
			"cancelled_by": actorID,
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// ListForDay returns non-cancelled reservations starting on the given UTC
// day, earliest first. courtID narrows to one court when non-nil.
func (r *ReservationRepository) ListForDay(ctx context.Context, courtID *uuid.UUID, dayStart, dayEnd time.Time) ([]domain.Reservation, error) {
	q := r.db.WithContext(ctx).
		Where("status <> ?", string(domain.ReservationCancelled)).
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd)
	if courtID != nil {
		q = q.Where("court_id = ?", *courtID)
	}

	var models []reservationModel
	if err := q.Order("start_time ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainReservations(models), nil
}

func (r *ReservationRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Reservation, error) {
	var models []reservationModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainReservations(models), nil
}

// FindDueReminders returns confirmed reservations starting inside
// [from, to) that have no reminder event yet.
func (r *ReservationRepository) FindDueReminders(ctx context.Context, from, to time.Time) ([]domain.Reservation, error) {
	var models []reservationModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.ReservationConfirmed)).
		Where("start_time >= ? AND start_time < ?", from, to).
		Where("NOT EXISTS (SELECT 1 FROM reservation_events e WHERE e.reservation_id = reservations.id AND e.type = ?)",
			string(domain.EventReminder)).
		Order("start_time ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainReservations(models), nil
}

func (r *ReservationRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&reservationModel{}).Count(&n).Error
	return n, err
}

func (r *ReservationRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&reservationModel{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&n).Error
	return n, err
}

func toDomainReservations(models []reservationModel) []domain.Reservation {
	out := make([]domain.Reservation, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainReservation(m))
	}
	return out
}

func (r *ReservationRepository) DB() *gorm.DB { return r.db }
