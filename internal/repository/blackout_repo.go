package repository

import (
	"context"
	"time"

	"quadra/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlackoutRepository struct {
	db *gorm.DB
}

func NewBlackoutRepository(db *gorm.DB) *BlackoutRepository {
	return &BlackoutRepository{db: db}
}

type blackoutWindowModel struct {
	ID        uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	StartTime time.Time `gorm:"column:start_time;index"`
	EndTime   time.Time `gorm:"column:end_time;index"`
	Reason    string    `gorm:"column:reason"`
	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid"`
}

func (blackoutWindowModel) TableName() string { return "blackout_windows" }

func toDomainBlackout(m blackoutWindowModel) *domain.BlackoutWindow {
	return &domain.BlackoutWindow{
		ID:        m.ID,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
		Reason:    m.Reason,
		CreatedBy: m.CreatedBy,
	}
}

func (r *BlackoutRepository) Create(ctx context.Context, w *domain.BlackoutWindow) error {
	m := blackoutWindowModel{
		ID:        w.ID,
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
		Reason:    w.Reason,
		CreatedBy: w.CreatedBy,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	w.ID = m.ID
	return nil
}

func (r *BlackoutRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx).Delete(&blackoutWindowModel{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BlackoutRepository) List(ctx context.Context, from time.Time) ([]domain.BlackoutWindow, error) {
	var models []blackoutWindowModel
	if err := r.db.WithContext(ctx).
		Where("end_time > ?", from).
		Order("start_time ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	windows := make([]domain.BlackoutWindow, 0, len(models))
	for _, m := range models {
		windows = append(windows, *toDomainBlackout(m))
	}
	return windows, nil
}
