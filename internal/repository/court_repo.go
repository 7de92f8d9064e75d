package repository

import (
	"context"

	"quadra/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourtRepository struct {
	db *gorm.DB
}

func NewCourtRepository(db *gorm.DB) *CourtRepository {
	return &CourtRepository{db: db}
}

type courtModel struct {
	ID       uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	Name     string    `gorm:"column:name"`
	IsActive bool      `gorm:"column:is_active"`
}

func (courtModel) TableName() string { return "courts" }

func toDomainCourt(m courtModel) *domain.Court {
	return &domain.Court{ID: m.ID, Name: m.Name, IsActive: m.IsActive}
}

func (r *CourtRepository) Create(ctx context.Context, c *domain.Court) error {
	m := courtModel{ID: c.ID, Name: c.Name, IsActive: c.IsActive}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	c.ID = m.ID
	return nil
}

func (r *CourtRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Court, error) {
	var m courtModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return toDomainCourt(m), nil
}

func (r *CourtRepository) ListActive(ctx context.Context) ([]domain.Court, error) {
	var models []courtModel
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	courts := make([]domain.Court, 0, len(models))
	for _, m := range models {
		courts = append(courts, *toDomainCourt(m))
	}
	return courts, nil
}
