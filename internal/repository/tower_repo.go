package repository

import (
	"context"

	"quadra/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TowerRepository struct {
	db *gorm.DB
}

func NewTowerRepository(db *gorm.DB) *TowerRepository {
	return &TowerRepository{db: db}
}

type towerModel struct {
	ID   uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	Name string    `gorm:"column:name;uniqueIndex"`
}

func (towerModel) TableName() string { return "towers" }

type unitModel struct {
	ID             uuid.UUID  `gorm:"column:id;primaryKey;type:uuid"`
	TowerID        uuid.UUID  `gorm:"column:tower_id;type:uuid;index"`
	Number         string     `gorm:"column:number"`
	ResidentUserID *uuid.UUID `gorm:"column:resident_user_id;type:uuid"`
}

func (unitModel) TableName() string { return "units" }

func (r *TowerRepository) Create(ctx context.Context, t *domain.Tower) error {
	m := towerModel{ID: t.ID, Name: t.Name}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	t.ID = m.ID
	return nil
}

func (r *TowerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tower, error) {
	var m towerModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &domain.Tower{ID: m.ID, Name: m.Name}, nil
}

func (r *TowerRepository) List(ctx context.Context) ([]domain.Tower, error) {
	var models []towerModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	towers := make([]domain.Tower, 0, len(models))
	for _, m := range models {
		towers = append(towers, domain.Tower{ID: m.ID, Name: m.Name})
	}
	return towers, nil
}

func (r *TowerRepository) CreateUnit(ctx context.Context, u *domain.Unit) error {
	m := unitModel{ID: u.ID, TowerID: u.TowerID, Number: u.Number, ResidentUserID: u.ResidentUserID}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	u.ID = m.ID
	return nil
}
