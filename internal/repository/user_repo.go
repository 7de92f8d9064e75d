package repository

import (
	"context"
	"strings"
	"time"

	"quadra/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID         uuid.UUID  `gorm:"column:id;primaryKey;type:uuid"`
	Email      string     `gorm:"column:email;uniqueIndex"`
	Name       string     `gorm:"column:name"`
	Phone      *string    `gorm:"column:phone"`
	UnitNumber *string    `gorm:"column:unit_number"`
	BirthDate  *time.Time `gorm:"column:birth_date"`
	Status     string     `gorm:"column:status;index"`
	Role       string     `gorm:"column:role;index"`
	TowerID    *uuid.UUID `gorm:"column:tower_id;type:uuid;index"`
	IsVerified bool       `gorm:"column:is_verified"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	var phone, unit string
	if m.Phone != nil {
		phone = *m.Phone
	}
	if m.UnitNumber != nil {
		unit = *m.UnitNumber
	}

	return &domain.User{
		ID:         m.ID,
		Email:      m.Email,
		Name:       m.Name,
		Phone:      phone,
		UnitNumber: unit,
		BirthDate:  m.BirthDate,
		Status:     domain.UserStatus(m.Status),
		Role:       domain.Role(m.Role),
		TowerID:    m.TowerID,
		IsVerified: m.IsVerified,
		CreatedAt:  m.CreatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	email := strings.TrimSpace(strings.ToLower(u.Email))

	var phone, unit *string
	if u.Phone != "" {
		v := u.Phone
		phone = &v
	}
	if u.UnitNumber != "" {
		v := u.UnitNumber
		unit = &v
	}

	return userModel{
		ID:         u.ID,
		Email:      email,
		Name:       u.Name,
		Phone:      phone,
		UnitNumber: unit,
		BirthDate:  u.BirthDate,
		Status:     string(u.Status),
		Role:       string(u.Role),
		TowerID:    u.TowerID,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	email = strings.TrimSpace(strings.ToLower(email))
	tx := r.db.WithContext(ctx).First(&m, "email = ?", email)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	return r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", m.ID).
		Select("email", "name", "phone", "unit_number", "birth_date",
			"status", "role", "tower_id", "is_verified").
		Updates(&m).Error
}

// UserListFilter narrows the admin listing.
type UserListFilter struct {
	Role    string
	Status  string
	TowerID *uuid.UUID
	Query   string
}

func (r *UserRepository) List(ctx context.Context, filter UserListFilter, limit, offset int) ([]domain.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&userModel{})

	if strings.TrimSpace(filter.Role) != "" {
		q = q.Where("role = ?", strings.TrimSpace(filter.Role))
	}
	if strings.TrimSpace(filter.Status) != "" {
		q = q.Where("status = ?", strings.TrimSpace(filter.Status))
	}
	if filter.TowerID != nil {
		q = q.Where("tower_id = ?", *filter.TowerID)
	}
	if strings.TrimSpace(filter.Query) != "" {
		sv := "%" + strings.ToLower(strings.TrimSpace(filter.Query)) + "%"
		q = q.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", sv, sv)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []userModel
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	users := make([]domain.User, 0, len(models))
	for _, m := range models {
		users = append(users, *toDomainUser(m))
	}
	return users, total, nil
}

func (r *UserRepository) CountByStatus(ctx context.Context, status domain.UserStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&userModel{}).Where("status = ?", string(status)).Count(&n).Error
	return n, err
}

func (r *UserRepository) DB() *gorm.DB { return r.db }
