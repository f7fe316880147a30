package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/netscan/netscan-api/internal/domain"
	"github.com/netscan/netscan-api/internal/ports"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) Create(ctx context.Context, params ports.CreateUserParams) (domain.User, error) {
	rec := userModel{
		Name:          params.Name,
		Email:         params.Email,
		PasswordHash:  params.PasswordHash,
		SessionMarker: uuid.Nil,
		CreatedAt:     params.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrConflict
		}
		return domain.User{}, err
	}
	return toDomainUser(rec), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var rec userModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return toDomainUser(rec), nil
}

func (r *userRepository) GetByID(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	var rec userModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return toDomainUser(rec), nil
}

func (r *userRepository) UpdateName(ctx context.Context, userID uuid.UUID, name string, _ time.Time) (domain.User, error) {
	res := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("user_id = ?", userID).
		Update("name", name)
	if res.Error != nil {
		return domain.User{}, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.User{}, domain.ErrNotFound
	}
	return r.GetByID(ctx, userID)
}

func (r *userRepository) SetSessionMarker(ctx context.Context, userID uuid.UUID, marker uuid.UUID, at time.Time) error {
	updates := map[string]any{"session_marker": marker}
	if marker != uuid.Nil {
		updates["last_login_at"] = at
	}
	res := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
