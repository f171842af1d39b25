package repositories

import (
	"context"

	"gorm.io/gorm"

	"huddle/internal/models/db_models"
)

type CheckInRepository interface {
	Create(ctx context.Context, checkIn *db_models.CheckIn) error
}

type checkInRepository struct {
	db *gorm.DB
}

func NewCheckInRepository(db *gorm.DB) CheckInRepository {
	return &checkInRepository{db: db}
}

func (r *checkInRepository) Create(ctx context.Context, checkIn *db_models.CheckIn) error {
	return r.db.WithContext(ctx).Create(checkIn).Error
}
