package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"huddle/internal/models/db_models"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *db_models.Alert) error
	DeleteAllByMember(ctx context.Context, memberID uuid.UUID) error
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *db_models.Alert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

// DeleteAllByMember hard-deletes every alert row for the member so a new
// alert cycle starts from a clean slate.
func (r *alertRepository) DeleteAllByMember(ctx context.Context, memberID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Delete(&db_models.Alert{}).Error
}
