package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/example/tavola/internal/models"
)

// SecurityEventRepository appends to and reads the append-only auth log.
type SecurityEventRepository interface {
	Append(ctx context.Context, event *models.SecurityEvent) error
	Recent(ctx context.Context, limit, offset int) ([]models.SecurityEvent, int64, error)
}

type securityEventRepo struct {
	db *gorm.DB
}

func NewSecurityEventRepository(db *gorm.DB) SecurityEventRepository {
	return &securityEventRepo{db: db}
}

func (r *securityEventRepo) Append(ctx context.Context, event *models.SecurityEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *securityEventRepo) Recent(ctx context.Context, limit, offset int) ([]models.SecurityEvent, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.SecurityEvent{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.SecurityEvent
	err := r.db.WithContext(ctx).Limit(limit).Offset(offset).
		Order("created_at desc").Find(&events).Error
	return events, total, err
}
