package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/tavola/internal/cache"
	"github.com/example/tavola/internal/models"
)

type ContactInfoRepository interface {
	GetAll(ctx context.Context) ([]models.ContactInfo, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ContactInfo, error)
	Create(ctx context.Context, info *models.ContactInfo) error
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*models.ContactInfo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type contactInfoRepo struct {
	db    *gorm.DB
	store cache.Store
}

func NewContactInfoRepository(db *gorm.DB, store cache.Store) ContactInfoRepository {
	return &contactInfoRepo{db: db, store: store}
}

func (r *contactInfoRepo) GetAll(ctx context.Context) ([]models.ContactInfo, error) {
	return listThrough(ctx, r.store, cacheContactInfo, func() ([]models.ContactInfo, error) {
		var items []models.ContactInfo
		err := r.db.WithContext(ctx).Order("created_at asc").Find(&items).Error
		return items, err
	})
}

func (r *contactInfoRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ContactInfo, error) {
	var item models.ContactInfo
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contactInfoRepo) Create(ctx context.Context, info *models.ContactInfo) error {
	if err := r.db.WithContext(ctx).Create(info).Error; err != nil {
		return err
	}
	r.store.Invalidate(ctx, cacheContactInfo)
	return nil
}

func (r *contactInfoRepo) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*models.ContactInfo, error) {
	res := r.db.WithContext(ctx).Model(&models.ContactInfo{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	r.store.Invalidate(ctx, cacheContactInfo)

	var item models.ContactInfo
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contactInfoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.ContactInfo{}, "id = ?", id).Error; err != nil {
		return err
	}
	r.store.Invalidate(ctx, cacheContactInfo)
	return nil
}
