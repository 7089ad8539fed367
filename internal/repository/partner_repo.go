package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/tavola/internal/cache"
	"github.com/example/tavola/internal/models"
)

type PartnerRepository interface {
	// GetAll returns partners sorted by display_order ascending.
	GetAll(ctx context.Context) ([]models.Partner, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Partner, error)
	Create(ctx context.Context, partner *models.Partner) error
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*models.Partner, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// NextDisplayOrder returns max(display_order)+1, or 0 for an empty table.
	NextDisplayOrder(ctx context.Context) (int, error)
	// SetDisplayOrder persists a single row's display_order.
	SetDisplayOrder(ctx context.Context, id uuid.UUID, order int) error
}

type partnerRepo struct {
	db    *gorm.DB
	store cache.Store
}

func NewPartnerRepository(db *gorm.DB, store cache.Store) PartnerRepository {
	return &partnerRepo{db: db, store: store}
}

func (r *partnerRepo) GetAll(ctx context.Context) ([]models.Partner, error) {
	return listThrough(ctx, r.store, cachePartners, func() ([]models.Partner, error) {
		var items []models.Partner
		err := r.db.WithContext(ctx).Order("display_order asc, created_at asc").Find(&items).Error
		return items, err
	})
}

func (r *partnerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	var item models.Partner
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *partnerRepo) Create(ctx context.Context, partner *models.Partner) error {
	if err := r.db.WithContext(ctx).Create(partner).Error; err != nil {
		return err
	}
	r.store.Invalidate(ctx, cachePartners)
	return nil
}

func (r *partnerRepo) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*models.Partner, error) {
	res := r.db.WithContext(ctx).Model(&models.Partner{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	r.store.Invalidate(ctx, cachePartners)

	var item models.Partner
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *partnerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Partner{}, "id = ?", id).Error; err != nil {
		return err
	}
	r.store.Invalidate(ctx, cachePartners)
	return nil
}

func (r *partnerRepo) NextDisplayOrder(ctx context.Context) (int, error) {
	var next int
	err := r.db.WithContext(ctx).Model(&models.Partner{}).
		Select("COALESCE(MAX(display_order) + 1, 0)").
		Scan(&next).Error
	return next, err
}

func (r *partnerRepo) SetDisplayOrder(ctx context.Context, id uuid.UUID, order int) error {
	err := r.db.WithContext(ctx).Model(&models.Partner{}).
		Where("id = ?", id).
		Update("display_order", order).Error
	if err != nil {
		return err
	}
	r.store.Invalidate(ctx, cachePartners)
	return nil
}
