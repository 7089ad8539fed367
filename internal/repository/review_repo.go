package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/tavola/internal/cache"
	"github.com/example/tavola/internal/models"
)

type ReviewRepository interface {
	GetAll(ctx context.Context) ([]models.Review, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*models.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewRepo struct {
	db    *gorm.DB
	store cache.Store
}

func NewReviewRepository(db *gorm.DB, store cache.Store) ReviewRepository {
	return &reviewRepo{db: db, store: store}
}

func (r *reviewRepo) GetAll(ctx context.Context) ([]models.Review, error) {
	return listThrough(ctx, r.store, cacheReviews, func() ([]models.Review, error) {
		var items []models.Review
		err := r.db.WithContext(ctx).Order("created_at desc").Find(&items).Error
		return items, err
	})
}

func (r *reviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var item models.Review
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *reviewRepo) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return err
	}
	r.store.Invalidate(ctx, cacheReviews)
	return nil
}

func (r *reviewRepo) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*models.Review, error) {
	res := r.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	r.store.Invalidate(ctx, cacheReviews)

	var item models.Review
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *reviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", id).Error; err != nil {
		return err
	}
	r.store.Invalidate(ctx, cacheReviews)
	return nil
}
