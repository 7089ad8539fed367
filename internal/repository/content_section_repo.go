package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/tavola/internal/cache"
	"github.com/example/tavola/internal/models"
)

type ContentSectionRepository interface {
	GetAll(ctx context.Context) ([]models.ContentSection, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ContentSection, error)
	GetByKey(ctx context.Context, key string) (*models.ContentSection, error)
	Create(ctx context.Context, section *models.ContentSection) error
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*models.ContentSection, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type contentSectionRepo struct {
	db    *gorm.DB
	store cache.Store
}

func NewContentSectionRepository(db *gorm.DB, store cache.Store) ContentSectionRepository {
	return &contentSectionRepo{db: db, store: store}
}

func (r *contentSectionRepo) GetAll(ctx context.Context) ([]models.ContentSection, error) {
	return listThrough(ctx, r.store, cacheContentSections, func() ([]models.ContentSection, error) {
		var items []models.ContentSection
		err := r.db.WithContext(ctx).Order("section_key asc").Find(&items).Error
		return items, err
	})
}

func (r *contentSectionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ContentSection, error) {
	var item models.ContentSection
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentSectionRepo) GetByKey(ctx context.Context, key string) (*models.ContentSection, error) {
	var item models.ContentSection
	err := r.db.WithContext(ctx).First(&item, "section_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentSectionRepo) Create(ctx context.Context, section *models.ContentSection) error {
	if err := r.db.WithContext(ctx).Create(section).Error; err != nil {
		return err
	}
	r.store.Invalidate(ctx, cacheContentSections)
	return nil
}

// Update never touches section_key; the key is immutable after creation.
func (r *contentSectionRepo) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*models.ContentSection, error) {
	delete(patch, "section_key")
	if len(patch) == 0 {
		var item models.ContentSection
		if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
			return nil, err
		}
		return &item, nil
	}

	res := r.db.WithContext(ctx).Model(&models.ContentSection{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	r.store.Invalidate(ctx, cacheContentSections)

	var item models.ContentSection
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentSectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.ContentSection{}, "id = ?", id).Error; err != nil {
		return err
	}
	r.store.Invalidate(ctx, cacheContentSections)
	return nil
}
