package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/tavola/internal/models"
)

// SubmissionRepository stores public contact-form submissions. Rows are
// write-once: there is no update path, and lists are never cached because
// the admin inbox should always reflect the latest arrivals.
type SubmissionRepository interface {
	GetAll(ctx context.Context) ([]models.ContactSubmission, error)
	List(ctx context.Context, limit, offset int) ([]models.ContactSubmission, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ContactSubmission, error)
	Create(ctx context.Context, submission *models.ContactSubmission) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type submissionRepo struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) GetAll(ctx context.Context) ([]models.ContactSubmission, error) {
	var items []models.ContactSubmission
	err := r.db.WithContext(ctx).Order("submitted_at desc").Find(&items).Error
	return items, err
}

func (r *submissionRepo) List(ctx context.Context, limit, offset int) ([]models.ContactSubmission, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ContactSubmission{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.ContactSubmission
	err := r.db.WithContext(ctx).Limit(limit).Offset(offset).
		Order("submitted_at desc").Find(&items).Error
	return items, total, err
}

func (r *submissionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ContactSubmission, error) {
	var item models.ContactSubmission
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *submissionRepo) Create(ctx context.Context, submission *models.ContactSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ContactSubmission{}, "id = ?", id).Error
}
