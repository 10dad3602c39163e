package postgres

import (
	"context"
	"errors"

	"github.com/careerlink/jobboard/internal/models"
	"github.com/careerlink/jobboard/internal/utils"
	"gorm.io/gorm"
)

type JobRepository interface {
	Insert(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	ListByEmployer(ctx context.Context, postedBy string) ([]models.Job, error)
	ListRecent(ctx context.Context, limit int) ([]models.Job, error)
}

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Insert(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var row models.Job
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *jobRepo) ListByEmployer(ctx context.Context, postedBy string) ([]models.Job, error) {
	var rows []models.Job
	err := r.db.WithContext(ctx).
		Where("posted_by = ?", postedBy).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *jobRepo) ListRecent(ctx context.Context, limit int) ([]models.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.Job
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
