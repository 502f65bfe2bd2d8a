package repository

import (
	"context"
	"meetapp/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultJobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *DefaultJobRepository {
	return &DefaultJobRepository{db: db}
}

func (j *DefaultJobRepository) Create(ctx context.Context, job *entity.Job) error {
	return j.db.WithContext(ctx).Create(job).Error
}

// FindDue returns up to limit pending jobs whose run time is not after now,
// oldest first.
func (j *DefaultJobRepository) FindDue(ctx context.Context, now int64, limit int) ([]*entity.Job, error) {
	var jobs []*entity.Job
	err := j.db.WithContext(ctx).
		Where("status = ?", entity.JobPending).
		Where("run_at <= ?", now).
		Order("run_at asc").
		Order("created_at asc").
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}

func (j *DefaultJobRepository) Update(ctx context.Context, job *entity.Job) error {
	return j.db.WithContext(ctx).Save(job).Error
}
