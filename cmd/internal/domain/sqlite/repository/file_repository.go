package repository

import (
	"context"
	"errors"
	"meetapp/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultFileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) *DefaultFileRepository {
	return &DefaultFileRepository{db: db}
}

func (f *DefaultFileRepository) FindByID(ctx context.Context, id int) (*entity.File, error) {
	var file entity.File
	err := f.db.WithContext(ctx).First(&file, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (f *DefaultFileRepository) Save(ctx context.Context, file *entity.File) error {
	return f.db.WithContext(ctx).Save(file).Error
}
