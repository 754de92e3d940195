package repositories

import (
	"context"
	"fmt"

	gormModels "skylens/verdant/internal/models/gorm"

	"gorm.io/gorm"
)

// DatasetRepository handles dataset metadata using GORM
type DatasetRepository struct {
	db *gorm.DB
}

// NewDatasetRepository creates a new GORM-based dataset repository
func NewDatasetRepository(db *gorm.DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

// Create persists a new dataset row
func (r *DatasetRepository) Create(ctx context.Context, dataset *gormModels.Dataset) error {
	if err := r.db.WithContext(ctx).Create(dataset).Error; err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}
	return nil
}

// GetByID retrieves a dataset by its ID, nil when absent
func (r *DatasetRepository) GetByID(ctx context.Context, id string) (*gormModels.Dataset, error) {
	var dataset gormModels.Dataset

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&dataset).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}

	return &dataset, nil
}

// List returns all datasets, newest first
func (r *DatasetRepository) List(ctx context.Context) ([]gormModels.Dataset, error) {
	var datasets []gormModels.Dataset

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&datasets).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	return datasets, nil
}

// Delete removes a dataset row
func (r *DatasetRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&gormModels.Dataset{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}
	return nil
}
