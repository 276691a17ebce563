package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/housebill/backend/internal/domain/billing"
	"github.com/housebill/backend/internal/domain/shared"
	"github.com/housebill/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormElectricityReadingRepository implements ElectricityReadingRepository using GORM
type GormElectricityReadingRepository struct {
	db *gorm.DB
}

// NewGormElectricityReadingRepository creates a new GormElectricityReadingRepository
func NewGormElectricityReadingRepository(db *gorm.DB) *GormElectricityReadingRepository {
	return &GormElectricityReadingRepository{db: db}
}

// Create persists a new reading
func (r *GormElectricityReadingRepository) Create(ctx context.Context, reading *billing.ElectricityReading) error {
	model := models.ElectricityReadingModelFromDomain(reading)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing reading
func (r *GormElectricityReadingRepository) Update(ctx context.Context, reading *billing.ElectricityReading) error {
	model := models.ElectricityReadingModelFromDomain(reading)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a reading
func (r *GormElectricityReadingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ElectricityReadingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID loads a reading
func (r *GormElectricityReadingRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.ElectricityReading, error) {
	var model models.ElectricityReadingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all readings, newest year/month first
func (r *GormElectricityReadingRepository) FindAll(ctx context.Context) ([]*billing.ElectricityReading, error) {
	var readingModels []*models.ElectricityReadingModel
	if err := r.db.WithContext(ctx).
		Order("year desc, created_at desc").
		Find(&readingModels).Error; err != nil {
		return nil, err
	}

	readings := make([]*billing.ElectricityReading, len(readingModels))
	for i, model := range readingModels {
		readings[i] = model.ToDomain()
	}

	return readings, nil
}

// FindByMonthYear loads the reading for a month/year, if recorded
func (r *GormElectricityReadingRepository) FindByMonthYear(ctx context.Context, month string, year int) (*billing.ElectricityReading, error) {
	var model models.ElectricityReadingModel
	if err := r.db.WithContext(ctx).
		Where("month = ? AND year = ?", month, year).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormElectricityReadingRepository implements ElectricityReadingRepository
var _ billing.ElectricityReadingRepository = (*GormElectricityReadingRepository)(nil)
