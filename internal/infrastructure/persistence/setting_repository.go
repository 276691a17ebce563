package persistence

import (
	"context"
	"errors"

	"github.com/housebill/backend/internal/domain/billing"
	"github.com/housebill/backend/internal/domain/shared"
	"github.com/housebill/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBillingSettingRepository implements BillingSettingRepository using GORM
type GormBillingSettingRepository struct {
	db *gorm.DB
}

// NewGormBillingSettingRepository creates a new GormBillingSettingRepository
func NewGormBillingSettingRepository(db *gorm.DB) *GormBillingSettingRepository {
	return &GormBillingSettingRepository{db: db}
}

// Save upserts a setting by key
func (r *GormBillingSettingRepository) Save(ctx context.Context, setting *billing.BillingSetting) error {
	model := models.BillingSettingModelFromDomain(setting)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"label", "amount", "metadata", "updated_at"}),
		}).
		Create(model).Error
}

// FindByKey loads a setting by its unique key
func (r *GormBillingSettingRepository) FindByKey(ctx context.Context, key string) (*billing.BillingSetting, error) {
	var model models.BillingSettingModel
	if err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all settings ordered by key
func (r *GormBillingSettingRepository) FindAll(ctx context.Context) ([]*billing.BillingSetting, error) {
	var settingModels []*models.BillingSettingModel
	if err := r.db.WithContext(ctx).
		Order("key asc").
		Find(&settingModels).Error; err != nil {
		return nil, err
	}

	settings := make([]*billing.BillingSetting, len(settingModels))
	for i, model := range settingModels {
		settings[i] = model.ToDomain()
	}

	return settings, nil
}

// Ensure GormBillingSettingRepository implements BillingSettingRepository
var _ billing.BillingSettingRepository = (*GormBillingSettingRepository)(nil)
