package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/housebill/backend/internal/domain/billing"
	"github.com/housebill/backend/internal/domain/shared"
	"github.com/housebill/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create persists a new payment
func (r *GormPaymentRepository) Create(ctx context.Context, payment *billing.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Create(model).Error
}

// Delete removes a payment. Payments are immutable so corrections
// go through delete and re-record.
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID loads a payment
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns payments matching the filter, newest paid_on first
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter billing.PaymentFilter) ([]*billing.Payment, int64, error) {
	var paymentModels []*models.PaymentModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.PaymentModel{})

	if filter.BillShareID != nil {
		query = query.Where("bill_share_id = ?", *filter.BillShareID)
	}
	if filter.UserID != nil {
		userShares := r.db.Model(&models.BillShareModel{}).
			Select("id").
			Where("user_id = ?", *filter.UserID)
		query = query.Where("bill_share_id IN (?)", userShares)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("paid_on desc, created_at desc")

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, 0, err
	}

	payments := make([]*billing.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = model.ToDomain()
	}

	return payments, total, nil
}

// FindByShareID returns a share's payments, newest paid_on first
func (r *GormPaymentRepository) FindByShareID(ctx context.Context, shareID uuid.UUID) ([]*billing.Payment, error) {
	var paymentModels []*models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("bill_share_id = ?", shareID).
		Order("paid_on desc, created_at desc").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]*billing.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = model.ToDomain()
	}

	return payments, nil
}

// LatestPaidOn returns the most recent paid_on date among a share's
// remaining payments, or nil when none remain
func (r *GormPaymentRepository) LatestPaidOn(ctx context.Context, shareID uuid.UUID) (*time.Time, error) {
	var latest sql.NullTime
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("bill_share_id = ?", shareID).
		Select("MAX(paid_on)").
		Scan(&latest).Error; err != nil {
		return nil, err
	}
	if !latest.Valid {
		return nil, nil
	}
	return &latest.Time, nil
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ billing.PaymentRepository = (*GormPaymentRepository)(nil)
