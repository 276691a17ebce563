package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/housebill/backend/internal/domain/billing"
	"github.com/housebill/backend/internal/domain/shared"
	"github.com/housebill/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormBillShareRepository implements BillShareRepository using GORM
type GormBillShareRepository struct {
	db *gorm.DB
}

// NewGormBillShareRepository creates a new GormBillShareRepository
func NewGormBillShareRepository(db *gorm.DB) *GormBillShareRepository {
	return &GormBillShareRepository{db: db}
}

// Create persists a new share
func (r *GormBillShareRepository) Create(ctx context.Context, share *billing.BillShare) error {
	model := models.BillShareModelFromDomain(share)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing share
func (r *GormBillShareRepository) Update(ctx context.Context, share *billing.BillShare) error {
	model := models.BillShareModelFromDomain(share)
	result := r.db.WithContext(ctx).Omit("User", "Payments").Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a share and its payments
func (r *GormBillShareRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bill_share_id = ?", id).Delete(&models.PaymentModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.BillShareModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// DeleteByBillID removes all shares of a bill and their payments
func (r *GormBillShareRepository) DeleteByBillID(ctx context.Context, billID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		shareIDs := tx.Model(&models.BillShareModel{}).Select("id").Where("bill_id = ?", billID)
		if err := tx.Where("bill_share_id IN (?)", shareIDs).Delete(&models.PaymentModel{}).Error; err != nil {
			return err
		}
		return tx.Where("bill_id = ?", billID).Delete(&models.BillShareModel{}).Error
	})
}

// FindByID loads a share with its user and payments
func (r *GormBillShareRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.BillShare, error) {
	var model models.BillShareModel
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payments.paid_on desc")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns shares matching the filter, newest first
func (r *GormBillShareRepository) FindAll(ctx context.Context, filter billing.ShareFilter) ([]*billing.BillShare, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BillShareModel{})

	if filter.BillID != nil {
		query = query.Where("bill_id = ?", *filter.BillID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at desc").
		Preload("User").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payments.paid_on desc")
		})

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var shareModels []*models.BillShareModel
	if err := query.Find(&shareModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainShares(shareModels), total, nil
}

// FindByBillID loads all shares of a bill with their users
func (r *GormBillShareRepository) FindByBillID(ctx context.Context, billID uuid.UUID) ([]*billing.BillShare, error) {
	var shareModels []*models.BillShareModel
	if err := r.db.WithContext(ctx).
		Where("bill_id = ?", billID).
		Order("created_at asc").
		Preload("User").
		Find(&shareModels).Error; err != nil {
		return nil, err
	}
	return toDomainShares(shareModels), nil
}

// FindByBillAndUser loads the share a user holds in a bill, if any
func (r *GormBillShareRepository) FindByBillAndUser(ctx context.Context, billID, userID uuid.UUID) (*billing.BillShare, error) {
	var model models.BillShareModel
	if err := r.db.WithContext(ctx).
		Where("bill_id = ? AND user_id = ?", billID, userID).
		Preload("User").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserID loads all shares held by a user
func (r *GormBillShareRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*billing.BillShare, error) {
	var shareModels []*models.BillShareModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&shareModels).Error; err != nil {
		return nil, err
	}
	return toDomainShares(shareModels), nil
}

// FindOutstandingByUser loads a user's shares that still owe money
func (r *GormBillShareRepository) FindOutstandingByUser(ctx context.Context, userID uuid.UUID) ([]*billing.BillShare, error) {
	var shareModels []*models.BillShareModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status <> ?", userID, billing.ShareStatusPaid).
		Where("amount_due > amount_paid").
		Order("created_at desc").
		Find(&shareModels).Error; err != nil {
		return nil, err
	}
	return toDomainShares(shareModels), nil
}

// Totals sums amount_due and amount_paid, optionally scoped to one user
func (r *GormBillShareRepository) Totals(ctx context.Context, userID *uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	var row struct {
		TotalDue  decimal.Decimal
		TotalPaid decimal.Decimal
	}

	query := r.db.WithContext(ctx).Model(&models.BillShareModel{}).
		Select("COALESCE(SUM(amount_due), 0) AS total_due, COALESCE(SUM(amount_paid), 0) AS total_paid")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	if err := query.Scan(&row).Error; err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return row.TotalDue, row.TotalPaid, nil
}

func toDomainShares(shareModels []*models.BillShareModel) []*billing.BillShare {
	shares := make([]*billing.BillShare, len(shareModels))
	for i, model := range shareModels {
		shares[i] = model.ToDomain()
	}
	return shares
}

// Ensure GormBillShareRepository implements BillShareRepository
var _ billing.BillShareRepository = (*GormBillShareRepository)(nil)
