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

// GormBillRepository implements BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// Create persists a new bill
func (r *GormBillRepository) Create(ctx context.Context, bill *billing.Bill) error {
	model := models.BillModelFromDomain(bill)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing bill
func (r *GormBillRepository) Update(ctx context.Context, bill *billing.Bill) error {
	model := models.BillModelFromDomain(bill)
	result := r.db.WithContext(ctx).Omit("Shares").Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete soft-deletes a bill and removes its shares and their payments
func (r *GormBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		shareIDs := tx.Model(&models.BillShareModel{}).Select("id").Where("bill_id = ?", id)
		if err := tx.Where("bill_share_id IN (?)", shareIDs).Delete(&models.PaymentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("bill_id = ?", id).Delete(&models.BillShareModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.BillModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID loads a bill with its shares, share users and payments
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).
		Preload("Shares", func(db *gorm.DB) *gorm.DB {
			return db.Order("bill_shares.created_at asc")
		}).
		Preload("Shares.User").
		Preload("Shares.Payments", func(db *gorm.DB) *gorm.DB {
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

// FindAll returns bills matching the filter, newest first
func (r *GormBillRepository) FindAll(ctx context.Context, filter billing.BillFilter) ([]*billing.Bill, int64, error) {
	var billModels []*models.BillModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.BillModel{})

	if filter.UserID != nil {
		shareBills := r.db.Model(&models.BillShareModel{}).
			Select("bill_id").
			Where("user_id = ?", *filter.UserID)
		query = query.Where("bills.id IN (?)", shareBills)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ForMonth != "" {
		query = query.Where("for_month = ?", filter.ForMonth)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(orderClause(filter.Sort, BillSortFields, "created_at", "desc")).
		Preload("Shares", func(db *gorm.DB) *gorm.DB {
			return db.Order("bill_shares.created_at asc")
		}).
		Preload("Shares.User")

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&billModels).Error; err != nil {
		return nil, 0, err
	}

	bills := make([]*billing.Bill, len(billModels))
	for i, model := range billModels {
		bills[i] = model.ToDomain()
	}

	return bills, total, nil
}

// FindLatest returns the most recently created bills
func (r *GormBillRepository) FindLatest(ctx context.Context, limit int) ([]*billing.Bill, error) {
	if limit <= 0 {
		limit = 5
	}

	var billModels []*models.BillModel
	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Preload("Shares").
		Preload("Shares.User").
		Find(&billModels).Error; err != nil {
		return nil, err
	}

	bills := make([]*billing.Bill, len(billModels))
	for i, model := range billModels {
		bills[i] = model.ToDomain()
	}

	return bills, nil
}

// DistinctYears returns the calendar years bills were created in, newest first.
// The years are derived in Go to stay portable across SQL dialects.
func (r *GormBillRepository) DistinctYears(ctx context.Context) ([]int, error) {
	var billModels []*models.BillModel
	if err := r.db.WithContext(ctx).
		Select("created_at").
		Order("created_at desc").
		Find(&billModels).Error; err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	years := make([]int, 0)
	for _, model := range billModels {
		year := model.CreatedAt.Year()
		if !seen[year] {
			seen[year] = true
			years = append(years, year)
		}
	}

	return years, nil
}

// Ensure GormBillRepository implements BillRepository
var _ billing.BillRepository = (*GormBillRepository)(nil)
