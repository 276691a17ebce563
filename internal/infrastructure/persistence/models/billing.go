package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/housebill/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillModel is the persistence model for the Bill aggregate.
type BillModel struct {
	AggregateModel
	Reference            string             `gorm:"type:varchar(20);not null;uniqueIndex"`
	ForMonth             string             `gorm:"type:varchar(100);not null"`
	DueDate              *time.Time         `gorm:"index"`
	PeriodStart          *time.Time
	PeriodEnd            *time.Time
	Status               billing.BillStatus `gorm:"type:varchar(20);not null;default:'issued';index"`
	ElectricityUnits     decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0"`
	ElectricityStartUnit *decimal.Decimal   `gorm:"type:decimal(12,2)"`
	ElectricityEndUnit   *decimal.Decimal   `gorm:"type:decimal(12,2)"`
	ElectricityRate      decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0"`
	ElectricityBill      decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0"`
	LineItems            billing.LineItems  `gorm:"type:jsonb"`
	TotalDue             decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0"`
	ReturnedAmount       decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0"`
	FinalTotal           decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0"`
	Notes                string             `gorm:"type:text"`
	CreatedBy            *uuid.UUID         `gorm:"type:uuid"`
	UpdatedBy            *uuid.UUID         `gorm:"type:uuid"`
	DeletedAt            gorm.DeletedAt     `gorm:"index"`

	Shares []BillShareModel `gorm:"foreignKey:BillID"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// ToDomain converts the persistence model to a domain Bill aggregate,
// including any preloaded shares.
func (m *BillModel) ToDomain() *billing.Bill {
	bill := &billing.Bill{
		BaseAggregateRoot:    m.ToDomainAggregateRoot(),
		Reference:            m.Reference,
		ForMonth:             m.ForMonth,
		DueDate:              m.DueDate,
		PeriodStart:          m.PeriodStart,
		PeriodEnd:            m.PeriodEnd,
		Status:               m.Status,
		ElectricityUnits:     m.ElectricityUnits,
		ElectricityStartUnit: m.ElectricityStartUnit,
		ElectricityEndUnit:   m.ElectricityEndUnit,
		ElectricityRate:      m.ElectricityRate,
		ElectricityBill:      m.ElectricityBill,
		LineItems:            m.LineItems,
		TotalDue:             m.TotalDue,
		ReturnedAmount:       m.ReturnedAmount,
		FinalTotal:           m.FinalTotal,
		Notes:                m.Notes,
		CreatedBy:            m.CreatedBy,
		UpdatedBy:            m.UpdatedBy,
		Shares:               make([]*billing.BillShare, len(m.Shares)),
	}
	if bill.LineItems == nil {
		bill.LineItems = billing.LineItems{}
	}
	for i := range m.Shares {
		bill.Shares[i] = m.Shares[i].ToDomain()
	}
	return bill
}

// FromDomain populates the persistence model from a domain Bill aggregate.
// Shares are persisted through their own repository, not here.
func (m *BillModel) FromDomain(b *billing.Bill) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.Reference = b.Reference
	m.ForMonth = b.ForMonth
	m.DueDate = b.DueDate
	m.PeriodStart = b.PeriodStart
	m.PeriodEnd = b.PeriodEnd
	m.Status = b.Status
	m.ElectricityUnits = b.ElectricityUnits
	m.ElectricityStartUnit = b.ElectricityStartUnit
	m.ElectricityEndUnit = b.ElectricityEndUnit
	m.ElectricityRate = b.ElectricityRate
	m.ElectricityBill = b.ElectricityBill
	m.LineItems = b.LineItems
	m.TotalDue = b.TotalDue
	m.ReturnedAmount = b.ReturnedAmount
	m.FinalTotal = b.FinalTotal
	m.Notes = b.Notes
	m.CreatedBy = b.CreatedBy
	m.UpdatedBy = b.UpdatedBy
}

// BillModelFromDomain creates a new persistence model from a domain Bill.
func BillModelFromDomain(b *billing.Bill) *BillModel {
	m := &BillModel{}
	m.FromDomain(b)
	return m
}

// BillShareModel is the persistence model for the BillShare aggregate.
type BillShareModel struct {
	AggregateModel
	BillID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	Status     billing.ShareStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	AmountDue  decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	AmountPaid decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	LastPaidAt *time.Time
	Notes      string `gorm:"type:text"`

	User     *UserModel     `gorm:"foreignKey:UserID"`
	Payments []PaymentModel `gorm:"foreignKey:BillShareID"`
}

// TableName returns the table name for GORM
func (BillShareModel) TableName() string {
	return "bill_shares"
}

// ToDomain converts the persistence model to a domain BillShare,
// including the preloaded user and payments.
func (m *BillShareModel) ToDomain() *billing.BillShare {
	share := &billing.BillShare{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		BillID:            m.BillID,
		UserID:            m.UserID,
		Status:            m.Status,
		AmountDue:         m.AmountDue,
		AmountPaid:        m.AmountPaid,
		LastPaidAt:        m.LastPaidAt,
		Notes:             m.Notes,
		Payments:          make([]*billing.Payment, len(m.Payments)),
	}
	if m.User != nil {
		share.User = m.User.ToDomain()
	}
	for i := range m.Payments {
		share.Payments[i] = m.Payments[i].ToDomain()
	}
	return share
}

// FromDomain populates the persistence model from a domain BillShare.
func (m *BillShareModel) FromDomain(s *billing.BillShare) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.BillID = s.BillID
	m.UserID = s.UserID
	m.Status = s.Status
	m.AmountDue = s.AmountDue
	m.AmountPaid = s.AmountPaid
	m.LastPaidAt = s.LastPaidAt
	m.Notes = s.Notes
}

// BillShareModelFromDomain creates a new persistence model from a domain BillShare.
func BillShareModelFromDomain(s *billing.BillShare) *BillShareModel {
	m := &BillShareModel{}
	m.FromDomain(s)
	return m
}

// PaymentModel is the persistence model for the Payment ledger entry.
type PaymentModel struct {
	BaseModel
	BillShareID uuid.UUID       `gorm:"type:uuid;not null;index"`
	RecordedBy  *uuid.UUID      `gorm:"type:uuid"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaidOn      time.Time       `gorm:"not null;index"`
	Method      string          `gorm:"type:varchar(50);not null;default:'cash'"`
	Reference   string          `gorm:"type:varchar(100)"`
	Notes       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment.
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseEntity:  m.BaseModel.ToDomain(),
		BillShareID: m.BillShareID,
		RecordedBy:  m.RecordedBy,
		Amount:      m.Amount,
		PaidOn:      m.PaidOn,
		Method:      m.Method,
		Reference:   m.Reference,
		Notes:       m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Payment.
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.BillShareID = p.BillShareID
	m.RecordedBy = p.RecordedBy
	m.Amount = p.Amount
	m.PaidOn = p.PaidOn
	m.Method = p.Method
	m.Reference = p.Reference
	m.Notes = p.Notes
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// BillingSettingModel is the persistence model for reusable charge presets.
type BillingSettingModel struct {
	BaseModel
	Key      string                  `gorm:"type:varchar(100);not null;uniqueIndex"`
	Label    string                  `gorm:"type:varchar(200);not null"`
	Amount   decimal.Decimal         `gorm:"type:decimal(12,2);not null;default:0"`
	Metadata billing.SettingMetadata `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (BillingSettingModel) TableName() string {
	return "billing_settings"
}

// ToDomain converts the persistence model to a domain BillingSetting.
func (m *BillingSettingModel) ToDomain() *billing.BillingSetting {
	setting := &billing.BillingSetting{
		BaseEntity: m.BaseModel.ToDomain(),
		Key:        m.Key,
		Label:      m.Label,
		Amount:     m.Amount,
		Metadata:   m.Metadata,
	}
	if setting.Metadata == nil {
		setting.Metadata = billing.SettingMetadata{}
	}
	return setting
}

// FromDomain populates the persistence model from a domain BillingSetting.
func (m *BillingSettingModel) FromDomain(s *billing.BillingSetting) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Key = s.Key
	m.Label = s.Label
	m.Amount = s.Amount
	m.Metadata = s.Metadata
}

// BillingSettingModelFromDomain creates a new persistence model from a domain BillingSetting.
func BillingSettingModelFromDomain(s *billing.BillingSetting) *BillingSettingModel {
	m := &BillingSettingModel{}
	m.FromDomain(s)
	return m
}

// ElectricityReadingModel is the persistence model for monthly meter readings.
// A month/year combination can only be recorded once.
type ElectricityReadingModel struct {
	BaseModel
	Month      string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_readings_month_year"`
	Year       int        `gorm:"not null;uniqueIndex:idx_readings_month_year"`
	StartUnit  int64      `gorm:"not null;default:0"`
	EndUnit    *int64
	RecordedBy *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (ElectricityReadingModel) TableName() string {
	return "electricity_readings"
}

// ToDomain converts the persistence model to a domain ElectricityReading.
func (m *ElectricityReadingModel) ToDomain() *billing.ElectricityReading {
	return &billing.ElectricityReading{
		BaseEntity: m.BaseModel.ToDomain(),
		Month:      m.Month,
		Year:       m.Year,
		StartUnit:  m.StartUnit,
		EndUnit:    m.EndUnit,
		RecordedBy: m.RecordedBy,
	}
}

// FromDomain populates the persistence model from a domain ElectricityReading.
func (m *ElectricityReadingModel) FromDomain(r *billing.ElectricityReading) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Month = r.Month
	m.Year = r.Year
	m.StartUnit = r.StartUnit
	m.EndUnit = r.EndUnit
	m.RecordedBy = r.RecordedBy
}

// ElectricityReadingModelFromDomain creates a new persistence model from a domain ElectricityReading.
func ElectricityReadingModelFromDomain(r *billing.ElectricityReading) *ElectricityReadingModel {
	m := &ElectricityReadingModel{}
	m.FromDomain(r)
	return m
}
