package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/housebill/backend/internal/domain/billing"
	"github.com/housebill/backend/internal/domain/identity"
	"github.com/housebill/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReadingService manages the monthly electricity meter log
type ReadingService struct {
	repos  billing.Repositories
	logger *zap.Logger
}

// NewReadingService creates a new ReadingService
func NewReadingService(repos billing.Repositories, logger *zap.Logger) *ReadingService {
	return &ReadingService{
		repos:  repos,
		logger: logger,
	}
}

// CreateReadingInput carries a reading creation payload
type CreateReadingInput struct {
	Month     string
	Year      int
	StartUnit int64
	EndUnit   *int64
}

// UpdateReadingInput carries a reading patch; nil fields are left alone
type UpdateReadingInput struct {
	Month     *string
	Year      *int
	StartUnit *int64
	EndUnit   *int64
}

// Create records a reading; one per (month, year)
func (s *ReadingService) Create(ctx context.Context, actor *identity.User, input CreateReadingInput) (*billing.ElectricityReading, error) {
	if d := identity.Decide(actor, identity.ActionManageReadings, uuid.Nil); !d.Allowed {
		return nil, shared.NewDomainError("FORBIDDEN", d.Reason)
	}

	reading, err := billing.NewElectricityReading(input.Month, input.Year, input.StartUnit, input.EndUnit, &actor.ID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repos.Readings.FindByMonthYear(ctx, reading.Month, reading.Year); err == nil {
		return nil, shared.NewDomainError("READING_EXISTS",
			fmt.Sprintf("A reading for %s %d already exists", reading.Month, reading.Year))
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if err := s.repos.Readings.Create(ctx, reading); err != nil {
		return nil, fmt.Errorf("failed to create reading: %w", err)
	}

	s.logger.Info("Electricity reading recorded",
		zap.String("month", reading.Month),
		zap.Int("year", reading.Year),
		zap.Int64("start_unit", reading.StartUnit))

	return reading, nil
}

// Update patches a reading, keeping the (month, year) slot unique
func (s *ReadingService) Update(ctx context.Context, actor *identity.User, readingID uuid.UUID, input UpdateReadingInput) (*billing.ElectricityReading, error) {
	if d := identity.Decide(actor, identity.ActionManageReadings, uuid.Nil); !d.Allowed {
		return nil, shared.NewDomainError("FORBIDDEN", d.Reason)
	}

	reading, err := s.repos.Readings.FindByID(ctx, readingID)
	if err != nil {
		return nil, err
	}

	if input.Month != nil || input.Year != nil {
		month, year := reading.Month, reading.Year
		if input.Month != nil {
			month = *input.Month
		}
		if input.Year != nil {
			year = *input.Year
		}

		if existing, err := s.repos.Readings.FindByMonthYear(ctx, month, year); err == nil {
			if existing.ID != reading.ID {
				return nil, shared.NewDomainError("READING_EXISTS",
					fmt.Sprintf("A reading for %s %d already exists", month, year))
			}
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}

		if err := reading.SetMonthYear(month, year); err != nil {
			return nil, err
		}
	}

	if input.StartUnit != nil || input.EndUnit != nil {
		start, end := reading.StartUnit, reading.EndUnit
		if input.StartUnit != nil {
			start = *input.StartUnit
		}
		if input.EndUnit != nil {
			end = input.EndUnit
		}
		if err := reading.SetUnits(start, end); err != nil {
			return nil, err
		}
	}

	if err := s.repos.Readings.Update(ctx, reading); err != nil {
		return nil, fmt.Errorf("failed to update reading %s: %w", readingID, err)
	}

	return reading, nil
}

// Delete removes a reading
func (s *ReadingService) Delete(ctx context.Context, actor *identity.User, readingID uuid.UUID) error {
	if d := identity.Decide(actor, identity.ActionManageReadings, uuid.Nil); !d.Allowed {
		return shared.NewDomainError("FORBIDDEN", d.Reason)
	}

	return s.repos.Readings.Delete(ctx, readingID)
}

// List returns every reading, newest year first
func (s *ReadingService) List(ctx context.Context) ([]*billing.ElectricityReading, error) {
	return s.repos.Readings.FindAll(ctx)
}

// Get loads one reading
func (s *ReadingService) Get(ctx context.Context, readingID uuid.UUID) (*billing.ElectricityReading, error) {
	return s.repos.Readings.FindByID(ctx, readingID)
}

// ByMonthYear returns the reading for a month slot, or nil when none
// was recorded; used to pre-fill bill creation forms
func (s *ReadingService) ByMonthYear(ctx context.Context, month string, year int) (*billing.ElectricityReading, error) {
	reading, err := s.repos.Readings.FindByMonthYear(ctx, month, year)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return reading, err
}
