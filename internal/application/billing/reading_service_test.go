package billing

import (
	"context"
	"testing"

	"github.com/housebill/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestReadingServiceCreate(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t)

	reading, err := f.readings.Create(context.Background(), admin, CreateReadingInput{
		Month:     "January",
		Year:      2026,
		StartUnit: 1200,
		EndUnit:   int64Ptr(1260),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(60), reading.Units())
	require.NotNil(t, reading.RecordedBy)
	assert.Equal(t, admin.ID, *reading.RecordedBy)
}

func TestReadingServiceCreateDuplicateMonth(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t)

	_, err := f.readings.Create(context.Background(), admin, CreateReadingInput{
		Month: "January", Year: 2026, StartUnit: 1200,
	})
	require.NoError(t, err)

	_, err = f.readings.Create(context.Background(), admin, CreateReadingInput{
		Month: "January", Year: 2026, StartUnit: 1300,
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "READING_EXISTS", domainErr.Code)
}

func TestReadingServiceCreateRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	alice := f.seedResident(t, "Alice", "alice@example.com")

	_, err := f.readings.Create(context.Background(), alice, CreateReadingInput{
		Month: "January", Year: 2026, StartUnit: 1200,
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestReadingServiceUpdate(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t)

	reading, err := f.readings.Create(context.Background(), admin, CreateReadingInput{
		Month: "January", Year: 2026, StartUnit: 1200,
	})
	require.NoError(t, err)

	updated, err := f.readings.Update(context.Background(), admin, reading.ID, UpdateReadingInput{
		EndUnit: int64Ptr(1250),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), updated.Units())
	assert.Equal(t, "January", updated.Month)
}

func TestReadingServiceUpdateMonthConflict(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t)

	_, err := f.readings.Create(context.Background(), admin, CreateReadingInput{
		Month: "January", Year: 2026, StartUnit: 1200,
	})
	require.NoError(t, err)

	february, err := f.readings.Create(context.Background(), admin, CreateReadingInput{
		Month: "February", Year: 2026, StartUnit: 1300,
	})
	require.NoError(t, err)

	month := "January"
	_, err = f.readings.Update(context.Background(), admin, february.ID, UpdateReadingInput{
		Month: &month,
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "READING_EXISTS", domainErr.Code)

	// moving a reading onto its own slot is not a conflict
	year := 2026
	same, err := f.readings.Update(context.Background(), admin, february.ID, UpdateReadingInput{
		Month: &february.Month,
		Year:  &year,
	})
	require.NoError(t, err)
	assert.Equal(t, "February", same.Month)
}

func TestReadingServiceByMonthYear(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t)

	_, err := f.readings.Create(context.Background(), admin, CreateReadingInput{
		Month: "January", Year: 2026, StartUnit: 1200,
	})
	require.NoError(t, err)

	reading, err := f.readings.ByMonthYear(context.Background(), "January", 2026)
	require.NoError(t, err)
	require.NotNil(t, reading)
	assert.Equal(t, int64(1200), reading.StartUnit)

	// a missing slot is nil, not an error, so forms can pre-fill blank
	reading, err = f.readings.ByMonthYear(context.Background(), "March", 2026)
	require.NoError(t, err)
	assert.Nil(t, reading)
}

func TestReadingServiceDelete(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t)

	reading, err := f.readings.Create(context.Background(), admin, CreateReadingInput{
		Month: "January", Year: 2026, StartUnit: 1200,
	})
	require.NoError(t, err)

	require.NoError(t, f.readings.Delete(context.Background(), admin, reading.ID))

	_, err = f.readings.Get(context.Background(), reading.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
