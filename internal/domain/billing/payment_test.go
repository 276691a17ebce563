package billing

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	shareID := uuid.New()
	recorder := uuid.New()
	paidOn := time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC)

	t.Run("creates cash payment by default", func(t *testing.T) {
		payment, err := NewPayment(shareID, &recorder, d("75.005"), paidOn)
		require.NoError(t, err)
		assert.Equal(t, "75.01", payment.Amount.StringFixed(2))
		assert.Equal(t, DefaultPaymentMethod, payment.Method)
		assert.True(t, payment.PaidOn.Equal(paidOn))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewPayment(shareID, &recorder, d("0"), paidOn)
		assert.Error(t, err)
		_, err = NewPayment(shareID, &recorder, d("-10"), paidOn)
		assert.Error(t, err)
	})

	t.Run("amount rounding to zero is rejected", func(t *testing.T) {
		_, err := NewPayment(shareID, &recorder, d("0.004"), paidOn)
		assert.Error(t, err)
	})

	t.Run("rejects missing share or date", func(t *testing.T) {
		_, err := NewPayment(uuid.Nil, &recorder, d("10"), paidOn)
		assert.Error(t, err)
		_, err = NewPayment(shareID, &recorder, d("10"), time.Time{})
		assert.Error(t, err)
	})
}

func TestPaymentSetMethod(t *testing.T) {
	payment, err := NewPayment(uuid.New(), nil, d("10"), time.Now())
	require.NoError(t, err)

	payment.SetMethod("bkash")
	assert.Equal(t, "bkash", payment.Method)

	payment.SetMethod("   ")
	assert.Equal(t, DefaultPaymentMethod, payment.Method)
}

func TestPaymentSetReferenceAndNotes(t *testing.T) {
	payment, err := NewPayment(uuid.New(), nil, d("10"), time.Now())
	require.NoError(t, err)

	require.NoError(t, payment.SetReference(" TXN-123 "))
	assert.Equal(t, "TXN-123", payment.Reference)
	assert.Error(t, payment.SetReference(strings.Repeat("x", 101)))

	require.NoError(t, payment.SetNotes("paid at the gate"))
	assert.Error(t, payment.SetNotes(strings.Repeat("x", 501)))
}
