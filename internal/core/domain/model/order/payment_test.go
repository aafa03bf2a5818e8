package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p, err := order.NewPayment(kernel.NewUUID(), kernel.MustQuantity("99.999"), "card", "TX-1", movementDate)

		require.NoError(t, err)
		assert.Equal(t, "100.00", p.Amount().String())
		assert.Equal(t, "card", p.Mode())
		assert.Equal(t, "TX-1", p.Reference())
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		p, err := order.NewPayment(kernel.NewUUID(), kernel.ZeroQuantity(), "card", "TX-1", movementDate)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("rejects missing date", func(t *testing.T) {
		_, err := order.NewPayment(kernel.NewUUID(), kernel.MustQuantity("1"), "card", "", time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestComputeSettlement(t *testing.T) {
	testCases := []struct {
		name     string
		amount   string
		paid     string
		expected order.Settlement
	}{
		{"nothing paid", "100", "0", order.Unpaid},
		{"part paid", "100", "40", order.PartiallyPaid},
		{"exactly paid", "100", "100", order.Paid},
		{"overpaid", "100", "120", order.Paid},
		{"free order unpaid", "0", "0", order.Unpaid},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := order.ComputeSettlement(kernel.MustQuantity(tc.amount), kernel.MustQuantity(tc.paid))

			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestSettlement_Validate(t *testing.T) {
	require.NoError(t, order.PartiallyPaid.Validate())
	require.ErrorIs(t, order.SettlementUnknown.Validate(), errs.ErrValueIsInvalid)
	assert.Equal(t, "Paid", order.Paid.String())
}
