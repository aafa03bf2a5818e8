package sequence_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/sequence"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespace_Format(t *testing.T) {
	testCases := []struct {
		namespace sequence.Namespace
		value     int64
		expected  string
	}{
		{sequence.NamespaceOrder, 1, "SO-000001"},
		{sequence.NamespaceShipment, 42, "SHP-000042"},
		{sequence.NamespaceDelivery, 999999, "DLV-999999"},
		{sequence.NamespaceInvoice, 1234567, "INV-1234567"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			code, err := tc.namespace.Format(tc.value)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, code)
		})
	}
}

func TestNamespace_FormatRejectsInvalid(t *testing.T) {
	t.Run("unknown namespace", func(t *testing.T) {
		_, err := sequence.NamespaceUnknown.Format(1)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("non-positive value", func(t *testing.T) {
		_, err := sequence.NamespaceShipment.Format(0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestNamespace_Key(t *testing.T) {
	assert.Equal(t, "order", sequence.NamespaceOrder.Key())
	assert.Equal(t, "shipment", sequence.NamespaceShipment.Key())
	assert.Equal(t, "delivery", sequence.NamespaceDelivery.Key())
	assert.Equal(t, "invoice", sequence.NamespaceInvoice.Key())
	assert.Equal(t, "unknown", sequence.Namespace(99).String())
}
