package order_test

import (
	"fmt"
	"testing"
	"time"

	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	t.Run("matches the identifier format", func(t *testing.T) {
		for range 50 {
			id := order.GenerateID("ORD")

			require.NoError(t, id.Validate())
			assert.True(t, order.IsValidID(id.String()), "generated %q", id.String())
		}
	})

	t.Run("embeds the prefix and current year", func(t *testing.T) {
		id := order.GenerateID("SHOP")

		expectedPrefix := fmt.Sprintf("SHOP-%02d-", time.Now().Year()%100)
		assert.Equal(t, expectedPrefix, id.String()[:len(expectedPrefix)])
	})

	t.Run("empty prefix falls back to the default", func(t *testing.T) {
		id := order.GenerateID("")
		assert.Equal(t, "ORD-", id.String()[:4])
	})
}

func TestParseID(t *testing.T) {
	t.Run("accepts well-formed identifiers", func(t *testing.T) {
		for _, value := range []string{
			"ORD-25-AB12345678",
			"ORD-23-0WH1B71878",
			"SHOP-99-ZZZZZ00000",
		} {
			id, err := order.ParseID(value)
			require.NoError(t, err, "value %q", value)
			assert.Equal(t, value, id.String())
		}
	})

	t.Run("rejects malformed identifiers", func(t *testing.T) {
		for _, value := range []string{
			"",
			"ORD-25-ab12345678",  // lowercase alphanumerics
			"ORD-251-AB12345678", // three-digit year
			"ORD-25-AB123456",    // too short
			"ORD-25-AB1234567X",  // letter in the digit block
			"ord-25-AB12345678",  // lowercase prefix
			"ORD_25_AB12345678",
		} {
			_, err := order.ParseID(value)
			require.Error(t, err, "value %q", value)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestID_Validate_ZeroValue(t *testing.T) {
	var id order.ID

	err := id.Validate()

	require.Error(t, err)
	assert.Equal(t, order.ErrIDIsNotConstructed, err)
}
