package amounts

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	// Representative display amounts must survive display -> native -> display
	// without any drift.
	for _, in := range []string{"0.0001", "1.5", "123.456789", "0.000000000000000001", "1000000"} {
		t.Run(in, func(t *testing.T) {
			d := decimal.RequireFromString(in)

			native, err := ToNative(d)
			assert.NoError(t, err)

			back := FromNative(native)
			assert.True(t, d.Equal(back), "expected %s, got %s", d, back)
		})
	}
}

func TestToNative(t *testing.T) {
	t.Run("Whole Units", func(t *testing.T) {
		native, err := ToNative(decimal.RequireFromString("1.5"))
		assert.NoError(t, err)

		expected, _ := new(big.Int).SetString("1500000000000000000", 10)
		assert.Equal(t, 0, native.Cmp(expected))
	})

	t.Run("Too Much Precision", func(t *testing.T) {
		_, err := ToNative(decimal.RequireFromString("0.0000000000000000001"))
		assert.ErrorIs(t, err, ErrNotRepresentable)
	})
}

func TestFromNative(t *testing.T) {
	wei, _ := new(big.Int).SetString("100000000000000", 10)
	assert.Equal(t, "0.0001", FromNative(wei).String())
	assert.Equal(t, "0", FromNative(big.NewInt(0)).String())
}
