// Package amounts converts between native-unit integer amounts and
// display-unit decimals. All arithmetic is exact; floating point never
// touches the money path.
package amounts

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

// Decimals is the native currency precision (wei-style 18 for SHM).
const Decimals = 18

// ErrNotRepresentable is returned when a display amount carries more
// precision than one native unit.
var ErrNotRepresentable = errors.New("amount has more precision than the native unit")

// ToNative converts a display-unit amount to its exact native-unit integer.
func ToNative(d decimal.Decimal) (*big.Int, error) {
	shifted := d.Shift(Decimals)
	if !shifted.IsInteger() {
		return nil, ErrNotRepresentable
	}
	return shifted.BigInt(), nil
}

// FromNative converts a native-unit integer to its display-unit decimal.
func FromNative(n *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(n, -Decimals)
}
