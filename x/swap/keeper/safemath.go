package keeper

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/swaptrade/swaptrade/x/swap/types"
)

// Checked arithmetic for ledger amounts. Every arithmetic step that touches
// balances, reserves or fees goes through these helpers so a wrap or
// underflow surfaces as an explicit error instead of silently corrupting
// the conservation equation.

// maxAmount bounds all stored amounts to 2^256 - 1.
var maxAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// SafeAdd adds two amounts, failing when the result leaves the
// representable range.
func SafeAdd(a, b math.Int) (math.Int, error) {
	result := new(big.Int).Add(a.BigInt(), b.BigInt())
	if result.Cmp(maxAmount) > 0 {
		return math.Int{}, types.ErrInvalidState.Wrapf("amount overflow: %s + %s", a, b)
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeSub subtracts b from a, failing on underflow rather than saturating:
// a silently clamped result would break conservation.
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, types.ErrInvalidState.Wrapf("amount underflow: %s - %s", a, b)
	}
	return a.Sub(b), nil
}

// SafeMul multiplies two amounts, failing when the product leaves the
// representable range.
func SafeMul(a, b math.Int) (math.Int, error) {
	product := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if product.Cmp(maxAmount) > 0 {
		return math.Int{}, types.ErrInvalidState.Wrapf("amount overflow: %s * %s", a, b)
	}
	return math.NewIntFromBigInt(product), nil
}

// SafeMulDiv computes floor(a * b / c), the workhorse of fee and AMM math.
func SafeMulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, types.ErrInvalidState.Wrap("division by zero")
	}
	product := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if product.Cmp(maxAmount) > 0 {
		return math.Int{}, types.ErrInvalidState.Wrapf("amount overflow: %s * %s", a, b)
	}
	return math.NewIntFromBigInt(new(big.Int).Quo(product, c.BigInt())), nil
}

// SaturatingIncrement adds one to a counter, sticking at the maximum
// instead of wrapping. Wraparound would violate counter monotonicity.
func SaturatingIncrement(counter uint64) uint64 {
	if counter == ^uint64(0) {
		return counter
	}
	return counter + 1
}
