package types

import (
	"math/big"

	"cosmossdk.io/math"
)

// maxProductBits bounds the reserve product to the representable amount
// range (2^256 - 1). Every pool mutation preserves the bound; Validate
// enforces it on state loaded from outside.
const maxProductBits = 256

// Pool holds the two reserves of the constant-product pool. Both reserves
// must be strictly positive before any swap is priced against them.
type Pool struct {
	ReserveA math.Int `json:"reserve_a"`
	ReserveB math.Int `json:"reserve_b"`
}

// EmptyPool returns a pool with zero reserves.
func EmptyPool() Pool {
	return Pool{ReserveA: math.ZeroInt(), ReserveB: math.ZeroInt()}
}

// Product returns the constant-product value k = reserve_a * reserve_b.
// Validated pools keep the product within the representable amount range.
func (p Pool) Product() math.Int {
	return p.ReserveA.Mul(p.ReserveB)
}

// HasLiquidity reports whether both reserves are strictly positive.
func (p Pool) HasLiquidity() bool {
	return p.ReserveA.IsPositive() && p.ReserveB.IsPositive()
}

// Validate rejects nil or negative reserves and reserve products outside
// the representable amount range.
func (p Pool) Validate() error {
	if p.ReserveA.IsNil() || p.ReserveB.IsNil() {
		return ErrInvalidState.Wrap("pool reserve is nil")
	}
	if p.ReserveA.IsNegative() || p.ReserveB.IsNegative() {
		return ErrInvalidState.Wrapf("pool reserve is negative: %s / %s", p.ReserveA, p.ReserveB)
	}
	product := new(big.Int).Mul(p.ReserveA.BigInt(), p.ReserveB.BigInt())
	if product.BitLen() > maxProductBits {
		return ErrInvalidState.Wrapf("pool reserve product overflows: %s / %s", p.ReserveA, p.ReserveB)
	}
	return nil
}

// Metrics are the monotonic operational counters. Both counters use
// saturating increments so they can never wrap past the representable
// maximum.
type Metrics struct {
	TradeCount       uint64 `json:"trade_count"`
	FailedOrderCount uint64 `json:"failed_order_count"`
}

// BalanceEntry is one (user, asset) balance, used in genesis export and
// audit iteration.
type BalanceEntry struct {
	User   string   `json:"user"`
	Asset  string   `json:"asset"`
	Amount math.Int `json:"amount"`
}

// LPPositionEntry is one user's LP token balance.
type LPPositionEntry struct {
	User   string   `json:"user"`
	Amount math.Int `json:"amount"`
}
