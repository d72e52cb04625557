package keeper

import (
	"cosmossdk.io/math"

	"github.com/swaptrade/swaptrade/internal/statestore"
	"github.com/swaptrade/swaptrade/x/swap/types"
)

// Constant-product AMM engine for the single two-asset pool.
//
// Pricing follows the pre-fee constant product: the fee is withheld from
// the amount entering the curve, the output is computed against
// k0 = x0 * y0, and the floor division guarantees the priced post-swap
// product never exceeds k0. The withheld fee is still deposited into the
// input reserve as LP revenue, so physical reserves can grow past k0.

// GetPool returns the current physical pool reserves.
func (k *Keeper) GetPool() types.Pool {
	return getPool(k.base)
}

func getPool(kv statestore.KV) types.Pool {
	return types.Pool{
		ReserveA: getInt(kv, ReserveAKey),
		ReserveB: getInt(kv, ReserveBKey),
	}
}

func setPool(kv statestore.KV, pool types.Pool) {
	setInt(kv, ReserveAKey, pool.ReserveA)
	setInt(kv, ReserveBKey, pool.ReserveB)
}

// curve watermark: the priced product after the most recent pool mutation.
// The physical product can only sit at or above it (fee retention adds
// value, never removes it); the audit predicate checks exactly that.
func getCurveWatermark(kv statestore.KV) math.Int {
	return getInt(kv, CurveWatermarkKey)
}

func setCurveWatermark(kv statestore.KV, k math.Int) {
	setInt(kv, CurveWatermarkKey, k)
}

// swapOutcome captures everything a swap changes about the pool.
type swapOutcome struct {
	// Fee is withheld from the priced curve and retained in the input
	// reserve.
	Fee math.Int
	// Output is credited to the caller. A zero output is a valid outcome
	// for dust inputs; callers pre-check economic viability.
	Output math.Int
	// Pool holds the physical reserves after the swap.
	Pool types.Pool
	// PricedK is the post-swap product of the priced reserves,
	// guaranteed <= the pre-swap product.
	PricedK math.Int
}

// computeSwap prices amountIn against the pool. inputIsA selects the input
// side. Both reserves must be strictly positive.
func computeSwap(pool types.Pool, inputIsA bool, amountIn math.Int, feeBps uint32) (swapOutcome, error) {
	if !amountIn.IsPositive() {
		return swapOutcome{}, types.ErrInvalidAmount.Wrapf("swap amount must be positive, got %s", amountIn)
	}
	if !pool.HasLiquidity() {
		return swapOutcome{}, types.ErrInsufficientLiquidity.Wrapf(
			"pool reserves %s / %s: both must be positive before a swap", pool.ReserveA, pool.ReserveB)
	}

	x0, y0 := pool.ReserveA, pool.ReserveB
	if !inputIsA {
		x0, y0 = y0, x0
	}

	fee := ComputeFee(amountIn, feeBps)
	effectiveIn, err := SafeSub(amountIn, fee)
	if err != nil {
		return swapOutcome{}, err
	}

	x1, err := SafeAdd(x0, effectiveIn)
	if err != nil {
		return swapOutcome{}, err
	}

	// output = y0 - floor(x0 * y0 / x1); the floor rounds the new priced
	// product down or equal, never up, which is what guarantees k1 <= k0.
	quotient, err := SafeMulDiv(x0, y0, x1)
	if err != nil {
		return swapOutcome{}, err
	}
	output, err := SafeSub(y0, quotient)
	if err != nil {
		return swapOutcome{}, err
	}

	y1, err := SafeSub(y0, output)
	if err != nil {
		return swapOutcome{}, err
	}

	// Physical input reserve takes the full input amount, fee included.
	physicalIn, err := SafeAdd(x0, amountIn)
	if err != nil {
		return swapOutcome{}, err
	}

	after := types.Pool{ReserveA: physicalIn, ReserveB: y1}
	if !inputIsA {
		after = types.Pool{ReserveA: y1, ReserveB: physicalIn}
	}

	// The post-swap physical product must stay representable: the audit
	// predicates multiply the reserves on every check. The priced product is
	// bounded by the physical one (x1 <= physicalIn), so one check covers both.
	if _, err := SafeMul(after.ReserveA, after.ReserveB); err != nil {
		return swapOutcome{}, types.ErrInvalidAmount.Wrapf(
			"swap would overflow the reserve product: %s in against %s / %s",
			amountIn, pool.ReserveA, pool.ReserveB)
	}

	return swapOutcome{
		Fee:     fee,
		Output:  output,
		Pool:    after,
		PricedK: x1.Mul(y1),
	}, nil
}

// poolSideOf maps a swap pair onto the pool, returning whether fromAsset is
// the A side. Pairs outside the pool have no liquidity by definition.
func poolSideOf(params types.Params, fromAsset, toAsset types.Asset) (inputIsA bool, err error) {
	assetA, assetB := params.PoolPair()
	switch {
	case fromAsset.Equal(assetA) && toAsset.Equal(assetB):
		return true, nil
	case fromAsset.Equal(assetB) && toAsset.Equal(assetA):
		return false, nil
	default:
		return false, types.ErrInsufficientLiquidity.Wrapf(
			"no pool for pair %s/%s", fromAsset, toAsset)
	}
}
