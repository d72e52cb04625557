package keeper

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/swaptrade/swaptrade/internal/statestore"
	"github.com/swaptrade/swaptrade/x/swap/types"
)

// LP token accounting. Positions are per-user claims on the pool; the sum
// of all positions never exceeds the recorded total supply.

// GetLPPosition returns the LP token balance of user, zero if none.
func (k *Keeper) GetLPPosition(user string) math.Int {
	return getInt(k.base, LPPositionKey(user))
}

// GetLPTotalSupply returns the total LP tokens in circulation.
func (k *Keeper) GetLPTotalSupply() math.Int {
	return getInt(k.base, LPTotalSupplyKey)
}

func getLPPosition(kv statestore.KV, user string) math.Int {
	return getInt(kv, LPPositionKey(user))
}

// mintShares computes the LP tokens for a deposit of (amountA, amountB)
// into a pool currently holding (reserveA, reserveB) with supply LP tokens
// outstanding.
//
// First deposit: floor(sqrt(amountA * amountB)), which prices the initial
// share independent of the deposit ratio. Subsequent deposits: the smaller
// of the two proportional shares, so depositing off-ratio never mints more
// than the lesser side justifies.
func mintShares(reserveA, reserveB, supply, amountA, amountB math.Int) (math.Int, error) {
	if supply.IsZero() {
		product, err := SafeMul(amountA, amountB)
		if err != nil {
			return math.Int{}, types.ErrInvalidAmount.Wrapf(
				"deposit %s * %s overflows the share product", amountA, amountB)
		}
		return math.NewIntFromBigInt(new(big.Int).Sqrt(product.BigInt())), nil
	}

	shareA, err := SafeMulDiv(amountA, supply, reserveA)
	if err != nil {
		return math.Int{}, err
	}
	shareB, err := SafeMulDiv(amountB, supply, reserveB)
	if err != nil {
		return math.Int{}, err
	}
	return math.MinInt(shareA, shareB), nil
}

// applyAddLiquidity moves the deposit from the user's balances into the
// reserves and mints LP tokens. Returns the minted share count.
func applyAddLiquidity(kv statestore.KV, params types.Params, user string, amountA, amountB math.Int) (math.Int, error) {
	if !amountA.IsPositive() || !amountB.IsPositive() {
		return math.Int{}, types.ErrInvalidAmount.Wrapf("deposit amounts must be positive, got %s / %s", amountA, amountB)
	}

	assetA, assetB := params.PoolPair()
	pool := getPool(kv)
	supply := getInt(kv, LPTotalSupplyKey)

	minted, err := mintShares(pool.ReserveA, pool.ReserveB, supply, amountA, amountB)
	if err != nil {
		return math.Int{}, err
	}
	if !minted.IsPositive() {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrap("deposit too small to mint any LP tokens")
	}

	if err := debitBalance(kv, user, assetA, amountA); err != nil {
		return math.Int{}, err
	}
	if err := debitBalance(kv, user, assetB, amountB); err != nil {
		return math.Int{}, err
	}

	newReserveA, err := SafeAdd(pool.ReserveA, amountA)
	if err != nil {
		return math.Int{}, err
	}
	newReserveB, err := SafeAdd(pool.ReserveB, amountB)
	if err != nil {
		return math.Int{}, err
	}
	// The reserve product must stay representable at every pool mutation;
	// the constant-product audit multiplies the reserves on every check.
	watermark, err := SafeMul(newReserveA, newReserveB)
	if err != nil {
		return math.Int{}, types.ErrInvalidAmount.Wrapf(
			"deposit would overflow the reserve product: %s * %s", newReserveA, newReserveB)
	}
	after := types.Pool{ReserveA: newReserveA, ReserveB: newReserveB}
	setPool(kv, after)
	setCurveWatermark(kv, watermark)

	position, err := SafeAdd(getLPPosition(kv, user), minted)
	if err != nil {
		return math.Int{}, err
	}
	setInt(kv, LPPositionKey(user), position)

	newSupply, err := SafeAdd(supply, minted)
	if err != nil {
		return math.Int{}, err
	}
	setInt(kv, LPTotalSupplyKey, newSupply)
	indexUser(kv, user)

	return minted, nil
}

// applyRemoveLiquidity burns lpAmount of the user's LP tokens and credits
// the proportional share of both reserves back to the user's balances.
func applyRemoveLiquidity(kv statestore.KV, params types.Params, user string, lpAmount math.Int) (amountA, amountB math.Int, err error) {
	zero := math.ZeroInt()
	if !lpAmount.IsPositive() {
		return zero, zero, types.ErrInvalidAmount.Wrapf("lp amount must be positive, got %s", lpAmount)
	}

	position := getLPPosition(kv, user)
	if lpAmount.GT(position) {
		return zero, zero, types.ErrInsufficientBalance.Wrapf("lp position %s, need %s", position, lpAmount)
	}

	supply := getInt(kv, LPTotalSupplyKey)
	if !supply.IsPositive() {
		return zero, zero, types.ErrInsufficientLiquidity.Wrap("no LP tokens outstanding")
	}

	assetA, assetB := params.PoolPair()
	pool := getPool(kv)

	amountA, err = SafeMulDiv(lpAmount, pool.ReserveA, supply)
	if err != nil {
		return zero, zero, err
	}
	amountB, err = SafeMulDiv(lpAmount, pool.ReserveB, supply)
	if err != nil {
		return zero, zero, err
	}
	if !amountA.IsPositive() || !amountB.IsPositive() {
		return zero, zero, types.ErrInvalidAmount.Wrap("lp amount too small to withdraw anything")
	}

	newReserveA, err := SafeSub(pool.ReserveA, amountA)
	if err != nil {
		return zero, zero, err
	}
	newReserveB, err := SafeSub(pool.ReserveB, amountB)
	if err != nil {
		return zero, zero, err
	}
	after := types.Pool{ReserveA: newReserveA, ReserveB: newReserveB}
	setPool(kv, after)
	setCurveWatermark(kv, after.Product())

	newPosition, err := SafeSub(position, lpAmount)
	if err != nil {
		return zero, zero, err
	}
	setInt(kv, LPPositionKey(user), newPosition)

	newSupply, err := SafeSub(supply, lpAmount)
	if err != nil {
		return zero, zero, err
	}
	setInt(kv, LPTotalSupplyKey, newSupply)

	if err := creditBalance(kv, user, assetA, amountA); err != nil {
		return zero, zero, err
	}
	if err := creditBalance(kv, user, assetB, amountB); err != nil {
		return zero, zero, err
	}
	return amountA, amountB, nil
}
