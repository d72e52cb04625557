package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/swaptrade/swaptrade/x/swap/keeper"
	"github.com/swaptrade/swaptrade/x/swap/types"
)

func TestSwapAgainstSeededPool(t *testing.T) {
	k := newTestKeeper(t)
	seedPool(t, k, 1_000_000, 1_000_000)
	mintTo(t, k, traderID, xlm, 1_000)

	out, err := k.Swap(op(traderID, 3), traderID, xlm, usdc, math.NewInt(1_000))
	require.NoError(t, err)

	// fee = 3, effective in = 997, x1 = 1_000_997,
	// floor(10^12 / 1_000_997) = 999_003, out = 997.
	require.Equal(t, int64(997), out.Int64())
	require.True(t, k.GetBalance(traderID, xlm).IsZero())
	require.Equal(t, int64(997), k.GetBalance(traderID, usdc).Int64())

	// The withheld fee stays in the input reserve, not the fee accumulator.
	pool := k.GetPool()
	require.Equal(t, int64(1_001_000), pool.ReserveA.Int64())
	require.Equal(t, int64(999_003), pool.ReserveB.Int64())
	require.True(t, k.GetFeeAccumulator().IsZero())

	require.Equal(t, uint64(1), k.GetMetrics().TradeCount)
	require.Equal(t, uint64(0), k.GetMetrics().FailedOrderCount)
	require.Equal(t, uint64(1), k.GetUserTradeCount(traderID))
	requireConservation(t, k)
}

func TestSwapReverseDirection(t *testing.T) {
	k := newTestKeeper(t)
	seedPool(t, k, 1_000_000, 1_000_000)
	mintTo(t, k, traderID, usdc, 1_000)

	out, err := k.Swap(op(traderID, 3), traderID, usdc, xlm, math.NewInt(1_000))
	require.NoError(t, err)

	// Symmetric reserves, so the same numbers with the sides flipped.
	require.Equal(t, int64(997), out.Int64())
	pool := k.GetPool()
	require.Equal(t, int64(999_003), pool.ReserveA.Int64())
	require.Equal(t, int64(1_001_000), pool.ReserveB.Int64())
	requireConservation(t, k)
}

func TestSwapTinyAmount(t *testing.T) {
	k := newTestKeeper(t)
	seedPool(t, k, 1_000_000, 1_000_000)
	mintTo(t, k, traderID, xlm, 1)

	// Too small to charge any fee; still executes.
	out, err := k.Swap(op(traderID, 3), traderID, xlm, usdc, math.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, int64(1), out.Int64())
	require.Equal(t, uint64(1), k.GetMetrics().TradeCount)
	requireConservation(t, k)
}

// The physical reserve product never drops below the priced-curve
// watermark across a run of swaps in both directions.
func TestSwapSequenceHoldsInvariants(t *testing.T) {
	k := newTestKeeper(t)
	seedPool(t, k, 1_000_000, 2_000_000)
	mintTo(t, k, traderID, xlm, 100_000)
	mintTo(t, k, traderID, usdc, 100_000)

	ts := uint64(3)
	for _, trade := range []struct {
		from, to types.Asset
		amount   int64
	}{
		{xlm, usdc, 5_000},
		{usdc, xlm, 9_999},
		{xlm, usdc, 1},
		{usdc, xlm, 40_000},
		{xlm, usdc, 73_219},
	} {
		_, err := k.Swap(op(traderID, ts), traderID, trade.from, trade.to, math.NewInt(trade.amount))
		require.NoError(t, err)
		ts++

		diag, broken := keeper.AllInvariants(k.Snapshot())
		require.False(t, broken, diag)
	}
	require.Equal(t, uint64(5), k.GetMetrics().TradeCount)
	require.Equal(t, uint64(5), k.GetUserTradeCount(traderID))
}

// Every rejected swap leaves balances and reserves untouched but bumps
// the failed-order counter on the committed state.
func TestSwapRejections(t *testing.T) {
	doge := types.MustNewCustomAsset("DOGE")

	tests := []struct {
		name    string
		caller  string
		user    string
		from    types.Asset
		to      types.Asset
		amount  int64
		wantErr error
	}{
		{"same asset", traderID, traderID, xlm, xlm, 100, types.ErrSameAssetSwap},
		{"zero amount", traderID, traderID, xlm, usdc, 0, types.ErrInvalidAmount},
		{"negative amount", traderID, traderID, xlm, usdc, -5, types.ErrInvalidAmount},
		{"insufficient balance", traderID, traderID, xlm, usdc, 1_000_001, types.ErrInsufficientBalance},
		{"pair outside the pool", traderID, traderID, doge, xlm, 100, types.ErrInsufficientLiquidity},
		{"caller is not the account owner", bobID, traderID, xlm, usdc, 100, types.ErrUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			k := newTestKeeper(t)
			seedPool(t, k, 1_000_000, 1_000_000)
			mintTo(t, k, traderID, xlm, 500)
			mintTo(t, k, traderID, doge, 500)
			poolBefore := k.GetPool()

			_, err := k.Swap(op(tc.caller, 3), tc.user, tc.from, tc.to, math.NewInt(tc.amount))
			require.ErrorIs(t, err, tc.wantErr)

			require.Equal(t, int64(500), k.GetBalance(traderID, xlm).Int64())
			require.True(t, k.GetBalance(traderID, usdc).IsZero())
			require.True(t, poolBefore.ReserveA.Equal(k.GetPool().ReserveA))
			require.True(t, poolBefore.ReserveB.Equal(k.GetPool().ReserveB))
			require.Equal(t, uint64(0), k.GetMetrics().TradeCount)
			require.Equal(t, uint64(1), k.GetMetrics().FailedOrderCount)
			requireConservation(t, k)
		})
	}
}

func TestSwapWhilePaused(t *testing.T) {
	k := newTestKeeper(t)
	seedPool(t, k, 1_000_000, 1_000_000)
	mintTo(t, k, traderID, xlm, 1_000)
	require.NoError(t, k.PauseTrading(op(adminID, 3)))

	_, err := k.Swap(op(traderID, 4), traderID, xlm, usdc, math.NewInt(1_000))
	require.ErrorIs(t, err, types.ErrTradingPaused)
	require.Equal(t, uint64(1), k.GetMetrics().FailedOrderCount)
	require.Equal(t, int64(1_000), k.GetBalance(traderID, xlm).Int64())

	require.NoError(t, k.ResumeTrading(op(adminID, 5)))
	_, err = k.Swap(op(traderID, 6), traderID, xlm, usdc, math.NewInt(1_000))
	require.NoError(t, err)
}

func TestSwapAgainstEmptyPool(t *testing.T) {
	k := newTestKeeper(t)
	mintTo(t, k, traderID, xlm, 1_000)

	_, err := k.Swap(op(traderID, 3), traderID, xlm, usdc, math.NewInt(1_000))
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
	require.Equal(t, uint64(1), k.GetMetrics().FailedOrderCount)
}

// Clock regressions abort before the failure counter: a broken host clock
// is not a user order failure.
func TestSwapClockRegressionNotCounted(t *testing.T) {
	k := newTestKeeper(t)
	seedPool(t, k, 1_000_000, 1_000_000)
	mintTo(t, k, traderID, xlm, 1_000)
	_, err := k.Swap(op(traderID, 100), traderID, xlm, usdc, math.NewInt(500))
	require.NoError(t, err)

	_, err = k.Swap(op(traderID, 99), traderID, xlm, usdc, math.NewInt(500))
	require.ErrorIs(t, err, types.ErrClockRegression)
	require.Equal(t, uint64(0), k.GetMetrics().FailedOrderCount)
	require.Equal(t, uint64(100), k.GetLastTimestamp())
}
