package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/swaptrade/swaptrade/x/swap/keeper"
	"github.com/swaptrade/swaptrade/x/swap/types"
)

func TestComputeFee(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		bps    uint32
		want   int64
	}{
		{"zero amount", 0, 30, 0},
		{"zero rate", 1_000_000, 0, 0},
		{"default swap fee", 1_000, 30, 3},
		{"rounds down", 999, 30, 2},   // 999 * 30 / 10000 = 2.997
		{"sub-fee dust", 333, 30, 0},  // 333 * 30 / 10000 = 0.999
		{"one above dust", 334, 30, 1},
		{"ceiling rate", 1_000, 100, 10},
		{"conversion fee", 10_000, 10, 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fee := keeper.ComputeFee(math.NewInt(tc.amount), tc.bps)
			require.Equal(t, tc.want, fee.Int64())
		})
	}
}

func TestComputeFeeDeterministic(t *testing.T) {
	amount := math.NewInt(123_456_789)
	first := keeper.ComputeFee(amount, 30)
	for i := 0; i < 10; i++ {
		require.True(t, first.Equal(keeper.ComputeFee(amount, 30)))
	}
}

// fee(a) <= fee(b) whenever a <= b, for every permitted rate.
func TestComputeFeeMonotonic(t *testing.T) {
	for _, bps := range []uint32{0, 1, 10, 30, 100} {
		prev := math.ZeroInt()
		for amount := int64(0); amount <= 2_000; amount += 37 {
			fee := keeper.ComputeFee(math.NewInt(amount), bps)
			require.True(t, fee.GTE(prev), "fee regressed at amount %d, %d bps", amount, bps)
			require.True(t, fee.LTE(math.NewInt(amount)), "fee exceeds amount at %d", amount)
			prev = fee
		}
	}
}

func TestComputeFeePanicsAboveCeiling(t *testing.T) {
	require.Panics(t, func() {
		keeper.ComputeFee(math.NewInt(1_000), types.MaxFeeBps+1)
	})
}

func TestSetFeeRates(t *testing.T) {
	k := newTestKeeper(t)

	require.NoError(t, k.SetSwapFeeBps(op(adminID, 5), 100))
	require.NoError(t, k.SetConversionFeeBps(op(adminID, 6), 0))
	params := k.GetParams()
	require.Equal(t, uint32(100), params.SwapFeeBps)
	require.Equal(t, uint32(0), params.ConversionFeeBps)
}

func TestSetFeeRejectsAboveCeiling(t *testing.T) {
	k := newTestKeeper(t)

	err := k.SetSwapFeeBps(op(adminID, 5), types.MaxFeeBps+1)
	require.ErrorIs(t, err, types.ErrFeeConfigInvalid)
	err = k.SetConversionFeeBps(op(adminID, 5), 10_000)
	require.ErrorIs(t, err, types.ErrFeeConfigInvalid)

	params := k.GetParams()
	require.Equal(t, uint32(types.DefaultSwapFeeBps), params.SwapFeeBps)
	require.Equal(t, uint32(types.DefaultConversionFeeBps), params.ConversionFeeBps)
}

func TestSetFeeRequiresAdmin(t *testing.T) {
	k := newTestKeeper(t)

	err := k.SetSwapFeeBps(op(bobID, 5), 50)
	require.ErrorIs(t, err, types.ErrUnauthorized)
	require.Equal(t, uint32(types.DefaultSwapFeeBps), k.GetParams().SwapFeeBps)
}

func TestZeroFeeSwapKeepsProductExact(t *testing.T) {
	k := newTestKeeper(t)
	seedPool(t, k, 1_000_000, 1_000_000)
	require.NoError(t, k.SetSwapFeeBps(op(adminID, 3), 0))

	mintTo(t, k, traderID, xlm, 1_000)
	out, err := k.Swap(op(traderID, 4), traderID, xlm, usdc, math.NewInt(1_000))
	require.NoError(t, err)

	// x1 = 1_001_000, floor(10^12 / 1_001_000) = 999_000, out = 1_000
	require.Equal(t, int64(1_000), out.Int64())
	pool := k.GetPool()
	require.Equal(t, int64(1_001_000), pool.ReserveA.Int64())
	require.Equal(t, int64(999_000), pool.ReserveB.Int64())
	requireConservation(t, k)
}
