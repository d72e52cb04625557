package history_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/swaptrade/swaptrade/internal/history"
	"github.com/swaptrade/swaptrade/x/swap/keeper"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func record(user, kind string, in, out, fee int64, at uint64) keeper.TradeRecord {
	return keeper.TradeRecord{
		User: user, Kind: kind,
		FromAsset: "XLM", ToAsset: "USDC-SIM",
		AmountIn: math.NewInt(in), AmountOut: math.NewInt(out), Fee: math.NewInt(fee),
		ExecutedAt: at,
	}
}

func TestRecordAndQuery(t *testing.T) {
	store := openStore(t)

	require.NoError(t, store.Record(record("GALICE", "swap", 1_000, 997, 3, 10)))
	require.NoError(t, store.Record(record("GALICE", "conversion", 10_000, 9_990, 10, 20)))
	require.NoError(t, store.Record(record("GBOB", "swap", 50, 49, 0, 15)))

	trades, err := store.UserTrades("GALICE", 10)
	require.NoError(t, err)
	require.Len(t, trades, 2)

	// Newest first.
	require.Equal(t, "conversion", trades[0].Kind)
	require.Equal(t, uint64(20), trades[0].ExecutedAt)
	require.Equal(t, "swap", trades[1].Kind)
	require.Equal(t, "1000", trades[1].AmountIn)
	require.Equal(t, "997", trades[1].AmountOut)
	require.Equal(t, "3", trades[1].Fee)
	require.NotEmpty(t, trades[0].ID)
	require.NotEqual(t, trades[0].ID, trades[1].ID)
}

func TestUserTradesLimit(t *testing.T) {
	store := openStore(t)
	for i := int64(0); i < 5; i++ {
		require.NoError(t, store.Record(record("GALICE", "swap", 100+i, 99, 0, uint64(i))))
	}

	trades, err := store.UserTrades("GALICE", 3)
	require.NoError(t, err)
	require.Len(t, trades, 3)
	require.Equal(t, uint64(4), trades[0].ExecutedAt)

	// Non-positive limits fall back to the default page size.
	trades, err = store.UserTrades("GALICE", 0)
	require.NoError(t, err)
	require.Len(t, trades, 5)
}

func TestUserTradesUnknownUser(t *testing.T) {
	store := openStore(t)
	trades, err := store.UserTrades("GNOBODY", 10)
	require.NoError(t, err)
	require.Empty(t, trades)
}

// Large amounts round-trip as decimal strings; sqlite integer columns
// would truncate them.
func TestRecordLargeAmounts(t *testing.T) {
	store := openStore(t)

	huge, ok := math.NewIntFromString("340282366920938463463374607431768211456") // 2^128
	require.True(t, ok)
	rec := keeper.TradeRecord{
		User: "GALICE", Kind: "swap",
		FromAsset: "XLM", ToAsset: "USDC-SIM",
		AmountIn: huge, AmountOut: huge.SubRaw(1), Fee: math.ZeroInt(),
		ExecutedAt: 1,
	}
	require.NoError(t, store.Record(rec))

	trades, err := store.UserTrades("GALICE", 1)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	require.Equal(t, huge.String(), trades[0].AmountIn)
}
