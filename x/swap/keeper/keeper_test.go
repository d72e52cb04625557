package keeper_test

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/stretchr/testify/require"

	"github.com/swaptrade/swaptrade/x/swap/keeper"
	"github.com/swaptrade/swaptrade/x/swap/types"
)

const (
	adminID  = "GADMIN"
	aliceID  = "GALICE"
	bobID    = "GBOB"
	traderID = "GTRADER"
)

var (
	xlm  = types.NativeAsset()
	usdc = types.MustNewCustomAsset("USDC-SIM")
)

func newTestKeeper(t *testing.T) *keeper.Keeper {
	t.Helper()
	k := keeper.NewKeeper(dbm.NewMemDB(), log.NewNopLogger())
	require.NoError(t, k.InitGenesis(types.DefaultGenesis(adminID)))
	return k
}

func op(caller string, ts uint64) keeper.OpContext {
	return keeper.OpContext{Caller: caller, Timestamp: ts}
}

// mintTo funds a user as admin. The mint runs at the current clock
// watermark so the helper can be used at any point in a test without
// regressing the clock.
func mintTo(t *testing.T, k *keeper.Keeper, user string, asset types.Asset, amount int64) {
	t.Helper()
	require.NoError(t, k.Mint(op(adminID, k.GetLastTimestamp()), user, asset, math.NewInt(amount)))
}

// seedPool mints to alice and deposits the given reserves.
func seedPool(t *testing.T, k *keeper.Keeper, reserveA, reserveB int64) {
	t.Helper()
	mintTo(t, k, aliceID, xlm, reserveA)
	mintTo(t, k, aliceID, usdc, reserveB)
	_, err := k.AddLiquidity(op(aliceID, 2), aliceID, math.NewInt(reserveA), math.NewInt(reserveB))
	require.NoError(t, err)
}

// Minting after later-stamped operations must not regress the clock.
func TestMintAfterLaterTimestamp(t *testing.T) {
	k := newTestKeeper(t)
	seedPool(t, k, 1_000_000, 1_000_000)
	mintTo(t, k, traderID, xlm, 1_000)

	_, err := k.Swap(op(traderID, 50), traderID, xlm, usdc, math.NewInt(500))
	require.NoError(t, err)

	mintTo(t, k, traderID, xlm, 1_000)
	require.Equal(t, uint64(50), k.GetLastTimestamp())
	requireConservation(t, k)
}

// requireConservation asserts the conservation equation on the committed state.
func requireConservation(t *testing.T, k *keeper.Keeper) {
	t.Helper()
	diag, broken := keeper.ConservationInvariant(k.Snapshot())
	require.False(t, broken, diag)
}

func TestInitGenesisRejectsInvalidState(t *testing.T) {
	k := keeper.NewKeeper(dbm.NewMemDB(), log.NewNopLogger())

	gs := types.DefaultGenesis(adminID)
	gs.TotalMinted = math.NewInt(42) // nothing backs it
	require.ErrorIs(t, k.InitGenesis(gs), types.ErrInvalidState)

	gs = types.DefaultGenesis("")
	require.ErrorIs(t, k.InitGenesis(gs), types.ErrInvalidIdentity)
}

func TestGenesisRoundTrip(t *testing.T) {
	k := newTestKeeper(t)
	seedPool(t, k, 1_000_000, 1_000_000)
	mintTo(t, k, traderID, xlm, 5_000)
	_, err := k.Swap(op(traderID, 3), traderID, xlm, usdc, math.NewInt(1_000))
	require.NoError(t, err)

	exported := k.ExportGenesis()
	require.NoError(t, exported.Validate())

	restored := keeper.NewKeeper(dbm.NewMemDB(), log.NewNopLogger())
	require.NoError(t, restored.InitGenesis(exported))

	require.True(t, exported.Pool.ReserveA.Equal(restored.GetPool().ReserveA))
	require.True(t, exported.Pool.ReserveB.Equal(restored.GetPool().ReserveB))
	require.Equal(t, exported.Metrics, restored.GetMetrics())
	require.True(t, exported.TotalMinted.Equal(restored.GetTotalMinted()))
	requireConservation(t, restored)
}
