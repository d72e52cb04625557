package types_test

import (
	"math/big"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/swaptrade/swaptrade/x/swap/types"
)

// balancedGenesis carries 150 in balances, 1300 in reserves and 10 of
// accumulated fees against 1460 minted.
func balancedGenesis() types.GenesisState {
	gs := types.DefaultGenesis("GADMIN")
	gs.Balances = []types.BalanceEntry{
		{User: "GALICE", Asset: "XLM", Amount: math.NewInt(100)},
		{User: "GALICE", Asset: "USDC-SIM", Amount: math.NewInt(50)},
	}
	gs.Pool = types.Pool{ReserveA: math.NewInt(400), ReserveB: math.NewInt(900)}
	gs.LPPositions = []types.LPPositionEntry{{User: "GALICE", Amount: math.NewInt(600)}}
	gs.LPTotalSupply = math.NewInt(600)
	gs.FeeAccumulator = math.NewInt(10)
	gs.TotalMinted = math.NewInt(1_460)
	return gs
}

func TestDefaultGenesisValid(t *testing.T) {
	require.NoError(t, types.DefaultGenesis("GADMIN").Validate())
	require.NoError(t, balancedGenesis().Validate())
}

func TestGenesisValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.GenesisState)
	}{
		{"empty admin", func(gs *types.GenesisState) { gs.Admin = "" }},
		{"zero version", func(gs *types.GenesisState) { gs.Version = 0 }},
		{"fee above ceiling", func(gs *types.GenesisState) { gs.Params.SwapFeeBps = 9_999 }},
		{"negative reserve", func(gs *types.GenesisState) { gs.Pool.ReserveA = math.NewInt(-1) }},
		{"negative lp supply", func(gs *types.GenesisState) { gs.LPTotalSupply = math.NewInt(-1) }},
		{"negative fee accumulator", func(gs *types.GenesisState) { gs.FeeAccumulator = math.NewInt(-1) }},
		{"conservation broken", func(gs *types.GenesisState) { gs.TotalMinted = math.NewInt(1_459) }},
		{"balance with empty user", func(gs *types.GenesisState) {
			gs.Balances[0].User = ""
		}},
		{"balance with bad asset", func(gs *types.GenesisState) {
			gs.Balances[0].Asset = "not valid"
		}},
		{"negative balance", func(gs *types.GenesisState) {
			gs.Balances[0].Amount = math.NewInt(-5)
		}},
		{"duplicate balance entry", func(gs *types.GenesisState) {
			gs.Balances = append(gs.Balances, gs.Balances[0])
			gs.TotalMinted = gs.TotalMinted.Add(gs.Balances[0].Amount)
		}},
		{"lp positions exceed supply", func(gs *types.GenesisState) {
			gs.LPPositions[0].Amount = math.NewInt(601)
		}},
		{"duplicate lp position", func(gs *types.GenesisState) {
			gs.LPPositions = append(gs.LPPositions, types.LPPositionEntry{User: "GALICE", Amount: math.ZeroInt()})
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gs := balancedGenesis()
			tc.mutate(&gs)
			require.Error(t, gs.Validate())
		})
	}
}

func TestPoolValidate(t *testing.T) {
	require.NoError(t, types.EmptyPool().Validate())
	require.NoError(t, types.Pool{ReserveA: math.NewInt(1), ReserveB: math.NewInt(1)}.Validate())
	require.Error(t, types.Pool{ReserveA: math.NewInt(-1), ReserveB: math.NewInt(1)}.Validate())
	require.Error(t, types.Pool{}.Validate())

	// Reserves whose product leaves the representable amount range are
	// rejected up front; every audit multiplies them.
	wide := math.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), 200))
	require.ErrorIs(t,
		types.Pool{ReserveA: wide, ReserveB: wide}.Validate(),
		types.ErrInvalidState)
}

func TestPoolHasLiquidity(t *testing.T) {
	require.False(t, types.EmptyPool().HasLiquidity())
	require.False(t, types.Pool{ReserveA: math.NewInt(1), ReserveB: math.ZeroInt()}.HasLiquidity())
	require.True(t, types.Pool{ReserveA: math.NewInt(1), ReserveB: math.NewInt(1)}.HasLiquidity())
}
