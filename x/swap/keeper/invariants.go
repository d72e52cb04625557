package keeper

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/swaptrade/swaptrade/internal/statestore"
	"github.com/swaptrade/swaptrade/x/swap/types"
)

// Invariant checker: pure predicates re-derivable from state at any time.
// Each returns a diagnostic plus a broken flag, in the shape of Cosmos SDK
// module invariants. The dispatcher runs the relevant subset after every
// mutation; external verifiers can call the exported forms whenever they
// like without side effects.

// Snapshot is a consistent copy of the full logical state, built by
// walking the user and asset indexes (the backing store itself is treated
// as non-enumerable).
type Snapshot struct {
	Balances       map[string]map[string]math.Int
	Users          []string
	Assets         []types.Asset
	Pool           types.Pool
	LPPositions    map[string]math.Int
	LPTotalSupply  math.Int
	FeeAccumulator math.Int
	Metrics        types.Metrics
	Version        uint64
	Timestamp      uint64
	TotalMinted    math.Int
	Admin          string
	Paused         bool
	CurveWatermark math.Int
}

// Snapshot captures the current committed state.
func (k *Keeper) Snapshot() Snapshot {
	return takeSnapshot(k.base)
}

func takeSnapshot(kv statestore.KV) Snapshot {
	users := allUsers(kv)
	assets := allAssets(kv)

	balances := make(map[string]map[string]math.Int, len(users))
	lpPositions := make(map[string]math.Int, len(users))
	for _, user := range users {
		byAsset := make(map[string]math.Int, len(assets))
		for _, asset := range assets {
			byAsset[asset.ID()] = getInt(kv, BalanceKey(user, asset))
		}
		balances[user] = byAsset
		lpPositions[user] = getLPPosition(kv, user)
	}

	return Snapshot{
		Balances:       balances,
		Users:          users,
		Assets:         assets,
		Pool:           getPool(kv),
		LPPositions:    lpPositions,
		LPTotalSupply:  getInt(kv, LPTotalSupplyKey),
		FeeAccumulator: getInt(kv, FeeAccumulatorKey),
		Metrics:        getMetrics(kv),
		Version:        getUint64(kv, VersionKey),
		Timestamp:      getUint64(kv, LastTimestampKey),
		TotalMinted:    getInt(kv, TotalMintedKey),
		Admin:          getString(kv, AdminKey),
		Paused:         getBool(kv, PausedKey),
		CurveWatermark: getCurveWatermark(kv),
	}
}

// Equal reports whether two snapshots describe byte-identical ledgers.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s.Users) != len(other.Users) || len(s.Assets) != len(other.Assets) {
		return false
	}
	for i := range s.Users {
		if s.Users[i] != other.Users[i] {
			return false
		}
	}
	for i := range s.Assets {
		if !s.Assets[i].Equal(other.Assets[i]) {
			return false
		}
	}
	for user, byAsset := range s.Balances {
		for asset, amount := range byAsset {
			if !amount.Equal(other.Balances[user][asset]) {
				return false
			}
		}
	}
	for user, position := range s.LPPositions {
		if !position.Equal(other.LPPositions[user]) {
			return false
		}
	}
	return s.Pool.ReserveA.Equal(other.Pool.ReserveA) &&
		s.Pool.ReserveB.Equal(other.Pool.ReserveB) &&
		s.LPTotalSupply.Equal(other.LPTotalSupply) &&
		s.FeeAccumulator.Equal(other.FeeAccumulator) &&
		s.Metrics == other.Metrics &&
		s.Version == other.Version &&
		s.Timestamp == other.Timestamp &&
		s.TotalMinted.Equal(other.TotalMinted) &&
		s.Admin == other.Admin &&
		s.Paused == other.Paused &&
		s.CurveWatermark.Equal(other.CurveWatermark)
}

// TotalAccounted sums every balance plus reserves plus the fee
// accumulator, the left side of the conservation equation.
func (s Snapshot) TotalAccounted() math.Int {
	total := math.ZeroInt()
	for _, user := range s.Users {
		for _, asset := range s.Assets {
			total = total.Add(s.Balances[user][asset.ID()])
		}
	}
	return total.Add(s.Pool.ReserveA).Add(s.Pool.ReserveB).Add(s.FeeAccumulator)
}

// ConservationInvariant: no operation creates or destroys value.
// Sum of all balances + both reserves + fee accumulator == total minted.
func ConservationInvariant(s Snapshot) (string, bool) {
	accounted := s.TotalAccounted()
	if accounted.Equal(s.TotalMinted) {
		return "", false
	}
	return fmt.Sprintf("conservation: accounted %s != total minted %s", accounted, s.TotalMinted), true
}

// AuthorizationInvariant: a call whose authorization failed must
// leave the ledger byte-identical.
func AuthorizationInvariant(before, after Snapshot, authorized bool) (string, bool) {
	if authorized || before.Equal(after) {
		return "", false
	}
	return "authorization: state changed by an unauthorized call", true
}

// MonotonicCountersInvariant: version, timestamp and both operation
// counters never decrease between two chronologically ordered snapshots.
func MonotonicCountersInvariant(before, after Snapshot) (string, bool) {
	switch {
	case after.Version < before.Version:
		return fmt.Sprintf("monotonicity: version %d -> %d", before.Version, after.Version), true
	case after.Timestamp < before.Timestamp:
		return fmt.Sprintf("monotonicity: timestamp %d -> %d", before.Timestamp, after.Timestamp), true
	case after.Metrics.TradeCount < before.Metrics.TradeCount:
		return fmt.Sprintf("monotonicity: trade count %d -> %d", before.Metrics.TradeCount, after.Metrics.TradeCount), true
	case after.Metrics.FailedOrderCount < before.Metrics.FailedOrderCount:
		return fmt.Sprintf("monotonicity: failed order count %d -> %d", before.Metrics.FailedOrderCount, after.Metrics.FailedOrderCount), true
	}
	return "", false
}

// PoolIntegrityInvariant: reserves are never negative, and whenever
// LP tokens are outstanding both reserves are strictly positive.
func PoolIntegrityInvariant(s Snapshot) (string, bool) {
	if s.Pool.ReserveA.IsNil() || s.Pool.ReserveB.IsNil() ||
		s.Pool.ReserveA.IsNegative() || s.Pool.ReserveB.IsNegative() {
		return fmt.Sprintf("pool integrity: reserves %s / %s", s.Pool.ReserveA, s.Pool.ReserveB), true
	}
	if s.LPTotalSupply.IsPositive() && !s.Pool.HasLiquidity() {
		return fmt.Sprintf("pool integrity: %s LP tokens outstanding against reserves %s / %s",
			s.LPTotalSupply, s.Pool.ReserveA, s.Pool.ReserveB), true
	}
	return "", false
}

// ConstantProductInvariant (audit form): the physical reserve product
// never falls below the priced-curve watermark recorded at the last pool
// mutation. Fee retention can only push the physical product above the
// watermark; anything below it means value leaked out of the pool.
// The per-swap priced check is CheckSwapProduct.
func ConstantProductInvariant(s Snapshot) (string, bool) {
	product := s.Pool.Product()
	if product.GTE(s.CurveWatermark) {
		return "", false
	}
	return fmt.Sprintf("constant product: physical product %s below curve watermark %s", product, s.CurveWatermark), true
}

// CheckSwapProduct (per-operation form): the priced post-swap product
// must not exceed the pre-swap product.
func CheckSwapProduct(before types.Pool, pricedK math.Int) (string, bool) {
	k0 := before.Product()
	if pricedK.LTE(k0) {
		return "", false
	}
	return fmt.Sprintf("constant product: priced k %s exceeds pre-swap k %s", pricedK, k0), true
}

// NonNegativeBalancesInvariant: every (user, asset) balance is
// non-negative.
func NonNegativeBalancesInvariant(s Snapshot) (string, bool) {
	for _, user := range s.Users {
		for _, asset := range s.Assets {
			amount := s.Balances[user][asset.ID()]
			if amount.IsNil() || amount.IsNegative() {
				return fmt.Sprintf("negative balance: %s %s for %s", amount, asset, user), true
			}
		}
	}
	return "", false
}

// LPSupplyInvariant: the sum of live LP positions never exceeds the
// recorded total supply (burned tokens leave circulation permanently).
func LPSupplyInvariant(s Snapshot) (string, bool) {
	sum := math.ZeroInt()
	for _, user := range s.Users {
		position := s.LPPositions[user]
		if position.IsNil() || position.IsNegative() {
			return fmt.Sprintf("lp supply: negative position %s for %s", position, user), true
		}
		sum = sum.Add(position)
	}
	if sum.LTE(s.LPTotalSupply) {
		return "", false
	}
	return fmt.Sprintf("lp supply: position sum %s exceeds total supply %s", sum, s.LPTotalSupply), true
}

// invariantCheck names a single-snapshot predicate for dispatcher use.
type invariantCheck struct {
	name  string
	check func(Snapshot) (string, bool)
}

var (
	checkConservation = invariantCheck{"conservation", ConservationInvariant}
	checkPool         = invariantCheck{"pool-integrity", PoolIntegrityInvariant}
	checkProduct      = invariantCheck{"constant-product", ConstantProductInvariant}
	checkBalances     = invariantCheck{"non-negative-balances", NonNegativeBalancesInvariant}
	checkLPSupply     = invariantCheck{"lp-supply", LPSupplyInvariant}
)

// AllInvariants runs every single-snapshot predicate and concatenates the
// diagnostics of the broken ones.
func AllInvariants(s Snapshot) (string, bool) {
	var (
		msg    string
		broken bool
	)
	for _, ic := range []invariantCheck{checkConservation, checkPool, checkProduct, checkBalances, checkLPSupply} {
		if diag, bad := ic.check(s); bad {
			msg += fmt.Sprintf("[%s] %s\n", ic.name, diag)
			broken = true
		}
	}
	return msg, broken
}
