package keeper

import (
	"github.com/swaptrade/swaptrade/internal/statestore"
	"github.com/swaptrade/swaptrade/x/swap/types"
)

// Metrics tracker: monotonic counters and the version/timestamp
// watermarks. Counters saturate at the representable maximum instead of
// wrapping; a stuck-at-max counter is observable, a wrapped one would
// silently break monotonicity.

// GetMetrics returns the aggregate operational counters.
func (k *Keeper) GetMetrics() types.Metrics {
	return getMetrics(k.base)
}

// GetUserTradeCount returns the lifetime number of committed trades for a
// user.
func (k *Keeper) GetUserTradeCount(user string) uint64 {
	return getUint64(k.base, UserTradeCountKey(user))
}

func getMetrics(kv statestore.KV) types.Metrics {
	return types.Metrics{
		TradeCount:       getUint64(kv, TradeCountKey),
		FailedOrderCount: getUint64(kv, FailedOrderCountKey),
	}
}

func recordTrade(kv statestore.KV, user string) {
	setUint64(kv, TradeCountKey, SaturatingIncrement(getUint64(kv, TradeCountKey)))
	key := UserTradeCountKey(user)
	setUint64(kv, key, SaturatingIncrement(getUint64(kv, key)))
}

func recordFailure(kv statestore.KV) {
	setUint64(kv, FailedOrderCountKey, SaturatingIncrement(getUint64(kv, FailedOrderCountKey)))
}

// observeTimestamp asserts the host clock never runs backwards and
// advances the watermark. A regression is a broken host assumption, not a
// user error.
func observeTimestamp(kv statestore.KV, ts uint64) error {
	last := getUint64(kv, LastTimestampKey)
	if ts < last {
		return types.ErrClockRegression.Wrapf("timestamp %d precedes watermark %d", ts, last)
	}
	setUint64(kv, LastTimestampKey, ts)
	return nil
}

// observeVersion asserts schema versions only move forward.
func observeVersion(kv statestore.KV, newVersion uint64) error {
	current := getUint64(kv, VersionKey)
	if newVersion < current {
		return types.ErrInvalidMigration.Wrapf("version %d precedes current %d", newVersion, current)
	}
	setUint64(kv, VersionKey, newVersion)
	return nil
}
