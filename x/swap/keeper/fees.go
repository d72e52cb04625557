package keeper

import (
	"cosmossdk.io/math"

	"github.com/swaptrade/swaptrade/internal/statestore"
	"github.com/swaptrade/swaptrade/x/swap/types"
)

// FeeEngine: fee = floor(amount * bps / 10000). Pure, deterministic and
// monotonic in amount. The configured rate is capped at types.MaxFeeBps by
// construction (setters reject anything above the ceiling), so
// fee <= floor(amount * MaxFeeBps / 10000) holds for every amount.

// ComputeFee returns the fee for amount at the given rate. amount must be
// non-negative; rates above the ceiling are rejected at configuration time
// and panic here if they somehow reach the engine.
func ComputeFee(amount math.Int, bps uint32) math.Int {
	if bps > types.MaxFeeBps {
		panic(types.ErrFeeConfigInvalid.Wrapf("rate %d bps above ceiling %d bps", bps, types.MaxFeeBps))
	}
	if amount.IsNegative() {
		panic(types.ErrInvalidAmount.Wrapf("fee on negative amount %s", amount))
	}
	fee, err := SafeMulDiv(amount, math.NewInt(int64(bps)), math.NewInt(types.FeeDenominator))
	if err != nil {
		panic(err)
	}
	return fee
}

// GetFeeAccumulator returns the total of fees withheld from circulation.
// It participates in the conservation equation and only ever grows.
func (k *Keeper) GetFeeAccumulator() math.Int {
	return getInt(k.base, FeeAccumulatorKey)
}

// accrueFee adds a withheld fee to the global accumulator.
func accrueFee(kv statestore.KV, fee math.Int) error {
	if fee.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("cannot accrue negative fee %s", fee)
	}
	updated, err := SafeAdd(getInt(kv, FeeAccumulatorKey), fee)
	if err != nil {
		return err
	}
	setInt(kv, FeeAccumulatorKey, updated)
	return nil
}

func validateFeeBps(bps uint32) error {
	if bps > types.MaxFeeBps {
		return types.ErrFeeConfigInvalid.Wrapf("%d bps exceeds ceiling %d bps", bps, types.MaxFeeBps)
	}
	return nil
}
