package types

import (
	"fmt"
)

const (
	// FeeDenominator converts basis points to a fraction.
	FeeDenominator = 10_000

	// MaxFeeBps is the hard fee ceiling (1%). No configured rate may
	// exceed it; attempts fail with ErrFeeConfigInvalid.
	MaxFeeBps = 100

	// DefaultSwapFeeBps is the pool swap fee (0.3%).
	DefaultSwapFeeBps = 30

	// DefaultConversionFeeBps is the in-account conversion fee (0.1%).
	DefaultConversionFeeBps = 10

	// MaxBatchSize bounds the number of orders in one batch execution.
	MaxBatchSize = 20
)

// Params holds the configurable fee schedule and the pool asset pair.
type Params struct {
	// SwapFeeBps is withheld from the priced curve on pool swaps; the
	// withheld amount stays in the input reserve as LP revenue.
	SwapFeeBps uint32 `json:"swap_fee_bps"`

	// ConversionFeeBps is withheld on in-account asset conversions and
	// routed to the global fee accumulator.
	ConversionFeeBps uint32 `json:"conversion_fee_bps"`

	// PoolAssetA and PoolAssetB are the two pool asset symbols.
	// PoolAssetA is always the native asset.
	PoolAssetA string `json:"pool_asset_a"`
	PoolAssetB string `json:"pool_asset_b"`
}

// DefaultParams returns the genesis fee schedule for the XLM/USDC-SIM pool.
func DefaultParams() Params {
	return Params{
		SwapFeeBps:       DefaultSwapFeeBps,
		ConversionFeeBps: DefaultConversionFeeBps,
		PoolAssetA:       NativeSymbol,
		PoolAssetB:       "USDC-SIM",
	}
}

// Validate checks fee bounds and the pool pair.
func (p Params) Validate() error {
	if p.SwapFeeBps > MaxFeeBps {
		return ErrFeeConfigInvalid.Wrapf("swap fee %d bps exceeds ceiling %d bps", p.SwapFeeBps, MaxFeeBps)
	}
	if p.ConversionFeeBps > MaxFeeBps {
		return ErrFeeConfigInvalid.Wrapf("conversion fee %d bps exceeds ceiling %d bps", p.ConversionFeeBps, MaxFeeBps)
	}
	if p.PoolAssetA != NativeSymbol {
		return ErrInvalidAsset.Wrapf("pool asset A must be the native asset %s", NativeSymbol)
	}
	assetB, err := ParseAsset(p.PoolAssetB)
	if err != nil {
		return fmt.Errorf("pool asset B: %w", err)
	}
	if assetB.Native {
		return ErrInvalidAsset.Wrap("pool asset B cannot be the native asset")
	}
	return nil
}

// PoolPair returns the pool assets. Params must have been validated.
func (p Params) PoolPair() (Asset, Asset) {
	return NativeAsset(), Asset{Symbol: p.PoolAssetB}
}
