package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// GenesisState is the full logical state blob the host loads and stores
// between calls. A fresh deployment carries only the admin identity, the
// fee schedule and the schema version; everything else starts at zero.
type GenesisState struct {
	Admin          string            `json:"admin"`
	Params         Params            `json:"params"`
	Version        uint64            `json:"version"`
	Paused         bool              `json:"paused"`
	Balances       []BalanceEntry    `json:"balances,omitempty"`
	Pool           Pool              `json:"pool"`
	LPPositions    []LPPositionEntry `json:"lp_positions,omitempty"`
	LPTotalSupply  math.Int          `json:"lp_total_supply"`
	FeeAccumulator math.Int          `json:"fee_accumulator"`
	Metrics        Metrics           `json:"metrics"`
	TotalMinted    math.Int          `json:"total_minted"`
	LastTimestamp  uint64            `json:"last_timestamp"`
}

// DefaultGenesis returns an all-zero ledger owned by the given admin.
func DefaultGenesis(admin string) GenesisState {
	return GenesisState{
		Admin:          admin,
		Params:         DefaultParams(),
		Version:        1,
		Pool:           EmptyPool(),
		LPTotalSupply:  math.ZeroInt(),
		FeeAccumulator: math.ZeroInt(),
		TotalMinted:    math.ZeroInt(),
	}
}

// Validate checks structural validity and the conservation equation
// (sum of balances + reserves + fee accumulator == total minted).
func (gs GenesisState) Validate() error {
	if gs.Admin == "" {
		return ErrInvalidIdentity.Wrap("genesis admin cannot be empty")
	}
	if gs.Version == 0 {
		return ErrInvalidState.Wrap("genesis version must be at least 1")
	}
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if err := gs.Pool.Validate(); err != nil {
		return err
	}
	if gs.LPTotalSupply.IsNil() || gs.LPTotalSupply.IsNegative() {
		return ErrInvalidState.Wrap("lp total supply must be non-negative")
	}
	if gs.FeeAccumulator.IsNil() || gs.FeeAccumulator.IsNegative() {
		return ErrInvalidState.Wrap("fee accumulator must be non-negative")
	}
	if gs.TotalMinted.IsNil() || gs.TotalMinted.IsNegative() {
		return ErrInvalidState.Wrap("total minted must be non-negative")
	}

	total := math.ZeroInt()
	seen := make(map[string]struct{}, len(gs.Balances))
	for _, entry := range gs.Balances {
		if entry.User == "" {
			return ErrInvalidIdentity.Wrap("balance entry with empty user")
		}
		if _, err := ParseAsset(entry.Asset); err != nil {
			return fmt.Errorf("balance entry for %s: %w", entry.User, err)
		}
		if entry.Amount.IsNil() || entry.Amount.IsNegative() {
			return ErrInvalidState.Wrapf("balance of %s/%s must be non-negative", entry.User, entry.Asset)
		}
		key := entry.User + "/" + entry.Asset
		if _, dup := seen[key]; dup {
			return ErrInvalidState.Wrapf("duplicate balance entry %s", key)
		}
		seen[key] = struct{}{}
		total = total.Add(entry.Amount)
	}

	lpSum := math.ZeroInt()
	seenLP := make(map[string]struct{}, len(gs.LPPositions))
	for _, pos := range gs.LPPositions {
		if pos.User == "" {
			return ErrInvalidIdentity.Wrap("lp position with empty user")
		}
		if pos.Amount.IsNil() || pos.Amount.IsNegative() {
			return ErrInvalidState.Wrapf("lp position of %s must be non-negative", pos.User)
		}
		if _, dup := seenLP[pos.User]; dup {
			return ErrInvalidState.Wrapf("duplicate lp position for %s", pos.User)
		}
		seenLP[pos.User] = struct{}{}
		lpSum = lpSum.Add(pos.Amount)
	}
	if lpSum.GT(gs.LPTotalSupply) {
		return ErrInvalidState.Wrapf("lp position sum %s exceeds total supply %s", lpSum, gs.LPTotalSupply)
	}

	total = total.Add(gs.Pool.ReserveA).Add(gs.Pool.ReserveB).Add(gs.FeeAccumulator)
	if !total.Equal(gs.TotalMinted) {
		return ErrInvalidState.Wrapf("conservation broken: accounted %s, total minted %s", total, gs.TotalMinted)
	}
	return nil
}
