package types

import (
	"cosmossdk.io/errors"
)

// Swap ledger sentinel errors.
//
// User-input errors (invalid amount, insufficient balance/liquidity,
// unauthorized, same-asset swap) abort the operation with no state change.
// ErrInvariantViolation, ErrClockRegression and ErrInvalidMigration are
// fatal: they signal an internal bug or a broken host assumption.
var (
	ErrUnauthorized          = errors.Register(ModuleName, 2, "unauthorized")
	ErrInvalidAmount         = errors.Register(ModuleName, 3, "invalid amount")
	ErrInsufficientBalance   = errors.Register(ModuleName, 4, "insufficient balance")
	ErrInsufficientLiquidity = errors.Register(ModuleName, 5, "insufficient liquidity in pool")
	ErrSameAssetSwap         = errors.Register(ModuleName, 6, "cannot swap an asset for itself")
	ErrInvalidAsset          = errors.Register(ModuleName, 7, "invalid asset")
	ErrTradingPaused         = errors.Register(ModuleName, 8, "trading is paused")
	ErrFeeConfigInvalid      = errors.Register(ModuleName, 9, "fee configuration invalid")
	ErrInvariantViolation    = errors.Register(ModuleName, 10, "ledger invariant violated")
	ErrClockRegression       = errors.Register(ModuleName, 11, "timestamp regressed")
	ErrInvalidMigration      = errors.Register(ModuleName, 12, "schema version regressed")
	ErrInvalidState          = errors.Register(ModuleName, 13, "invalid ledger state")
	ErrInvalidIdentity       = errors.Register(ModuleName, 14, "invalid identity")
	ErrBatchInvalid          = errors.Register(ModuleName, 15, "invalid batch")
)
