package keeper

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/swaptrade/swaptrade/internal/statestore"
	"github.com/swaptrade/swaptrade/x/swap/types"
)

// Operation dispatcher. Every external call runs the same pipeline:
// validate (clock, authorization, inputs) -> compute -> mutate against a
// write cache -> check invariants on the would-be post state -> commit.
// Any failure before commit discards the cache, so an aborted call has
// zero externally visible effect. An invariant failure additionally pauses
// trading on the base store: it signals an internal bug, and further
// mutations would compound it.

// OpContext carries the host-attested call envelope: the verified caller
// identity and the external clock reading for this call.
type OpContext struct {
	Caller    string
	Timestamp uint64
}

// beginOp opens the write cache for one operation and asserts the host
// clock has not regressed. A regression is fatal and aborts before any
// other work.
func (k *Keeper) beginOp(op OpContext) (*statestore.Cache, error) {
	if op.Caller == "" {
		return nil, types.ErrInvalidIdentity.Wrap("missing caller identity")
	}
	cache := statestore.NewCache(k.base)
	if err := observeTimestamp(cache, op.Timestamp); err != nil {
		return nil, err
	}
	return cache, nil
}

// finishOp verifies the named invariants against the would-be post state
// and commits. On violation the cache is discarded, trading is paused on
// the committed state, and ErrInvariantViolation surfaces.
func (k *Keeper) finishOp(opName string, before Snapshot, cache *statestore.Cache, checks ...invariantCheck) error {
	after := takeSnapshot(cache)
	if diag, broken := MonotonicCountersInvariant(before, after); broken {
		return k.haltOnViolation(opName, "monotonic-counters", diag, cache)
	}
	for _, ic := range checks {
		if diag, broken := ic.check(after); broken {
			return k.haltOnViolation(opName, ic.name, diag, cache)
		}
	}
	cache.Write()
	return nil
}

func (k *Keeper) haltOnViolation(opName, invariant, diag string, cache *statestore.Cache) error {
	cache.Discard()
	setBool(k.base, PausedKey, true)
	k.metrics.InvariantBreaks.WithLabelValues(invariant).Inc()
	k.logger.Error("invariant violated, trading paused pending investigation",
		"op", opName, "invariant", invariant, "diagnostic", diag)
	k.emit(types.NewEvent(types.EventTypeInvariantBroken,
		"op", opName, "invariant", invariant, "diagnostic", diag))
	return types.ErrInvariantViolation.Wrapf("%s: %s", invariant, diag)
}

func requireNotPaused(kv statestore.KV) error {
	if getBool(kv, PausedKey) {
		return types.ErrTradingPaused.Wrap("ledger mutations are suspended")
	}
	return nil
}

// Mint credits amount of asset to the target user and grows TotalMinted by
// the same amount. Admin only.
func (k *Keeper) Mint(op OpContext, to string, asset types.Asset, amount math.Int) error {
	cache, err := k.beginOp(op)
	if err != nil {
		return err
	}
	if err := requireAdmin(cache, op.Caller); err != nil {
		return err
	}
	if to == "" {
		return types.ErrInvalidIdentity.Wrap("mint target cannot be empty")
	}
	if err := asset.Validate(); err != nil {
		return err
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrapf("mint amount must be positive, got %s", amount)
	}

	before := takeSnapshot(k.base)
	if err := creditBalance(cache, to, asset, amount); err != nil {
		return err
	}
	minted, err := SafeAdd(getInt(cache, TotalMintedKey), amount)
	if err != nil {
		return err
	}
	setInt(cache, TotalMintedKey, minted)

	if err := k.finishOp("mint", before, cache, checkConservation, checkBalances); err != nil {
		return err
	}

	k.metrics.MintedTotal.Add(gaugeValue(amount))
	k.refreshGauges()
	k.emit(types.NewEvent(types.EventTypeMint,
		"to", to, "asset", asset.ID(), "amount", amount.String()))
	k.logger.Info("minted", "to", to, "asset", asset.ID(), "amount", amount.String())
	return nil
}

// Transfer converts amount of fromAsset into toAsset within the acting
// user's own account at a 1:1 rate minus the conversion fee. The fee is
// withheld from circulation into the global fee accumulator. Returns the
// credited amount.
func (k *Keeper) Transfer(op OpContext, user string, fromAsset, toAsset types.Asset, amount math.Int) (math.Int, error) {
	zero := math.ZeroInt()
	cache, err := k.beginOp(op)
	if err != nil {
		return zero, err
	}
	if err := requireIdentity(op.Caller, user); err != nil {
		return zero, err
	}
	if err := requireNotPaused(cache); err != nil {
		return zero, err
	}
	if err := fromAsset.Validate(); err != nil {
		return zero, err
	}
	if err := toAsset.Validate(); err != nil {
		return zero, err
	}
	if fromAsset.Equal(toAsset) {
		return zero, types.ErrInvalidAsset.Wrap("conversion requires two distinct assets")
	}
	if amount.IsNil() || !amount.IsPositive() {
		return zero, types.ErrInvalidAmount.Wrapf("conversion amount must be positive, got %s", amount)
	}

	params := getParams(cache)
	fee := ComputeFee(amount, params.ConversionFeeBps)
	credited, err := SafeSub(amount, fee)
	if err != nil {
		return zero, err
	}

	before := takeSnapshot(k.base)
	if err := debitBalance(cache, user, fromAsset, amount); err != nil {
		return zero, err
	}
	if err := creditBalance(cache, user, toAsset, credited); err != nil {
		return zero, err
	}
	if err := accrueFee(cache, fee); err != nil {
		return zero, err
	}

	if err := k.finishOp("transfer", before, cache, checkConservation, checkBalances); err != nil {
		return zero, err
	}

	k.metrics.ConversionsTotal.Inc()
	k.refreshGauges()
	k.emit(types.NewEvent(types.EventTypeConversion,
		"user", user, "from", fromAsset.ID(), "to", toAsset.ID(),
		"amount", amount.String(), "credited", credited.String(), "fee", fee.String()))
	k.recordHistory(TradeRecord{
		User: user, Kind: "conversion",
		FromAsset: fromAsset.ID(), ToAsset: toAsset.ID(),
		AmountIn: amount, AmountOut: credited, Fee: fee,
		ExecutedAt: op.Timestamp,
	})
	return credited, nil
}

// Swap trades amount of fromAsset for toAsset through the constant-product
// pool. The swap fee is withheld from the priced curve but stays in the
// input reserve as LP revenue. Returns the output amount, which may be
// zero for dust inputs.
//
// Every rejected swap, regardless of which validation failed, bumps the
// failed-order counter on the committed state even though no balance
// changed.
func (k *Keeper) Swap(op OpContext, user string, fromAsset, toAsset types.Asset, amount math.Int) (math.Int, error) {
	out, err := k.swap(op, user, fromAsset, toAsset, amount)
	if err != nil && !types.ErrInvariantViolation.Is(err) && !types.ErrClockRegression.Is(err) {
		recordFailure(k.base)
		k.metrics.FailedOrdersTotal.Inc()
		k.emit(types.NewEvent(types.EventTypeSwapFailed,
			"user", user, "from", fromAsset.ID(), "to", toAsset.ID(),
			"amount", amount.String(), "reason", err.Error()))
	}
	return out, err
}

func (k *Keeper) swap(op OpContext, user string, fromAsset, toAsset types.Asset, amount math.Int) (math.Int, error) {
	zero := math.ZeroInt()
	cache, err := k.beginOp(op)
	if err != nil {
		return zero, err
	}
	if err := requireIdentity(op.Caller, user); err != nil {
		return zero, err
	}

	before := takeSnapshot(k.base)
	outcome, err := k.applySwap(cache, user, fromAsset, toAsset, amount)
	if err != nil {
		return zero, err
	}
	if err := k.finishOp("swap", before, cache,
		checkConservation, checkPool, checkProduct, checkBalances); err != nil {
		return zero, err
	}

	k.publishSwap(user, fromAsset, toAsset, amount, outcome, op.Timestamp)
	k.logger.Info("swap committed",
		"user", user, "pair", fmt.Sprintf("%s/%s", fromAsset, toAsset),
		"in", amount.String(), "out", outcome.Output.String(), "fee", outcome.Fee.String())
	return outcome.Output, nil
}

// applySwap validates one swap order and applies it to the given cache.
// It never commits; callers snapshot the base beforehand and run finishOp.
// A constant-product break halts through haltOnViolation and surfaces as
// ErrInvariantViolation.
func (k *Keeper) applySwap(cache *statestore.Cache, user string, fromAsset, toAsset types.Asset, amount math.Int) (swapOutcome, error) {
	if err := requireNotPaused(cache); err != nil {
		return swapOutcome{}, err
	}
	if err := fromAsset.Validate(); err != nil {
		return swapOutcome{}, err
	}
	if err := toAsset.Validate(); err != nil {
		return swapOutcome{}, err
	}
	if fromAsset.Equal(toAsset) {
		return swapOutcome{}, types.ErrSameAssetSwap.Wrapf("asset %s on both sides", fromAsset)
	}
	if amount.IsNil() || !amount.IsPositive() {
		return swapOutcome{}, types.ErrInvalidAmount.Wrapf("swap amount must be positive, got %s", amount)
	}

	params := getParams(cache)
	inputIsA, err := poolSideOf(params, fromAsset, toAsset)
	if err != nil {
		return swapOutcome{}, err
	}
	if balance := getInt(cache, BalanceKey(user, fromAsset)); balance.LT(amount) {
		return swapOutcome{}, types.ErrInsufficientBalance.Wrapf("balance %s %s, need %s", balance, fromAsset, amount)
	}

	beforePool := getPool(cache)
	outcome, err := computeSwap(beforePool, inputIsA, amount, params.SwapFeeBps)
	if err != nil {
		return swapOutcome{}, err
	}

	if err := debitBalance(cache, user, fromAsset, amount); err != nil {
		return swapOutcome{}, err
	}
	if err := creditBalance(cache, user, toAsset, outcome.Output); err != nil {
		return swapOutcome{}, err
	}
	setPool(cache, outcome.Pool)
	setCurveWatermark(cache, outcome.PricedK)
	recordTrade(cache, user)

	if diag, broken := CheckSwapProduct(beforePool, outcome.PricedK); broken {
		return swapOutcome{}, k.haltOnViolation("swap", "constant-product", diag, cache)
	}
	return outcome, nil
}

// publishSwap pushes the telemetry for one committed swap order.
func (k *Keeper) publishSwap(user string, fromAsset, toAsset types.Asset, amount math.Int, outcome swapOutcome, executedAt uint64) {
	k.metrics.SwapsTotal.Inc()
	k.metrics.SwapVolume.WithLabelValues(fromAsset.ID()).Add(gaugeValue(amount))
	k.metrics.SwapFeesTotal.Add(gaugeValue(outcome.Fee))
	k.refreshGauges()
	k.emit(types.NewEvent(types.EventTypeSwap,
		"user", user, "from", fromAsset.ID(), "to", toAsset.ID(),
		"amount_in", amount.String(), "amount_out", outcome.Output.String(),
		"fee", outcome.Fee.String()))
	k.recordHistory(TradeRecord{
		User: user, Kind: "swap",
		FromAsset: fromAsset.ID(), ToAsset: toAsset.ID(),
		AmountIn: amount, AmountOut: outcome.Output, Fee: outcome.Fee,
		ExecutedAt: executedAt,
	})
}

// AddLiquidity deposits both pool assets from the user's balances and
// mints LP tokens. Returns the minted share count.
func (k *Keeper) AddLiquidity(op OpContext, user string, amountA, amountB math.Int) (math.Int, error) {
	zero := math.ZeroInt()
	cache, err := k.beginOp(op)
	if err != nil {
		return zero, err
	}
	if err := requireIdentity(op.Caller, user); err != nil {
		return zero, err
	}
	if err := requireNotPaused(cache); err != nil {
		return zero, err
	}
	if amountA.IsNil() || amountB.IsNil() {
		return zero, types.ErrInvalidAmount.Wrap("deposit amounts cannot be nil")
	}

	params := getParams(cache)
	before := takeSnapshot(k.base)
	minted, err := applyAddLiquidity(cache, params, user, amountA, amountB)
	if err != nil {
		return zero, err
	}

	if err := k.finishOp("add_liquidity", before, cache,
		checkConservation, checkPool, checkBalances, checkLPSupply); err != nil {
		return zero, err
	}

	k.refreshGauges()
	k.emit(types.NewEvent(types.EventTypeLiquidityAdded,
		"user", user, "amount_a", amountA.String(), "amount_b", amountB.String(),
		"lp_minted", minted.String()))
	return minted, nil
}

// RemoveLiquidity burns lpAmount of the user's LP tokens and returns the
// proportional share of both reserves to the user's balances.
func (k *Keeper) RemoveLiquidity(op OpContext, user string, lpAmount math.Int) (amountA, amountB math.Int, err error) {
	zero := math.ZeroInt()
	cache, err := k.beginOp(op)
	if err != nil {
		return zero, zero, err
	}
	if err := requireIdentity(op.Caller, user); err != nil {
		return zero, zero, err
	}
	if err := requireNotPaused(cache); err != nil {
		return zero, zero, err
	}
	if lpAmount.IsNil() {
		return zero, zero, types.ErrInvalidAmount.Wrap("lp amount cannot be nil")
	}

	params := getParams(cache)
	before := takeSnapshot(k.base)
	amountA, amountB, err = applyRemoveLiquidity(cache, params, user, lpAmount)
	if err != nil {
		return zero, zero, err
	}

	if err := k.finishOp("remove_liquidity", before, cache,
		checkConservation, checkPool, checkBalances, checkLPSupply); err != nil {
		return zero, zero, err
	}

	k.refreshGauges()
	k.emit(types.NewEvent(types.EventTypeLiquidityRemoved,
		"user", user, "lp_burned", lpAmount.String(),
		"amount_a", amountA.String(), "amount_b", amountB.String()))
	return amountA, amountB, nil
}

// SetAdmin hands the admin role to a new identity. Current admin only.
func (k *Keeper) SetAdmin(op OpContext, newAdmin string) error {
	cache, err := k.beginOp(op)
	if err != nil {
		return err
	}
	if err := requireAdmin(cache, op.Caller); err != nil {
		return err
	}
	if newAdmin == "" {
		return types.ErrInvalidIdentity.Wrap("new admin cannot be empty")
	}

	before := takeSnapshot(k.base)
	setString(cache, AdminKey, newAdmin)
	if err := k.finishOp("set_admin", before, cache); err != nil {
		return err
	}

	k.emit(types.NewEvent(types.EventTypeAdminChanged, "admin", newAdmin))
	k.logger.Info("admin changed", "admin", newAdmin)
	return nil
}

// PauseTrading suspends swaps, conversions and liquidity operations.
// Admin only; minting and admin operations stay available.
func (k *Keeper) PauseTrading(op OpContext) error {
	cache, err := k.beginOp(op)
	if err != nil {
		return err
	}
	if err := requireAdmin(cache, op.Caller); err != nil {
		return err
	}

	before := takeSnapshot(k.base)
	setBool(cache, PausedKey, true)
	if err := k.finishOp("pause_trading", before, cache); err != nil {
		return err
	}

	k.emit(types.NewEvent(types.EventTypeTradingPaused, "at", fmt.Sprintf("%d", op.Timestamp)))
	k.logger.Info("trading paused", "at", op.Timestamp)
	return nil
}

// ResumeTrading lifts a pause. Admin only.
func (k *Keeper) ResumeTrading(op OpContext) error {
	cache, err := k.beginOp(op)
	if err != nil {
		return err
	}
	if err := requireAdmin(cache, op.Caller); err != nil {
		return err
	}

	before := takeSnapshot(k.base)
	setBool(cache, PausedKey, false)
	if err := k.finishOp("resume_trading", before, cache); err != nil {
		return err
	}

	k.emit(types.NewEvent(types.EventTypeTradingResumed, "at", fmt.Sprintf("%d", op.Timestamp)))
	k.logger.Info("trading resumed", "at", op.Timestamp)
	return nil
}

// SetSwapFeeBps updates the pool swap fee rate. Admin only; rates above
// the hard ceiling are rejected.
func (k *Keeper) SetSwapFeeBps(op OpContext, bps uint32) error {
	return k.setFee(op, "swap_fee_bps", bps, func(p *types.Params) { p.SwapFeeBps = bps })
}

// SetConversionFeeBps updates the in-account conversion fee rate. Admin
// only; rates above the hard ceiling are rejected.
func (k *Keeper) SetConversionFeeBps(op OpContext, bps uint32) error {
	return k.setFee(op, "conversion_fee_bps", bps, func(p *types.Params) { p.ConversionFeeBps = bps })
}

func (k *Keeper) setFee(op OpContext, field string, bps uint32, apply func(*types.Params)) error {
	cache, err := k.beginOp(op)
	if err != nil {
		return err
	}
	if err := requireAdmin(cache, op.Caller); err != nil {
		return err
	}
	if err := validateFeeBps(bps); err != nil {
		return err
	}

	before := takeSnapshot(k.base)
	params := getParams(cache)
	apply(&params)
	setParams(cache, params)
	if err := k.finishOp("set_fee", before, cache); err != nil {
		return err
	}

	k.emit(types.NewEvent(types.EventTypeFeeUpdated, field, fmt.Sprintf("%d", bps)))
	k.logger.Info("fee updated", "field", field, "bps", bps)
	return nil
}

// Migrate bumps the schema version. Admin only; version regressions fail
// with ErrInvalidMigration.
func (k *Keeper) Migrate(op OpContext, newVersion uint64) error {
	cache, err := k.beginOp(op)
	if err != nil {
		return err
	}
	if err := requireAdmin(cache, op.Caller); err != nil {
		return err
	}

	before := takeSnapshot(k.base)
	if err := observeVersion(cache, newVersion); err != nil {
		return err
	}
	if err := k.finishOp("migrate", before, cache); err != nil {
		return err
	}

	k.emit(types.NewEvent(types.EventTypeMigrated, "version", fmt.Sprintf("%d", newVersion)))
	k.logger.Info("schema migrated", "version", newVersion)
	return nil
}

func (k *Keeper) recordHistory(record TradeRecord) {
	if k.history == nil {
		return
	}
	if err := k.history.Record(record); err != nil {
		k.logger.Error("trade history write failed", "user", record.User, "err", err)
	}
}
