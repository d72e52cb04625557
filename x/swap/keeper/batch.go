package keeper

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/swaptrade/swaptrade/x/swap/types"
)

// Batch execution: a caller submits several swap orders in one call,
// either all-or-nothing (one write cache, one commit) or best-effort
// (each order commits or fails on its own).

// BatchOrder is one swap order inside a batch.
type BatchOrder struct {
	FromAsset types.Asset
	ToAsset   types.Asset
	Amount    math.Int
}

// BatchOrderResult is the outcome of one order in a best-effort batch.
// Output is zero whenever Err is set.
type BatchOrderResult struct {
	Output math.Int
	Err    error
}

func validateBatch(orders []BatchOrder) error {
	if len(orders) == 0 {
		return types.ErrBatchInvalid.Wrap("batch contains no orders")
	}
	if len(orders) > types.MaxBatchSize {
		return types.ErrBatchInvalid.Wrapf("batch holds %d orders, limit %d", len(orders), types.MaxBatchSize)
	}
	return nil
}

// ExecuteBatch executes the orders atomically. It is the default batch
// mode; callers wanting partial progress use ExecuteBatchBestEffort.
func (k *Keeper) ExecuteBatch(op OpContext, user string, orders []BatchOrder) ([]math.Int, error) {
	return k.ExecuteBatchAtomic(op, user, orders)
}

// ExecuteBatchAtomic executes all orders against one write cache and
// commits only if every order succeeds. An aborted batch counts a single
// failed order against the committed metrics, for the order that broke it.
func (k *Keeper) ExecuteBatchAtomic(op OpContext, user string, orders []BatchOrder) ([]math.Int, error) {
	outputs, outcomes, err := k.executeBatchAtomic(op, user, orders)
	if err != nil && !types.ErrInvariantViolation.Is(err) && !types.ErrClockRegression.Is(err) {
		recordFailure(k.base)
		k.metrics.FailedOrdersTotal.Inc()
		k.emit(types.NewEvent(types.EventTypeSwapFailed,
			"user", user, "batch_size", fmt.Sprintf("%d", len(orders)), "reason", err.Error()))
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	for i, order := range orders {
		k.publishSwap(user, order.FromAsset, order.ToAsset, order.Amount, outcomes[i], op.Timestamp)
	}
	k.emit(types.NewEvent(types.EventTypeBatchExecuted,
		"user", user, "mode", "atomic", "orders", fmt.Sprintf("%d", len(orders))))
	k.logger.Info("batch committed", "user", user, "mode", "atomic", "orders", len(orders))
	return outputs, nil
}

func (k *Keeper) executeBatchAtomic(op OpContext, user string, orders []BatchOrder) ([]math.Int, []swapOutcome, error) {
	if err := validateBatch(orders); err != nil {
		return nil, nil, err
	}
	cache, err := k.beginOp(op)
	if err != nil {
		return nil, nil, err
	}
	if err := requireIdentity(op.Caller, user); err != nil {
		return nil, nil, err
	}

	before := takeSnapshot(k.base)
	outputs := make([]math.Int, 0, len(orders))
	outcomes := make([]swapOutcome, 0, len(orders))
	for _, order := range orders {
		outcome, err := k.applySwap(cache, user, order.FromAsset, order.ToAsset, order.Amount)
		if err != nil {
			return nil, nil, err
		}
		outputs = append(outputs, outcome.Output)
		outcomes = append(outcomes, outcome)
	}

	if err := k.finishOp("execute_batch", before, cache,
		checkConservation, checkPool, checkProduct, checkBalances); err != nil {
		return nil, nil, err
	}
	return outputs, outcomes, nil
}

// ExecuteBatchBestEffort runs every order as its own swap: each commits or
// fails independently and failed orders count individually. A clock
// regression or invariant halt still aborts the remainder of the batch.
func (k *Keeper) ExecuteBatchBestEffort(op OpContext, user string, orders []BatchOrder) ([]BatchOrderResult, error) {
	if err := validateBatch(orders); err != nil {
		return nil, err
	}

	results := make([]BatchOrderResult, 0, len(orders))
	for _, order := range orders {
		out, err := k.Swap(op, user, order.FromAsset, order.ToAsset, order.Amount)
		if types.ErrClockRegression.Is(err) || types.ErrInvariantViolation.Is(err) {
			return results, err
		}
		results = append(results, BatchOrderResult{Output: out, Err: err})
	}

	k.emit(types.NewEvent(types.EventTypeBatchExecuted,
		"user", user, "mode", "best_effort", "orders", fmt.Sprintf("%d", len(orders))))
	return results, nil
}
