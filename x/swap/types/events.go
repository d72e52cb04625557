package types

// Event types emitted by the ledger core. Event delivery is a host
// collaborator concern; the core only hands events to the configured sink.
const (
	EventTypeMint             = "mint"
	EventTypeConversion       = "conversion"
	EventTypeSwap             = "swap"
	EventTypeSwapFailed       = "swap_failed"
	EventTypeLiquidityAdded   = "liquidity_added"
	EventTypeLiquidityRemoved = "liquidity_removed"
	EventTypeAdminChanged     = "admin_changed"
	EventTypeTradingPaused    = "trading_paused"
	EventTypeTradingResumed   = "trading_resumed"
	EventTypeFeeUpdated       = "fee_updated"
	EventTypeMigrated         = "migrated"
	EventTypeInvariantBroken  = "invariant_broken"
	EventTypeBatchExecuted    = "batch_executed"
)

// Event is a committed state transition notification.
type Event struct {
	Type       string
	Attributes map[string]string
}

// NewEvent builds an event from alternating key/value attribute pairs.
func NewEvent(eventType string, kv ...string) Event {
	attrs := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		attrs[kv[i]] = kv[i+1]
	}
	return Event{Type: eventType, Attributes: attrs}
}

// EventEmitter receives events after an operation commits. Implementations
// must not call back into the ledger.
type EventEmitter interface {
	Emit(event Event)
}

// NopEmitter discards all events.
type NopEmitter struct{}

func (NopEmitter) Emit(Event) {}
