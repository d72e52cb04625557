package keeper

import (
	"encoding/binary"
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"

	"github.com/swaptrade/swaptrade/internal/statestore"
	"github.com/swaptrade/swaptrade/x/swap/types"
)

// TradeRecord is handed to the history sink after a swap or conversion
// commits.
type TradeRecord struct {
	User       string
	Kind       string
	FromAsset  string
	ToAsset    string
	AmountIn   math.Int
	AmountOut  math.Int
	Fee        math.Int
	ExecutedAt uint64
}

// HistoryRecorder persists committed trades. Recording is best-effort: an
// error is logged and never fails the committed operation.
type HistoryRecorder interface {
	Record(record TradeRecord) error
}

// Keeper owns the only mutable handle to the ledger state. All mutation
// flows through the dispatcher methods in dispatcher.go; every other
// exported method is read-only.
type Keeper struct {
	base    statestore.KV
	logger  log.Logger
	emitter types.EventEmitter
	history HistoryRecorder
	metrics *LedgerMetrics
}

// Option customizes a Keeper at construction time.
type Option func(*Keeper)

// WithEmitter routes committed events to sink instead of discarding them.
func WithEmitter(sink types.EventEmitter) Option {
	return func(k *Keeper) { k.emitter = sink }
}

// WithHistory wires a trade history sink.
func WithHistory(h HistoryRecorder) Option {
	return func(k *Keeper) { k.history = h }
}

// NewKeeper creates a Keeper over the host-supplied database.
func NewKeeper(db dbm.DB, logger log.Logger, opts ...Option) *Keeper {
	k := &Keeper{
		base:    statestore.New(db),
		logger:  logger.With("module", types.ModuleName),
		emitter: types.NopEmitter{},
		metrics: NewLedgerMetrics(),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Logger returns the keeper's structured logger.
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

func (k *Keeper) emit(event types.Event) {
	k.emitter.Emit(event)
}

// getInt reads a math.Int value, defaulting to zero for absent keys.
func getInt(kv statestore.KV, key []byte) math.Int {
	bz := kv.Get(key)
	if bz == nil {
		return math.ZeroInt()
	}
	value := math.ZeroInt()
	if err := value.Unmarshal(bz); err != nil {
		panic(types.ErrInvalidState.Wrapf("corrupt integer at key %X: %v", key, err))
	}
	return value
}

func setInt(kv statestore.KV, key []byte, value math.Int) {
	bz, err := value.Marshal()
	if err != nil {
		panic(types.ErrInvalidState.Wrapf("marshal integer for key %X: %v", key, err))
	}
	kv.Set(key, bz)
}

func getUint64(kv statestore.KV, key []byte) uint64 {
	bz := kv.Get(key)
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

func setUint64(kv statestore.KV, key []byte, value uint64) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, value)
	kv.Set(key, bz)
}

func getBool(kv statestore.KV, key []byte) bool {
	bz := kv.Get(key)
	return len(bz) == 1 && bz[0] == 1
}

func setBool(kv statestore.KV, key []byte, value bool) {
	if value {
		kv.Set(key, []byte{1})
	} else {
		kv.Set(key, []byte{0})
	}
}

func getString(kv statestore.KV, key []byte) string {
	return string(kv.Get(key))
}

func setString(kv statestore.KV, key []byte, value string) {
	kv.Set(key, []byte(value))
}

// getParams reads the fee schedule, falling back to defaults when genesis
// has not been initialized.
func getParams(kv statestore.KV) types.Params {
	bz := kv.Get(ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}
	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		panic(types.ErrInvalidState.Wrapf("corrupt params: %v", err))
	}
	return params
}

func setParams(kv statestore.KV, params types.Params) {
	bz, err := json.Marshal(params)
	if err != nil {
		panic(types.ErrInvalidState.Wrapf("marshal params: %v", err))
	}
	kv.Set(ParamsKey, bz)
}

// GetParams returns the current fee schedule.
func (k *Keeper) GetParams() types.Params {
	return getParams(k.base)
}

// IsPaused reports whether trading operations are currently blocked.
func (k *Keeper) IsPaused() bool {
	return getBool(k.base, PausedKey)
}

// GetVersion returns the current schema version.
func (k *Keeper) GetVersion() uint64 {
	return getUint64(k.base, VersionKey)
}

// GetLastTimestamp returns the clock watermark of the last processed call.
func (k *Keeper) GetLastTimestamp() uint64 {
	return getUint64(k.base, LastTimestampKey)
}

// GetTotalMinted returns the cumulative minted amount.
func (k *Keeper) GetTotalMinted() math.Int {
	return getInt(k.base, TotalMintedKey)
}
