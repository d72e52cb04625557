package keeper

import (
	"math/big"
	"sync"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LedgerMetrics exports operational counters to Prometheus. These mirror
// the in-state counters for operators; the state counters remain the
// source of truth because they participate in the monotonicity invariant.
type LedgerMetrics struct {
	SwapsTotal        prometheus.Counter
	SwapVolume        *prometheus.CounterVec
	SwapFeesTotal     prometheus.Counter
	ConversionsTotal  prometheus.Counter
	MintedTotal       prometheus.Counter
	FailedOrdersTotal prometheus.Counter
	PoolReserves      *prometheus.GaugeVec
	LPTokenSupply     prometheus.Gauge
	FeeAccumulator    prometheus.Gauge
	InvariantBreaks   *prometheus.CounterVec
}

var (
	ledgerMetricsOnce sync.Once
	ledgerMetrics     *LedgerMetrics
)

// NewLedgerMetrics creates and registers the ledger metrics (singleton, so
// multiple keepers in one process share collectors).
func NewLedgerMetrics() *LedgerMetrics {
	ledgerMetricsOnce.Do(func() {
		ledgerMetrics = &LedgerMetrics{
			SwapsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "swaptrade",
				Subsystem: "ledger",
				Name:      "swaps_total",
				Help:      "Total number of committed swaps",
			}),
			SwapVolume: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "swaptrade",
				Subsystem: "ledger",
				Name:      "swap_volume_total",
				Help:      "Total swap input volume in base units",
			}, []string{"asset"}),
			SwapFeesTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "swaptrade",
				Subsystem: "ledger",
				Name:      "swap_fees_total",
				Help:      "Total swap fees retained by the pool in base units",
			}),
			ConversionsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "swaptrade",
				Subsystem: "ledger",
				Name:      "conversions_total",
				Help:      "Total number of committed in-account conversions",
			}),
			MintedTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "swaptrade",
				Subsystem: "ledger",
				Name:      "minted_total",
				Help:      "Total minted amount in base units",
			}),
			FailedOrdersTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "swaptrade",
				Subsystem: "ledger",
				Name:      "failed_orders_total",
				Help:      "Total number of rejected swap orders",
			}),
			PoolReserves: promauto.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: "swaptrade",
				Subsystem: "ledger",
				Name:      "pool_reserves",
				Help:      "Current pool reserves in base units",
			}, []string{"asset"}),
			LPTokenSupply: promauto.NewGauge(prometheus.GaugeOpts{
				Namespace: "swaptrade",
				Subsystem: "ledger",
				Name:      "lp_token_supply",
				Help:      "Total LP tokens in circulation",
			}),
			FeeAccumulator: promauto.NewGauge(prometheus.GaugeOpts{
				Namespace: "swaptrade",
				Subsystem: "ledger",
				Name:      "fee_accumulator",
				Help:      "Fees withheld from circulation in base units",
			}),
			InvariantBreaks: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "swaptrade",
				Subsystem: "ledger",
				Name:      "invariant_breaks_total",
				Help:      "Invariant check failures by invariant name",
			}, []string{"invariant"}),
		}
	})
	return ledgerMetrics
}

func gaugeValue(x math.Int) float64 {
	value, _ := new(big.Float).SetInt(x.BigInt()).Float64()
	return value
}

// refreshGauges republishes the pool gauges after a committed mutation.
func (k *Keeper) refreshGauges() {
	params := getParams(k.base)
	pool := getPool(k.base)
	assetA, assetB := params.PoolPair()

	k.metrics.PoolReserves.WithLabelValues(assetA.ID()).Set(gaugeValue(pool.ReserveA))
	k.metrics.PoolReserves.WithLabelValues(assetB.ID()).Set(gaugeValue(pool.ReserveB))
	k.metrics.LPTokenSupply.Set(gaugeValue(getInt(k.base, LPTotalSupplyKey)))
	k.metrics.FeeAccumulator.Set(gaugeValue(getInt(k.base, FeeAccumulatorKey)))
}
