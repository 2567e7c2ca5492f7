package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/fundledger/internal/domain"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	DepositsRecorded    prometheus.Counter
	WithdrawalsRecorded prometheus.Counter
	NAVUpdatesRecorded  prometheus.Counter
	TransactionsUndone  prometheus.Counter

	// Fee metrics
	FeePreviews      prometheus.Counter
	FeeApplications  prometheus.Counter
	FeeAmountCharged prometheus.Histogram
	TokenMismatches  prometheus.Counter

	// Store metrics
	StoreOperationDuration *prometheus.HistogramVec

	// Fund state gauges, refreshed after every committed mutation
	FundTotalUnits prometheus.Gauge
	FundLastNAV    prometheus.Gauge
	FundInvestors  prometheus.Gauge
	FundTranches   prometheus.Gauge
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		DepositsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundledger_deposits_total",
			Help: "Total number of deposits recorded",
		}),
		WithdrawalsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundledger_withdrawals_total",
			Help: "Total number of withdrawals recorded",
		}),
		NAVUpdatesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundledger_nav_updates_total",
			Help: "Total number of NAV marks recorded",
		}),
		TransactionsUndone: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundledger_transactions_undone_total",
			Help: "Total number of transactions undone",
		}),
		FeePreviews: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundledger_fee_previews_total",
			Help: "Total number of fee previews computed",
		}),
		FeeApplications: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundledger_fee_applications_total",
			Help: "Total number of confirmed fee applications",
		}),
		FeeAmountCharged: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fundledger_fee_amount_charged",
			Help:    "Performance fee amounts charged per application",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000},
		}),
		TokenMismatches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundledger_fee_token_mismatches_total",
			Help: "Total number of fee applications rejected for a stale confirm token",
		}),
		StoreOperationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fundledger_store_operation_duration_seconds",
				Help:    "Ledger store operation duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		FundTotalUnits: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "fundledger_fund_total_units",
			Help: "Total units outstanding across all tranches",
		}),
		FundLastNAV: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "fundledger_fund_last_nav",
			Help: "Most recent total NAV snapshot",
		}),
		FundInvestors: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "fundledger_fund_investors",
			Help: "Number of registered investors, operator included",
		}),
		FundTranches: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "fundledger_fund_tranches",
			Help: "Number of live tranches",
		}),
	}
}

// RefreshFundState updates the fund gauges from a committed ledger.
func (m *Metrics) RefreshFundState(l *domain.Ledger) {
	units, _ := l.TotalUnits().Float64()
	m.FundTotalUnits.Set(units)

	if nav, ok := l.LatestNAV(); ok {
		v, _ := nav.TotalNAV.Float64()
		m.FundLastNAV.Set(v)
	}

	m.FundInvestors.Set(float64(len(l.Investors)))
	m.FundTranches.Set(float64(len(l.Tranches)))
}
