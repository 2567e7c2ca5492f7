package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promdto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	// Replace global default registry to allow test inspection.
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	m := New()

	if m.DepositsRecorded == nil || m.FeeApplications == nil || m.FundTotalUnits == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestRefreshFundState(t *testing.T) {
	registry := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	m := New()

	l := domain.NewLedger()
	l.Tranches = append(l.Tranches, &domain.Tranche{
		TrancheID:  "tr-1",
		InvestorID: 1,
		Units:      decimal.NewFromInt(100000),
	})
	l.AppendNAV(domain.NAVSnapshot{
		Source:   domain.TransactionTypeDeposit,
		TotalNAV: decimal.NewFromInt(100000000),
	})

	m.RefreshFundState(l)

	if got := testGaugeValue(t, m.FundTotalUnits); got != 100000 {
		t.Fatalf("expected total units gauge 100000, got %f", got)
	}
	if got := testGaugeValue(t, m.FundLastNAV); got != 100000000 {
		t.Fatalf("expected last NAV gauge 100000000, got %f", got)
	}
	if got := testGaugeValue(t, m.FundTranches); got != 1 {
		t.Fatalf("expected 1 tranche, got %f", got)
	}
}

func testGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()

	ch := make(chan prometheus.Metric, 1)
	g.Collect(ch)

	var pb promdto.Metric
	m := <-ch
	if err := m.Write(&pb); err != nil {
		t.Fatalf("failed to read gauge: %v", err)
	}

	return pb.GetGauge().GetValue()
}
