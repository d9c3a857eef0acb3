package export

import (
	"context"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"

	"github.com/fplstat/fplstat/internal/domain"
)

func gaugeValue(t *testing.T, families []*dto.MetricFamily, name string) float64 {
	t.Helper()
	for _, mf := range families {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestUsageMetricsObserve(t *testing.T) {
	usage := 31.5
	cost := 4.2
	temp := 85.0

	m := NewUsageMetrics()
	m.Observe(domain.DailyUsageEntry{Usage: &usage, Cost: &cost, MaxTemperature: &temp})

	families, err := m.registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if got := gaugeValue(t, families, "fpl_daily_usage_kwh"); got != 31.5 {
		t.Errorf("fpl_daily_usage_kwh = %v, want 31.5", got)
	}
	if got := gaugeValue(t, families, "fpl_daily_usage_cost"); got != 4.2 {
		t.Errorf("fpl_daily_usage_cost = %v, want 4.2", got)
	}
	if got := gaugeValue(t, families, "fpl_daily_max_temperature"); got != 85 {
		t.Errorf("fpl_daily_max_temperature = %v, want 85", got)
	}
}

func TestUsageMetricsObserveAbsentReadings(t *testing.T) {
	m := NewUsageMetrics()
	m.Observe(domain.DailyUsageEntry{})

	families, err := m.registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if got := gaugeValue(t, families, "fpl_daily_usage_kwh"); got != 0 {
		t.Errorf("fpl_daily_usage_kwh = %v, want 0 for absent reading", got)
	}
}

func TestPushgatewayExporterDisabledStillObserves(t *testing.T) {
	usage := 12.0
	e := NewPushgatewayExporter("localhost:9091", false)

	record := domain.AccountRecord{
		DailyUsage: []domain.DailyUsageEntry{
			{Usage: &usage, ReadTime: time.Date(2024, 1, 24, 0, 0, 0, 0, time.UTC)},
		},
	}
	if err := e.Export(context.Background(), "9876", record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	families, err := e.metrics.registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if got := gaugeValue(t, families, "fpl_daily_usage_kwh"); got != 12 {
		t.Errorf("fpl_daily_usage_kwh = %v, want 12", got)
	}
}

func TestPushgatewayExporterNoUsageIsNoop(t *testing.T) {
	e := NewPushgatewayExporter("localhost:9091", true)

	// No daily usage means nothing to push, even with pushing enabled.
	if err := e.Export(context.Background(), "9876", domain.AccountRecord{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuildUsageRow(t *testing.T) {
	usage := 31.5
	entry := domain.DailyUsageEntry{
		Usage:           &usage,
		NetDeliveredKwh: 28,
		ReadTime:        time.Date(2024, 1, 24, 0, 0, 0, 0, time.UTC),
	}

	row := buildUsageRow("9876", entry)

	if row[0] != "24.01.2024" {
		t.Errorf("date cell = %v", row[0])
	}
	if row[1] != "9876" {
		t.Errorf("account cell = %v", row[1])
	}
	if row[2] != 31.5 {
		t.Errorf("usage cell = %v", row[2])
	}
	if row[3] != nil {
		t.Errorf("cost cell = %v, want blank for absent reading", row[3])
	}
	if row[5] != 28.0 {
		t.Errorf("net delivered cell = %v", row[5])
	}
}
