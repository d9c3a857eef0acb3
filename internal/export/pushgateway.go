// Package export publishes captured account records to external sinks: a
// Prometheus Pushgateway for the latest daily reading and an optional Google
// Sheets usage log.
package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/fplstat/fplstat/internal/domain"
)

// UsageMetrics holds the gauges published for the latest daily-usage entry.
type UsageMetrics struct {
	registry       *prometheus.Registry
	usageKwh       prometheus.Gauge
	usageCost      prometheus.Gauge
	maxTemperature prometheus.Gauge
}

// NewUsageMetrics creates the gauges on a private registry so pushes carry
// only these three series.
func NewUsageMetrics() *UsageMetrics {
	m := &UsageMetrics{
		registry: prometheus.NewRegistry(),
		usageKwh: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fpl_daily_usage_kwh",
			Help: "Daily usage in kWh",
		}),
		usageCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fpl_daily_usage_cost",
			Help: "Daily usage cost in local currency",
		}),
		maxTemperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fpl_daily_max_temperature",
			Help: "Daily maximum temperature",
		}),
	}
	m.registry.MustRegister(m.usageKwh, m.usageCost, m.maxTemperature)
	return m
}

// Observe sets the gauges from one daily-usage entry. Absent readings count
// as zero, mirroring what the dashboard reports for them.
func (m *UsageMetrics) Observe(entry domain.DailyUsageEntry) {
	m.usageKwh.Set(valueOrZero(entry.Usage))
	m.usageCost.Set(valueOrZero(entry.Cost))
	m.maxTemperature.Set(valueOrZero(entry.MaxTemperature))
}

func valueOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// PushgatewayExporter pushes the latest daily-usage gauges to a Prometheus
// Pushgateway, grouped by account. When disabled it still updates the
// gauges, which keeps the values inspectable in tests and logs.
type PushgatewayExporter struct {
	metrics *UsageMetrics
	address string
	job     string
	enabled bool
}

// NewPushgatewayExporter creates an exporter targeting the given gateway
// address.
func NewPushgatewayExporter(address string, enabled bool) *PushgatewayExporter {
	return &PushgatewayExporter{
		metrics: NewUsageMetrics(),
		address: address,
		job:     "fpl_data_pusher",
		enabled: enabled,
	}
}

// Export implements the worker export hook for one captured record.
func (e *PushgatewayExporter) Export(ctx context.Context, accountNumber string, record domain.AccountRecord) error {
	entry, ok := record.LatestDailyUsage()
	if !ok {
		return nil
	}
	e.metrics.Observe(entry)

	if !e.enabled {
		slog.Info("pushgateway disabled, metrics not pushed", "account", accountNumber)
		return nil
	}

	err := push.New(e.address, e.job).
		Gatherer(e.metrics.registry).
		Grouping("account", accountNumber).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("pushing metrics for %s: %w", accountNumber, err)
	}
	return nil
}
