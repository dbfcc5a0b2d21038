package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCronJobMetricsRecords(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewCronJobMetrics(reg)

	m.IncSuccess("stale-cart-cleanup")
	m.IncSuccess("stale-cart-cleanup")
	m.IncFailure("order-retention")
	m.ObserveDuration("stale-cart-cleanup", 250*time.Millisecond)

	if got := testutil.ToFloat64(m.success.WithLabelValues("stale-cart-cleanup")); got != 2 {
		t.Fatalf("unexpected success count: %f", got)
	}
	if got := testutil.ToFloat64(m.failure.WithLabelValues("order-retention")); got != 1 {
		t.Fatalf("unexpected failure count: %f", got)
	}
	if got := testutil.CollectAndCount(reg, "lunakids_cron_job_duration_seconds"); got != 1 {
		t.Fatalf("expected the duration histogram under the service prefix, got %d series", got)
	}
}

func TestCronJobMetricsNormalizesLabels(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewCronJobMetrics(reg)

	m.IncSuccess("Stale Cart Sweep")
	if got := testutil.ToFloat64(m.success.WithLabelValues("stale_cart_sweep")); got != 1 {
		t.Fatalf("unexpected success count: %f", got)
	}
	m.IncFailure("  ")
	if got := testutil.ToFloat64(m.failure.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("unexpected failure count: %f", got)
	}
}

func TestCronJobMetricsNilSafe(t *testing.T) {
	t.Parallel()

	var m *CronJobMetrics
	m.IncSuccess("anything")
	m.IncFailure("anything")
	m.ObserveDuration("anything", time.Second)

	empty := NewCronJobMetrics(nil)
	empty.IncSuccess("unnamed")
}
