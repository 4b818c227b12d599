package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"accounting/internal/core"
)

func TestPrometheusCollectorRecords(t *testing.T) {
	pc, err := NewPrometheusCollector("accounting")
	if err != nil {
		t.Fatalf("NewPrometheusCollector: %v", err)
	}

	pc.RecordOperation("create", true)
	pc.RecordOperation("create", true)
	pc.RecordOperation("delete", false)
	pc.RecordRateLimited()
	pc.RecordTotals(core.Totals{
		TotalIncome:   core.Money{Cents: 155000},
		TotalExpenses: core.Money{Cents: 95000},
		NetProfit:     core.Money{Cents: 60000},
		Count:         4,
	})
	pc.RecordRequest(http.MethodGet, "/", http.StatusOK, 15*time.Millisecond)

	if got := testutil.ToFloat64(pc.operations.WithLabelValues("create", "true")); got != 2 {
		t.Errorf("create operations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(pc.operations.WithLabelValues("delete", "false")); got != 1 {
		t.Errorf("delete no-op operations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(pc.rateLimited); got != 1 {
		t.Errorf("rate limited = %v, want 1", got)
	}
	if got := testutil.ToFloat64(pc.netProfit); got != 600 {
		t.Errorf("net profit gauge = %v, want 600", got)
	}
	if got := testutil.ToFloat64(pc.transactions); got != 4 {
		t.Errorf("transactions gauge = %v, want 4", got)
	}
	if got := testutil.ToFloat64(pc.requests.WithLabelValues("GET", "/", "200")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
}

func TestPrometheusHandlerExposesMetrics(t *testing.T) {
	pc, err := NewPrometheusCollector("accounting")
	if err != nil {
		t.Fatalf("NewPrometheusCollector: %v", err)
	}
	pc.RecordOperation("update", true)

	rr := httptest.NewRecorder()
	pc.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		`accounting_operations_total{applied="true",operation="update"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestNoOpCollectorSatisfiesInterface(t *testing.T) {
	var c Collector = NoOpCollector{}
	c.RecordOperation("create", true)
	c.RecordTotals(core.Totals{})
	c.RecordRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	c.RecordRateLimited()
}
