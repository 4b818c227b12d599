package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"accounting/internal/core"
)

// PrometheusCollector implements Collector for Prometheus.
type PrometheusCollector struct {
	registry *prometheus.Registry

	operations  *prometheus.CounterVec
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	rateLimited prometheus.Counter

	income       prometheus.Gauge
	expenses     prometheus.Gauge
	netProfit    prometheus.Gauge
	transactions prometheus.Gauge
}

// NewPrometheusCollector creates a collector registered on its own registry,
// together with the Go runtime and process collectors.
func NewPrometheusCollector(namespace string) (*PrometheusCollector, error) {
	pc := &PrometheusCollector{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of transaction operations by kind and outcome",
			},
			[]string{"operation", "applied"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latencies in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by the rate limiter",
		}),
		income: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_income",
			Help:      "Current total income in major currency units",
		}),
		expenses: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_expenses",
			Help:      "Current total expenses in major currency units",
		}),
		netProfit: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "net_profit",
			Help:      "Current net profit in major currency units",
		}),
		transactions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transactions",
			Help:      "Current number of transactions",
		}),
	}

	toRegister := []prometheus.Collector{
		pc.operations,
		pc.requests,
		pc.latency,
		pc.rateLimited,
		pc.income,
		pc.expenses,
		pc.netProfit,
		pc.transactions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range toRegister {
		if err := pc.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return pc, nil
}

// Handler exposes the registry in the Prometheus text format.
func (pc *PrometheusCollector) Handler() http.Handler {
	return promhttp.HandlerFor(pc.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (pc *PrometheusCollector) Registry() *prometheus.Registry {
	return pc.registry
}

func (pc *PrometheusCollector) RecordOperation(op string, applied bool) {
	pc.operations.WithLabelValues(op, strconv.FormatBool(applied)).Inc()
}

func (pc *PrometheusCollector) RecordTotals(t core.Totals) {
	pc.income.Set(t.TotalIncome.Units())
	pc.expenses.Set(t.TotalExpenses.Units())
	pc.netProfit.Set(t.NetProfit.Units())
	pc.transactions.Set(float64(t.Count))
}

func (pc *PrometheusCollector) RecordRequest(method, route string, status int, duration time.Duration) {
	pc.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	pc.latency.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (pc *PrometheusCollector) RecordRateLimited() {
	pc.rateLimited.Inc()
}
