package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "court_grid"

// Recorder holds the engine metrics on a private registry so tests can build
// as many as they like.
type Recorder struct {
	registry *prometheus.Registry

	EventsTotal      *prometheus.CounterVec
	MutationsTotal   *prometheus.CounterVec
	LoadsTotal       *prometheus.CounterVec
	LoadDuration     prometheus.Histogram
	GatewayDuration  *prometheus.HistogramVec
	StoreEntries     prometheus.Gauge
	CustomerCacheHit *prometheus.CounterVec
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		EventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Push events handled by the reconciler, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		MutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Optimistic mutations, by action and result.",
		}, []string{"action", "result"}),
		LoadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Snapshot loads, by result.",
		}, []string{"result"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Duration of full snapshot loads.",
			Buckets:   prometheus.DefBuckets,
		}),
		GatewayDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gateway_request_duration_seconds",
			Help:      "Backend request latency, by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		StoreEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_entries",
			Help:      "Cells currently held by the projection store.",
		}),
		CustomerCacheHit: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "customer_cache_lookups_total",
			Help:      "Customer detail lookups, by hit or miss.",
		}, []string{"result"}),
	}

	r.registry.MustRegister(
		r.EventsTotal,
		r.MutationsTotal,
		r.LoadsTotal,
		r.LoadDuration,
		r.GatewayDuration,
		r.StoreEntries,
		r.CustomerCacheHit,
	)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) ObserveEvent(kind, outcome string) {
	r.EventsTotal.WithLabelValues(kind, outcome).Inc()
}

func (r *Recorder) ObserveMutation(action string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.MutationsTotal.WithLabelValues(action, result).Inc()
}

func (r *Recorder) ObserveLoad(start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.LoadsTotal.WithLabelValues(result).Inc()
	r.LoadDuration.Observe(time.Since(start).Seconds())
}

func (r *Recorder) ObserveGateway(operation string, start time.Time) {
	r.GatewayDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (r *Recorder) SetStoreEntries(n int) {
	r.StoreEntries.Set(float64(n))
}

func (r *Recorder) ObserveCustomerLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.CustomerCacheHit.WithLabelValues(result).Inc()
}
