package kraken

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//
// Metrics holds the Prometheus collectors used to instrument the HTTP transport of one or more
// clients.
//
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

//
// NewMetrics creates the collectors and registers them with the provided registerer. Registration
// panics if collectors with the same names are already registered.
//
func NewMetrics(reg prometheus.Registerer) *Metrics {
	o := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "kraken",
				Subsystem: "client",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests sent to the Kraken API, by status code and method.",
			},
			[]string{"code", "method"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "kraken",
				Subsystem: "client",
				Name:      "request_duration_seconds",
				Help:      "Latency of HTTP requests sent to the Kraken API.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "kraken",
				Subsystem: "client",
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests to the Kraken API currently awaiting a response.",
			},
		),
	}

	reg.MustRegister(o.requests, o.duration, o.inFlight)

	return o
}

//
// InstrumentRoundTripper wraps the provided round tripper so that every request passing through it
// is counted and timed.
//
func (o *Metrics) InstrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	return promhttp.InstrumentRoundTripperInFlight(
		o.inFlight,
		promhttp.InstrumentRoundTripperCounter(
			o.requests,
			promhttp.InstrumentRoundTripperDuration(o.duration, next),
		),
	)
}
