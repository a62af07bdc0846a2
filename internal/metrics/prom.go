// Package metrics holds the process's prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	HTTPDuration *prometheus.HistogramVec
	Logins       *prometheus.CounterVec
	Reports      prometheus.Counter
	Forecasts    prometheus.Counter
}

func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		reg: reg,
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "insight_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "insight_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		Reports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "insight_reports_generated_total",
			Help: "PDF reports generated.",
		}),
		Forecasts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "insight_forecasts_total",
			Help: "Forecast predictions served.",
		}),
	}
	reg.MustRegister(r.HTTPDuration, r.Logins, r.Reports, r.Forecasts)
	return r
}

// Handler serves the registry at /metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
