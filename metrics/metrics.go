// Package metrics exports curtain transition events as Prometheus metrics.
//
//	m := metrics.New(prometheus.DefaultRegisterer)
//	o, err := curtain.New(overlay, loader, curtain.WithEventSink(m))
package metrics

import (
	"github.com/phanxgames/curtain"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector is a curtain.EventSink that records transitions.
type Collector struct {
	started     *prometheus.CounterVec
	completed   *prometheus.CounterVec
	errors      *prometheus.CounterVec
	aborted     *prometheus.CounterVec
	activations prometheus.Counter
	loadTime    *prometheus.HistogramVec
	total       *prometheus.HistogramVec
	inFlight    prometheus.Gauge
}

// New creates a Collector and registers its metrics with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		started: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "curtain_transitions_started_total",
			Help: "Transitions accepted, by scene and load mode.",
		}, []string{"scene", "mode"}),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "curtain_transitions_completed_total",
			Help: "Transitions that returned to idle.",
		}, []string{"scene"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "curtain_load_errors_total",
			Help: "Loads that failed in the load provider.",
		}, []string{"scene"}),
		aborted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "curtain_transitions_aborted_total",
			Help: "Transitions hidden before their load finished.",
		}, []string{"scene"}),
		activations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "curtain_manual_activations_total",
			Help: "Activation gates opened through ActivateScene.",
		}),
		loadTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "curtain_load_ready_seconds",
			Help:    "Game time from request until content was loaded.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"scene"}),
		total: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "curtain_transition_seconds",
			Help:    "Game time from request until the overlay was hidden.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"scene"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "curtain_transitions_in_flight",
			Help: "1 while a transition is running.",
		}),
	}
	reg.MustRegister(c.started, c.completed, c.errors, c.aborted, c.activations, c.loadTime, c.total, c.inFlight)
	return c
}

// EmitEvent implements curtain.EventSink.
func (c *Collector) EmitEvent(e curtain.Event) {
	switch e.Type {
	case curtain.EventTransitionStart:
		c.started.WithLabelValues(e.Scene, e.Mode.String()).Inc()
		c.inFlight.Set(1)
	case curtain.EventLoadComplete:
		c.loadTime.WithLabelValues(e.Scene).Observe(float64(e.Elapsed))
	case curtain.EventActivate:
		c.activations.Inc()
	case curtain.EventLoadError:
		c.errors.WithLabelValues(e.Scene).Inc()
	case curtain.EventTransitionEnd:
		c.completed.WithLabelValues(e.Scene).Inc()
		c.total.WithLabelValues(e.Scene).Observe(float64(e.Elapsed))
		c.inFlight.Set(0)
	case curtain.EventTransitionAbort:
		c.aborted.WithLabelValues(e.Scene).Inc()
		c.inFlight.Set(0)
	}
}
