package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics holds the storefront counters. A nil *Metrics records nothing.
type Metrics struct {
	resolutions   *prometheus.CounterVec
	overrideSaves *prometheus.CounterVec
	cartUpdates   *prometheus.CounterVec
	premiseChecks *prometheus.CounterVec
	eventFailures *prometheus.CounterVec
}

func New(registerer prometheus.Registerer, serviceName string) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	serviceName = strings.TrimSpace(serviceName)
	if serviceName == "" {
		serviceName = "storefront"
	}
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "storefront_consumption_resolutions_total",
			Help:        "Consumption resolutions by the step that produced the value.",
			ConstLabels: constLabels,
		}, []string{"source"}),
		overrideSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "storefront_consumption_override_saves_total",
			Help:        "Consumption override saves by outcome.",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		cartUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "storefront_cart_updates_total",
			Help:        "Cart update requests by flow and outcome.",
			ConstLabels: constLabels,
		}, []string{"flow", "outcome"}),
		premiseChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "storefront_premise_validations_total",
			Help:        "Premise validations by outcome.",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		eventFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "storefront_event_publish_failures_total",
			Help:        "Events that could not be published, by topic.",
			ConstLabels: constLabels,
		}, []string{"topic"}),
	}

	registerer.MustRegister(m.resolutions, m.overrideSaves, m.cartUpdates, m.premiseChecks, m.eventFailures)
	return m
}

func (m *Metrics) Resolution(source string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(source).Inc()
}

func (m *Metrics) OverrideSave(outcome string) {
	if m == nil {
		return
	}
	m.overrideSaves.WithLabelValues(outcome).Inc()
}

func (m *Metrics) CartUpdate(flow, outcome string) {
	if m == nil {
		return
	}
	m.cartUpdates.WithLabelValues(flow, outcome).Inc()
}

func (m *Metrics) PremiseCheck(outcome string) {
	if m == nil {
		return
	}
	m.premiseChecks.WithLabelValues(outcome).Inc()
}

func (m *Metrics) EventFailure(topic string) {
	if m == nil {
		return
	}
	m.eventFailures.WithLabelValues(topic).Inc()
}
