package ioc

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the registry's Prometheus collectors. A nil *metrics is a
// valid no-op recorder.
type metrics struct {
	constructions      *prometheus.CounterVec
	constructionErrors *prometheus.CounterVec
	singletonHits      *prometheus.CounterVec
	proxyCalls         *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	if reg == nil {
		return nil, nil
	}

	m := &metrics{
		constructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ioc",
			Name:      "constructions_total",
			Help:      "Instances built by default providers.",
		}, []string{"type"}),
		constructionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ioc",
			Name:      "construction_errors_total",
			Help:      "Default provider calls that returned an error.",
		}, []string{"type"}),
		singletonHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ioc",
			Name:      "singleton_hits_total",
			Help:      "Singleton instances served from cache.",
		}, []string{"type"}),
		proxyCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ioc",
			Name:      "proxy_calls_total",
			Help:      "Method calls forwarded through a proxy facade.",
		}, []string{"type", "method"}),
	}

	for _, vec := range []**prometheus.CounterVec{&m.constructions, &m.constructionErrors, &m.singletonHits, &m.proxyCalls} {
		existing, err := register(reg, *vec)
		if err != nil {
			return nil, err
		}
		*vec = existing
	}

	return m, nil
}

// register adds vec to reg. Several registries may share one Registerer, in
// which case the collector registered first is reused.
func register(reg prometheus.Registerer, vec *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	err := reg.Register(vec)
	if err == nil {
		return vec, nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
			return existing, nil
		}
	}
	return nil, err
}

func (m *metrics) constructed(typeName string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.constructionErrors.WithLabelValues(typeName).Inc()
		return
	}
	m.constructions.WithLabelValues(typeName).Inc()
}

func (m *metrics) singletonHit(typeName string) {
	if m == nil {
		return
	}
	m.singletonHits.WithLabelValues(typeName).Inc()
}

func (m *metrics) proxyCall(typeName, method string) {
	if m == nil {
		return
	}
	m.proxyCalls.WithLabelValues(typeName, method).Inc()
}
