// Package metrics registers the service's prometheus collectors. One
// Metrics value is built at wiring time and handed to the components that
// count things; the web layer serves the registry on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Metrics struct {
	Registry *prometheus.Registry

	Mutations         *prometheus.CounterVec
	Logins            *prometheus.CounterVec
	ReconcileRemovals prometheus.Counter
	ReconcileFailures prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		Registry: reg,
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sijil_store_mutations_total",
			Help: "Store mutations issued by the web layer.",
		}, []string{"collection", "op", "result"}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sijil_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"result"}),
		ReconcileRemovals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sijil_reconcile_removals_total",
			Help: "Counterpart records removed by cross-collection cleanup.",
		}),
		ReconcileFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sijil_reconcile_failures_total",
			Help: "Cleanup attempts that failed and were swallowed.",
		}),
	}
	reg.MustRegister(m.Mutations, m.Logins, m.ReconcileRemovals, m.ReconcileFailures)
	return m
}
