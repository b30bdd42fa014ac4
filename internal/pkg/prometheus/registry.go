package prometheus

import "github.com/prometheus/client_golang/prometheus"

const namespace = "clientstore"

var (
	registry = prometheus.NewRegistry()

	Sets = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sets_total",
		Help:      "Entries written, by backend.",
	}, []string{"backend"})

	// Gets is labelled with result=hit|miss|raw; raw counts payloads that
	// were returned verbatim because they were not envelopes.
	Gets = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gets_total",
		Help:      "Entries read, by backend and result.",
	}, []string{"backend", "result"})

	Expired = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expired_total",
		Help:      "Entries removed by expiration sweeps.",
	})

	Sweeps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweeps_total",
		Help:      "Expiration sweeps run, by result.",
	}, []string{"result"})
)

func init() {
	registry.MustRegister(Sets, Gets, Expired, Sweeps)
}

func GetRegistry() *prometheus.Registry {
	return registry
}
