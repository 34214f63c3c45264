package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// QuoteComputedTotal counts successfully computed quotes by store type
	// and payment plan percent.
	QuoteComputedTotal *prometheus.CounterVec
	// QuoteRejectedTotal counts rejected quote requests by reason.
	QuoteRejectedTotal *prometheus.CounterVec
	// ProductsRepricedTotal counts products whose derived prices were
	// recomputed after a store rate change.
	ProductsRepricedTotal prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers domain-specific
// Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		QuoteComputedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_computed_total",
			Help:      "Count of quotes computed, by store type and plan percent.",
		}, []string{"store_type", "plan"})
		QuoteRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_rejected_total",
			Help:      "Count of quote requests rejected, by reason.",
		}, []string{"reason"})
		ProductsRepricedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "products_repriced_total",
			Help:      "Count of products repriced after store rate changes.",
		})
		reg.MustRegister(QuoteComputedTotal, QuoteRejectedTotal, ProductsRepricedTotal)
	})
}
