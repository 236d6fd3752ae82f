package billing

import "github.com/prometheus/client_golang/prometheus"

// Recalculation reasons reported on the recalculations counter.
const (
	reasonCreate   = "create"
	reasonPrice    = "price"
	reasonQuantity = "quantity"
	reasonRemoval  = "removal"
)

// Metrics counts charge group changes. A nil *Metrics records nothing.
type Metrics struct {
	recalculations *prometheus.CounterVec
	dissolved      prometheus.Counter
}

// NewMetrics creates the engine's collectors and registers them with reg
// when reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		recalculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meetsplit",
			Name:      "charge_group_recalculations_total",
			Help:      "Charge group split computations, by what triggered them.",
		}, []string{"reason"}),
		dissolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meetsplit",
			Name:      "charge_groups_dissolved_total",
			Help:      "Charge groups deleted together with their item.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.recalculations, m.dissolved)
	}
	return m
}

func (m *Metrics) recalculated(reason string) {
	if m == nil || reason == "" {
		return
	}
	m.recalculations.WithLabelValues(reason).Inc()
}

func (m *Metrics) groupDissolved() {
	if m == nil {
		return
	}
	m.dissolved.Inc()
}
