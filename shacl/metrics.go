package shacl

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus metrics for shape parsing. All methods are safe
// on a nil *Metrics.
type Metrics struct {
	shapesTotal    *prometheus.CounterVec
	conflictsTotal *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	parseDuration  prometheus.Histogram
	rootsTotal     prometheus.Counter
}

// NewMetrics creates the parse metrics and registers them with reg.
// A nil registerer returns nil metrics.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}

	m := &Metrics{
		shapesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shacl",
			Subsystem: "parser",
			Name:      "shapes_total",
			Help:      "Shapes built, by kind",
		}, []string{"kind"}),

		conflictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shacl",
			Subsystem: "parser",
			Name:      "conflicts_total",
			Help:      "Well-formedness conflicts found, by code",
		}, []string{"code"}),

		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shacl",
			Subsystem: "parser",
			Name:      "structural_errors_total",
			Help:      "Shapes rejected by a structural error, by code",
		}, []string{"code"}),

		parseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shacl",
			Subsystem: "parser",
			Name:      "parse_duration_seconds",
			Help:      "Time spent parsing a shapes graph",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),

		rootsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shacl",
			Subsystem: "parser",
			Name:      "roots_total",
			Help:      "Root shapes discovered",
		}),
	}

	for _, c := range []prometheus.Collector{m.shapesTotal, m.conflictsTotal, m.errorsTotal, m.parseDuration, m.rootsTotal} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) recordShape(kind ShapeKind) {
	if m == nil {
		return
	}
	m.shapesTotal.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) recordConflicts(conflicts []Conflict) {
	if m == nil {
		return
	}
	for _, c := range conflicts {
		m.conflictsTotal.WithLabelValues(string(c.Code)).Inc()
	}
}

func (m *Metrics) recordError(err error) {
	if m == nil {
		return
	}
	var shapeErr *ShapeError
	if errors.As(err, &shapeErr) {
		m.errorsTotal.WithLabelValues(string(shapeErr.Code)).Inc()
	}
}

func (m *Metrics) recordRoots(n int) {
	if m == nil {
		return
	}
	m.rootsTotal.Add(float64(n))
}

func (m *Metrics) observeParse(d time.Duration) {
	if m == nil {
		return
	}
	m.parseDuration.Observe(d.Seconds())
}
