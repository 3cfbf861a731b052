package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	CompositionsH  = "The total number of successful rule base compositions"
	CompositionsN  = "fuzzy_compositions_total"
	InferencesH    = "The total number of successful defuzzified inferences"
	InferencesN    = "fuzzy_inferences_total"
	SurfacePointsH = "The total number of evaluated control surface points"
	SurfacePointsN = "fuzzy_surface_points_total"
	DefuzzErrorsH  = "The total number of failed defuzzifications"
	DefuzzErrorsN  = "fuzzy_defuzz_errors_total"
)

// Metrics counts engine activity. A nil *Metrics records nothing.
type Metrics struct {
	Compositions  prometheus.Counter
	Inferences    prometheus.Counter
	SurfacePoints prometheus.Counter
	DefuzzErrors  prometheus.Counter
}

// NewMetrics registers the engine counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Compositions:  f.NewCounter(prometheus.CounterOpts{Name: CompositionsN, Help: CompositionsH}),
		Inferences:    f.NewCounter(prometheus.CounterOpts{Name: InferencesN, Help: InferencesH}),
		SurfacePoints: f.NewCounter(prometheus.CounterOpts{Name: SurfacePointsN, Help: SurfacePointsH}),
		DefuzzErrors:  f.NewCounter(prometheus.CounterOpts{Name: DefuzzErrorsN, Help: DefuzzErrorsH}),
	}
}

func (mt *Metrics) composed() {
	if mt != nil {
		mt.Compositions.Inc()
	}
}

func (mt *Metrics) inferred() {
	if mt != nil {
		mt.Inferences.Inc()
	}
}

func (mt *Metrics) surfacePoint() {
	if mt != nil {
		mt.SurfacePoints.Inc()
	}
}

func (mt *Metrics) defuzzFailed() {
	if mt != nil {
		mt.DefuzzErrors.Inc()
	}
}
