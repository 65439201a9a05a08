package evo

import (
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// Instrumentation collects the counters of a single run on its own registry.
// A nil *Instrumentation is valid and records nothing.
type Instrumentation struct {
	RunId    string
	Registry *prometheus.Registry

	evaluations  prometheus.Counter
	comparisons  *prometheus.CounterVec
	crossovers   *prometheus.CounterVec
	mutatedGenes prometheus.Counter
	generation   prometheus.Gauge
	frontSize    prometheus.Gauge
	feasible     prometheus.Gauge
}

func NewInstrumentation() *Instrumentation {
	runId := uuid.NewString()
	labels := prometheus.Labels{"run_id": runId}

	instrumentation := &Instrumentation{
		RunId:    runId,
		Registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "fixture_evaluations_total",
			Help:        "Number of genome evaluations",
			ConstLabels: labels,
		}),
		comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "fixture_comparisons_total",
			Help:        "Number of dominance comparisons by outcome",
			ConstLabels: labels,
		}, []string{"outcome"}),
		crossovers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "fixture_crossovers_total",
			Help:        "Number of crossover calls by whether genes were exchanged",
			ConstLabels: labels,
		}, []string{"result"}),
		mutatedGenes: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "fixture_mutated_genes_total",
			Help:        "Number of genes redrawn by mutation",
			ConstLabels: labels,
		}),
		generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "fixture_generation",
			Help:        "Last completed generation",
			ConstLabels: labels,
		}),
		frontSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "fixture_front_size",
			Help:        "Number of solutions in the first nondominated front",
			ConstLabels: labels,
		}),
		feasible: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "fixture_front_feasible",
			Help:        "Number of feasible solutions in the first nondominated front",
			ConstLabels: labels,
		}),
	}

	instrumentation.Registry.MustRegister(
		instrumentation.evaluations,
		instrumentation.comparisons,
		instrumentation.crossovers,
		instrumentation.mutatedGenes,
		instrumentation.generation,
		instrumentation.frontSize,
		instrumentation.feasible,
	)
	return instrumentation
}

// Snapshot returns the current value of every collected series, keyed by metric name and non-constant labels
func (instrumentation *Instrumentation) Snapshot() (map[string]float64, error) {
	snapshot := make(map[string]float64)
	if instrumentation == nil {
		return snapshot, nil
	}

	families, err := instrumentation.Registry.Gather()
	if err != nil {
		return nil, err
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			var key strings.Builder
			key.WriteString(family.GetName())
			for _, label := range metric.GetLabel() {
				if label.GetName() == "run_id" {
					continue
				}
				key.WriteString("{" + label.GetName() + "=" + label.GetValue() + "}")
			}

			switch {
			case metric.GetCounter() != nil:
				snapshot[key.String()] = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				snapshot[key.String()] = metric.GetGauge().GetValue()
			}
		}
	}
	return snapshot, nil
}

func (instrumentation *Instrumentation) observeEvaluation() {
	if instrumentation == nil {
		return
	}
	instrumentation.evaluations.Inc()
}

func (instrumentation *Instrumentation) observeComparison(result int) {
	if instrumentation == nil {
		return
	}
	outcome := "incomparable"
	if result < 0 {
		outcome = "first"
	} else if result > 0 {
		outcome = "second"
	}
	instrumentation.comparisons.WithLabelValues(outcome).Inc()
}

func (instrumentation *Instrumentation) observeCrossover(applied bool) {
	if instrumentation == nil {
		return
	}
	result := "skipped"
	if applied {
		result = "applied"
	}
	instrumentation.crossovers.WithLabelValues(result).Inc()
}

func (instrumentation *Instrumentation) observeMutation(genes int) {
	if instrumentation == nil {
		return
	}
	instrumentation.mutatedGenes.Add(float64(genes))
}

func (instrumentation *Instrumentation) observeGeneration(generation int, front []*Solution) {
	if instrumentation == nil {
		return
	}
	instrumentation.generation.Set(float64(generation))
	instrumentation.frontSize.Set(float64(len(front)))
	instrumentation.feasible.Set(float64(countFeasible(front)))
}
