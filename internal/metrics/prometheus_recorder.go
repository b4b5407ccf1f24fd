package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docnav"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	phaseDuration *prom.HistogramVec
	buildDuration prom.Histogram
	buildOutcome  *prom.CounterVec
	treeNodes     *prom.GaugeVec
	pagination    *prom.CounterVec
	rewrittenLink *prom.CounterVec
	warnings      *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		phaseDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "phase_duration_seconds",
			Help:      "Duration of individual build phases",
			Buckets:   prom.DefBuckets,
		}, []string{"phase"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		treeNodes: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "tree_nodes",
			Help:      "Node count of the last navigation tree built per scope",
		}, []string{"scope"}),
		pagination: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pagination_resolved_total",
			Help:      "Pages resolved by the pagination sequencer",
		}, []string{"result"}),
		rewrittenLink: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "links_rewritten_total",
			Help:      "Hyperlinks rewritten by rule",
		}, []string{"rule"}),
		warnings: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "warnings_total",
			Help:      "Non-fatal build warnings by kind",
		}, []string{"kind"}),
	}
	reg.MustRegister(pr.phaseDuration, pr.buildDuration, pr.buildOutcome, pr.treeNodes,
		pr.pagination, pr.rewrittenLink, pr.warnings)
	return pr
}

func (p *PrometheusRecorder) ObservePhaseDuration(phase string, d time.Duration) {
	if p == nil {
		return
	}
	p.phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcome) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetTreeNodes(scope string, n int) {
	if p == nil {
		return
	}
	p.treeNodes.WithLabelValues(scope).Set(float64(n))
}

func (p *PrometheusRecorder) IncPagination(linked bool) {
	if p == nil {
		return
	}
	res := "empty"
	if linked {
		res = "linked"
	}
	p.pagination.WithLabelValues(res).Inc()
}

func (p *PrometheusRecorder) IncRewrittenLink(rule string) {
	if p == nil {
		return
	}
	p.rewrittenLink.WithLabelValues(rule).Inc()
}

func (p *PrometheusRecorder) IncWarning(kind string) {
	if p == nil {
		return
	}
	p.warnings.WithLabelValues(kind).Inc()
}
