package metrics

import "time"

// BuildOutcome enumerates final build states for counters.
type BuildOutcome string

const (
	OutcomeSuccess BuildOutcome = "success"
	OutcomeWarning BuildOutcome = "warning"
	OutcomeFailed  BuildOutcome = "failed"
)

// Recorder defines observability hooks for navigation builds. Implementations
// may forward to Prometheus or any other backend.
type Recorder interface {
	ObservePhaseDuration(phase string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcome)
	// SetTreeNodes records the node count of the tree built for scope
	// (a version and/or locale, "" for an unscoped build).
	SetTreeNodes(scope string, n int)
	// IncPagination counts resolved pages; linked is false when the page
	// has neither a prev nor a next link.
	IncPagination(linked bool)
	IncRewrittenLink(rule string)
	IncWarning(kind string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePhaseDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncBuildOutcome(BuildOutcome)               {}
func (NoopRecorder) SetTreeNodes(string, int)                   {}
func (NoopRecorder) IncPagination(bool)                         {}
func (NoopRecorder) IncRewrittenLink(string)                    {}
func (NoopRecorder) IncWarning(string)                          {}

// OrNoop returns r, or a NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}
