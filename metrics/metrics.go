// Package metrics defines the instrumentation port for scopekit and its
// adapters. Components accept a Recorder and default to the no-op
// implementation, so instrumentation is opt-in.
package metrics

// Recorder receives counts from requirement lookups and specification
// verdicts. Implementations must be safe for concurrent use.
type Recorder interface {
	// LookupCompleted records one registry lookup for a requirement kind
	// and the number of requirements it produced.
	LookupCompleted(kind string, results int)

	// VerdictReturned records one specification test outcome for a kind.
	// result is the Result's string form.
	VerdictReturned(kind string, result string)
}

// NoopRecorder discards all measurements. All methods are safe to call
// and do nothing.
type NoopRecorder struct{}

// NewNoopRecorder creates a new no-op recorder.
func NewNoopRecorder() *NoopRecorder {
	return &NoopRecorder{}
}

// LookupCompleted is a no-op.
func (n *NoopRecorder) LookupCompleted(kind string, results int) {}

// VerdictReturned is a no-op.
func (n *NoopRecorder) VerdictReturned(kind string, result string) {}

var _ Recorder = (*NoopRecorder)(nil)
