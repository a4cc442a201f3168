package scope

import (
	"log/slog"

	"github.com/scopekit-dev/scopekit/discovery"
	"github.com/scopekit-dev/scopekit/metrics"
)

// SpecificationOption configures a Specification.
type SpecificationOption func(*Specification)

// WithMatcher replaces the default superset rule. The kind check in
// Test still applies and cannot be bypassed by a matcher.
func WithMatcher(m Matcher) SpecificationOption {
	return func(s *Specification) {
		if m != nil {
			s.matcher = m
		}
	}
}

// WithLogger sets the specification logger.
func WithLogger(logger *slog.Logger) SpecificationOption {
	return func(s *Specification) {
		if logger != nil {
			s.log = logger
		}
	}
}

// WithRecorder sets the metrics recorder for verdict instrumentation.
func WithRecorder(rec metrics.Recorder) SpecificationOption {
	return func(s *Specification) {
		if rec != nil {
			s.recorder = rec
		}
	}
}

// Specification is a configured scope policy: a set of granted scope
// strings plus the descriptor naming the one requirement kind it is
// willing to judge. Immutable after construction and safe for
// concurrent use.
type Specification struct {
	desc     *Descriptor
	granted  []string
	matcher  Matcher
	log      *slog.Logger
	recorder metrics.Recorder
}

// NewSpecification creates a specification granting the given scopes.
// granted may be empty or nil, meaning the specification grants
// nothing; the input is copied.
func NewSpecification(desc *Descriptor, granted []string, opts ...SpecificationOption) *Specification {
	copied := make([]string, len(granted))
	copy(copied, granted)

	s := &Specification{
		desc:     desc,
		granted:  copied,
		matcher:  SupersetMatcher(),
		log:      slog.Default(),
		recorder: metrics.NewNoopRecorder(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Descriptor returns the shared descriptor this specification judges
// requirements for.
func (s *Specification) Descriptor() *Descriptor {
	return s.desc
}

// SpecifiedScopes returns a copy of the configured granted scopes.
func (s *Specification) SpecifiedScopes() []string {
	out := make([]string, len(s.granted))
	copy(out, s.granted)
	return out
}

// Test judges one requirement. Requirements of a different kind, or of
// types that carry no scopes at all, yield ResultNotApplicable: scope
// strings are provider-specific, so a specification never judges a
// requirement of the wrong family even when the strings look identical.
// Applicable requirements are judged by the matcher: covered grants are
// ResultSatisfied, everything else ResultRejected.
func (s *Specification) Test(req discovery.Requirement) Result {
	sr, ok := s.applicable(req)
	if !ok {
		return s.verdict(ResultNotApplicable)
	}
	if s.matcher.Match(s.granted, sr.Scopes()) {
		return s.verdict(ResultSatisfied)
	}
	return s.verdict(ResultRejected)
}

// Missing returns the required scopes the grants do not cover, judged
// scope by scope with the configured matcher. Inapplicable requirements
// yield nil.
func (s *Specification) Missing(req discovery.Requirement) []string {
	sr, ok := s.applicable(req)
	if !ok {
		return nil
	}

	var missing []string
	for _, need := range sr.Scopes() {
		if !s.matcher.Match(s.granted, []string{need}) {
			missing = append(missing, need)
		}
	}
	return missing
}

func (s *Specification) applicable(req discovery.Requirement) (Requirement, bool) {
	if s.desc == nil || req == nil {
		return nil, false
	}
	sr, ok := req.(Requirement)
	if !ok || sr.RequirementKind() != s.desc.Kind() {
		return nil, false
	}
	return sr, true
}

func (s *Specification) verdict(r Result) Result {
	kind := ""
	if s.desc != nil {
		kind = s.desc.Kind().String()
	}
	s.recorder.VerdictReturned(kind, r.String())
	return r
}
