package scope

// Result is the outcome of testing a requirement against a
// specification.
type Result int

const (
	// ResultNotApplicable means the requirement belongs to a different
	// kind and the specification has no opinion on it.
	ResultNotApplicable Result = iota

	// ResultSatisfied means the granted scopes cover every required
	// scope.
	ResultSatisfied

	// ResultRejected means at least one required scope is not covered
	// by the grants.
	ResultRejected
)

// String returns the lowercase name of the result.
func (r Result) String() string {
	switch r {
	case ResultNotApplicable:
		return "not_applicable"
	case ResultSatisfied:
		return "satisfied"
	case ResultRejected:
		return "rejected"
	default:
		return "unknown"
	}
}
