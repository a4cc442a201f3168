package scope

import "github.com/bmatcuk/doublestar/v4"

// Matcher decides whether a granted scope set covers a required one.
// Matching is order-independent on both sides. Implementations must be
// safe for concurrent use.
type Matcher interface {
	Match(granted, required []string) bool
}

// MatcherFunc adapts a function to the Matcher interface.
type MatcherFunc func(granted, required []string) bool

func (f MatcherFunc) Match(granted, required []string) bool {
	return f(granted, required)
}

// SupersetMatcher is the default matching rule: covered iff every
// required scope appears verbatim among the grants. An empty required
// set is vacuously covered, including by empty grants. Partial overlap
// is not a match.
func SupersetMatcher() Matcher {
	return MatcherFunc(func(granted, required []string) bool {
		if len(required) == 0 {
			return true
		}
		have := make(map[string]struct{}, len(granted))
		for _, s := range granted {
			have[s] = struct{}{}
		}
		for _, s := range required {
			if _, ok := have[s]; !ok {
				return false
			}
		}
		return true
	})
}

// GlobMatcher treats each granted scope as a doublestar pattern: a
// required scope is covered when any granted pattern matches it.
// A grant that is not a valid pattern falls back to literal equality.
func GlobMatcher() Matcher {
	return MatcherFunc(func(granted, required []string) bool {
		for _, need := range required {
			if !globCovered(granted, need) {
				return false
			}
		}
		return true
	})
}

func globCovered(granted []string, need string) bool {
	for _, pattern := range granted {
		ok, err := doublestar.Match(pattern, need)
		if err != nil {
			if pattern == need {
				return true
			}
			continue
		}
		if ok {
			return true
		}
	}
	return false
}
