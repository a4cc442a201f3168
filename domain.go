package scopekit

import (
	"github.com/scopekit-dev/scopekit/discovery"
	"github.com/scopekit-dev/scopekit/scope"
)

// Domain is a named group of scope specifications evaluated together,
// typically everything one consumer has been granted. A requirement
// passes an individual specification on Satisfied or NotApplicable;
// any Rejected verdict fails the whole domain.
type Domain struct {
	name  string
	specs []*scope.Specification
}

// NewDomain creates a domain from the given specifications. Nil
// specifications are ignored.
func NewDomain(name string, specs ...*scope.Specification) *Domain {
	kept := make([]*scope.Specification, 0, len(specs))
	for _, s := range specs {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &Domain{name: name, specs: kept}
}

// Name returns the domain name.
func (d *Domain) Name() string {
	return d.name
}

// Specifications returns the specifications in evaluation order.
func (d *Domain) Specifications() []*scope.Specification {
	out := make([]*scope.Specification, len(d.specs))
	copy(out, d.specs)
	return out
}

// Test reports whether every requirement clears every specification.
// A domain with no specifications accepts everything.
func (d *Domain) Test(reqs ...discovery.Requirement) bool {
	for _, spec := range d.specs {
		for _, req := range reqs {
			if spec.Test(req) == scope.ResultRejected {
				return false
			}
		}
	}
	return true
}
