package recur

import "fmt"

// RuleError is the single error kind that crosses the core's boundary: an
// over-constrained rule. It names the stage that gave up so the wrapper
// can report a useful message, per spec.md §6's "Error surface".
type RuleError struct {
	Stage   string
	Message string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("over-constrained rule at %s: %s", e.Stage, e.Message)
}

func overConstrained(stage, message string) error {
	return &RuleError{Stage: stage, Message: message}
}

// RuleIterator is the pull interface every pipeline stage exposes: a
// single-instance pull and a batch pull returning the next non-empty
// ordered set of candidates, per spec.md §2.
type RuleIterator interface {
	Next() (Instance, error)
	NextSet() (*InstanceSet, error)
}

// FilterOps is the capability pair a concrete BYxxx stage implements,
// standing in for the original's ByFilter subclass hooks (spec.md §9's
// "inheritance → trait/capability" note).
type FilterOps interface {
	// Filter reports whether instance should be dropped (true == drop).
	Filter(instance Instance) bool
	// Expand appends zero or more instances derived from instance into
	// out. start is the rule's first instance, for stages that may skip
	// work preceding it.
	Expand(out *InstanceSet, instance Instance, start Instance)
}

// ByFilter is the shared adapter that composes a FilterOps implementation
// with its upstream RuleIterator, providing the EXPAND/LIMIT pull logic
// common to every BYxxx stage (spec.md §4.4). It is a concrete type, not a
// base class: each concrete stage's constructor returns a ByFilter built
// around that stage's FilterOps.
type ByFilter struct {
	name     string
	upstream RuleIterator
	ops      FilterOps
	expand   bool
	start    Instance

	maxEmptySets      int
	maxEmptyInstances int

	workingSet *InstanceSet
	resultSet  *InstanceSet
}

// NewByFilter builds the shared filter adapter. expand selects EXPAND mode
// (true) or LIMIT mode (false); this is decided by each concrete stage's
// constructor from frequency + sibling BY-parts.
func NewByFilter(name string, upstream RuleIterator, ops FilterOps, start Instance, expand bool, opts Options) *ByFilter {
	opts = opts.withDefaults()
	return &ByFilter{
		name:              name,
		upstream:          upstream,
		ops:               ops,
		expand:            expand,
		start:             start,
		maxEmptySets:      opts.MaxEmptySets,
		maxEmptyInstances: opts.MaxEmptyInstances,
		resultSet:         NewInstanceSet(),
	}
}

// Next returns the next surviving instance, in LIMIT mode by pulling from
// upstream until one passes the filter, in EXPAND mode by draining the
// current expanded batch and refilling via NextSet when exhausted.
func (f *ByFilter) Next() (Instance, error) {
	if f.expand {
		if f.workingSet == nil || !f.workingSet.HasNext() {
			set, err := f.NextSet()
			if err != nil {
				return 0, err
			}
			f.workingSet = set
		}
		return f.workingSet.Next(), nil
	}

	for counter := 0; ; counter++ {
		if counter == f.maxEmptyInstances {
			return 0, overConstrained(f.name, "too many filtered recurrence instances")
		}
		next, err := f.upstream.Next()
		if err != nil {
			return 0, err
		}
		if !f.ops.Filter(next) {
			return next, nil
		}
	}
}

// NextSet produces the next non-empty ordered set of candidates, expanding
// or filtering the upstream batch and sorting the result, per the
// "mandated ordering contract between stages" in spec.md §4.4.
func (f *ByFilter) NextSet() (*InstanceSet, error) {
	result := f.resultSet
	result.Clear()

	if f.expand {
		for counter := 0; result.Len() == 0; counter++ {
			if counter == f.maxEmptySets {
				return nil, overConstrained(f.name, "too many empty recurrence sets")
			}
			prev, err := f.upstream.NextSet()
			if err != nil {
				return nil, err
			}
			for prev.HasNext() {
				f.ops.Expand(result, prev.Next(), f.start)
			}
		}
	} else {
		for counter := 0; result.Len() == 0; counter++ {
			if counter == f.maxEmptySets {
				return nil, overConstrained(f.name, "too many empty recurrence sets")
			}
			prev, err := f.upstream.NextSet()
			if err != nil {
				return nil, err
			}
			for prev.HasNext() {
				next := prev.Next()
				if !f.ops.Filter(next) {
					result.Append(next)
				}
			}
		}
	}
	result.Sort()
	return result, nil
}
