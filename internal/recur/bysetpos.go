package recur

// BySetPos implements the BYSETPOS stage (spec.md §4.11). Unlike the other
// BYxxx stages it does not filter or expand per instance; it selects
// elements from an entire sorted batch by position, keeping p-th from the
// start (p > 0) or p-th from the end (p < 0). Out-of-range positions
// contribute nothing, and the result preserves ascending order.
type BySetPos struct {
	name         string
	upstream     RuleIterator
	positions    []int
	maxEmptySets int

	result  *InstanceSet
	working *InstanceSet
}

// NewBySetPos builds the BYSETPOS stage.
func NewBySetPos(upstream RuleIterator, rule ParsedRule, opts Options) *BySetPos {
	opts = opts.withDefaults()
	return &BySetPos{
		name:         "BYSETPOS",
		upstream:     upstream,
		positions:    sortedInts(rule.BySetPos),
		maxEmptySets: opts.MaxEmptySets,
		result:       NewInstanceSet(),
	}
}

// NextSet selects the configured positions from the next non-empty
// upstream batch, retrying until at least one position resolves.
func (p *BySetPos) NextSet() (*InstanceSet, error) {
	result := p.result
	result.Clear()

	for counter := 0; result.Len() == 0; counter++ {
		if counter == p.maxEmptySets {
			return nil, overConstrained(p.name, "too many empty recurrence sets")
		}
		batch, err := p.upstream.NextSet()
		if err != nil {
			return nil, err
		}
		n := batch.Len()
		for _, pos := range p.positions {
			var idx int
			switch {
			case pos > 0:
				idx = pos - 1
			case pos < 0:
				idx = n + pos
			default:
				continue
			}
			if idx < 0 || idx >= n {
				continue
			}
			result.Append(batch.At(idx))
		}
	}
	result.Sort()
	return result, nil
}

// Next returns the next selected instance, refilling from NextSet when the
// current batch is drained.
func (p *BySetPos) Next() (Instance, error) {
	if p.working == nil || !p.working.HasNext() {
		set, err := p.NextSet()
		if err != nil {
			return 0, err
		}
		p.working = set
	}
	return p.working.Next(), nil
}
