package recur

// byMinute implements the BYMINUTE stage (spec.md §4.10). It expands when
// the base frequency is coarser than minutes and limits when the
// frequency is MINUTELY or finer.
type byMinute struct {
	minutes []int
}

// NewByMinute builds the BYMINUTE stage.
func NewByMinute(upstream RuleIterator, rule ParsedRule, opts Options) *ByFilter {
	expand := rule.Freq != Minutely && rule.Freq != Secondly
	ops := &byMinute{minutes: sortedInts(rule.ByMinute)}
	return NewByFilter("BYMINUTE", upstream, ops, rule.Start, expand, opts)
}

func (b *byMinute) Filter(instance Instance) bool {
	return !containsInt(b.minutes, instance.Minute())
}

func (b *byMinute) Expand(out *InstanceSet, instance Instance, start Instance) {
	for _, m := range b.minutes {
		out.Append(instance.WithMinute(m))
	}
}
