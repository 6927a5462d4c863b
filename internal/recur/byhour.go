package recur

// byHour implements the BYHOUR stage (spec.md §4.10). It expands when the
// base frequency is coarser than hours (DAILY or above) and limits when
// the frequency is HOURLY or finer.
type byHour struct {
	hours []int
}

// NewByHour builds the BYHOUR stage.
func NewByHour(upstream RuleIterator, rule ParsedRule, opts Options) *ByFilter {
	expand := rule.Freq != Hourly && rule.Freq != Minutely && rule.Freq != Secondly
	ops := &byHour{hours: sortedInts(rule.ByHour)}
	return NewByFilter("BYHOUR", upstream, ops, rule.Start, expand, opts)
}

func (b *byHour) Filter(instance Instance) bool {
	return !containsInt(b.hours, instance.Hour())
}

func (b *byHour) Expand(out *InstanceSet, instance Instance, start Instance) {
	for _, h := range b.hours {
		out.Append(instance.WithHour(h))
	}
}
