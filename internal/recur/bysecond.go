package recur

// bySecond implements the BYSECOND stage, ported directly from
// BySecondFilter.java (spec.md §4.10). It expands for every frequency
// except SECONDLY, where it limits.
type bySecond struct {
	seconds []int
}

// NewBySecond builds the BYSECOND stage.
func NewBySecond(upstream RuleIterator, rule ParsedRule, opts Options) *ByFilter {
	expand := rule.Freq != Secondly
	ops := &bySecond{seconds: sortedInts(rule.BySecond)}
	return NewByFilter("BYSECOND", upstream, ops, rule.Start, expand, opts)
}

// Filter drops every candidate whose second is not in the configured list.
func (b *bySecond) Filter(instance Instance) bool {
	return !containsInt(b.seconds, instance.Second())
}

// Expand adds a new instance for every second in the list.
func (b *bySecond) Expand(out *InstanceSet, instance Instance, start Instance) {
	for _, s := range b.seconds {
		out.Append(instance.WithSecond(s))
	}
}
