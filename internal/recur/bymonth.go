package recur

// byMonth implements the BYMONTH stage (spec.md §4.5). It expands when the
// base frequency is YEARLY and limits otherwise.
type byMonth struct {
	calendar CalendarMetrics
	months   []int // 1-based, sorted
}

func newByMonthOps(calendar CalendarMetrics, months []int) *byMonth {
	return &byMonth{calendar: calendar, months: sortedInts(months)}
}

// NewByMonth builds the BYMONTH stage.
func NewByMonth(upstream RuleIterator, calendar CalendarMetrics, rule ParsedRule, opts Options) *ByFilter {
	expand := rule.Freq == Yearly
	ops := newByMonthOps(calendar, rule.ByMonth)
	return NewByFilter("BYMONTH", upstream, ops, rule.Start, expand, opts)
}

func (b *byMonth) Filter(instance Instance) bool {
	return !containsInt(b.months, instance.Month()+1)
}

func (b *byMonth) Expand(out *InstanceSet, instance Instance, start Instance) {
	day := instance.Day()
	year := instance.Year()
	for _, m := range b.months {
		month := m - 1
		if day > b.calendar.DaysInMonth(year, month) {
			continue
		}
		out.Append(instance.WithMonth(month))
	}
}
