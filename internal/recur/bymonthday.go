package recur

// byMonthDay implements the BYMONTHDAY stage (spec.md §4.8). It expands
// for YEARLY/MONTHLY rules with no BYDAY/BYYEARDAY present, and limits
// otherwise.
type byMonthDay struct {
	calendar CalendarMetrics
	days     []int
}

// NewByMonthDay builds the BYMONTHDAY stage.
func NewByMonthDay(upstream RuleIterator, calendar CalendarMetrics, rule ParsedRule, opts Options) *ByFilter {
	expand := (rule.Freq == Yearly || rule.Freq == Monthly) && !rule.HasByDay() && !rule.HasByYearDay()
	ops := &byMonthDay{calendar: calendar, days: sortedInts(rule.ByMonthDay)}
	return NewByFilter("BYMONTHDAY", upstream, ops, rule.Start, expand, opts)
}

func (b *byMonthDay) resolve(daysInMonth, v int) (int, bool) {
	if v == 0 {
		return 0, false
	}
	day := v
	if v < 0 {
		day = daysInMonth + v + 1
	}
	if day < 1 || day > daysInMonth {
		return 0, false
	}
	return day, true
}

func (b *byMonthDay) Filter(instance Instance) bool {
	daysInMonth := b.calendar.DaysInMonth(instance.Year(), instance.Month())
	day := instance.Day()
	for _, v := range b.days {
		if resolved, ok := b.resolve(daysInMonth, v); ok && resolved == day {
			return false
		}
	}
	return true
}

func (b *byMonthDay) Expand(out *InstanceSet, instance Instance, start Instance) {
	daysInMonth := b.calendar.DaysInMonth(instance.Year(), instance.Month())
	for _, v := range b.days {
		day, ok := b.resolve(daysInMonth, v)
		if !ok {
			continue
		}
		out.Append(instance.WithDay(day))
	}
}
