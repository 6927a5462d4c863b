package recur

// byYearDay implements the BYYEARDAY stage (spec.md §4.7). It expands for
// YEARLY rules with no BYMONTH/BYMONTHDAY, and limits otherwise (also
// tolerated with MONTHLY/WEEKLY per RFC 2445, which RFC 5545 forbids but
// this pipeline accepts).
type byYearDay struct {
	calendar CalendarMetrics
	days     []int
}

// NewByYearDay builds the BYYEARDAY stage.
func NewByYearDay(upstream RuleIterator, calendar CalendarMetrics, rule ParsedRule, opts Options) *ByFilter {
	expand := rule.Freq == Yearly && !rule.HasByMonth() && !rule.HasByMonthDay()
	ops := &byYearDay{calendar: calendar, days: sortedInts(rule.ByYearDay)}
	return NewByFilter("BYYEARDAY", upstream, ops, rule.Start, expand, opts)
}

// resolve converts a (possibly negative) configured day into a 1-based
// year-day for the given year, or returns ok=false if it is out of range
// (including day 366 in a non-leap year).
func (b *byYearDay) resolve(year, v int) (int, bool) {
	if v == 0 || v < -366 || v > 366 {
		return 0, false
	}
	daysInYear := b.calendar.DaysInYear(year)
	yearDay := v
	if v < 0 {
		yearDay = daysInYear + v + 1
	}
	if yearDay < 1 || yearDay > daysInYear {
		return 0, false
	}
	return yearDay, true
}

func (b *byYearDay) Filter(instance Instance) bool {
	year := instance.Year()
	yearDay := b.calendar.DayOfYear(year, instance.Month(), instance.Day())
	for _, v := range b.days {
		if resolved, ok := b.resolve(year, v); ok && resolved == yearDay {
			return false
		}
	}
	return true
}

func (b *byYearDay) Expand(out *InstanceSet, instance Instance, start Instance) {
	year := instance.Year()
	for _, v := range b.days {
		yearDay, ok := b.resolve(year, v)
		if !ok {
			continue
		}
		month, day := b.calendar.MonthAndDayOfYearDay(year, yearDay)
		out.Append(instance.WithMonth(month).WithDay(day))
	}
}
