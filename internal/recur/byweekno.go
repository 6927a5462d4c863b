package recur

// byWeekNo implements the BYWEEKNO stage (spec.md §4.6). It is only valid
// with a YEARLY base frequency and always expands: it sets each candidate
// to the week-start day of the configured ISO week, leaving weekday
// refinement to the downstream BYDAY stage.
type byWeekNo struct {
	calendar  CalendarMetrics
	weeks     []int
	weekStart Weekday
}

// NewByWeekNo builds the BYWEEKNO stage.
func NewByWeekNo(upstream RuleIterator, calendar CalendarMetrics, rule ParsedRule, opts Options) *ByFilter {
	ops := &byWeekNo{calendar: calendar, weeks: sortedInts(rule.ByWeekNo), weekStart: rule.WeekStart}
	return NewByFilter("BYWEEKNO", upstream, ops, rule.Start, true, opts)
}

// weeksInYear returns the number of ISO-style weeks in year for the given
// week-start day, anchored on December 28th which always falls in the
// year's final week under the minimum-4-days rule.
func (b *byWeekNo) weeksInYear(year int) int {
	return b.calendar.WeekOfYear(year, 11, 28, b.weekStart)
}

func (b *byWeekNo) Filter(instance Instance) bool {
	// BYWEEKNO is only ever constructed in EXPAND mode per spec.md §4.6.
	return false
}

func (b *byWeekNo) Expand(out *InstanceSet, instance Instance, start Instance) {
	year := instance.Year()
	weeksThisYear := b.weeksInYear(year)
	for _, w := range b.weeks {
		week := w
		if week < 0 {
			week = weeksThisYear + week + 1
		}
		if week < 1 || week > weeksThisYear {
			continue
		}
		yearDay := weekWeekdayYearDay(b.calendar, year, week, b.weekStart, b.weekStart)
		y, m, d := normalizeYearDay(b.calendar, year, yearDay)
		out.Append(instance.WithYear(y).WithMonth(m).WithDay(d))
	}
}
