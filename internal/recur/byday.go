package recur

// byDay implements the BYDAY stage (spec.md §4.9). This is the most
// involved stage: which of four scope-specific algorithms it runs is fixed
// at construction from frequency and sibling BY-parts, matching
// ByDayFilter.java almost line for line, including the flagged possibly-
// buggy off-by-one in the LIMIT branch and the ad-hoc year-boundary
// heuristic in the WEEKLY expand branch (see DESIGN.md / SPEC_FULL.md,
// "Open questions" — these are reproduced deliberately, not fixed).
type byDay struct {
	calendar  CalendarMetrics
	byDay     []WeekdayNum
	scope     Scope
	weekStart Weekday

	hasPositions bool
	packedDays   []int
	months       []int // non-nil only for WEEKLY_AND_MONTHLY with BYMONTH
}

// NewByDay builds the BYDAY stage.
func NewByDay(upstream RuleIterator, calendar CalendarMetrics, rule ParsedRule, opts Options) *ByFilter {
	expand := ((rule.Freq == Yearly || rule.Freq == Monthly) && !rule.HasByYearDay() && !rule.HasByMonthDay()) ||
		rule.Freq == Weekly

	var scope Scope
	weeklyish := rule.HasByWeekNo() || rule.Freq == Weekly
	monthlyish := rule.HasByMonth() || rule.Freq == Monthly
	switch {
	case weeklyish && monthlyish:
		scope = ScopeWeeklyAndMonthly
	case weeklyish:
		scope = ScopeWeekly
	case monthlyish:
		scope = ScopeMonthly
	default:
		scope = ScopeYearly
	}

	hasPositions := false
	packedDays := make([]int, len(rule.ByDay))
	for idx, w := range rule.ByDay {
		if w.Pos != 0 {
			hasPositions = true
		}
		packedDays[idx] = packWeekday(w.Pos, w.Weekday)
	}

	var months []int
	if scope == ScopeWeeklyAndMonthly && rule.HasByMonth() {
		months = sortedInts(rule.ByMonth)
	}

	ops := &byDay{
		calendar:     calendar,
		byDay:        rule.ByDay,
		scope:        scope,
		weekStart:    rule.WeekStart,
		hasPositions: hasPositions,
		packedDays:   packedDays,
		months:       months,
	}
	return NewByFilter("BYDAY", upstream, ops, rule.Start, expand, opts)
}

// Filter is used when FREQ <= DAILY or a BYMONTHDAY/BYYEARDAY part is
// present, so month filtering has already happened upstream.
func (b *byDay) Filter(instance Instance) bool {
	year, month, dayOfMonth := instance.Year(), instance.Month(), instance.Day()
	dayOfWeek := b.calendar.DayOfWeek(year, month, dayOfMonth)

	if !b.hasPositions {
		return linearSearch(b.packedDays, packWeekday(0, dayOfWeek)) < 0
	}

	switch b.scope {
	case ScopeWeekly:
		// Positional days are meaningless in a pure weekly scope; ignore
		// the position and match on weekday alone.
		return linearSearch(b.packedDays, packWeekday(0, dayOfWeek)) < 0

	case ScopeWeeklyAndMonthly, ScopeMonthly:
		daysInMonth := b.calendar.DaysInMonth(year, month)
		nthDay := (dayOfMonth-1)/7 + 1
		lastNthDay := (dayOfMonth-daysInMonth)/7 - 1
		return (nthDay <= 0 || linearSearch(b.packedDays, packWeekday(nthDay, dayOfWeek)) < 0) &&
			(lastNthDay >= 0 || linearSearch(b.packedDays, packWeekday(lastNthDay, dayOfWeek)) < 0)

	case ScopeYearly:
		yearDay := b.calendar.DayOfYear(year, month, dayOfMonth)
		daysInYear := b.calendar.DaysInYear(year)
		nthDay := (yearDay-1)/7 + 1
		lastNthDay := (yearDay-daysInYear)/7 - 1
		return (nthDay <= 0 || linearSearch(b.packedDays, packWeekday(nthDay, dayOfWeek)) < 0) &&
			(lastNthDay >= 0 || linearSearch(b.packedDays, packWeekday(lastNthDay, dayOfWeek)) < 0)
	}
	return false
}

func (b *byDay) Expand(out *InstanceSet, instance Instance, start Instance) {
	year, month, dayOfMonth := instance.Year(), instance.Month(), instance.Day()
	hour, minute, second := instance.Hour(), instance.Minute(), instance.Second()
	weekOfYear := b.calendar.WeekOfYear(year, month, dayOfMonth, b.weekStart)

	for _, day := range b.byDay {
		switch b.scope {
		case ScopeWeekly:
			if day.Pos != 0 && day.Pos != 1 {
				continue // ignore any positional days
			}
			targetYear := year
			if weekOfYear == 1 && month > 0 {
				// this day of calendar week 1 belongs to the next year
				targetYear = year + 1
			} else if weekOfYear >= 10 && month == 0 {
				// this day of the last calendar week belongs to the
				// previous year
				targetYear = year - 1
			}
			yearDay := weekWeekdayYearDay(b.calendar, targetYear, weekOfYear, day.Weekday, b.weekStart)
			y, m, d := normalizeYearDay(b.calendar, targetYear, yearDay)
			out.Append(MakeInstance(y, m, d, hour, minute, second))

		case ScopeWeeklyAndMonthly:
			if day.Pos != 0 && day.Pos != 1 {
				continue // ignore any positional days
			}
			yearDay := weekWeekdayYearDay(b.calendar, year, weekOfYear, day.Weekday, b.weekStart)
			y, m, d := normalizeYearDay(b.calendar, year, yearDay)
			if b.months != nil {
				// weekly with a BYMONTH filter, or monthly/yearly with
				// BYMONTH and BYWEEKNO: filter by month since weeks may
				// overlap month boundaries.
				if containsInt(b.months, m+1) {
					out.Append(MakeInstance(y, m, d, hour, minute, second))
				}
			} else if m == month {
				// monthly with BYWEEKNO: keep only the original month.
				out.Append(MakeInstance(y, m, d, hour, minute, second))
			}

		case ScopeMonthly:
			weekDayOfFirstInMonth := b.calendar.DayOfWeek(year, month, 1)
			monthDays := b.calendar.DaysInMonth(year, month)
			firstDay := int((day.Weekday-weekDayOfFirstInMonth+7)%7) + 1

			if day.Pos == 0 {
				for dom := firstDay; dom <= monthDays; dom += 7 {
					out.Append(instance.WithDay(dom))
				}
			} else {
				maxDays := 1 + (monthDays-firstDay)/7
				if (day.Pos > 0 && day.Pos <= maxDays) || (day.Pos < 0 && day.Pos+maxDays+1 > 0) {
					pos := day.Pos - 1
					if day.Pos < 0 {
						pos = day.Pos + maxDays
					}
					out.Append(instance.WithDay(firstDay + pos*7))
				}
			}

		case ScopeYearly:
			firstWeekdayOfYear := int((day.Weekday-b.calendar.WeekdayOfFirstYearDay(year)+7)%7) + 1
			yearDays := b.calendar.DaysInYear(year)

			if day.Pos == 0 {
				for yd := firstWeekdayOfYear; yd <= yearDays; yd += 7 {
					m, d := b.calendar.MonthAndDayOfYearDay(year, yd)
					out.Append(MakeInstance(year, m, d, hour, minute, second))
				}
			} else if day.Pos > 0 {
				yd := firstWeekdayOfYear + (day.Pos-1)*7
				if yd <= yearDays {
					m, d := b.calendar.MonthAndDayOfYearDay(year, yd)
					out.Append(MakeInstance(year, m, d, hour, minute, second))
				}
			} else {
				lastWeekdayOfYear := firstWeekdayOfYear + yearDays - yearDays%7
				if lastWeekdayOfYear > yearDays {
					lastWeekdayOfYear -= 7
				}
				yd := lastWeekdayOfYear + (day.Pos+1)*7
				if yd > 0 {
					m, d := b.calendar.MonthAndDayOfYearDay(year, yd)
					out.Append(MakeInstance(year, m, d, hour, minute, second))
				}
			}
		}
	}
}
