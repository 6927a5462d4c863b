package recur

// Instance is a single candidate occurrence packed into a 64-bit integer.
// Fields are laid out most-significant-first (year, month, day, hour,
// minute, second) so that plain integer comparison of two Instances with
// the same tag agrees with chronological order. The low bits are reserved
// for an ordering tag (see WithTag); SOURCE carries it forward unchanged,
// and no stage in this package sets it.
type Instance int64

const (
	tagBits = 20
	secBits = 6
	minBits = 6
	hourBits = 5
	dayBits = 5
	monthBits = 4
	yearBits = 18

	tagShift   = 0
	secShift   = tagShift + tagBits
	minShift   = secShift + secBits
	hourShift  = minShift + minBits
	dayShift   = hourShift + hourBits
	monthShift = dayShift + dayBits
	yearShift  = monthShift + monthBits

	tagMask   = int64(1)<<tagBits - 1
	secMask   = int64(1)<<secBits - 1
	minMask   = int64(1)<<minBits - 1
	hourMask  = int64(1)<<hourBits - 1
	dayMask   = int64(1)<<dayBits - 1
	monthMask = int64(1)<<monthBits - 1
	yearMask  = int64(1)<<yearBits - 1

	// yearClearMask is equivalent to yearMask<<yearShift (all bits from
	// yearShift through bit 63 set), expressed via complement so the
	// constant fits in int64 without overflowing at compile time, since
	// yearShift+yearBits == 64 places the top bit at the sign bit.
	yearClearMask = ^(int64(1)<<yearShift - 1)
)

// CalendarDate is the plain-field record MakeFast reads, mirroring the
// original's use of a mutable Calendar scratch object as a packing source.
type CalendarDate struct {
	Year, Month, Day, Hour, Minute, Second int
}

// MakeInstance packs the given fields. Month is 0-based (January == 0), as
// throughout this package. Out-of-range inputs produce undefined packed
// values; callers must range-check before calling.
func MakeInstance(year, month, day, hour, minute, second int) Instance {
	return Instance(
		int64(year)&yearMask<<yearShift |
			int64(month)&monthMask<<monthShift |
			int64(day)&dayMask<<dayShift |
			int64(hour)&hourMask<<hourShift |
			int64(minute)&minMask<<minShift |
			int64(second)&secMask<<secShift,
	)
}

// MakeInstanceFast packs a CalendarDate identically to MakeInstance.
func MakeInstanceFast(d CalendarDate) Instance {
	return MakeInstance(d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second)
}

func (i Instance) Year() int   { return int(int64(i) >> yearShift & yearMask) }
func (i Instance) Month() int  { return int(int64(i) >> monthShift & monthMask) }
func (i Instance) Day() int    { return int(int64(i) >> dayShift & dayMask) }
func (i Instance) Hour() int   { return int(int64(i) >> hourShift & hourMask) }
func (i Instance) Minute() int { return int(int64(i) >> minShift & minMask) }
func (i Instance) Second() int { return int(int64(i) >> secShift & secMask) }
func (i Instance) Tag() int    { return int(int64(i) >> tagShift & tagMask) }

// WithDay returns a copy with the day-of-month field replaced.
func (i Instance) WithDay(day int) Instance {
	return Instance(int64(i)&^(dayMask<<dayShift) | int64(day)&dayMask<<dayShift)
}

// WithMonth returns a copy with the month field replaced.
func (i Instance) WithMonth(month int) Instance {
	return Instance(int64(i)&^(monthMask<<monthShift) | int64(month)&monthMask<<monthShift)
}

// WithHour returns a copy with the hour field replaced.
func (i Instance) WithHour(hour int) Instance {
	return Instance(int64(i)&^(hourMask<<hourShift) | int64(hour)&hourMask<<hourShift)
}

// WithMinute returns a copy with the minute field replaced.
func (i Instance) WithMinute(minute int) Instance {
	return Instance(int64(i)&^(minMask<<minShift) | int64(minute)&minMask<<minShift)
}

// WithSecond returns a copy with the second field replaced.
func (i Instance) WithSecond(second int) Instance {
	return Instance(int64(i)&^(secMask<<secShift) | int64(second)&secMask<<secShift)
}

// WithYear returns a copy with the year field replaced.
func (i Instance) WithYear(year int) Instance {
	return Instance(int64(i)&^yearClearMask | int64(year)&yearMask<<yearShift)
}

// WithTag returns a copy with the ordering tag replaced. BYSETPOS selects
// by sorted position and does not use the tag.
func (i Instance) WithTag(tag int) Instance {
	return Instance(int64(i)&^(tagMask<<tagShift) | int64(tag)&tagMask<<tagShift)
}

// Date returns the CalendarDate view of the instance.
func (i Instance) Date() CalendarDate {
	return CalendarDate{
		Year:   i.Year(),
		Month:  i.Month(),
		Day:    i.Day(),
		Hour:   i.Hour(),
		Minute: i.Minute(),
		Second: i.Second(),
	}
}
