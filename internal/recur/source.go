package recur

import "time"

// Source is the SOURCE stage: given a base frequency and a start instant,
// it produces an unbounded ascending sequence of seeds, one per frequency
// period, advanced by the rule's interval (spec.md §4.3). A batch pull
// returns a singleton set containing the next seed.
type Source struct {
	calendar CalendarMetrics
	freq     Frequency
	interval int

	current Instance
	began   bool

	set *InstanceSet
}

// NewSource builds the SOURCE stage for rule, seeded at rule.Start.
func NewSource(calendar CalendarMetrics, rule ParsedRule) *Source {
	return &Source{
		calendar: calendar,
		freq:     rule.Freq,
		interval: rule.interval(),
		current:  rule.Start,
		set:      NewInstanceSet(),
	}
}

// Next returns the next seed instance.
func (s *Source) Next() (Instance, error) {
	if !s.began {
		s.began = true
		return s.current, nil
	}
	s.current = s.advance(s.current)
	return s.current, nil
}

// NextSet returns a singleton set containing the next seed.
func (s *Source) NextSet() (*InstanceSet, error) {
	next, err := s.Next()
	if err != nil {
		return nil, err
	}
	s.set.Clear()
	s.set.Append(next)
	s.set.Sort()
	return s.set, nil
}

func (s *Source) advance(i Instance) Instance {
	switch s.freq {
	case Yearly:
		return i.WithYear(i.Year() + s.interval)

	case Monthly:
		year, month := i.Year(), i.Month()
		day := i.Day()
		for {
			total := year*12 + month + s.interval
			year, month = total/12, total%12
			if month < 0 {
				month += 12
				year--
			}
			if day <= s.calendar.DaysInMonth(year, month) {
				return i.WithYear(year).WithMonth(month)
			}
			// The start day-of-month doesn't exist in the target month
			// (e.g. Jan 31 -> Feb): skip it per RFC 5545, do not clamp.
		}

	case Weekly:
		return s.addDays(i, 7*s.interval)

	case Daily:
		return s.addDays(i, s.interval)

	case Hourly:
		return s.addDuration(i, time.Duration(s.interval)*time.Hour)

	case Minutely:
		return s.addDuration(i, time.Duration(s.interval)*time.Minute)

	case Secondly:
		return s.addDuration(i, time.Duration(s.interval)*time.Second)
	}
	return i
}

func (s *Source) addDays(i Instance, days int) Instance {
	t := time.Date(i.Year(), time.Month(i.Month()+1), i.Day(), i.Hour(), i.Minute(), i.Second(), 0, time.UTC)
	t = t.AddDate(0, 0, days)
	return fromTime(t, i)
}

func (s *Source) addDuration(i Instance, d time.Duration) Instance {
	t := time.Date(i.Year(), time.Month(i.Month()+1), i.Day(), i.Hour(), i.Minute(), i.Second(), 0, time.UTC)
	t = t.Add(d)
	return fromTime(t, i)
}

// fromTime rebuilds an Instance from a time.Time, preserving orig's tag.
func fromTime(t time.Time, orig Instance) Instance {
	return MakeInstance(t.Year(), int(t.Month())-1, t.Day(), t.Hour(), t.Minute(), t.Second()).WithTag(orig.Tag())
}
