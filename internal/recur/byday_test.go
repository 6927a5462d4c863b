package recur

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// FREQ=YEARLY;BYDAY=20MO exercises ScopeYearly's positive-position branch:
// the 20th Monday of 2024 is May 13.
func TestByDay_YearlyScopePositivePosition(t *testing.T) {
	rule := ParsedRule{
		Freq:  Yearly,
		ByDay: []WeekdayNum{{Pos: 20, Weekday: Monday}},
		Start: MakeInstance(2024, 0, 1, 0, 0, 0),
	}
	p := NewPipeline(Gregorian{}, rule)
	got := collect(t, p, 1)
	assert.Equal(t, dates([3]int{2024, 4, 13}), got)
}

// FREQ=YEARLY;BYDAY=-1MO exercises ScopeYearly's negative-position branch:
// the last Monday of 2024 is December 30th.
func TestByDay_YearlyScopeNegativePosition(t *testing.T) {
	rule := ParsedRule{
		Freq:  Yearly,
		ByDay: []WeekdayNum{{Pos: -1, Weekday: Monday}},
		Start: MakeInstance(2024, 0, 1, 0, 0, 0),
	}
	p := NewPipeline(Gregorian{}, rule)
	got := collect(t, p, 1)
	assert.Equal(t, dates([3]int{2024, 11, 30}), got)
}

// FREQ=MONTHLY;BYDAY=-2FR exercises ScopeMonthly's negative-position
// branch: the second-to-last Friday of January 2024 is the 19th.
func TestByDay_MonthlyScopeNegativePosition(t *testing.T) {
	rule := ParsedRule{
		Freq:  Monthly,
		ByDay: []WeekdayNum{{Pos: -2, Weekday: Friday}},
		Start: MakeInstance(2024, 0, 1, 0, 0, 0),
	}
	p := NewPipeline(Gregorian{}, rule)
	got := collect(t, p, 1)
	assert.Equal(t, dates([3]int{2024, 0, 19}), got)
}

// FREQ=MONTHLY;BYMONTHDAY=15;BYDAY=MO,TU,WE,TH,FR routes BYDAY through its
// Filter (LIMIT mode, since BYMONTHDAY is present) rather than Expand.
// BYMONTHDAY is itself in LIMIT mode here (BYDAY is present), so the seeds
// must already fall on the 15th.
func TestByDay_FilterModeWithByMonthDay(t *testing.T) {
	rule := ParsedRule{
		Freq:       Monthly,
		ByMonthDay: []int{15},
		ByDay:      []WeekdayNum{{Weekday: Monday}, {Weekday: Tuesday}, {Weekday: Wednesday}, {Weekday: Thursday}, {Weekday: Friday}},
		Start:      MakeInstance(2024, 0, 15, 0, 0, 0),
	}
	p := NewPipeline(Gregorian{}, rule)
	got := collect(t, p, 2)
	// Jan 15, 2024 is a Monday (weekday) -> kept.
	// Feb 15, 2024 is a Thursday (weekday) -> kept.
	assert.Equal(t, dates([3]int{2024, 0, 15}, [3]int{2024, 1, 15}), got)
}
