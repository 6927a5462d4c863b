package recur

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGregorian_DaysInMonth(t *testing.T) {
	g := Gregorian{}
	assert.Equal(t, 29, g.DaysInMonth(2024, 1)) // leap Feb
	assert.Equal(t, 28, g.DaysInMonth(2023, 1))
	assert.Equal(t, 31, g.DaysInMonth(2023, 0))
	assert.Equal(t, 30, g.DaysInMonth(2023, 3))
}

func TestGregorian_DaysInYear(t *testing.T) {
	g := Gregorian{}
	assert.Equal(t, 366, g.DaysInYear(2024))
	assert.Equal(t, 365, g.DaysInYear(2023))
	assert.Equal(t, 365, g.DaysInYear(1900))
	assert.Equal(t, 366, g.DaysInYear(2000))
}

func TestGregorian_DayOfWeek(t *testing.T) {
	g := Gregorian{}
	// 2024-01-01 is a Monday.
	assert.Equal(t, Monday, g.DayOfWeek(2024, 0, 1))
	assert.Equal(t, Sunday, g.DayOfWeek(2023, 0, 1))
}

func TestGregorian_DayOfYear(t *testing.T) {
	g := Gregorian{}
	assert.Equal(t, 1, g.DayOfYear(2024, 0, 1))
	assert.Equal(t, 366, g.DayOfYear(2024, 11, 31))
	assert.Equal(t, 365, g.DayOfYear(2023, 11, 31))
}

func TestGregorian_MonthAndDayOfYearDay(t *testing.T) {
	g := Gregorian{}
	m, d := g.MonthAndDayOfYearDay(2024, 1)
	assert.Equal(t, 0, m)
	assert.Equal(t, 1, d)

	m, d = g.MonthAndDayOfYearDay(2024, 366)
	assert.Equal(t, 11, m)
	assert.Equal(t, 31, d)

	m, d = g.MonthAndDayOfYearDay(2023, 32)
	assert.Equal(t, 1, m)
	assert.Equal(t, 1, d)
}

func TestGregorian_WeekOfYear_ISOKnownValues(t *testing.T) {
	g := Gregorian{}
	// 2023-01-01 is a Sunday: only 1 day in that week falls in 2023, so
	// ISO week 1 of 2023 starts 2023-01-02.
	assert.Equal(t, 1, g.WeekOfYear(2023, 0, 2, Monday))
	// 2024-01-01 is a Monday: week 1 starts on it.
	assert.Equal(t, 1, g.WeekOfYear(2024, 0, 1, Monday))
	// 2024-12-30 is a Monday whose week has 5 days (Jan 1-5) in 2025: it
	// belongs to ISO week 1 of 2025, not the last week of 2024.
	assert.Equal(t, 1, g.WeekOfYear(2024, 11, 30, Monday))
}

func TestNormalizeYearDay_RollsAcrossYearBoundary(t *testing.T) {
	g := Gregorian{}
	year, month, day := normalizeYearDay(g, 2024, -1)
	assert.Equal(t, 2023, year)
	assert.Equal(t, 11, month)
	assert.Equal(t, 30, day)

	year, month, day = normalizeYearDay(g, 2023, 366)
	assert.Equal(t, 2024, year)
	assert.Equal(t, 0, month)
	assert.Equal(t, 1, day)
}
