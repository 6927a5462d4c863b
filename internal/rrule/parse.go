// Package rrule is the external-collaborator boundary the core pipeline
// package (internal/recur) never touches directly: it turns an RRULE
// property value and a DTSTART into a recur.ParsedRule, and turns a
// pipeline's output stream into the bounded, deduplicated occurrence lists
// callers actually want.
package rrule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/samber/mo"

	"github.com/cyp0633/rrulecore/internal/recur"
)

// Rule is a parsed RRULE together with the truncation bounds RFC 5545
// keeps outside the expansion algorithm itself.
type Rule struct {
	Core  recur.ParsedRule
	Count mo.Option[int]
	Until mo.Option[time.Time]
}

var weekdayAbbrev = map[string]recur.Weekday{
	"MO": recur.Monday,
	"TU": recur.Tuesday,
	"WE": recur.Wednesday,
	"TH": recur.Thursday,
	"FR": recur.Friday,
	"SA": recur.Saturday,
	"SU": recur.Sunday,
}

var freqByName = map[string]recur.Frequency{
	"YEARLY":   recur.Yearly,
	"MONTHLY":  recur.Monthly,
	"WEEKLY":   recur.Weekly,
	"DAILY":    recur.Daily,
	"HOURLY":   recur.Hourly,
	"MINUTELY": recur.Minutely,
	"SECONDLY": recur.Secondly,
}

// ParseRRULE parses an RRULE value (without the "RRULE:" prefix) anchored
// at dtstart into a Rule. Unknown or malformed parts are reported as
// errors rather than silently dropped, since a parse mistake here would
// otherwise surface as a mysteriously wrong expansion deep in the core.
func ParseRRULE(value string, dtstart time.Time) (Rule, error) {
	rule := Rule{
		Core: recur.ParsedRule{
			Interval:  1,
			WeekStart: recur.Monday,
			Start:     instanceFromTime(dtstart),
		},
	}

	sawFreq := false
	for _, part := range strings.Split(value, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return Rule{}, fmt.Errorf("rrule: malformed part %q", part)
		}
		key, val := strings.ToUpper(kv[0]), kv[1]

		var err error
		switch key {
		case "FREQ":
			freq, ok := freqByName[strings.ToUpper(val)]
			if !ok {
				return Rule{}, fmt.Errorf("rrule: unknown FREQ %q", val)
			}
			rule.Core.Freq = freq
			sawFreq = true
		case "INTERVAL":
			rule.Core.Interval, err = strconv.Atoi(val)
		case "COUNT":
			var n int
			n, err = strconv.Atoi(val)
			if err == nil {
				rule.Count = mo.Some(n)
			}
		case "UNTIL":
			var t time.Time
			t, err = parseUntil(val)
			if err == nil {
				rule.Until = mo.Some(t)
			}
		case "WKST":
			wd, ok := weekdayAbbrev[strings.ToUpper(val)]
			if !ok {
				return Rule{}, fmt.Errorf("rrule: unknown WKST %q", val)
			}
			rule.Core.WeekStart = wd
		case "BYMONTH":
			rule.Core.ByMonth, err = parseIntList(val)
		case "BYWEEKNO":
			rule.Core.ByWeekNo, err = parseIntList(val)
		case "BYYEARDAY":
			rule.Core.ByYearDay, err = parseIntList(val)
		case "BYMONTHDAY":
			rule.Core.ByMonthDay, err = parseIntList(val)
		case "BYHOUR":
			rule.Core.ByHour, err = parseIntList(val)
		case "BYMINUTE":
			rule.Core.ByMinute, err = parseIntList(val)
		case "BYSECOND":
			rule.Core.BySecond, err = parseIntList(val)
		case "BYSETPOS":
			rule.Core.BySetPos, err = parseIntList(val)
		case "BYDAY":
			rule.Core.ByDay, err = parseWeekdayList(val)
		default:
			return Rule{}, fmt.Errorf("rrule: unsupported part %q", key)
		}
		if err != nil {
			return Rule{}, fmt.Errorf("rrule: part %s: %w", key, err)
		}
	}

	if !sawFreq {
		return Rule{}, fmt.Errorf("rrule: missing FREQ")
	}
	if rule.Count.IsPresent() && rule.Until.IsPresent() {
		return Rule{}, fmt.Errorf("rrule: COUNT and UNTIL are mutually exclusive")
	}
	return rule, nil
}

func parseIntList(val string) ([]int, error) {
	parts := strings.Split(val, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseWeekdayList(val string) ([]recur.WeekdayNum, error) {
	parts := strings.Split(val, ",")
	out := make([]recur.WeekdayNum, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) < 2 {
			return nil, fmt.Errorf("invalid BYDAY entry %q", p)
		}
		abbrev := p[len(p)-2:]
		wd, ok := weekdayAbbrev[strings.ToUpper(abbrev)]
		if !ok {
			return nil, fmt.Errorf("invalid BYDAY weekday %q", abbrev)
		}
		pos := 0
		if posStr := strings.TrimSpace(p[:len(p)-2]); posStr != "" {
			n, err := strconv.Atoi(posStr)
			if err != nil {
				return nil, fmt.Errorf("invalid BYDAY position %q: %w", posStr, err)
			}
			pos = n
		}
		out = append(out, recur.WeekdayNum{Pos: pos, Weekday: wd})
	}
	return out, nil
}

func parseUntil(val string) (time.Time, error) {
	if t, err := time.Parse("20060102T150405Z", val); err == nil {
		return t, nil
	}
	if t, err := time.Parse("20060102", val); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("invalid UNTIL value %q", val)
}

func instanceFromTime(t time.Time) recur.Instance {
	return recur.MakeInstance(t.Year(), int(t.Month())-1, t.Day(), t.Hour(), t.Minute(), t.Second())
}

// FromComponent parses the RRULE property (if any) carried by an iCalendar
// component whose DTSTART has already been resolved to dtstart, mirroring
// the extraction shape ExtractRecurrenceInfoFromComponent used, but for the
// single value this package cares about.
func FromComponent(comp *ical.Component, dtstart time.Time) (Rule, bool, error) {
	prop := comp.Props.Get(ical.PropRecurrenceRule)
	if prop == nil || prop.Value == "" {
		return Rule{}, false, nil
	}
	rule, err := ParseRRULE(prop.Value, dtstart)
	if err != nil {
		return Rule{}, false, err
	}
	return rule, true, nil
}
