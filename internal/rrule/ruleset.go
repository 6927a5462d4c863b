package rrule

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cyp0633/rrulecore/internal/recur"
)

// RuleSet is a single RRULE plus its RDATE/EXDATE companions (RFC 5545
// §3.8.5), wrapping one recur.Pipeline. The core package never sees COUNT,
// UNTIL, RDATE or EXDATE: those are this package's job, per the boundary
// SPEC_FULL.md draws around the core.
type RuleSet struct {
	ID uuid.UUID

	dtstart time.Time
	rule    Rule
	rdate   []time.Time
	exdate  map[time.Time]struct{}

	log *logrus.Entry
}

// NewRuleSet builds a RuleSet for the given RRULE anchored at dtstart, with
// optional RDATE/EXDATE companions.
func NewRuleSet(dtstart time.Time, rule Rule, rdate, exdate []time.Time) *RuleSet {
	excluded := make(map[time.Time]struct{}, len(exdate))
	for _, t := range exdate {
		excluded[t.UTC()] = struct{}{}
	}
	id := uuid.New()
	return &RuleSet{
		ID:      id,
		dtstart: dtstart,
		rule:    rule,
		rdate:   rdate,
		exdate:  excluded,
		log:     logrus.WithField("ruleset", id.String()).WithField("component", "rrule"),
	}
}

// Expand returns every occurrence in [rangeStart, rangeEnd), pulling from
// the core pipeline until COUNT/UNTIL/the range closes it off, merging in
// RDATE and dropping EXDATE, then deduplicating and sorting the result.
// This is the one place the core's unbounded stream is made finite.
func (rs *RuleSet) Expand(rangeStart, rangeEnd time.Time) ([]time.Time, error) {
	pipeline := recur.NewPipeline(recur.Gregorian{}, rs.rule.Core)

	seen := make(map[time.Time]struct{})
	var out []time.Time

	addIfNew := func(t time.Time) {
		key := t.UTC()
		if _, excluded := rs.exdate[key]; excluded {
			return
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}

	count := 0
	until, hasUntil := rs.rule.Until.Get()
	maxCount, hasCount := rs.rule.Count.Get()

	for {
		if hasCount && count >= maxCount {
			break
		}
		inst, err := pipeline.Next()
		if err != nil {
			var ruleErr *recur.RuleError
			if errors.As(err, &ruleErr) {
				rs.log.WithError(err).Warn("recurrence expansion gave up: over-constrained rule")
			}
			return nil, err
		}
		count++

		t := timeFromInstance(inst, rs.dtstart.Location())
		if hasUntil && t.After(until) {
			break
		}
		if t.Before(rangeStart) {
			continue
		}
		if !t.Before(rangeEnd) {
			break
		}
		addIfNew(t)
	}

	for _, t := range rs.rdate {
		if !t.Before(rangeStart) && t.Before(rangeEnd) {
			addIfNew(t)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

func timeFromInstance(i recur.Instance, loc *time.Location) time.Time {
	d := i.Date()
	return time.Date(d.Year, time.Month(d.Month+1), d.Day, d.Hour, d.Minute, d.Second, 0, loc)
}
