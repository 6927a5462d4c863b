package rrule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, value string, dtstart time.Time) Rule {
	t.Helper()
	r, err := ParseRRULE(value, dtstart)
	require.NoError(t, err)
	return r
}

func TestRuleSet_Expand_CountLimitsAcrossFullRange(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	rule := mustParse(t, "FREQ=DAILY;COUNT=3", dtstart)
	rs := NewRuleSet(dtstart, rule, nil, nil)

	got, err := rs.Expand(dtstart, dtstart.AddDate(1, 0, 0))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, dtstart, got[0])
	assert.Equal(t, dtstart.AddDate(0, 0, 2), got[2])
}

func TestRuleSet_Expand_RangeNarrowerThanCount(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	rule := mustParse(t, "FREQ=DAILY;COUNT=10", dtstart)
	rs := NewRuleSet(dtstart, rule, nil, nil)

	got, err := rs.Expand(dtstart.AddDate(0, 0, 1), dtstart.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{dtstart.AddDate(0, 0, 1), dtstart.AddDate(0, 0, 2)}, got)
}

func TestRuleSet_Expand_ExdateExcludesOccurrence(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	rule := mustParse(t, "FREQ=DAILY;COUNT=3", dtstart)
	excluded := dtstart.AddDate(0, 0, 1)
	rs := NewRuleSet(dtstart, rule, nil, []time.Time{excluded})

	got, err := rs.Expand(dtstart, dtstart.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{dtstart, dtstart.AddDate(0, 0, 2)}, got)
}

func TestRuleSet_Expand_RdateMergesAndDeduplicates(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	rule := mustParse(t, "FREQ=DAILY;COUNT=2", dtstart)
	extra := dtstart.AddDate(0, 0, 10)
	duplicate := dtstart.AddDate(0, 0, 1) // already produced by the rule itself
	rs := NewRuleSet(dtstart, rule, []time.Time{extra, duplicate}, nil)

	got, err := rs.Expand(dtstart, dtstart.AddDate(0, 0, 30))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{dtstart, duplicate, extra}, got)
}

func TestRuleSet_Expand_UntilStopsEarly(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rule := mustParse(t, "FREQ=DAILY;UNTIL=20240103T000000Z", dtstart)
	rs := NewRuleSet(dtstart, rule, nil, nil)

	got, err := rs.Expand(dtstart, dtstart.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{dtstart, dtstart.AddDate(0, 0, 1), dtstart.AddDate(0, 0, 2)}, got)
}

func TestRuleSet_Expand_OverConstrainedRulePropagatesError(t *testing.T) {
	dtstart := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	rule := mustParse(t, "FREQ=MONTHLY;BYMONTH=2;BYMONTHDAY=31", dtstart)
	rs := NewRuleSet(dtstart, rule, nil, nil)

	_, err := rs.Expand(dtstart, dtstart.AddDate(10, 0, 0))
	require.Error(t, err)
}

func TestExpansionCache_CachesResults(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rule := mustParse(t, "FREQ=DAILY;COUNT=5", dtstart)
	rs := NewRuleSet(dtstart, rule, nil, nil)

	cache := NewExpansionCache(CacheConfig{TTL: time.Minute, MaxEntries: 10, CleanupInterval: time.Hour})
	defer cache.Close()

	rangeStart, rangeEnd := dtstart, dtstart.AddDate(0, 1, 0)

	first, err := CachedExpand(cache, rs, rangeStart, rangeEnd)
	require.NoError(t, err)

	cached, ok := cache.Get(rs.ID, rangeStart, rangeEnd)
	require.True(t, ok)
	assert.Equal(t, first, cached)

	second, err := CachedExpand(cache, rs, rangeStart, rangeEnd)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
