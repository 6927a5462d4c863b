package recur

// Pipeline is the assembled rule-iterator: SOURCE feeding the canonical
// chain of BYxxx stages in RFC 5545 order, terminating in BYSETPOS when
// present (spec.md §2). It implements RuleIterator itself, so callers pull
// from it exactly as they would from any single stage.
type Pipeline struct {
	head RuleIterator
}

// NewPipeline builds the stage chain for rule using calendar and the
// default safety bounds (ByFilter.java's 1000/1000); a nil calendar falls
// back to Gregorian.
func NewPipeline(calendar CalendarMetrics, rule ParsedRule) *Pipeline {
	opts := DefaultOptions
	opts.Calendar = calendar
	return NewPipelineWithOptions(rule, opts)
}

// NewPipelineWithOptions builds the stage chain for rule against opts. The
// chain is fixed: SOURCE -> BYMONTH -> BYWEEKNO -> BYYEARDAY -> BYMONTHDAY
// -> BYDAY -> BYHOUR -> BYMINUTE -> BYSECOND -> BYSETPOS.
func NewPipelineWithOptions(rule ParsedRule, opts Options) *Pipeline {
	opts = opts.withDefaults()
	calendar := opts.Calendar

	var it RuleIterator = NewSource(calendar, rule)

	if rule.HasByMonth() {
		it = NewByMonth(it, calendar, rule, opts)
	}
	if rule.HasByWeekNo() {
		it = NewByWeekNo(it, calendar, rule, opts)
	}
	if rule.HasByYearDay() {
		it = NewByYearDay(it, calendar, rule, opts)
	}
	if rule.HasByMonthDay() {
		it = NewByMonthDay(it, calendar, rule, opts)
	}
	if rule.HasByDay() {
		it = NewByDay(it, calendar, rule, opts)
	}
	if rule.HasByHour() {
		it = NewByHour(it, rule, opts)
	}
	if rule.HasByMinute() {
		it = NewByMinute(it, rule, opts)
	}
	if rule.HasBySecond() {
		it = NewBySecond(it, rule, opts)
	}
	if rule.HasBySetPos() {
		it = NewBySetPos(it, rule, opts)
	}

	return &Pipeline{head: it}
}

// Next returns the next instance in the ordered, possibly infinite
// sequence the rule describes.
func (p *Pipeline) Next() (Instance, error) {
	return p.head.Next()
}

// NextSet returns the next non-empty ordered batch of instances.
func (p *Pipeline) NextSet() (*InstanceSet, error) {
	return p.head.NextSet()
}
