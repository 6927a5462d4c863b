package recur

// Options configures a Pipeline's construction: the calendar system its
// stages consult and the safety bounds that guard against over-constrained
// rules, the way EngineConfig layers tunables over the teacher's Engine.
type Options struct {
	// Calendar is the calendar-math collaborator every stage consults.
	Calendar CalendarMetrics
	// MaxEmptySets bounds how many empty batches a stage will pull from
	// upstream before giving up on a rule as over-constrained.
	MaxEmptySets int
	// MaxEmptyInstances bounds how many filtered-out instances a LIMIT-mode
	// stage will pull from upstream in Next() before giving up.
	MaxEmptyInstances int
}

// DefaultOptions uses the Gregorian calendar and the bounds ByFilter.java
// hard-codes (1000/1000).
var DefaultOptions = Options{
	Calendar:          Gregorian{},
	MaxEmptySets:      1000,
	MaxEmptyInstances: 1000,
}

func (o Options) withDefaults() Options {
	if o.Calendar == nil {
		o.Calendar = DefaultOptions.Calendar
	}
	if o.MaxEmptySets <= 0 {
		o.MaxEmptySets = DefaultOptions.MaxEmptySets
	}
	if o.MaxEmptyInstances <= 0 {
		o.MaxEmptyInstances = DefaultOptions.MaxEmptyInstances
	}
	return o
}
