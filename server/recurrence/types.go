package recurrence

import (
	"time"
)

// Frequency is the recurrence base unit of a Rule.
type Frequency int

const (
	Secondly Frequency = iota
	Minutely
	Hourly
	Daily
	Weekly
	Monthly
	Yearly
)

// Weekday pairs an RFC 5545 weekday (0=Monday..6=Sunday) with an optional
// ordinal, e.g. the "2" in "2SU" or the "-1" in "-1FR". Ordinal is 0 when
// no ordinal was present ("none" in spec terms).
type Weekday struct {
	Day     int
	Ordinal int
}

// TimeOfDay is a wall-clock time used when building a period's time set.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// Rule is the structured, pre-parsed recurrence rule the expander
// consumes. It mirrors the RFC 5545 RRULE field set. Producing one from
// RRULE text is the job of an external rule parser (see ParseRule in
// ical_integration.go), not of this package's core.
type Rule struct {
	Freq     Frequency
	Interval int // default 1, must be >= 1
	Dtstart  time.Time
	Until    time.Time
	HasUntil bool
	Count    int // 0 means unset
	Wkst     int // 0..6, default 0 (Monday)

	BySecond   []int
	ByMinute   []int
	ByHour     []int
	ByMonth    []int
	ByWeekNo   []int
	ByYearDay  []int
	ByMonthDay []int
	ByDay      []Weekday
	BySetPos   []int
}

// clone returns a copy of r that does not alias any of its slices, so the
// expander never mutates the caller's rule.
func (r Rule) clone() Rule {
	out := r
	out.BySecond = append([]int(nil), r.BySecond...)
	out.ByMinute = append([]int(nil), r.ByMinute...)
	out.ByHour = append([]int(nil), r.ByHour...)
	out.ByMonth = append([]int(nil), r.ByMonth...)
	out.ByWeekNo = append([]int(nil), r.ByWeekNo...)
	out.ByYearDay = append([]int(nil), r.ByYearDay...)
	out.ByMonthDay = append([]int(nil), r.ByMonthDay...)
	out.ByDay = append([]Weekday(nil), r.ByDay...)
	out.BySetPos = append([]int(nil), r.BySetPos...)
	return out
}

// RecurrenceInfo contains all recurrence-related information for an event
type RecurrenceInfo struct {
	RRULE        string      // The RRULE string (without "RRULE:" prefix)
	RDATE        []time.Time // Additional recurrence dates
	EXDATE       []time.Time // Exception dates (excluded occurrences)
	RecurrenceID *time.Time  // For exception instances - which occurrence this overrides
}

// TimeOccurrence represents a single occurrence of an event in time
type TimeOccurrence struct {
	Start        time.Time  // Start time of this occurrence
	End          time.Time  // End time of this occurrence
	IsException  bool       // True if this is an exception/override instance
	RecurrenceID *time.Time // If this is an exception, the original occurrence time
}

// ExpansionOptions controls how recurrence expansion behaves
type ExpansionOptions struct {
	MaxOccurrences    int           // Maximum number of occurrences to expand (0 = unlimited)
	MaxTimeSpan       time.Duration // Maximum time span to expand (0 = unlimited)
	IncludeExceptions bool          // Whether to include exception instances in expansion
}

// DefaultExpansionOptions provides sensible defaults for expansion
var DefaultExpansionOptions = ExpansionOptions{
	MaxOccurrences:    1000,                     // Reasonable limit to prevent infinite expansion
	MaxTimeSpan:       365 * 24 * time.Hour * 2, // 2 years
	IncludeExceptions: true,
}
