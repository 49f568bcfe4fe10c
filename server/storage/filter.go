package storage

import (
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/nimbuscal/caldav/server/recurrence"
)

// TextMatch describes a <text‑match> constraint.
type TextMatch struct {
	Collation string // "i;unicode-casemap", etc.
	MatchType string // "equals", "contains", …
	Negate    bool   // true if negate-condition="yes"
	Value     string // text to match
}

// ParamFilter describes a <param-filter> inside a prop-filter.
type ParamFilter struct {
	Name         string     // e.g. "LANGUAGE", "PARTSTAT"
	IsNotDefined bool       // <is-not-defined/>
	TextMatch    *TextMatch // optional
}

// PropFilter describes a <prop‑filter> inside a comp-filter.
type PropFilter struct {
	Name         string        // e.g. "SUMMARY", "UID"
	IsNotDefined bool          // <is-not-defined/>
	TextMatch    *TextMatch    // optional
	ParamFilters []ParamFilter // zero or more <param-filter>
	Test         string        // "anyof" (default) or "allof"
}

// TimeRange describes a <time‑range> in a comp-filter.
type TimeRange struct {
	Start *time.Time
	End   *time.Time
}

// Filter is now your one‑and‑only node type.
// It can represent a comp-filter, time-range, or prop-filters
type Filter struct {
	Component    string       // Name of component (e.g. "VCALENDAR", "VEVENT")
	IsNotDefined bool         // <is-not-defined/>
	TimeRange    *TimeRange   // optional <time-range>
	PropFilters  []PropFilter // zero or more <prop-filter>
	Children     []Filter     // nested <comp-filter>
	Test         string       // "anyof" (default) or "allof"
}

// Validate reports whether obj satisfies the CalDAV comp-filter tree
// rooted at f, per RFC 4791 §9.7. A nil or component-less obj only
// satisfies a filter asserting <is-not-defined/>.
func (f Filter) Validate(obj *CalendarObject) bool {
	var comps []*ical.Component
	if obj != nil {
		comps = obj.Component
	}
	return f.validateAgainst(comps)
}

func (f Filter) validateAgainst(comps []*ical.Component) bool {
	matches := f.matchingComponents(comps)
	if f.IsNotDefined {
		return len(matches) == 0
	}
	for _, c := range matches {
		if f.validateComponent(c) {
			return true
		}
	}
	return false
}

func (f Filter) matchingComponents(comps []*ical.Component) []*ical.Component {
	var out []*ical.Component
	for _, c := range comps {
		if c != nil && (f.Component == "" || c.Name == f.Component) {
			out = append(out, c)
		}
	}
	return out
}

func (f Filter) validateComponent(c *ical.Component) bool {
	if f.TimeRange != nil && !validateTimeRange(c, f.TimeRange) {
		return false
	}
	if len(f.PropFilters) > 0 && !combineFilters(len(f.PropFilters), f.Test, func(i int) bool {
		return validatePropFilter(c, f.PropFilters[i])
	}) {
		return false
	}
	if len(f.Children) > 0 && !combineFilters(len(f.Children), f.Test, func(i int) bool {
		return f.Children[i].validateAgainst(c.Children)
	}) {
		return false
	}
	return true
}

// combineFilters applies test ("anyof", the default, or "allof") over n
// indexed checks without building an intermediate slice.
func combineFilters(n int, test string, check func(i int) bool) bool {
	if test == "allof" {
		for i := 0; i < n; i++ {
			if !check(i) {
				return false
			}
		}
		return true
	}
	for i := 0; i < n; i++ {
		if check(i) {
			return true
		}
	}
	return false
}

// validatePropFilter evaluates a single <prop-filter> against c. With no
// TextMatch and no ParamFilters, it is a bare existence check.
func validatePropFilter(c *ical.Component, pf PropFilter) bool {
	instances := c.Props[pf.Name]
	if pf.IsNotDefined {
		return len(instances) == 0
	}
	if len(instances) == 0 {
		return false
	}
	if pf.TextMatch != nil {
		matched := false
		for _, p := range instances {
			if validateTextMatch(p.Value, pf.TextMatch) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if len(pf.ParamFilters) == 0 {
		return true
	}
	for _, p := range instances {
		if combineFilters(len(pf.ParamFilters), pf.Test, func(i int) bool {
			return validateParamFilter(p, pf.ParamFilters[i])
		}) {
			return true
		}
	}
	return false
}

func validateParamFilter(p ical.Prop, pf ParamFilter) bool {
	val := p.Params.Get(pf.Name)
	if pf.IsNotDefined {
		return val == ""
	}
	if val == "" {
		return false
	}
	if pf.TextMatch != nil {
		return validateTextMatch(val, pf.TextMatch)
	}
	return true
}

// validateTextMatch implements the <text-match> comparisons CalDAV
// defines on top of RFC 4790 collations; only the "i;ascii-casemap" and
// "i;unicode-casemap" case-insensitive forms are recognized, matching
// the handful of collations real clients send.
func validateTextMatch(value string, tm *TextMatch) bool {
	v, target := value, tm.Value
	switch strings.ToLower(tm.Collation) {
	case "i;ascii-casemap", "i;unicode-casemap":
		v = strings.ToLower(v)
		target = strings.ToLower(target)
	}

	var matched bool
	switch tm.MatchType {
	case "equals":
		matched = v == target
	case "starts-with":
		matched = strings.HasPrefix(v, target)
	case "ends-with":
		matched = strings.HasSuffix(v, target)
	default: // "contains" is the CalDAV default match-type
		matched = strings.Contains(v, target)
	}

	if tm.Negate {
		return !matched
	}
	return matched
}

// validateTimeRange checks c's effective start/end against tr, expanding
// RRULE/RDATE occurrences via the recurrence engine when the component
// recurs so a time-range filter on a recurring master matches any
// occurrence, not just the first.
func validateTimeRange(c *ical.Component, tr *TimeRange) bool {
	start, end, hasTime := recurrence.ExtractBasicTimeInfoFromComponent(c)
	if !hasTime {
		return false
	}

	info := recurrence.ExtractRecurrenceInfoFromComponent(c)
	if info.RRULE != "" || len(info.RDATE) > 0 {
		rangeStart := start
		if tr.Start != nil {
			rangeStart = *tr.Start
		}
		rangeEnd := end.AddDate(100, 0, 0) // effectively unbounded
		if tr.End != nil {
			rangeEnd = *tr.End
		}
		engine := recurrence.NewEngineWithoutCache()
		defer engine.Close()
		has, err := engine.HasOccurrenceInRange(start, end, info, rangeStart, rangeEnd)
		if err != nil {
			return false
		}
		return has
	}

	if tr.Start != nil && end.Before(*tr.Start) {
		return false
	}
	if tr.End != nil && start.After(*tr.End) {
		return false
	}
	return true
}
