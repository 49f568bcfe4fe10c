package recurrence

import (
	"fmt"
	"time"
)

// Engine provides unified recurrence expansion and validation logic on
// top of the package's Expand/Transform primitives, plus the result
// cache from cache.go.
type Engine struct {
	cache  *RecurrenceCache
	config EngineConfig
}

// NewEngine creates a recurrence engine using DefaultEngineConfig.
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultEngineConfig)
}

// NewEngineWithoutCache creates a recurrence engine with caching disabled.
func NewEngineWithoutCache() *Engine {
	return NewEngineWithConfig(DisabledCacheConfig)
}

// Close releases the engine's cache resources, if any.
func (e *Engine) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
}

// HasOccurrenceInRange checks if a recurring event has any occurrence in
// the time range. It is a performance-optimized method that avoids a
// full expansion when possible.
func (e *Engine) HasOccurrenceInRange(
	masterStart, masterEnd time.Time,
	recurrence RecurrenceInfo,
	rangeStart, rangeEnd time.Time,
) (bool, error) {
	if e.cache != nil {
		if cached, ok := e.cache.Get("HasOccurrenceInRange", masterStart, masterEnd, recurrence, rangeStart, rangeEnd); ok {
			if result, ok := cached.(bool); ok {
				return result, nil
			}
		}
	}

	result, err := e.computeHasOccurrenceInRange(masterStart, masterEnd, recurrence, rangeStart, rangeEnd)
	if err != nil {
		return false, err
	}

	if e.cache != nil {
		e.cache.Set("HasOccurrenceInRange", masterStart, masterEnd, recurrence, rangeStart, rangeEnd, result)
	}
	return result, nil
}

func (e *Engine) computeHasOccurrenceInRange(
	masterStart, masterEnd time.Time,
	recurrence RecurrenceInfo,
	rangeStart, rangeEnd time.Time,
) (bool, error) {
	// Fast path: the master instance itself, subject to EXDATE.
	if !masterStart.After(rangeEnd) && !masterEnd.Before(rangeStart) {
		if !e.isExcluded(masterStart, recurrence.EXDATE) {
			return true, nil
		}
	}

	if recurrence.RRULE != "" {
		has, err := e.hasRRuleOccurrenceInRange(masterStart, recurrence.RRULE, recurrence.EXDATE, rangeStart, rangeEnd)
		if err != nil {
			return false, fmt.Errorf("failed to check RRULE occurrences: %w", err)
		}
		if has {
			return true, nil
		}
	}

	duration := masterEnd.Sub(masterStart)
	for _, rdate := range recurrence.RDATE {
		rdateEnd := rdate.Add(duration)
		if !rdate.After(rangeEnd) && !rdateEnd.Before(rangeStart) && !e.isExcluded(rdate, recurrence.EXDATE) {
			return true, nil
		}
	}

	return false, nil
}

// hasRRuleOccurrenceInRange walks the rule's expansion in ascending
// order, stopping as soon as it finds a non-excluded instant inside
// [rangeStart, rangeEnd] or proves none exists by passing rangeEnd.
func (e *Engine) hasRRuleOccurrenceInRange(
	masterStart time.Time, rruleStr string, exdates []time.Time, rangeStart, rangeEnd time.Time,
) (bool, error) {
	rule, err := ParseRule(rruleStr, masterStart)
	if err != nil {
		return false, err
	}

	limit := e.config.MaxExpansionOccurrences
	if limit <= 0 {
		limit = DefaultEngineConfig.MaxExpansionOccurrences
	}

	s, err := Expand(&rule, nil, nil, masterStart.Location(), 0)
	if err != nil {
		return false, err
	}

	checked := 0
	for {
		t, ok := s.next()
		if !ok {
			return false, nil
		}
		if t.After(rangeEnd) {
			return false, nil
		}
		checked++
		if checked > limit {
			return false, nil
		}
		if !t.Before(rangeStart) && !e.isExcluded(t, exdates) {
			return true, nil
		}
	}
}

// isExcluded checks if a given time is in the EXDATE list, handling both
// exact timestamp matches and date-only matches.
func (e *Engine) isExcluded(t time.Time, exdates []time.Time) bool {
	for _, exdate := range exdates {
		if t.Equal(exdate) {
			return true
		}
		if exdate.Hour() == 0 && exdate.Minute() == 0 && exdate.Second() == 0 && exdate.Location() == time.UTC {
			occurrenceAtMidnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			if occurrenceAtMidnight.Equal(exdate) {
				return true
			}
		}
	}
	return false
}

// ExpandOccurrences returns every occurrence of recurrence anchored at
// masterStart/masterEnd that falls within [rangeStart, rangeEnd],
// RDATE-augmented and EXDATE-filtered, in ascending order.
func (e *Engine) ExpandOccurrences(
	masterStart, masterEnd time.Time,
	recurrence RecurrenceInfo,
	rangeStart, rangeEnd time.Time,
) ([]TimeOccurrence, error) {
	duration := masterEnd.Sub(masterStart)

	var rule *Rule
	if recurrence.RRULE != "" {
		r, err := ParseRule(recurrence.RRULE, masterStart)
		if err != nil {
			return nil, fmt.Errorf("failed to parse RRULE: %w", err)
		}
		rule = &r
	}

	rdates := recurrence.RDATE
	if rule == nil && len(rdates) == 0 {
		rdates = []time.Time{masterStart}
	}

	limit := e.config.MaxExpansionOccurrences
	if limit <= 0 {
		limit = DefaultEngineConfig.MaxExpansionOccurrences
	}

	s, err := Expand(rule, rdates, recurrence.EXDATE, masterStart.Location(), limit)
	if err != nil {
		return nil, err
	}

	var out []TimeOccurrence
	for {
		t, ok := s.next()
		if !ok {
			break
		}
		if t.After(rangeEnd) {
			break
		}
		if t.Before(rangeStart) {
			continue
		}
		out = append(out, TimeOccurrence{Start: t, End: t.Add(duration)})
	}
	return out, nil
}
