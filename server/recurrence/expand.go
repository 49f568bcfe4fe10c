package recurrence

import "time"

// Expand is the package's external entry point for producing the
// ascending, deduplicated instant stream described in spec §6: it wires
// together the per-rule expander, the date-list source, and the
// multi-stream merger so callers never construct those pieces directly.
//
// rule may be nil when a component has only RDATE/EXDATE and no RRULE.
// iterationLimit, if positive, bounds the total number of instants the
// returned stream will ever produce; pass 0 for no bound (callers that
// also apply Transform should rely on its VirtualLimit instead).
func Expand(rule *Rule, rdates, exdates []time.Time, loc *time.Location, iterationLimit int) (stream, error) {
	return expandWithOptions(rule, rdates, exdates, loc, false, iterationLimit)
}

// expandWithOptions is Expand's real body, with ignoreCount exposed so
// Transform can ask the rule iterator to disregard rule.Count and let a
// predicate (plus the caller-enforced output cap) govern termination
// instead, per spec §4.4's ignore_count path.
func expandWithOptions(rule *Rule, rdates, exdates []time.Time, loc *time.Location, ignoreCount bool, iterationLimit int) (stream, error) {
	if loc == nil {
		loc = time.UTC
	}

	var inclusion []stream
	if rule != nil {
		it, err := newRuleIterator(*rule, loc, ignoreCount)
		if err != nil {
			return nil, err
		}
		inclusion = append(inclusion, it)
	}
	if len(rdates) > 0 {
		inclusion = append(inclusion, newDateListStream(rdates, loc))
	}

	var exclusion []stream
	if len(exdates) > 0 {
		exclusion = append(exclusion, newDateListStream(exdates, loc))
	}

	return newMultiStream(inclusion, exclusion, iterationLimit), nil
}

// ExpandAll drains a stream built by Expand into a slice. It exists for
// callers that want the whole result at once (tests, CLI output) rather
// than pulling lazily; Expand itself stays lazy.
func ExpandAll(rule *Rule, rdates, exdates []time.Time, loc *time.Location, iterationLimit int) ([]time.Time, error) {
	s, err := Expand(rule, rdates, exdates, loc, iterationLimit)
	if err != nil {
		return nil, err
	}
	var out []time.Time
	for {
		t, ok := s.next()
		if !ok {
			return out, nil
		}
		out = append(out, t)
	}
}
