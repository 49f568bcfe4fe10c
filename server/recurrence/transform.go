package recurrence

import "time"

// Occurrence pairs a single expanded instant with its end, computed as
// start+duration. It is the unit the pairing wrapper emits.
type Occurrence struct {
	Start time.Time
	End   time.Time
}

// Predicate lets a caller constrain or halt a Transform stream without
// the expander or merger knowing anything about the caller's domain
// (time-range filters, CalDAV comp-filters, and so on).
type Predicate interface {
	// Test reports whether occ should be emitted. A false does not stop
	// the stream; it just skips that one instant.
	Test(occ Occurrence) bool
	// StopsTransformer reports whether the stream should stop entirely
	// once it reaches occ, without emitting it. Used for range-end
	// cutoffs where every later instant would also fail.
	StopsTransformer(occ Occurrence) bool
}

// Config controls the pairing wrapper's safety limits.
type Config struct {
	// VirtualLimit caps the number of Predicate.Test failures a single
	// Transform call will absorb before giving up, so a rule that is
	// structurally valid but whose predicate rejects nearly everything
	// (e.g. a narrow time-of-day filter on a yearly rule) can't spin
	// indefinitely.
	VirtualLimit int
}

// DefaultConfig mirrors the reference VirtualLimit of 732 (two years of
// daily misses), generous enough not to cut off legitimate sparse rules.
var DefaultConfig = Config{VirtualLimit: 732}

// transformStream is the pairing wrapper from spec §4.4: it zips each
// instant from src with instant+duration and applies pred. Whether a
// Test failure counts against VirtualLimit depends on countFailures,
// which Transform sets from the caller's countConstraintFailures flag.
type transformStream struct {
	src           stream
	duration      time.Duration
	pred          Predicate
	limit         int
	countFailures bool
	failures      int
	stopped       bool
}

func newTransformStream(src stream, duration time.Duration, pred Predicate, countFailures bool, cfg Config) *transformStream {
	limit := cfg.VirtualLimit
	if limit <= 0 {
		limit = DefaultConfig.VirtualLimit
	}
	return &transformStream{src: src, duration: duration, pred: pred, limit: limit, countFailures: countFailures}
}

func (t *transformStream) next() (Occurrence, bool) {
	if t.stopped {
		return Occurrence{}, false
	}
	for {
		start, ok := t.src.next()
		if !ok {
			t.stopped = true
			return Occurrence{}, false
		}
		occ := Occurrence{Start: start, End: start.Add(t.duration)}

		if t.pred == nil {
			return occ, true
		}
		if t.pred.StopsTransformer(occ) {
			t.stopped = true
			return Occurrence{}, false
		}
		if t.pred.Test(occ) {
			return occ, true
		}

		if !t.countFailures {
			continue
		}
		t.failures++
		if t.failures >= t.limit {
			t.stopped = true
			return Occurrence{}, false
		}
	}
}

// RangePredicate is a Predicate that keeps occurrences whose start falls
// within [Start, End] and halts the stream once an occurrence starts
// after End, mirroring the range test Engine.ExpandOccurrences applies
// inline. It is the constraint Transform's callers reach for most often:
// a plain time-range filter with no per-instance component matching.
type RangePredicate struct {
	Start, End time.Time
}

// Test reports whether occ.Start is on or after Start.
func (p RangePredicate) Test(occ Occurrence) bool {
	return !occ.Start.Before(p.Start)
}

// StopsTransformer reports whether occ.Start is after End, at which
// point every later instant (the stream is ascending) would also fail.
func (p RangePredicate) StopsTransformer(occ Occurrence) bool {
	return occ.Start.After(p.End)
}

// Transform is the package's external entry point for expanding rule and
// applying a constraint predicate to the resulting instant stream (spec
// §6 "Transformer entry point"). It builds its own inclusion stream from
// rule via Expand, so callers never construct a stream directly.
//
// countConstraintFailures selects between the two termination modes of
// spec §4.4: when true (the common case), a Predicate.Test failure
// counts against cfg.VirtualLimit, and rule.Count (if set) bounds the
// raw instants the rule iterator itself generates. When false, the
// caller is asking that constraint failures not count toward the
// virtual limit; Transform then passes ignore_count through to the rule
// iterator so it doesn't stop on rule.Count either, and instead uses
// rule.Count (if set) as a cap on real, predicate-accepted output.
func Transform(rule Rule, duration time.Duration, pred Predicate, countConstraintFailures bool, cfg Config) ([]Occurrence, error) {
	limit := cfg.VirtualLimit
	if limit <= 0 {
		limit = DefaultConfig.VirtualLimit
	}

	loc := rule.Dtstart.Location()
	if loc == nil {
		loc = time.UTC
	}

	src, err := expandWithOptions(&rule, nil, nil, loc, !countConstraintFailures, limit)
	if err != nil {
		return nil, err
	}

	outCap := 0
	if !countConstraintFailures && rule.Count > 0 {
		outCap = rule.Count
	}

	ts := newTransformStream(src, duration, pred, countConstraintFailures, cfg)
	var out []Occurrence
	for {
		occ, ok := ts.next()
		if !ok {
			return out, nil
		}
		out = append(out, occ)
		if outCap > 0 && len(out) >= outCap {
			return out, nil
		}
	}
}
