package recurrence

import "time"

// multiStream implements the multi-stream merger from spec §4.3: a k-way
// ascending merge over inclusion streams (RRULE expansions, RDATE lists),
// with exclusion streams (EXRULE expansions, EXDATE lists) subtracted by
// absolute-timestamp equality, and simultaneous ties across inclusion
// streams collapsed into a single emission.
type multiStream struct {
	inclusion []stream
	exclusion []stream

	limit int // 0 means unlimited
	count int

	incHeads []time.Time
	incHave  []bool
	exHeads  []time.Time
	exHave   []bool
}

// newMultiStream builds a merger over inclusion and exclusion. limit, if
// positive, caps the total number of instants the merger will ever emit
// (the "iteration_limit" safeguard spec §9 calls for independently of the
// pairing wrapper's own VirtualLimit).
func newMultiStream(inclusion, exclusion []stream, limit int) *multiStream {
	return &multiStream{
		inclusion: inclusion,
		exclusion: exclusion,
		limit:     limit,
		incHeads:  make([]time.Time, len(inclusion)),
		incHave:   make([]bool, len(inclusion)),
		exHeads:   make([]time.Time, len(exclusion)),
		exHave:    make([]bool, len(exclusion)),
	}
}

func (m *multiStream) fillInc(i int) {
	if m.incHave[i] {
		return
	}
	if t, ok := m.inclusion[i].next(); ok {
		m.incHeads[i] = t
		m.incHave[i] = true
	}
}

func (m *multiStream) fillEx(i int) {
	if m.exHave[i] {
		return
	}
	if t, ok := m.exclusion[i].next(); ok {
		m.exHeads[i] = t
		m.exHave[i] = true
	}
}

func (m *multiStream) next() (time.Time, bool) {
	for {
		if m.limit > 0 && m.count >= m.limit {
			return time.Time{}, false
		}

		haveAny := false
		var minT time.Time
		for i := range m.inclusion {
			m.fillInc(i)
			if m.incHave[i] && (!haveAny || m.incHeads[i].Before(minT)) {
				minT = m.incHeads[i]
				haveAny = true
			}
		}
		if !haveAny {
			return time.Time{}, false
		}

		for i := range m.inclusion {
			if m.incHave[i] && m.incHeads[i].Equal(minT) {
				m.incHave[i] = false
			}
		}

		excluded := false
		for i := range m.exclusion {
			for {
				m.fillEx(i)
				if !m.exHave[i] {
					break
				}
				if m.exHeads[i].Before(minT) {
					m.exHave[i] = false
					continue
				}
				break
			}
			if m.exHave[i] && m.exHeads[i].Equal(minT) {
				excluded = true
				m.exHave[i] = false
			}
		}
		if excluded {
			continue
		}

		m.count++
		return minT, true
	}
}
