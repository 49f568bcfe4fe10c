package recurrence

import (
	"sort"
	"time"
)

// dateListStream is the date-list source described in spec §4.1: a fixed
// set of explicit instants (RDATE/EXDATE values), sorted once up front and
// then drained strictly ascending. It is not restartable — once next()
// has been called, the stream only moves forward.
type dateListStream struct {
	loc   *time.Location
	dates []time.Time
	pos   int
}

// newDateListStream copies dates, sorts them ascending, and re-expresses
// each in loc so every stream the merger sees shares a comparison basis.
func newDateListStream(dates []time.Time, loc *time.Location) *dateListStream {
	sorted := make([]time.Time, len(dates))
	for i, d := range dates {
		sorted[i] = inZone(d, loc)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
	return &dateListStream{loc: loc, dates: sorted}
}

func (s *dateListStream) next() (time.Time, bool) {
	if s.pos >= len(s.dates) {
		return time.Time{}, false
	}
	t := s.dates[s.pos]
	s.pos++
	return t, true
}
