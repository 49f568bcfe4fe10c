package recurrence

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expandRRULE is a small test helper: parse rruleText anchored at dtstart,
// run it through Expand with no RDATE/EXDATE, and drain it.
func expandRRULE(t *testing.T, rruleText string, dtstart time.Time, limit int) []time.Time {
	t.Helper()
	rule, err := ParseRule(rruleText, dtstart)
	require.NoError(t, err)
	out, err := ExpandAll(&rule, nil, nil, dtstart.Location(), limit)
	require.NoError(t, err)
	return out
}

func TestExpander_MonthlyCount(t *testing.T) {
	dtstart := time.Date(2014, 1, 31, 9, 0, 0, 0, time.UTC)
	got := expandRRULE(t, "FREQ=MONTHLY;BYMONTHDAY=15;COUNT=1", dtstart, 100)

	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2014, 2, 15, 9, 0, 0, 0, time.UTC), got[0])
}

func TestExpander_WeeklyByDayInterval(t *testing.T) {
	// Every other week, Tuesday and Thursday, starting Tuesday 2024-01-02.
	dtstart := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)
	got := expandRRULE(t, "FREQ=WEEKLY;INTERVAL=2;BYDAY=TU,TH;COUNT=4", dtstart, 100)

	require.Len(t, got, 4)
	assert.Equal(t, []time.Time{
		time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 4, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 16, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 18, 8, 0, 0, 0, time.UTC),
	}, got)
}

func TestExpander_MonthlyLastFriday(t *testing.T) {
	dtstart := time.Date(2024, 1, 26, 17, 0, 0, 0, time.UTC) // last Friday of January 2024
	got := expandRRULE(t, "FREQ=MONTHLY;BYDAY=-1FR", dtstart, 3)

	require.Len(t, got, 3)
	assert.Equal(t, time.Date(2024, 1, 26, 17, 0, 0, 0, time.UTC), got[0])
	assert.Equal(t, time.Date(2024, 2, 23, 17, 0, 0, 0, time.UTC), got[1])
	assert.Equal(t, time.Date(2024, 3, 29, 17, 0, 0, 0, time.UTC), got[2])
}

func TestExpander_YearlyByMonthByDayOrdinal(t *testing.T) {
	// The second Sunday of March each year (US-style "spring forward" anchor).
	dtstart := time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC)
	got := expandRRULE(t, "FREQ=YEARLY;BYMONTH=3;BYDAY=2SU", dtstart, 3)

	require.Len(t, got, 3)
	assert.Equal(t, time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC), got[0])
	assert.Equal(t, time.Date(2025, 3, 9, 2, 0, 0, 0, time.UTC), got[1])
	assert.Equal(t, time.Date(2026, 3, 8, 2, 0, 0, 0, time.UTC), got[2])
}

func TestExpander_DailyBySetPos(t *testing.T) {
	// Daily rule expanding to three times of day, keeping only the last
	// (bysetpos=-1) each day: an "end of business" pattern.
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	got := expandRRULE(t, "FREQ=DAILY;BYHOUR=9,13,17;BYMINUTE=0;BYSECOND=0;BYSETPOS=-1;COUNT=3", dtstart, 100)

	require.Len(t, got, 3)
	assert.Equal(t, time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC), got[0])
	assert.Equal(t, time.Date(2024, 1, 2, 17, 0, 0, 0, time.UTC), got[1])
	assert.Equal(t, time.Date(2024, 1, 3, 17, 0, 0, 0, time.UTC), got[2])
}

func TestExpander_ExdateMerge(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	rule, err := ParseRule("FREQ=DAILY;COUNT=5", dtstart)
	require.NoError(t, err)

	exdates := []time.Time{
		time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC), // not in the generated set, no effect
	}
	out, err := ExpandAll(&rule, nil, exdates, time.UTC, 100)
	require.NoError(t, err)

	require.Len(t, out, 4)
	for _, occ := range out {
		assert.False(t, occ.Equal(time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)))
	}
}

func TestExpander_RdateAugmentsRule(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	rule, err := ParseRule("FREQ=DAILY;COUNT=2", dtstart)
	require.NoError(t, err)

	rdates := []time.Time{time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	out, err := ExpandAll(&rule, rdates, nil, time.UTC, 100)
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.True(t, sort.IsSorted(timeSlice(out)))
	assert.Contains(t, out, rdates[0])
}

// timeSlice/sort.IsSorted let the ascending-output invariant read as a
// one-liner instead of a hand-rolled loop.
type timeSlice []time.Time

func (s timeSlice) Len() int           { return len(s) }
func (s timeSlice) Less(i, j int) bool { return s[i].Before(s[j]) }
func (s timeSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

func TestExpander_MonotonicOutput(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got := expandRRULE(t, "FREQ=WEEKLY;BYDAY=MO,WE,FR;COUNT=30", dtstart, 200)

	require.True(t, len(got) > 1)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Before(got[i]), "output not strictly ascending at index %d: %v then %v", i, got[i-1], got[i])
	}
}

func TestExpander_AnchorMembership(t *testing.T) {
	// DTSTART must itself satisfy the rule's own by-rules to appear, but
	// a DTSTART that already matches a default derived from itself always
	// does (spec §4.2 "Defaulting").
	dtstart := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	got := expandRRULE(t, "FREQ=MONTHLY;COUNT=1", dtstart, 10)

	require.Len(t, got, 1)
	assert.True(t, got[0].Equal(dtstart))
}

func TestExpander_CountBoundary(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got := expandRRULE(t, "FREQ=DAILY;COUNT=5", dtstart, 100)
	assert.Len(t, got, 5)
}

func TestExpander_UntilBoundary(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// UNTIL falls exactly on the fifth occurrence: it must be included.
	got := expandRRULE(t, "FREQ=DAILY;UNTIL=20240105T000000Z", dtstart, 100)
	require.Len(t, got, 5)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), got[4])
}

func TestExpander_ByMonthDayPositiveNegativeOR(t *testing.T) {
	// BYMONTHDAY=1,-1 selects the first AND last day of every month, an
	// OR-combination rather than an intersection.
	dtstart := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	got := expandRRULE(t, "FREQ=MONTHLY;BYMONTHDAY=1,-1;COUNT=4", dtstart, 100)

	require.Len(t, got, 4)
	assert.Equal(t, []time.Time{
		time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC), // 2024 is a leap year
	}, got)
}

func TestExpander_MissingDtstart(t *testing.T) {
	_, err := newRuleIterator(Rule{Freq: Daily}, time.UTC, false)
	assert.ErrorIs(t, err, ErrMissingData)
}
