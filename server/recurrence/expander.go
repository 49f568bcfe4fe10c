package recurrence

import (
	"sort"
	"time"
)

// stream is the minimal pull-based interface every instance source in this
// package implements: one value per call, no buffering beyond what's
// needed to produce that one value, no shared mutable state between
// streams. Callers drive everything; there is no background work.
type stream interface {
	next() (time.Time, bool)
}

// civilDate is a plain calendar date, used by the WEEKLY/DAILY/HOURLY/
// MINUTELY/SECONDLY day sets, which never need the YEARLY/MONTHLY-only
// byweekno or relative-weekday masks and so never need a shared
// year-context table.
type civilDate struct {
	year, month, day int
}

func (d civilDate) addDays(n int) civilDate {
	t := dateFromYMD(d.year, d.month, d.day).AddDate(0, 0, n)
	return civilDate{t.Year(), int(t.Month()), t.Day()}
}

func civilDateOf(t time.Time) civilDate {
	return civilDate{t.Year(), int(t.Month()), t.Day()}
}

// dayInfo is everything a day-set filter needs to know about one
// candidate day, regardless of whether it came from a yearInfo table
// (YEARLY/MONTHLY) or from direct calendar arithmetic (everything else).
type dayInfo struct {
	year, month, monthday, monthdayNeg, weekday, yeardayPos, yearLen int
}

func dayInfoFromCivil(d civilDate) dayInfo {
	dim := daysInMonth(d.year, d.month)
	return dayInfo{
		year:        d.year,
		month:       d.month,
		monthday:    d.day,
		monthdayNeg: d.day - dim - 1,
		weekday:     weekdayOf(d.year, d.month, d.day),
		yeardayPos:  dayOfYear(d.year, d.month, d.day) + 1,
		yearLen:     yearLength(d.year),
	}
}

func dayInfoFromYearIndex(yi yearInfo, idx int) dayInfo {
	return dayInfo{
		year:        yi.year,
		month:       yi.mmask[idx],
		monthday:    yi.mdaymask[idx],
		monthdayNeg: yi.mdayNegMask[idx],
		weekday:     pymod(yi.jan1Wkday+idx, 7),
		yeardayPos:  idx + 1,
		yearLen:     yi.yearLen,
	}
}

// ruleIterator is the per-rule expander (spec §4.2). It is an explicit
// iterator object: every loop variable the reference algorithm keeps
// across yields is a struct field, so next() can run "until the next
// emission point" and return, instead of relying on a generator.
type ruleIterator struct {
	rule        Rule
	loc         *time.Location
	ignoreCount bool

	cur time.Time

	bymonthdayPos []int
	bymonthdayNeg []int
	byDayPlain    []int
	byDayRel      []Weekday

	pending   []time.Time
	remaining int
	hasCount  bool
	done      bool
}

// newRuleIterator builds the per-rule expander for rule, emitting instants
// in loc. ignoreCount makes the iterator disregard rule.Count (the
// pairing wrapper uses this to let a caller-supplied predicate govern
// termination instead).
func newRuleIterator(rule Rule, loc *time.Location, ignoreCount bool) (*ruleIterator, error) {
	if rule.Dtstart.IsZero() {
		return nil, ErrMissingData
	}

	r := rule.clone()
	if r.Interval <= 0 {
		r.Interval = 1
	}

	it := &ruleIterator{
		rule:        r,
		loc:         loc,
		ignoreCount: ignoreCount,
		cur:         inZone(r.Dtstart, loc),
		hasCount:    r.Count > 0,
		remaining:   r.Count,
	}

	it.applyDefaults()
	it.partition()

	return it, nil
}

func inZone(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// applyDefaults injects the frequency-specific defaults described in
// spec §4.2 "Defaulting" when none of byweekno/byyearday/bymonthday/byday
// were supplied.
func (it *ruleIterator) applyDefaults() {
	r := &it.rule
	if len(r.ByWeekNo) > 0 || len(r.ByYearDay) > 0 || len(r.ByMonthDay) > 0 || len(r.ByDay) > 0 {
		return
	}
	switch r.Freq {
	case Yearly:
		r.ByMonth = []int{int(r.Dtstart.Month())}
		r.ByMonthDay = []int{r.Dtstart.Day()}
	case Monthly:
		r.ByMonthDay = []int{r.Dtstart.Day()}
	case Weekly:
		r.ByDay = []Weekday{{Day: weekdayOf(r.Dtstart.Year(), int(r.Dtstart.Month()), r.Dtstart.Day())}}
	}
}

// partition splits bymonthday into positive/negative sets and byday into
// plain weekdays and ordinalled (relative) weekdays, per spec §4.2
// "Partitioning".
func (it *ruleIterator) partition() {
	for _, v := range it.rule.ByMonthDay {
		if v < 0 {
			it.bymonthdayNeg = append(it.bymonthdayNeg, v)
		} else if v > 0 {
			it.bymonthdayPos = append(it.bymonthdayPos, v)
		}
	}
	for _, wd := range it.rule.ByDay {
		if wd.Ordinal == 0 {
			it.byDayPlain = append(it.byDayPlain, wd.Day)
		} else {
			it.byDayRel = append(it.byDayRel, wd)
		}
	}
}

func (it *ruleIterator) next() (time.Time, bool) {
	for {
		for len(it.pending) > 0 {
			cand := it.pending[0]
			it.pending = it.pending[1:]

			if it.rule.HasUntil && cand.After(it.rule.Until) {
				it.done = true
				return time.Time{}, false
			}
			if cand.Before(it.rule.Dtstart) {
				continue
			}
			if it.hasCount && !it.ignoreCount {
				it.remaining--
				if it.remaining <= 0 {
					it.done = true
				}
			}
			return cand, true
		}

		if it.done {
			return time.Time{}, false
		}
		if it.hasCount && !it.ignoreCount && it.remaining <= 0 {
			it.done = true
			return time.Time{}, false
		}
		if it.rule.HasUntil && it.periodFloor().After(it.rule.Until) {
			it.done = true
			return time.Time{}, false
		}

		it.pending = it.generatePeriod()
		it.advancePeriod()
	}
}

// periodFloor is the earliest instant the CURRENT period could possibly
// produce, used only to prove termination early when an entire period
// would fall after until without generating it (spec §4.2 termination
// contract: "the algorithm proves no further instants can exist").
func (it *ruleIterator) periodFloor() time.Time {
	switch it.rule.Freq {
	case Yearly:
		return time.Date(it.cur.Year(), 1, 1, 0, 0, 0, 0, it.loc)
	case Monthly:
		return time.Date(it.cur.Year(), it.cur.Month(), 1, 0, 0, 0, 0, it.loc)
	case Weekly:
		cw := weekdayOf(it.cur.Year(), int(it.cur.Month()), it.cur.Day())
		back := pymod(cw-it.rule.Wkst, 7)
		d := civilDateOf(it.cur).addDays(-back)
		return time.Date(d.year, time.Month(d.month), d.day, 0, 0, 0, 0, it.loc)
	default:
		return it.cur
	}
}

// generatePeriod runs spec §4.2 steps 2-7 for the period anchored at
// it.cur and returns the (possibly empty) ordered list of candidate
// instants it produced.
func (it *ruleIterator) generatePeriod() []time.Time {
	switch it.rule.Freq {
	case Yearly, Monthly:
		return it.generateYearOrMonthPeriod()
	case Weekly:
		return it.generateCivilPeriod(it.weeklyDays())
	case Daily:
		return it.generateCivilPeriod([]civilDate{civilDateOf(it.cur)})
	default: // Hourly, Minutely, Secondly
		return it.generateFineGrainedPeriod()
	}
}

// advancePeriod moves it.cur to the anchor of the next period, stepping by
// rule.Interval periods of rule.Freq (spec §4.2 step 8).
func (it *ruleIterator) advancePeriod() {
	switch it.rule.Freq {
	case Yearly:
		it.cur = it.atDayOne(it.cur.Year()+it.rule.Interval, it.cur.Month())
	case Monthly:
		// Step on year/month as plain integers first, then rebuild the time
		// with day fixed to 1 (spec §4.2 step 9): time.Time.AddDate would
		// normalize an out-of-range day (e.g. 31) into the following
		// month, silently skipping the period we're trying to land on.
		totalMonths := int(it.cur.Month()) - 1 + it.rule.Interval
		year := it.cur.Year() + totalMonths/12
		month := time.Month(totalMonths%12) + 1
		it.cur = it.atDayOne(year, month)
	case Weekly:
		it.cur = it.cur.AddDate(0, 0, 7*it.rule.Interval)
	case Daily:
		it.cur = it.cur.AddDate(0, 0, it.rule.Interval)
	case Hourly:
		it.cur = it.cur.Add(time.Duration(it.rule.Interval) * time.Hour)
	case Minutely:
		it.cur = it.cur.Add(time.Duration(it.rule.Interval) * time.Minute)
	case Secondly:
		it.cur = it.cur.Add(time.Duration(it.rule.Interval) * time.Second)
	}
}

// atDayOne builds a time at day 1 of the given year/month, keeping it.cur's
// time-of-day and location (spec §4.2 step 9: "day set to 1" on YEARLY/
// MONTHLY advance).
func (it *ruleIterator) atDayOne(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, it.cur.Hour(), it.cur.Minute(), it.cur.Second(), it.cur.Nanosecond(), it.loc)
}

func (it *ruleIterator) weeklyDays() []civilDate {
	cw := weekdayOf(it.cur.Year(), int(it.cur.Month()), it.cur.Day())
	back := pymod(cw-it.rule.Wkst, 7)
	start := civilDateOf(it.cur).addDays(-back)
	days := make([]civilDate, 7)
	for i := range days {
		days[i] = start.addDays(i)
	}
	return days
}

func (it *ruleIterator) generateYearOrMonthPeriod() []time.Time {
	yi := buildYearInfo(it.cur.Year())

	var start, end int
	if it.rule.Freq == Yearly {
		start, end = 0, yi.yearLen
	} else {
		start, end = yi.monthRange(int(it.cur.Month()))
	}

	var wnoMask map[int]bool
	if it.rule.Freq == Yearly && len(it.rule.ByWeekNo) > 0 {
		wnoMask = buildWeekNoMask(yi, it.rule.ByWeekNo, it.rule.Wkst)
	}

	var relMask map[int]bool
	if len(it.byDayRel) > 0 {
		relMask = it.relativeWeekdayMask(yi)
	}

	days := make([]civilDate, 0, end-start)
	for idx := start; idx < end; idx++ {
		di := dayInfoFromYearIndex(yi, idx)
		if !it.dayPasses(di, wnoMask, relMask, idx, len(it.rule.ByWeekNo) > 0, len(it.byDayRel) > 0) {
			continue
		}
		days = append(days, civilDate{yi.year, di.month, di.monthday})
	}

	times, empty := it.coarseTimeSet()
	if empty {
		return nil
	}
	return it.combine(days, times)
}

func (it *ruleIterator) generateCivilPeriod(candidates []civilDate) []time.Time {
	days := make([]civilDate, 0, len(candidates))
	for _, d := range candidates {
		di := dayInfoFromCivil(d)
		if !it.dayPasses(di, nil, nil, 0, false, false) {
			continue
		}
		days = append(days, d)
	}

	times, empty := it.coarseTimeSet()
	if empty {
		return nil
	}
	return it.combine(days, times)
}

func (it *ruleIterator) generateFineGrainedPeriod() []time.Time {
	di := dayInfoFromCivil(civilDateOf(it.cur))
	if !it.dayPasses(di, nil, nil, 0, false, false) {
		return nil
	}

	times, empty := it.fineTimeSet()
	if empty {
		return nil
	}
	return it.combine([]civilDate{civilDateOf(it.cur)}, times)
}

// coarseTimeSet implements spec §4.2 step 3 for frequencies DAILY and
// coarser: the cross-product byhour x byminute x bysecond, each
// defaulting to the corresponding field of dtstart.
func (it *ruleIterator) coarseTimeSet() ([]TimeOfDay, bool) {
	hours := it.rule.ByHour
	if len(hours) == 0 {
		hours = []int{it.rule.Dtstart.Hour()}
	}
	minutes := it.rule.ByMinute
	if len(minutes) == 0 {
		minutes = []int{it.rule.Dtstart.Minute()}
	}
	seconds := it.rule.BySecond
	if len(seconds) == 0 {
		seconds = []int{it.rule.Dtstart.Second()}
	}

	times := make([]TimeOfDay, 0, len(hours)*len(minutes)*len(seconds))
	for _, h := range hours {
		for _, m := range minutes {
			for _, s := range seconds {
				times = append(times, TimeOfDay{h, m, s})
			}
		}
	}
	sort.Slice(times, func(i, j int) bool { return timeOfDayLess(times[i], times[j]) })
	return times, len(times) == 0
}

// fineTimeSet implements spec §4.2 step 3 for HOURLY/MINUTELY/SECONDLY:
// cur's existing hour/minute/second fields gate the period, and the
// finer fields expand outward from there.
func (it *ruleIterator) fineTimeSet() ([]TimeOfDay, bool) {
	r := it.rule
	if len(r.ByHour) > 0 && !containsInt(r.ByHour, it.cur.Hour()) {
		return nil, true
	}

	switch r.Freq {
	case Hourly:
		minutes := r.ByMinute
		if len(minutes) == 0 {
			minutes = []int{it.cur.Minute()}
		}
		seconds := r.BySecond
		if len(seconds) == 0 {
			seconds = []int{it.cur.Second()}
		}
		var times []TimeOfDay
		for _, m := range minutes {
			for _, s := range seconds {
				times = append(times, TimeOfDay{it.cur.Hour(), m, s})
			}
		}
		sort.Slice(times, func(i, j int) bool { return timeOfDayLess(times[i], times[j]) })
		return times, len(times) == 0
	case Minutely:
		if len(r.ByMinute) > 0 && !containsInt(r.ByMinute, it.cur.Minute()) {
			return nil, true
		}
		seconds := r.BySecond
		if len(seconds) == 0 {
			seconds = []int{it.cur.Second()}
		}
		times := make([]TimeOfDay, 0, len(seconds))
		for _, s := range seconds {
			times = append(times, TimeOfDay{it.cur.Hour(), it.cur.Minute(), s})
		}
		sort.Slice(times, func(i, j int) bool { return timeOfDayLess(times[i], times[j]) })
		return times, len(times) == 0
	default: // Secondly
		if len(r.ByMinute) > 0 && !containsInt(r.ByMinute, it.cur.Minute()) {
			return nil, true
		}
		if len(r.BySecond) > 0 && !containsInt(r.BySecond, it.cur.Second()) {
			return nil, true
		}
		return []TimeOfDay{{it.cur.Hour(), it.cur.Minute(), it.cur.Second()}}, false
	}
}

func timeOfDayLess(a, b TimeOfDay) bool {
	if a.Hour != b.Hour {
		return a.Hour < b.Hour
	}
	if a.Minute != b.Minute {
		return a.Minute < b.Minute
	}
	return a.Second < b.Second
}

// combine builds the flat (day x time) product in ascending order and
// applies bysetpos, per spec §4.2 step 7.
func (it *ruleIterator) combine(days []civilDate, times []TimeOfDay) []time.Time {
	if len(days) == 0 || len(times) == 0 {
		return nil
	}

	product := make([]time.Time, 0, len(days)*len(times))
	for _, d := range days {
		for _, t := range times {
			product = append(product, time.Date(d.year, time.Month(d.month), d.day, t.Hour, t.Minute, t.Second, 0, it.loc))
		}
	}

	if len(it.rule.BySetPos) == 0 {
		return product
	}

	n := len(product)
	selected := make([]time.Time, 0, len(it.rule.BySetPos))
	for _, pos := range it.rule.BySetPos {
		var idx int
		if pos > 0 {
			idx = pos - 1
		} else if pos < 0 {
			idx = n + pos
		} else {
			continue
		}
		if idx < 0 || idx >= n {
			continue
		}
		selected = append(selected, product[idx])
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].Before(selected[j]) })
	return selected
}

// dayPasses implements spec §4.2 step 6's per-filter reject logic,
// including the bymonthday/bymonthday_neg OR-combination rule.
func (it *ruleIterator) dayPasses(d dayInfo, wnoMask, relMask map[int]bool, yiIndex int, useWno, useRel bool) bool {
	r := it.rule

	if len(r.ByMonth) > 0 && !containsInt(r.ByMonth, d.month) {
		return false
	}
	if useWno && !wnoMask[yiIndex] {
		return false
	}
	if len(r.ByYearDay) > 0 && !matchesYearDay(r.ByYearDay, d.yeardayPos, d.yearLen) {
		return false
	}

	hasPos := len(it.bymonthdayPos) > 0
	hasNeg := len(it.bymonthdayNeg) > 0
	if hasPos || hasNeg {
		passPos := hasPos && containsInt(it.bymonthdayPos, d.monthday)
		passNeg := hasNeg && containsInt(it.bymonthdayNeg, d.monthdayNeg)
		switch {
		case hasPos && hasNeg:
			if !passPos && !passNeg {
				return false
			}
		case hasPos:
			if !passPos {
				return false
			}
		default:
			if !passNeg {
				return false
			}
		}
	}

	if len(it.byDayPlain) > 0 && !containsInt(it.byDayPlain, d.weekday) {
		return false
	}
	if useRel && !relMask[yiIndex] {
		return false
	}

	return true
}

func matchesYearDay(set []int, pos, yearLen int) bool {
	for _, v := range set {
		if v > 0 && v == pos {
			return true
		}
		if v < 0 && yearLen+v+1 == pos {
			return true
		}
	}
	return false
}

func containsInt(set []int, v int) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// relativeWeekdayMask implements spec §4.2 step 5 (byday_rel, YEARLY and
// MONTHLY only).
func (it *ruleIterator) relativeWeekdayMask(yi yearInfo) map[int]bool {
	mask := make(map[int]bool)

	var ranges [][2]int
	if it.rule.Freq == Yearly {
		if len(it.rule.ByMonth) > 0 {
			for _, m := range it.rule.ByMonth {
				s, e := yi.monthRange(m)
				ranges = append(ranges, [2]int{s, e})
			}
		} else {
			ranges = [][2]int{{0, yi.yearLen}}
		}
	} else {
		s, e := yi.monthRange(int(it.cur.Month()))
		ranges = [][2]int{{s, e}}
	}

	weekdayAt := func(idx int) int { return pymod(yi.jan1Wkday+idx, 7) }

	for _, rng := range ranges {
		rs, re := rng[0], rng[1]
		for _, wd := range it.byDayRel {
			var i int
			if wd.Ordinal < 0 {
				i = re + (wd.Ordinal+1)*7
				i -= pymod(weekdayAt(i)-wd.Day, 7)
			} else {
				i = rs + (wd.Ordinal-1)*7
				i += pymod(7-weekdayAt(i)+wd.Day, 7)
			}
			if i >= rs && i < re {
				mask[i] = true
			}
		}
	}
	return mask
}

// buildWeekNoMask implements spec §4.2 step 4 (byweekno, YEARLY only).
func buildWeekNoMask(yi yearInfo, byweekno []int, wkst int) map[int]bool {
	mask := make(map[int]bool)
	if len(byweekno) == 0 {
		return mask
	}

	no1WeekStart := pymod(7-yi.jan1Wkday+wkst, 7)

	var wYearLen int
	if no1WeekStart >= 4 {
		wYearLen = yi.yearLen + pymod(yi.jan1Wkday-wkst, 7)
	} else {
		wYearLen = yi.yearLen - no1WeekStart
	}
	div, mod := divmod(wYearLen, 7)
	numWeeks := div
	if mod >= 4 {
		numWeeks++
	}

	contains := func(set []int, v int) bool { return containsInt(set, v) }

	for _, wn := range byweekno {
		weekno := wn
		if weekno < 0 {
			weekno += numWeeks + 1
		}
		if weekno <= 0 || weekno > numWeeks {
			continue
		}
		start := no1WeekStart + (weekno-1)*7
		for i := 0; i < 7; i++ {
			idx := start + i
			if idx < 0 || idx >= yi.yearLen {
				break
			}
			mask[idx] = true
		}
	}

	if contains(byweekno, 1) {
		nextJan1Wkday := weekdayOf(yi.year+1, 1, 1)
		tail := pymod(nextJan1Wkday-wkst, 7)
		for i := 0; i < tail; i++ {
			idx := yi.yearLen - tail + i
			if idx >= 0 && idx < yi.yearLen {
				mask[idx] = true
			}
		}
	}

	if no1WeekStart > 0 && !contains(byweekno, -1) {
		prevYI := buildYearInfo(yi.year - 1)
		prevNo1WeekStart := pymod(7-prevYI.jan1Wkday+wkst, 7)
		var prevWYearLen int
		if prevNo1WeekStart >= 4 {
			prevWYearLen = prevYI.yearLen + pymod(prevYI.jan1Wkday-wkst, 7)
		} else {
			prevWYearLen = prevYI.yearLen - prevNo1WeekStart
		}
		pdiv, pmod := divmod(prevWYearLen, 7)
		prevNumWeeks := pdiv
		if pmod >= 4 {
			prevNumWeeks++
		}
		if contains(byweekno, prevNumWeeks) {
			for i := 0; i < no1WeekStart; i++ {
				mask[i] = true
			}
		}
	}

	return mask
}
