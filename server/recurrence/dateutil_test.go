package recurrence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLeapYear(t *testing.T) {
	cases := map[int]bool{
		2024: true,  // divisible by 4
		2023: false, // not divisible by 4
		1900: false, // divisible by 100 but not 400
		2000: true,  // divisible by 400
	}
	for year, want := range cases {
		assert.Equal(t, want, isLeapYear(year), "year %d", year)
	}
}

func TestYearLength(t *testing.T) {
	assert.Equal(t, 366, yearLength(2024))
	assert.Equal(t, 365, yearLength(2023))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, daysInMonth(2024, 2))
	assert.Equal(t, 28, daysInMonth(2023, 2))
	assert.Equal(t, 31, daysInMonth(2024, 1))
	assert.Equal(t, 30, daysInMonth(2024, 4))
}

func TestWeekdayOf(t *testing.T) {
	// 2024-01-01 is a Monday -> 0.
	assert.Equal(t, 0, weekdayOf(2024, 1, 1))
	// 2024-01-07 is a Sunday -> 6.
	assert.Equal(t, 6, weekdayOf(2024, 1, 7))
}

func TestDayOfYear(t *testing.T) {
	assert.Equal(t, 0, dayOfYear(2024, 1, 1))
	assert.Equal(t, 31, dayOfYear(2024, 2, 1))
	assert.Equal(t, 365, dayOfYear(2024, 12, 31)) // leap year, 0-indexed
	assert.Equal(t, 364, dayOfYear(2023, 12, 31))
}

func TestPymod(t *testing.T) {
	assert.Equal(t, 0, pymod(7, 7))
	assert.Equal(t, 6, pymod(-1, 7))
	assert.Equal(t, 1, pymod(8, 7))
	assert.Equal(t, 0, pymod(0, 7))
}

func TestDivmod(t *testing.T) {
	q, r := divmod(17, 7)
	assert.Equal(t, 2, q)
	assert.Equal(t, 3, r)

	q, r = divmod(-1, 7)
	assert.Equal(t, -1, q)
	assert.Equal(t, 6, r)
}
