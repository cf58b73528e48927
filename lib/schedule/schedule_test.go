package schedule

import (
	"testing"
	"time"

	"academia-backend/lib/scrapers/academia"
	"academia-backend/lib/timezone"

	"github.com/stretchr/testify/require"
)

func TestDayOrderFromText(t *testing.T) {
	testCases := []struct {
		text     string
		expected int
	}{
		{text: "", expected: 1},
		{text: "-", expected: 1},
		{text: "3", expected: 3},
		{text: "Day 5 (Exam)", expected: 5},
		{text: "9", expected: 5},
		{text: "no digits", expected: 1},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, DayOrderFromText(test.text), "text=%q", test.text)
	}
}

func calendarFixture() []academia.CalendarMonth {
	return []academia.CalendarMonth{
		{
			Label: "Jul '25",
			Days: []academia.CalendarDay{
				{Date: "30", Weekday: "Wed", Event: "Working Day", DayOrder: "3"},
			},
		},
		{
			Label: "Aug '25",
			Days: []academia.CalendarDay{
				{Date: "29", Weekday: "Fri", Event: "Working Day", DayOrder: "5"},
				{Date: "30", Weekday: "Sat", Event: "Working Day", DayOrder: "Day 1"},
			},
		},
	}
}

func TestResolveDayOrder(t *testing.T) {
	tz := timezone.Location

	dayOrder, ok := ResolveDayOrder(calendarFixture(), time.Date(2025, 8, 30, 10, 0, 0, 0, tz))
	require.True(t, ok)
	require.Equal(t, 1, dayOrder)

	dayOrder, ok = ResolveDayOrder(calendarFixture(), time.Date(2025, 7, 30, 10, 0, 0, 0, tz))
	require.True(t, ok)
	require.Equal(t, 3, dayOrder)

	// a date missing from the matched month yields no result
	_, ok = ResolveDayOrder(calendarFixture(), time.Date(2025, 8, 15, 10, 0, 0, 0, tz))
	require.False(t, ok)

	_, ok = ResolveDayOrder(nil, time.Date(2025, 8, 30, 10, 0, 0, 0, tz))
	require.False(t, ok)
}

// an unmatched month falls back to the first month available
func TestResolveDayOrderUpperCasedLabel(t *testing.T) {
	// some terms render month headers fully upper-cased
	months := []academia.CalendarMonth{
		{Label: "JUL '25", Days: []academia.CalendarDay{
			{Date: "30", DayOrder: "3"},
		}},
		{Label: "AUG '25", Days: []academia.CalendarDay{
			{Date: "30", DayOrder: "5"},
		}},
	}

	dayOrder, ok := ResolveDayOrder(months, time.Date(2025, 8, 30, 10, 0, 0, 0, timezone.Location))
	require.True(t, ok)
	require.Equal(t, 5, dayOrder)
}

func TestResolveDayOrderMonthFallback(t *testing.T) {
	months := []academia.CalendarMonth{
		{
			Label: "Feb '25",
			Days: []academia.CalendarDay{
				{Date: "30", Weekday: "Mon", Event: "Working Day", DayOrder: "2"},
			},
		},
	}
	dayOrder, ok := ResolveDayOrder(months, time.Date(2025, 8, 30, 10, 0, 0, 0, timezone.Location))
	require.True(t, ok)
	require.Equal(t, 2, dayOrder)
}

func scheduleFixture() ([]academia.DayOrderRow, academia.SlotMapping) {
	grid := []academia.DayOrderRow{
		{
			DayOrder: 1,
			Slots: []academia.TimeSlot{
				{Time: "09:00 - 10:00", Slot: "B", Occupied: true},
			},
		},
		{
			DayOrder: 2,
			Slots: []academia.TimeSlot{
				{Time: "08:00 - 09:00", Slot: "Z1", Occupied: true},
				{Time: "10:00 - 11:00", Slot: "C", Occupied: true},
			},
		},
	}
	mapping := academia.SlotMapping{
		"B":  {Code: "21CSC201J", Title: "Data Structures"},
		"Z1": {Code: "21CSC202J", Title: "Operating Systems"},
		"C":  {Code: "21MAB301T", Title: "Probability"},
	}
	return grid, mapping
}

func TestFindNextClassToday(t *testing.T) {
	grid, mapping := scheduleFixture()
	now := time.Date(2025, 8, 30, 8, 30, 0, 0, timezone.Location)

	result := FindNextClass(grid, mapping, calendarFixture(), now)
	require.True(t, result.Found)
	require.True(t, result.IsToday)
	require.Equal(t, "21CSC201J", result.Course.Code)
	require.Equal(t, "B", result.Slot)
	require.Equal(t, int64(30), result.MinutesUntil)
}

func TestFindNextClassTomorrow(t *testing.T) {
	grid, mapping := scheduleFixture()
	// past the only slot of day order 1; tomorrow is day order 2 whose
	// first mapped slot starts 08:00, resolved from its time text
	now := time.Date(2025, 8, 30, 9, 30, 0, 0, timezone.Location)

	result := FindNextClass(grid, mapping, calendarFixture(), now)
	require.True(t, result.Found)
	require.False(t, result.IsToday)
	require.Equal(t, "21CSC202J", result.Course.Code)
	require.Equal(t, "Z1", result.Slot)
	require.Equal(t, int64((24-9)*60-30+8*60), result.MinutesUntil)
}

func TestFindNextClassDayOrderWrap(t *testing.T) {
	grid := []academia.DayOrderRow{
		{
			DayOrder: 1,
			Slots: []academia.TimeSlot{
				{Time: "09:00 - 10:00", Slot: "B", Occupied: true},
			},
		},
	}
	mapping := academia.SlotMapping{"B": {Code: "21CSC201J"}}
	months := []academia.CalendarMonth{
		{
			Label: "Aug '25",
			Days: []academia.CalendarDay{
				{Date: "30", Weekday: "Sat", Event: "Working Day", DayOrder: "5"},
			},
		},
	}
	// day order 5 has no row; tomorrow wraps back to 1
	now := time.Date(2025, 8, 30, 20, 0, 0, 0, timezone.Location)

	result := FindNextClass(grid, mapping, months, now)
	require.True(t, result.Found)
	require.False(t, result.IsToday)
	require.Equal(t, "21CSC201J", result.Course.Code)
}

func TestFindNextClassNoResult(t *testing.T) {
	grid, mapping := scheduleFixture()

	// unresolvable date
	result := FindNextClass(grid, mapping, nil, time.Date(2025, 8, 30, 8, 0, 0, 0, timezone.Location))
	require.False(t, result.Found)

	// nothing mapped at all
	result = FindNextClass(grid, academia.SlotMapping{}, calendarFixture(), time.Date(2025, 8, 30, 8, 0, 0, 0, timezone.Location))
	require.False(t, result.Found)
}

func TestFindNextClassRepeatable(t *testing.T) {
	grid, mapping := scheduleFixture()
	now := time.Date(2025, 8, 30, 8, 30, 0, 0, timezone.Location)

	first := FindNextClass(grid, mapping, calendarFixture(), now)
	second := FindNextClass(grid, mapping, calendarFixture(), now)
	require.Equal(t, first, second)
}
