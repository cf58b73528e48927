// Package schedule reconciles a timetable grid, a slot mapping and the
// academic calendar against wall-clock time to answer "what class is
// next". All functions are pure; the caller supplies the clock.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"academia-backend/lib/scrapers/academia"
)

// the university runs a rotating cycle of five academic day orders
const DayOrderMax = 5

type slotTime struct {
	StartHour int
	EndHour   int
}

// canonical one-hour periods; slot letters map to fixed start times
// regardless of what the timetable header happens to render
var slotTimes = map[string]slotTime{
	"A": {8, 9},
	"B": {9, 10},
	"C": {10, 11},
	"D": {11, 12},
	"E": {12, 13},
	"F": {13, 14},
	"G": {14, 15},
	"H": {15, 16},
	"I": {16, 17},
	"J": {17, 18},
	"K": {18, 19},
	"L": {19, 20},
}

var firstInteger = regexp.MustCompile(`\d+`)

// DayOrderFromText extracts a day order from the calendar's free-text
// day-order cell. Blank or dash cells default to 1; values outside the
// cycle are clamped.
func DayOrderFromText(text string) int {
	text = strings.TrimSpace(text)
	if text == "" || text == "-" {
		return 1
	}
	match := firstInteger.FindString(text)
	if match == "" {
		return 1
	}
	dayOrder, err := strconv.Atoi(match)
	if err != nil {
		return 1
	}
	if dayOrder < 1 {
		return 1
	}
	if dayOrder > DayOrderMax {
		return DayOrderMax
	}
	return dayOrder
}

// ResolveDayOrder finds the day order for a calendar date. Month
// matching degrades from abbreviation plus year suffix, to
// abbreviation alone, to the first month available. A false result
// means the calendar has no entry for the date.
func ResolveDayOrder(months []academia.CalendarMonth, now time.Time) (int, bool) {
	month, ok := matchMonth(months, now)
	if !ok {
		return 0, false
	}

	date := strconv.Itoa(now.Day())
	for _, day := range month.Days {
		if day.Date == date {
			return DayOrderFromText(day.DayOrder), true
		}
	}
	return 0, false
}

func matchMonth(months []academia.CalendarMonth, now time.Time) (academia.CalendarMonth, bool) {
	if len(months) == 0 {
		return academia.CalendarMonth{}, false
	}

	abbrev := now.Format("Jan")
	fullYear := strconv.Itoa(now.Year())
	shortYear := fmt.Sprintf("'%02d", now.Year()%100)

	for _, month := range months {
		if containsFold(month.Label, abbrev) &&
			(strings.Contains(month.Label, fullYear) || strings.Contains(month.Label, shortYear)) {
			return month, true
		}
	}
	for _, month := range months {
		if containsFold(month.Label, abbrev) {
			return month, true
		}
	}
	return months[0], true
}

// the portal is not consistent about month-label casing ("Jul '25" one
// term, "JUL '25" the next)
func containsFold(label, abbrev string) bool {
	return strings.Contains(strings.ToLower(label), strings.ToLower(abbrev))
}

// NextClassResult reports the upcoming class, if any. Found false is a
// valid answer, not a failure.
type NextClassResult struct {
	Course       academia.CourseRecord
	Slot         string
	MinutesUntil int64
	IsToday      bool
	Found        bool
}

// FindNextClass answers "which class is next" for the current time.
// Today's row prefers the slot with the smallest wait; if nothing is
// left today, tomorrow's day order is consulted and its first mapped
// slot in column order wins.
func FindNextClass(
	grid []academia.DayOrderRow,
	mapping academia.SlotMapping,
	months []academia.CalendarMonth,
	now time.Time,
) NextClassResult {
	dayOrder, ok := ResolveDayOrder(months, now)
	if !ok {
		return NextClassResult{}
	}

	if row, ok := findRow(grid, dayOrder); ok {
		if result, ok := nextToday(row, mapping, now); ok {
			return result
		}
	}

	tomorrowOrder := dayOrder + 1
	if tomorrowOrder > DayOrderMax {
		tomorrowOrder = 1
	}
	if row, ok := findRow(grid, tomorrowOrder); ok {
		if result, ok := firstTomorrow(row, mapping, now); ok {
			return result
		}
	}
	return NextClassResult{}
}

func findRow(grid []academia.DayOrderRow, dayOrder int) (academia.DayOrderRow, bool) {
	for _, row := range grid {
		if row.DayOrder == dayOrder {
			return row, true
		}
	}
	return academia.DayOrderRow{}, false
}

func nextToday(row academia.DayOrderRow, mapping academia.SlotMapping, now time.Time) (NextClassResult, bool) {
	best := NextClassResult{}
	for _, slot := range row.Slots {
		if !slot.Occupied {
			continue
		}
		course, ok := mapping[slot.Slot]
		if !ok {
			continue
		}
		start, ok := slotStart(slot, now)
		if !ok || !start.After(now) {
			continue
		}
		minutes := int64(start.Sub(now).Minutes())
		if !best.Found || minutes < best.MinutesUntil {
			best = NextClassResult{
				Course:       course,
				Slot:         slot.Slot,
				MinutesUntil: minutes,
				IsToday:      true,
				Found:        true,
			}
		}
	}
	return best, best.Found
}

// tomorrow takes the first mapped slot in column order rather than the
// earliest start; the two rules disagree only on grids whose columns
// are out of chronological order
func firstTomorrow(row academia.DayOrderRow, mapping academia.SlotMapping, now time.Time) (NextClassResult, bool) {
	tomorrow := now.AddDate(0, 0, 1)
	for _, slot := range row.Slots {
		if !slot.Occupied {
			continue
		}
		course, ok := mapping[slot.Slot]
		if !ok {
			continue
		}
		start, ok := slotStart(slot, tomorrow)
		if !ok {
			continue
		}
		return NextClassResult{
			Course:       course,
			Slot:         slot.Slot,
			MinutesUntil: int64(start.Sub(now).Minutes()),
			IsToday:      false,
			Found:        true,
		}, true
	}
	return NextClassResult{}, false
}

// slotStart resolves a slot's start on the given date, preferring the
// canonical slot table and falling back to the header's time text.
func slotStart(slot academia.TimeSlot, date time.Time) (time.Time, bool) {
	if canonical, ok := slotTimes[slot.Slot]; ok {
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			canonical.StartHour, 0, 0, 0, date.Location(),
		), true
	}
	hour, minute, ok := parseStartTime(slot.Time)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		hour, minute, 0, 0, date.Location(),
	), true
}

var startTimeFormats = []string{"15:04", "3:04 PM", "15:04:05"}

func parseStartTime(timeRange string) (int, int, bool) {
	start := strings.TrimSpace(strings.Split(timeRange, "-")[0])
	for _, format := range startTimeFormats {
		parsed, err := time.Parse(format, start)
		if err == nil {
			return parsed.Hour(), parsed.Minute(), true
		}
	}
	return 0, 0, false
}
