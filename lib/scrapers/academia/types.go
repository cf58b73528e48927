// Package academia scrapes the SRM Academia portal. The portal has no
// JSON API, every page is server-rendered HTML, sometimes wrapped in an
// obfuscated sanitizer payload. Pages are decoded, reduced to a generic
// list of tables, then interpreted by fixed table-index and column-offset
// conventions observed from the live portal.
package academia

// Table is one <table> element reduced to trimmed cell text. Index is
// the table's ordinal position in the document. Rows carry header and
// data cells undistinguished; cell counts may vary row to row.
type Table struct {
	Index int
	Rows  [][]string
}

type AttendanceRecord struct {
	CourseCode       string
	CourseTitle      string
	ClassesConducted int
	ClassesAbsent    int
	PercentageText   string
}

// StudentInfo is the label/value snapshot rendered above the attendance
// table (the second table on the attendance page). Values sit in the
// second column at fixed row positions.
type StudentInfo struct {
	RegistrationNumber string
	Name               string
	Department         string
	Specialization     string
}

type CourseRecord struct {
	Code    string
	Title   string
	Credits string
	Faculty string
	// SlotText is the raw slot cell, may encode several slot codes
	// separated by dashes.
	SlotText string
	GcrCode  string
	Room     string
	Slots    []string
}

// SlotMapping maps a slot code to the course meeting in that period.
type SlotMapping map[string]CourseRecord

type CalendarDay struct {
	Date     string
	Weekday  string
	Event    string
	DayOrder string
}

type CalendarMonth struct {
	Label string
	Days  []CalendarDay
}

type TimeSlot struct {
	// Time is the raw time-range header text, e.g. "08:00 - 08:50".
	Time string
	// Slot is the slot code occupying this period, empty when free.
	Slot     string
	Occupied bool
}

type DayOrderRow struct {
	DayOrder int
	Slots    []TimeSlot
}
