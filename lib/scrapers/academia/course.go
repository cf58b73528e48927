package academia

import (
	"regexp"
	"strings"
)

// course codes look like "21CSC201J": 2 digits, a 2-3 letter
// department, 3 digits, optional variant letter
var courseCodeRegexp = regexp.MustCompile(`^\d{2}[A-Z]{2,3}\d{3}[A-Z]?$`)
var numericRegexp = regexp.MustCompile(`^\d+$`)

// course tables appear at a variable table index depending on the
// term, so rows are classified instead of addressed by position
const courseRowWidth = 11

// IsCourseRow reports whether a row of cell text looks like a course
// listing entry: wide enough, with a course code in the first or second
// column, or a bare serial number in the first.
func IsCourseRow(row []string) bool {
	if len(row) < 5 {
		return false
	}
	if courseCodeRegexp.MatchString(row[0]) || courseCodeRegexp.MatchString(row[1]) {
		return true
	}
	return numericRegexp.MatchString(row[0])
}

// ParseCourses scans every table for rows classified as course entries
// and reads them by the portal's column conventions. Header rows and
// rows too narrow to carry the full column set are skipped.
func ParseCourses(tables []Table) []CourseRecord {
	var courses []CourseRecord
	for _, table := range tables {
		for i, row := range table.Rows {
			if i == 0 {
				continue
			}
			if !IsCourseRow(row) {
				continue
			}
			if len(row) < courseRowWidth {
				continue
			}
			slotText := row[8]
			courses = append(courses, CourseRecord{
				Code:     row[1],
				Title:    row[2],
				Credits:  row[3],
				Faculty:  row[7],
				SlotText: slotText,
				GcrCode:  row[9],
				Room:     row[10],
				Slots:    SplitSlots(slotText),
			})
		}
	}
	return courses
}

// SplitSlots breaks a slot cell like "A-B-C" into its slot codes.
func SplitSlots(slotText string) []string {
	var slots []string
	for _, slot := range strings.Split(slotText, "-") {
		slot = strings.TrimSpace(slot)
		if slot == "" {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}

// BuildSlotMapping maps each slot code to its course. When two courses
// claim the same slot the later one in listing order wins, matching the
// portal's own rendering.
func BuildSlotMapping(courses []CourseRecord) SlotMapping {
	mapping := SlotMapping{}
	for _, course := range courses {
		for _, slot := range course.Slots {
			mapping[slot] = course
		}
	}
	return mapping
}
