package studentdata

import (
	"academia-backend/lib/scrapers/academia"

	"github.com/antzucaro/matchr"
)

// titles drift between the attendance page and the course listing
// ("Data Structures" vs "Data Structures and Algorithms"), so fuzzy
// matching backs up the exact course-code pass
const minTitleSimilarity = 0.85

type LinkedAttendance struct {
	Attendance academia.AttendanceRecord
	Course     academia.CourseRecord
	Linked     bool

	Percentage    float64
	ClassesNeeded int
	ClassesMargin int
}

// LinkAttendance pairs each attendance record with its course listing
// entry, by course code first and Jaro-Winkler title similarity as a
// fallback, then computes the target math per record.
func LinkAttendance(
	records []academia.AttendanceRecord,
	courses []academia.CourseRecord,
	targetPercent int,
) []LinkedAttendance {
	byCode := make(map[string]academia.CourseRecord, len(courses))
	for _, course := range courses {
		byCode[course.Code] = course
	}

	linked := make([]LinkedAttendance, 0, len(records))
	for _, record := range records {
		entry := LinkedAttendance{
			Attendance:    record,
			Percentage:    academia.Percentage(record.ClassesConducted, record.ClassesAbsent),
			ClassesNeeded: academia.ClassesNeeded(record.ClassesConducted, record.ClassesAbsent, targetPercent),
			ClassesMargin: academia.ClassesMargin(record.ClassesConducted, record.ClassesAbsent, targetPercent),
		}

		if course, ok := byCode[record.CourseCode]; ok {
			entry.Course = course
			entry.Linked = true
		} else if course, ok := closestByTitle(record.CourseTitle, courses); ok {
			entry.Course = course
			entry.Linked = true
		}

		linked = append(linked, entry)
	}
	return linked
}

func closestByTitle(title string, courses []academia.CourseRecord) (academia.CourseRecord, bool) {
	var best academia.CourseRecord
	var bestSimilarity float64

	for _, course := range courses {
		similarity := matchr.JaroWinkler(title, course.Title, false)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = course
		}
	}
	if bestSimilarity < minTitleSimilarity {
		return academia.CourseRecord{}, false
	}
	return best, true
}
