package academia

import (
	"errors"
	"math"
	"strconv"
)

// attendance lives in the third table on the attendance page, the
// second holds the student-info snapshot. Layout changes on the portal
// show up as a failing ErrInsufficientTables, not a misparse.
const attendanceTableIndex = 2
const studentInfoTableIndex = 1

const attendanceRowWidth = 9

var ErrInsufficientTables = errors.New("insufficient tables for attendance")

// ParseAttendance interprets the attendance table. The header row is
// skipped; rows narrower than the expected width are skipped silently.
func ParseAttendance(tables []Table) ([]AttendanceRecord, error) {
	if len(tables) <= attendanceTableIndex {
		return nil, ErrInsufficientTables
	}

	var records []AttendanceRecord
	rows := tables[attendanceTableIndex].Rows
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < attendanceRowWidth {
			continue
		}
		conducted, _ := strconv.Atoi(row[6])
		absent, _ := strconv.Atoi(row[7])
		records = append(records, AttendanceRecord{
			CourseCode:       row[0],
			CourseTitle:      row[1],
			ClassesConducted: conducted,
			ClassesAbsent:    absent,
			PercentageText:   row[8],
		})
	}
	return records, nil
}

// ParseStudentInfo reads the student-info snapshot table. Missing rows
// leave the corresponding field empty.
func ParseStudentInfo(tables []Table) (StudentInfo, error) {
	if len(tables) <= studentInfoTableIndex {
		return StudentInfo{}, ErrInsufficientTables
	}

	rows := tables[studentInfoTableIndex].Rows
	value := func(row int) string {
		if row >= len(rows) || len(rows[row]) < 2 {
			return ""
		}
		return rows[row][1]
	}
	return StudentInfo{
		RegistrationNumber: value(0),
		Name:               value(1),
		Department:         value(2),
		Specialization:     value(4),
	}, nil
}

// Percentage returns the attended fraction as a percentage. Zero
// conducted classes yield zero.
func Percentage(conducted, absent int) float64 {
	if conducted <= 0 {
		return 0
	}
	present := conducted - absent
	return float64(present) / float64(conducted) * 100
}

// ClassesNeeded returns how many consecutive classes must be attended
// to reach the target percentage. Zero when already at or above target.
func ClassesNeeded(conducted, absent, targetPercent int) int {
	if conducted <= 0 {
		return 0
	}
	target := clampTarget(targetPercent)
	t := float64(target) / 100
	present := float64(conducted - absent)
	if present >= t*float64(conducted) {
		return 0
	}
	if target == 100 {
		// unreachable once a class has been missed
		return math.MaxInt32
	}
	needed := int(math.Ceil((t*float64(conducted) - present) / (1 - t)))
	if needed < 1 {
		needed = 1
	}
	return needed
}

// ClassesMargin returns how many upcoming classes can be missed while
// staying at or above the target percentage. Zero when below target.
func ClassesMargin(conducted, absent, targetPercent int) int {
	if conducted <= 0 {
		return 0
	}
	target := clampTarget(targetPercent)
	t := float64(target) / 100
	present := float64(conducted - absent)
	if present < t*float64(conducted) {
		return 0
	}
	margin := int(math.Floor((present - t*float64(conducted)) / t))
	if margin < 0 {
		margin = 0
	}
	return margin
}

// DefaultTargetPercent is the attendance threshold the university
// enforces for exam eligibility.
const DefaultTargetPercent = 75

func clampTarget(target int) int {
	if target < 1 {
		return 1
	}
	if target > 100 {
		return 100
	}
	return target
}
