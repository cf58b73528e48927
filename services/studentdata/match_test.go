package studentdata

import (
	"math"
	"testing"

	"academia-backend/lib/scrapers/academia"

	"github.com/stretchr/testify/require"
)

func TestLinkAttendanceByCode(t *testing.T) {
	records := []academia.AttendanceRecord{
		{CourseCode: "21CSC201J", CourseTitle: "Data Structures", ClassesConducted: 20, ClassesAbsent: 6},
	}
	courses := []academia.CourseRecord{
		{Code: "21CSC202J", Title: "Operating Systems", Room: "TP201"},
		{Code: "21CSC201J", Title: "Data Structures and Algorithms", Room: "TP101"},
	}

	linked := LinkAttendance(records, courses, 75)
	require.Len(t, linked, 1)
	require.True(t, linked[0].Linked)
	require.Equal(t, "TP101", linked[0].Course.Room)
	require.InDelta(t, 70.0, linked[0].Percentage, 0.001)
	require.Equal(t, 4, linked[0].ClassesNeeded)
	require.Equal(t, 0, linked[0].ClassesMargin)
}

func TestLinkAttendanceByTitle(t *testing.T) {
	// attendance pages sometimes carry a different code suffix than the
	// course listing, leaving only the title to link on
	records := []academia.AttendanceRecord{
		{CourseCode: "21CSC201T", CourseTitle: "Data Structures", ClassesConducted: 20, ClassesAbsent: 2},
	}
	courses := []academia.CourseRecord{
		{Code: "21CSC201J", Title: "Data Structure", Room: "TP101"},
		{Code: "21MAB301T", Title: "Probability and Statistics", Room: "TP301"},
	}

	linked := LinkAttendance(records, courses, 75)
	require.Len(t, linked, 1)
	require.True(t, linked[0].Linked)
	require.Equal(t, "21CSC201J", linked[0].Course.Code)
	require.Equal(t, 4, linked[0].ClassesMargin)
}

func TestLinkAttendanceUnlinked(t *testing.T) {
	records := []academia.AttendanceRecord{
		{CourseCode: "21PDM101L", CourseTitle: "Professional Development", ClassesConducted: 10, ClassesAbsent: 0},
	}
	courses := []academia.CourseRecord{
		{Code: "21CSC201J", Title: "Data Structures", Room: "TP101"},
	}

	linked := LinkAttendance(records, courses, 75)
	require.Len(t, linked, 1)
	require.False(t, linked[0].Linked)
	require.Empty(t, linked[0].Course.Code)
}

func TestLinkAttendanceNoCourses(t *testing.T) {
	records := []academia.AttendanceRecord{
		{CourseCode: "21CSC201J", CourseTitle: "Data Structures", ClassesConducted: 0, ClassesAbsent: 0},
	}

	linked := LinkAttendance(records, nil, 75)
	require.Len(t, linked, 1)
	require.False(t, linked[0].Linked)
	require.Equal(t, 0.0, linked[0].Percentage)
	require.Equal(t, 0, linked[0].ClassesNeeded)
}

func TestLinkAttendanceUnreachableTarget(t *testing.T) {
	records := []academia.AttendanceRecord{
		{CourseCode: "21CSC201J", CourseTitle: "Data Structures", ClassesConducted: 20, ClassesAbsent: 1},
	}

	linked := LinkAttendance(records, nil, 100)
	require.Len(t, linked, 1)
	require.Equal(t, math.MaxInt32, linked[0].ClassesNeeded)
}
