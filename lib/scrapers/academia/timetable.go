package academia

import (
	"regexp"
	"slices"
	"strconv"
)

var dayOrderLabel = regexp.MustCompile(`Day\s*(\d+)`)

// the unified timetable renders row 0 as the time-range header and the
// day-order rows from row 3 onward; anything shorter is a layout table
const timetableMinRows = 7
const timetableFirstDayRow = 3

// slot cells holding these tokens mark a free period
func isUnoccupiedToken(cell string) bool {
	return cell == "" || cell == "A" || cell == "X"
}

// ParseTimetable interprets the unified timetable grid. Rows whose
// first cell does not carry a "Day N" label are skipped. Duplicate
// day orders keep the first occurrence in document order; the result
// is sorted ascending. An empty grid is valid, not an error.
func ParseTimetable(tables []Table) []DayOrderRow {
	seen := map[int]bool{}
	var grid []DayOrderRow

	for _, table := range tables {
		if len(table.Rows) < timetableMinRows {
			continue
		}
		header := table.Rows[0]
		for _, row := range table.Rows[timetableFirstDayRow:] {
			// a day row needs slot cells beyond the label
			if len(row) < 2 {
				continue
			}
			match := dayOrderLabel.FindStringSubmatch(row[0])
			if match == nil {
				continue
			}
			dayOrder, err := strconv.Atoi(match[1])
			if err != nil || seen[dayOrder] {
				continue
			}
			seen[dayOrder] = true

			var timeSlots []TimeSlot
			for i := 1; i < len(row) && i < len(header); i++ {
				cell := row[i]
				timeSlots = append(timeSlots, TimeSlot{
					Time:     header[i],
					Slot:     cell,
					Occupied: !isUnoccupiedToken(cell),
				})
			}
			grid = append(grid, DayOrderRow{
				DayOrder: dayOrder,
				Slots:    timeSlots,
			})
		}
	}

	slices.SortFunc(grid, func(a, b DayOrderRow) int {
		return a.DayOrder - b.DayOrder
	})
	return grid
}
