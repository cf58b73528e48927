package schedule

import (
	"fmt"
	"time"

	"academia-backend/lib/scrapers/academia"

	ics "github.com/arran4/golang-ical"
)

// ExportICS renders the upcoming classes as an iCalendar document,
// walking forward day by day from `from` and resolving each date's day
// order against the academic calendar. Dates without a calendar entry
// or without a timetable row contribute no events.
func ExportICS(
	grid []academia.DayOrderRow,
	mapping academia.SlotMapping,
	months []academia.CalendarMonth,
	from time.Time,
	days int,
) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//academia-backend//class schedule//EN")

	for offset := 0; offset < days; offset++ {
		date := from.AddDate(0, 0, offset)
		dayOrder, ok := ResolveDayOrder(months, date)
		if !ok {
			continue
		}
		row, ok := findRow(grid, dayOrder)
		if !ok {
			continue
		}

		for slotIndex, slot := range row.Slots {
			if !slot.Occupied {
				continue
			}
			course, ok := mapping[slot.Slot]
			if !ok {
				continue
			}
			start, ok := slotStart(slot, date)
			if !ok {
				continue
			}

			event := cal.AddEvent(fmt.Sprintf(
				"%s-%d-%d@academia-backend",
				date.Format("20060102"), dayOrder, slotIndex,
			))
			event.SetCreatedTime(from)
			event.SetDtStampTime(from)
			event.SetStartAt(start)
			event.SetEndAt(start.Add(time.Hour))
			event.SetSummary(course.Title)
			event.SetLocation(course.Room)
			event.SetDescription(fmt.Sprintf("%s, slot %s, %s", course.Code, slot.Slot, course.Faculty))
		}
	}

	return cal.Serialize(), nil
}
