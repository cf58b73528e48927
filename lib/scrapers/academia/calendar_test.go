package academia

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func calendarTableHtml() string {
	return `
	<table>
		<tr>
			<td>Dt</td><td>Day</td><td>Jun '25</td><td></td><td></td>
			<td>Dt</td><td>Day</td><td>Jul '25</td><td></td><td></td>
		</tr>
		<tr>
			<td>1</td><td>Sun</td><td>Holiday</td><td>-</td><td></td>
			<td>1</td><td>Tue</td><td>Working Day</td><td>Day 1</td><td></td>
		</tr>
		<tr>
			<td>2</td><td>Mon</td><td>Working Day</td><td>Day 2</td><td></td>
			<td>2</td><td>Wed</td><td>Working Day</td><td>Day 2</td><td></td>
		</tr>
	</table>`
}

func TestParseCalendar(t *testing.T) {
	months, err := ParseCalendar("<html><body>" + calendarTableHtml() + "</body></html>")
	require.NoError(t, err)
	require.Len(t, months, 2)

	require.Equal(t, "Jun '25", months[0].Label)
	require.Equal(t, "Jul '25", months[1].Label)
	require.Equal(t, []CalendarDay{
		{Date: "1", Weekday: "Sun", Event: "Holiday", DayOrder: "-"},
		{Date: "2", Weekday: "Mon", Event: "Working Day", DayOrder: "Day 2"},
	}, months[0].Days)
	require.Equal(t, []CalendarDay{
		{Date: "1", Weekday: "Tue", Event: "Working Day", DayOrder: "Day 1"},
		{Date: "2", Weekday: "Wed", Event: "Working Day", DayOrder: "Day 2"},
	}, months[1].Days)
}

func TestParseCalendarEmbeddedPlanner(t *testing.T) {
	payload := strings.ReplaceAll(calendarTableHtml(), `"`, "&quot;")
	document := fmt.Sprintf(
		`<html><body><div class="zc-pb-embed-placeholder-content" zmlvalue="%s"></div></body></html>`,
		payload,
	)

	months, err := ParseCalendar(document)
	require.NoError(t, err)
	require.Len(t, months, 2)
	require.Equal(t, "Jun '25", months[0].Label)
}

func TestParseCalendarSkipsNonNumericDates(t *testing.T) {
	document := `
	<table>
		<tr><td>Dt</td><td>Day</td><td>Aug 2025</td><td></td><td></td></tr>
		<tr><td>n/a</td><td>Fri</td><td>Event</td><td>Day 1</td><td></td></tr>
		<tr><td>4</td><td>Mon</td><td>Working Day</td><td>Day 3</td><td></td></tr>
	</table>`

	months, err := ParseCalendar(document)
	require.NoError(t, err)
	require.Len(t, months, 1)
	require.Equal(t, "Aug 2025", months[0].Label)
	require.Equal(t, []CalendarDay{
		{Date: "4", Weekday: "Mon", Event: "Working Day", DayOrder: "Day 3"},
	}, months[0].Days)
}

func TestParseCalendarNoData(t *testing.T) {
	_, err := ParseCalendar("<html><body><p>maintenance</p></body></html>")
	require.ErrorIs(t, err, ErrNoCalendarData)

	// tables without month headers are not calendars
	_, err = ParseCalendar("<table><tr><td>a</td><td>b</td></tr></table>")
	require.ErrorIs(t, err, ErrNoCalendarData)
}
