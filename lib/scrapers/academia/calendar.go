package academia

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var ErrNoCalendarData = errors.New("no calendar data found")

var monthAbbrevs = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// each month column occupies a fixed-width block of cells in a
// calendar row: date, weekday, event, day order, then a spacer
const monthBlockWidth = 5

// ParseCalendar interprets the academic planner page. The planner
// embeds its real document in an attribute payload on some terms and
// serves it inline on others, so extraction strategies are tried in
// order until one yields at least one month with at least one day.
func ParseCalendar(document string) ([]CalendarMonth, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return nil, err
	}

	strategies := []func(*goquery.Document) []CalendarMonth{
		calendarFromEmbeddedPlanner,
		calendarFromDocument,
		calendarFromMonthContainers,
	}
	for _, strategy := range strategies {
		months := strategy(doc)
		if len(months) > 0 {
			return months, nil
		}
	}
	return nil, ErrNoCalendarData
}

func calendarFromEmbeddedPlanner(doc *goquery.Document) []CalendarMonth {
	var months []CalendarMonth
	doc.Find("div.zc-pb-embed-placeholder-content").EachWithBreak(func(_ int, div *goquery.Selection) bool {
		payload := div.AttrOr("zmlvalue", "")
		if payload == "" {
			return true
		}
		inner, err := goquery.NewDocumentFromReader(strings.NewReader(payload))
		if err != nil {
			return true
		}
		months = calendarFromDocument(inner)
		return len(months) == 0
	})
	return months
}

func calendarFromDocument(doc *goquery.Document) []CalendarMonth {
	var months []CalendarMonth
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		months = monthsFromTable(table)
		return len(months) == 0
	})
	return months
}

// last resort: some terms render the planner inside a plain div, find
// any container mentioning a month abbreviation and re-parse its body
func calendarFromMonthContainers(doc *goquery.Document) []CalendarMonth {
	var months []CalendarMonth
	doc.Find("div").EachWithBreak(func(_ int, div *goquery.Selection) bool {
		text := div.Text()
		if !containsMonthAbbrev(text) {
			return true
		}
		body, err := div.Html()
		if err != nil {
			return true
		}
		inner, err := goquery.NewDocumentFromReader(strings.NewReader(body))
		if err != nil {
			return true
		}
		months = calendarFromDocument(inner)
		return len(months) == 0
	})
	return months
}

func containsMonthAbbrev(text string) bool {
	for _, abbrev := range monthAbbrevs {
		if strings.Contains(text, abbrev) {
			return true
		}
	}
	return false
}

// month headers carry an apostrophe year suffix ("Jul '25") or a full
// 4-digit year; the "Dt"/"Day" column labels are not months
func isMonthHeader(cell string) bool {
	if cell == "" || cell == "Dt" || cell == "Day" {
		return false
	}
	if strings.Contains(cell, "'") {
		return true
	}
	return containsFourDigitYear(cell)
}

func containsFourDigitYear(text string) bool {
	run := 0
	for _, c := range text {
		if c >= '0' && c <= '9' {
			run++
			if run == 4 {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

func isNumericText(text string) bool {
	if text == "" {
		return false
	}
	for _, c := range text {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func monthsFromTable(table *goquery.Selection) []CalendarMonth {
	tables, err := ExtractTables(mustHtml(table))
	if err != nil {
		return nil
	}
	rows := tables[0].Rows
	if len(rows) == 0 {
		return nil
	}

	var months []CalendarMonth
	for _, cell := range rows[0] {
		if isMonthHeader(cell) {
			months = append(months, CalendarMonth{Label: cell})
		}
	}
	if len(months) == 0 {
		return nil
	}

	for _, row := range rows[1:] {
		for monthIndex := range months {
			offset := monthIndex * monthBlockWidth
			if offset+3 >= len(row) {
				continue
			}
			if !isNumericText(row[offset]) {
				continue
			}
			months[monthIndex].Days = append(months[monthIndex].Days, CalendarDay{
				Date:     row[offset],
				Weekday:  row[offset+1],
				Event:    row[offset+2],
				DayOrder: row[offset+3],
			})
		}
	}

	hasDays := false
	for _, month := range months {
		if len(month.Days) > 0 {
			hasDays = true
			break
		}
	}
	if !hasDays {
		return nil
	}
	return months
}

func mustHtml(sel *goquery.Selection) string {
	body, err := goquery.OuterHtml(sel)
	if err != nil {
		return ""
	}
	return body
}
