package academia

import (
	"errors"
	"strings"

	"academia-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoTables means the document contained zero <table> elements,
// usually because the portal served a login or error page instead
// of data. It is never downgraded to an empty success.
var ErrNoTables = errors.New("no tables found in document")

// ExtractTables reduces an HTML document to every table it contains,
// in document order. Rows that yield zero cells are dropped; a table
// with zero surviving rows is still emitted.
func ExtractTables(document string) ([]Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return nil, err
	}

	var tables []Table
	doc.Find("table").Each(func(index int, table *goquery.Selection) {
		var rows [][]string
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			var cells []string
			row.Find("td,th").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, htmlutil.CellText(cell))
			})
			if len(cells) == 0 {
				return
			}
			rows = append(rows, cells)
		})
		tables = append(tables, Table{
			Index: index,
			Rows:  rows,
		})
	})

	if len(tables) == 0 {
		return nil, ErrNoTables
	}
	return tables, nil
}
