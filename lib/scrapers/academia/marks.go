package academia

// marks live in the fourth table of the attendance page's table set.
// Its column layout varies by term, only the course code in column 0
// has a fixed meaning, so rows are kept nearly verbatim. Row 12 is a
// portal-rendered spacer and is dropped.
const marksTableIndex = 3
const marksSpacerRow = 12

// MarksRow is one course's marks entry. Cells carries the full row as
// rendered, including the course code.
type MarksRow struct {
	CourseCode string
	Cells      []string
}

// MarksTable is the marks table: the header row plus per-course rows.
type MarksTable struct {
	Header []string
	Rows   []MarksRow
}

// ParseMarks interprets the marks table. The header row is kept
// separately; empty rows and the spacer row are skipped.
func ParseMarks(tables []Table) (MarksTable, error) {
	if len(tables) <= marksTableIndex {
		return MarksTable{}, ErrInsufficientTables
	}

	rows := tables[marksTableIndex].Rows
	if len(rows) == 0 {
		return MarksTable{}, nil
	}

	marks := MarksTable{Header: rows[0]}
	for i, row := range rows {
		if i == 0 || i == marksSpacerRow {
			continue
		}
		if len(row) == 0 {
			continue
		}
		marks.Rows = append(marks.Rows, MarksRow{
			CourseCode: row[0],
			Cells:      row,
		})
	}
	return marks, nil
}
