package academia

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestExtractTables(t *testing.T) {
	document := `
	<html><body>
	<table>
		<tr><th> Code </th><th>Title</th></tr>
		<tr><td>21CSC201J</td><td>Data Structures</td></tr>
	</table>
	<p>in between</p>
	<table>
		<tr><td>solo</td></tr>
	</table>
	</body></html>`

	tables, err := ExtractTables(document)
	require.NoError(t, err)

	expected := []Table{
		{
			Index: 0,
			Rows: [][]string{
				{"Code", "Title"},
				{"21CSC201J", "Data Structures"},
			},
		},
		{
			Index: 1,
			Rows:  [][]string{{"solo"}},
		},
	}
	diff := cmp.Diff(expected, tables)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestExtractTablesDropsEmptyRows(t *testing.T) {
	document := `<table><tr></tr><tr><td>kept</td></tr></table>`

	tables, err := ExtractTables(document)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	require.Equal(t, [][]string{{"kept"}}, tables[0].Rows)
}

func TestExtractTablesNoTables(t *testing.T) {
	_, err := ExtractTables(`<html><body><h1>Sign in to continue</h1></body></html>`)
	require.ErrorIs(t, err, ErrNoTables)
}

func TestExtractTablesEmptyTableStillEmitted(t *testing.T) {
	tables, err := ExtractTables(`<table></table>`)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	require.Empty(t, tables[0].Rows)
}
