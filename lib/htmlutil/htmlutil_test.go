package htmlutil_test

import (
	"strings"
	"testing"

	"academia-backend/lib/htmlutil"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestGetText(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(
		`<table><tr><td>21CSC</td><td><b>Data</b> Structures</td></tr></table>`,
	))
	require.NoError(t, err)
	require.Equal(t, "21CSCData Structures", htmlutil.GetText(doc))
}

func TestCleanText(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"  Data   Structures \n", "Data Structures"},
		{"\tA\t\tB", "A B"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, testCase := range testCases {
		require.Equal(t, testCase.expected, htmlutil.CleanText(testCase.input))
	}
}
