package academia

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodePage(t *testing.T) {
	raw := `<script>pageSanitizer.sanitize('\x3C\x74\x61\x62\x6C\x65\x3E\\it\'s\x3C\x2F\x74\x61\x62\x6C\x65\x3E');</script>`

	decoded, err := DecodePage(raw)
	require.NoError(t, err)
	require.Equal(t, "<table>it's</table>", decoded)
}

func TestDecodePageIdempotent(t *testing.T) {
	raw := `<script>pageSanitizer.sanitize('\x68\x69');</script>`

	first, err := DecodePage(raw)
	require.NoError(t, err)
	second, err := DecodePage(raw)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestDecodePagePassthrough(t *testing.T) {
	raw := "<html><body><table><tr><td>plain</td></tr></table></body></html>"

	decoded, err := DecodePage(raw)
	require.NoError(t, err)
	require.Equal(t, raw, decoded)
}

func TestDecodePageMultiline(t *testing.T) {
	raw := "pageSanitizer.sanitize('\\x68\\x69\n\\x68\\x69');"

	decoded, err := DecodePage(raw)
	require.NoError(t, err)
	require.Equal(t, "hi\nhi", decoded)
}

func TestDecodePageEmptyPayload(t *testing.T) {
	_, err := DecodePage("pageSanitizer.sanitize('');")
	require.ErrorIs(t, err, ErrEmptyPayload)
}
