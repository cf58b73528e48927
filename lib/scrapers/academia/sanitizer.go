package academia

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// the portal wraps most page bodies in a script call whose single-quoted
// argument is the actual HTML, with every byte hex-escaped
var sanitizerCall = regexp.MustCompile(`(?s)pageSanitizer\.sanitize\('(.*)'\);`)
var hexEscape = regexp.MustCompile(`\\x([0-9A-Fa-f]{2})`)

var ErrEmptyPayload = errors.New("sanitizer payload is empty")

// DecodePage recovers the HTML document from a raw portal response.
// Responses without the sanitizer marker are passed through unchanged,
// some endpoints serve plain HTML.
func DecodePage(raw string) (string, error) {
	match := sanitizerCall.FindStringSubmatch(raw)
	if match == nil {
		return raw, nil
	}

	payload := match[1]
	if payload == "" {
		return "", ErrEmptyPayload
	}

	decoded := hexEscape.ReplaceAllStringFunc(payload, func(escape string) string {
		codepoint, err := strconv.ParseUint(escape[2:], 16, 8)
		if err != nil {
			return escape
		}
		return string(rune(codepoint))
	})
	decoded = strings.ReplaceAll(decoded, `\\`, "")
	decoded = strings.ReplaceAll(decoded, `\'`, "'")
	return decoded, nil
}
