package normalizer

import (
	"strings"
	"unicode"
)

// Normalize prepares a raw inbound message for classification: control
// characters become spaces, whitespace runs collapse to a single space and
// surrounding whitespace is trimmed. An empty return value means the message
// carries no classifiable content and must never reach the completion
// endpoint.
func Normalize(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw))

	lastSpace := false
	for _, r := range raw {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			if !lastSpace {
				sb.WriteRune(' ')
				lastSpace = true
			}
			continue
		}

		sb.WriteRune(r)
		lastSpace = false
	}

	return strings.TrimSpace(sb.String())
}
