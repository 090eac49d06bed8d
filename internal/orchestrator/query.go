package orchestrator

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var questionWords = []string{
	"how", "what", "who", "where", "when", "why", "which", "whose", "whom",
	"can you", "what's", "where's", "how's",
}

// QueryModifier normalizes a query before it is shown or answered: it is
// lowercased and trimmed, ends in "?" when it reads as a question and "."
// otherwise, and starts with a capital letter.
func QueryModifier(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return ""
	}

	end := "."
	for _, w := range questionWords {
		if strings.Contains(q, w+" ") {
			end = "?"
			break
		}
	}

	switch q[len(q)-1] {
	case '.', '?', '!':
		q = q[:len(q)-1] + end
	default:
		q += end
	}
	r, size := utf8.DecodeRuneInString(q)
	return string(unicode.ToUpper(r)) + q[size:]
}
