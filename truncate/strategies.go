package truncate

import (
	"strings"
	"unicode/utf8"
)

// truncateEnd keeps the first maxLen-len(suffix) runes.
func (t *Truncator) truncateEnd(text string, maxLen int) string {
	runes := []rune(text)
	keep := clamp(maxLen-utf8.RuneCountInString(t.suffix), len(runes))
	return string(runes[:keep]) + t.suffix
}

// truncateMiddle keeps maxLen/2 runes at the end and maxLen/2 minus the
// suffix at the start. Odd limits leave one character unused.
func (t *Truncator) truncateMiddle(text string, maxLen int) string {
	runes := []rune(text)
	half := maxLen / 2

	head := clamp(half-utf8.RuneCountInString(t.suffix), len(runes))
	tail := clamp(half, len(runes)-head)

	var sb strings.Builder
	sb.WriteString(string(runes[:head]))
	sb.WriteString(t.suffix)
	sb.WriteString(string(runes[len(runes)-tail:]))
	return sb.String()
}

// truncateStart keeps the last maxLen-len(suffix) runes.
func (t *Truncator) truncateStart(text string, maxLen int) string {
	runes := []rune(text)
	keep := clamp(maxLen-utf8.RuneCountInString(t.suffix), len(runes))
	return t.suffix + string(runes[len(runes)-keep:])
}

// clamp bounds n to [0, limit].
func clamp(n, limit int) int {
	if n < 0 {
		return 0
	}
	if n > limit {
		return limit
	}
	return n
}
