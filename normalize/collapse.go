package normalize

import "strings"

// ellipsisRun holds the runes that merge into an adjacent ellipsis.
const ellipsisRun = "…․.,;∶:–-"

// Collapse replaces each run of ellipsis-adjacent punctuation that contains
// at least one "…" with a single "…". Runs without an ellipsis are kept.
//
//	Collapse("Part one∶…")  // "Part one…"
//	Collapse("a……b")        // "a…b"
//	Collapse("a∶b")         // "a∶b"
func Collapse(s string) string {
	if !strings.Contains(s, Ellipsis) {
		return s
	}

	runes := []rune(s)
	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(runes); {
		if !strings.ContainsRune(ellipsisRun, runes[i]) {
			sb.WriteRune(runes[i])
			i++
			continue
		}

		j := i
		hasEllipsis := false
		for j < len(runes) && strings.ContainsRune(ellipsisRun, runes[j]) {
			if runes[j] == '…' {
				hasEllipsis = true
			}
			j++
		}

		if hasEllipsis {
			sb.WriteString(Ellipsis)
		} else {
			sb.WriteString(string(runes[i:j]))
		}
		i = j
	}

	return sb.String()
}
