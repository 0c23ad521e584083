package abbrev

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/randalmurphal/titletrunc/normalize"
	"github.com/randalmurphal/titletrunc/truncate"
)

// DefaultSeparators are the normalized glyphs that make natural cut points.
var DefaultSeparators = []rune{'–', '∶', '⁄', '？', 'ǀ', '⧵'}

// DefaultPrimary is the separator tried on its own before the full set.
const DefaultPrimary = '∶'

// Generator builds candidate lists. The zero value is not usable; use
// NewGenerator.
type Generator struct {
	separators []rune
	primary    rune
	keys       bool
	tail       *truncate.Truncator
	middle     *truncate.Truncator
}

// NewGenerator creates a generator with the default separators and every
// heuristic enabled.
func NewGenerator() *Generator {
	return &Generator{
		separators: DefaultSeparators,
		primary:    DefaultPrimary,
		keys:       true,
		tail:       truncate.NewFromEnd().WithSuffix(normalize.Ellipsis),
		middle:     truncate.NewFromMiddle().WithSuffix(normalize.Ellipsis),
	}
}

// WithSeparators replaces the full separator set.
func (g *Generator) WithSeparators(seps ...rune) *Generator {
	g.separators = seps
	return g
}

// WithPrimarySeparator sets the separator tried on its own.
func (g *Generator) WithPrimarySeparator(sep rune) *Generator {
	g.primary = sep
	return g
}

// WithKeyRemoval toggles the musical key heuristic.
func (g *Generator) WithKeyRemoval(enabled bool) *Generator {
	g.keys = enabled
	return g
}

// Separators returns the full separator set.
func (g *Generator) Separators() []rune {
	return g.separators
}

// Generate returns the candidates for text in heuristic order.
//
// text must be normalized and longer than maxLen. priorShort, when not
// blank, is placed first under PriorKey.
func (g *Generator) Generate(text string, maxLen int, priorShort string) List {
	var list List
	if strings.TrimSpace(priorShort) != "" {
		list.AddPrior(priorShort)
	}

	list.Add(g.tail.Force(text, maxLen))
	list.Add(g.middle.Force(text, maxLen))

	runes := []rune(text)
	for _, set := range [][]rune{{g.primary}, g.separators} {
		prefix, suffix := separatorCuts(runes, maxLen, set)
		if suffix >= 0 {
			list.Add(strings.TrimSpace(string(runes[suffix:])))
		}
		if prefix >= 0 {
			list.Add(strings.TrimSpace(string(runes[:prefix])))
		}
	}

	if s := withoutParens(runes); s != text && utf8.RuneCountInString(s) <= maxLen {
		list.Add(s)
	}

	if s, ok := g.colonWithParen(runes, maxLen); ok {
		list.Add(s)
	}

	if g.keys {
		if s := g.withoutKey(runes); s != text && utf8.RuneCountInString(s) <= maxLen {
			list.Add(s)
		}
	}

	return list
}

// Generate runs the default generator.
func Generate(text string, maxLen int, priorShort string) List {
	return NewGenerator().Generate(text, maxLen, priorShort)
}

// separatorCuts finds the cut points for the separators in set.
//
// prefix is the largest separator index p with 0 < p < maxLen, so
// runes[:p] fits. suffix is the smallest index just after a separator that
// is beyond len-maxLen, so runes[suffix:] fits. Either is -1 when absent.
func separatorCuts(runes []rune, maxLen int, set []rune) (prefix, suffix int) {
	n := len(runes)
	revThreshold := n - maxLen
	prefix, suffix = -1, -1

	for p, r := range runes {
		if !slices.Contains(set, r) {
			continue
		}
		if p > 0 && p < maxLen && p > prefix {
			prefix = p
		}
		if cut := p + 1; cut > revThreshold && cut < n && (suffix < 0 || cut < suffix) {
			suffix = cut
		}
	}
	return prefix, suffix
}

// withoutParens removes every "(...)" group. The whitespace that surrounded
// a group collapses to one space, so one side of it goes with the group.
func withoutParens(runes []rune) string {
	out := make([]rune, 0, len(runes))

	for i := 0; i < len(runes); i++ {
		if runes[i] != '(' {
			out = append(out, runes[i])
			continue
		}
		end := indexRune(runes, ')', i+1)
		if end < 0 {
			out = append(out, runes[i:]...)
			break
		}
		i = end
	}

	s := string(out)
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return strings.TrimSpace(s)
}

// colonWithParen keeps the text before the last primary separator that
// still leaves room for the last parenthetical group, then re-appends that
// group.
func (g *Generator) colonWithParen(runes []rune, maxLen int) (string, bool) {
	start, end := lastParenGroup(runes)
	if start < 0 {
		return "", false
	}

	group := string(runes[start : end+1])
	short := maxLen - (end - start + 1) - 1
	if short <= maxLen/2 {
		return "", false
	}

	sep := lastIndexRune(runes[:min(short, len(runes))], g.primary)
	if sep <= 1 {
		return "", false
	}

	return strings.TrimRight(string(runes[:sep]), " ") + " " + group, true
}

// withoutKey replaces every " in X...∶" (X in A–G) with "∶", dropping the
// musical key from classical titles.
func (g *Generator) withoutKey(runes []rune) string {
	marker := []rune(" in ")
	out := make([]rune, 0, len(runes))

	for i := 0; i < len(runes); {
		if !hasPrefixAt(runes, marker, i) || i+len(marker) >= len(runes) {
			out = append(out, runes[i])
			i++
			continue
		}

		key := i + len(marker)
		if runes[key] < 'A' || runes[key] > 'G' {
			out = append(out, runes[i])
			i++
			continue
		}

		sep := indexRune(runes, g.primary, key+1)
		if sep < 0 {
			out = append(out, runes[i:]...)
			break
		}
		if sep == key+1 {
			out = append(out, runes[i])
			i++
			continue
		}

		out = append(out, g.primary)
		i = sep + 1
	}

	return string(out)
}

// lastParenGroup returns the bounds of the last non-empty "(...)" group.
func lastParenGroup(runes []rune) (start, end int) {
	start, end = -1, -1
	for i := 0; i < len(runes); i++ {
		if runes[i] != '(' {
			continue
		}
		j := indexRune(runes, ')', i+1)
		if j < 0 {
			break
		}
		if j > i+1 {
			start, end = i, j
			i = j
		}
	}
	return start, end
}

func indexRune(runes []rune, r rune, from int) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

func lastIndexRune(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

func hasPrefixAt(runes, prefix []rune, at int) bool {
	if at+len(prefix) > len(runes) {
		return false
	}
	return slices.Equal(runes[at:at+len(prefix)], prefix)
}

