package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Glyphs produced by the default table that other packages cut on.
const (
	Ellipsis  = "…"
	Colon     = "∶"
	Slash     = "⁄"
	Dash      = "–"
	Question  = "？"
	Pipe      = "ǀ"
	Backslash = "⧵"
	Period    = "․"
)

// Replacement is one literal substring substitution.
type Replacement struct {
	Old string `json:"old" yaml:"old" toml:"old"`
	New string `json:"new" yaml:"new" toml:"new"`
}

// DefaultTable is the ordered substitution table applied by Normalize.
var DefaultTable = []Replacement{
	// Filesystem-unsafe characters to look-alikes
	{":", Colon},
	{"/", " " + Slash + " "},
	{"*", "∗"},
	{"?", Question},
	{`"`, "″"},
	{".", Period},
	{"|", Pipe},
	{"<", "‹"},
	{">", "›"},
	{`\`, Backslash},

	// Symbol consolidation
	{"—", Dash},
	{"―", Dash},
	{"»", "“"},
	{"«", "“"},

	// Shortening
	{"No" + Period, "#"},
	{" no" + Period, " #"},
	{"NO" + Period, "#"},
	{"# ", "#"},
	{Period + Period + Period, Ellipsis},

	// Space trimming
	{"    ", " "},
	{"   ", " "},
	{"  ", " "},
}

// maxPasses bounds the fixpoint loop for custom tables that rewrite each
// other's output forever. The default table settles in a few passes.
const maxPasses = 32

// Normalizer applies a replacement table to titles.
type Normalizer struct {
	table   []Replacement
	compose bool
}

// New creates a normalizer using DefaultTable.
func New() *Normalizer {
	return &Normalizer{table: DefaultTable}
}

// WithTable replaces the substitution table.
// The table is used in order; an empty table leaves only trimming.
func (n *Normalizer) WithTable(table []Replacement) *Normalizer {
	n.table = table
	return n
}

// WithExtra appends replacements after the current table.
func (n *Normalizer) WithExtra(extra ...Replacement) *Normalizer {
	table := make([]Replacement, 0, len(n.table)+len(extra))
	table = append(table, n.table...)
	n.table = append(table, extra...)
	return n
}

// WithComposition enables Unicode NFC composition before the table runs,
// so a decomposed "é" counts as one character.
func (n *Normalizer) WithComposition(enabled bool) *Normalizer {
	n.compose = enabled
	return n
}

// Table returns the substitution table in use.
func (n *Normalizer) Table() []Replacement {
	return n.table
}

// Normalize returns the normalized form of raw.
func (n *Normalizer) Normalize(raw string) string {
	if n.compose {
		raw = norm.NFC.String(raw)
	}

	text := strings.TrimSpace(raw)
	for range maxPasses {
		next := strings.TrimSpace(n.apply(text))
		if next == text {
			break
		}
		text = next
	}
	return text
}

func (n *Normalizer) apply(text string) string {
	for _, r := range n.table {
		if r.Old == "" {
			continue
		}
		text = strings.ReplaceAll(text, r.Old, r.New)
	}
	return text
}

// Normalize normalizes raw with the default table.
func Normalize(raw string) string {
	return New().Normalize(raw)
}
