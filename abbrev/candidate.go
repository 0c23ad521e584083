package abbrev

import (
	"strconv"
	"strings"

	"github.com/randalmurphal/titletrunc/normalize"
)

// PriorKey is the reserved key of the previously chosen short title.
const PriorKey = "0"

// Candidate is one proposed abbreviation.
type Candidate struct {
	Key   string // "0" for the prior short title, then "1", "2", ...
	Text  string
	Prior bool // true for the previously chosen short title
}

// List is an ordered, duplicate-free set of candidates.
// The zero value is ready to use.
type List struct {
	items []Candidate
	seen  map[string]struct{}
	next  int
}

// Add appends text as a new candidate with the next sequential key.
// Returns false when the collapsed text is empty or already present.
func (l *List) Add(text string) bool {
	return l.add(text, false)
}

// AddPrior appends text under the reserved PriorKey.
func (l *List) AddPrior(text string) bool {
	return l.add(text, true)
}

func (l *List) add(text string, prior bool) bool {
	text = normalize.Collapse(text)
	if strings.TrimSpace(text) == "" {
		return false
	}
	if l.seen == nil {
		l.seen = make(map[string]struct{})
	}
	if _, dup := l.seen[text]; dup {
		return false
	}
	l.seen[text] = struct{}{}

	c := Candidate{Text: text, Prior: prior}
	if prior {
		c.Key = PriorKey
	} else {
		l.next++
		c.Key = strconv.Itoa(l.next)
	}
	l.items = append(l.items, c)
	return true
}

// Len returns the number of candidates.
func (l *List) Len() int {
	return len(l.items)
}

// Candidates returns a copy of the candidates in insertion order.
func (l *List) Candidates() []Candidate {
	out := make([]Candidate, len(l.items))
	copy(out, l.items)
	return out
}

// Texts returns the candidate texts in insertion order.
func (l *List) Texts() []string {
	out := make([]string, len(l.items))
	for i, c := range l.items {
		out[i] = c.Text
	}
	return out
}

// Lookup returns the candidate with the given key.
func (l *List) Lookup(key string) (Candidate, bool) {
	for _, c := range l.items {
		if c.Key == key {
			return c, true
		}
	}
	return Candidate{}, false
}
