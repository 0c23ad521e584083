package truncate

import "unicode/utf8"

// Strategy defines where text is removed.
type Strategy int

const (
	// FromEnd removes content from the end (default).
	FromEnd Strategy = iota

	// FromMiddle removes content from the middle, keeping start and end.
	FromMiddle

	// FromStart removes content from the start.
	FromStart
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case FromEnd:
		return "end"
	case FromMiddle:
		return "middle"
	case FromStart:
		return "start"
	default:
		return "unknown"
	}
}

// DefaultSuffix marks the removed part of the text.
const DefaultSuffix = "…"

// Truncator shortens text to a maximum number of characters.
// Lengths are counted in runes, never bytes.
type Truncator struct {
	strategy Strategy
	suffix   string
}

// New creates a truncator with the given strategy.
func New(strategy Strategy) *Truncator {
	return &Truncator{
		strategy: strategy,
		suffix:   DefaultSuffix,
	}
}

// NewFromEnd creates a truncator that removes content from the end.
func NewFromEnd() *Truncator {
	return New(FromEnd)
}

// NewFromMiddle creates a truncator that removes content from the middle.
func NewFromMiddle() *Truncator {
	return New(FromMiddle)
}

// NewFromStart creates a truncator that removes content from the start.
func NewFromStart() *Truncator {
	return New(FromStart)
}

// WithSuffix sets a custom marker for the removed text.
func (t *Truncator) WithSuffix(suffix string) *Truncator {
	t.suffix = suffix
	return t
}

// Truncate reduces the text to fit within maxLen characters.
// Returns the truncated text and whether truncation occurred.
//
// The result never exceeds maxLen when maxLen is at least the suffix length
// plus one.
func (t *Truncator) Truncate(text string, maxLen int) (string, bool) {
	if utf8.RuneCountInString(text) <= maxLen {
		return text, false
	}

	switch t.strategy {
	case FromMiddle:
		return t.truncateMiddle(text, maxLen), true
	case FromStart:
		return t.truncateStart(text, maxLen), true
	default:
		return t.truncateEnd(text, maxLen), true
	}
}

// Force applies the strategy even when text already fits.
// Used where every candidate must carry the marker.
func (t *Truncator) Force(text string, maxLen int) string {
	switch t.strategy {
	case FromMiddle:
		return t.truncateMiddle(text, maxLen)
	case FromStart:
		return t.truncateStart(text, maxLen)
	default:
		return t.truncateEnd(text, maxLen)
	}
}

// Strategy returns the truncator's strategy.
func (t *Truncator) Strategy() Strategy {
	return t.strategy
}

// Suffix returns the truncator's suffix.
func (t *Truncator) Suffix() string {
	return t.suffix
}
