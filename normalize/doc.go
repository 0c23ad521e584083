// Package normalize rewrites raw titles into the form every length check
// downstream works on.
//
// Normalization trims the text, maps filesystem-unsafe punctuation to
// look-alike Unicode glyphs, consolidates dashes and quotes, shortens
// "No." to "#", turns three leader dots into an ellipsis and collapses runs
// of spaces. The replacement table is ordered: later entries match text
// produced by earlier ones (the "No." rule only ever sees the substituted
// one-dot leader).
//
//	n := normalize.Normalize(`Symphony No. 5: "Fate"`)
//	// n == "Symphony #5∶ ″Fate″"
//
// Normalize is idempotent. The table is reapplied until the text stops
// changing, so its output is always a fixpoint.
//
// Collapse reduces ellipsis-adjacent punctuation runs to a single "…". It is
// the key used when deduplicating abbreviation candidates.
package normalize
