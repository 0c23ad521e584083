// Package truncate provides character-exact ellipsis truncation.
//
// Titles often need to fit a fixed number of characters. This package cuts
// text at rune boundaries and marks the cut with an ellipsis.
//
// # Strategies
//
// Three truncation strategies are available:
//
//   - FromEnd: keep the first maxLen-1 characters, then "…"
//   - FromMiddle: keep maxLen/2-1 characters, "…", then the last maxLen/2
//   - FromStart: "…", then the last maxLen-1 characters
//
// # Basic Usage
//
//	tr := truncate.NewFromEnd()
//	result, truncated := tr.Truncate("This is the end of the world", 20)
//	// result == "This is the end of …"
//
// A different marker:
//
//	tr := truncate.NewFromMiddle().WithSuffix("~")
//
// # Convenience Functions
//
//	truncate.End(text, 20)
//	truncate.Middle(text, 20)
//	truncate.Start(text, 20)
//
// # UTF-8 Support
//
// All lengths are counted in runes, so multi-byte characters are never split
// and a title of twenty accented letters is twenty characters long.
package truncate
