// Package abbrev generates candidate abbreviations for titles that are too
// long for their field.
//
// Each heuristic proposes at most one candidate:
//
//   - the title already chosen on a previous run (reserved key "0")
//   - tail ellipsis: "This is the end of …"
//   - middle ellipsis: "This is t…we know it"
//   - separator cuts: drop everything before or after a "∶", "–", "⁄" …
//   - parenthetical removal: "Title (Live at Wembley)" → "Title"
//   - colon plus trailing parenthetical: "Work∶ Movement (Live)" → "Work (Live)"
//   - musical key removal: "Sonata #14 in C# minor∶ Adagio" → "Sonata #14∶ Adagio"
//
// Input must already be normalized (see package normalize); separators are
// the normalized glyphs. Generation only makes sense for text longer than
// the limit, and callers are expected to use the text as is otherwise.
//
//	list := abbrev.Generate(normalize.Normalize(title), 20, existingShort)
//	for _, c := range list.Candidates() {
//	    fmt.Println(c.Key, c.Text)
//	}
//
// Candidates are deduplicated on their collapsed text, so two heuristics
// that land on the same result produce a single entry.
package abbrev
