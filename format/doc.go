// Package format renders item and track lines from short field templates.
//
// Templates use a Handlebars-like syntax that is converted to Go template
// syntax before execution:
//
//	{{artist}} - {{album}} - {{title}}
//	{{pad2 track}}. {{title}}
//	{{#if artist}}{{artist}} - {{/if}}{{title}}
//
// # Built-in Functions
//
//   - pad2(n int) string - Zero-pad a track number to two digits
//   - elide(s string, n int) string - Cut to n characters with "…"
//   - upper, lower, trim - String case and whitespace helpers
//   - default(v, fallback any) any - Fallback for nil or empty values
//
// Parsed templates are cached per engine, so rendering the same line format
// for every track of an album parses it once.
package format
