// Package titletrunc picks short titles for music tracks whose titles are
// too long for a display, a file name or a device.
//
// Each subpackage can be used independently:
//
//   - normalize: Map unsafe punctuation to look-alikes and shorten common
//     abbreviations
//   - truncate: Character-aware ellipsis truncation (end, middle, start)
//   - abbrev: Generate the ordered, duplicate-free list of abbreviation
//     candidates for one title
//   - selector: The selection state machine (menu, album view, edit) behind
//     an abstract Renderer
//   - menu: Terminal Renderer built on promptui
//   - store: YAML track library with queries, atomic saves and file watching
//   - batch: Walk the library and run the selector for every long title
//   - format: {{variable}} templates for item headers and album listings
//   - config: Layered YAML/TOML, .env and environment configuration
//
// # Quick Start
//
// Normalizing and generating candidates:
//
//	import (
//		"github.com/randalmurphal/titletrunc/abbrev"
//		"github.com/randalmurphal/titletrunc/normalize"
//	)
//	text := normalize.Normalize("Symphony No. 9 in D minor: IV. Presto")
//	list := abbrev.Generate(text, 20, "")
//	for _, c := range list.Candidates() {
//		fmt.Println(c.Key, c.Text)
//	}
//
// Running the interactive selection:
//
//	import (
//		"github.com/randalmurphal/titletrunc/menu"
//		"github.com/randalmurphal/titletrunc/selector"
//	)
//	sel := selector.New(menu.New().WithColor(true))
//	result, err := sel.Run(ctx, selector.Request{
//		Original:   text,
//		MaxLength:  20,
//		Candidates: list.Candidates(),
//	})
//
// The titletrunc command in cmd/titletrunc wires everything together over
// a library file.
package titletrunc
