// Package selector lets a user pick one abbreviation candidate, edit one, or
// skip the title.
//
// The interaction is an explicit state machine. Transition is a pure
// function from (State, Event) to the next State and, once the machine is
// done, a Result. Selector.Run drives it through a Renderer, which owns all
// terminal I/O, so the machine itself is tested with a scripted renderer.
//
//	Main ──candidate──────────────▶ Done(Chosen)
//	Main ──skip / escape──────────▶ Done(Skipped)
//	Main ──quit / interrupt───────▶ Done(Quit)
//	Main ──album──▶ Album ──any key──▶ Main
//	Main ──edit───▶ PickSeed ──candidate / blank──▶ Edit ──text──▶ Done(Chosen)
//	                 └──cancel──▶ Main                  └──cancel──▶ Main
//
// Quit ends the whole batch, not just the current title; callers must stop
// iterating when they see it.
package selector
