// Package batch walks the library and asks for a short title for every
// item whose title is too long.
//
// Items are handled one at a time. A title that fits once normalized is
// stored without asking. Otherwise the candidates are offered through the
// selector; a choice is stored and the library saved before moving on, a
// skip leaves the item untouched, and a quit stops the run with ErrQuit.
package batch
