package selector

import (
	"context"

	"github.com/randalmurphal/titletrunc/abbrev"
)

// EditLimit is the maximum length of a hand-edited title.
const EditLimit = 50

// Kind is the outcome of a selection.
type Kind int

const (
	// Skipped leaves the record untouched.
	Skipped Kind = iota

	// Chosen carries the text to persist.
	Chosen

	// Quit stops the batch.
	Quit
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Skipped:
		return "skipped"
	case Chosen:
		return "chosen"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Result is the terminal value of a selection.
type Result struct {
	Kind Kind
	Text string // set when Kind is Chosen
}

// Command is a fixed navigation entry of a menu.
type Command int

const (
	CommandNone Command = iota
	CommandAlbum
	CommandEdit
	CommandSkip
	CommandQuit
	CommandBlank
)

// Key returns the single-character key bound to the command.
func (c Command) Key() string {
	switch c {
	case CommandAlbum:
		return "a"
	case CommandEdit:
		return "e"
	case CommandSkip:
		return "s"
	case CommandQuit:
		return "q"
	case CommandBlank:
		return "b"
	default:
		return ""
	}
}

// Label returns the human-readable command name.
func (c Command) Label() string {
	switch c {
	case CommandAlbum:
		return "See album"
	case CommandEdit:
		return "Edit"
	case CommandSkip:
		return "Skip"
	case CommandQuit:
		return "Quit"
	case CommandBlank:
		return "Blank"
	default:
		return ""
	}
}

// ItemKind tags a MenuItem as a candidate or a command.
type ItemKind int

const (
	ItemCandidate ItemKind = iota
	ItemCommand
)

// MenuItem is one line of a menu. Exactly one of Candidate and Command is
// meaningful, as told by Kind.
type MenuItem struct {
	Kind      ItemKind
	Candidate abbrev.Candidate
	Command   Command
}

// CandidateItem wraps a candidate.
func CandidateItem(c abbrev.Candidate) MenuItem {
	return MenuItem{Kind: ItemCandidate, Candidate: c}
}

// CommandItem wraps a command.
func CommandItem(c Command) MenuItem {
	return MenuItem{Kind: ItemCommand, Command: c}
}

// Key returns the key the user presses for this item.
func (m MenuItem) Key() string {
	if m.Kind == ItemCommand {
		return m.Command.Key()
	}
	return m.Candidate.Key
}

// Label returns the display text of the item.
func (m MenuItem) Label() string {
	if m.Kind == ItemCommand {
		return m.Command.Label()
	}
	return m.Candidate.Text
}

// KeyAction says what a special key does in a given state.
type KeyAction int

const (
	// ActionCancel makes the renderer return ErrCancelled.
	ActionCancel KeyAction = iota

	// ActionQuit makes the renderer return ErrQuit.
	ActionQuit
)

// KeyMap configures escape and interrupt for one renderer call.
type KeyMap struct {
	Escape    KeyAction
	Interrupt KeyAction
}

// Err returns the sentinel error for action.
func (a KeyAction) Err() error {
	if a == ActionQuit {
		return ErrQuit
	}
	return ErrCancelled
}

// Track is one entry of an album listing.
type Track struct {
	Position int
	Title    string
}

// Album is the read-only context shown on request.
type Album struct {
	Title  string
	Artist string
	Tracks []Track
}

// AlbumLookup loads the album of the title being processed.
// It is only called when the user asks to see the album.
type AlbumLookup func(ctx context.Context) (Album, error)

// Renderer performs all user interaction for the selector.
type Renderer interface {
	// Context shows the full title with the part beyond maxLength set off.
	Context(original string, maxLength int)

	// Choose presents items and blocks until one is picked.
	// Returns ErrCancelled or ErrQuit as configured by keys.
	Choose(ctx context.Context, label string, items []MenuItem, keys KeyMap) (MenuItem, error)

	// ShowAlbum lists the album tracks and waits for any key.
	ShowAlbum(ctx context.Context, album Album, maxLength int) error

	// Prompt asks for free text seeded with seed, at most limit characters.
	// Returns ErrCancelled or ErrQuit as configured by keys.
	Prompt(ctx context.Context, label, seed string, limit int, keys KeyMap) (string, error)
}
