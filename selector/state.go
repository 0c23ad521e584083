package selector

import "strings"

// Phase is the state the selector is in.
type Phase int

const (
	PhaseMain Phase = iota
	PhaseAlbum
	PhasePickSeed
	PhaseEdit
	PhaseDone
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMain:
		return "main"
	case PhaseAlbum:
		return "album"
	case PhasePickSeed:
		return "pick-seed"
	case PhaseEdit:
		return "edit"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// State is the selector state. Seed is the prefilled edit text.
type State struct {
	Phase Phase
	Seed  string
}

// EventKind classifies user input.
type EventKind int

const (
	// EventChoose carries the picked menu item.
	EventChoose EventKind = iota

	// EventSubmit carries text entered at the edit prompt.
	EventSubmit

	// EventCancel is escape, or any dismissal of a non-menu screen.
	EventCancel

	// EventQuit is an interrupt mapped to quit.
	EventQuit
)

// Event is one user input.
type Event struct {
	Kind EventKind
	Item MenuItem
	Text string
}

// Choose builds an EventChoose.
func Choose(item MenuItem) Event {
	return Event{Kind: EventChoose, Item: item}
}

// Submit builds an EventSubmit.
func Submit(text string) Event {
	return Event{Kind: EventSubmit, Text: text}
}

// KeysFor returns the escape and interrupt bindings of a phase.
// Only the main menu lets an interrupt end the batch; elsewhere both keys
// step back to the main menu.
func KeysFor(p Phase) KeyMap {
	if p == PhaseMain {
		return KeyMap{Escape: ActionCancel, Interrupt: ActionQuit}
	}
	return KeyMap{Escape: ActionCancel, Interrupt: ActionCancel}
}

// Transition returns the state that follows s on ev. The returned result is
// non-nil exactly when the next state is PhaseDone.
func Transition(s State, ev Event) (State, *Result) {
	switch s.Phase {
	case PhaseMain:
		return fromMain(ev)
	case PhaseAlbum:
		return State{Phase: PhaseMain}, nil
	case PhasePickSeed:
		return fromPickSeed(ev)
	case PhaseEdit:
		return fromEdit(ev)
	default:
		return s, nil
	}
}

func fromMain(ev Event) (State, *Result) {
	switch ev.Kind {
	case EventCancel:
		return done(Result{Kind: Skipped})
	case EventQuit:
		return done(Result{Kind: Quit})
	case EventChoose:
		if ev.Item.Kind == ItemCandidate {
			return done(Result{Kind: Chosen, Text: ev.Item.Candidate.Text})
		}
		switch ev.Item.Command {
		case CommandSkip:
			return done(Result{Kind: Skipped})
		case CommandQuit:
			return done(Result{Kind: Quit})
		case CommandAlbum:
			return State{Phase: PhaseAlbum}, nil
		case CommandEdit:
			return State{Phase: PhasePickSeed}, nil
		}
	}
	return State{Phase: PhaseMain}, nil
}

func fromPickSeed(ev Event) (State, *Result) {
	if ev.Kind != EventChoose {
		return State{Phase: PhaseMain}, nil
	}
	if ev.Item.Kind == ItemCandidate {
		return State{Phase: PhaseEdit, Seed: ev.Item.Candidate.Text}, nil
	}
	if ev.Item.Command == CommandBlank {
		return State{Phase: PhaseEdit}, nil
	}
	return State{Phase: PhaseMain}, nil
}

func fromEdit(ev Event) (State, *Result) {
	if ev.Kind != EventSubmit {
		return State{Phase: PhaseMain}, nil
	}
	text := strings.TrimSpace(ev.Text)
	if text == "" {
		return State{Phase: PhaseMain}, nil
	}
	return done(Result{Kind: Chosen, Text: text})
}

func done(r Result) (State, *Result) {
	return State{Phase: PhaseDone}, &r
}
