package selector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/randalmurphal/titletrunc/abbrev"
)

// Labels shown above each menu.
const (
	MainLabel = "Select title abbreviation"
	SeedLabel = "Start editing from"
	EditLabel = "Short title"
)

// Request is the input of one selection.
type Request struct {
	// Original is the full title shown as context.
	Original string

	// MaxLength is the target length; the renderer highlights past it.
	MaxLength int

	// Candidates in display order.
	Candidates []abbrev.Candidate

	// Album loads the sibling tracks. When nil the album command is not
	// offered.
	Album AlbumLookup
}

// Selector runs the selection state machine against a Renderer.
type Selector struct {
	renderer  Renderer
	editLimit int
	logger    *slog.Logger
}

// New creates a selector that talks to the user through r.
func New(r Renderer) *Selector {
	return &Selector{
		renderer:  r,
		editLimit: EditLimit,
		logger:    slog.Default(),
	}
}

// WithEditLimit sets the maximum length of hand-edited text.
func (s *Selector) WithEditLimit(limit int) *Selector {
	if limit > 0 {
		s.editLimit = limit
	}
	return s
}

// WithLogger sets the logger used for state traces.
func (s *Selector) WithLogger(l *slog.Logger) *Selector {
	if l != nil {
		s.logger = l
	}
	return s
}

// Run drives the selection until it is done.
//
// With no candidates the result is Skipped and with exactly one it is
// Chosen; the renderer is not used in either case. Renderer failures other
// than ErrCancelled and ErrQuit are returned as errors.
func (s *Selector) Run(ctx context.Context, req Request) (Result, error) {
	switch len(req.Candidates) {
	case 0:
		return Result{Kind: Skipped}, nil
	case 1:
		return Result{Kind: Chosen, Text: req.Candidates[0].Text}, nil
	}

	mainMenu := MainMenu(req.Candidates, req.Album != nil)
	seedMenu := SeedMenu(req.Candidates)

	state := State{Phase: PhaseMain}
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		ev, err := s.step(ctx, req, state, mainMenu, seedMenu)
		if err != nil {
			return Result{}, err
		}

		next, result := Transition(state, ev)
		s.logger.Debug("selector transition",
			slog.String("from", state.Phase.String()),
			slog.String("to", next.Phase.String()))
		if result != nil {
			return *result, nil
		}
		state = next
	}
}

// step performs the renderer call for state and converts its outcome into
// an event.
func (s *Selector) step(ctx context.Context, req Request, state State, mainMenu, seedMenu []MenuItem) (Event, error) {
	keys := KeysFor(state.Phase)

	switch state.Phase {
	case PhaseMain:
		s.renderer.Context(req.Original, req.MaxLength)
		item, err := s.renderer.Choose(ctx, MainLabel, mainMenu, keys)
		return chooseEvent(item, err)

	case PhaseAlbum:
		album, err := req.Album(ctx)
		if err != nil {
			s.logger.Warn("album lookup failed", slog.Any("error", err))
			return Event{Kind: EventCancel}, nil
		}
		if err := s.renderer.ShowAlbum(ctx, album, req.MaxLength); err != nil && !isUserExit(err) {
			return Event{}, fmt.Errorf("show album: %w", err)
		}
		return Event{Kind: EventCancel}, nil

	case PhasePickSeed:
		item, err := s.renderer.Choose(ctx, SeedLabel, seedMenu, keys)
		return chooseEvent(item, err)

	case PhaseEdit:
		text, err := s.renderer.Prompt(ctx, EditLabel, state.Seed, s.editLimit, keys)
		switch {
		case err == nil:
			return Submit(text), nil
		case errors.Is(err, ErrCancelled):
			return Event{Kind: EventCancel}, nil
		case errors.Is(err, ErrQuit):
			return Event{Kind: EventQuit}, nil
		default:
			return Event{}, fmt.Errorf("edit prompt: %w", err)
		}
	}

	return Event{}, fmt.Errorf("selector in unexpected phase %s", state.Phase)
}

func chooseEvent(item MenuItem, err error) (Event, error) {
	switch {
	case err == nil:
		return Choose(item), nil
	case errors.Is(err, ErrCancelled):
		return Event{Kind: EventCancel}, nil
	case errors.Is(err, ErrQuit):
		return Event{Kind: EventQuit}, nil
	default:
		return Event{}, fmt.Errorf("menu: %w", err)
	}
}

func isUserExit(err error) bool {
	return errors.Is(err, ErrCancelled) || errors.Is(err, ErrQuit)
}

// MainMenu builds the top-level menu: candidates in order, then the album
// (when available), edit, skip and quit commands.
func MainMenu(candidates []abbrev.Candidate, withAlbum bool) []MenuItem {
	items := make([]MenuItem, 0, len(candidates)+4)
	for _, c := range candidates {
		items = append(items, CandidateItem(c))
	}
	if withAlbum {
		items = append(items, CommandItem(CommandAlbum))
	}
	return append(items,
		CommandItem(CommandEdit),
		CommandItem(CommandSkip),
		CommandItem(CommandQuit),
	)
}

// SeedMenu builds the edit sub-menu: candidates, then a blank start.
func SeedMenu(candidates []abbrev.Candidate) []MenuItem {
	items := make([]MenuItem, 0, len(candidates)+1)
	for _, c := range candidates {
		items = append(items, CandidateItem(c))
	}
	return append(items, CommandItem(CommandBlank))
}
