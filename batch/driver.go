package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/randalmurphal/titletrunc/abbrev"
	"github.com/randalmurphal/titletrunc/normalize"
	"github.com/randalmurphal/titletrunc/selector"
	"github.com/randalmurphal/titletrunc/store"
)

// ErrQuit is returned by Run when the user quits. It ends the whole batch
// and is not a failure.
var ErrQuit = errors.New("quit requested")

// ErrInvalidLength is returned for a query whose MaxLength is below 2.
var ErrInvalidLength = errors.New("max length must be at least 2")

// Library is the part of store.Library the driver needs.
type Library interface {
	Items(q store.Query) []store.Item
	AlbumOf(it store.Item) store.Album
	Album(id string) (store.Album, []store.Item, error)
	SetShortTitle(id, short string) error
	Save() error
}

var _ Library = (*store.Library)(nil)

// Stats counts what a run did.
type Stats struct {
	Seen       int // items visited
	Chosen     int // short title picked or typed by the user, or the only candidate
	Normalized int // title fit after normalization and was stored as is
	Skipped    int // left untouched
}

// Driver runs selection over library items.
type Driver struct {
	lib      Library
	sel      *selector.Selector
	norm     *normalize.Normalizer
	gen      *abbrev.Generator
	logger   *slog.Logger
	announce func(vars map[string]any)

	mu      sync.Mutex
	skipped map[string]struct{}
}

// New creates a driver over lib that asks through sel.
func New(lib Library, sel *selector.Selector) *Driver {
	return &Driver{
		lib:     lib,
		sel:     sel,
		norm:    normalize.New(),
		gen:     abbrev.NewGenerator(),
		logger:  slog.Default(),
		skipped: make(map[string]struct{}),
	}
}

// WithNormalizer replaces the default normalizer.
func (d *Driver) WithNormalizer(n *normalize.Normalizer) *Driver {
	if n != nil {
		d.norm = n
	}
	return d
}

// WithGenerator replaces the default candidate generator.
func (d *Driver) WithGenerator(g *abbrev.Generator) *Driver {
	if g != nil {
		d.gen = g
	}
	return d
}

// WithLogger sets the logger.
func (d *Driver) WithLogger(l *slog.Logger) *Driver {
	if l != nil {
		d.logger = l
	}
	return d
}

// WithAnnounce sets a callback invoked with the item's template variables
// before its menu is shown.
func (d *Driver) WithAnnounce(fn func(vars map[string]any)) *Driver {
	d.announce = fn
	return d
}

// Forget clears the set of items skipped in earlier runs.
func (d *Driver) Forget() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.skipped = make(map[string]struct{})
}

func (d *Driver) wasSkipped(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.skipped[id]
	return ok
}

func (d *Driver) rememberSkip(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.skipped[id] = struct{}{}
}

// Run processes every item matching q, using q.MaxLength as the target
// length. Items skipped in an earlier Run on the same driver are not asked
// again. Returns ErrQuit when the user quits; changes made before that are
// kept.
func (d *Driver) Run(ctx context.Context, q store.Query) (Stats, error) {
	var stats Stats

	if q.MaxLength < 2 {
		return stats, fmt.Errorf("%w, got %d", ErrInvalidLength, q.MaxLength)
	}

	items := d.lib.Items(q)
	d.logger.Debug("batch started", slog.Int("items", len(items)), slog.Int("max_length", q.MaxLength))

	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if d.wasSkipped(it.ID) {
			continue
		}
		stats.Seen++

		quit, err := d.process(ctx, it, q.MaxLength, &stats)
		if err != nil {
			return stats, err
		}
		if quit {
			d.logger.Info("batch stopped by user", slog.Int("seen", stats.Seen))
			return stats, ErrQuit
		}
	}

	d.logger.Info("batch finished",
		slog.Int("seen", stats.Seen),
		slog.Int("chosen", stats.Chosen),
		slog.Int("normalized", stats.Normalized),
		slog.Int("skipped", stats.Skipped),
	)
	return stats, nil
}

// process handles one item and reports whether the user quit.
func (d *Driver) process(ctx context.Context, it store.Item, maxLen int, stats *Stats) (bool, error) {
	text := d.norm.Normalize(it.Title)

	if utf8.RuneCountInString(text) <= maxLen {
		if err := d.persist(it, text); err != nil {
			return false, err
		}
		stats.Normalized++
		return false, nil
	}

	album := d.lib.AlbumOf(it)
	if d.announce != nil {
		d.announce(it.Fields(album))
	}

	list := d.gen.Generate(text, maxLen, it.TitleShort)
	d.logger.Debug("candidates generated",
		slog.String("id", it.ID),
		slog.String("title", text),
		slog.Any("candidates", list.Texts()),
	)

	req := selector.Request{
		Original:   text,
		MaxLength:  maxLen,
		Candidates: list.Candidates(),
	}
	if it.AlbumID != "" {
		req.Album = d.albumLookup(it.AlbumID)
	}

	result, err := d.sel.Run(ctx, req)
	if err != nil {
		return false, fmt.Errorf("select short title for %s: %w", it.ID, err)
	}

	switch result.Kind {
	case selector.Chosen:
		if err := d.persist(it, result.Text); err != nil {
			return false, err
		}
		stats.Chosen++
	case selector.Skipped:
		d.rememberSkip(it.ID)
		stats.Skipped++
		d.logger.Debug("item skipped", slog.String("id", it.ID))
	case selector.Quit:
		return true, nil
	}
	return false, nil
}

func (d *Driver) persist(it store.Item, short string) error {
	if err := d.lib.SetShortTitle(it.ID, short); err != nil {
		return fmt.Errorf("set short title: %w", err)
	}
	if err := d.lib.Save(); err != nil {
		return fmt.Errorf("save library: %w", err)
	}
	d.logger.Info("short title set", slog.String("id", it.ID), slog.String("title_short", short))
	return nil
}

// albumLookup loads the album lazily, when the user asks for it.
func (d *Driver) albumLookup(albumID string) selector.AlbumLookup {
	return func(ctx context.Context) (selector.Album, error) {
		a, tracks, err := d.lib.Album(albumID)
		if err != nil {
			return selector.Album{}, err
		}

		out := selector.Album{Title: a.Title, Artist: a.Artist}
		for _, tr := range tracks {
			out.Tracks = append(out.Tracks, selector.Track{
				Position: tr.Track,
				Title:    d.norm.Normalize(tr.Title),
			})
		}
		return out, nil
	}
}
