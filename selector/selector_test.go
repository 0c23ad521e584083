package selector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/titletrunc/abbrev"
)

// scriptedRenderer replays a fixed sequence of answers.
type scriptedRenderer struct {
	t       *testing.T
	answers []answer

	contexts  int
	albums    []Album
	labels    []string
	seeds     []string
	keyMaps   []KeyMap
	lastItems []MenuItem
}

type answer struct {
	key  string // menu key to pick
	text string // prompt text
	err  error
}

func (r *scriptedRenderer) next() answer {
	r.t.Helper()
	require.NotEmpty(r.t, r.answers, "renderer called more often than scripted")
	a := r.answers[0]
	r.answers = r.answers[1:]
	return a
}

func (r *scriptedRenderer) Context(original string, maxLength int) {
	r.contexts++
}

func (r *scriptedRenderer) Choose(ctx context.Context, label string, items []MenuItem, keys KeyMap) (MenuItem, error) {
	r.labels = append(r.labels, label)
	r.keyMaps = append(r.keyMaps, keys)
	r.lastItems = items
	a := r.next()
	if a.err != nil {
		return MenuItem{}, a.err
	}
	for _, item := range items {
		if item.Key() == a.key {
			return item, nil
		}
	}
	r.t.Fatalf("no menu item with key %q in %s", a.key, label)
	return MenuItem{}, nil
}

func (r *scriptedRenderer) ShowAlbum(ctx context.Context, album Album, maxLength int) error {
	r.albums = append(r.albums, album)
	return r.next().err
}

func (r *scriptedRenderer) Prompt(ctx context.Context, label, seed string, limit int, keys KeyMap) (string, error) {
	r.labels = append(r.labels, label)
	r.seeds = append(r.seeds, seed)
	r.keyMaps = append(r.keyMaps, keys)
	a := r.next()
	return a.text, a.err
}

func candidates(texts ...string) []abbrev.Candidate {
	var list abbrev.List
	for _, text := range texts {
		list.Add(text)
	}
	return list.Candidates()
}

func testAlbum(ctx context.Context) (Album, error) {
	return Album{Title: "Greatest Hits", Tracks: []Track{{Position: 1, Title: "First"}}}, nil
}

func TestRun_NoCandidatesSkips(t *testing.T) {
	r := &scriptedRenderer{t: t}

	result, err := New(r).Run(context.Background(), Request{Original: "x", MaxLength: 5})

	require.NoError(t, err)
	assert.Equal(t, Result{Kind: Skipped}, result)
	assert.Zero(t, r.contexts)
}

func TestRun_SingleCandidateAutoChosen(t *testing.T) {
	r := &scriptedRenderer{t: t}

	result, err := New(r).Run(context.Background(), Request{
		Original:   "A very long title",
		MaxLength:  5,
		Candidates: candidates("A ve…"),
	})

	require.NoError(t, err)
	assert.Equal(t, Result{Kind: Chosen, Text: "A ve…"}, result)
	assert.Zero(t, r.contexts, "menu must not be shown")
	assert.Empty(t, r.labels)
}

func TestRun_ChooseCandidate(t *testing.T) {
	r := &scriptedRenderer{t: t, answers: []answer{{key: "2"}}}

	result, err := New(r).Run(context.Background(), Request{
		Original:   "This is the end of the world as we know it",
		MaxLength:  20,
		Candidates: candidates("This is the end of …", "This is t…we know it"),
	})

	require.NoError(t, err)
	assert.Equal(t, Result{Kind: Chosen, Text: "This is t…we know it"}, result)
	assert.Equal(t, 1, r.contexts)
	assert.Equal(t, []KeyMap{{Escape: ActionCancel, Interrupt: ActionQuit}}, r.keyMaps)
}

func TestRun_Skip(t *testing.T) {
	tests := []struct {
		name   string
		answer answer
	}{
		{name: "skip command", answer: answer{key: "s"}},
		{name: "escape", answer: answer{err: ErrCancelled}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &scriptedRenderer{t: t, answers: []answer{tt.answer}}

			result, err := New(r).Run(context.Background(), Request{
				Original:   "long",
				MaxLength:  3,
				Candidates: candidates("lo…", "l…g"),
			})

			require.NoError(t, err)
			assert.Equal(t, Skipped, result.Kind)
		})
	}
}

func TestRun_Quit(t *testing.T) {
	tests := []struct {
		name   string
		answer answer
	}{
		{name: "quit command", answer: answer{key: "q"}},
		{name: "interrupt", answer: answer{err: ErrQuit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &scriptedRenderer{t: t, answers: []answer{tt.answer}}

			result, err := New(r).Run(context.Background(), Request{
				Original:   "long",
				MaxLength:  3,
				Candidates: candidates("lo…", "l…g"),
			})

			require.NoError(t, err)
			assert.Equal(t, Quit, result.Kind)
		})
	}
}

func TestRun_AlbumReturnsToMain(t *testing.T) {
	r := &scriptedRenderer{t: t, answers: []answer{
		{key: "a"},
		{},
		{key: "1"},
	}}

	result, err := New(r).Run(context.Background(), Request{
		Original:   "long",
		MaxLength:  3,
		Candidates: candidates("lo…", "l…g"),
		Album:      testAlbum,
	})

	require.NoError(t, err)
	assert.Equal(t, Result{Kind: Chosen, Text: "lo…"}, result)
	require.Len(t, r.albums, 1)
	assert.Equal(t, "Greatest Hits", r.albums[0].Title)
	assert.Equal(t, 2, r.contexts, "context is shown on every entry to the main menu")
}

func TestRun_AlbumLookupFailureReturnsToMain(t *testing.T) {
	r := &scriptedRenderer{t: t, answers: []answer{{key: "a"}, {key: "s"}}}

	result, err := New(r).Run(context.Background(), Request{
		Original:   "long",
		MaxLength:  3,
		Candidates: candidates("lo…", "l…g"),
		Album: func(ctx context.Context) (Album, error) {
			return Album{}, errors.New("no album")
		},
	})

	require.NoError(t, err)
	assert.Equal(t, Skipped, result.Kind)
	assert.Empty(t, r.albums)
}

func TestRun_NoAlbumCommandWithoutLookup(t *testing.T) {
	r := &scriptedRenderer{t: t, answers: []answer{{key: "s"}}}

	_, err := New(r).Run(context.Background(), Request{
		Original:   "long",
		MaxLength:  3,
		Candidates: candidates("lo…", "l…g"),
	})

	require.NoError(t, err)
	for _, item := range r.lastItems {
		assert.NotEqual(t, CommandAlbum, item.Command)
	}
}

func TestRun_EditFromCandidate(t *testing.T) {
	r := &scriptedRenderer{t: t, answers: []answer{
		{key: "e"},
		{key: "2"},
		{text: "  End of World  "},
	}}

	result, err := New(r).WithEditLimit(30).Run(context.Background(), Request{
		Original:   "This is the end of the world as we know it",
		MaxLength:  20,
		Candidates: candidates("This is the end of …", "This is t…we know it"),
	})

	require.NoError(t, err)
	assert.Equal(t, Result{Kind: Chosen, Text: "End of World"}, result)
	assert.Equal(t, []string{"This is t…we know it"}, r.seeds)
	assert.Equal(t, []string{MainLabel, SeedLabel, EditLabel}, r.labels)
	assert.Equal(t, KeyMap{Escape: ActionCancel, Interrupt: ActionCancel}, r.keyMaps[2])
}

func TestRun_EditBlank(t *testing.T) {
	r := &scriptedRenderer{t: t, answers: []answer{
		{key: "e"},
		{key: "b"},
		{text: "Custom"},
	}}

	result, err := New(r).Run(context.Background(), Request{
		Original:   "long",
		MaxLength:  3,
		Candidates: candidates("lo…", "l…g"),
	})

	require.NoError(t, err)
	assert.Equal(t, Result{Kind: Chosen, Text: "Custom"}, result)
	assert.Equal(t, []string{""}, r.seeds)
}

func TestRun_EditCancelReturnsToMain(t *testing.T) {
	r := &scriptedRenderer{t: t, answers: []answer{
		{key: "e"},
		{key: "1"},
		{err: ErrCancelled},
		{key: "e"},
		{err: ErrQuit},
		{key: "e"},
		{key: "1"},
		{text: "   "},
		{key: "1"},
	}}

	result, err := New(r).Run(context.Background(), Request{
		Original:   "long",
		MaxLength:  3,
		Candidates: candidates("lo…", "l…g"),
	})

	require.NoError(t, err)
	assert.Equal(t, Result{Kind: Chosen, Text: "lo…"}, result)
	assert.Equal(t, 4, r.contexts)
	assert.Empty(t, r.answers)
}

func TestRun_RendererError(t *testing.T) {
	boom := errors.New("terminal gone")
	r := &scriptedRenderer{t: t, answers: []answer{{err: boom}}}

	_, err := New(r).Run(context.Background(), Request{
		Original:   "long",
		MaxLength:  3,
		Candidates: candidates("lo…", "l…g"),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(&scriptedRenderer{t: t}).Run(ctx, Request{
		Original:   "long",
		MaxLength:  3,
		Candidates: candidates("lo…", "l…g"),
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestMainMenu(t *testing.T) {
	var list abbrev.List
	list.AddPrior("Prior")
	list.Add("One")

	items := MainMenu(list.Candidates(), true)

	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = item.Key()
	}
	assert.Equal(t, []string{"0", "1", "a", "e", "s", "q"}, keys)
	assert.Equal(t, "Prior", items[0].Label())
	assert.Equal(t, "See album", items[2].Label())
}

func TestSeedMenu(t *testing.T) {
	items := SeedMenu(candidates("One", "Two"))

	require.Len(t, items, 3)
	assert.Equal(t, ItemCommand, items[2].Kind)
	assert.Equal(t, CommandBlank, items[2].Command)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "skipped", Skipped.String())
	assert.Equal(t, "chosen", Chosen.String())
	assert.Equal(t, "quit", Quit.String())
}
