package menu

import (
	"bytes"
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/titletrunc/abbrev"
	"github.com/randalmurphal/titletrunc/selector"
)

var ansi = regexp.MustCompile("\x1b\\[[0-9;]*m")

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func newTestTerminal(input string) (*Terminal, *bytes.Buffer) {
	var out bytes.Buffer
	t := New().WithIO(io.NopCloser(strings.NewReader(input)), nopWriteCloser{&out})
	return t, &out
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxLen   int
		expected string
	}{
		{name: "fits", text: "short", maxLen: 10, expected: "short"},
		{name: "exact fit", text: "12345", maxLen: 5, expected: "12345"},
		{name: "overflow", text: "This is the end", maxLen: 7, expected: "This is│ the end"},
		{name: "unicode", text: "Prélude∶ Très", maxLen: 8, expected: "Prélude∶│ Très"},
		{name: "no limit", text: "anything", maxLen: 0, expected: "anything"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Highlight(tt.text, tt.maxLen, false))
		})
	}
}

func TestHighlight_Color(t *testing.T) {
	got := Highlight("abcdef", 4, true)

	assert.Contains(t, got, "\x1b[32m")
	assert.Contains(t, got, "\x1b[31m")
	assert.Equal(t, "abcdef", ansi.ReplaceAllString(got, ""))
	assert.Less(t, strings.Index(got, "\x1b[32m"), strings.Index(got, "\x1b[31m"))

	fits := Highlight("abc", 4, true)
	assert.NotContains(t, fits, "\x1b[31m")
}

func TestColorEnabled(t *testing.T) {
	assert.True(t, ColorEnabled("always", nil))
	assert.False(t, ColorEnabled("never", nil))
	assert.False(t, ColorEnabled("auto", nil))
}

func TestMapError(t *testing.T) {
	main := selector.KeysFor(selector.PhaseMain)
	edit := selector.KeysFor(selector.PhaseEdit)

	assert.ErrorIs(t, mapError(promptui.ErrInterrupt, main), selector.ErrQuit)
	assert.ErrorIs(t, mapError(promptui.ErrEOF, main), selector.ErrCancelled)
	assert.ErrorIs(t, mapError(promptui.ErrAbort, main), selector.ErrCancelled)
	assert.ErrorIs(t, mapError(promptui.ErrInterrupt, edit), selector.ErrCancelled)

	boom := errors.New("boom")
	err := mapError(boom, main)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, selector.ErrCancelled)
}

func TestValidateLength(t *testing.T) {
	validate := validateLength(5)

	assert.NoError(t, validate("héllo"))
	assert.Error(t, validate("héllo!"))
	assert.NoError(t, validateLength(0)("anything at all"))
}

func TestRows(t *testing.T) {
	var list abbrev.List
	list.Add("A very long one")
	items := selector.MainMenu(list.Candidates(), false)

	term, _ := newTestTerminal("")
	term.maxLength = 6
	rows := term.rows(items)

	require.Len(t, rows, 4)
	assert.Equal(t, row{Key: "1", Text: "A very│ long one"}, rows[0])
	assert.Equal(t, row{Key: "e", Text: "Edit", Command: true}, rows[1])
	assert.Equal(t, "s", rows[2].Key)
	assert.Equal(t, "q", rows[3].Key)
}

func TestSearchRows(t *testing.T) {
	rows := []row{
		{Key: "1", Text: "First option"},
		{Key: "12", Text: "Twelfth"},
		{Key: "s", Text: "Skip", Command: true},
	}
	search := searchRows(rows)

	assert.True(t, search("", 0))
	assert.True(t, search("1", 0))
	assert.True(t, search("1", 1), "keys sharing a prefix stay visible")
	assert.False(t, search("12", 0))
	assert.True(t, search("12", 1))
	assert.True(t, search("s", 2))
	assert.False(t, search("s", 0), "single characters only match keys")
	assert.True(t, search("skip", 2))
	assert.True(t, search("option", 0))
}

func TestContext(t *testing.T) {
	term, out := newTestTerminal("")

	term.Context("This is the end of the world", 11)

	assert.Equal(t, "\nThis is the│ end of the world\n", out.String())
	assert.Equal(t, 11, term.maxLength)
}

func TestHeader(t *testing.T) {
	term, out := newTestTerminal("")

	term.Header(map[string]any{"artist": "Band", "album": "Live", "title": "Song"})

	assert.Equal(t, "\nBand - Live - Song\n", out.String())
}

func TestShowAlbum(t *testing.T) {
	term, out := newTestTerminal("\n")

	album := selector.Album{
		Title:  "Piano Sonatas",
		Artist: "Beethoven",
		Tracks: []selector.Track{
			{Position: 1, Title: "Short"},
			{Position: 2, Title: "A title that does not fit"},
		},
	}

	require.NoError(t, term.ShowAlbum(context.Background(), album, 10))

	got := out.String()
	assert.Contains(t, got, "Beethoven - Piano Sonatas\n")
	assert.Contains(t, got, "01. Short\n")
	assert.Contains(t, got, "02. A title th│at does not fit\n")
	assert.Contains(t, got, AnyKeyPrompt)
}

func TestShowAlbum_EOFReturns(t *testing.T) {
	term, _ := newTestTerminal("")

	assert.NoError(t, term.ShowAlbum(context.Background(), selector.Album{Title: "x"}, 10))
}

func TestShowAlbum_ContextCancelled(t *testing.T) {
	term, out := newTestTerminal("\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, term.ShowAlbum(ctx, selector.Album{Title: "x"}, 10), context.Canceled)
	assert.Empty(t, out.String())
}
