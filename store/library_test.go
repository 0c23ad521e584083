package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLibrary = `albums:
  - id: a1
    title: Piano Sonatas
    artist: Ludwig van Beethoven
  - id: a2
    title: Live
    artist: Band
items:
  - id: t3
    album_id: a2
    track: 2
    title: "Encore: A Very Long Medley of Songs Nobody Remembers"
  - id: t1
    album_id: a1
    track: 2
    title: "Piano Sonata No. 14 in C# minor, Op. 27 No. 2: III. Presto agitato"
  - id: t2
    album_id: a1
    track: 1
    title: "Piano Sonata No. 14 in C# minor, Op. 27 No. 2: I. Adagio sostenuto"
    title_short: "Moonlight I"
  - id: t4
    album_id: a1
    track: 3
    title: Short
  - id: t5
    title: "A Loose Track Without Any Album Attached To It At All"
`

func writeLibrary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestOpen(t *testing.T) {
	lib, err := Open(writeLibrary(t, testLibrary))
	require.NoError(t, err)

	assert.Equal(t, 5, lib.Len())

	it, err := lib.Item("t2")
	require.NoError(t, err)
	assert.Equal(t, "Moonlight I", it.TitleShort)
	assert.Equal(t, 1, it.Track)
}

func TestOpen_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "bad yaml", content: "items: [", wantErr: ErrInvalidDocument},
		{name: "duplicate item", content: "items:\n  - id: x\n  - id: x\n", wantErr: ErrInvalidDocument},
		{name: "empty item id", content: "items:\n  - title: x\n", wantErr: ErrInvalidDocument},
		{name: "duplicate album", content: "albums:\n  - id: a\n  - id: a\n", wantErr: ErrInvalidDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(writeLibrary(t, tt.content))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := Open(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestItems(t *testing.T) {
	lib, err := Open(writeLibrary(t, testLibrary))
	require.NoError(t, err)

	tests := []struct {
		name     string
		query    Query
		expected []string
	}{
		{
			name:     "long titles without short title",
			query:    Query{MaxLength: 40},
			expected: []string{"t1", "t3", "t5"},
		},
		{
			name:     "force includes existing short titles",
			query:    Query{MaxLength: 40, Force: true},
			expected: []string{"t2", "t1", "t3", "t5"},
		},
		{
			name:     "no length filter",
			query:    Query{Force: true},
			expected: []string{"t2", "t1", "t4", "t3", "t5"},
		},
		{
			name:     "field term",
			query:    Query{MaxLength: 40, Terms: []string{"artist:beethoven"}},
			expected: []string{"t1"},
		},
		{
			name:     "bare term",
			query:    Query{MaxLength: 40, Terms: []string{"medley"}},
			expected: []string{"t3"},
		},
		{
			name:     "all terms must match",
			query:    Query{MaxLength: 40, Terms: []string{"album:live", "presto"}},
			expected: nil,
		},
		{
			name:     "unknown field is a bare term",
			query:    Query{MaxLength: 40, Terms: []string{"Encore:"}},
			expected: []string{"t3"},
		},
		{
			name:     "id term",
			query:    Query{Terms: []string{"id:t5"}},
			expected: []string{"t5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lib.Items(tt.query)
			if tt.expected == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestQuery_LengthCountsCharacters(t *testing.T) {
	q := Query{MaxLength: 5}

	assert.False(t, q.Match(Item{Title: "ééééé"}, Album{}))
	assert.True(t, q.Match(Item{Title: "éééééé"}, Album{}))
}

func TestAlbum(t *testing.T) {
	lib, err := Open(writeLibrary(t, testLibrary))
	require.NoError(t, err)

	album, tracks, err := lib.Album("a1")
	require.NoError(t, err)
	assert.Equal(t, "Piano Sonatas", album.Title)
	assert.Equal(t, []string{"t2", "t1", "t4"}, ids(tracks))

	_, _, err = lib.Album("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	it, err := lib.Item("t5")
	require.NoError(t, err)
	assert.Equal(t, Album{}, lib.AlbumOf(it))
}

func TestSetShortTitleAndSave(t *testing.T) {
	path := writeLibrary(t, testLibrary)
	lib, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, lib.SetShortTitle("t1", "Moonlight III"))
	assert.ErrorIs(t, lib.SetShortTitle("missing", "x"), ErrNotFound)
	require.NoError(t, lib.Save())

	reopened, err := Open(path)
	require.NoError(t, err)
	it, err := reopened.Item("t1")
	require.NoError(t, err)
	assert.Equal(t, "Moonlight III", it.TitleShort)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestFields(t *testing.T) {
	a := Album{ID: "a1", Title: "Hits", Artist: "Band"}

	fields := Item{ID: "t1", Track: 3, Title: "Song"}.Fields(a)
	assert.Equal(t, "Band", fields["artist"])
	assert.Equal(t, "Hits", fields["album"])
	assert.Equal(t, 3, fields["track"])

	fields = Item{Artist: "Guest"}.Fields(a)
	assert.Equal(t, "Guest", fields["artist"])
}

func TestNewMemory(t *testing.T) {
	lib, err := NewMemory(nil, []Item{{ID: "x", Title: "Title"}})
	require.NoError(t, err)

	require.NoError(t, lib.SetShortTitle("x", "T"))
	require.NoError(t, lib.Save())
	require.NoError(t, lib.Reload())

	it, err := lib.Item("x")
	require.NoError(t, err)
	assert.Equal(t, "T", it.TitleShort)

	_, err = NewMemory(nil, []Item{{ID: "x"}, {ID: "x"}})
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestWatch(t *testing.T) {
	path := writeLibrary(t, testLibrary)
	lib, err := Open(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := lib.Watch(ctx, 20*time.Millisecond)

	// Own writes are not reported.
	require.NoError(t, lib.SetShortTitle("t1", "Mine"))
	require.NoError(t, lib.Save())

	edited := testLibrary + "  - id: t6\n    title: Added Elsewhere\n"
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))

	select {
	case change := <-changes:
		require.NoError(t, change.Err)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	_, err = lib.Item("t6")
	assert.NoError(t, err)

	cancel()
	for range changes {
	}
}
