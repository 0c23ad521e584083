package store

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Library is a YAML-backed set of albums and items.
// It is safe for concurrent use.
type Library struct {
	path string

	mu     sync.RWMutex
	doc    document
	items  map[string]int
	albums map[string]int
	raw    []byte // last content read or written
}

// Open loads the library at path.
func Open(path string) (*Library, error) {
	l := &Library{path: path}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// NewMemory creates a library that is never written to disk.
// Save is a no-op for it.
func NewMemory(albums []Album, items []Item) (*Library, error) {
	l := &Library{}
	if err := l.load(document{Albums: albums, Items: items}); err != nil {
		return nil, err
	}
	return l, nil
}

// Path returns the file backing the library, or "" for memory libraries.
func (l *Library) Path() string {
	return l.path
}

// Reload re-reads the library file, replacing the in-memory state.
func (l *Library) Reload() error {
	if l.path == "" {
		return nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("read library: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidDocument, l.path, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.loadLocked(doc); err != nil {
		return err
	}
	l.raw = data
	return nil
}

func (l *Library) load(doc document) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadLocked(doc)
}

func (l *Library) loadLocked(doc document) error {
	albums := make(map[string]int, len(doc.Albums))
	for i, a := range doc.Albums {
		if a.ID == "" {
			return fmt.Errorf("%w: album %d has no id", ErrInvalidDocument, i)
		}
		if _, dup := albums[a.ID]; dup {
			return fmt.Errorf("%w: duplicate album id %q", ErrInvalidDocument, a.ID)
		}
		albums[a.ID] = i
	}

	items := make(map[string]int, len(doc.Items))
	for i, it := range doc.Items {
		if it.ID == "" {
			return fmt.Errorf("%w: item %d has no id", ErrInvalidDocument, i)
		}
		if _, dup := items[it.ID]; dup {
			return fmt.Errorf("%w: duplicate item id %q", ErrInvalidDocument, it.ID)
		}
		items[it.ID] = i
	}

	l.doc = doc
	l.items = items
	l.albums = albums
	return nil
}

// Save writes the library back to its file through a temporary file and a
// rename, so readers never see a partial document.
func (l *Library) Save() error {
	if l.path == "" {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(l.doc); err != nil {
		return fmt.Errorf("encode library: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode library: %w", err)
	}
	data := buf.Bytes()

	if bytes.Equal(data, l.raw) {
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(l.path), "."+filepath.Base(l.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp library: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp library: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp library: %w", err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		return fmt.Errorf("replace library: %w", err)
	}

	l.raw = data
	return nil
}

// Len returns the number of items.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.doc.Items)
}

// Item returns the item with the given id.
func (l *Library) Item(id string) (Item, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, ok := l.items[id]
	if !ok {
		return Item{}, fmt.Errorf("item %q: %w", id, ErrNotFound)
	}
	return l.doc.Items[i], nil
}

// SetShortTitle records the short title of an item.
func (l *Library) SetShortTitle(id, short string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.items[id]
	if !ok {
		return fmt.Errorf("item %q: %w", id, ErrNotFound)
	}
	l.doc.Items[i].TitleShort = short
	return nil
}

// Album returns an album and its items ordered by track number.
func (l *Library) Album(id string) (Album, []Item, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, ok := l.albums[id]
	if !ok {
		return Album{}, nil, fmt.Errorf("album %q: %w", id, ErrNotFound)
	}

	var tracks []Item
	for _, it := range l.doc.Items {
		if it.AlbumID == id {
			tracks = append(tracks, it)
		}
	}
	sort.SliceStable(tracks, func(a, b int) bool {
		return tracks[a].Track < tracks[b].Track
	})

	return l.doc.Albums[i], tracks, nil
}

// AlbumOf returns the album an item belongs to. Items without an album get
// a zero Album and no error.
func (l *Library) AlbumOf(it Item) Album {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if i, ok := l.albums[it.AlbumID]; ok {
		return l.doc.Albums[i]
	}
	return Album{}
}

// Items returns the items matching q, ordered by album (in document order,
// albumless items last) and then track number.
func (l *Library) Items(q Query) []Item {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Item
	for _, it := range l.doc.Items {
		var album Album
		if i, ok := l.albums[it.AlbumID]; ok {
			album = l.doc.Albums[i]
		}
		if q.Match(it, album) {
			out = append(out, it)
		}
	}

	albumRank := func(it Item) int {
		if i, ok := l.albums[it.AlbumID]; ok {
			return i
		}
		return len(l.doc.Albums)
	}
	sort.SliceStable(out, func(a, b int) bool {
		ra, rb := albumRank(out[a]), albumRank(out[b])
		if ra != rb {
			return ra < rb
		}
		return out[a].Track < out[b].Track
	})

	return out
}

// Query selects items that need a short title.
type Query struct {
	// MaxLength selects titles longer than this many characters.
	// Zero disables the length filter.
	MaxLength int

	// Force includes items that already have a short title.
	Force bool

	// Terms must all match. "field:value" matches one field (artist, album,
	// title, id); a bare term matches artist, album or title. Matching is a
	// case-insensitive substring test.
	Terms []string
}

// Match reports whether it, in album, satisfies the query.
func (q Query) Match(it Item, album Album) bool {
	if q.MaxLength > 0 && utf8.RuneCountInString(it.Title) <= q.MaxLength {
		return false
	}
	if !q.Force && it.TitleShort != "" {
		return false
	}

	artist := it.Artist
	if artist == "" {
		artist = album.Artist
	}
	fields := map[string]string{
		"id":     it.ID,
		"artist": artist,
		"album":  album.Title,
		"title":  it.Title,
	}

	for _, term := range q.Terms {
		if !matchTerm(term, fields) {
			return false
		}
	}
	return true
}

func matchTerm(term string, fields map[string]string) bool {
	if field, value, ok := strings.Cut(term, ":"); ok {
		if v, known := fields[strings.ToLower(field)]; known {
			return containsFold(v, value)
		}
	}
	for _, name := range []string{"artist", "album", "title"} {
		if containsFold(fields[name], term) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
