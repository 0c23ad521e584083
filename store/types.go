package store

// Album is a parent record grouping tracks.
type Album struct {
	ID     string `yaml:"id"`
	Title  string `yaml:"title"`
	Artist string `yaml:"artist,omitempty"`
}

// Item is one track.
type Item struct {
	ID         string `yaml:"id"`
	AlbumID    string `yaml:"album_id,omitempty"`
	Track      int    `yaml:"track,omitempty"`
	Artist     string `yaml:"artist,omitempty"`
	Title      string `yaml:"title"`
	TitleShort string `yaml:"title_short,omitempty"`
}

// document is the on-disk layout.
type document struct {
	Albums []Album `yaml:"albums"`
	Items  []Item  `yaml:"items"`
}

// Fields returns the item as template variables. album and album artist
// come from a.
func (it Item) Fields(a Album) map[string]any {
	artist := it.Artist
	if artist == "" {
		artist = a.Artist
	}
	return map[string]any{
		"id":          it.ID,
		"title":       it.Title,
		"title_short": it.TitleShort,
		"track":       it.Track,
		"artist":      artist,
		"album":       a.Title,
	}
}
