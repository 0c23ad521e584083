package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/randalmurphal/titletrunc/format"
	"github.com/randalmurphal/titletrunc/selector"
)

// DefaultPageSize is the number of menu rows shown at once.
const DefaultPageSize = 12

// AnyKeyPrompt is shown below the album listing.
const AnyKeyPrompt = "Press any key to return"

var _ selector.Renderer = (*Terminal)(nil)

// Terminal renders the selector on a terminal.
type Terminal struct {
	in       io.ReadCloser  // nil means the process stdin
	out      io.WriteCloser // nil means the process stdout
	color    bool
	pageSize int

	engine      *format.Engine
	trackFormat string
	itemFormat  string

	maxLength int
}

// New creates a terminal renderer on stdin and stdout without colour.
func New() *Terminal {
	return &Terminal{
		pageSize:    DefaultPageSize,
		engine:      format.NewEngine(),
		trackFormat: format.DefaultTrackFormat,
		itemFormat:  format.DefaultItemFormat,
	}
}

// WithIO replaces stdin and stdout.
func (t *Terminal) WithIO(in io.ReadCloser, out io.WriteCloser) *Terminal {
	t.in = in
	t.out = out
	return t
}

// WithColor enables or disables colour.
func (t *Terminal) WithColor(enabled bool) *Terminal {
	t.color = enabled
	return t
}

// WithPageSize sets the number of rows shown at once.
func (t *Terminal) WithPageSize(n int) *Terminal {
	if n > 0 {
		t.pageSize = n
	}
	return t
}

// WithTrackFormat sets the template of album listing lines.
func (t *Terminal) WithTrackFormat(f string) *Terminal {
	if f != "" {
		t.trackFormat = f
	}
	return t
}

// WithItemFormat sets the template of the item header.
func (t *Terminal) WithItemFormat(f string) *Terminal {
	if f != "" {
		t.itemFormat = f
	}
	return t
}

func (t *Terminal) writer() io.Writer {
	if t.out == nil {
		return os.Stdout
	}
	return t.out
}

func (t *Terminal) reader() io.Reader {
	if t.in == nil {
		return os.Stdin
	}
	return t.in
}

// Header prints the item being worked on, rendered with the item format.
func (t *Terminal) Header(vars map[string]any) {
	line := t.engine.MustRender(t.itemFormat, vars)
	fmt.Fprintf(t.writer(), "\n%s\n", bold(line, t.color))
}

// Context shows the original title with its overflow marked.
func (t *Terminal) Context(original string, maxLength int) {
	t.maxLength = maxLength
	fmt.Fprintf(t.writer(), "\n%s\n", Highlight(original, maxLength, t.color))
}

// Choose shows a menu and returns the chosen item.
func (t *Terminal) Choose(ctx context.Context, label string, items []selector.MenuItem, keys selector.KeyMap) (selector.MenuItem, error) {
	if err := ctx.Err(); err != nil {
		return selector.MenuItem{}, err
	}

	rows := t.rows(items)
	sel := promptui.Select{
		Label:             label,
		Items:             rows,
		Size:              t.pageSize,
		HideHelp:          true,
		Templates:         t.selectTemplates(),
		Searcher:          searchRows(rows),
		StartInSearchMode: true,
		Stdin:             t.in,
		Stdout:            t.out,
	}

	i, _, err := sel.Run()
	if err != nil {
		return selector.MenuItem{}, mapError(err, keys)
	}
	return items[i], nil
}

// Prompt asks for free text, pre-filled with seed.
func (t *Terminal) Prompt(ctx context.Context, label, seed string, limit int, keys selector.KeyMap) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p := promptui.Prompt{
		Label:     label,
		Default:   seed,
		AllowEdit: true,
		Validate:  validateLength(limit),
		Stdin:     t.in,
		Stdout:    t.out,
	}

	text, err := p.Run()
	if err != nil {
		return "", mapError(err, keys)
	}
	return text, nil
}

// ShowAlbum lists the tracks of album and waits for a key.
func (t *Terminal) ShowAlbum(ctx context.Context, album selector.Album, maxLength int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w := t.writer()
	fmt.Fprintln(w)
	fmt.Fprintln(w, bold(t.albumTitle(album), t.color))
	for _, line := range t.trackLines(album, maxLength) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "\n%s ", AnyKeyPrompt)

	err := t.waitKey()
	fmt.Fprintln(w)
	return err
}

func (t *Terminal) albumTitle(album selector.Album) string {
	if album.Artist == "" {
		return album.Title
	}
	return album.Artist + " - " + album.Title
}

func (t *Terminal) trackLines(album selector.Album, maxLength int) []string {
	lines := make([]string, 0, len(album.Tracks))
	for _, tr := range album.Tracks {
		vars := map[string]any{
			"track": tr.Position,
			"title": Highlight(tr.Title, maxLength, t.color),
		}
		lines = append(lines, t.engine.MustRender(t.trackFormat, vars))
	}
	return lines
}

// waitKey reads a single key in raw mode on a terminal, otherwise a line.
func (t *Terminal) waitKey() error {
	r := t.reader()

	if f, ok := r.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		fd := int(f.Fd())
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("raw mode: %w", err)
		}
		defer func() {
			_ = term.Restore(fd, state)
		}()

		var buf [1]byte
		if _, err := f.Read(buf[:]); err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		return nil
	}

	_, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read key: %w", err)
	}
	return nil
}

// row is one menu line as seen by the templates.
type row struct {
	Key     string
	Text    string
	Command bool
}

func (t *Terminal) rows(items []selector.MenuItem) []row {
	rows := make([]row, len(items))
	for i, item := range items {
		r := row{Key: item.Key(), Text: item.Label()}
		if item.Kind == selector.ItemCandidate {
			r.Text = Highlight(r.Text, t.maxLength, t.color)
		} else {
			r.Command = true
		}
		rows[i] = r
	}
	return rows
}

func (t *Terminal) selectTemplates() *promptui.SelectTemplates {
	if !t.color {
		return &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "> {{ .Key }}. {{ .Text }}",
			Inactive: "  {{ .Key }}. {{ .Text }}",
			Selected: "{{ .Key }}. {{ .Text }}",
		}
	}
	return &promptui.SelectTemplates{
		Label:    "{{ . | bold }}",
		Active:   "▸ {{ .Key | cyan }}. {{ .Text }}",
		Inactive: "  {{ .Key | faint }}. {{ if .Command }}{{ .Text | faint }}{{ else }}{{ .Text }}{{ end }}",
		Selected: "{{ .Key | cyan }}. {{ .Text }}",
	}
}

// searchRows matches typed input against row keys, and against row text
// once more than one character is typed.
func searchRows(rows []row) func(input string, index int) bool {
	return func(input string, index int) bool {
		input = strings.TrimSpace(input)
		r := rows[index]
		if strings.HasPrefix(r.Key, input) {
			return true
		}
		return utf8.RuneCountInString(input) > 1 &&
			strings.Contains(strings.ToLower(r.Text), strings.ToLower(input))
	}
}

func validateLength(limit int) promptui.ValidateFunc {
	return func(s string) error {
		if n := utf8.RuneCountInString(s); limit > 0 && n > limit {
			return fmt.Errorf("%d characters, at most %d allowed", n, limit)
		}
		return nil
	}
}

// mapError turns promptui's cancellation errors into the key map's
// actions. Other errors pass through.
func mapError(err error, keys selector.KeyMap) error {
	switch {
	case errors.Is(err, promptui.ErrInterrupt):
		return keys.Interrupt.Err()
	case errors.Is(err, promptui.ErrEOF), errors.Is(err, promptui.ErrAbort):
		return keys.Escape.Err()
	}
	return err
}
