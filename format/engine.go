package format

import (
	"fmt"
	"strings"
	"sync"
	"text/template"
)

// Default line formats.
const (
	DefaultItemFormat  = "{{#if artist}}{{artist}} - {{/if}}{{#if album}}{{album}} - {{/if}}{{title}}"
	DefaultTrackFormat = "{{pad2 track}}. {{title}}"
)

// Engine renders line templates with variable substitution.
type Engine struct {
	funcs template.FuncMap

	mu    sync.Mutex
	cache map[string]*template.Template
}

// NewEngine creates an engine with the default helper functions.
func NewEngine() *Engine {
	return &Engine{
		funcs: defaultFuncs(),
		cache: make(map[string]*template.Template),
	}
}

// Render executes the format with the given variables.
func (e *Engine) Render(format string, variables map[string]any) (string, error) {
	tmpl, err := e.parse(format)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if execErr := tmpl.Execute(&buf, variables); execErr != nil {
		return "", fmt.Errorf("%w: %w", ErrExecute, execErr)
	}

	return buf.String(), nil
}

// Validate checks that the format parses.
func (e *Engine) Validate(format string) error {
	_, err := e.parse(format)
	return err
}

// MustRender renders format and returns the raw format on error.
// For display paths where a broken user format should not stop the batch.
func (e *Engine) MustRender(format string, variables map[string]any) string {
	out, err := e.Render(format, variables)
	if err != nil {
		return format
	}
	return out
}

func (e *Engine) parse(format string) (*template.Template, error) {
	if format == "" {
		return nil, ErrEmpty
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.cache[format]; ok {
		return tmpl, nil
	}

	tmpl, parseErr := template.New("line").Funcs(e.funcs).Parse(convertSyntax(format))
	if parseErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, parseErr)
	}

	e.cache[format] = tmpl
	return tmpl, nil
}
