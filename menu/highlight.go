package menu

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/randalmurphal/titletrunc/config"
)

// OverflowMarker separates the fitting prefix from the overflow when colour
// is off.
const OverflowMarker = "│"

// Highlight marks the characters of text beyond maxLen. Text that fits is
// returned green, or unchanged without colour.
func Highlight(text string, maxLen int, useColor bool) string {
	runes := []rune(text)
	if maxLen <= 0 || len(runes) <= maxLen {
		return paint(text, color.FgGreen, useColor)
	}

	head, tail := string(runes[:maxLen]), string(runes[maxLen:])
	if !useColor {
		return head + OverflowMarker + tail
	}
	return paint(head, color.FgGreen, true) + paint(tail, color.FgRed, true)
}

// ColorEnabled resolves a colour mode (auto, always, never) for out.
// In auto mode colour is used when out is a terminal and NO_COLOR is unset.
func ColorEnabled(mode string, out *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" || out == nil {
		return false
	}
	fd := out.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func paint(s string, attr color.Attribute, enabled bool) string {
	if !enabled || s == "" {
		return s
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}

func bold(s string, enabled bool) string {
	return paint(s, color.Bold, enabled)
}
