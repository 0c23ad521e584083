package format

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/randalmurphal/titletrunc/truncate"
)

// defaultFuncs returns the built-in template functions.
func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		"pad2":    pad2,
		"elide":   truncate.End,
		"upper":   strings.ToUpper,
		"lower":   strings.ToLower,
		"trim":    strings.TrimSpace,
		"default": defaultValue,
	}
}

// pad2 zero-pads a track number. Non-numbers print as is.
func pad2(v any) string {
	switch n := v.(type) {
	case int:
		return fmt.Sprintf("%02d", n)
	case int64:
		return fmt.Sprintf("%02d", n)
	case nil:
		return "00"
	default:
		return fmt.Sprintf("%v", n)
	}
}

// defaultValue returns the default if the value is nil or an empty string.
func defaultValue(val, defaultVal any) any {
	if val == nil {
		return defaultVal
	}
	if s, ok := val.(string); ok && s == "" {
		return defaultVal
	}
	return val
}
