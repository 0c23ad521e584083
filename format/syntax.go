package format

import (
	"regexp"
	"strings"
)

// helperNames lists the built-in helper function names.
var helperNames = []string{"pad2", "elide", "upper", "lower", "trim", "default"}

var (
	ifPattern     = regexp.MustCompile(`\{\{#if\s+(\w+)\}\}`)
	varPattern    = regexp.MustCompile(`\{\{([a-zA-Z_]\w*)\}\}`)
	helperPattern = regexp.MustCompile(`\{\{(` + strings.Join(helperNames, "|") + `)\s+([^{}]+)\}\}`)
	wordPattern   = regexp.MustCompile(`^[a-zA-Z_]\w*$`)
)

// goTemplateKeywords are left untouched by the variable rewrite.
var goTemplateKeywords = map[string]bool{
	"else": true,
	"end":  true,
}

// convertSyntax converts Handlebars-like syntax to Go template syntax.
//
// Conversions:
//   - {{field}} -> {{.field}}
//   - {{#if x}}...{{/if}} -> {{if .x}}...{{end}}
//   - {{helper arg1 arg2}} -> {{helper .arg1 arg2}} (bare words become fields)
func convertSyntax(input string) string {
	result := ifPattern.ReplaceAllString(input, "{{if .$1}}")
	result = strings.ReplaceAll(result, "{{/if}}", "{{end}}")

	result = varPattern.ReplaceAllStringFunc(result, func(match string) string {
		name := match[2 : len(match)-2]
		if goTemplateKeywords[name] {
			return match
		}
		return "{{." + name + "}}"
	})

	return helperPattern.ReplaceAllStringFunc(result, func(match string) string {
		parts := helperPattern.FindStringSubmatch(match)
		args := strings.Fields(parts[2])
		for i, arg := range args {
			if wordPattern.MatchString(arg) {
				args[i] = "." + arg
			}
		}
		return "{{" + parts[1] + " " + strings.Join(args, " ") + "}}"
	})
}
