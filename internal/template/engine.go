package template

import (
	"fmt"
	"regexp"
	"strings"
	texttemplate "text/template"

	"github.com/Masterminds/sprig/v3"
)

// Engine resolves parameter value references against the accumulated
// strategy context. Two layers exist:
//
//   - simple references, "{{ key }}": substituted directly from the
//     context. A value that is exactly one simple reference keeps the
//     original type of the referenced value (a number stays a number).
//   - anything else containing {{ ... }}: rendered as a Go text/template
//     with the sprig function set, producing a string.
type Engine struct {
	simplePattern *regexp.Regexp
	funcs         texttemplate.FuncMap
}

// New creates a template engine.
func New() *Engine {
	return &Engine{
		simplePattern: regexp.MustCompile(`^\{\{\s*\.?([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}$`),
		funcs:         sprig.TxtFuncMap(),
	}
}

// Replace resolves all references in a value against the context,
// recursing through maps and slices. Non-templatable types are returned
// as-is.
func (e *Engine) Replace(value interface{}, context map[string]interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		return e.replaceString(v, context)
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, val := range v {
			replaced, err := e.Replace(val, context)
			if err != nil {
				return nil, fmt.Errorf("error in key '%s': %w", key, err)
			}
			result[key] = replaced
		}
		return result, nil
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, val := range v {
			replaced, err := e.Replace(val, context)
			if err != nil {
				return nil, fmt.Errorf("error at index %d: %w", i, err)
			}
			result[i] = replaced
		}
		return result, nil
	default:
		return value, nil
	}
}

// ReplaceMap resolves all references in a parameter map against the
// context. Replace on a map input always yields a map, so the result keeps
// its concrete type.
func (e *Engine) ReplaceMap(params map[string]interface{}, context map[string]interface{}) (map[string]interface{}, error) {
	resolved, err := e.Replace(params, context)
	if err != nil {
		return nil, err
	}
	return resolved.(map[string]interface{}), nil
}

func (e *Engine) replaceString(s string, context map[string]interface{}) (interface{}, error) {
	if !strings.Contains(s, "{{") {
		return s, nil
	}

	// A lone simple reference preserves the referenced value's type.
	if match := e.simplePattern.FindStringSubmatch(strings.TrimSpace(s)); match != nil {
		name := match[1]
		value, exists := context[name]
		if !exists {
			return nil, fmt.Errorf("missing template variable: %s", name)
		}
		return value, nil
	}

	return e.RenderGoTemplate(s, context)
}

// RenderGoTemplate renders a template string against the context using Go
// text/template with the sprig function set. Missing keys are errors rather
// than "<no value>" output.
func (e *Engine) RenderGoTemplate(templateStr string, context map[string]interface{}) (string, error) {
	tmpl, err := texttemplate.New("value").Funcs(e.funcs).Option("missingkey=error").Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}

	var builder strings.Builder
	if err := tmpl.Execute(&builder, context); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return builder.String(), nil
}

// ExtractVariables returns the simple-reference variable names used in a
// value, recursing through maps and slices. Used by plan validation to
// report which context keys a strategy depends on.
func (e *Engine) ExtractVariables(value interface{}) []string {
	seen := make(map[string]bool)
	e.extractRecursive(value, seen)

	result := make([]string, 0, len(seen))
	for name := range seen {
		result = append(result, name)
	}
	return result
}

var anyReference = regexp.MustCompile(`\{\{\s*\.?([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)

func (e *Engine) extractRecursive(value interface{}, seen map[string]bool) {
	switch v := value.(type) {
	case string:
		for _, match := range anyReference.FindAllStringSubmatch(v, -1) {
			if len(match) >= 2 {
				seen[match[1]] = true
			}
		}
	case map[string]interface{}:
		for _, val := range v {
			e.extractRecursive(val, seen)
		}
	case []interface{}:
		for _, val := range v {
			e.extractRecursive(val, seen)
		}
	}
}
