package validation

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Fields wraps an untyped request object while a schema reads from it.
// Every failed check is recorded; nothing short-circuits.
type Fields struct {
	values map[string]any
	issues []Issue
}

// Schema reads and checks the fields of one request shape.
type Schema[T any] func(f *Fields) T

// Parse runs schema against raw (typically the result of decoding a JSON
// body into an `any`). On failure the returned error is a *Error.
func Parse[T any](schema Schema[T], raw any) (T, error) {
	var zero T

	values, ok := raw.(map[string]any)
	if !ok {
		return zero, newError([]Issue{{
			Path:    "",
			Message: fmt.Sprintf("Expected object, received %s", typeName(raw)),
		}})
	}

	f := &Fields{values: values}
	out := schema(f)
	if len(f.issues) > 0 {
		return zero, newError(f.issues)
	}
	return out, nil
}

// Fail records an issue at path.
func (f *Fields) Fail(path, message string) {
	f.issues = append(f.issues, Issue{Path: path, Message: message})
}

func (f *Fields) lookup(name string) (any, bool) {
	v, ok := f.values[name]
	return v, ok
}

// String reads a required string field.
func (f *Fields) String(name string) (string, bool) {
	v, ok := f.lookup(name)
	if !ok {
		f.Fail(name, "Required")
		return "", false
	}
	return f.asString(name, v)
}

// OptionalString reads a string field that defaults to def when absent.
func (f *Fields) OptionalString(name, def string) (string, bool) {
	v, ok := f.lookup(name)
	if !ok {
		return def, true
	}
	return f.asString(name, v)
}

func (f *Fields) asString(path string, v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		f.Fail(path, fmt.Sprintf("Expected string, received %s", typeName(v)))
		return "", false
	}
	return s, true
}

// Number reads a required numeric field.
func (f *Fields) Number(name string) (float64, bool) {
	v, ok := f.lookup(name)
	if !ok {
		f.Fail(name, "Required")
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			f.Fail(name, "Expected number, received string")
			return 0, false
		}
		return parsed, true
	}
	f.Fail(name, fmt.Sprintf("Expected number, received %s", typeName(v)))
	return 0, false
}

// Array reads a required array field.
func (f *Fields) Array(name string) ([]any, bool) {
	v, ok := f.lookup(name)
	if !ok {
		f.Fail(name, "Required")
		return nil, false
	}
	switch items := v.(type) {
	case []any:
		return items, true
	case []string:
		out := make([]any, len(items))
		for i, s := range items {
			out[i] = s
		}
		return out, true
	}
	f.Fail(name, fmt.Sprintf("Expected array, received %s", typeName(v)))
	return nil, false
}

// Key checks a required single-object key: non-empty, traversal free and
// left intact by SanitizeKey.
func (f *Fields) Key(name, emptyMsg, invalidMsg string) string {
	s, ok := f.String(name)
	if !ok {
		return ""
	}
	f.checkKey(name, s, emptyMsg, invalidMsg)
	return s
}

func (f *Fields) checkKey(path, s, emptyMsg, invalidMsg string) {
	if s == "" {
		f.Fail(path, emptyMsg)
	}
	if !IsValidKey(s) {
		f.Fail(path, invalidMsg)
		return
	}
	if _, ok := ResolveKey(s); !ok {
		f.Fail(path, invalidMsg)
	}
}

// Prefix checks an optional listing scope. The empty string is the root.
func (f *Fields) Prefix(name string) string {
	s, ok := f.OptionalString(name, "")
	if !ok {
		return ""
	}
	if s == "" {
		return s
	}
	if _, ok := ResolveKey(s); !ok || !IsValidKey(s) {
		f.Fail(name, "Prefix contains invalid path sequences")
	}
	return s
}

// NonEmpty checks a required string that only has to be present.
func (f *Fields) NonEmpty(name, emptyMsg string) string {
	s, ok := f.String(name)
	if ok && s == "" {
		f.Fail(name, emptyMsg)
	}
	return s
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64, float32, int, int64, json.Number:
		return "number"
	case bool:
		return "boolean"
	case []any, []string:
		return "array"
	case map[string]any:
		return "object"
	}
	return "unknown"
}

func indexPath(name string, i int) string {
	return name + "." + strconv.Itoa(i)
}
