package mustache

import (
	"strconv"
	"strings"
)

// contextStack is the chain of nested scopes used for name resolution.
// Index 0 holds the root context; the innermost active scope is last.
type contextStack []any

// resolve walks a dotted path against the stack, innermost scope first.
// The first scope in which every segment resolves wins, which gives the
// usual shadowing of outer names by section-local ones. A path that
// resolves nowhere reports ok=false; that is never an error.
func (s contextStack) resolve(path string) (any, bool) {
	path = strings.TrimSpace(path)
	if path == "." {
		if len(s) == 0 {
			return nil, false
		}
		return s[len(s)-1], true
	}

	var parts []string
	for _, p := range strings.Split(path, ".") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return nil, false
	}

	for i := len(s) - 1; i >= 0; i-- {
		if v, ok := walkPath(s[i], parts); ok {
			return v, true
		}
	}
	return nil, false
}

// walkPath follows every segment inside a single scope: key lookup on
// mappings, index lookup on sequences when the segment is a non-negative
// integer literal.
func walkPath(v any, parts []string) (any, bool) {
	for _, p := range parts {
		switch cur := v.(type) {
		case map[string]any:
			next, ok := cur[p]
			if !ok {
				return nil, false
			}
			v = next
		case []any:
			idx, err := strconv.Atoi(p)
			if err != nil || idx < 0 || idx >= len(cur) {
				return nil, false
			}
			v = cur[idx]
		default:
			return nil, false
		}
	}
	return v, true
}

// isTruthy implements section truthiness: absent values, false, empty
// strings and empty collections are falsy. Numbers are always truthy, zero
// included.
func isTruthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}
