// Package table derives the visible slice of a record collection from a
// search, facet filter, sort and page view state.
package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one displayable item. Values are scalars, nested maps or lists.
type Record map[string]interface{}

// Column describes one table column. Key may be a dotted path into nested maps.
type Column struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Sortable bool   `json:"sortable"`
}

// Resolve returns the value addressed by a dotted key, or nil when any segment is missing.
func Resolve(record Record, key string) interface{} {
	if record == nil || key == "" {
		return nil
	}
	if v, ok := record[key]; ok {
		return v
	}

	var current interface{} = map[string]interface{}(record)
	for _, part := range strings.Split(key, ".") {
		switch m := current.(type) {
		case Record:
			current = m[part]
		case map[string]interface{}:
			current = m[part]
		case map[string]string:
			value, ok := m[part]
			if !ok {
				return nil
			}
			current = value
		default:
			return nil
		}
		if current == nil {
			return nil
		}
	}
	return current
}

func isNull(v interface{}) bool {
	if v == nil {
		return true
	}
	switch p := v.(type) {
	case *string:
		return p == nil
	case *float64:
		return p == nil
	case *int:
		return p == nil
	case *int64:
		return p == nil
	}
	return false
}

func deref(v interface{}) interface{} {
	switch p := v.(type) {
	case *string:
		if p != nil {
			return *p
		}
	case *float64:
		if p != nil {
			return *p
		}
	case *int:
		if p != nil {
			return *p
		}
	case *int64:
		if p != nil {
			return *p
		}
	default:
		return v
	}
	return nil
}

func toNumber(v interface{}) (float64, bool) {
	switch n := deref(v).(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// scalarString renders a non-collection value the way it is displayed.
func scalarString(v interface{}) string {
	switch s := deref(v).(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(s)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(s)
	}
}

// searchable flattens a value into every string a search term may hit.
func searchable(v interface{}, out []string) []string {
	switch t := v.(type) {
	case nil:
		return out
	case Record:
		for _, nested := range t {
			out = searchable(nested, out)
		}
	case map[string]interface{}:
		for _, nested := range t {
			out = searchable(nested, out)
		}
	case map[string]string:
		for _, nested := range t {
			out = append(out, nested)
		}
	case []string:
		out = append(out, t...)
	case []interface{}:
		for _, nested := range t {
			out = searchable(nested, out)
		}
	default:
		if !isNull(t) {
			out = append(out, scalarString(t))
		}
	}
	return out
}

// members returns the string form of every element of a list value, or of the scalar itself.
func members(v interface{}) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		return t
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if !isNull(item) {
				out = append(out, scalarString(item))
			}
		}
		return out
	default:
		if isNull(t) {
			return nil
		}
		return []string{scalarString(t)}
	}
}

// Display renders a resolved value as a single cell string; list values are comma joined.
func Display(v interface{}) string {
	return strings.Join(members(v), ", ")
}
