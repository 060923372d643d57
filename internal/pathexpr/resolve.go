// Package pathexpr resolves dotted path expressions against records.
//
// A path like "owner.id" names a nested property of a record. Records may
// be maps (map[string]any or any map with string keys), structs, or
// pointers to either. Resolution is a pure function: no state, no side
// effects, no mutation of the record.
package pathexpr

import (
	"reflect"
	"strings"
)

// Resolve returns the value at the dotted path within record.
// The second return is false when any segment of the path is missing:
// a nil record, an absent map key, an unknown struct field, or a
// non-traversable intermediate value.
//
// Struct fields match by exact name first, then by json tag, then
// case-insensitively. Pointers are followed; a nil pointer terminates
// resolution with (nil, false).
func Resolve(record any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	cur := record
	for seg := range strings.SplitSeq(path, ".") {
		if seg == "" {
			return nil, false
		}
		next, ok := step(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// step resolves a single path segment against one value.
func step(v any, seg string) (any, bool) {
	if v == nil {
		return nil, false
	}

	// Fast path for the common record shape.
	if m, ok := v.(map[string]any); ok {
		val, ok := m[seg]
		return val, ok
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		val := rv.MapIndex(reflect.ValueOf(seg).Convert(rv.Type().Key()))
		if !val.IsValid() {
			return nil, false
		}
		return val.Interface(), true
	case reflect.Struct:
		return structField(rv, seg)
	default:
		return nil, false
	}
}

// structField looks up seg on a struct value: exact field name, then json
// tag, then case-insensitive name match.
func structField(rv reflect.Value, seg string) (any, bool) {
	rt := rv.Type()

	if f, ok := rt.FieldByName(seg); ok && f.IsExported() {
		return rv.FieldByIndex(f.Index).Interface(), true
	}

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		if tagName(f.Tag.Get("json")) == seg {
			return rv.Field(i).Interface(), true
		}
	}

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		if strings.EqualFold(f.Name, seg) {
			return rv.Field(i).Interface(), true
		}
	}

	return nil, false
}

// tagName extracts the name portion of a json struct tag.
func tagName(tag string) string {
	if tag == "" || tag == "-" {
		return ""
	}
	if i := strings.IndexByte(tag, ','); i >= 0 {
		return tag[:i]
	}
	return tag
}
