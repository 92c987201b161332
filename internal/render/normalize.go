// Package render converts upstream API values into the uniform string
// responses returned by every tool: JSON-compatible normalization,
// bounded collection of paginated sequences, and error formatting.
package render

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Fielder lets a type provide its own field mapping instead of going
// through struct reflection. Nil-valued fields are still dropped.
type Fielder interface {
	NormalFields() map[string]any
}

// Normalize recursively converts v into a plain JSON-compatible tree:
// nil, bool, number, string, []any, or map[string]any.
//
// Struct fields and Fielder entries holding nil pointers, interfaces,
// maps, or slices are dropped; explicit nil values inside plain maps and
// slices are preserved. Named scalar types (enum-style constants) reduce
// to their underlying value. Anything unrecognized falls back to its
// string representation, so Normalize never fails.
func Normalize(v any) any {
	if v == nil {
		return nil
	}

	switch t := v.(type) {
	case bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	case error:
		return t.Error()
	case Fielder:
		return normalizeFields(t.NormalFields())
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return Normalize(rv.Elem().Interface())

	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()

	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key()
			var name string
			if key.Kind() == reflect.String {
				name = key.String()
			} else {
				name = fmt.Sprint(key.Interface())
			}
			out[name] = normalizeElem(iter.Value())
		}
		return out

	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = normalizeElem(rv.Index(i))
		}
		return out

	case reflect.Struct:
		return normalizeStruct(rv)

	default:
		return fmt.Sprint(v)
	}
}

// normalizeElem normalizes a container element, preserving explicit nils.
func normalizeElem(rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return nil
		}
	}
	return Normalize(rv.Interface())
}

// normalizeStruct maps exported fields to normalized values, dropping
// absent (nil) fields. Field names come from json tags when present.
func normalizeStruct(rv reflect.Value) map[string]any {
	rt := rv.Type()
	out := make(map[string]any, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		ft := rt.Field(i)
		if !ft.IsExported() {
			continue
		}
		fv := rv.Field(i)
		if ft.Anonymous && fv.Kind() == reflect.Struct {
			for k, v := range normalizeStruct(fv) {
				out[k] = v
			}
			continue
		}
		name := jsonFieldName(ft)
		if name == "" {
			continue
		}
		switch fv.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
			if fv.IsNil() {
				continue
			}
		}
		out[name] = Normalize(fv.Interface())
	}
	return out
}

// normalizeFields applies the nil-dropping rule to a Fielder's mapping.
func normalizeFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if v == nil {
			continue
		}
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			continue
		}
		out[k] = Normalize(v)
	}
	return out
}

// jsonFieldName resolves the output name for a struct field, honoring
// json tags. Returns "" for fields tagged "-".
func jsonFieldName(ft reflect.StructField) string {
	tag := ft.Tag.Get("json")
	if tag == "" {
		return ft.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return ft.Name
	}
	return name
}
