// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.19
//

package aerocalc

import (
	"fmt"
	"io"
	"math"
	"reflect"
	"strings"
)

// Field is one named output of a calculation
type Field struct {
	Name  string
	Value any
}

// Fields flattens a result struct (or pointer to it) into its exported fields in declaration order.
// Scalars that are not structs are returned as a single field named "Value".
func Fields(v any) []Field {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil
	}
	if rv.Kind() != reflect.Struct {
		return []Field{{Name: "Value", Value: rv.Interface()}}
	}
	rt := rv.Type()
	fs := make([]Field, 0, rv.NumField())
	for i := 0; i < rv.NumField(); i++ {
		if !rt.Field(i).IsExported() {
			continue
		}
		val := rv.Field(i).Interface()
		if s, ok := val.(fmt.Stringer); ok {
			val = s.String()
		}
		fs = append(fs, Field{Name: rt.Field(i).Name, Value: val})
	}
	return fs
}

// FieldMap returns the fields keyed by name with NaN and infinite values replaced by nil,
// so that the map can be encoded as JSON
func FieldMap(v any) map[string]any {
	m := map[string]any{}
	for _, f := range Fields(v) {
		if x, ok := f.Value.(float64); ok && (math.IsNaN(x) || math.IsInf(x, 0)) {
			m[f.Name] = nil
			continue
		}
		m[f.Name] = f.Value
	}
	return m
}

// PrintFields writes one "name : value" line per field.
// Slices are written one element per line as name[i].
func PrintFields(w io.Writer, v any) {
	for _, f := range Fields(v) {
		rv := reflect.ValueOf(f.Value)
		if rv.Kind() != reflect.Slice {
			printField(w, f.Name, f.Value)
			continue
		}
		for i := 0; i < rv.Len(); i++ {
			name := fmt.Sprintf("%s[%d]", f.Name, i)
			el := rv.Index(i)
			if reflect.Indirect(el).Kind() != reflect.Struct {
				printField(w, name, el.Interface())
				continue
			}
			sub := Fields(el.Interface())
			parts := make([]string, len(sub))
			for j, sf := range sub {
				parts[j] = fmt.Sprintf("%s=%s", sf.Name, formatValue(sf.Value))
			}
			fmt.Fprintf(w, "%-24s: %s\n", name, strings.Join(parts, " "))
		}
	}
}

func printField(w io.Writer, name string, v any) {
	fmt.Fprintf(w, "%-24s: %s\n", name, formatValue(v))
}

func formatValue(v any) string {
	if x, ok := v.(float64); ok {
		return fmt.Sprintf("%.10g", x)
	}
	return fmt.Sprint(v)
}
