// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Package form decodes url.Values into structs tagged with `form:"name"`.
package form

import (
	"encoding"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

var textUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()

// Unmarshal fills the tagged fields of target from input. Fields tagged "-"
// or without a tag are skipped, as are keys missing from input. Nested
// structs are addressed as "outer.inner".
func Unmarshal(input url.Values, target any) error {
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Pointer || val.IsNil() {
		return &InvalidUnmarshalError{Type: reflect.TypeOf(target)}
	}
	v := val.Elem()
	if v.Kind() != reflect.Struct {
		return &InvalidUnmarshalError{Type: reflect.TypeOf(target)}
	}
	return unmarshalStruct(input, "", v)
}

func unmarshalStruct(input url.Values, prefix string, v reflect.Value) error {
	ttype := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := ttype.Field(i)
		name := field.Tag.Get("form")
		if name == "" || name == "-" || !field.IsExported() {
			continue
		}
		name = prefix + name
		fieldVal := v.Field(i)

		if field.Type.Kind() == reflect.Struct && !reflect.PointerTo(field.Type).Implements(textUnmarshaler) {
			if err := unmarshalStruct(input, name+".", fieldVal); err != nil {
				return err
			}
			continue
		}

		values, exists := input[name]
		if !exists || len(values) == 0 {
			continue
		}
		if field.Type.Kind() == reflect.Slice && field.Type.Elem().Kind() != reflect.Uint8 {
			slice := reflect.MakeSlice(field.Type, len(values), len(values))
			for j, raw := range values {
				if err := setValue(slice.Index(j), raw); err != nil {
					return &FieldError{Field: name, Err: err}
				}
			}
			fieldVal.Set(slice)
			continue
		}
		// NOTE: Take only the first value.
		if err := setValue(fieldVal, values[0]); err != nil {
			return &FieldError{Field: name, Err: err}
		}
	}
	return nil
}

func setValue(v reflect.Value, raw string) error {
	if v.CanAddr() {
		if u, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
			if raw == "" {
				return nil
			}
			return u.UnmarshalText([]byte(raw))
		}
	}
	switch v.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Bool:
		v.SetBool(strings.ToLower(raw) == "true" || raw == "on")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if raw == "" {
			return nil
		}
		n, err := strconv.ParseInt(raw, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Float32, reflect.Float64:
		if raw == "" {
			return nil
		}
		f, err := strconv.ParseFloat(raw, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	default:
		return fmt.Errorf("unsupported kind %s", v.Kind())
	}
	return nil
}

type InvalidUnmarshalError struct {
	Type reflect.Type
}

func (e *InvalidUnmarshalError) Error() string {
	if e.Type == nil {
		return "form: Unmarshal(nil)"
	}
	if e.Type.Kind() != reflect.Pointer {
		return "form: Unmarshal(non-pointer " + e.Type.String() + ")"
	}
	if e.Type.Elem().Kind() != reflect.Struct {
		return "form: Unmarshal(non-struct " + e.Type.String() + ")"
	}
	return "form: Unmarshal(nil " + e.Type.String() + ")"
}

// FieldError reports a value that could not be decoded into its field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return "form: field " + e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error { return e.Err }
