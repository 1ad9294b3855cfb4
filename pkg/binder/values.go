package binder

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Form binds application/x-www-form-urlencoded fields tagged `form:"name"`.
func Form() Func {
	return func(r *http.Request, v any) error {
		if mt := mediaType(r); mt != "application/x-www-form-urlencoded" {
			return fmt.Errorf("%w: got %q, expected application/x-www-form-urlencoded", ErrUnsupportedMediaType, mt)
		}
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		return bindValues(v, "form", r.PostForm, ErrFailedToParseForm)
	}
}

// Query binds URL query parameters tagged `query:"name"`.
func Query() Func {
	return func(r *http.Request, v any) error {
		return bindValues(v, "query", r.URL.Query(), ErrFailedToParseQuery)
	}
}

// Path binds chi URL parameters tagged `path:"name"`.
func Path() Func {
	return PathWith(chi.URLParam)
}

// PathWith binds path parameters looked up with param, for routers other than chi.
func PathWith(param func(r *http.Request, name string) string) Func {
	return func(r *http.Request, v any) error {
		rt, err := structType(v, ErrFailedToParsePath)
		if err != nil {
			return err
		}
		values := make(map[string][]string)
		for i := range rt.NumField() {
			name, ok := tagName(rt.Field(i), "path")
			if !ok {
				continue
			}
			if val := param(r, name); val != "" {
				values[name] = []string{val}
			}
		}
		return bindValues(v, "path", values, ErrFailedToParsePath)
	}
}

func structType(v any, bindErr error) (reflect.Type, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: target must be a non-nil pointer to struct", bindErr)
	}
	return rv.Elem().Type(), nil
}

// tagName returns the parameter name of a field for tag. Fields without the
// tag, unexported fields and fields tagged "-" are skipped.
func tagName(f reflect.StructField, tag string) (string, bool) {
	if !f.IsExported() {
		return "", false
	}
	name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
	if name == "" || name == "-" {
		return "", false
	}
	return name, true
}

func bindValues(v any, tag string, values map[string][]string, bindErr error) error {
	rt, err := structType(v, bindErr)
	if err != nil {
		return err
	}
	rv := reflect.ValueOf(v).Elem()
	for i := range rt.NumField() {
		name, ok := tagName(rt.Field(i), tag)
		if !ok {
			continue
		}
		vals := values[name]
		if len(vals) == 0 {
			continue
		}
		if err := setField(rv.Field(i), vals); err != nil {
			return fmt.Errorf("%w: %s: %v", bindErr, name, err)
		}
	}
	return nil
}

func setField(field reflect.Value, values []string) error {
	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return setField(field.Elem(), values)
	}
	if field.Kind() == reflect.Slice {
		slice := reflect.MakeSlice(field.Type(), 0, len(values))
		for _, raw := range values {
			for _, part := range strings.Split(raw, ",") {
				elem := reflect.New(field.Type().Elem()).Elem()
				if err := setField(elem, []string{strings.TrimSpace(part)}); err != nil {
					return err
				}
				slice = reflect.Append(slice, elem)
			}
		}
		field.Set(slice)
		return nil
	}

	value := values[0]
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if strings.TrimSpace(value) == "" {
			return nil
		}
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(strings.TrimSpace(value), 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer %q", value)
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(strings.TrimSpace(value), field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid number %q", value)
		}
		field.SetFloat(n)
	case reflect.Bool:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "1", "t", "true", "on", "yes":
			field.SetBool(true)
		case "", "0", "f", "false", "off", "no":
			field.SetBool(false)
		default:
			return fmt.Errorf("invalid boolean %q", value)
		}
	default:
		return fmt.Errorf("unsupported type %s", field.Type())
	}
	return nil
}
