// Package codec maps client call arguments to Nativ wire requests and wire
// responses to typed results. It performs no I/O.
//
// Responses are decoded into an Object and read field by field with a named
// default for every optional key, so a missing key never fails a decode.
// Only a payload that is not a JSON object is rejected.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Object is a decoded JSON object.
type Object map[string]any

// DecodeError is returned when a response body is not a JSON object.
// It is a transport-level failure and carries no status classification.
type DecodeError struct {
	Raw []byte
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed response body: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Parse decodes raw into an Object. Numbers are kept as json.Number so
// integer ids keep their exact textual form.
func Parse(raw []byte) (Object, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &DecodeError{Raw: raw, Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &DecodeError{Raw: raw, Err: fmt.Errorf("unexpected data after JSON value")}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &DecodeError{Raw: raw, Err: fmt.Errorf("expected JSON object, got %s", jsonKind(v))}
	}
	return Object(obj), nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Has reports whether key is present and not null.
func (o Object) Has(key string) bool {
	v, ok := o[key]
	return ok && v != nil
}

// Str returns the string at key, or def when absent or null.
// Numbers and booleans are rendered in their JSON text form.
func (o Object) Str(key, def string) string {
	if s, ok := o.scalarString(key); ok {
		return s
	}
	return def
}

// OptStr returns the string at key, or nil when absent or null.
func (o Object) OptStr(key string) *string {
	if s, ok := o.scalarString(key); ok {
		return &s
	}
	return nil
}

func (o Object) scalarString(key string) (string, bool) {
	switch v := o[key].(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// Int returns the integer at key, or def when absent, null or not a number.
// Fractional numbers are truncated.
func (o Object) Int(key string, def int) int {
	if n, ok := toInt(o[key]); ok {
		return n
	}
	return def
}

// OptInt returns the integer at key, or nil.
func (o Object) OptInt(key string) *int {
	if n, ok := toInt(o[key]); ok {
		return &n
	}
	return nil
}

// Float returns the number at key, or def.
func (o Object) Float(key string, def float64) float64 {
	if f, ok := toFloat(o[key]); ok {
		return f
	}
	return def
}

// OptFloat returns the number at key, or nil.
func (o Object) OptFloat(key string) *float64 {
	if f, ok := toFloat(o[key]); ok {
		return &f
	}
	return nil
}

// Bool returns the boolean at key, or def.
func (o Object) Bool(key string, def bool) bool {
	if b, ok := o[key].(bool); ok {
		return b
	}
	return def
}

// Obj returns the nested object at key, or nil.
func (o Object) Obj(key string) Object {
	if m, ok := o[key].(map[string]any); ok {
		return Object(m)
	}
	return nil
}

// List returns the objects in the array at key, in order. Non-object items
// are skipped. Absent keys yield an empty, non-nil slice.
func (o Object) List(key string) []Object {
	items, _ := o[key].([]any)
	out := make([]Object, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Object(m))
		}
	}
	return out
}

// Raw returns the object converted back to plain Go values, with
// json.Number replaced by int64 or float64. It is used for open-ended
// payloads returned to callers as-is.
func (o Object) Raw() map[string]any {
	if o == nil {
		return nil
	}
	out := make(map[string]any, len(o))
	for k, v := range o {
		out[k] = plain(v)
	}
	return out
}

func plain(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		return Object(t).Raw()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i), true
		}
		if f, err := t.Float64(); err == nil {
			return int(f), true
		}
	case float64:
		return int(t), true
	case int:
		return t, true
	case int64:
		return int(t), true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f, true
		}
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}
