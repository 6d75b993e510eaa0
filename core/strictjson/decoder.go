package strictjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"manifest-validator/core/keypath"
)

// Decode parses data and hands the root object to fn. Structural errors abort and are
// returned as *StructuralError. If fn succeeds but keys were left unconsumed anywhere,
// the fully decoded value is returned together with an *UnconsumedError.
func Decode[T any](data []byte, fn func(*Object) (T, error)) (T, error) {
	var zero T

	raw, err := Parse(data)
	if err != nil {
		return zero, err
	}

	collector := NewCollector()
	root, err := asObject(raw, keypath.Root(), collector)
	if err != nil {
		return zero, err
	}

	out, err := fn(root)
	if err != nil {
		return zero, err
	}
	return out, collector.Err()
}

// Parse decodes a single JSON value, keeping numbers as json.Number.
func Parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &StructuralError{Path: keypath.Root(), Expected: "JSON document", Cause: CauseCorrupted, Detail: err.Error()}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &StructuralError{Path: keypath.Root(), Expected: "end of input", Cause: CauseCorrupted, Detail: "trailing data after document"}
	}
	return v, nil
}

// Object is a JSON object being decoded. Each accessor marks its key consumed;
// Finish records whatever remains.
type Object struct {
	path      keypath.KeyPath
	fields    map[string]any
	consumed  map[string]struct{}
	collector *Collector
}

func asObject(v any, path keypath.KeyPath, c *Collector) (*Object, error) {
	if v == nil {
		return nil, nullValue(path, "object")
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, mismatch(path, "object", v)
	}
	return &Object{path: path, fields: m, consumed: make(map[string]struct{}, len(m)), collector: c}, nil
}

// Path returns the location of the object.
func (o *Object) Path() keypath.KeyPath {
	return o.path
}

// Finish records every key that no accessor claimed.
func (o *Object) Finish() {
	var extra []string
	for k := range o.fields {
		if _, ok := o.consumed[k]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	o.collector.Record(o.path, extra...)
}

// lookup claims key and reports whether it is present and non-null.
func (o *Object) lookup(key string) (any, bool) {
	o.consumed[key] = struct{}{}
	v, ok := o.fields[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (o *Object) required(key, expected string) (any, error) {
	o.consumed[key] = struct{}{}
	v, ok := o.fields[key]
	if !ok {
		return nil, &StructuralError{Path: o.path.Key(key), Expected: expected, Cause: CauseMissingKey}
	}
	if v == nil {
		return nil, nullValue(o.path.Key(key), expected)
	}
	return v, nil
}

// String decodes a required string.
func (o *Object) String(key string) (string, error) {
	v, err := o.required(key, "string")
	if err != nil {
		return "", err
	}
	return asString(v, o.path.Key(key))
}

// OptionalString decodes a string that may be absent or null.
func (o *Object) OptionalString(key string) (*string, error) {
	v, ok := o.lookup(key)
	if !ok {
		return nil, nil
	}
	s, err := asString(v, o.path.Key(key))
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// OptionalBool decodes a bool that may be absent or null.
func (o *Object) OptionalBool(key string) (*bool, error) {
	v, ok := o.lookup(key)
	if !ok {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, mismatch(o.path.Key(key), "bool", v)
	}
	return &b, nil
}

// OptionalInt decodes an integer that may be absent or null.
func (o *Object) OptionalInt(key string) (*int, error) {
	v, ok := o.lookup(key)
	if !ok {
		return nil, nil
	}
	n, err := asInt(v, o.path.Key(key))
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Strings decodes a required array of strings.
func (o *Object) Strings(key string) ([]string, error) {
	v, err := o.required(key, "array of string")
	if err != nil {
		return nil, err
	}
	return asStrings(v, o.path.Key(key))
}

// OptionalStrings decodes an array of strings that may be absent or null.
func (o *Object) OptionalStrings(key string) ([]string, error) {
	v, ok := o.lookup(key)
	if !ok {
		return nil, nil
	}
	return asStrings(v, o.path.Key(key))
}

// Object decodes a required nested object.
func (o *Object) Object(key string) (*Object, error) {
	v, err := o.required(key, "object")
	if err != nil {
		return nil, err
	}
	return asObject(v, o.path.Key(key), o.collector)
}

// OptionalObject decodes a nested object that may be absent or null; nil means absent.
func (o *Object) OptionalObject(key string) (*Object, error) {
	v, ok := o.lookup(key)
	if !ok {
		return nil, nil
	}
	return asObject(v, o.path.Key(key), o.collector)
}

// Objects decodes a required array of objects, calling fn for each element in order.
func Objects[T any](o *Object, key string, fn func(*Object) (T, error)) ([]T, error) {
	v, err := o.required(key, "array of object")
	if err != nil {
		return nil, err
	}
	return eachObject(v, o.path.Key(key), o.collector, fn)
}

// OptionalObjects is Objects for an array that may be absent or null. An absent array
// yields nil; an empty array yields a non-nil empty slice.
func OptionalObjects[T any](o *Object, key string, fn func(*Object) (T, error)) ([]T, error) {
	v, ok := o.lookup(key)
	if !ok {
		return nil, nil
	}
	return eachObject(v, o.path.Key(key), o.collector, fn)
}

func eachObject[T any](v any, path keypath.KeyPath, c *Collector, fn func(*Object) (T, error)) ([]T, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, mismatch(path, "array of object", v)
	}
	out := make([]T, 0, len(arr))
	for i, elem := range arr {
		obj, err := asObject(elem, path.Index(i), c)
		if err != nil {
			return nil, err
		}
		item, err := fn(obj)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func asString(v any, path keypath.KeyPath) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", mismatch(path, "string", v)
	}
	return s, nil
}

func asInt(v any, path keypath.KeyPath) (int, error) {
	num, ok := v.(json.Number)
	if !ok {
		return 0, mismatch(path, "integer", v)
	}
	n, err := num.Int64()
	if err != nil {
		return 0, &StructuralError{Path: path, Expected: "integer", Cause: CauseTypeMismatch, Detail: "found number " + num.String()}
	}
	return int(n), nil
}

func asStrings(v any, path keypath.KeyPath) ([]string, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, mismatch(path, "array of string", v)
	}
	out := make([]string, 0, len(arr))
	for i, elem := range arr {
		if elem == nil {
			return nil, nullValue(path.Index(i), "string")
		}
		s, err := asString(elem, path.Index(i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func nullValue(path keypath.KeyPath, expected string) *StructuralError {
	return &StructuralError{Path: path, Expected: expected, Cause: CauseNullValue}
}

func mismatch(path keypath.KeyPath, expected string, found any) *StructuralError {
	return &StructuralError{Path: path, Expected: expected, Cause: CauseTypeMismatch, Detail: "found " + typeName(found)}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
