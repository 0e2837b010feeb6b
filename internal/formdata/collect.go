// Package formdata serializes HTML form fields into a mapping that keeps
// repeated names, the way a POST body for the simulation endpoint needs them.
package formdata

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
)

// Field is one successful form control, in document order
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Value holds a single value or, once a name repeats, every value in
// encounter order.
type Value struct {
	values []string
}

// Scalar returns the value when the name appeared once
func (v Value) Scalar() (string, bool) {
	if len(v.values) != 1 {
		return "", false
	}
	return v.values[0], true
}

// Sequence returns the values when the name appeared more than once
func (v Value) Sequence() ([]string, bool) {
	if len(v.values) < 2 {
		return nil, false
	}
	return append([]string(nil), v.values...), true
}

// All returns every value regardless of shape
func (v Value) All() []string {
	return append([]string(nil), v.values...)
}

// MarshalJSON encodes a scalar as a string and a sequence as an array
func (v Value) MarshalJSON() ([]byte, error) {
	if s, ok := v.Scalar(); ok {
		return json.Marshal(s)
	}
	return json.Marshal(v.values)
}

// Map is the collected form. Keys keep first-occurrence order.
type Map struct {
	keys   []string
	values map[string]*Value
}

// Collect folds fields into a Map: the first value of a name is stored as a
// scalar, the second promotes it to a sequence and later ones are appended.
func Collect(fields []Field) *Map {
	m := &Map{values: make(map[string]*Value, len(fields))}
	for _, f := range fields {
		m.Add(f.Name, f.Value)
	}
	return m
}

// Add appends value under name
func (m *Map) Add(name, value string) {
	if m.values == nil {
		m.values = make(map[string]*Value)
	}

	current, ok := m.values[name]
	if !ok {
		m.keys = append(m.keys, name)
		m.values[name] = &Value{values: []string{value}}
		return
	}
	current.values = append(current.values, value)
}

// Get returns the value stored under name
func (m *Map) Get(name string) (Value, bool) {
	v, ok := m.values[name]
	if !ok {
		return Value{}, false
	}
	return *v, true
}

// Keys returns the names in first-occurrence order
func (m *Map) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of distinct names
func (m *Map) Len() int {
	return len(m.keys)
}

// Values converts the map to url.Values, one entry per value
func (m *Map) Values() url.Values {
	out := make(url.Values, len(m.keys))
	for _, k := range m.keys {
		out[k] = m.values[k].All()
	}
	return out
}

// Encode renders an application/x-www-form-urlencoded body. Repeated names
// become repeated keys, in key order then value order.
func (m *Map) Encode() string {
	var b strings.Builder
	for _, k := range m.keys {
		for _, v := range m.values[k].values {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}

// MarshalJSON encodes the map as an object in key order
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := m.values[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FieldsFromQuery splits an urlencoded body into fields, keeping the order
// url.ParseQuery would lose.
func FieldsFromQuery(raw string) ([]Field, error) {
	var fields []Field
	for raw != "" {
		var pair string
		pair, raw, _ = strings.Cut(raw, "&")
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		name, err := url.QueryUnescape(name)
		if err != nil {
			return nil, err
		}
		value, err = url.QueryUnescape(value)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Name: name, Value: value})
	}
	return fields, nil
}
