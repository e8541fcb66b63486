// Package rowset turns raw processing-service responses into ordered tabular
// rows. Key order always follows the order keys appear in the JSON text.
package rowset

import (
	"bytes"
	"encoding/json"
)

// Row is a flat record with stable key order.
//
// Values are one of: nil, string, bool, json.Number (numbers keep their JSON
// text) or json.RawMessage (nested objects and arrays, compact JSON).
type Row struct {
	keys   []string
	values map[string]any
}

// NewRow returns an empty row with room for n keys.
func NewRow(n int) Row {
	return Row{keys: make([]string, 0, n), values: make(map[string]any, n)}
}

// Set stores v under key. Re-setting a key keeps its original position.
func (r *Row) Set(key string, v any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the value stored under key.
func (r Row) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns a copy of the row's keys in insertion order.
func (r Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of keys.
func (r Row) Len() int {
	return len(r.keys)
}

// MarshalJSON encodes the row as an object, preserving key order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RowSet is an ordered sequence of rows.
type RowSet []Row

// Keys returns the key set of the first row in insertion order. Later rows
// are never consulted, so keys that only appear after row 0 are dropped.
func (rs RowSet) Keys() []string {
	if len(rs) == 0 {
		return nil
	}
	return rs[0].Keys()
}
