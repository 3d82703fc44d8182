package convert

import (
	"bytes"
	"encoding/json"
)

// Object is a JSON object that remembers header order.
//
// encoding/json sorts map keys alphabetically; emitting columns in header
// order instead keeps the output readable next to the input file. Key order
// is a readability concern only, never a correctness one. A duplicate header
// name keeps its first position and its last value.
type Object struct {
	keys   []string
	values map[string]interface{}
}

// Set inserts a key or overwrites the value of an existing one.
func (o *Object) Set(key string, value interface{}) {
	if o.values == nil {
		o.values = make(map[string]interface{})
	}
	if _, seen := o.values[key]; !seen {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (interface{}, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	return o.keys
}

// Len returns the number of distinct keys.
func (o *Object) Len() int {
	return len(o.keys)
}

// MarshalJSON emits the object with keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Translate converts one record into a JSON object using the given plan.
//
// Fields are looked up by header position: a record shorter than the header
// contributes empty strings for the missing tail, fields beyond the header
// are ignored. Translate performs no I/O and is safe to call concurrently
// with a shared plan.
func Translate(header []string, record []string, plan Plan) *Object {
	obj := &Object{
		keys:   make([]string, 0, len(header)),
		values: make(map[string]interface{}, len(header)),
	}
	for i, name := range header {
		var raw string
		if i < len(record) {
			raw = record[i]
		}
		obj.Set(name, plan.value(i, raw))
	}
	return obj
}
