// SPDX-FileCopyrightText: Copyright 2024 Prasad Tengse
// SPDX-License-Identifier: MIT

package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	_ slog.LogValuer   = (*Object)(nil)
	_ json.Marshaler   = (*Object)(nil)
	_ json.Unmarshaler = (*Object)(nil)
)

// Object is an instance of a [Schema].
//
// Values of declared fields are always stored in their canonical type.
// Object is not safe for concurrent use.
type Object struct {
	schema *Schema
	values map[string]any // canonical values of assigned fields
	attrs  map[string]any // non-schema attributes
}

// Schema returns schema of the object.
func (o *Object) Schema() *Schema {
	return o.schema
}

// Set assigns raw to the attribute name.
//
// If name is a declared field, raw is coerced into the canonical type of
// the field and a [CoercionError] is returned if that is not possible.
// Otherwise raw is stored as is and can be retrieved with [Object.Attr].
func (o *Object) Set(name string, raw any) error {
	f, ok := o.schema.index[name]
	if !ok {
		if o.attrs == nil {
			o.attrs = make(map[string]any)
		}
		o.attrs[name] = raw
		return nil
	}

	v, err := ValueOf(raw)
	if err != nil {
		return &CoercionError{Schema: o.schema.name, Field: name, Value: raw, Err: err}
	}

	canonical, err := f.Deserialize(v, o)
	if err != nil {
		var ce *CoercionError
		if errors.As(err, &ce) && ce.Schema == "" {
			ce.Schema = o.schema.name
		}
		return err
	}
	o.values[name] = canonical
	return nil
}

// SetData assigns declared fields present as keys in data, in declaration
// order. Fields absent from data are left untouched and keys which are not
// declared fields are ignored. The first error aborts the assignment,
// fields assigned before it retain their new values.
func (o *Object) SetData(data map[string]any) error {
	for _, f := range o.schema.fields {
		raw, ok := data[f.Name()]
		if !ok {
			continue
		}
		if err := o.Set(f.Name(), raw); err != nil {
			return err
		}
	}
	return nil
}

// Get returns canonical value of a declared field or value of an attribute.
func (o *Object) Get(name string) (any, bool) {
	if _, ok := o.schema.index[name]; ok {
		v, ok := o.values[name]
		return v, ok
	}
	v, ok := o.attrs[name]
	return v, ok
}

// IsSet reports whether the declared field name has been assigned.
func (o *Object) IsSet(name string) bool {
	_, ok := o.values[name]
	return ok
}

// Attr returns a non-schema attribute or nil.
func (o *Object) Attr(name string) any {
	return o.attrs[name]
}

// Char returns value of a char field or empty string.
func (o *Object) Char(name string) string {
	v, _ := o.values[name].(string)
	return v
}

// Bool returns value of a boolean field or false.
func (o *Object) Bool(name string) bool {
	v, _ := o.values[name].(bool)
	return v
}

// Int returns value of an integer field or 0.
func (o *Object) Int(name string) int64 {
	v, _ := o.values[name].(int64)
	return v
}

// Float returns value of a float field or 0.
func (o *Object) Float(name string) float64 {
	v, _ := o.values[name].(float64)
	return v
}

// Time returns value of a time field or zero time.
func (o *Object) Time(name string) time.Time {
	v, _ := o.values[name].(time.Time)
	return v
}

// Related returns value of a relation field or nil.
func (o *Object) Related(name string) *Object {
	v, _ := o.values[name].(*Object)
	return v
}

// ToMap returns serialized values of all assigned fields.
// Fields which were never assigned are omitted.
func (o *Object) ToMap() (map[string]any, error) {
	return o.toMap(false)
}

// WritableMap is like [Object.ToMap] but omits read-only fields.
// This is the payload sent for updates.
func (o *Object) WritableMap() (map[string]any, error) {
	return o.toMap(true)
}

func (o *Object) toMap(writable bool) (map[string]any, error) {
	m := make(map[string]any, len(o.values))
	for _, f := range o.schema.fields {
		if writable && f.ReadOnly() {
			continue
		}
		v, ok := o.values[f.Name()]
		if !ok {
			continue
		}
		s, err := f.Serialize(v)
		if err != nil {
			return nil, fmt.Errorf("model(%s): failed to serialize %s: %w", o.schema.name, f.Name(), err)
		}
		m[f.Name()] = s
	}
	return m, nil
}

// ToJSON returns JSON encoding of [Object.ToMap]. Keys are sorted.
func (o *Object) ToJSON() ([]byte, error) {
	m, err := o.ToMap()
	if err != nil {
		return nil, err
	}
	buf, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("model(%s): failed to encode json: %w", o.schema.name, err)
	}
	return buf, nil
}

// MarshalJSON implements [encoding/json.Marshaler].
func (o *Object) MarshalJSON() ([]byte, error) {
	return o.ToJSON()
}

// UnmarshalJSON implements [encoding/json.Unmarshaler]. Object must already
// be bound to a schema, use [Schema.New].
func (o *Object) UnmarshalJSON(data []byte) error {
	if o.schema == nil {
		return errors.New("model: cannot unmarshal into object without schema")
	}
	m, err := decodeJSONObject(data)
	if err != nil {
		return fmt.Errorf("model(%s): %w", o.schema.name, err)
	}
	return o.SetData(m)
}

// LogValue implements [log/slog.LogValuer].
func (o *Object) LogValue() slog.Value {
	if o == nil || o.schema == nil {
		return slog.Value{}
	}
	attrs := make([]slog.Attr, 0, len(o.values))
	for _, f := range o.schema.fields {
		if v, ok := o.values[f.Name()]; ok {
			attrs = append(attrs, slog.Any(f.Name(), v))
		}
	}
	return slog.GroupValue(attrs...)
}
