// SPDX-FileCopyrightText: Copyright 2024 Prasad Tengse
// SPDX-License-Identifier: MIT

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Schema is a static registry of fields for a model type.
//
// Schemas are built once, typically as package level variables and
// are read-only afterwards.
type Schema struct {
	name   string
	fields []Field
	index  map[string]Field
}

// NewSchema returns a new schema with fields in the order given.
//
// NewSchema panics if a field is nil, has an empty name or if field
// names are not unique, as these are programming errors.
func NewSchema(name string, fields ...Field) *Schema {
	s := &Schema{
		name:   name,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]Field, len(fields)),
	}
	for i, f := range fields {
		if f == nil {
			panic(fmt.Sprintf("model(%s): field at index %d is nil", name, i))
		}
		if f.Name() == "" {
			panic(fmt.Sprintf("model(%s): field at index %d has no name", name, i))
		}
		if _, dup := s.index[f.Name()]; dup {
			panic(fmt.Sprintf("model(%s): duplicate field %q", name, f.Name()))
		}
		s.fields = append(s.fields, f)
		s.index[f.Name()] = f
	}
	return s
}

// Name returns name of the schema.
func (s *Schema) Name() string {
	return s.name
}

// Fields returns fields in declaration order.
func (s *Schema) Fields() []Field {
	return slices.Clone(s.fields)
}

// Field looks up a field by name.
func (s *Schema) Field(name string) (Field, bool) {
	f, ok := s.index[name]
	return f, ok
}

// New returns an empty object. No fields are set.
func (s *Schema) New() *Object {
	return &Object{
		schema: s,
		values: make(map[string]any, len(s.fields)),
	}
}

// Build returns a new object with all keys of data assigned to it.
// Keys are assigned in lexical order. Keys which are not declared fields
// are stored as attributes.
func (s *Schema) Build(data map[string]any) (*Object, error) {
	obj := s.New()
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := obj.Set(k, data[k]); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// Decode builds a new object from a JSON object.
func (s *Schema) Decode(data []byte) (*Object, error) {
	m, err := decodeJSONObject(data)
	if err != nil {
		return nil, fmt.Errorf("model(%s): %w", s.name, err)
	}
	obj := s.New()
	if err := obj.SetData(m); err != nil {
		return nil, err
	}
	return obj, nil
}

// DecodeList builds objects from a JSON array of objects.
func (s *Schema) DecodeList(data []byte) ([]*Object, error) {
	var items []json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("model(%s): invalid json array: %w", s.name, err)
	}
	objs := make([]*Object, 0, len(items))
	for i := range items {
		obj, err := s.Decode(items[i])
		if err != nil {
			return nil, fmt.Errorf("model(%s): item %d: %w", s.name, i, err)
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

// decodeJSONObject decodes a JSON object keeping numbers as [json.Number],
// so that integers are not converted to float64.
func decodeJSONObject(data []byte) (map[string]any, error) {
	var m map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("invalid json object: %w", err)
	}
	return m, nil
}
