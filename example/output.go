// SPDX-FileCopyrightText: Copyright 2024 Prasad Tengse
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// mapper is implemented by models.
type mapper interface {
	ToMap() (map[string]any, error)
}

// render converts models to plain maps so that both encoders produce
// the same document.
func render(v any) (any, error) {
	switch t := v.(type) {
	case mapper:
		return t.ToMap()
	case []mapper:
		items := make([]map[string]any, 0, len(t))
		for _, item := range t {
			m, err := item.ToMap()
			if err != nil {
				return nil, err
			}
			items = append(items, m)
		}
		return items, nil
	default:
		return v, nil
	}
}

// write encodes v to w in the given format.
func write(w io.Writer, format string, v any) error {
	doc, err := render(v)
	if err != nil {
		return err
	}

	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}
}

// mappers converts a slice of models to []mapper.
func mappers[T mapper](items []T) []mapper {
	out := make([]mapper, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
