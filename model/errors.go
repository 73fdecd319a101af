// SPDX-FileCopyrightText: Copyright 2024 Prasad Tengse
// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
)

var (
	_ error = Error("")
	_ error = (*CoercionError)(nil)
)

// Error is immutable error representation.
//
// Error strings themselves are NOT part of semver compatibility guarantees.
// Use exported symbols instead of directly using error strings.
type Error string

// Implements Error() interface.
func (e Error) Error() string {
	return string(e)
}

// Errors returned by fields and objects.
//
//   - [ErrCoercion] is wrapped by every [CoercionError].
//   - [ErrUnsupportedValue] is returned when a raw Go value has no [Value]
//     representation.
const (
	ErrCoercion         = Error("model: coercion failed")
	ErrUnsupportedValue = Error("model: unsupported value")
)

// CoercionError is returned when raw data cannot be converted into
// the canonical type of a field.
type CoercionError struct {
	// Schema is name of the schema declaring the field.
	Schema string

	// Field is name of the field.
	Field string

	// Value is the offending raw value.
	Value any

	// Err is the underlying parse error if any.
	Err error
}

func (e *CoercionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model(%s): cannot coerce %s=%#v: %s", e.Schema, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("model(%s): cannot coerce %s=%#v", e.Schema, e.Field, e.Value)
}

// Is reports whether target is [ErrCoercion].
func (e *CoercionError) Is(target error) bool {
	return target == ErrCoercion
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}
