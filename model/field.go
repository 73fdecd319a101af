// SPDX-FileCopyrightText: Copyright 2024 Prasad Tengse
// SPDX-License-Identifier: MIT

package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	_ Field = (*charField)(nil)
	_ Field = (*booleanField)(nil)
	_ Field = (*integerField)(nil)
	_ Field = (*floatField)(nil)
	_ Field = (*timeField)(nil)
	_ Field = (*relationField)(nil)
)

// FieldKind identifies the canonical type of a [Field].
type FieldKind uint8

const (
	FieldChar FieldKind = iota + 1
	FieldBoolean
	FieldInteger
	FieldFloat
	FieldTime
	FieldRelation
)

func (k FieldKind) String() string {
	switch k {
	case FieldChar:
		return "char"
	case FieldBoolean:
		return "boolean"
	case FieldInteger:
		return "integer"
	case FieldFloat:
		return "float"
	case FieldTime:
		return "time"
	case FieldRelation:
		return "relation"
	default:
		return "FieldKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Field is a typed descriptor for a single model attribute.
//
// Fields are immutable once declared and hold no per instance data.
// Raw data is handed to Deserialize on every assignment.
type Field interface {
	// Name is the attribute name, which is also the JSON key.
	Name() string

	// Kind of the canonical value.
	Kind() FieldKind

	// ReadOnly fields are excluded from [Object.WritableMap].
	ReadOnly() bool

	// Default is the canonical value of an unset or null field.
	Default() any

	// Deserialize coerces raw data into the canonical value. owner is
	// the object being assigned to, and may be nil.
	Deserialize(raw Value, owner *Object) (any, error)

	// Serialize converts a canonical value into a form which can be
	// encoded as JSON.
	Serialize(v any) (any, error)
}

// FieldOption configures a field.
type FieldOption interface {
	apply(f *fieldBase)
}

type funcFieldOption struct {
	f func(*fieldBase)
}

func (opt *funcFieldOption) apply(f *fieldBase) {
	opt.f(f)
}

// ReadOnly marks the field as server owned.
func ReadOnly() FieldOption {
	return &funcFieldOption{
		f: func(f *fieldBase) {
			f.readOnly = true
		},
	}
}

// Writable clears read-only flag. Relation fields are read-only unless
// this is specified.
func Writable() FieldOption {
	return &funcFieldOption{
		f: func(f *fieldBase) {
			f.readOnly = false
		},
	}
}

// BackRef configures name of the attribute on a related object which is set
// to the object owning the relation. This is ignored by non relation fields.
func BackRef(name string) FieldOption {
	return &funcFieldOption{
		f: func(f *fieldBase) {
			f.backRef = name
		},
	}
}

type fieldBase struct {
	name     string
	readOnly bool
	backRef  string
}

func newFieldBase(name string, readOnly bool, opts []FieldOption) fieldBase {
	b := fieldBase{name: name, readOnly: readOnly}
	for i := range opts {
		if opts[i] != nil {
			opts[i].apply(&b)
		}
	}
	return b
}

func (f *fieldBase) Name() string {
	return f.name
}

func (f *fieldBase) ReadOnly() bool {
	return f.readOnly
}

// coercionError builds a [CoercionError] without schema name.
// Schema name is filled in by the object.
func (f *fieldBase) coercionError(raw Value, err error) error {
	return &CoercionError{Field: f.name, Value: raw.Interface(), Err: err}
}

// Char declares a string field. Default value is an empty string.
func Char(name string, opts ...FieldOption) Field {
	return &charField{fieldBase: newFieldBase(name, false, opts)}
}

type charField struct {
	fieldBase
}

func (f *charField) Kind() FieldKind { return FieldChar }
func (f *charField) Default() any    { return "" }

func (f *charField) Deserialize(raw Value, _ *Object) (any, error) {
	switch raw.Kind() {
	case KindNull:
		return "", nil
	case KindString:
		return raw.s, nil
	case KindInt:
		return strconv.FormatInt(raw.i, 10), nil
	case KindFloat:
		return strconv.FormatFloat(raw.f, 'g', -1, 64), nil
	case KindBool:
		return strconv.FormatBool(raw.b), nil
	case KindMap:
		buf, err := json.Marshal(raw.m)
		if err != nil {
			return nil, f.coercionError(raw, err)
		}
		return string(buf), nil
	default:
		return nil, f.coercionError(raw, fmt.Errorf("%s is not a string", raw.Kind()))
	}
}

func (f *charField) Serialize(v any) (any, error) {
	return v, nil
}

// Boolean declares a boolean field. Default value is false.
//
// Strings are true only if they are "true" ignoring case and surrounding
// whitespace. Numbers are true if they are positive (integers) or
// non-zero (floats).
func Boolean(name string, opts ...FieldOption) Field {
	return &booleanField{fieldBase: newFieldBase(name, false, opts)}
}

type booleanField struct {
	fieldBase
}

func (f *booleanField) Kind() FieldKind { return FieldBoolean }
func (f *booleanField) Default() any    { return false }

func (f *booleanField) Deserialize(raw Value, _ *Object) (any, error) {
	switch raw.Kind() {
	case KindString:
		return strings.ToLower(strings.TrimSpace(raw.s)) == "true", nil
	case KindInt:
		return raw.i > 0, nil
	case KindFloat:
		return raw.f != 0, nil
	case KindBool:
		return raw.b, nil
	case KindMap:
		return len(raw.m) > 0, nil
	case KindObject:
		return true, nil
	default:
		return false, nil
	}
}

func (f *booleanField) Serialize(v any) (any, error) {
	return v, nil
}

// Integer declares an int64 field. Default value is 0.
func Integer(name string, opts ...FieldOption) Field {
	return &integerField{fieldBase: newFieldBase(name, false, opts)}
}

type integerField struct {
	fieldBase
}

func (f *integerField) Kind() FieldKind { return FieldInteger }
func (f *integerField) Default() any    { return int64(0) }

func (f *integerField) Deserialize(raw Value, _ *Object) (any, error) {
	switch raw.Kind() {
	case KindNull:
		return int64(0), nil
	case KindInt:
		return raw.i, nil
	case KindFloat:
		// Truncates towards zero.
		if math.IsNaN(raw.f) || raw.f >= math.MaxInt64 || raw.f < math.MinInt64 {
			return nil, f.coercionError(raw, errors.New("float out of integer range"))
		}
		return int64(raw.f), nil
	case KindBool:
		if raw.b {
			return int64(1), nil
		}
		return int64(0), nil
	case KindString:
		i, err := strconv.ParseInt(strings.TrimSpace(raw.s), 10, 64)
		if err != nil {
			return nil, f.coercionError(raw, err)
		}
		return i, nil
	default:
		return nil, f.coercionError(raw, fmt.Errorf("%s is not a number", raw.Kind()))
	}
}

func (f *integerField) Serialize(v any) (any, error) {
	return v, nil
}

// Float declares a float64 field. Default value is 0.
func Float(name string, opts ...FieldOption) Field {
	return &floatField{fieldBase: newFieldBase(name, false, opts)}
}

type floatField struct {
	fieldBase
}

func (f *floatField) Kind() FieldKind { return FieldFloat }
func (f *floatField) Default() any    { return float64(0) }

func (f *floatField) Deserialize(raw Value, _ *Object) (any, error) {
	switch raw.Kind() {
	case KindNull:
		return float64(0), nil
	case KindInt:
		return float64(raw.i), nil
	case KindFloat:
		return raw.f, nil
	case KindBool:
		if raw.b {
			return float64(1), nil
		}
		return float64(0), nil
	case KindString:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw.s), 64)
		if err != nil {
			return nil, f.coercionError(raw, err)
		}
		return v, nil
	default:
		return nil, f.coercionError(raw, fmt.Errorf("%s is not a number", raw.Kind()))
	}
}

func (f *floatField) Serialize(v any) (any, error) {
	return v, nil
}

// unixMilliThreshold is the smallest integer treated as unix milliseconds.
// As unix seconds, it is in year 33658.
const unixMilliThreshold = 1_000_000_000_000

// Time declares a [time.Time] field. Default value is zero time.
//
// Strings are parsed as RFC 3339. Integers are unix seconds or
// unix milliseconds. Values are serialized as RFC 3339 in UTC and zero
// time is serialized as null.
func Time(name string, opts ...FieldOption) Field {
	return &timeField{fieldBase: newFieldBase(name, false, opts)}
}

type timeField struct {
	fieldBase
}

func (f *timeField) Kind() FieldKind { return FieldTime }
func (f *timeField) Default() any    { return time.Time{} }

func (f *timeField) Deserialize(raw Value, _ *Object) (any, error) {
	switch raw.Kind() {
	case KindNull:
		return time.Time{}, nil
	case KindString:
		s := strings.TrimSpace(raw.s)
		if s == "" {
			return time.Time{}, nil
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, f.coercionError(raw, err)
		}
		return t.UTC(), nil
	case KindInt:
		if raw.i >= unixMilliThreshold || raw.i <= -unixMilliThreshold {
			return time.UnixMilli(raw.i).UTC(), nil
		}
		return time.Unix(raw.i, 0).UTC(), nil
	case KindFloat:
		if math.IsNaN(raw.f) || math.IsInf(raw.f, 0) {
			return nil, f.coercionError(raw, errors.New("invalid unix time"))
		}
		sec, frac := math.Modf(raw.f)
		return time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC(), nil
	default:
		return nil, f.coercionError(raw, fmt.Errorf("%s is not a timestamp", raw.Kind()))
	}
}

func (f *timeField) Serialize(v any) (any, error) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a time.Time: %T", ErrCoercion, f.name, v)
	}
	if t.IsZero() {
		return nil, nil
	}
	return t.UTC().Format(time.RFC3339Nano), nil
}

// Relation declares a field holding an [Object] of the target schema.
//
// Relation fields are read-only unless [Writable] is specified. If [BackRef]
// is specified, the named attribute of the related object is set to the
// object owning the relation every time the field is assigned.
func Relation(name string, target *Schema, opts ...FieldOption) Field {
	if target == nil {
		panic(fmt.Sprintf("model: relation %q has nil target schema", name))
	}
	return &relationField{
		fieldBase: newFieldBase(name, true, opts),
		target:    target,
	}
}

type relationField struct {
	fieldBase
	target *Schema
}

func (f *relationField) Kind() FieldKind { return FieldRelation }
func (f *relationField) Default() any    { return (*Object)(nil) }

// Target returns schema of the related object.
func (f *relationField) Target() *Schema {
	return f.target
}

func (f *relationField) Deserialize(raw Value, owner *Object) (any, error) {
	var obj *Object
	switch raw.Kind() {
	case KindObject:
		if raw.o.schema != f.target {
			return nil, f.coercionError(raw,
				fmt.Errorf("object schema %s does not match %s", raw.o.schema.name, f.target.name))
		}
		obj = raw.o
	case KindNull:
		obj = f.target.New()
	case KindMap:
		obj = f.target.New()
		if err := obj.SetData(raw.m); err != nil {
			return nil, f.coercionError(raw, err)
		}
	default:
		return nil, f.coercionError(raw, fmt.Errorf("%s is not a mapping", raw.Kind()))
	}

	if f.backRef != "" {
		if err := obj.Set(f.backRef, owner); err != nil {
			return nil, f.coercionError(raw, err)
		}
	}
	return obj, nil
}

func (f *relationField) Serialize(v any) (any, error) {
	obj, ok := v.(*Object)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an object: %T", ErrCoercion, f.name, v)
	}
	if obj == nil {
		return nil, nil
	}
	m, err := obj.ToMap()
	if err != nil {
		return nil, err
	}
	return m, nil
}
