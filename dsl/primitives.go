package dsl

import "reflect"

// FieldType is the value type of a declared field.
type FieldType struct {
	typ      reflect.Type
	nullable bool
}

// Type returns the underlying Go type; nil for Any.
func (ft FieldType) Type() reflect.Type { return ft.typ }

// IsNullable reports whether nil is accepted.
func (ft FieldType) IsNullable() bool { return ft.nullable }

// TypeOf accepts values assignable to V. Pointer, map, slice and interface
// types are nullable.
func TypeOf[V any]() FieldType {
	t := reflect.TypeFor[V]()
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return FieldType{typ: t, nullable: true}
	}
	return FieldType{typ: t}
}

// String is the string type.
func String() FieldType { return TypeOf[string]() }

// Bool is the boolean type.
func Bool() FieldType { return TypeOf[bool]() }

// Int is the int type.
func Int() FieldType { return TypeOf[int]() }

// Int64 is the int64 type.
func Int64() FieldType { return TypeOf[int64]() }

// Float is the float64 type.
func Float() FieldType { return TypeOf[float64]() }

// Map is a nullable JSON object decoded as map[string]any.
func Map() FieldType { return TypeOf[map[string]any]() }

// Slice is a nullable JSON array decoded as []any.
func Slice() FieldType { return TypeOf[[]any]() }

// Number is the JSON number type (float64), the same as Float.
func Number() FieldType { return Float() }

// Any accepts every value, including nil.
func Any() FieldType { return FieldType{nullable: true} }

// Nullable widens ft to accept nil.
func Nullable(ft FieldType) FieldType {
	ft.nullable = true
	return ft
}
