package autobuild

import (
	"fmt"
	"reflect"

	js "github.com/reoring/autobuild/jsonschema"
)

// Field describes one field of a target record.
type Field struct {
	Name string
	// Type is the value type accepted by With. A nil Type accepts any value.
	Type     reflect.Type
	Required bool
	// Nullable allows nil as a supplied value.
	Nullable bool
}

// check validates a value supplied for f. It returns nil when v is acceptable.
func (f Field) check(v any) *Issue {
	switch {
	case v == nil:
		if f.Type == nil || f.Nullable {
			return nil
		}
	case IsAbsent(v):
		if f.Type == nil || f.Nullable || !f.Required {
			return nil
		}
	case f.Type == nil:
		return nil
	case reflect.TypeOf(v).AssignableTo(f.Type):
		return nil
	}
	expected := "any"
	if f.Type != nil {
		expected = f.Type.String()
	}
	got := "nil"
	if IsAbsent(v) {
		got = "absent"
	} else if v != nil {
		got = reflect.TypeOf(v).String()
	}
	it := issueFor(f.Name, CodeInvalidType, ErrInvalidValue, map[string]any{"expected": expected, "got": got})
	return &it
}

// Schema describes the fields of target record type T: their names, value
// types and which of them are required. It is immutable once constructed and
// safe for concurrent use.
type Schema[T any] struct {
	name   string
	fields []Field
	index  map[string]int
	opt    BuildOpt
}

// NewSchema validates fields and returns a Schema for T. Field names must be
// non-empty and unique; every violation is reported in the returned Issues.
// opt sets the default BuildOpt used by Plan.
func NewSchema[T any](name string, fields []Field, opt ...BuildOpt) (*Schema[T], error) {
	var iss Issues
	index := make(map[string]int, len(fields))
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			it := issueFor("", CodeParseError, ErrInvalidSchema, nil)
			it.Hint = "empty field name"
			iss = AppendIssues(iss, it)
			continue
		}
		if _, dup := index[f.Name]; dup {
			it := issueFor(f.Name, CodeDuplicateKey, ErrInvalidSchema, nil)
			iss = AppendIssues(iss, it)
			continue
		}
		index[f.Name] = len(out)
		out = append(out, f)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return &Schema[T]{name: name, fields: out, index: index, opt: lastOpt(opt)}, nil
}

// MustNewSchema is like NewSchema but panics on error.
func MustNewSchema[T any](name string, fields []Field, opt ...BuildOpt) *Schema[T] {
	s, err := NewSchema[T](name, fields, opt...)
	if err != nil {
		panic(err)
	}
	return s
}

// Declare derives the Schema of struct type T by reflection. Keys follow
// ResolveStructKey. A field is optional when its json tag carries omitempty or
// omitzero, or its autobuild tag carries "optional"; pointer, map, slice and
// interface fields are nullable.
func Declare[T any](opt ...BuildOpt) (*Schema[T], error) {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return nil, Issues{{
			Path:    "/",
			Code:    CodeInvalidType,
			Message: fmt.Sprintf("Declare requires a struct type, got %s", rt),
			Cause:   ErrInvalidSchema,
		}}
	}
	fields := make([]Field, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := ResolveStructKey(sf)
		if key == "-" {
			continue
		}
		fields = append(fields, Field{
			Name:     key,
			Type:     sf.Type,
			Required: resolveStructRequired(sf),
			Nullable: nullableKind(sf.Type),
		})
	}
	return NewSchema[T](rt.Name(), fields, opt...)
}

// MustDeclare is like Declare but panics on error.
func MustDeclare[T any](opt ...BuildOpt) *Schema[T] {
	s, err := Declare[T](opt...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the schema name.
func (s *Schema[T]) Name() string { return s.name }

// Fields returns a copy of the fields in declaration order.
func (s *Schema[T]) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks up a field by name.
func (s *Schema[T]) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Names returns all field names in declaration order.
func (s *Schema[T]) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// RequiredNames returns the names of required fields in declaration order.
func (s *Schema[T]) RequiredNames() []string {
	var out []string
	for _, f := range s.fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// JSONSchema projects the schema into a JSON Schema object.
func (s *Schema[T]) JSONSchema() *js.Schema {
	return s.project(s.Names(), s.RequiredNames(), nil)
}

func (s *Schema[T]) project(names, required []string, additional any) *js.Schema {
	props := make(map[string]*js.Schema, len(names))
	for _, n := range names {
		f := s.fields[s.index[n]]
		props[n] = js.TypeOf(jsonTypeName(f.Type), f.Nullable)
	}
	return &js.Schema{
		Schema:               js.Draft,
		Title:                s.name,
		Type:                 "object",
		Properties:           props,
		Required:             required,
		AdditionalProperties: additional,
	}
}
