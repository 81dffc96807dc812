package dsl

import (
	"sort"

	"github.com/reoring/autobuild"
)

type objectBuilder[T any] struct {
	name     string
	fields   []autobuild.Field
	index    map[string]int
	required map[string]struct{}
	opt      autobuild.BuildOpt
}

type fieldStep[T any] struct {
	b    *objectBuilder[T]
	name string
}

// Object creates a schema builder for records of type T. Fields are optional
// until marked Required.
func Object[T any](name string) *objectBuilder[T] {
	return &objectBuilder[T]{
		name:     name,
		index:    map[string]int{},
		required: map[string]struct{}{},
	}
}

// Field registers a field with its type. Registering a name twice replaces
// the earlier type but keeps its position.
func (b *objectBuilder[T]) Field(name string, ft FieldType) *fieldStep[T] {
	f := autobuild.Field{Name: name, Type: ft.typ, Nullable: ft.nullable}
	if i, ok := b.index[name]; ok {
		b.fields[i] = f
	} else {
		b.index[name] = len(b.fields)
		b.fields = append(b.fields, f)
	}
	return &fieldStep[T]{b: b, name: name}
}

// Required marks the field as required and returns the builder.
func (f *fieldStep[T]) Required() *objectBuilder[T] {
	f.b.required[f.name] = struct{}{}
	return f.b
}

// Optional marks the field as optional (default) and returns the builder.
func (f *fieldStep[T]) Optional() *objectBuilder[T] {
	delete(f.b.required, f.name)
	return f.b
}

func (f *fieldStep[T]) Field(name string, ft FieldType) *fieldStep[T] { return f.b.Field(name, ft) }
func (f *fieldStep[T]) Require(names ...string) *objectBuilder[T]     { return f.b.Require(names...) }
func (f *fieldStep[T]) Options(opt autobuild.BuildOpt) *objectBuilder[T] {
	return f.b.Options(opt)
}
func (f *fieldStep[T]) Build() (*autobuild.Schema[T], error) { return f.b.Build() }
func (f *fieldStep[T]) MustBuild() *autobuild.Schema[T]      { return f.b.MustBuild() }

// Require marks one or more fields as required. Names that are never
// registered with Field make Build fail.
func (b *objectBuilder[T]) Require(names ...string) *objectBuilder[T] {
	for _, n := range names {
		b.required[n] = struct{}{}
	}
	return b
}

// Options sets the default BuildOpt of the resulting schema.
func (b *objectBuilder[T]) Options(opt autobuild.BuildOpt) *objectBuilder[T] {
	b.opt = opt
	return b
}

// Build validates the builder and returns a Schema.
func (b *objectBuilder[T]) Build() (*autobuild.Schema[T], error) {
	var iss autobuild.Issues
	names := make([]string, 0, len(b.required))
	for n := range b.required {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if _, ok := b.index[n]; !ok {
			iss = autobuild.AppendIssues(iss, autobuild.Issue{
				Path:    "/" + n,
				Code:    autobuild.CodeUnknownKey,
				Message: "required field was never declared",
				Cause:   autobuild.ErrUnknownField,
				Params:  map[string]any{"key": n},
			})
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	fields := make([]autobuild.Field, len(b.fields))
	for i, f := range b.fields {
		_, f.Required = b.required[f.Name]
		fields[i] = f
	}
	return autobuild.NewSchema[T](b.name, fields, b.opt)
}

// MustBuild is like Build but panics on error.
func (b *objectBuilder[T]) MustBuild() *autobuild.Schema[T] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
