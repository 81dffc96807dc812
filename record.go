package autobuild

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Record is the finalized value: exactly the planned keys with exactly the
// values supplied, including nil and Absent. It has no builder operations.
type Record[T any] struct {
	schema  *Schema[T]
	plan    Plan
	entries map[string]entry
}

func (r *Record[T]) outcome() *Schema[T] { return r.schema }

// Keys returns the record keys in plan order.
func (r *Record[T]) Keys() []string { return r.plan.Keys() }

// Len returns the number of keys.
func (r *Record[T]) Len() int { return len(r.entries) }

// Get returns the value recorded for key.
func (r *Record[T]) Get(key string) (any, bool) {
	e, ok := r.entries[key]
	return e.value, ok
}

// Map returns a copy of the record. Absent values are kept as Absent.
func (r *Record[T]) Map() map[string]any {
	out := make(map[string]any, len(r.entries))
	for k, e := range r.entries {
		out[k] = e.value
	}
	return out
}

// Presence returns the presence flags of every key, keyed by JSON Pointer.
func (r *Record[T]) Presence() PresenceMap {
	pm := make(PresenceMap, len(r.entries))
	for k, e := range r.entries {
		pm[pointer(k)] = e.presence
	}
	return pm
}

// Equal compares two records field for field.
func (r *Record[T]) Equal(o *Record[T]) bool {
	if r == nil || o == nil {
		return r == o
	}
	if len(r.entries) != len(o.entries) {
		return false
	}
	for k, e := range r.entries {
		oe, ok := o.entries[k]
		if !ok || !reflect.DeepEqual(e.value, oe.value) {
			return false
		}
	}
	return true
}

func (r *Record[T]) String() string {
	b := &strings.Builder{}
	b.WriteString("{")
	for i, k := range r.plan.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%s: %v", k, r.entries[k].value)
	}
	b.WriteString("}")
	return b.String()
}

// Value materializes the record as T. Struct targets are filled by key
// (ResolveStructKey), map targets get one entry per key. Absent values are
// skipped and nil leaves the zero value. Values not directly assignable are
// converted with mapstructure.
func (r *Record[T]) Value() (T, error) {
	var out T
	rv := reflect.ValueOf(&out).Elem()
	switch {
	case rv.Kind() == reflect.Struct:
		idx := structKeyIndex(rv.Type())
		for _, k := range r.plan.keys {
			v := r.entries[k].value
			i, ok := idx[k]
			if !ok || v == nil || IsAbsent(v) {
				continue
			}
			if err := assign(rv.Field(i), v); err != nil {
				return out, fmt.Errorf("autobuild: field %q: %w", k, err)
			}
		}
	case rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String:
		m := reflect.MakeMapWithSize(rv.Type(), len(r.entries))
		et := rv.Type().Elem()
		for _, k := range r.plan.keys {
			v := r.entries[k].value
			if IsAbsent(v) {
				continue
			}
			ev := reflect.New(et).Elem()
			if v != nil {
				if err := assign(ev, v); err != nil {
					return out, fmt.Errorf("autobuild: field %q: %w", k, err)
				}
			}
			m.SetMapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()), ev)
		}
		rv.Set(m)
	default:
		if err := r.Decode(&out); err != nil {
			return out, err
		}
	}
	return out, nil
}

// MustValue is like Value but panics on error.
func (r *Record[T]) MustValue() T {
	v, err := r.Value()
	if err != nil {
		panic(err)
	}
	return v
}

// Decode copies the record into out (a pointer) with mapstructure, matching
// json tags and weakly converting scalar types. Absent values are skipped.
func (r *Record[T]) Decode(out any) error {
	in := make(map[string]any, len(r.entries))
	for k, e := range r.entries {
		if IsAbsent(e.value) {
			continue
		}
		in[k] = e.value
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}

func assign(dst reflect.Value, v any) error {
	sv := reflect.ValueOf(v)
	if sv.Type().AssignableTo(dst.Type()) {
		dst.Set(sv)
		return nil
	}
	return mapstructure.Decode(v, dst.Addr().Interface())
}

func structKeyIndex(t reflect.Type) map[string]int {
	idx := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if key := ResolveStructKey(sf); key != "-" {
			idx[key] = i
		}
	}
	return idx
}
