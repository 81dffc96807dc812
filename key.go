package autobuild

import "reflect"

// Key is a field name bound to the value type V of target T. Supplying a
// value through a Key makes the value type a compile-time property of the
// call site; Bind checks the binding itself against a schema once.
type Key[T, V any] struct{ name string }

// KeyOf declares a typed key.
func KeyOf[T, V any](name string) Key[T, V] { return Key[T, V]{name: name} }

// Name returns the field name.
func (k Key[T, V]) Name() string { return k.name }

// Set builds an assignment for Apply.
func (k Key[T, V]) Set(v V) Assignment[T] { return Assignment[T]{key: k.name, value: v} }

// Bind verifies that s declares k and that V is assignable to the field type.
func (k Key[T, V]) Bind(s *Schema[T]) error {
	f, ok := s.Field(k.name)
	if !ok {
		return Issues{issueFor(k.name, CodeUnknownKey, ErrUnknownField, nil)}
	}
	vt := reflect.TypeFor[V]()
	if f.Type != nil && !vt.AssignableTo(f.Type) {
		return Issues{issueFor(k.name, CodeInvalidType, ErrInvalidValue, map[string]any{
			"expected": f.Type.String(),
			"got":      vt.String(),
		})}
	}
	return nil
}

// With supplies v for k. It is the typed form of (*Builder[T]).With.
func With[T, V any](b *Builder[T], k Key[T, V], v V) (Outcome[T], error) {
	return b.With(k.name, v)
}

// Lookup reads the value recorded for k. ok is false when k is not in the
// record or its value is not a V (for example nil or Absent).
func Lookup[T, V any](r *Record[T], k Key[T, V]) (V, bool) {
	raw, ok := r.Get(k.name)
	if !ok {
		var zero V
		return zero, false
	}
	v, ok := raw.(V)
	return v, ok
}
