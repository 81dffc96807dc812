package autobuild

import (
	"fmt"
	"log/slog"
	"strings"
)

// Outcome is the result of supplying a key: either a *Builder[T] that still
// waits for planned keys, or the *Record[T] produced by the call that supplied
// the last one. Use Finalized or Continue, or a type switch, to tell them apart.
type Outcome[T any] interface {
	outcome() *Schema[T]
}

// Builder accumulates planned keys. A Builder is an immutable value: every
// With returns a fresh Builder (or the finalized Record) and leaves the
// receiver untouched, so a partial builder can be branched freely, including
// from several goroutines.
type Builder[T any] struct {
	schema *Schema[T]
	plan   Plan
	opt    BuildOpt
	state  state
}

func (b *Builder[T]) outcome() *Schema[T] { return b.schema }

// Schema returns the schema the builder was planned against.
func (b *Builder[T]) Schema() *Schema[T] { return b.schema }

// Plan returns the planned keys.
func (b *Builder[T]) Plan() Plan { return b.plan }

// Has reports whether key has been supplied.
func (b *Builder[T]) Has(key string) bool { return b.state.has(key) }

// Get returns the value supplied for key.
func (b *Builder[T]) Get(key string) (any, bool) { return b.state.get(key) }

// Provided returns the supplied keys in plan order.
func (b *Builder[T]) Provided() []string {
	out := make([]string, 0, len(b.state.entries))
	for _, k := range b.plan.keys {
		if b.state.has(k) {
			out = append(out, k)
		}
	}
	return out
}

// Remaining returns the planned keys not yet supplied, in plan order.
func (b *Builder[T]) Remaining() []string {
	out := make([]string, 0, len(b.plan.keys)-len(b.state.entries))
	for _, k := range b.plan.keys {
		if !b.state.has(k) {
			out = append(out, k)
		}
	}
	return out
}

func (b *Builder[T]) String() string {
	return fmt.Sprintf("Builder[%s](remaining: %s)", b.schema.name, strings.Join(b.Remaining(), ", "))
}

// With supplies value for key. When the call completes the plan it returns
// the finalized *Record[T]; otherwise a new *Builder[T].
//
// On error the receiver is returned unchanged as the outcome and stays
// usable. Errors are Issues caused by ErrKeyNotInPlan (key outside the plan,
// under UnknownStrict), ErrInvalidValue or ErrResupplied (only when
// OnResupply is Error). Under UnknownStrip a key outside the plan is dropped
// and the receiver is returned without error.
func (b *Builder[T]) With(key string, value any) (Outcome[T], error) {
	if !b.plan.Contains(key) {
		if b.opt.Unknown == UnknownStrip {
			return b, nil
		}
		code := CodeNotInPlan
		if _, declared := b.schema.index[key]; !declared {
			code = CodeUnknownKey
		}
		return b, Issues{issueFor(key, code, ErrKeyNotInPlan, map[string]any{"plan": b.plan.Keys()})}
	}
	f := b.schema.fields[b.schema.index[key]]
	if it := f.check(value); it != nil {
		return b, Issues{*it}
	}
	if b.state.has(key) {
		switch b.opt.OnResupply {
		case Error:
			return b, Issues{issueFor(key, CodeDuplicateKey, ErrResupplied, nil)}
		case Warn:
			b.opt.logger().Warn("key re-supplied",
				slog.String("schema", b.schema.name),
				slog.String("key", key),
			)
		}
	}

	next := b.state.with(key, value)
	if next.covers(b.plan) {
		b.opt.logger().Debug("record finalized",
			slog.String("schema", b.schema.name),
			slog.Any("keys", b.plan.keys),
		)
		return &Record[T]{schema: b.schema, plan: b.plan, entries: next.entries}, nil
	}
	return &Builder[T]{schema: b.schema, plan: b.plan, opt: b.opt, state: next}, nil
}

// Assignment pairs a key with the value to supply for it.
type Assignment[T any] struct {
	key   string
	value any
}

// Key returns the assigned key.
func (a Assignment[T]) Key() string { return a.key }

// Assign builds an untyped assignment; the value is checked at With time.
func Assign[T any](key string, value any) Assignment[T] {
	return Assignment[T]{key: key, value: value}
}

// Apply supplies the assignments in order. Assignments left over once the
// record has been finalized fail with ErrFinalized, and the record is
// returned as the outcome.
func (b *Builder[T]) Apply(as ...Assignment[T]) (Outcome[T], error) {
	var out Outcome[T] = b
	for i, a := range as {
		cur, ok := out.(*Builder[T])
		if !ok {
			return out, Issues{issueFor(a.key, CodeFinalized, ErrFinalized, map[string]any{"leftover": len(as) - i})}
		}
		next, err := cur.With(a.key, a.value)
		if err != nil {
			return next, err
		}
		out = next
	}
	return out, nil
}

// Finalized returns the record when out is one.
func Finalized[T any](out Outcome[T]) (*Record[T], bool) {
	r, ok := out.(*Record[T])
	return r, ok
}

// Continue returns the builder when out is still building.
func Continue[T any](out Outcome[T]) (*Builder[T], bool) {
	b, ok := out.(*Builder[T])
	return b, ok
}
