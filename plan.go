package autobuild

import (
	"log/slog"
	"strings"

	js "github.com/reoring/autobuild/jsonschema"
)

// Plan is the ordered set of keys a builder tracks. It always covers the
// schema's required fields and never names a field the schema lacks.
type Plan struct {
	keys []string
	set  map[string]struct{}
}

// Keys returns the planned keys in declaration order.
func (p Plan) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of planned keys.
func (p Plan) Len() int { return len(p.keys) }

// Contains reports whether key is planned.
func (p Plan) Contains(key string) bool {
	_, ok := p.set[key]
	return ok
}

func (p Plan) String() string { return "plan(" + strings.Join(p.keys, ", ") + ")" }

// ValidatePlan checks keys against s. Required fields absent from keys are
// reported with CodeRequired (cause ErrIncompletePlan), keys the schema does
// not declare with CodeUnknownKey (cause ErrUnknownField). All issues are
// returned together. Repeated keys collapse onto their first occurrence.
func ValidatePlan[T any](s *Schema[T], keys ...string) (Plan, error) {
	set := make(map[string]struct{}, len(keys))
	ordered := make([]string, 0, len(keys))
	var iss Issues
	for _, k := range keys {
		if _, dup := set[k]; dup {
			continue
		}
		set[k] = struct{}{}
		if _, ok := s.index[k]; !ok {
			iss = AppendIssues(iss, issueFor(k, CodeUnknownKey, ErrUnknownField, nil))
			continue
		}
		ordered = append(ordered, k)
	}
	for _, f := range s.fields {
		if !f.Required {
			continue
		}
		if _, ok := set[f.Name]; !ok {
			iss = AppendIssues(iss, issueFor(f.Name, CodeRequired, ErrIncompletePlan, nil))
		}
	}
	if len(iss) == 0 && len(ordered) == 0 {
		iss = AppendIssues(iss, issueFor("", CodeEmptyPlan, ErrEmptyPlan, nil))
	}
	if len(iss) > 0 {
		return Plan{}, iss
	}
	return Plan{keys: ordered, set: set}, nil
}

// Plan validates keys and returns a builder seeded with an empty state. No
// builder is returned when validation fails.
func (s *Schema[T]) Plan(keys ...string) (*Builder[T], error) {
	return s.PlanWithOpt(s.opt, keys...)
}

// PlanWithOpt is like Plan but overrides the schema's default options.
func (s *Schema[T]) PlanWithOpt(opt BuildOpt, keys ...string) (*Builder[T], error) {
	p, err := ValidatePlan(s, keys...)
	if err != nil {
		opt.logger().Debug("plan rejected",
			slog.String("schema", s.name),
			slog.Any("keys", keys),
			slog.Any("missing", MissingKeys(err)),
			slog.Any("error", err),
		)
		return nil, err
	}
	return &Builder[T]{schema: s, plan: p, opt: opt}, nil
}

// MustPlan is like Plan but panics on error.
func (s *Schema[T]) MustPlan(keys ...string) *Builder[T] {
	b, err := s.Plan(keys...)
	if err != nil {
		panic(err)
	}
	return b
}

// RecordSchema projects the finalized record shape for p: exactly the planned
// keys and nothing else. Keys that may hold Absent are left out of "required"
// because MarshalJSON omits them.
func (s *Schema[T]) RecordSchema(p Plan) *js.Schema {
	var required []string
	for _, k := range p.keys {
		if s.fields[s.index[k]].check(Absent) != nil {
			required = append(required, k)
		}
	}
	return s.project(p.Keys(), required, false)
}
