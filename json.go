package autobuild

import (
	"bytes"
	"log/slog"
	"reflect"
	"sort"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/autobuild/internal/jsonscan"
)

var jsonNull = []byte("null")

// MarshalJSON encodes the record as a JSON object in plan order. Absent values
// are omitted and nil encodes as null.
func (r *Record[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, k := range r.plan.keys {
		v := r.entries[k].value
		if IsAbsent(v) {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, err := gojson.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := gojson.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FeedJSON decodes a JSON object and supplies each of its keys to b. Values
// decode straight into the field type and null becomes nil. Keys b already
// holds are supplied first, so a document that completes the plan overwrites
// them before the record is finalized. Keys outside the plan follow the
// builder's UnknownPolicy; under UnknownStrict all of them are reported
// together and nothing is supplied. A key repeated in the document follows
// OnResupply (the last occurrence wins unless it is Error). On error b is
// returned as the outcome.
func FeedJSON[T any](b *Builder[T], data []byte) (Outcome[T], error) {
	var raw map[string]gojson.RawMessage
	if err := gojson.Unmarshal(data, &raw); err != nil || raw == nil {
		it := issueFor("", CodeParseError, ErrMalformedInput, nil)
		it.Hint = "expected a JSON object"
		if err != nil {
			it.Hint = err.Error()
		}
		return b, Issues{it}
	}

	var iss Issues
	if b.opt.Unknown == UnknownStrict {
		extra := make([]string, 0)
		for k := range raw {
			if !b.plan.Contains(k) {
				extra = append(extra, k)
			}
		}
		sort.Strings(extra)
		for _, k := range extra {
			code := CodeNotInPlan
			if _, declared := b.schema.index[k]; !declared {
				code = CodeUnknownKey
			}
			iss = AppendIssues(iss, issueFor(k, code, ErrKeyNotInPlan, nil))
		}
		if len(iss) > 0 {
			return b, iss
		}
	}

	// a key repeated inside the document is a re-supply
	if b.opt.OnResupply != Ignore {
		dups, err := jsonscan.DuplicateTopLevelKeys(data)
		if err != nil {
			it := issueFor("", CodeParseError, ErrMalformedInput, nil)
			it.Hint = err.Error()
			return b, Issues{it}
		}
		for _, k := range dups {
			if !b.plan.Contains(k) {
				continue
			}
			if b.opt.OnResupply == Error {
				iss = AppendIssues(iss, issueFor(k, CodeDuplicateKey, ErrResupplied, nil))
				continue
			}
			b.opt.logger().Warn("key repeated in JSON input",
				slog.String("schema", b.schema.name),
				slog.String("key", k),
			)
		}
		if len(iss) > 0 {
			return b, iss
		}
	}

	type kv struct {
		key   string
		value any
	}
	vals := make([]kv, 0, len(raw))
	for _, k := range b.plan.keys {
		msg, ok := raw[k]
		if !ok {
			continue
		}
		v, err := decodeField(b.schema.fields[b.schema.index[k]], msg)
		if err != nil {
			it := issueFor(k, CodeInvalidType, ErrInvalidValue, nil)
			it.Hint = err.Error()
			iss = AppendIssues(iss, it)
			continue
		}
		vals = append(vals, kv{key: k, value: v})
	}
	if len(iss) > 0 {
		return b, iss
	}

	// Re-supplied keys go first: they never complete the plan, so every value
	// in the document lands before the record is finalized.
	sort.SliceStable(vals, func(i, j int) bool {
		return b.state.has(vals[i].key) && !b.state.has(vals[j].key)
	})
	var out Outcome[T] = b
	for i, p := range vals {
		cur, ok := Continue(out)
		if !ok {
			return out, Issues{issueFor(p.key, CodeFinalized, ErrFinalized, map[string]any{"leftover": len(vals) - i})}
		}
		next, err := cur.With(p.key, p.value)
		if err != nil {
			return b, err
		}
		out = next
	}
	return out, nil
}

func decodeField(f Field, msg gojson.RawMessage) (any, error) {
	if bytes.Equal(bytes.TrimSpace(msg), jsonNull) {
		return nil, nil
	}
	if f.Type == nil {
		var v any
		if err := gojson.Unmarshal(msg, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
	ptr := reflect.New(f.Type)
	if err := gojson.Unmarshal(msg, ptr.Interface()); err != nil {
		return nil, err
	}
	return ptr.Elem().Interface(), nil
}
