package autobuild

import "maps"

type entry struct {
	value    any
	presence Presence
}

// state is an immutable snapshot of supplied keys. with never touches the
// receiver; it clones the entries and sets one key on the copy, so snapshots
// derived from a common ancestor never observe each other.
type state struct {
	entries map[string]entry
}

func (s state) with(key string, v any) state {
	next := make(map[string]entry, len(s.entries)+1)
	maps.Copy(next, s.entries)
	next[key] = entry{value: v, presence: presenceOf(v)}
	return state{entries: next}
}

func (s state) has(key string) bool {
	_, ok := s.entries[key]
	return ok
}

func (s state) get(key string) (any, bool) {
	e, ok := s.entries[key]
	return e.value, ok
}

// covers reports whether every planned key is present. Completion is decided
// by key presence only, never by the stored value.
func (s state) covers(p Plan) bool {
	if len(s.entries) != len(p.keys) {
		return false
	}
	for _, k := range p.keys {
		if !s.has(k) {
			return false
		}
	}
	return true
}
