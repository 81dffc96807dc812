package autobuild

import "reflect"

// Presence is the bit flag recorded for every supplied key. A key is present
// as soon as it is supplied, whatever its value.
type Presence uint8

const (
	PresenceSeen    Presence = 1 << iota // Key was supplied.
	PresenceWasNull                      // Supplied value was nil.
	PresenceAbsent                       // Supplied value was the Absent marker.
)

// Has reports whether all bits of f are set.
func (p Presence) Has(f Presence) bool { return p&f == f }

// PresenceMap maps JSON Pointers to Presence flags.
type PresenceMap map[string]Presence

// absentMarker is the type of Absent.
type absentMarker struct{}

func (absentMarker) String() string { return "<absent>" }

// Absent is an explicit "no value" marker. Supplying it still counts as
// providing the key, and the finalized record keeps it as the key's value.
var Absent any = absentMarker{}

// IsAbsent reports whether v is the Absent marker.
func IsAbsent(v any) bool {
	_, ok := v.(absentMarker)
	return ok
}

func presenceOf(v any) Presence {
	switch {
	case v == nil, isTypedNil(v):
		return PresenceSeen | PresenceWasNull
	case IsAbsent(v):
		return PresenceSeen | PresenceAbsent
	default:
		return PresenceSeen
	}
}

func isTypedNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
