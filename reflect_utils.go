package autobuild

import (
	"reflect"
	"strings"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct field's
// external key used by Declare and PresenceMap.
// Priority: autobuild:"name=..." > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	for _, p := range tagParts(sf.Tag.Get("autobuild")) {
		if strings.HasPrefix(p, "name=") {
			return strings.TrimPrefix(p, "name=")
		}
		if p == "-" {
			return "-"
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			if jt[:i] != "" {
				return jt[:i]
			}
			return sf.Name
		}
		return jt
	}
	return sf.Name
}

// resolveStructRequired decides whether a struct field must be planned.
// autobuild:"required"/"optional" win; otherwise omitempty/omitzero in the
// json tag make the field optional.
func resolveStructRequired(sf reflect.StructField) bool {
	for _, p := range tagParts(sf.Tag.Get("autobuild")) {
		switch p {
		case "required":
			return true
		case "optional":
			return false
		}
	}
	jt := sf.Tag.Get("json")
	if i := strings.IndexByte(jt, ','); i >= 0 {
		for _, p := range strings.Split(jt[i+1:], ",") {
			if p == "omitempty" || p == "omitzero" {
				return false
			}
		}
	}
	return true
}

func tagParts(tag string) []string {
	if tag == "" {
		return nil
	}
	parts := strings.Split(tag, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// nullableKind reports whether nil is a valid value of a field typed t.
func nullableKind(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

// jsonTypeName maps a Go type to its JSON Schema type name; "" means any.
func jsonTypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return "string"
		}
		return "array"
	}
	return ""
}
