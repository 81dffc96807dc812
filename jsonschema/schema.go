package jsonschema

// Schema is a minimal JSON Schema representation used for export.
// Keep this struct small and extend incrementally.
type Schema struct {
	// Core
	Schema      string `json:"$schema,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	// Type is either a single type name or a list such as ["string","null"].
	Type any `json:"type,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`
}

// Draft is the JSON Schema dialect emitted by exporters.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// TypeOf returns a leaf schema for typ, widened with "null" when nullable.
// An empty typ yields a schema that accepts anything.
func TypeOf(typ string, nullable bool) *Schema {
	if typ == "" {
		return &Schema{}
	}
	if nullable {
		return &Schema{Type: []string{typ, "null"}}
	}
	return &Schema{Type: typ}
}
