// Package schemafile loads autobuild schemas from YAML documents.
//
// A document looks like:
//
//	name: User
//	unknown: strict      # strict | strip
//	onResupply: ignore   # ignore | warn | error
//	fields:
//	  - name: id
//	    type: integer    # string | integer | number | boolean | object | array | any
//	    required: true
//	  - name: bio
//	    type: string
//	    nullable: true
//
// Unknown document keys are rejected.
package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/reoring/autobuild"
)

// Record is the record type of schemas loaded from YAML.
type Record = map[string]any

// Document is the YAML shape of one schema.
type Document struct {
	Name       string      `yaml:"name"`
	Unknown    string      `yaml:"unknown,omitempty"`
	OnResupply string      `yaml:"onResupply,omitempty"`
	Fields     []FieldSpec `yaml:"fields"`
}

// FieldSpec is the YAML shape of one field.
type FieldSpec struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type,omitempty"`
	Required bool   `yaml:"required,omitempty"`
	Nullable bool   `yaml:"nullable,omitempty"`
}

// ErrNotFound is returned by LoadNamed when no document has the given name.
var ErrNotFound = errors.New("schemafile: schema not found")

var fieldTypes = map[string]reflect.Type{
	"string":  reflect.TypeFor[string](),
	"integer": reflect.TypeFor[int](),
	"number":  reflect.TypeFor[float64](),
	"boolean": reflect.TypeFor[bool](),
	"object":  reflect.TypeFor[map[string]any](),
	"array":   reflect.TypeFor[[]any](),
	"any":     nil,
	"":        nil,
}

// Load decodes a single YAML document into a schema.
func Load(data []byte, opt ...Option) (*autobuild.Schema[Record], error) {
	docs, err := decodeAll(data)
	if err != nil {
		return nil, err
	}
	if len(docs) != 1 {
		return nil, fmt.Errorf("schemafile: expected exactly one document, got %d", len(docs))
	}
	return docs[0].Schema(opt...)
}

// LoadAll decodes every document of a multi-document YAML stream.
func LoadAll(data []byte, opt ...Option) ([]*autobuild.Schema[Record], error) {
	docs, err := decodeAll(data)
	if err != nil {
		return nil, err
	}
	out := make([]*autobuild.Schema[Record], 0, len(docs))
	for _, d := range docs {
		s, err := d.Schema(opt...)
		if err != nil {
			return nil, fmt.Errorf("schemafile: %s: %w", d.Name, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// LoadNamed scans a multi-document YAML stream and loads the first document
// whose name matches.
func LoadNamed(data []byte, name string, opt ...Option) (*autobuild.Schema[Record], error) {
	docs, err := decodeAll(data)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if d.Name == name {
			return d.Schema(opt...)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

func decodeAll(data []byte) ([]Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var docs []Document
	for {
		var d Document
		if err := dec.Decode(&d); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("schemafile: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// Schema converts the document. Options override the document's policies.
func (d Document) Schema(opt ...Option) (*autobuild.Schema[Record], error) {
	bo, err := d.buildOpt()
	if err != nil {
		return nil, err
	}
	for _, o := range opt {
		o(&bo)
	}
	var iss autobuild.Issues
	fields := make([]autobuild.Field, 0, len(d.Fields))
	for _, fs := range d.Fields {
		t, ok := fieldTypes[fs.Type]
		if !ok {
			iss = autobuild.AppendIssues(iss, autobuild.Issue{
				Path:    "/" + fs.Name,
				Code:    autobuild.CodeInvalidType,
				Message: fmt.Sprintf("unsupported field type %q", fs.Type),
				Cause:   autobuild.ErrInvalidSchema,
				Params:  map[string]any{"key": fs.Name, "type": fs.Type},
			})
			continue
		}
		fields = append(fields, autobuild.Field{
			Name:     fs.Name,
			Type:     t,
			Required: fs.Required,
			Nullable: fs.Nullable || t == nil,
		})
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return autobuild.NewSchema[Record](d.Name, fields, bo)
}

func (d Document) buildOpt() (autobuild.BuildOpt, error) {
	var bo autobuild.BuildOpt
	switch d.Unknown {
	case "", "strict":
		bo.Unknown = autobuild.UnknownStrict
	case "strip":
		bo.Unknown = autobuild.UnknownStrip
	default:
		return bo, fmt.Errorf("schemafile: unknown policy %q", d.Unknown)
	}
	switch d.OnResupply {
	case "", "ignore":
		bo.OnResupply = autobuild.Ignore
	case "warn":
		bo.OnResupply = autobuild.Warn
	case "error":
		bo.OnResupply = autobuild.Error
	default:
		return bo, fmt.Errorf("schemafile: onResupply %q", d.OnResupply)
	}
	return bo, nil
}
