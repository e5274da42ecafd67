package generator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pb33f/libopenapi/datamodel/high/base"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"

	"github.com/moamenhredeen/oastester/internal/logger"
)

// Placeholder values used when a schema gives nothing better
const (
	PlaceholderString   = "string"
	PlaceholderValue    = "value"
	PlaceholderNumber   = 123
	PlaceholderCircular = "<circular>"

	defaultMaxDepth = 16
)

// formatSamples are fixed so repeated runs produce identical payloads
var formatSamples = map[string]string{
	"date-time": "2023-01-01T12:00:00Z",
	"date":      "2023-01-01",
	"uuid":      "123e4567-e89b-12d3-a456-426614174000",
	"email":     "user@example.com",
	"uri":       "https://example.com",
}

// Synthesizer turns JSON-Schema fragments into representative sample values.
// It never fails: malformed or cyclic schemas degrade to placeholders.
type Synthesizer struct {
	formats      bool
	requiredOnly bool
	maxDepth     int
}

type Option func(*Synthesizer)

// WithFormats toggles format-aware string samples (date-time, date, uuid, email, uri)
func WithFormats(enabled bool) Option {
	return func(s *Synthesizer) { s.formats = enabled }
}

// WithRequiredOnly restricts object samples to properties listed in "required"
func WithRequiredOnly(enabled bool) Option {
	return func(s *Synthesizer) { s.requiredOnly = enabled }
}

// WithMaxDepth bounds nesting; deeper levels become PlaceholderCircular
func WithMaxDepth(depth int) Option {
	return func(s *Synthesizer) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// NewSynthesizer creates a new synthesizer instance
func NewSynthesizer(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		formats:  true,
		maxDepth: defaultMaxDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// walk carries the $ref chain of the current descent
type walk struct {
	refs []string
}

// Synthesize generates a sample value for schema. A nil schema yields nil.
func (s *Synthesizer) Synthesize(schema *base.Schema) any {
	if schema == nil {
		return nil
	}
	return s.value(schema, &walk{}, 0)
}

// SynthesizeProxy generates a sample for a possibly referenced schema
func (s *Synthesizer) SynthesizeProxy(proxy *base.SchemaProxy) any {
	if proxy == nil {
		return nil
	}
	return s.proxy(proxy, &walk{}, 0)
}

func (s *Synthesizer) proxy(proxy *base.SchemaProxy, w *walk, depth int) any {
	if proxy == nil {
		return s.value(&base.Schema{}, w, depth)
	}

	ref := ""
	if proxy.IsReference() {
		ref = proxy.GetReference()
		if slices.Contains(w.refs, ref) {
			logger.L().Debug("generator.circular_ref", "ref", ref)
			return PlaceholderCircular
		}
		w.refs = append(w.refs, ref)
		defer func() { w.refs = w.refs[:len(w.refs)-1] }()
	}

	schema := proxy.Schema()
	if schema == nil {
		logger.L().Debug("generator.unresolved_schema", "ref", ref, "error", proxy.GetBuildError())
		return PlaceholderValue
	}
	return s.value(schema, w, depth)
}

func (s *Synthesizer) value(schema *base.Schema, w *walk, depth int) any {
	if depth > s.maxDepth {
		return PlaceholderCircular
	}

	switch schemaType(schema) {
	case "object":
		return s.object(schema, w, depth)
	case "array":
		var items *base.SchemaProxy
		if schema.Items != nil && schema.Items.IsA() {
			items = schema.Items.A
		}
		return []any{s.proxy(items, w, depth+1)}
	case "string":
		if v, ok := example(schema); ok {
			return v
		}
		if v, ok := firstEnum(schema); ok {
			return v
		}
		if s.formats {
			if v, ok := formatSamples[schema.Format]; ok {
				return v
			}
		}
		return PlaceholderString
	case "number", "integer":
		if v, ok := example(schema); ok {
			return v
		}
		return PlaceholderNumber
	case "boolean":
		if v, ok := example(schema); ok {
			return v
		}
		return true
	}

	// Composition: only the first alternative is explored
	if len(schema.OneOf) > 0 {
		return s.proxy(schema.OneOf[0], w, depth+1)
	}
	if len(schema.AnyOf) > 0 {
		return s.proxy(schema.AnyOf[0], w, depth+1)
	}

	if v, ok := example(schema); ok {
		return v
	}
	return PlaceholderValue
}

// object visits every declared property once, in declaration order
func (s *Synthesizer) object(schema *base.Schema, w *walk, depth int) *Object {
	result := NewObject()
	if schema.Properties == nil {
		return result
	}

	for pair := schema.Properties.First(); pair != nil; pair = pair.Next() {
		propName := pair.Key()
		if s.requiredOnly && !slices.Contains(schema.Required, propName) {
			continue
		}
		result.Set(propName, s.proxy(pair.Value(), w, depth+1))
	}
	return result
}

// RequestBody generates the JSON sample for a request body.
// Missing application/json content or schema yields an empty object.
func (s *Synthesizer) RequestBody(requestBody *v3.RequestBody) any {
	if requestBody == nil || requestBody.Content == nil {
		return NewObject()
	}

	mediaType, ok := requestBody.Content.Get("application/json")
	if !ok || mediaType == nil || mediaType.Schema == nil {
		return NewObject()
	}

	if v := s.SynthesizeProxy(mediaType.Schema); v != nil {
		return v
	}
	return NewObject()
}

// ParameterValue generates a string value for a path, query or header parameter
func (s *Synthesizer) ParameterValue(param *v3.Parameter) (string, error) {
	if param == nil {
		return "", fmt.Errorf("parameter is nil")
	}

	if param.Example != nil {
		var v any
		if err := param.Example.Decode(&v); err == nil && v != nil {
			return fmt.Sprintf("%v", v), nil
		}
	}

	if param.Schema != nil {
		switch v := s.SynthesizeProxy(param.Schema).(type) {
		case nil:
		case *Object, []any:
			// Structured parameters are not expanded
		default:
			return fmt.Sprintf("%v", v), nil
		}
	}

	// Default to string
	return "test", nil
}

// schemaType returns the first non-null declared type
func schemaType(schema *base.Schema) string {
	for _, t := range schema.Type {
		if t != "null" {
			return strings.ToLower(t)
		}
	}
	return ""
}

func example(schema *base.Schema) (any, bool) {
	if schema.Example != nil {
		var v any
		if err := schema.Example.Decode(&v); err == nil && v != nil {
			return v, true
		}
	}
	if len(schema.Examples) > 0 && schema.Examples[0] != nil {
		var v any
		if err := schema.Examples[0].Decode(&v); err == nil && v != nil {
			return v, true
		}
	}
	return nil, false
}

func firstEnum(schema *base.Schema) (any, bool) {
	if len(schema.Enum) == 0 || schema.Enum[0] == nil {
		return nil, false
	}
	var v any
	if err := schema.Enum[0].Decode(&v); err != nil || v == nil {
		return nil, false
	}
	return v, true
}
