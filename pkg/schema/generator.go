// Package schema derives JSON Schema documents from tagged Go structs.
//
// Field names come from the yaml tag, then the json tag. A `schema` tag adds
// constraints: required, enum=a|b, pattern=..., minLength=N, minItems=N.
// A `description` tag sets the field description.
package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

const schemaRef = "https://json-schema.org/draft/2020-12/schema"

type JSONSchema struct {
	Schema               string                 `json:"$schema,omitempty"`
	ID                   string                 `json:"$id,omitempty"`
	Title                string                 `json:"title,omitempty"`
	Description          string                 `json:"description,omitempty"`
	Type                 string                 `json:"type"`
	Required             []string               `json:"required,omitempty"`
	Properties           map[string]*JSONSchema `json:"properties,omitempty"`
	AdditionalProperties *bool                  `json:"additionalProperties,omitempty"`
	Items                *JSONSchema            `json:"items,omitempty"`
	Enum                 []string               `json:"enum,omitempty"`
	Pattern              string                 `json:"pattern,omitempty"`
	MinLength            *int                   `json:"minLength,omitempty"`
	MinItems             *int                   `json:"minItems,omitempty"`
}

type Generator struct {
	baseID string
}

// NewGenerator returns a generator that names root schemas baseID/<type>.
func NewGenerator(baseID string) *Generator {
	return &Generator{baseID: strings.TrimSuffix(baseID, "/")}
}

func (g *Generator) Generate(v any) (*JSONSchema, error) {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("root type must be a struct, got %s", t.Kind())
	}

	s, err := g.forType(t)
	if err != nil {
		return nil, err
	}
	s.Schema = schemaRef
	s.Title = t.Name()
	if g.baseID != "" {
		s.ID = g.baseID + "/" + strings.ToLower(t.Name())
	}
	return s, nil
}

// GenerateJSON renders the schema of v as indented JSON.
func (g *Generator) GenerateJSON(v any) ([]byte, error) {
	s, err := g.Generate(v)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema to JSON: %w", err)
	}
	return append(data, '\n'), nil
}

func (g *Generator) forType(t reflect.Type) (*JSONSchema, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		return g.forStruct(t)
	case reflect.Slice:
		items, err := g.forType(t.Elem())
		if err != nil {
			return nil, fmt.Errorf("array items: %w", err)
		}
		return &JSONSchema{Type: "array", Items: items}, nil
	case reflect.String:
		return &JSONSchema{Type: "string"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &JSONSchema{Type: "integer"}, nil
	case reflect.Float32, reflect.Float64:
		return &JSONSchema{Type: "number"}, nil
	case reflect.Bool:
		return &JSONSchema{Type: "boolean"}, nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", t.Kind())
	}
}

func (g *Generator) forStruct(t reflect.Type) (*JSONSchema, error) {
	closed := false
	s := &JSONSchema{
		Type:                 "object",
		Properties:           make(map[string]*JSONSchema),
		AdditionalProperties: &closed,
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := fieldName(field)
		if name == "" {
			continue
		}

		fs, err := g.forType(field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		fs.Description = field.Tag.Get("description")
		if applyTag(field.Tag.Get("schema"), fs) {
			s.Required = append(s.Required, name)
		}
		s.Properties[name] = fs
	}
	return s, nil
}

// applyTag sets constraints from a schema tag and reports whether the field is required.
func applyTag(tag string, s *JSONSchema) (required bool) {
	if tag == "" {
		return false
	}
	for _, part := range strings.Split(tag, ",") {
		key, value, _ := strings.Cut(strings.TrimSpace(part), "=")
		switch key {
		case "required":
			required = true
		case "enum":
			s.Enum = strings.Split(value, "|")
		case "pattern":
			s.Pattern = value
		case "minLength":
			if n, err := strconv.Atoi(value); err == nil {
				s.MinLength = &n
			}
		case "minItems":
			if n, err := strconv.Atoi(value); err == nil {
				s.MinItems = &n
			}
		}
	}
	return required
}

func fieldName(field reflect.StructField) string {
	for _, key := range []string{"yaml", "json"} {
		tag, ok := field.Tag.Lookup(key)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return strings.ToLower(field.Name[:1]) + field.Name[1:]
}
