package schema

import "github.com/invopop/jsonschema"

// Schema is the subset of a JSON schema that tool definitions carry on
// the wire: the object properties and which of them are required.
type Schema struct {
	Properties any
	Required   []string
}

func (s Schema) Ptr() *Schema {
	return &s
}

// Get reflects T into a flat object schema. Additional properties are
// rejected so providers never invent argument fields.
func Get[T any]() Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	var v T
	s := reflector.Reflect(v)
	return Schema{
		Properties: s.Properties,
		Required:   s.Required,
	}
}
