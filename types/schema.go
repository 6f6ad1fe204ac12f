package types

// TypeSchema is a dto for a stream's schema announcement; a JSON-schema style
// object with nested properties.
type TypeSchema struct {
	Type       []string             `json:"type,omitempty"`
	Properties map[string]*Property `json:"properties,omitempty"`
}

// Property is one field of a TypeSchema; objects nest further properties.
type Property struct {
	Type       []string             `json:"type,omitempty"`
	Properties map[string]*Property `json:"properties,omitempty"`
}

func NewTypeSchema() *TypeSchema {
	return &TypeSchema{
		Type:       []string{"object"},
		Properties: map[string]*Property{},
	}
}

func (t *TypeSchema) AddProperty(field string, property *Property) {
	t.Properties[field] = property
}

// NullableField builds a property allowing null plus the given types.
func NullableField(types ...string) *Property {
	return &Property{Type: append([]string{"null"}, types...)}
}

// ObjectField builds an object property from its nested properties.
func ObjectField(properties map[string]*Property) *Property {
	return &Property{Type: []string{"object"}, Properties: properties}
}
