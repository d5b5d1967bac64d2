package guardrail

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Catalog holds message and attribute overrides for a schema, typically
// loaded from a YAML file kept next to route definitions:
//
//	messages:
//	  title.required: "A post needs a title"
//	  min: "The {field} is too short"
//	attributes:
//	  title: "post title"
type Catalog struct {
	Messages   map[string]string `yaml:"messages"`
	Attributes map[string]string `yaml:"attributes"`
}

// ErrInvalidCatalog reports YAML content that does not parse into a Catalog.
var ErrInvalidCatalog = errors.New("guardrail: invalid message catalog")

// CatalogFromYAML parses a YAML message catalog.
func CatalogFromYAML(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, errors.Join(ErrInvalidCatalog, err)
	}
	if c.Messages == nil && c.Attributes == nil {
		return Catalog{}, fmt.Errorf("%w: no messages or attributes section", ErrInvalidCatalog)
	}
	return c, nil
}

// Apply copies the catalog's overrides onto a schema, replacing existing
// keys.
func (c Catalog) Apply(schema *Schema) {
	if len(c.Messages) > 0 && schema.Messages == nil {
		schema.Messages = make(map[string]string, len(c.Messages))
	}
	for k, v := range c.Messages {
		schema.Messages[k] = v
	}
	if len(c.Attributes) > 0 && schema.Attributes == nil {
		schema.Attributes = make(map[string]string, len(c.Attributes))
	}
	for k, v := range c.Attributes {
		schema.Attributes[k] = v
	}
}
