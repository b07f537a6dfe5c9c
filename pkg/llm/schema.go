package llm

// Schema types, spelled the way JSON Schema spells them.
const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
)

// Schema is a provider-neutral subset of JSON Schema (OpenAPI flavour) used for
// both tool parameters and response constraints.
type Schema struct {
	Type             string             `json:"type"`
	Description      string             `json:"description,omitempty"`
	Properties       map[string]*Schema `json:"properties,omitempty"`
	PropertyOrdering []string           `json:"-"`
	Items            *Schema            `json:"items,omitempty"`
	Required         []string           `json:"required,omitempty"`
	Enum             []string           `json:"enum,omitempty"`
	Format           string             `json:"format,omitempty"`
	Nullable         bool               `json:"nullable,omitempty"`
}

// Object builds an object schema. Property order follows the order of names.
func Object(description string, props []Property, required ...string) *Schema {
	s := &Schema{
		Type:        TypeObject,
		Description: description,
		Properties:  make(map[string]*Schema, len(props)),
		Required:    required,
	}
	for _, p := range props {
		s.Properties[p.Name] = p.Schema
		s.PropertyOrdering = append(s.PropertyOrdering, p.Name)
	}
	return s
}

// Property is a named member of an object schema.
type Property struct {
	Name   string
	Schema *Schema
}

func Prop(name string, schema *Schema) Property {
	return Property{Name: name, Schema: schema}
}

func Array(description string, items *Schema) *Schema {
	return &Schema{Type: TypeArray, Description: description, Items: items}
}

func String(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}

func Number(description string) *Schema {
	return &Schema{Type: TypeNumber, Description: description}
}

func Integer(description string) *Schema {
	return &Schema{Type: TypeInteger, Description: description}
}

func Boolean(description string) *Schema {
	return &Schema{Type: TypeBoolean, Description: description}
}

func Enum(description string, values ...string) *Schema {
	return &Schema{Type: TypeString, Description: description, Enum: values}
}

// Merge returns a copy of s with the properties of others appended.
// Required lists are unioned.
func (s *Schema) Merge(others ...*Schema) *Schema {
	out := &Schema{
		Type:             s.Type,
		Description:      s.Description,
		Properties:       make(map[string]*Schema, len(s.Properties)),
		PropertyOrdering: append([]string(nil), s.PropertyOrdering...),
		Required:         append([]string(nil), s.Required...),
	}
	for k, v := range s.Properties {
		out.Properties[k] = v
	}
	for _, o := range others {
		for _, name := range o.PropertyOrdering {
			if _, dup := out.Properties[name]; !dup {
				out.PropertyOrdering = append(out.PropertyOrdering, name)
			}
			out.Properties[name] = o.Properties[name]
		}
		out.Required = append(out.Required, o.Required...)
	}
	return out
}
