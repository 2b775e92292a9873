package schema

import (
	js "github.com/hmizuno/lockstep/jsonschema"
)

// JSONSchema projects a node into a JSON Schema representation.
func JSONSchema(n Node) (*js.Schema, error) {
	switch t := n.(type) {
	case nil, *Any:
		return &js.Schema{}, nil
	case *String:
		out := &js.Schema{Type: "string", Format: t.Format}
		if t.MinLength != nil {
			v := *t.MinLength
			out.MinLength = &v
		}
		if t.MaxLength != nil {
			v := *t.MaxLength
			out.MaxLength = &v
		}
		return out, nil
	case *Number:
		return &js.Schema{Type: "number"}, nil
	case *Bool:
		return &js.Schema{Type: "boolean"}, nil
	case *Object:
		out := &js.Schema{
			Type:       "object",
			Properties: map[string]*js.Schema{},
			Required:   t.SortedRequired(),
			// unknown keys are tolerated at runtime
			AdditionalProperties: true,
		}
		for _, k := range t.SortedProperties() {
			ps, err := JSONSchema(t.Properties[k])
			if err != nil {
				return nil, err
			}
			out.Properties[k] = ps
		}
		return out, nil
	case *Array:
		item, err := JSONSchema(t.Item)
		if err != nil {
			return nil, err
		}
		return &js.Schema{Type: "array", Items: item}, nil
	default:
		return &js.Schema{}, nil
	}
}
