package openapi

import (
	"fmt"

	lockstep "github.com/hmizuno/lockstep"
	"github.com/hmizuno/lockstep/contract"
	"github.com/hmizuno/lockstep/schema"
)

// Package openapi compiles a loaded contract document into the structured
// validator model: one named node per shared component and per endpoint
// body/response, plus the endpoint table. Compilation is all-or-nothing; a
// failure yields no set because every later stage assumes a complete type
// universe.

// Options controls compilation.
type Options struct {
	// SkipResponses limits the set to request bodies and components. The
	// full pipeline keeps responses; clients that only validate outbound
	// forms may drop them.
	SkipResponses bool
}

// Compile builds the validator set for the whole document.
func Compile(doc *contract.Document, opts Options) (*schema.Set, contract.Diag, error) {
	d := &contract.Recorder{}
	set := schema.NewSet()

	// shared components keep their contract names
	schemas := doc.Schemas()
	for _, name := range doc.SchemaNames() {
		set.Validators[name] = compileNode(schemas[name], name, d)
	}

	for _, op := range doc.Operations() {
		alias := Alias(op)
		entry := schema.Operation{
			Endpoint:  lockstep.Endpoint{Method: op.Method, Path: op.Path, Alias: alias},
			Responses: map[int]string{},
		}
		if dup := findAlias(set.Operations, alias); dup != nil {
			return nil, d, fmt.Errorf("openapi: alias %q declared by both %s and %s %s", alias, dup, op.Method, op.Path)
		}
		if body := op.RequestSchema(); body != nil {
			name := BodyName(alias)
			set.Validators[name] = compileNode(body, name, d)
			entry.Request = name
		}
		if !opts.SkipResponses {
			for status, rs := range op.ResponseSchemas() {
				name := ResponseName(alias, status)
				set.Validators[name] = compileNode(rs, name, d)
				entry.Responses[status] = name
			}
		}
		set.Operations = append(set.Operations, entry)
	}
	return set, d, nil
}

// Endpoints extracts the contract-side endpoint list without compiling
// validators. The auditor reads this directly.
func Endpoints(doc *contract.Document) []lockstep.Endpoint {
	ops := doc.Operations()
	eps := make([]lockstep.Endpoint, 0, len(ops))
	for _, op := range ops {
		eps = append(eps, lockstep.Endpoint{Method: op.Method, Path: op.Path, Alias: Alias(op)})
	}
	return eps
}

func findAlias(ops []schema.Operation, alias string) fmt.Stringer {
	for _, op := range ops {
		if op.Alias == alias {
			return op.Endpoint
		}
	}
	return nil
}

// compileNode converts one schema object into a model node. A node with no
// usable type declaration compiles to Any (accept anything); unsupported
// constructs degrade to permissive nodes with a recorded warning rather than
// failing the run.
func compileNode(m map[string]any, at string, d *contract.Recorder) schema.Node {
	if len(m) == 0 {
		return &schema.Any{}
	}
	typ, _ := m["type"].(string)
	if typ == "" {
		if _, ok := m["properties"].(map[string]any); ok {
			typ = "object"
		}
	}
	switch typ {
	case "object":
		return compileObject(m, at, d)
	case "array":
		item, _ := m["items"].(map[string]any)
		if item == nil {
			d.Warnf("%s: array without items accepts any element", at)
			return &schema.Array{Item: &schema.Any{}}
		}
		return &schema.Array{Item: compileNode(item, at+"[]", d)}
	case "string":
		return compileString(m, at, d)
	case "integer", "number":
		return &schema.Number{}
	case "boolean":
		return &schema.Bool{}
	case "":
		return &schema.Any{}
	default:
		d.Warnf("%s: unsupported type %q treated as any", at, typ)
		return &schema.Any{}
	}
}

func compileObject(m map[string]any, at string, d *contract.Recorder) schema.Node {
	obj := schema.NewObject()
	if pm, ok := m["properties"].(map[string]any); ok {
		for name, raw := range pm {
			ps, _ := raw.(map[string]any)
			obj.Properties[name] = compileNode(ps, at+"."+name, d)
		}
	}
	if req, ok := m["required"].([]any); ok {
		for _, r := range req {
			name, ok := r.(string)
			if !ok {
				continue
			}
			if _, declared := obj.Properties[name]; !declared {
				d.Warnf("%s: required property %q has no declaration", at, name)
				obj.Properties[name] = &schema.Any{}
			}
			obj.Require(name)
		}
	}
	// additionalProperties: the runtime always tolerates unknown keys so
	// responses can gain fields without breaking old clients; a schema-form
	// additionalProperties is noted but not enforced.
	if _, ok := m["additionalProperties"].(map[string]any); ok {
		d.Warnf("%s: additionalProperties schema treated as permissive", at)
	}
	return obj
}

func compileString(m map[string]any, at string, d *contract.Recorder) schema.Node {
	s := &schema.String{}
	if n, ok := intField(m, "minLength"); ok {
		s.MinLength = &n
	}
	if n, ok := intField(m, "maxLength"); ok {
		s.MaxLength = &n
	}
	if f, _ := m["format"].(string); f != "" {
		s.Format = f
		if !schema.KnownFormat(f) {
			d.Warnf("%s: format %q has no runtime check", at, f)
		}
	}
	return s
}

// intField reads a numeric schema facet that may arrive as float64 (JSON) or
// int (YAML).
func intField(m map[string]any, key string) (int, bool) {
	switch t := m[key].(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case int64:
		return int(t), true
	default:
		return 0, false
	}
}
