package contract

import (
	"sort"
	"strings"
)

// Package contract loads and indexes the machine-readable API description
// (an OpenAPI 3 document) that drives generation. The document is read-only
// to the rest of the pipeline and replaced in full on each run.

// methodOrder lists the HTTP methods recognized under a path item, in the
// order they are reported.
var methodOrder = []string{"get", "post", "put", "patch", "delete", "head", "options"}

// Document is a loaded contract with all local schema references expanded.
type Document struct {
	root map[string]any
}

// Root exposes the decoded document tree. Callers must not mutate it.
func (d *Document) Root() map[string]any { return d.root }

// Schemas returns components.schemas, keyed by component name. Every entry
// is fully resolved (no $ref remains).
func (d *Document) Schemas() map[string]map[string]any {
	comps, _ := d.root["components"].(map[string]any)
	raw, _ := comps["schemas"].(map[string]any)
	out := make(map[string]map[string]any, len(raw))
	for name, v := range raw {
		if m, ok := v.(map[string]any); ok {
			out[name] = m
		}
	}
	return out
}

// SchemaNames returns component schema names in ascending order.
func (d *Document) SchemaNames() []string {
	ss := d.Schemas()
	names := make([]string, 0, len(ss))
	for n := range ss {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// OperationSpec is one {method, path} operation as declared by the contract.
type OperationSpec struct {
	Method string // upper-case
	Path   string
	Spec   map[string]any // the raw operation object
}

// OperationID returns the declared operationId, or "".
func (o OperationSpec) OperationID() string {
	id, _ := o.Spec["operationId"].(string)
	return id
}

// RequestSchema returns the application/json request body schema, or nil
// when the operation declares no JSON body.
func (o OperationSpec) RequestSchema() map[string]any {
	body, _ := o.Spec["requestBody"].(map[string]any)
	return jsonContentSchema(body)
}

// ResponseSchemas returns the application/json response schemas keyed by
// HTTP status code. Non-numeric statuses such as "default" are skipped.
func (o OperationSpec) ResponseSchemas() map[int]map[string]any {
	rs, _ := o.Spec["responses"].(map[string]any)
	out := map[int]map[string]any{}
	for code, raw := range rs {
		status, ok := parseStatus(code)
		if !ok {
			continue
		}
		resp, _ := raw.(map[string]any)
		if sch := jsonContentSchema(resp); sch != nil {
			out[status] = sch
		}
	}
	return out
}

// Operations lists every operation under paths, sorted by path then by
// method order, so downstream stages iterate deterministically.
func (d *Document) Operations() []OperationSpec {
	paths, _ := d.root["paths"].(map[string]any)
	keys := make([]string, 0, len(paths))
	for p := range paths {
		keys = append(keys, p)
	}
	sort.Strings(keys)

	var ops []OperationSpec
	for _, p := range keys {
		item, _ := paths[p].(map[string]any)
		if item == nil {
			continue
		}
		for _, m := range methodOrder {
			op, ok := item[m].(map[string]any)
			if !ok {
				continue
			}
			ops = append(ops, OperationSpec{Method: strings.ToUpper(m), Path: p, Spec: op})
		}
	}
	return ops
}

// jsonContentSchema digs content["application/json"].schema out of a request
// body or response object.
func jsonContentSchema(node map[string]any) map[string]any {
	if node == nil {
		return nil
	}
	content, _ := node["content"].(map[string]any)
	media, _ := content["application/json"].(map[string]any)
	sch, _ := media["schema"].(map[string]any)
	return sch
}

func parseStatus(code string) (int, bool) {
	if len(code) != 3 {
		return 0, false
	}
	n := 0
	for _, c := range code {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
