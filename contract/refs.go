package contract

import (
	"fmt"
	"strings"
)

const schemaRefPrefix = "#/components/schemas/"

// resolveRefs expands every local $ref into components.schemas so that the
// rest of the pipeline never sees a reference. Every schema reachable from an
// endpoint must resolve to a finite, acyclic structure; a reference cycle or
// a dangling target is a fatal error, not a warning.
func resolveRefs(root map[string]any, d *Recorder) error {
	comps, _ := root["components"].(map[string]any)
	defs, _ := comps["schemas"].(map[string]any)

	r := &refResolver{defs: defs, d: d, state: map[string]int{}}

	// components first, so path-level substitution copies resolved trees
	for name := range defs {
		if _, err := r.resolveComponent(name); err != nil {
			return err
		}
	}
	if paths, ok := root["paths"].(map[string]any); ok {
		if err := r.resolveNode(paths); err != nil {
			return err
		}
	}
	return nil
}

// component resolution state
const (
	stateUnvisited = iota
	stateInProgress
	stateDone
)

type refResolver struct {
	defs  map[string]any
	d     *Recorder
	state map[string]int
}

func (r *refResolver) resolveComponent(name string) (map[string]any, error) {
	switch r.state[name] {
	case stateDone:
		m, _ := r.defs[name].(map[string]any)
		return m, nil
	case stateInProgress:
		return nil, fmt.Errorf("contract: cyclic $ref through components/schemas/%s", name)
	}
	m, ok := r.defs[name].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("contract: $ref to unknown components/schemas/%s", name)
	}
	r.state[name] = stateInProgress
	if err := r.resolveNode(m); err != nil {
		return nil, err
	}
	r.state[name] = stateDone
	return m, nil
}

// resolveNode walks any subtree, replacing $ref maps in place.
func (r *refResolver) resolveNode(node any) error {
	switch t := node.(type) {
	case map[string]any:
		if ref, ok := t["$ref"].(string); ok {
			resolved, err := r.resolveRefTarget(ref)
			if err != nil {
				return err
			}
			if resolved == nil {
				return nil
			}
			delete(t, "$ref")
			// merge resolved into the referencing node, preferring fields
			// spelled out at the reference site
			for k, v := range resolved {
				if _, exists := t[k]; !exists {
					t[k] = v
				}
			}
			// fields spelled out at the site may carry refs of their own
			for _, v := range t {
				if err := r.resolveNode(v); err != nil {
					return err
				}
			}
			return nil
		}
		for _, v := range t {
			if err := r.resolveNode(v); err != nil {
				return err
			}
		}
	case []any:
		for _, v := range t {
			if err := r.resolveNode(v); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveRefTarget resolves one $ref string. Unsupported reference forms are
// left in place with a warning; local schema references must resolve.
func (r *refResolver) resolveRefTarget(ref string) (map[string]any, error) {
	if !strings.HasPrefix(ref, schemaRefPrefix) {
		r.d.Warnf("$ref %q not supported (local components/schemas only)", ref)
		return nil, nil
	}
	name := strings.TrimPrefix(ref, schemaRefPrefix)
	resolved, err := r.resolveComponent(name)
	if err != nil {
		return nil, err
	}
	return deepCopyMap(resolved), nil
}

func deepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopyMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = deepCopyValue(t[i])
		}
		return arr
	default:
		return v
	}
}
