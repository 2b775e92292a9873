package contract

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// LoadFile reads and parses the contract document at path. The file must
// already exist; this package never fetches or regenerates it. JSON and YAML
// are both accepted.
func LoadFile(path string) (*Document, Diag, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Recorder{}, fmt.Errorf("contract: reading %s: %w", path, err)
	}
	doc, diag, err := Parse(data)
	if err != nil {
		return nil, diag, fmt.Errorf("contract: %s: %w", path, err)
	}
	return doc, diag, nil
}

// Parse decodes a contract document from raw bytes and resolves every local
// schema reference. Parsing is all-or-nothing: any failure yields no
// Document at all, because downstream stages assume a complete universe.
func Parse(data []byte) (*Document, Diag, error) {
	d := &Recorder{}
	root, err := decodeAny(data)
	if err != nil {
		return nil, d, err
	}
	if root == nil {
		return nil, d, errors.New("document root is not an object")
	}
	if _, ok := root["paths"].(map[string]any); !ok {
		d.Warnf("document declares no paths")
	}
	if err := resolveRefs(root, d); err != nil {
		return nil, d, err
	}
	return &Document{root: root}, d, nil
}

// decodeAny sniffs JSON vs YAML. YAML-decoded trees are normalized to the
// JSON shape (map[string]any keys) so the rest of the pipeline sees a single
// representation.
func decodeAny(data []byte) (map[string]any, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var root map[string]any
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		return root, nil
	}
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return yamlAnyToStringMap(node), nil
}

// yamlAnyToStringMap converts YAML-decoded values (which may contain
// map[any]any) into JSON-like map[string]any recursively. Non-map roots
// return nil.
func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
