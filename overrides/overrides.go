package overrides

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hmizuno/lockstep/schema"
	"gopkg.in/yaml.v3"
)

// Package overrides layers hand-authored validation copy on top of the
// compiled-and-reinforced validator set. The catalog is never generated;
// every entry is written by a person and cross-checked against the current
// contract on each run, so a dangling entry fails generation instead of
// going silently stale.

// Entry overrides the user-facing message for one property and, optionally,
// tightens its minimum length beyond what the contract implies.
type Entry struct {
	Message   string `yaml:"message"`
	MinLength *int   `yaml:"minLength"`
}

// Catalog maps validator name -> property name -> override.
type Catalog map[string]map[string]Entry

// LoadFile reads a YAML catalog. A missing file is a fatal error; run
// generation without --overrides to skip the layer entirely.
func LoadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("overrides: reading %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("overrides: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}

// Apply writes every override into the set. Each entry must reference a
// property that exists in the corresponding named validator; any dangling
// reference fails the whole application with every offender listed.
func (c Catalog) Apply(set *schema.Set) error {
	var dangling []string

	names := make([]string, 0, len(c))
	for n := range c {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, name := range names {
		obj, ok := set.Validators[name].(*schema.Object)
		if !ok {
			dangling = append(dangling, name)
			continue
		}
		props := make([]string, 0, len(c[name]))
		for p := range c[name] {
			props = append(props, p)
		}
		sort.Strings(props)
		for _, prop := range props {
			node, ok := obj.Properties[prop]
			if !ok {
				dangling = append(dangling, name+"."+prop)
				continue
			}
			applyEntry(obj, prop, node, c[name][prop])
		}
	}
	if len(dangling) > 0 {
		return fmt.Errorf("overrides: dangling entries (contract no longer declares them): %s",
			strings.Join(dangling, ", "))
	}
	return nil
}

func applyEntry(obj *schema.Object, prop string, node schema.Node, e Entry) {
	if e.Message != "" && obj.IsRequired(prop) {
		obj.RequiredMessage[prop] = e.Message
	}
	s, ok := node.(*schema.String)
	if !ok {
		return
	}
	if e.MinLength != nil {
		// overrides only ever tighten; a weaker minimum is ignored
		if s.MinLength == nil || *e.MinLength > *s.MinLength {
			v := *e.MinLength
			s.MinLength = &v
		}
	}
	if e.Message != "" {
		s.MinMessage = e.Message
		if s.Format != "" {
			s.FormatMessage = e.Message
		}
	}
}
