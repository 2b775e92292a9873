package schema

import (
	"sort"

	lockstep "github.com/hmizuno/lockstep"
)

// Package schema defines the structured validator model shared by the
// compiler, the reinforcer, the override layer and the renderers. One Node
// tree per named shape; transforms mutate the tree in place and the renderers
// serialize it exactly once at the end of a run.

// Kind identifies a node type.
type Kind int

const (
	KindAny Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

// Node is the root model interface. All nodes evaluate untyped JSON values
// and report failures as lockstep.Issues.
type Node interface {
	Kind() Kind
}

// Any accepts every value. Properties with no declared type compile to Any.
type Any struct{}

func (*Any) Kind() Kind { return KindAny }

// String validates string values with optional length and format constraints.
// Per-check messages override the i18n defaults when non-empty.
type String struct {
	MinLength *int
	MaxLength *int
	Format    string // "email", "date-time", ... empty means unconstrained

	MinMessage    string
	MaxMessage    string
	FormatMessage string
}

func (*String) Kind() Kind { return KindString }

// RejectsEmpty reports whether the node already fails the empty string on
// its own, either through a positive minimum length or a format check that
// carries a runtime implementation. A format name with no runtime check does
// not count: it accepts "" and still needs reinforcement.
func (s *String) RejectsEmpty() bool {
	if s.MinLength != nil && *s.MinLength >= 1 {
		return true
	}
	return s.Format != "" && KnownFormat(s.Format)
}

// Number validates JSON numbers.
type Number struct{}

func (*Number) Kind() Kind { return KindNumber }

// Bool validates booleans.
type Bool struct{}

func (*Bool) Kind() Kind { return KindBool }

// Object validates maps. Unknown keys are tolerated (structural subtyping);
// optional properties are skipped when absent.
type Object struct {
	Properties map[string]Node
	Required   map[string]struct{}
	// RequiredMessage overrides the default absence message per property.
	RequiredMessage map[string]string
}

func (*Object) Kind() Kind { return KindObject }

// NewObject returns an empty object node with initialized maps.
func NewObject() *Object {
	return &Object{
		Properties:      map[string]Node{},
		Required:        map[string]struct{}{},
		RequiredMessage: map[string]string{},
	}
}

// Require marks one or more properties as required.
func (o *Object) Require(names ...string) *Object {
	for _, n := range names {
		o.Required[n] = struct{}{}
	}
	return o
}

// IsRequired reports whether the property is in the required set.
func (o *Object) IsRequired(name string) bool {
	_, ok := o.Required[name]
	return ok
}

// SortedProperties returns property names in ascending order for
// deterministic iteration.
func (o *Object) SortedProperties() []string {
	ks := make([]string, 0, len(o.Properties))
	for k := range o.Properties {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

// SortedRequired returns required property names in ascending order.
func (o *Object) SortedRequired() []string {
	ks := make([]string, 0, len(o.Required))
	for k := range o.Required {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

// Names builds a required-set literal; generated code uses it to keep the
// rendered tables readable.
func Names(names ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}

// Array validates slices, applying Item to every element.
type Array struct {
	Item Node
}

func (*Array) Kind() Kind { return KindArray }

// Operation is one entry of the endpoint table: the contract operation plus
// the names of its request and per-status response validators.
type Operation struct {
	lockstep.Endpoint
	Request   string         // named validator for the request body; "" when none
	Responses map[int]string // HTTP status -> named validator
}

// Set is the complete universe compiled from one contract document: every
// named validator plus the endpoint table. Downstream stages assume the set
// is complete; no stage ever sees a partial one.
type Set struct {
	Validators map[string]Node
	Operations []Operation
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{Validators: map[string]Node{}}
}

// Names returns validator names in ascending order.
func (s *Set) Names() []string {
	ns := make([]string, 0, len(s.Validators))
	for n := range s.Validators {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}

// Lookup returns the named validator, or nil when absent.
func (s *Set) Lookup(name string) Node {
	return s.Validators[name]
}

// Endpoints returns the endpoint identity of every operation, in table order.
func (s *Set) Endpoints() []lockstep.Endpoint {
	eps := make([]lockstep.Endpoint, 0, len(s.Operations))
	for _, op := range s.Operations {
		eps = append(eps, op.Endpoint)
	}
	return eps
}
