package reinforce

import (
	"github.com/hmizuno/lockstep/schema"
)

// Package reinforce closes the gap between "required" (the contract's sense:
// must be present) and "non-empty" (the stricter guarantee form fields need,
// since a submitted-but-empty string passes a presence check but carries no
// input). The transform operates on the structured model, so it is total
// over the set: there is no declaration pattern to miss and no silent skip.

// Change records one reinforced property, for logging and tests.
type Change struct {
	Schema   string
	Property string
}

// Apply strengthens every required string property that does not already
// reject the empty string: it gains MinLength 1 and the message
// "<property> is required", also used when the property is absent. Existing
// thresholds, formats and messages are never altered, so reinforcement never
// weakens or duplicates a check. Required properties of non-string type only
// receive the absence message; emptiness has no meaning for them.
func Apply(set *schema.Set) []Change {
	var changes []Change
	for _, name := range set.Names() {
		obj, ok := set.Validators[name].(*schema.Object)
		if !ok {
			continue
		}
		changes = append(changes, reinforceObject(name, obj)...)
	}
	return changes
}

func reinforceObject(name string, obj *schema.Object) []Change {
	var changes []Change
	for _, prop := range obj.SortedRequired() {
		msg := prop + " is required"
		if obj.RequiredMessage[prop] == "" {
			obj.RequiredMessage[prop] = msg
		}
		s, ok := obj.Properties[prop].(*schema.String)
		if !ok {
			continue
		}
		if s.RejectsEmpty() {
			continue
		}
		one := 1
		s.MinLength = &one
		if s.MinMessage == "" {
			s.MinMessage = msg
		}
		changes = append(changes, Change{Schema: name, Property: prop})
	}
	// nested objects: a required list anywhere in the tree gets the same
	// treatment, matching the recursive structure of the model
	for _, prop := range obj.SortedProperties() {
		switch t := obj.Properties[prop].(type) {
		case *schema.Object:
			changes = append(changes, reinforceObject(name+"."+prop, t)...)
		case *schema.Array:
			if inner, ok := t.Item.(*schema.Object); ok {
				changes = append(changes, reinforceObject(name+"[]", inner)...)
			}
		}
	}
	return changes
}
