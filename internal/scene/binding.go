// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Binding, the by-name link from an object to an actor, and
// the enum codec the editor uses to present bindings as a pick list.
//
// Why a tagged value?
//
// Editors typically expose the binding as an enumerated property whose items
// are "None" followed by every actor name. Enumerated properties serialize as
// the item's position, which is meaningless to a runtime reading the exported
// file. Binding keeps the name and a validity flag together so any serializer
// can always emit the literal name, while EnumCodec still gives the editor its
// positional encoding.
package scene

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ActorNone is the reserved binding value meaning "not bound to any actor".
const ActorNone = "__NONE__"

// Binding is a weak reference from an object to an actor by name.
type Binding struct {
	Name  string
	Valid bool
}

// Unbound is the zero binding.
var Unbound = Binding{}

// Bind returns a binding to the named actor. The empty string and ActorNone
// both produce an unbound value.
func Bind(name string) Binding {
	if name == "" || name == ActorNone {
		return Unbound
	}
	return Binding{Name: name, Valid: true}
}

// IsNone reports whether the binding points at no actor.
func (b Binding) IsNone() bool {
	return !b.Valid || b.Name == "" || b.Name == ActorNone
}

// String returns the stored form of the binding: the actor name, or ActorNone.
func (b Binding) String() string {
	if b.IsNone() {
		return ActorNone
	}
	return b.Name
}

// Value returns the binding as a cty string, or a null string when unbound.
func (b Binding) Value() cty.Value {
	if b.IsNone() {
		return cty.NullVal(cty.String)
	}
	return cty.StringVal(b.Name)
}

// BindingFromValue converts a cty value back into a Binding. Null and unknown
// values are treated as unbound.
func BindingFromValue(v cty.Value) (Binding, error) {
	if v.IsNull() || !v.IsKnown() {
		return Unbound, nil
	}
	var name string
	if err := gocty.FromCtyValue(v, &name); err != nil {
		return Unbound, fmt.Errorf("binding must be a string: %w", err)
	}
	return Bind(name), nil
}

// EnumItem is one entry of the binding pick list.
type EnumItem struct {
	ID    string
	Label string
}

// EnumCodec maps bindings to and from the positional encoding used by an
// enumerated editor property. Position 0 is always ActorNone.
type EnumCodec struct {
	items []EnumItem
}

// NewEnumCodec builds a codec over the given pick list.
func NewEnumCodec(items []EnumItem) EnumCodec {
	return EnumCodec{items: items}
}

// Encode returns the position of the binding in the pick list. Duplicate ids
// encode to their first position. It reports false when the binding names an
// item that is not in the list.
func (c EnumCodec) Encode(b Binding) (int, bool) {
	id := b.String()
	for i, item := range c.items {
		if item.ID == id {
			return i, true
		}
	}
	return 0, false
}

// Decode returns the binding stored at position i.
func (c EnumCodec) Decode(i int) (Binding, bool) {
	if i < 0 || i >= len(c.items) {
		return Unbound, false
	}
	return Bind(c.items[i].ID), true
}
