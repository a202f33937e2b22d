// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Object and its live instancing state.
//
// Why can't kind and source be set separately?
//
// A COLLECTION instance without a source collection is an invalid state that
// the editor would still try to draw. Instancing travels as one value and the
// only setter normalizes it, so no caller can observe a half-applied change.
package scene

import "fmt"

// ObjectType is the kind of scene node.
type ObjectType string

const (
	ObjectEmpty  ObjectType = "EMPTY"
	ObjectMesh   ObjectType = "MESH"
	ObjectCamera ObjectType = "CAMERA"
	ObjectLight  ObjectType = "LIGHT"
)

// ParseObjectType validates a stored object type.
func ParseObjectType(s string) (ObjectType, error) {
	switch t := ObjectType(s); t {
	case ObjectEmpty, ObjectMesh, ObjectCamera, ObjectLight:
		return t, nil
	}
	return "", fmt.Errorf("unsupported object type %q", s)
}

// InstanceKind says what, if anything, an object instances.
type InstanceKind string

const (
	InstanceNone       InstanceKind = "NONE"
	InstanceCollection InstanceKind = "COLLECTION"
)

// ParseInstanceKind validates a stored instance kind.
func ParseInstanceKind(s string) (InstanceKind, error) {
	switch k := InstanceKind(s); k {
	case InstanceNone, InstanceCollection:
		return k, nil
	case "":
		return InstanceNone, nil
	}
	return "", fmt.Errorf("unsupported instance type %q", s)
}

// AssetRef names a collection in the document. The empty ref means "none".
type AssetRef string

// IsZero reports whether the ref points at nothing.
func (r AssetRef) IsZero() bool { return r == "" }

// Instancing is the live instancing state of an object.
type Instancing struct {
	Kind   InstanceKind
	Source AssetRef
}

// NoInstancing is the state of an object that instances nothing.
var NoInstancing = Instancing{Kind: InstanceNone}

// CollectionInstancing returns the state of an object instancing src. An empty
// src yields NoInstancing.
func CollectionInstancing(src AssetRef) Instancing {
	if src.IsZero() {
		return NoInstancing
	}
	return Instancing{Kind: InstanceCollection, Source: src}
}

// normalize folds any mismatched pair into a valid one.
func (in Instancing) normalize() Instancing {
	if in.Kind != InstanceCollection || in.Source.IsZero() {
		return NoInstancing
	}
	return in
}

// Object is a single node of a scene document.
type Object struct {
	Name string
	Type ObjectType

	actor      Binding
	instancing Instancing
}

// NewObject creates an unbound object that instances nothing.
func NewObject(name string, typ ObjectType) *Object {
	if typ == "" {
		typ = ObjectEmpty
	}
	return &Object{
		Name:       name,
		Type:       typ,
		instancing: NoInstancing,
	}
}

// Actor returns the object's binding.
func (o *Object) Actor() Binding { return o.actor }

// SetActor replaces the object's binding. It does not touch instancing;
// callers recompute through the resolver.
func (o *Object) SetActor(b Binding) { o.actor = b }

// Instancing returns the object's live instancing state.
func (o *Object) Instancing() Instancing { return o.instancing }

// SetInstancing applies kind and source together. It reports whether the
// stored state changed.
func (o *Object) SetInstancing(in Instancing) bool {
	in = in.normalize()
	if o.instancing == in {
		return false
	}
	o.instancing = in
	return true
}

// ShowsBinding reports whether the editor offers the actor picker for this
// object. Only empties carry it in the object panel; bindings on other types
// are still honored.
func (o *Object) ShowsBinding() bool {
	return o.Type == ObjectEmpty
}
