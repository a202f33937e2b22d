// Package resolver turns an object's actor binding plus the actor registry into
// the object's live instancing state.
//
// Resolution is total and idempotent: every (object, registry) pair has a
// result, and resolving twice without an intervening mutation yields the same
// state.
package resolver

import (
	"context"

	"github.com/specialistvlad/conduit/internal/actor"
	"github.com/specialistvlad/conduit/internal/ctxlog"
	"github.com/specialistvlad/conduit/internal/scene"
)

// ResolvedState is the derived placeholder for one object.
type ResolvedState struct {
	HasPlaceholder bool
	Placeholder    scene.AssetRef
}

// None is the state of an object that shows no placeholder.
var None = ResolvedState{}

// Instancing converts the state into the object's live instancing fields.
func (s ResolvedState) Instancing() scene.Instancing {
	if !s.HasPlaceholder {
		return scene.NoInstancing
	}
	return scene.CollectionInstancing(s.Placeholder)
}

// Resolve computes the state for a binding. The first registry entry whose
// name matches decides; an unset placeholder or no match resolves to None.
func Resolve(b scene.Binding, reg *actor.Registry) ResolvedState {
	if b.IsNone() || reg == nil {
		return None
	}
	def, ok := reg.Lookup(b.Name)
	if !ok || def.Placeholder.IsZero() {
		return None
	}
	return ResolvedState{HasPlaceholder: true, Placeholder: def.Placeholder}
}

// Resolver resolves objects of one document against one registry.
type Resolver struct {
	doc *scene.Document
	reg *actor.Registry
}

// New binds a resolver to a document and its registry. A nil registry
// resolves every object to None.
func New(doc *scene.Document, reg *actor.Registry) *Resolver {
	return &Resolver{doc: doc, reg: reg}
}

// Resolve computes the state for one object without applying it.
func (r *Resolver) Resolve(o *scene.Object) ResolvedState {
	return Resolve(o.Actor(), r.reg)
}

// Update resolves one object and applies the result. It reports whether the
// object's instancing changed.
func (r *Resolver) Update(o *scene.Object) bool {
	return o.SetInstancing(r.Resolve(o).Instancing())
}

// RecomputeScope re-resolves every object in the document and returns how
// many changed.
func (r *Resolver) RecomputeScope(ctx context.Context) int {
	logger := ctxlog.FromContext(ctx)

	changed := 0
	for _, o := range r.doc.Objects() {
		if r.Update(o) {
			changed++
			logger.Debug("Object placeholder updated.", "object", o.Name, "actor", o.Actor().String(), "source", o.Instancing().Source)
		}
	}
	scope := ""
	if r.reg != nil {
		scope = r.reg.ScopeID()
	}
	logger.Debug("Scope recomputed.", "scope", scope, "objects", len(r.doc.Objects()), "changed", changed)
	return changed
}
