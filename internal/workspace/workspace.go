// Package workspace provides the per-document context object that owns a scene,
// its actor registry and the resolver binding the two. A Workspace is opened
// when a document is loaded and closed when it is released; nothing here is
// process-global.
//
// Every registry mutation goes through the workspace, which inspects the
// returned actor.Event and recomputes placeholders when the event asks for it.
package workspace

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/specialistvlad/conduit/internal/actor"
	"github.com/specialistvlad/conduit/internal/ctxlog"
	"github.com/specialistvlad/conduit/internal/resolver"
	"github.com/specialistvlad/conduit/internal/scene"
)

var (
	ErrClosed            = errors.New("workspace is closed")
	ErrUnknownObject     = errors.New("unknown object")
	ErrUnknownCollection = errors.New("unknown collection")
)

// Workspace is the context object for one open document.
type Workspace struct {
	doc    *scene.Document
	reg    *actor.Registry
	res    *resolver.Resolver
	closed bool
}

// Open wires a document and its registry together. A nil registry is
// replaced by an empty one with a fresh scope id. Stored instancing is kept
// as-is; call Refresh to re-derive it.
func Open(ctx context.Context, doc *scene.Document, reg *actor.Registry) *Workspace {
	if reg == nil {
		reg = actor.NewRegistry(uuid.NewString())
	}
	ctxlog.FromContext(ctx).Debug("Workspace opened.", "scene", doc.Name, "scope", reg.ScopeID(), "actors", reg.Len(), "objects", len(doc.Objects()))
	return &Workspace{
		doc: doc,
		reg: reg,
		res: resolver.New(doc, reg),
	}
}

// Document returns the open document.
func (w *Workspace) Document() *scene.Document { return w.doc }

// Registry returns the document's actor registry.
func (w *Workspace) Registry() *actor.Registry { return w.reg }

// Resolver returns the resolver bound to this document and registry.
func (w *Workspace) Resolver() *resolver.Resolver { return w.res }

// ScopeID identifies the workspace's registry scope.
func (w *Workspace) ScopeID() string { return w.reg.ScopeID() }

// Close releases the workspace. Further mutations fail with ErrClosed.
func (w *Workspace) Close(ctx context.Context) error {
	if w.closed {
		return ErrClosed
	}
	w.closed = true
	ctxlog.FromContext(ctx).Debug("Workspace closed.", "scope", w.ScopeID())
	return nil
}

// Handle reacts to a registry event, recomputing placeholders when needed.
// It returns the number of objects whose instancing changed.
func (w *Workspace) Handle(ctx context.Context, ev actor.Event) int {
	if !ev.Recompute {
		return 0
	}
	ctxlog.FromContext(ctx).Debug("Registry changed, recomputing.", "event", ev.Kind.String(), "index", ev.Index, "name", ev.Name)
	return w.res.RecomputeScope(ctx)
}

// Refresh re-resolves every object in the document.
func (w *Workspace) Refresh(ctx context.Context) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	return w.res.RecomputeScope(ctx), nil
}

// AddActor appends a new actor with a generated name.
func (w *Workspace) AddActor(ctx context.Context) (actor.Event, error) {
	if w.closed {
		return actor.Event{}, ErrClosed
	}
	ev := w.reg.Add()
	w.Handle(ctx, ev)
	return ev, nil
}

// RemoveActor deletes the actor at index.
func (w *Workspace) RemoveActor(ctx context.Context, index int) (actor.Event, error) {
	return w.mutate(ctx, func() (actor.Event, error) { return w.reg.Remove(index) })
}

// RenameActor renames the actor at index.
func (w *Workspace) RenameActor(ctx context.Context, index int, name string) (actor.Event, error) {
	return w.mutate(ctx, func() (actor.Event, error) { return w.reg.Rename(index, name) })
}

// SelectActor moves the registry selection.
func (w *Workspace) SelectActor(ctx context.Context, index int) (actor.Event, error) {
	return w.mutate(ctx, func() (actor.Event, error) { return w.reg.Select(index) })
}

// SetPlaceholder points the actor at index to a collection declared in the
// document. The empty ref clears the placeholder.
func (w *Workspace) SetPlaceholder(ctx context.Context, index int, ref scene.AssetRef) (actor.Event, error) {
	if w.closed {
		return actor.Event{}, ErrClosed
	}
	if !ref.IsZero() && !w.doc.HasCollection(ref) {
		return actor.Event{}, fmt.Errorf("%w: %q", ErrUnknownCollection, ref)
	}
	return w.mutate(ctx, func() (actor.Event, error) { return w.reg.SetPlaceholder(index, ref) })
}

// Bind sets an object's actor binding and recomputes the scope.
func (w *Workspace) Bind(ctx context.Context, objectName, actorName string) error {
	if w.closed {
		return ErrClosed
	}
	o, ok := w.doc.Object(objectName)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownObject, objectName)
	}
	o.SetActor(scene.Bind(actorName))
	ctxlog.FromContext(ctx).Debug("Object binding changed.", "object", objectName, "actor", o.Actor().String())
	w.res.RecomputeScope(ctx)
	return nil
}

func (w *Workspace) mutate(ctx context.Context, fn func() (actor.Event, error)) (actor.Event, error) {
	if w.closed {
		return actor.Event{}, ErrClosed
	}
	ev, err := fn()
	if err != nil {
		return actor.Event{}, err
	}
	w.Handle(ctx, ev)
	return ev, nil
}
