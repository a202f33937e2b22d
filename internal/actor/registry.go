package actor

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/conduit/internal/scene"
)

var (
	ErrInvalidRegistryIndex = errors.New("invalid registry index")
	ErrReservedName         = errors.New("actor name is reserved")
)

// DefaultName is the base for auto-generated actor names.
const DefaultName = "Actor"

// Definition maps an actor name to an optional placeholder collection.
type Definition struct {
	Name        string
	Placeholder scene.AssetRef
}

// Registry is the ordered set of actor definitions for one scope.
type Registry struct {
	scopeID string
	entries []Definition
	active  int
}

// NewRegistry creates an empty registry for the given scope.
func NewRegistry(scopeID string) *Registry {
	return &Registry{scopeID: scopeID}
}

// ScopeID identifies the document or session the registry belongs to.
func (r *Registry) ScopeID() string { return r.scopeID }

// Len returns the number of entries.
func (r *Registry) Len() int { return len(r.entries) }

// Add appends an entry with a generated name and no placeholder. A brand-new
// name cannot be referenced by existing bindings, so no recompute is needed.
func (r *Registry) Add() Event {
	name := nextFreeName(r.names(), DefaultName)
	r.entries = append(r.entries, Definition{Name: name})
	return Event{Kind: EventAdded, Index: len(r.entries) - 1, Name: name}
}

// Insert appends a fully specified entry. Loading a stored document uses it;
// since the name may already be bound, the event requests a recompute.
func (r *Registry) Insert(def Definition) (Event, error) {
	if err := checkName(def.Name); err != nil {
		return Event{}, err
	}
	r.entries = append(r.entries, def)
	return Event{Kind: EventAdded, Index: len(r.entries) - 1, Name: def.Name, Recompute: true}, nil
}

// Remove deletes the entry at index. Objects bound to its name keep their
// stored binding and resolve to no placeholder on the next recompute.
func (r *Registry) Remove(index int) (Event, error) {
	if err := r.checkIndex(index); err != nil {
		return Event{}, err
	}
	removed := r.entries[index]
	r.entries = append(r.entries[:index], r.entries[index+1:]...)
	if r.active >= len(r.entries) && len(r.entries) > 0 {
		r.active = len(r.entries) - 1
	}
	if len(r.entries) == 0 {
		r.active = 0
	}
	return Event{Kind: EventRemoved, Index: index, Name: removed.Name, Recompute: true}, nil
}

// Rename changes the name of the entry at index in place.
func (r *Registry) Rename(index int, name string) (Event, error) {
	if err := r.checkIndex(index); err != nil {
		return Event{}, err
	}
	if err := checkName(name); err != nil {
		return Event{}, err
	}
	prev := r.entries[index].Name
	r.entries[index].Name = name
	return Event{Kind: EventRenamed, Index: index, Name: name, Previous: prev, Recompute: prev != name}, nil
}

// SetPlaceholder updates one entry's placeholder. Every object bound to the
// entry's name changes its resolved state, so the event requests a recompute.
func (r *Registry) SetPlaceholder(index int, ref scene.AssetRef) (Event, error) {
	if err := r.checkIndex(index); err != nil {
		return Event{}, err
	}
	r.entries[index].Placeholder = ref
	return Event{Kind: EventPlaceholderChanged, Index: index, Name: r.entries[index].Name, Recompute: true}, nil
}

// Select moves the UI selection.
func (r *Registry) Select(index int) (Event, error) {
	if err := r.checkIndex(index); err != nil {
		return Event{}, err
	}
	r.active = index
	return Event{Kind: EventSelected, Index: index, Name: r.entries[index].Name}, nil
}

// ActiveIndex returns the current UI selection.
func (r *Registry) ActiveIndex() int { return r.active }

// Active returns the selected entry, if the selection is in range.
func (r *Registry) Active() (Definition, bool) {
	if r.active < 0 || r.active >= len(r.entries) {
		return Definition{}, false
	}
	return r.entries[r.active], true
}

// At returns the entry at index.
func (r *Registry) At(index int) (Definition, error) {
	if err := r.checkIndex(index); err != nil {
		return Definition{}, err
	}
	return r.entries[index], nil
}

// List returns a copy of the entries in order.
func (r *Registry) List() []Definition {
	out := make([]Definition, len(r.entries))
	copy(out, r.entries)
	return out
}

// Lookup returns the first entry with the given name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	if i := r.IndexOf(name); i >= 0 {
		return r.entries[i], true
	}
	return Definition{}, false
}

// IndexOf returns the position of the first entry with the given name, or -1.
func (r *Registry) IndexOf(name string) int {
	for i, e := range r.entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// Items returns the binding pick list: None first, then every entry name.
func (r *Registry) Items() []scene.EnumItem {
	items := make([]scene.EnumItem, 0, len(r.entries)+1)
	items = append(items, scene.EnumItem{ID: scene.ActorNone, Label: "None"})
	for _, e := range r.entries {
		items = append(items, scene.EnumItem{ID: e.Name, Label: e.Name})
	}
	return items
}

// Codec returns the positional codec for the current pick list.
func (r *Registry) Codec() scene.EnumCodec {
	return scene.NewEnumCodec(r.Items())
}

func (r *Registry) checkIndex(index int) error {
	if index < 0 || index >= len(r.entries) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidRegistryIndex, index, len(r.entries))
	}
	return nil
}

// checkName rejects the names a binding can never resolve to: the None
// sentinel and the empty string, which both mean unbound.
func checkName(name string) error {
	if name == "" || name == scene.ActorNone {
		return fmt.Errorf("%w: %q", ErrReservedName, name)
	}
	return nil
}

func (r *Registry) names() map[string]struct{} {
	names := make(map[string]struct{}, len(r.entries))
	for _, e := range r.entries {
		names[e.Name] = struct{}{}
	}
	return names
}
