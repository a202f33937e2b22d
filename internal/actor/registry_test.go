package actor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/conduit/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardDoor(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry("scope-1")
	_, err := r.Insert(Definition{Name: "Guard", Placeholder: "C1"})
	require.NoError(t, err)
	_, err = r.Insert(Definition{Name: "Door"})
	require.NoError(t, err)
	return r
}

func TestAdd_GeneratesUniqueDefaultNames(t *testing.T) {
	r := NewRegistry("scope-1")

	ev := r.Add()
	assert.Equal(t, Event{Kind: EventAdded, Index: 0, Name: "Actor"}, ev)
	assert.False(t, ev.Recompute, "a new name cannot affect existing bindings")

	r.Add()
	r.Add()

	want := []Definition{{Name: "Actor"}, {Name: "Actor.001"}, {Name: "Actor.002"}}
	if diff := cmp.Diff(want, r.List()); diff != "" {
		t.Errorf("unexpected entries (-want +got):\n%s", diff)
	}
}

func TestRemove_OutOfRangeIsRejectedWithoutMutation(t *testing.T) {
	r := newGuardDoor(t)
	before := r.List()

	for _, index := range []int{-1, 2, 10} {
		_, err := r.Remove(index)
		require.ErrorIs(t, err, ErrInvalidRegistryIndex, "index %d", index)
	}
	assert.Equal(t, before, r.List())
}

func TestRemove_RequestsRecomputeAndClampsSelection(t *testing.T) {
	r := newGuardDoor(t)
	_, err := r.Select(1)
	require.NoError(t, err)

	ev, err := r.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, EventRemoved, ev.Kind)
	assert.Equal(t, "Door", ev.Name)
	assert.True(t, ev.Recompute)
	assert.Equal(t, 0, r.ActiveIndex())

	_, err = r.Remove(0)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
	_, ok := r.Active()
	assert.False(t, ok)
}

func TestSetPlaceholder(t *testing.T) {
	r := newGuardDoor(t)

	ev, err := r.SetPlaceholder(1, "DoorProxy")
	require.NoError(t, err)
	assert.Equal(t, Event{Kind: EventPlaceholderChanged, Index: 1, Name: "Door", Recompute: true}, ev)

	def, err := r.At(1)
	require.NoError(t, err)
	assert.Equal(t, scene.AssetRef("DoorProxy"), def.Placeholder)

	_, err = r.SetPlaceholder(5, "X")
	assert.ErrorIs(t, err, ErrInvalidRegistryIndex)
}

func TestRename(t *testing.T) {
	r := newGuardDoor(t)

	ev, err := r.Rename(0, "Sentry")
	require.NoError(t, err)
	assert.Equal(t, "Guard", ev.Previous)
	assert.True(t, ev.Recompute)

	ev, err = r.Rename(0, "Sentry")
	require.NoError(t, err)
	assert.False(t, ev.Recompute, "renaming to the same name changes nothing")

	_, err = r.Rename(0, scene.ActorNone)
	assert.ErrorIs(t, err, ErrReservedName)
	_, err = r.Rename(0, "")
	assert.ErrorIs(t, err, ErrReservedName)
	assert.Equal(t, "Sentry", r.List()[0].Name)
}

func TestLookup_FirstMatchWins(t *testing.T) {
	r := newGuardDoor(t)
	_, err := r.Insert(Definition{Name: "Guard", Placeholder: "C2"})
	require.NoError(t, err)

	def, ok := r.Lookup("Guard")
	require.True(t, ok)
	assert.Equal(t, scene.AssetRef("C1"), def.Placeholder)

	_, ok = r.Lookup("Ghost")
	assert.False(t, ok)
}

func TestItems_NoneComesFirst(t *testing.T) {
	r := newGuardDoor(t)

	want := []scene.EnumItem{
		{ID: scene.ActorNone, Label: "None"},
		{ID: "Guard", Label: "Guard"},
		{ID: "Door", Label: "Door"},
	}
	assert.Equal(t, want, r.Items())

	i, ok := r.Codec().Encode(scene.Bind("Door"))
	require.True(t, ok)
	assert.Equal(t, 2, i)
}

func TestInsert_RejectsUnbindableNames(t *testing.T) {
	r := NewRegistry("scope-1")
	for _, name := range []string{scene.ActorNone, ""} {
		_, err := r.Insert(Definition{Name: name})
		assert.ErrorIs(t, err, ErrReservedName, "name %q", name)
	}
	assert.Equal(t, 0, r.Len())
}
