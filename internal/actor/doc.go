// Package actor provides the registry of named actor definitions for one
// scene document.
//
// An actor is a logical role ("Guard", "Door") that objects bind to by name.
// Each definition may point at a placeholder collection that the editor draws
// in place of bound objects. The Registry keeps definitions in authoring order;
// names are not required to be unique, and lookups return the first match.
//
// Mutations return an Event describing what changed. The registry never walks
// the document itself: whoever owns the registry decides, from Event.Recompute,
// whether bound objects need their placeholders re-resolved.
package actor
