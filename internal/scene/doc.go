// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package scene provides the in-memory representation of an authored scene
// document: its objects, the collections they may instance, and the actor
// binding each object carries.
//
// # Core Concepts
//
//   - Document: The root container for one scene. It knows its name, whether it
//     is backed by a file on disk, and the export directory configured for it.
//
//   - Object: A node in the scene. Every object carries a Binding (a weak,
//     by-name reference to an actor) and live Instancing state (which
//     collection, if any, the editor draws in its place).
//
//   - Binding: A tagged value holding an actor name plus a validity flag. The
//     reserved sentinel ActorNone means "not bound". Bindings are never
//     rewritten when the actor registry changes; resolution recomputes the
//     instancing on demand.
//
//   - Instancing: The pair (kind, source) that always changes together. The
//     setters on Object refuse to produce a COLLECTION kind without a source.
//
// Why keep instancing and binding separate?
//
// The binding is authored data and is persisted as-is. Instancing is derived
// from the binding plus the registry and exists only to show a placeholder in
// the editor. Keeping them apart is what lets the export transaction clear the
// derived state, hand the exporter only the literal actor name, and put the
// derived state back afterwards.
package scene
