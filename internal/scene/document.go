// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Document, the root container of a scene.
//
// Why track the backing path?
//
// Export paths are composed relative to the document ("//" means "next to the
// scene file"), and exporting an unsaved document is refused. Both need to
// know whether, and where, the document lives on disk.
package scene

import (
	"errors"
	"fmt"
	"path/filepath"
)

var (
	ErrDuplicateObject     = errors.New("object already exists")
	ErrDuplicateCollection = errors.New("collection already exists")
)

// Document is one scene and everything it owns.
type Document struct {
	Name      string
	ExportDir string

	path        string
	objects     []*Object
	byName      map[string]*Object
	collections []AssetRef
}

// NewDocument creates an empty, unsaved document.
func NewDocument(name string) *Document {
	return &Document{
		Name:   name,
		byName: make(map[string]*Object),
	}
}

// Path returns the backing file, or "" for an unsaved document.
func (d *Document) Path() string { return d.path }

// IsSaved reports whether the document is backed by a file.
func (d *Document) IsSaved() bool { return d.path != "" }

// MarkSaved records the file the document now lives in.
func (d *Document) MarkSaved(path string) { d.path = path }

// Root returns the directory that "//" paths are relative to.
func (d *Document) Root() string {
	if d.path == "" {
		return ""
	}
	return filepath.Dir(d.path)
}

// AddObject appends an object. Names are unique within a document.
func (d *Document) AddObject(o *Object) error {
	if _, exists := d.byName[o.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateObject, o.Name)
	}
	d.objects = append(d.objects, o)
	d.byName[o.Name] = o
	return nil
}

// Object looks up an object by name.
func (d *Document) Object(name string) (*Object, bool) {
	o, ok := d.byName[name]
	return o, ok
}

// Objects returns the objects in document order.
func (d *Document) Objects() []*Object {
	out := make([]*Object, len(d.objects))
	copy(out, d.objects)
	return out
}

// AddCollection declares a collection that objects and actors may reference.
func (d *Document) AddCollection(ref AssetRef) error {
	if d.HasCollection(ref) {
		return fmt.Errorf("%w: %q", ErrDuplicateCollection, ref)
	}
	d.collections = append(d.collections, ref)
	return nil
}

// HasCollection reports whether ref names a declared collection.
func (d *Document) HasCollection(ref AssetRef) bool {
	for _, c := range d.collections {
		if c == ref {
			return true
		}
	}
	return false
}

// Collections returns the declared collections in order.
func (d *Document) Collections() []AssetRef {
	out := make([]AssetRef, len(d.collections))
	copy(out, d.collections)
	return out
}
