package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/conduit/internal/actor"
	"github.com/specialistvlad/conduit/internal/ctxlog"
	"github.com/specialistvlad/conduit/internal/scene"
	"github.com/zclconf/go-cty/cty"
)

// Encode renders a document and its registry in the scene file format.
// Blocks are written in document order: scene, collections, actors, objects.
func Encode(doc *scene.Document, reg *actor.Registry) []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	sc := root.AppendNewBlock("scene", []string{doc.Name}).Body()
	if doc.ExportDir != "" {
		sc.SetAttributeValue("export_dir", cty.StringVal(doc.ExportDir))
	}
	if reg != nil && reg.Len() > 0 {
		sc.SetAttributeValue("active_actor", cty.NumberIntVal(int64(reg.ActiveIndex())))
	}

	for _, ref := range doc.Collections() {
		root.AppendNewline()
		root.AppendNewBlock("collection", []string{string(ref)})
	}

	if reg != nil {
		for _, def := range reg.List() {
			root.AppendNewline()
			body := root.AppendNewBlock("actor", []string{def.Name}).Body()
			if !def.Placeholder.IsZero() {
				body.SetAttributeValue("placeholder", cty.StringVal(string(def.Placeholder)))
			}
		}
	}

	for _, o := range doc.Objects() {
		root.AppendNewline()
		body := root.AppendNewBlock("object", []string{o.Name}).Body()
		body.SetAttributeValue("type", cty.StringVal(string(o.Type)))
		if b := o.Actor(); !b.IsNone() {
			body.SetAttributeValue("actor", b.Value())
		}
		if in := o.Instancing(); in.Kind != scene.InstanceNone {
			body.SetAttributeValue("instance_type", cty.StringVal(string(in.Kind)))
			body.SetAttributeValue("instance_collection", cty.StringVal(string(in.Source)))
		}
	}

	return hclwrite.Format(f.Bytes())
}

// Save writes the document to path and marks it saved there. The file is
// written to a sibling temp file first and renamed into place.
func (l *Loader) Save(ctx context.Context, doc *scene.Document, reg *actor.Registry, path string) error {
	logger := ctxlog.FromContext(ctx)

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve scene path %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(abs), "."+filepath.Base(abs)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(Encode(doc, reg)); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write scene file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write scene file %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), abs); err != nil {
		return fmt.Errorf("failed to replace scene file %s: %w", path, err)
	}

	doc.MarkSaved(abs)
	logger.Debug("HCL scene saved.", "scene", doc.Name, "path", abs)
	return nil
}
