package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/conduit/internal/actor"
	"github.com/specialistvlad/conduit/internal/bggoexpr"
	"github.com/specialistvlad/conduit/internal/bggohcl"
	"github.com/specialistvlad/conduit/internal/ctxlog"
	"github.com/specialistvlad/conduit/internal/fsutil"
	"github.com/specialistvlad/conduit/internal/scene"
)

// Loader reads and writes scene documents stored as HCL.
type Loader struct{}

// NewLoader creates a new HCL scene loader.
func NewLoader() *Loader {
	return &Loader{}
}

// documentSchema lists every top-level block a scene file may contain.
var documentSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "scene", LabelNames: []string{"name"}},
		{Type: "collection", LabelNames: []string{"name"}},
		{Type: "actor", LabelNames: []string{"name"}},
		{Type: "object", LabelNames: []string{"name"}},
	},
}

type hclScene struct {
	ExportDir   *string `hcl:"export_dir,optional"`
	ActiveActor *int    `hcl:"active_actor,optional"`
}

type hclCollection struct{}

type hclActor struct {
	Placeholder *string `hcl:"placeholder,optional"`
}

type hclObject struct {
	Type               *string        `hcl:"type,optional"`
	Actor              hcl.Expression `hcl:"actor,optional"`
	InstanceType       *string        `hcl:"instance_type,optional"`
	InstanceCollection *string        `hcl:"instance_collection,optional"`
}

// Load parses a single scene file into a saved document and its registry.
// Stored instancing is kept exactly as written.
func (l *Loader) Load(ctx context.Context, path string) (*scene.Document, *actor.Registry, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL scene loader started.", "path", path)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve scene path %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(abs)
	if diags.HasErrors() {
		return nil, nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	content, diags := file.Body.Content(documentSchema)
	if diags.HasErrors() {
		return nil, nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	doc, reg, diags := l.translate(ctx, content, file.Body.MissingItemRange())
	if diags.HasErrors() {
		return nil, nil, fmt.Errorf("invalid scene file %s: %w", path, diags)
	}
	doc.MarkSaved(abs)

	logger.Debug("HCL scene loaded.", "scene", doc.Name, "collections", len(doc.Collections()), "actors", reg.Len(), "objects", len(doc.Objects()))
	return doc, reg, nil
}

func (l *Loader) translate(ctx context.Context, content *hcl.BodyContent, fileRange hcl.Range) (*scene.Document, *actor.Registry, hcl.Diagnostics) {
	var allDiags hcl.Diagnostics

	sceneBlock, diags := bggohcl.RequireUniqueBlock(content.Blocks, "scene", fileRange)
	allDiags = append(allDiags, diags...)
	if diags.HasErrors() {
		return nil, nil, allDiags
	}

	doc, active, diags := translateScene(sceneBlock)
	allDiags = append(allDiags, diags...)
	if diags.HasErrors() {
		return nil, nil, allDiags
	}

	// Collections first: actors and objects reference them.
	for _, block := range content.Blocks.OfType("collection") {
		allDiags = append(allDiags, translateCollection(doc, block)...)
	}

	reg := actor.NewRegistry(uuid.NewString())
	for _, block := range content.Blocks.OfType("actor") {
		allDiags = append(allDiags, translateActor(doc, reg, block)...)
	}

	for _, block := range content.Blocks.OfType("object") {
		allDiags = append(allDiags, translateObject(ctx, doc, block)...)
	}

	if reg.Len() > 0 {
		if _, err := reg.Select(active); err != nil {
			ctxlog.FromContext(ctx).Warn("Stored active actor is out of range, keeping the first actor selected.", "active_actor", active, "actors", reg.Len())
		}
	}

	return doc, reg, allDiags
}

func translateScene(block *hcl.Block) (*scene.Document, int, hcl.Diagnostics) {
	var hs hclScene
	diags := gohcl.DecodeBody(block.Body, nil, &hs)
	if diags.HasErrors() {
		return nil, 0, diags
	}
	name := block.Labels[0]
	if name == "" {
		return nil, 0, append(diags, bggohcl.ErrorDiag("Invalid scene name", "The scene block label must not be empty.", &block.LabelRanges[0]))
	}

	doc := scene.NewDocument(name)
	if hs.ExportDir != nil {
		doc.ExportDir = *hs.ExportDir
	}
	active := 0
	if hs.ActiveActor != nil {
		active = *hs.ActiveActor
	}
	return doc, active, diags
}

func translateCollection(doc *scene.Document, block *hcl.Block) hcl.Diagnostics {
	var hc hclCollection
	diags := gohcl.DecodeBody(block.Body, nil, &hc)
	if diags.HasErrors() {
		return diags
	}
	if err := doc.AddCollection(scene.AssetRef(block.Labels[0])); err != nil {
		diags = append(diags, bggohcl.ErrorDiag("Duplicate collection", err.Error(), &block.DefRange))
	}
	return diags
}

func translateActor(doc *scene.Document, reg *actor.Registry, block *hcl.Block) hcl.Diagnostics {
	var ha hclActor
	diags := gohcl.DecodeBody(block.Body, nil, &ha)
	if diags.HasErrors() {
		return diags
	}

	def := actor.Definition{Name: block.Labels[0]}
	if ha.Placeholder != nil && *ha.Placeholder != "" {
		ref := scene.AssetRef(*ha.Placeholder)
		if !doc.HasCollection(ref) {
			return append(diags, bggohcl.ErrorDiag(
				"Unknown placeholder collection",
				fmt.Sprintf("Actor %q references collection %q, which is not declared in this scene.", def.Name, ref),
				&block.DefRange,
			))
		}
		def.Placeholder = ref
	}

	if _, err := reg.Insert(def); err != nil {
		diags = append(diags, bggohcl.ErrorDiag("Invalid actor name", err.Error(), &block.LabelRanges[0]))
	}
	return diags
}

func translateObject(ctx context.Context, doc *scene.Document, block *hcl.Block) hcl.Diagnostics {
	var ho hclObject
	diags := gohcl.DecodeBody(block.Body, nil, &ho)
	if diags.HasErrors() {
		return diags
	}

	typ := scene.ObjectEmpty
	if ho.Type != nil {
		parsed, err := scene.ParseObjectType(*ho.Type)
		if err != nil {
			return append(diags, bggohcl.ErrorDiag("Invalid object type", err.Error(), &block.DefRange))
		}
		typ = parsed
	}
	o := scene.NewObject(block.Labels[0], typ)

	if isExprDefined(ctx, ho.Actor, "actor") {
		if litDiags := bggoexpr.RequireLiteral(ho.Actor, "actor"); litDiags.HasErrors() {
			return append(diags, litDiags...)
		}
		val, valDiags := ho.Actor.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			return diags
		}
		binding, err := scene.BindingFromValue(val)
		if err != nil {
			return append(diags, bggohcl.ErrorDiag("Invalid actor binding", err.Error(), ho.Actor.Range().Ptr()))
		}
		o.SetActor(binding)
	}

	kind := scene.InstanceNone
	if ho.InstanceType != nil {
		parsed, err := scene.ParseInstanceKind(*ho.InstanceType)
		if err != nil {
			return append(diags, bggohcl.ErrorDiag("Invalid instance type", err.Error(), &block.DefRange))
		}
		kind = parsed
	}
	var source scene.AssetRef
	if ho.InstanceCollection != nil {
		source = scene.AssetRef(*ho.InstanceCollection)
		if !source.IsZero() && !doc.HasCollection(source) {
			return append(diags, bggohcl.ErrorDiag(
				"Unknown instance collection",
				fmt.Sprintf("Object %q instances collection %q, which is not declared in this scene.", o.Name, source),
				&block.DefRange,
			))
		}
	}
	o.SetInstancing(scene.Instancing{Kind: kind, Source: source})

	if err := doc.AddObject(o); err != nil {
		diags = append(diags, bggohcl.ErrorDiag("Duplicate object", err.Error(), &block.DefRange))
	}
	return diags
}

// SceneExtension is the suffix LoadAll looks for when walking a directory.
const SceneExtension = ".scene.hcl"

// LoadedScene is one file returned by LoadAll.
type LoadedScene struct {
	Path     string
	Document *scene.Document
	Registry *actor.Registry
}

// LoadAll loads a single scene file, or every scene file under a directory.
// Files are returned in walk order; the first failure stops the walk.
func (l *Loader) LoadAll(ctx context.Context, root string) ([]LoadedScene, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat scene path %s: %w", root, err)
	}

	paths := []string{root}
	if info.IsDir() {
		paths, err = fsutil.FindFilesByExtension(root, SceneExtension)
		if err != nil {
			return nil, fmt.Errorf("failed to find scene files in %s: %w", root, err)
		}
		logger.Debug("Found scene files.", "root", root, "count", len(paths))
	}

	scenes := make([]LoadedScene, 0, len(paths))
	for _, p := range paths {
		doc, reg, err := l.Load(ctx, p)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, LoadedScene{Path: doc.Path(), Document: doc, Registry: reg})
	}
	return scenes, nil
}
