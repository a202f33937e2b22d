package export

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/specialistvlad/conduit/internal/ctxlog"
	"github.com/specialistvlad/conduit/internal/resolver"
	"github.com/specialistvlad/conduit/internal/scene"
	"github.com/specialistvlad/conduit/internal/workspace"
)

var (
	ErrDocumentNotSaved = errors.New("document must be saved before export")
	ErrExportInProgress = errors.New("an export is already running for this scope")
)

// ExporterError reports a failed exporter call. State was restored before it
// was returned.
type ExporterError struct {
	Path string
	Err  error
}

func (e *ExporterError) Error() string {
	return fmt.Sprintf("exporter failed for %s: %v", e.Path, e.Err)
}

func (e *ExporterError) Unwrap() error { return e.Err }

// Status is the outcome of an export.
type Status string

const (
	StatusFinished  Status = "FINISHED"
	StatusCancelled Status = "CANCELLED"
)

// Cancellation reasons.
const (
	ReasonDocumentNotSaved = "DocumentNotSaved"
	ReasonExportInProgress = "ExportInProgress"
	ReasonInvalidPath      = "InvalidPath"
	ReasonExporterFailure  = "ExporterFailure"
)

// Result describes a finished or cancelled export.
type Result struct {
	Status Status
	Reason string
	Path   string
	// Actors is the number of actor-bound objects that went through the
	// transaction.
	Actors int
}

// Option configures a Manager.
type Option func(*Manager)

// WithOptions replaces the exporter options. Custom properties are always
// included regardless of the value passed.
func WithOptions(opts Options) Option {
	return func(m *Manager) { m.opts = opts }
}

// WithExportDir sets the directory used when neither the caller nor the
// document names one.
func WithExportDir(dir string) Option {
	return func(m *Manager) { m.exportDir = dir }
}

// Manager runs export transactions. It is safe to share across workspaces;
// only one export per scope may be in flight at a time.
type Manager struct {
	exporter  Exporter
	opts      Options
	exportDir string

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewManager creates a manager delegating to exporter.
func NewManager(exporter Exporter, options ...Option) *Manager {
	m := &Manager{
		exporter: exporter,
		opts:     DefaultOptions(),
		inFlight: make(map[string]struct{}),
	}
	for _, opt := range options {
		opt(m)
	}
	m.opts.IncludeCustomProperties = true
	return m
}

// Options returns the options passed to the exporter.
func (m *Manager) Options() Options { return m.opts }

// snapshot is the pre-export state of one actor-bound object.
type snapshot struct {
	object  *scene.Object
	binding scene.Binding
	source  scene.AssetRef
}

// Export runs the transaction for ws. dir overrides the export directory when
// not empty. Cancellations return StatusCancelled with a reason and an error;
// exporter failures return StatusCancelled with an *ExporterError after the
// document has been restored.
func (m *Manager) Export(ctx context.Context, ws *workspace.Workspace, dir string) (Result, error) {
	ctx = ctxlog.With(ctx, "scope", ws.ScopeID())
	logger := ctxlog.FromContext(ctx)
	doc := ws.Document()

	if !doc.IsSaved() {
		logger.Warn("Scene must be saved first.", "scene", doc.Name)
		return Result{Status: StatusCancelled, Reason: ReasonDocumentNotSaved}, ErrDocumentNotSaved
	}

	path, err := OutputPath(doc, m.opts.Format, m.resolveDir(doc, dir))
	if err != nil {
		logger.Warn("Export path could not be composed.", "scene", doc.Name, "error", err)
		return Result{Status: StatusCancelled, Reason: ReasonInvalidPath}, err
	}

	if !m.begin(ws.ScopeID()) {
		logger.Warn("Export rejected, another export is running.", "scene", doc.Name)
		return Result{Status: StatusCancelled, Reason: ReasonExportInProgress}, ErrExportInProgress
	}
	defer m.end(ws.ScopeID())

	logger.Debug("Export transaction started.", "scene", doc.Name, "path", path, "format", m.opts.Format)

	snaps := snapshotAndClear(doc)
	defer restore(ctx, ws.Resolver(), snaps)
	logger.Debug("Bound objects snapshotted and cleared.", "actors", len(snaps))

	warnUnknownActors(ctx, ws, snaps)

	view := newView(doc, snaps)
	if err := m.delegate(ctx, path, view); err != nil {
		logger.Error("Exporter failed.", "path", path, "error", err)
		return Result{Status: StatusCancelled, Reason: ReasonExporterFailure, Path: path, Actors: len(snaps)}, &ExporterError{Path: path, Err: err}
	}

	logger.Info("Scene exported.", "scene", doc.Name, "path", path, "actors", len(snaps))
	return Result{Status: StatusFinished, Path: path, Actors: len(snaps)}, nil
}

// resolveDir picks the caller override, then the document's directory, then
// the manager default.
func (m *Manager) resolveDir(doc *scene.Document, override string) string {
	switch {
	case override != "":
		return override
	case doc.ExportDir != "":
		return doc.ExportDir
	default:
		return m.exportDir
	}
}

// delegate calls the exporter, turning a panic into an error so the caller's
// deferred restore has already run by the time the failure is reported.
func (m *Manager) delegate(ctx context.Context, path string, view *View) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("exporter panicked: %v", r)
		}
	}()
	return m.exporter.Export(ctx, path, m.opts, view)
}

func (m *Manager) begin(scope string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, busy := m.inFlight[scope]; busy {
		return false
	}
	m.inFlight[scope] = struct{}{}
	return true
}

func (m *Manager) end(scope string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inFlight, scope)
}

// snapshotAndClear records every bound object in document order, then clears
// its instancing.
func snapshotAndClear(doc *scene.Document) []snapshot {
	var snaps []snapshot
	for _, o := range doc.Objects() {
		if o.Actor().IsNone() {
			continue
		}
		snaps = append(snaps, snapshot{
			object:  o,
			binding: o.Actor(),
			source:  o.Instancing().Source,
		})
		o.SetInstancing(scene.NoInstancing)
	}
	return snaps
}

// restore puts every snapshotted object back in capture order. Objects that
// had no source are resolved afresh instead of being left empty.
func restore(ctx context.Context, res *resolver.Resolver, snaps []snapshot) {
	for _, s := range snaps {
		s.object.SetActor(s.binding)
		if s.source.IsZero() {
			res.Update(s.object)
		} else {
			s.object.SetInstancing(scene.CollectionInstancing(s.source))
		}
	}
	ctxlog.FromContext(ctx).Debug("Bound objects restored.", "actors", len(snaps))
}

func warnUnknownActors(ctx context.Context, ws *workspace.Workspace, snaps []snapshot) {
	logger := ctxlog.FromContext(ctx)
	for _, s := range snaps {
		if _, ok := ws.Registry().Lookup(s.binding.Name); !ok {
			logger.Warn("Object is bound to an unknown actor.", "object", s.object.Name, "actor", s.binding.Name)
		}
	}
}
