package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/specialistvlad/conduit/internal/ctxlog"
	"github.com/specialistvlad/conduit/internal/export"
	"github.com/specialistvlad/conduit/internal/scene"
	"github.com/specialistvlad/conduit/internal/workspace"
)

type commandSpec struct {
	usage   string
	summary string
	minArgs int
	maxArgs int
	run     func(a *App, ctx context.Context, args []string) error
}

// commands maps command names to their handlers.
var commands = map[string]commandSpec{
	"list":            {"no arguments", "Show actors and objects.", 0, 0, (*App).runList},
	"add":             {"no arguments", "Add an actor with a generated name.", 0, 0, (*App).runAdd},
	"remove":          {"INDEX", "Remove the actor at INDEX.", 1, 1, (*App).runRemove},
	"rename":          {"INDEX NAME", "Rename the actor at INDEX.", 2, 2, (*App).runRename},
	"select":          {"INDEX", "Select the actor at INDEX.", 1, 1, (*App).runSelect},
	"set-placeholder": {"INDEX [COLLECTION]", "Set or clear the placeholder of the actor at INDEX.", 1, 2, (*App).runSetPlaceholder},
	"bind":            {"OBJECT [ACTOR]", "Bind OBJECT to ACTOR, or unbind it.", 1, 2, (*App).runBind},
	"resolve":         {"no arguments", "Recompute every object's placeholder.", 0, 0, (*App).runResolve},
	"export":          {"no arguments", "Export the scene, or every scene under a directory.", 0, 0, (*App).runExport},
}

// CommandHelp returns one help line per command, in display order.
func CommandHelp() []string {
	order := []string{"list", "add", "remove", "rename", "select", "set-placeholder", "bind", "resolve", "export"}
	lines := make([]string, 0, len(order))
	for _, name := range order {
		c := commands[name]
		args := c.usage
		if c.maxArgs == 0 {
			args = ""
		}
		lines = append(lines, fmt.Sprintf("%-16s %-20s %s", name, args, c.summary))
	}
	return lines
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: index must be an integer, got %q", ErrUsage, s)
	}
	return i, nil
}

// openScene loads the configured scene file into a workspace.
func (a *App) openScene(ctx context.Context) (*workspace.Workspace, error) {
	doc, reg, err := a.loader.Load(ctx, a.config.ScenePath)
	if err != nil {
		return nil, err
	}
	return workspace.Open(ctx, doc, reg), nil
}

// editScene runs fn against the scene and saves it back in place.
func (a *App) editScene(ctx context.Context, fn func(ws *workspace.Workspace) (string, error)) error {
	ws, err := a.openScene(ctx)
	if err != nil {
		return err
	}
	defer ws.Close(ctx)

	msg, err := fn(ws)
	if err != nil {
		return err
	}
	if err := a.loader.Save(ctx, ws.Document(), ws.Registry(), ws.Document().Path()); err != nil {
		return err
	}
	fmt.Fprintln(a.outW, msg)
	return nil
}

func (a *App) runList(ctx context.Context, _ []string) error {
	ws, err := a.openScene(ctx)
	if err != nil {
		return err
	}
	defer ws.Close(ctx)

	listing := newListing(ws)
	if a.config.Output == OutputYAML {
		return listing.writeYAML(a.outW)
	}
	return listing.writeText(a.outW)
}

func (a *App) runAdd(ctx context.Context, _ []string) error {
	return a.editScene(ctx, func(ws *workspace.Workspace) (string, error) {
		ev, err := ws.AddActor(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Added actor %d: %s", ev.Index, ev.Name), nil
	})
}

func (a *App) runRemove(ctx context.Context, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	return a.editScene(ctx, func(ws *workspace.Workspace) (string, error) {
		ev, err := ws.RemoveActor(ctx, index)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Removed actor %d: %s", ev.Index, ev.Name), nil
	})
}

func (a *App) runRename(ctx context.Context, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	return a.editScene(ctx, func(ws *workspace.Workspace) (string, error) {
		ev, err := ws.RenameActor(ctx, index, args[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Renamed actor %d: %s -> %s", ev.Index, ev.Previous, ev.Name), nil
	})
}

func (a *App) runSelect(ctx context.Context, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	return a.editScene(ctx, func(ws *workspace.Workspace) (string, error) {
		ev, err := ws.SelectActor(ctx, index)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Selected actor %d: %s", ev.Index, ev.Name), nil
	})
}

func (a *App) runSetPlaceholder(ctx context.Context, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	var ref scene.AssetRef
	if len(args) > 1 {
		ref = scene.AssetRef(args[1])
	}
	return a.editScene(ctx, func(ws *workspace.Workspace) (string, error) {
		ev, err := ws.SetPlaceholder(ctx, index, ref)
		if err != nil {
			return "", err
		}
		if ref.IsZero() {
			return fmt.Sprintf("Cleared placeholder of actor %d: %s", ev.Index, ev.Name), nil
		}
		return fmt.Sprintf("Set placeholder of actor %d: %s -> %s", ev.Index, ev.Name, ref), nil
	})
}

func (a *App) runBind(ctx context.Context, args []string) error {
	actorName := ""
	if len(args) > 1 {
		actorName = args[1]
	}
	return a.editScene(ctx, func(ws *workspace.Workspace) (string, error) {
		if err := ws.Bind(ctx, args[0], actorName); err != nil {
			return "", err
		}
		o, _ := ws.Document().Object(args[0])
		if o.Actor().IsNone() {
			return fmt.Sprintf("Unbound %s", o.Name), nil
		}
		if _, ok := ws.Registry().Lookup(o.Actor().Name); !ok {
			ctxlog.FromContext(ctx).Warn("Object bound to an actor that is not in the registry.", "object", o.Name, "actor", o.Actor().Name)
		}
		return fmt.Sprintf("Bound %s -> %s", o.Name, o.Actor().Name), nil
	})
}

func (a *App) runResolve(ctx context.Context, _ []string) error {
	return a.editScene(ctx, func(ws *workspace.Workspace) (string, error) {
		changed, err := ws.Refresh(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Resolved %d objects, %d changed", len(ws.Document().Objects()), changed), nil
	})
}

func (a *App) runExport(ctx context.Context, _ []string) error {
	logger := ctxlog.FromContext(ctx)

	m, err := a.newManager()
	if err != nil {
		return err
	}
	scenes, err := a.loader.LoadAll(ctx, a.config.ScenePath)
	if err != nil {
		return err
	}
	if len(scenes) == 0 {
		logger.Warn("No scene files found, nothing to export.", "path", a.config.ScenePath)
		return nil
	}

	cancelled := 0
	for _, s := range scenes {
		ws := workspace.Open(ctx, s.Document, s.Registry)
		res, err := m.Export(ctx, ws, a.config.ExportDirOverride)
		ws.Close(ctx)
		if err != nil {
			cancelled++
			logger.Error("Scene not exported.", "scene", s.Document.Name, "file", s.Path, "reason", res.Reason, "error", err)
			fmt.Fprintf(a.outW, "%s\t%s\t%s\n", export.StatusCancelled, s.Document.Name, res.Reason)
			continue
		}
		fmt.Fprintf(a.outW, "%s\t%s\t%s\n", res.Status, s.Document.Name, res.Path)
	}

	if cancelled > 0 {
		return fmt.Errorf("%w: %d of %d scenes were not exported", ErrExportCancelled, cancelled, len(scenes))
	}
	return nil
}
