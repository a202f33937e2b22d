package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/specialistvlad/conduit/internal/scene"
	"github.com/specialistvlad/conduit/internal/workspace"
	"gopkg.in/yaml.v3"
)

type actorRow struct {
	Index       int      `yaml:"index"`
	Name        string   `yaml:"name"`
	Placeholder string   `yaml:"placeholder,omitempty"`
	Active      bool     `yaml:"active"`
	Objects     []string `yaml:"objects,omitempty"`
}

type objectRow struct {
	Name               string `yaml:"name"`
	Type               string `yaml:"type"`
	Actor              string `yaml:"actor"`
	Known              bool   `yaml:"known"`
	InstanceType       string `yaml:"instance_type"`
	InstanceCollection string `yaml:"instance_collection,omitempty"`
}

// listing is the printable state of one scene.
type listing struct {
	Scene   string      `yaml:"scene"`
	Actors  []actorRow  `yaml:"actors"`
	Objects []objectRow `yaml:"objects"`
}

func newListing(ws *workspace.Workspace) listing {
	doc := ws.Document()
	reg := ws.Registry()

	l := listing{Scene: doc.Name, Actors: []actorRow{}, Objects: []objectRow{}}
	for i, def := range reg.List() {
		l.Actors = append(l.Actors, actorRow{
			Index:       i,
			Name:        def.Name,
			Placeholder: string(def.Placeholder),
			Active:      i == reg.ActiveIndex(),
		})
	}
	for _, o := range doc.Objects() {
		b := o.Actor()
		row := objectRow{
			Name:               o.Name,
			Type:               string(o.Type),
			Actor:              b.String(),
			InstanceType:       string(o.Instancing().Kind),
			InstanceCollection: string(o.Instancing().Source),
		}
		if !b.IsNone() {
			// First match wins, the same entry the resolver picks.
			if i := reg.IndexOf(b.Name); i >= 0 {
				row.Known = true
				l.Actors[i].Objects = append(l.Actors[i].Objects, o.Name)
			}
		}
		l.Objects = append(l.Objects, row)
	}
	return l
}

func (l listing) writeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("failed to encode listing: %w", err)
	}
	return enc.Close()
}

func (l listing) writeText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Scene: %s\n\n", l.Scene)

	fmt.Fprintln(tw, "\tINDEX\tACTOR\tPLACEHOLDER\tOBJECTS")
	for _, a := range l.Actors {
		marker := ""
		if a.Active {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\n", marker, a.Index, a.Name, orDash(a.Placeholder), len(a.Objects))
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "OBJECT\tTYPE\tACTOR\tINSTANCE")
	for _, o := range l.Objects {
		actorName := o.Actor
		if o.Actor == scene.ActorNone {
			actorName = "-"
		} else if !o.Known {
			actorName += " (unknown)"
		}
		instance := o.InstanceType
		if o.InstanceCollection != "" {
			instance += " " + o.InstanceCollection
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.Name, o.Type, actorName, instance)
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
