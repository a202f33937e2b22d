package export

import (
	"fmt"

	"github.com/specialistvlad/conduit/internal/scene"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// PropertyActor is the custom property key that carries the actor name into
// the exported file.
const PropertyActor = "conduit_actor"

// Node is one object as the exporter sees it.
type Node struct {
	Name       string
	Type       scene.ObjectType
	Instancing scene.Instancing
	// Extras holds the node's custom properties as a cty object.
	Extras cty.Value
}

// Actor returns the literal actor name carried by the node, if any.
func (n Node) Actor() (string, bool) {
	if !n.Extras.Type().IsObjectType() || !n.Extras.Type().HasAttribute(PropertyActor) {
		return "", false
	}
	v := n.Extras.GetAttr(PropertyActor)
	if v.IsNull() || v.Type() != cty.String {
		return "", false
	}
	return v.AsString(), true
}

// View is the serialization adapter handed to an exporter. It reads the
// document's live state, and always carries bindings as their literal names,
// never as positional enum values.
type View struct {
	doc      *scene.Document
	literals map[*scene.Object]string
}

func newView(doc *scene.Document, snaps []snapshot) *View {
	literals := make(map[*scene.Object]string, len(snaps))
	for _, s := range snaps {
		literals[s.object] = s.binding.String()
	}
	return &View{doc: doc, literals: literals}
}

// SceneName returns the name of the exported scene.
func (v *View) SceneName() string { return v.doc.Name }

// Nodes returns every object in document order.
func (v *View) Nodes() []Node {
	objects := v.doc.Objects()
	nodes := make([]Node, 0, len(objects))
	for _, o := range objects {
		nodes = append(nodes, v.node(o))
	}
	return nodes
}

// Node returns a single object by name.
func (v *View) Node(name string) (Node, bool) {
	o, ok := v.doc.Object(name)
	if !ok {
		return Node{}, false
	}
	return v.node(o), true
}

func (v *View) node(o *scene.Object) Node {
	extras := cty.EmptyObjectVal
	if name, ok := v.literals[o]; ok {
		extras = cty.ObjectVal(map[string]cty.Value{
			PropertyActor: cty.StringVal(name),
		})
	}
	return Node{
		Name:       o.Name,
		Type:       o.Type,
		Instancing: o.Instancing(),
		Extras:     extras,
	}
}

// Value renders the view as a cty object: the scene name and a tuple of nodes.
func (v *View) Value() cty.Value {
	nodes := v.Nodes()
	elems := make([]cty.Value, 0, len(nodes))
	for _, n := range nodes {
		elems = append(elems, cty.ObjectVal(map[string]cty.Value{
			"name":          cty.StringVal(n.Name),
			"type":          cty.StringVal(string(n.Type)),
			"instance_type": cty.StringVal(string(n.Instancing.Kind)),
			"extras":        n.Extras,
		}))
	}
	list := cty.EmptyTupleVal
	if len(elems) > 0 {
		list = cty.TupleVal(elems)
	}
	return cty.ObjectVal(map[string]cty.Value{
		"scene": cty.StringVal(v.doc.Name),
		"nodes": list,
	})
}

// MarshalJSON encodes Value as JSON.
func (v *View) MarshalJSON() ([]byte, error) {
	val := v.Value()
	b, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return nil, fmt.Errorf("failed to encode export view: %w", err)
	}
	return b, nil
}
