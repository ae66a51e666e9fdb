// Package component is an in-memory component tree for driving the layout
// dependency engine: a YAML description, a registry resolving IDs and a
// simulated rendering environment that measures and arranges it.
package component

import "github.com/delaneyj/layoutparty/deptree"

type LayoutKind string

const (
	// LayoutNone is a leaf without an arrange routine.
	LayoutNone LayoutKind = ""
	// LayoutSimple containers arrange both axes in one call.
	LayoutSimple LayoutKind = "simple"
	// LayoutDirectional containers arrange each axis separately.
	LayoutDirectional LayoutKind = "directional"
)

type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// stackAxis is the axis along which children are placed one after another.
func (o Orientation) stackAxis() deptree.Axis {
	if o == Horizontal {
		return deptree.Horizontal
	}
	return deptree.Vertical
}

type Node struct {
	id          string
	sizes       [2]Size
	layout      LayoutKind
	orientation Orientation
	scrolls     bool
	hidden      bool
	content     [2]int
	text        int

	parent   *Node
	children []*Node
}

var _ deptree.Component = (*Node)(nil)

func (n *Node) ID() string { return n.id }

func (n *Node) Parent() deptree.Component {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) Children() []deptree.Component {
	children := make([]deptree.Component, len(n.children))
	for i, child := range n.children {
		children[i] = child
	}
	return children
}

func (n *Node) SizeMode(a deptree.Axis) deptree.SizeMode {
	return n.sizes[a].Mode
}

func (n *Node) IsLayoutContainer() bool {
	return n.layout != LayoutNone
}

func (n *Node) MayScrollChildren() bool {
	return n.scrolls
}

func (n *Node) Size(a deptree.Axis) Size {
	return n.sizes[a]
}

func (n *Node) Layout() LayoutKind {
	return n.layout
}

func (n *Node) IsDirectional() bool {
	return n.layout == LayoutDirectional
}

func (n *Node) Hidden() bool {
	return n.hidden
}

func (n *Node) String() string {
	return n.id
}

// SkipHidden keeps hidden children out of post-layout measuring.
func SkipHidden(child, parent deptree.Component) bool {
	n, ok := child.(*Node)
	return ok && n.hidden
}
