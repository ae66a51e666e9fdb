package component

import (
	"github.com/delaneyj/layoutparty/deptree"
)

const (
	// CharWidth and LineHeight size text content in pixels.
	CharWidth     = 8
	LineHeight    = 20
	ScrollbarSize = 16
)

// Environment simulates a rendering surface for a registry. Measuring reads
// the size a component would currently render at, laying out a container
// allocates space to its relatively sized children and records the size of
// its content. The model is deliberately crude: children are stacked along
// the container's orientation with no gaps or alignment.
type Environment struct {
	registry *Registry

	measured  [2]map[string]int
	allocated [2]map[string]int
	content   [2]map[string]int

	measureCount int
	layoutCount  int
}

func NewEnvironment(r *Registry) *Environment {
	e := &Environment{registry: r}
	for _, a := range []deptree.Axis{deptree.Horizontal, deptree.Vertical} {
		e.measured[a] = map[string]int{}
		e.allocated[a] = map[string]int{}
		e.content[a] = map[string]int{}
	}
	return e
}

func (e *Environment) Registry() *Registry {
	return e.registry
}

func (e *Environment) Component(id string) (deptree.Component, bool) {
	return e.registry.Component(id)
}

func (e *Environment) Components() []deptree.Component {
	return e.registry.Components()
}

// Size returns the last measured width and height.
func (e *Environment) Size(id string) (width, height int) {
	return e.measured[deptree.Horizontal][id], e.measured[deptree.Vertical][id]
}

// Counts returns how many measure and arrange calls were made.
func (e *Environment) Counts() (measures, layouts int) {
	return e.measureCount, e.layoutCount
}

// Measure reads both axes, width first so wrapped text sees the new width.
func (e *Environment) Measure(c deptree.Component) (widthChanged, heightChanged bool) {
	n, ok := e.registry.Get(c.ID())
	if !ok {
		return false, false
	}
	e.measureCount++
	widthChanged = e.update(n, deptree.Horizontal)
	heightChanged = e.update(n, deptree.Vertical)
	return widthChanged, heightChanged
}

func (e *Environment) update(n *Node, a deptree.Axis) bool {
	size := e.rendered(n, a)
	previous, seen := e.measured[a][n.id]
	e.measured[a][n.id] = size
	return !seen || previous != size
}

func (e *Environment) rendered(n *Node, a deptree.Axis) int {
	if n.hidden {
		return 0
	}
	s := n.sizes[a]
	switch s.Mode {
	case deptree.SizeFixed:
		return s.Pixels(0)
	case deptree.SizeRelative:
		if n.parent != nil && n.parent.scrolls {
			// the browser resolves these itself, scrollbars included
			return s.Pixels(e.inner(n.parent, a))
		}
		return e.allocated[a][n.id]
	}

	if n.IsLayoutContainer() {
		return e.content[a][n.id]
	}
	if n.text == 0 {
		return n.content[a]
	}
	if a == deptree.Horizontal {
		return n.text * CharWidth
	}
	if n.sizes[deptree.Horizontal].Mode == deptree.SizeUndefined {
		return LineHeight
	}
	width := max(e.measured[deptree.Horizontal][n.id], CharWidth)
	perLine := width / CharWidth
	lines := (n.text + perLine - 1) / perLine
	return lines * LineHeight
}

// inner is the space a container offers its children along an axis, minus a
// scrollbar when its content overflows in the other axis.
func (e *Environment) inner(n *Node, a deptree.Axis) int {
	size := e.measured[a][n.id]
	if n.scrolls {
		other := a.Opposite()
		for _, child := range n.children {
			if e.measured[other][child.id] > e.measured[other][n.id] {
				size -= ScrollbarSize
				break
			}
		}
	}
	return max(size, 0)
}

func (e *Environment) LayoutHorizontally(c deptree.Component) {
	e.arrange(c, deptree.Horizontal)
}

func (e *Environment) LayoutVertically(c deptree.Component) {
	e.arrange(c, deptree.Vertical)
}

// Layout arranges both axes at once.
func (e *Environment) Layout(c deptree.Component) {
	e.arrange(c, deptree.Horizontal)
	e.arrange(c, deptree.Vertical)
}

func (e *Environment) IsDirectional(c deptree.Component) bool {
	n, ok := e.registry.Get(c.ID())
	return ok && n.IsDirectional()
}

func (e *Environment) arrange(c deptree.Component, a deptree.Axis) {
	n, ok := e.registry.Get(c.ID())
	if !ok || !n.IsLayoutContainer() {
		return
	}
	e.layoutCount++

	available := e.inner(n, a)
	stacked := n.orientation.stackAxis() == a
	total := 0
	for _, child := range n.children {
		size := e.measured[a][child.id]
		if child.sizes[a].Mode == deptree.SizeRelative && !child.hidden {
			size = child.sizes[a].Pixels(available)
			e.allocated[a][child.id] = size
		}
		if stacked {
			total += size
		} else {
			total = max(total, size)
		}
	}
	e.content[a][n.id] = total
}
