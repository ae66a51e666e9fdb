package deptree

// ScrollingBoundary walks up from c until it finds a component whose parent
// may scroll its children and returns that component. It returns nil when no
// ancestor scrolls. Results are cached for every component visited and never
// invalidated, so a tree must not outlive reparenting.
func (t *Tree) ScrollingBoundary(c Component) Component {
	n := t.node(c, Horizontal)
	if n.scrollingBoundaryCached {
		return n.scrollingBoundary
	}
	if parent := c.Parent(); parent != nil {
		if parent.MayScrollChildren() {
			n.scrollingBoundary = c
		} else {
			n.scrollingBoundary = t.ScrollingBoundary(parent)
		}
	}
	n.scrollingBoundaryCached = true
	return n.scrollingBoundary
}
