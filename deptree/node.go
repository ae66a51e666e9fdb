package deptree

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// axisNode tracks the measure and layout state of one component along one
// axis. Blockers are stored as IDs, never as pointers to other nodes.
type axisNode struct {
	tree      *Tree
	component Component
	axis      Axis

	needsLayout  bool
	needsMeasure bool

	scrollingBoundaryCached bool
	scrollingBoundary       Component

	measureBlockers mapset.Set[string]
	layoutBlockers  mapset.Set[string]
}

func newAxisNode(tree *Tree, c Component, a Axis) *axisNode {
	return &axisNode{
		tree:            tree,
		component:       c,
		axis:            a,
		measureBlockers: mapset.NewThreadUnsafeSet[string](),
		layoutBlockers:  mapset.NewThreadUnsafeSet[string](),
	}
}

func (n *axisNode) id() string {
	return n.component.ID()
}

func (n *axisNode) addLayoutBlocker(blocker Component) {
	blockerID := blocker.ID()
	if n.layoutBlockers.Contains(blockerID) {
		return
	}
	wasEmpty := n.layoutBlockers.Cardinality() == 0
	n.layoutBlockers.Add(blockerID)
	if !wasEmpty {
		return
	}
	if n.needsLayout {
		n.tree.layoutQueues[n.axis].Remove(n.id())
	} else {
		// already propagated when needsLayout was set
		n.propagatePotentialLayout()
	}
}

func (n *axisNode) removeLayoutBlocker(blocker Component) {
	blockerID := blocker.ID()
	if !n.layoutBlockers.Contains(blockerID) {
		return
	}
	n.layoutBlockers.Remove(blockerID)
	if n.layoutBlockers.Cardinality() != 0 {
		return
	}
	if n.needsLayout {
		n.tree.layoutQueues[n.axis].Add(n.id())
	} else {
		n.propagateNoUpcomingLayout()
	}
}

func (n *axisNode) addMeasureBlocker(blocker Component) {
	blockerID := blocker.ID()
	if n.measureBlockers.Contains(blockerID) {
		return
	}
	wasEmpty := n.measureBlockers.Cardinality() == 0
	n.measureBlockers.Add(blockerID)
	if !wasEmpty {
		return
	}
	if n.needsMeasure {
		n.tree.measureQueues[n.axis].Remove(n.id())
	} else {
		n.propagatePotentialResize()
	}
}

func (n *axisNode) removeMeasureBlocker(blocker Component) {
	blockerID := blocker.ID()
	if !n.measureBlockers.Contains(blockerID) {
		return
	}
	n.measureBlockers.Remove(blockerID)
	if n.measureBlockers.Cardinality() != 0 {
		return
	}
	if n.needsMeasure {
		n.tree.measureQueues[n.axis].Add(n.id())
	} else {
		n.propagateNoUpcomingResize()
	}
}

func (n *axisNode) setNeedsMeasure(needsMeasure bool) {
	switch {
	case needsMeasure && !n.needsMeasure:
		n.needsMeasure = true
		if n.measureBlockers.Cardinality() == 0 {
			n.tree.measureQueues[n.axis].Add(n.id())
			// with blockers present this already ran when the first one arrived
			n.propagatePotentialResize()
		}
	case !needsMeasure && n.needsMeasure && n.measureBlockers.Cardinality() == 0:
		// A blocked node keeps its flag: some components are measured in both
		// axes at once even when only one of them is unblocked.
		n.needsMeasure = false
		n.tree.measureQueues[n.axis].Remove(n.id())
		n.propagateNoUpcomingResize()
	}
}

func (n *axisNode) setNeedsLayout(needsLayout bool) {
	if !n.component.IsLayoutContainer() {
		panic(fmt.Errorf("%w, layout attempted for %s", ErrNotLayoutContainer, compactString(n.component)))
	}
	switch {
	case needsLayout && !n.needsLayout:
		n.needsLayout = true
		if n.layoutBlockers.Cardinality() == 0 {
			n.tree.layoutQueues[n.axis].Add(n.id())
			n.propagatePotentialLayout()
		}
	case !needsLayout && n.needsLayout && n.layoutBlockers.Cardinality() == 0:
		// Simple layouts are arranged in both axes even if one is blocked.
		n.needsLayout = false
		n.tree.layoutQueues[n.axis].Remove(n.id())
		n.propagateNoUpcomingLayout()
	}
}

// needsSizeForLayout lists the components whose layout along the axis needs
// to know this component's size.
func (n *axisNode) needsSizeForLayout() []Component {
	needsSize := make([]Component, 0, 2)
	if !isUndefined(n.component, n.axis) {
		needsSize = append(needsSize, n.component)
	}
	if !isRelative(n.component, n.axis) {
		if parent := n.component.Parent(); parent != nil {
			needsSize = append(needsSize, parent)
		}
	}
	return needsSize
}

// resizedByLayout lists the components whose size along the axis might
// change when this component is laid out. The parent is never resized.
func (n *axisNode) resizedByLayout() []Component {
	var resized []Component
	if isUndefined(n.component, n.axis) {
		resized = append(resized, n.component)
	}
	for _, child := range n.component.Children() {
		if n.tree.skipMeasurement(child, n.component) {
			continue
		}
		if isRelative(child, n.axis) {
			resized = append(resized, child)
		}
	}
	return resized
}

func (n *axisNode) propagatePotentialResize() {
	for _, c := range n.needsSizeForLayout() {
		n.tree.node(c, n.axis).addLayoutBlocker(n.component)
	}
}

func (n *axisNode) propagateNoUpcomingResize() {
	for _, c := range n.needsSizeForLayout() {
		n.tree.node(c, n.axis).removeLayoutBlocker(n.component)
	}
}

func (n *axisNode) propagatePotentialLayout() {
	for _, c := range n.resizedByLayout() {
		n.tree.node(c, n.axis).addMeasureBlocker(n.component)
	}
}

func (n *axisNode) propagateNoUpcomingLayout() {
	for _, c := range n.resizedByLayout() {
		n.tree.node(c, n.axis).removeMeasureBlocker(n.component)
	}
}

func (n *axisNode) markSizeAsChanged() {
	// everything using the size has to be laid out again
	for _, c := range n.needsSizeForLayout() {
		dependency := n.tree.node(c, n.axis)
		if c.IsLayoutContainer() {
			dependency.setNeedsLayout(true)
		} else {
			// same as setNeedsLayout(true) followed by markAsLayouted
			dependency.propagatePostLayoutMeasure()
		}
	}

	// scrollbars may have appeared or disappeared
	if boundary := n.tree.ScrollingBoundary(n.component); boundary != nil {
		n.tree.node(boundary, n.axis.Opposite()).setNeedsMeasure(true)
	}
}

func (n *axisNode) markAsLayouted() {
	if n.layoutBlockers.Cardinality() != 0 {
		return
	}
	n.setNeedsLayout(false)
	n.propagatePostLayoutMeasure()
}

func (n *axisNode) propagatePostLayoutMeasure() {
	for _, c := range n.resizedByLayout() {
		n.tree.node(c, n.axis).setNeedsMeasure(true)
	}

	// wrapping text gets taller or shorter when the width changes
	if n.axis == Horizontal && !isUndefined(n.component, Horizontal) && isUndefined(n.component, Vertical) {
		n.tree.node(n.component, Vertical).setNeedsMeasure(true)
	}
}

func (n *axisNode) noMoreChangesExpected() bool {
	return !n.needsLayout && !n.needsMeasure &&
		n.layoutBlockers.Cardinality() == 0 && n.measureBlockers.Cardinality() == 0
}
