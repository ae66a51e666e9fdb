// Package deptree keeps track of measure and layout dependencies between
// nested components during one layout run.
//
// For every component and axis the tree knows whether the component needs to
// be measured or laid out and which other components currently block that
// work. A component is queued exactly when it needs work and nothing blocks
// it, so a scheduler only has to drain the queues and report back with
// MarkWidthAsChanged, MarkHeightAsChanged and the MarkAs*Layouted methods.
//
// A Tree is not safe for concurrent use.
package deptree

import (
	"io"
	"log/slog"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

type Tree struct {
	resolver        Resolver
	logger          *slog.Logger
	skipMeasurement SkipMeasurementFunc

	nodes         [2]map[string]*axisNode
	measureQueues [2]mapset.Set[string]
	layoutQueues  [2]mapset.Set[string]
}

type Option func(*Tree)

// WithLogger sets the logger used for diagnostics. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tree) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithSkipMeasurement installs a predicate that keeps relatively sized
// children out of their parent's post-layout measuring.
func WithSkipMeasurement(fn SkipMeasurementFunc) Option {
	return func(t *Tree) {
		t.skipMeasurement = fn
	}
}

func New(resolver Resolver, opts ...Option) *Tree {
	t := &Tree{
		resolver:        resolver,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		skipMeasurement: func(child, parent Component) bool { return false },
	}
	for _, a := range axes {
		t.nodes[a] = map[string]*axisNode{}
		t.measureQueues[a] = mapset.NewThreadUnsafeSet[string]()
		t.layoutQueues[a] = mapset.NewThreadUnsafeSet[string]()
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.skipMeasurement == nil {
		t.skipMeasurement = func(child, parent Component) bool { return false }
	}
	return t
}

func (t *Tree) node(c Component, a Axis) *axisNode {
	id := c.ID()
	n, ok := t.nodes[a][id]
	if !ok {
		n = newAxisNode(t, c, a)
		t.nodes[a][id] = n
	}
	return n
}

// nodeByID returns nil when neither a node nor a component exists for id.
func (t *Tree) nodeByID(id string, a Axis) *axisNode {
	if n, ok := t.nodes[a][id]; ok {
		return n
	}
	c, ok := t.resolve(id)
	if !ok {
		t.logger.Warn("no component found while creating layout dependency", "id", id, "axis", a)
		return nil
	}
	return t.node(c, a)
}

func (t *Tree) resolve(id string) (Component, bool) {
	if t.resolver == nil {
		return nil, false
	}
	c, ok := t.resolver.Component(id)
	if !ok || c == nil {
		return nil, false
	}
	return c, true
}

// SetNeedsMeasure marks the component as needing measuring in both axes, or
// clears the need. Clearing has no effect while the component is blocked.
func (t *Tree) SetNeedsMeasure(c Component, needsMeasure bool) {
	t.SetNeedsHorizontalMeasure(c, needsMeasure)
	t.SetNeedsVerticalMeasure(c, needsMeasure)
}

// SetNeedsAxisMeasure is SetNeedsMeasure for a single axis.
func (t *Tree) SetNeedsAxisMeasure(c Component, a Axis, needsMeasure bool) {
	t.node(c, a).setNeedsMeasure(needsMeasure)
}

func (t *Tree) SetNeedsHorizontalMeasure(c Component, needsMeasure bool) {
	t.SetNeedsAxisMeasure(c, Horizontal, needsMeasure)
}

func (t *Tree) SetNeedsVerticalMeasure(c Component, needsMeasure bool) {
	t.SetNeedsAxisMeasure(c, Vertical, needsMeasure)
}

// SetNeedsMeasureByID is SetNeedsMeasure for an ID. Unknown IDs are ignored.
func (t *Tree) SetNeedsMeasureByID(id string, needsMeasure bool) {
	if c, ok := t.resolve(id); ok {
		t.SetNeedsMeasure(c, needsMeasure)
	}
}

func (t *Tree) SetNeedsHorizontalMeasureByID(id string, needsMeasure bool) {
	if c, ok := t.resolve(id); ok {
		t.SetNeedsHorizontalMeasure(c, needsMeasure)
	}
}

func (t *Tree) SetNeedsVerticalMeasureByID(id string, needsMeasure bool) {
	if c, ok := t.resolve(id); ok {
		t.SetNeedsVerticalMeasure(c, needsMeasure)
	}
}

// SetNeedsHorizontalLayout marks the layout container as needing horizontal
// layout, or clears the need when it has no blockers. It panics with
// ErrNotLayoutContainer if the component cannot be laid out and logs a
// warning when the ID is unknown.
func (t *Tree) SetNeedsHorizontalLayout(id string, needsLayout bool) {
	t.setNeedsLayout(id, Horizontal, needsLayout)
}

func (t *Tree) SetNeedsVerticalLayout(id string, needsLayout bool) {
	t.setNeedsLayout(id, Vertical, needsLayout)
}

func (t *Tree) setNeedsLayout(id string, a Axis, needsLayout bool) {
	n := t.nodeByID(id, a)
	if n == nil {
		t.logger.Warn("no dependency found while setting layout need", "id", id, "axis", a)
		return
	}
	n.setNeedsLayout(needsLayout)
}

// MarkAsHorizontallyLayouted records that the container arranged its children
// horizontally and queues measuring for everything that may have been resized.
// Nothing happens while the container still has layout blockers.
func (t *Tree) MarkAsHorizontallyLayouted(c Component) {
	t.node(c, Horizontal).markAsLayouted()
}

func (t *Tree) MarkAsVerticallyLayouted(c Component) {
	t.node(c, Vertical).markAsLayouted()
}

// MarkWidthAsChanged is called after measuring found a new width. Dependents
// are scheduled for horizontal layout and the scrolling boundary for vertical
// measuring, since a scrollbar may have come or gone.
func (t *Tree) MarkWidthAsChanged(c Component) {
	t.node(c, Horizontal).markSizeAsChanged()
}

func (t *Tree) MarkHeightAsChanged(c Component) {
	t.node(c, Vertical).markSizeAsChanged()
}

func (t *Tree) HasComponentsToMeasure() bool {
	return t.measureQueues[Horizontal].Cardinality() != 0 ||
		t.measureQueues[Vertical].Cardinality() != 0
}

func (t *Tree) HasHorizontalComponentToLayout() bool {
	return t.layoutQueues[Horizontal].Cardinality() != 0
}

func (t *Tree) HasVerticalComponentToLayout() bool {
	return t.layoutQueues[Vertical].Cardinality() != 0
}

// MeasureTargets returns the IDs waiting for measuring in either axis.
func (t *Tree) MeasureTargets() []string {
	return sorted(t.measureQueues[Horizontal].Union(t.measureQueues[Vertical]))
}

func (t *Tree) MeasureQueue(a Axis) []string {
	return sorted(t.measureQueues[a])
}

func (t *Tree) LayoutQueue(a Axis) []string {
	return sorted(t.layoutQueues[a])
}

func (t *Tree) HorizontalLayoutTargets() []string {
	return t.LayoutQueue(Horizontal)
}

func (t *Tree) VerticalLayoutTargets() []string {
	return t.LayoutQueue(Vertical)
}

// NoMoreChangesExpected reports whether the component has nothing pending and
// nothing blocking it in either axis.
func (t *Tree) NoMoreChangesExpected(c Component) bool {
	return t.node(c, Horizontal).noMoreChangesExpected() &&
		t.node(c, Vertical).noMoreChangesExpected()
}

func sorted(s mapset.Set[string]) []string {
	ids := s.ToSlice()
	slices.Sort(ids)
	return ids
}
