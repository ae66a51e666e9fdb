package deptree

import "strings"

type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

var axes = [...]Axis{Horizontal, Vertical}

func (a Axis) Opposite() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

func (a Axis) String() string {
	if a == Vertical {
		return "Vertical"
	}
	return "Horizontal"
}

// SizeMode says how a component is sized along one axis.
type SizeMode uint8

const (
	SizeUndefined SizeMode = iota // content driven
	SizeRelative                  // percentage of the space the parent allocates
	SizeFixed
)

func (m SizeMode) String() string {
	switch m {
	case SizeRelative:
		return "relative"
	case SizeFixed:
		return "fixed"
	default:
		return "undefined"
	}
}

// SizeModeOf classifies a CSS-like size definition: empty is undefined, a
// trailing percent sign is relative and anything else is fixed.
func SizeModeOf(definition string) SizeMode {
	definition = strings.TrimSpace(definition)
	switch {
	case definition == "":
		return SizeUndefined
	case strings.HasSuffix(definition, "%"):
		return SizeRelative
	default:
		return SizeFixed
	}
}

// Component is the engine's view of a visual component. The engine never owns
// components, it only indexes work by ID.
type Component interface {
	ID() string
	// Parent returns nil for the root.
	Parent() Component
	Children() []Component
	SizeMode(a Axis) SizeMode
	// IsLayoutContainer reports whether the component arranges its own
	// children and may therefore need layout.
	IsLayoutContainer() bool
	// MayScrollChildren reports whether the component clips and scrolls the
	// overflow of its descendants.
	MayScrollChildren() bool
}

// Resolver maps an ID back to a component.
type Resolver interface {
	Component(id string) (Component, bool)
}

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc func(id string) (Component, bool)

func (f ResolverFunc) Component(id string) (Component, bool) {
	return f(id)
}

// SkipMeasurementFunc excludes a relatively sized child from the components
// resized by its parent's layout.
type SkipMeasurementFunc func(child, parent Component) bool

func isUndefined(c Component, a Axis) bool {
	return c.SizeMode(a) == SizeUndefined
}

func isRelative(c Component, a Axis) bool {
	return c.SizeMode(a) == SizeRelative
}
