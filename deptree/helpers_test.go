package deptree_test

import (
	"testing"

	"github.com/delaneyj/layoutparty/deptree"
	"github.com/stretchr/testify/require"
)

// box is a minimal mutable component for exercising the tree directly.
type box struct {
	id        string
	parent    *box
	children  []*box
	modes     [2]deptree.SizeMode
	container bool
	scrolls   bool
}

func (b *box) ID() string { return b.id }

func (b *box) Parent() deptree.Component {
	if b.parent == nil {
		return nil
	}
	return b.parent
}

func (b *box) Children() []deptree.Component {
	children := make([]deptree.Component, len(b.children))
	for i, c := range b.children {
		children[i] = c
	}
	return children
}

func (b *box) SizeMode(a deptree.Axis) deptree.SizeMode { return b.modes[a] }
func (b *box) IsLayoutContainer() bool                  { return b.container }
func (b *box) MayScrollChildren() bool                  { return b.scrolls }

type boxes map[string]*box

func (bs boxes) Component(id string) (deptree.Component, bool) {
	b, ok := bs[id]
	if !ok {
		return nil, false
	}
	return b, true
}

func (bs boxes) add(id string, parent *box, width, height string) *box {
	b := &box{
		id:     id,
		parent: parent,
		modes:  [2]deptree.SizeMode{deptree.SizeModeOf(width), deptree.SizeModeOf(height)},
	}
	if parent != nil {
		parent.container = true
		parent.children = append(parent.children, b)
	}
	bs[id] = b
	return b
}

func (bs boxes) container(id string, parent *box, width, height string) *box {
	b := bs.add(id, parent, width, height)
	b.container = true
	return b
}

func requireConsistent(t *testing.T, tree *deptree.Tree) {
	t.Helper()
	require.NoError(t, tree.CheckInvariants())
}
