package component

import (
	"fmt"

	"github.com/delaneyj/layoutparty/deptree"
)

// Registry indexes components by ID.
type Registry struct {
	root  *Node
	byID  map[string]*Node
	order []*Node
}

var _ deptree.Resolver = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{byID: map[string]*Node{}}
}

// Add attaches the described subtree under parentID, or as the root when
// parentID is empty and the registry has no root yet.
func (r *Registry) Add(parentID string, s Spec) (*Node, error) {
	var parent *Node
	if parentID != "" {
		p, ok := r.byID[parentID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownParent, parentID)
		}
		if !p.IsLayoutContainer() {
			return nil, fmt.Errorf("%w: %s cannot hold children", ErrBadLayout, parentID)
		}
		parent = p
	} else if r.root != nil {
		return nil, fmt.Errorf("%w: registry already has root %s", ErrUnknownParent, r.root.id)
	}
	return r.add(parent, s)
}

func (r *Registry) add(parent *Node, s Spec) (*Node, error) {
	n, err := s.node()
	if err != nil {
		return nil, err
	}
	if _, exists := r.byID[n.id]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, n.id)
	}
	r.byID[n.id] = n
	r.order = append(r.order, n)
	if parent == nil {
		r.root = n
	} else {
		n.parent = parent
		parent.children = append(parent.children, n)
	}
	for _, child := range s.Children {
		if _, err := r.add(n, child); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (r *Registry) Component(id string) (deptree.Component, bool) {
	n, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return n, true
}

func (r *Registry) Get(id string) (*Node, bool) {
	n, ok := r.byID[id]
	return n, ok
}

// MustGet panics when id is unknown.
func (r *Registry) MustGet(id string) *Node {
	n, ok := r.byID[id]
	if !ok {
		panic(fmt.Sprintf("component %s not registered", id))
	}
	return n
}

func (r *Registry) Root() *Node {
	return r.root
}

func (r *Registry) Len() int {
	return len(r.order)
}

// Walk visits components depth first in the order they were added.
func (r *Registry) Walk(fn func(n *Node) bool) {
	for _, n := range r.order {
		if !fn(n) {
			return
		}
	}
}

// Components lists every component depth first.
func (r *Registry) Components() []deptree.Component {
	all := make([]deptree.Component, len(r.order))
	for i, n := range r.order {
		all[i] = n
	}
	return all
}

// Containers lists the IDs of every layout container depth first.
func (r *Registry) Containers() []string {
	var ids []string
	for _, n := range r.order {
		if n.IsLayoutContainer() {
			ids = append(ids, n.id)
		}
	}
	return ids
}
