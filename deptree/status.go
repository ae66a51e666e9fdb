package deptree

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Status is a snapshot of one component's state along one axis.
type Status struct {
	ID              string
	Axis            Axis
	Sizing          SizeMode
	NeedsLayout     bool
	InLayoutQueue   bool
	LayoutBlockers  []string
	NeedsMeasure    bool
	InMeasureQueue  bool
	MeasureBlockers []string
}

func (s Status) String() string {
	var sb strings.Builder
	sb.WriteString(s.ID)
	sb.WriteByte('\n')
	sb.WriteString(s.Axis.String())
	sb.WriteString(" sizing: ")
	sb.WriteString(s.Sizing.String())
	sb.WriteByte('\n')
	if s.NeedsLayout {
		sb.WriteString("Needs layout\n")
	}
	if s.InLayoutQueue {
		sb.WriteString("In layout queue\n")
	}
	sb.WriteString("Layout blockers: [" + strings.Join(s.LayoutBlockers, ", ") + "]\n")
	if s.NeedsMeasure {
		sb.WriteString("Needs measure\n")
	}
	if s.InMeasureQueue {
		sb.WriteString("In measure queue\n")
	}
	sb.WriteString("Measure blockers: [" + strings.Join(s.MeasureBlockers, ", ") + "]")
	return sb.String()
}

// Settled is true when nothing is pending or blocking.
func (s Status) Settled() bool {
	return !s.NeedsLayout && !s.NeedsMeasure && len(s.LayoutBlockers) == 0 && len(s.MeasureBlockers) == 0
}

func (t *Tree) Status(c Component, a Axis) Status {
	return t.node(c, a).status()
}

func (n *axisNode) status() Status {
	id := n.id()
	return Status{
		ID:              id,
		Axis:            n.axis,
		Sizing:          n.component.SizeMode(n.axis),
		NeedsLayout:     n.needsLayout,
		InLayoutQueue:   n.tree.layoutQueues[n.axis].Contains(id),
		LayoutBlockers:  sorted(n.layoutBlockers),
		NeedsMeasure:    n.needsMeasure,
		InMeasureQueue:  n.tree.measureQueues[n.axis].Contains(id),
		MeasureBlockers: sorted(n.measureBlockers),
	}
}

// LogDependencyStatus logs the state of both axes at debug level.
func (t *Tree) LogDependencyStatus(c Component) {
	for _, a := range axes {
		t.logger.Debug("layout dependency", "component", compactString(c), "status", t.Status(c, a).String())
	}
}

// Nodes returns the sorted IDs of every component with state on the axis.
func (t *Tree) Nodes(a Axis) []string {
	ids := make([]string, 0, len(t.nodes[a]))
	for id := range t.nodes[a] {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Statuses returns the status of every node on the axis, sorted by ID.
func (t *Tree) Statuses(a Axis) []Status {
	ids := t.Nodes(a)
	statuses := make([]Status, len(ids))
	for i, id := range ids {
		statuses[i] = t.nodes[a][id].status()
	}
	return statuses
}

// CheckInvariants verifies that every queue holds exactly the nodes that need
// work and have no blockers.
func (t *Tree) CheckInvariants() error {
	var errs []error
	for _, a := range axes {
		for _, id := range t.Nodes(a) {
			n := t.nodes[a][id]
			wantMeasure := n.needsMeasure && n.measureBlockers.Cardinality() == 0
			if got := t.measureQueues[a].Contains(id); got != wantMeasure {
				errs = append(errs, fmt.Errorf("%w: %s %s in measure queue is %t, needs measure %t with %d blockers",
					ErrInvariant, a, id, got, n.needsMeasure, n.measureBlockers.Cardinality()))
			}
			wantLayout := n.needsLayout && n.layoutBlockers.Cardinality() == 0
			if got := t.layoutQueues[a].Contains(id); got != wantLayout {
				errs = append(errs, fmt.Errorf("%w: %s %s in layout queue is %t, needs layout %t with %d blockers",
					ErrInvariant, a, id, got, n.needsLayout, n.layoutBlockers.Cardinality()))
			}
		}
		for _, q := range []struct {
			name string
			ids  []string
		}{{"measure", t.MeasureQueue(a)}, {"layout", t.LayoutQueue(a)}} {
			for _, id := range q.ids {
				if _, ok := t.nodes[a][id]; !ok {
					errs = append(errs, fmt.Errorf("%w: %s %s queue holds %s without a node", ErrInvariant, a, q.name, id))
				}
			}
		}
	}
	return errors.Join(errs...)
}

// Fingerprint hashes the flags, blockers and queues of every node. Equal
// states give equal fingerprints regardless of insertion order.
func (t *Tree) Fingerprint() uint64 {
	d := xxhash.New()
	for _, a := range axes {
		d.WriteString(strconv.Itoa(int(a)))
		for _, s := range t.Statuses(a) {
			if s.Settled() {
				continue
			}
			d.WriteString(s.ID)
			d.WriteString(strconv.FormatBool(s.NeedsLayout))
			d.WriteString(strconv.FormatBool(s.NeedsMeasure))
			d.WriteString(strings.Join(s.LayoutBlockers, ","))
			d.WriteString("|")
			d.WriteString(strings.Join(s.MeasureBlockers, ","))
			d.WriteString(";")
		}
	}
	return d.Sum64()
}
