package scheduler

import (
	"slices"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/layoutparty/deptree"
)

type PassStats struct {
	Pass     int
	Measured int
	Layouts  int
	// Fingerprint of the tree state at the end of the pass.
	Fingerprint uint64
	Duration    time.Duration
}

type Result struct {
	Passes       []PassStats
	LayoutCounts map[string]int
	Duration     time.Duration
	Tree         *deptree.Tree
}

func (r *Result) TotalMeasured() int {
	total := 0
	for _, p := range r.Passes {
		total += p.Measured
	}
	return total
}

func (r *Result) TotalLayouts() int {
	total := 0
	for _, p := range r.Passes {
		total += p.Layouts
	}
	return total
}

// MostLaidOut returns the IDs laid out the most, at most n of them.
func (r *Result) MostLaidOut(n int) []string {
	ids := make([]string, 0, len(r.LayoutCounts))
	for id := range r.LayoutCounts {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		if d := r.LayoutCounts[b] - r.LayoutCounts[a]; d != 0 {
			return d
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids
}

func sortedIDs(s mapset.Set[string]) []string {
	ids := s.ToSlice()
	slices.Sort(ids)
	return ids
}
