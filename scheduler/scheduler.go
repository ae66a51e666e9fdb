// Package scheduler drives a layout run: it alternates measure passes and
// layout passes over a deptree.Tree until nothing changes any more.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/layoutparty/deptree"
)

var (
	ErrTooManyPasses    = errors.New("aborting layout, this would probably be an infinite loop")
	ErrLayoutRunning    = errors.New("can't start a new layout phase before the previous one ends")
	ErrUnknownComponent = errors.New("unknown component in queue")
)

const DefaultMaxPasses = 100

// Measurer reads the current rendered size of a component in both axes and
// reports which of them changed since the previous measurement.
type Measurer interface {
	Measure(c deptree.Component) (widthChanged, heightChanged bool)
}

// Arranger runs the arrange routine of layout containers. Directional
// containers arrange one axis at a time, the others arrange both in Layout.
type Arranger interface {
	IsDirectional(c deptree.Component) bool
	LayoutHorizontally(c deptree.Component)
	LayoutVertically(c deptree.Component)
	Layout(c deptree.Component)
}

type Environment interface {
	deptree.Resolver
	Measurer
	Arranger
	Components() []deptree.Component
}

type Config struct {
	// MaxPasses bounds the measure/layout loop. Zero means DefaultMaxPasses.
	MaxPasses int
	// MeasureAll measures every component in the first pass.
	MeasureAll bool
	Logger     *slog.Logger
	// TreeOptions are passed to every tree the scheduler creates.
	TreeOptions []deptree.Option
}

type Scheduler struct {
	env    Environment
	cfg    Config
	logger *slog.Logger

	needsHorizontalLayout mapset.Set[string]
	needsVerticalLayout   mapset.Set[string]
	needsMeasure          mapset.Set[string]
	measureAll            bool
	running               bool
}

func New(env Environment, cfg Config) *Scheduler {
	if cfg.MaxPasses <= 0 {
		cfg.MaxPasses = DefaultMaxPasses
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scheduler{
		env:                   env,
		cfg:                   cfg,
		logger:                logger,
		needsHorizontalLayout: mapset.NewThreadUnsafeSet[string](),
		needsVerticalLayout:   mapset.NewThreadUnsafeSet[string](),
		needsMeasure:          mapset.NewThreadUnsafeSet[string](),
		measureAll:            cfg.MeasureAll,
	}
}

func (s *Scheduler) RequestHorizontalLayout(ids ...string) {
	for _, id := range ids {
		s.needsHorizontalLayout.Add(id)
	}
}

func (s *Scheduler) RequestVerticalLayout(ids ...string) {
	for _, id := range ids {
		s.needsVerticalLayout.Add(id)
	}
}

func (s *Scheduler) RequestLayout(ids ...string) {
	s.RequestHorizontalLayout(ids...)
	s.RequestVerticalLayout(ids...)
}

func (s *Scheduler) RequestMeasure(ids ...string) {
	for _, id := range ids {
		s.needsMeasure.Add(id)
	}
}

// RequestMeasureAll makes the next run measure every component once.
func (s *Scheduler) RequestMeasureAll() {
	s.measureAll = true
}

// Prepare creates a fresh tree seeded with the pending requests and clears
// them. Run does this itself, Prepare is for inspecting the initial state.
func (s *Scheduler) Prepare() *deptree.Tree {
	tree := deptree.New(s.env, s.cfg.TreeOptions...)
	for _, id := range sortedIDs(s.needsHorizontalLayout) {
		tree.SetNeedsHorizontalLayout(id, true)
	}
	for _, id := range sortedIDs(s.needsVerticalLayout) {
		tree.SetNeedsVerticalLayout(id, true)
	}
	for _, id := range sortedIDs(s.needsMeasure) {
		tree.SetNeedsMeasureByID(id, true)
	}
	s.needsHorizontalLayout.Clear()
	s.needsVerticalLayout.Clear()
	s.needsMeasure.Clear()
	return tree
}

func (s *Scheduler) Run(ctx context.Context) (*Result, error) {
	if s.running {
		return nil, ErrLayoutRunning
	}
	return s.RunTree(ctx, s.Prepare())
}

// RunTree runs the pass loop on an already seeded tree.
func (s *Scheduler) RunTree(ctx context.Context, tree *deptree.Tree) (*Result, error) {
	if s.running {
		return nil, ErrLayoutRunning
	}
	s.running = true
	defer func() { s.running = false }()

	start := time.Now()
	s.logger.Debug("starting layout phase")
	res := &Result{LayoutCounts: map[string]int{}, Tree: tree}
	defer func() { res.Duration = time.Since(start) }()

	for {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("layout interrupted after %d passes: %w", len(res.Passes), err)
		}

		passStart := time.Now()
		pass := PassStats{Pass: len(res.Passes) + 1}

		measured, err := s.measurePass(tree)
		if err != nil {
			return res, err
		}
		pass.Measured = measured
		// a bare layout request has nothing to measure up front
		if measured == 0 && !tree.HasHorizontalComponentToLayout() && !tree.HasVerticalComponentToLayout() {
			s.logger.Debug("no more changes", "pass", pass.Pass)
			break
		}
		if pass.Pass > s.cfg.MaxPasses {
			s.logger.Warn(ErrTooManyPasses.Error(), "passes", s.cfg.MaxPasses)
			return res, fmt.Errorf("%w: %d passes", ErrTooManyPasses, s.cfg.MaxPasses)
		}

		layouts, err := s.layoutPass(tree, res.LayoutCounts)
		if err != nil {
			return res, err
		}
		pass.Layouts = layouts
		pass.Fingerprint = tree.Fingerprint()
		pass.Duration = time.Since(passStart)
		res.Passes = append(res.Passes, pass)

		s.logger.Debug("layout pass done",
			"pass", pass.Pass,
			"measured", pass.Measured,
			"layouts", pass.Layouts,
			"fingerprint", pass.Fingerprint,
		)
	}

	s.logger.Debug("layout phase done", "passes", len(res.Passes), "took", time.Since(start))
	return res, nil
}

func (s *Scheduler) measurePass(tree *deptree.Tree) (int, error) {
	count := 0
	if s.measureAll {
		s.measureAll = false
		all := s.env.Components()
		for _, c := range all {
			s.measure(tree, c)
		}
		for _, c := range all {
			tree.SetNeedsMeasure(c, false)
		}
		count += len(all)
	}

	for tree.HasComponentsToMeasure() {
		targets := tree.MeasureTargets()
		for _, id := range targets {
			c, ok := s.env.Component(id)
			if !ok {
				return count, fmt.Errorf("%w: %s", ErrUnknownComponent, id)
			}
			s.measure(tree, c)
			count++
		}
		for _, id := range targets {
			tree.SetNeedsMeasureByID(id, false)
		}
	}
	return count, nil
}

func (s *Scheduler) measure(tree *deptree.Tree, c deptree.Component) {
	widthChanged, heightChanged := s.env.Measure(c)
	if heightChanged {
		tree.MarkHeightAsChanged(c)
	}
	if widthChanged {
		tree.MarkWidthAsChanged(c)
	}
}

func (s *Scheduler) layoutPass(tree *deptree.Tree, counts map[string]int) (int, error) {
	count := 0
	for tree.HasHorizontalComponentToLayout() || tree.HasVerticalComponentToLayout() {
		for _, id := range tree.HorizontalLayoutTargets() {
			c, ok := s.env.Component(id)
			if !ok {
				return count, fmt.Errorf("%w: %s", ErrUnknownComponent, id)
			}
			if s.env.IsDirectional(c) {
				tree.MarkAsHorizontallyLayouted(c)
				s.env.LayoutHorizontally(c)
			} else {
				tree.MarkAsHorizontallyLayouted(c)
				tree.MarkAsVerticallyLayouted(c)
				s.env.Layout(c)
			}
			counts[id]++
			count++
		}

		for _, id := range tree.VerticalLayoutTargets() {
			c, ok := s.env.Component(id)
			if !ok {
				return count, fmt.Errorf("%w: %s", ErrUnknownComponent, id)
			}
			if s.env.IsDirectional(c) {
				tree.MarkAsVerticallyLayouted(c)
				s.env.LayoutVertically(c)
			} else {
				tree.MarkAsHorizontallyLayouted(c)
				tree.MarkAsVerticallyLayouted(c)
				s.env.Layout(c)
			}
			counts[id]++
			count++
		}
	}
	return count, nil
}
