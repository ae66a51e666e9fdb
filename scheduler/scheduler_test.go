package scheduler_test

import (
	"context"
	"testing"

	"github.com/delaneyj/layoutparty/component"
	"github.com/delaneyj/layoutparty/deptree"
	"github.com/delaneyj/layoutparty/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, path string) *component.Environment {
	t.Helper()
	s, err := component.LoadSpec(path)
	require.NoError(t, err)
	r, err := s.Build()
	require.NoError(t, err)
	return component.NewEnvironment(r)
}

func requireSettled(t *testing.T, env *component.Environment, tree *deptree.Tree) {
	t.Helper()
	require.NoError(t, tree.CheckInvariants())
	for _, c := range env.Components() {
		require.True(t, tree.NoMoreChangesExpected(c), c.ID())
	}
	assert.False(t, tree.HasComponentsToMeasure())
	assert.False(t, tree.HasHorizontalComponentToLayout())
	assert.False(t, tree.HasVerticalComponentToLayout())
}

func assertSize(t *testing.T, env *component.Environment, id string, width, height int) {
	t.Helper()
	w, h := env.Size(id)
	assert.Equal(t, width, w, "width of %s", id)
	assert.Equal(t, height, h, "height of %s", id)
}

func TestRunConverges(t *testing.T) {
	ctx := context.Background()
	env := load(t, "../testdata/form.yaml")
	s := scheduler.New(env, scheduler.Config{MeasureAll: true})

	res, err := s.Run(ctx)
	require.NoError(t, err)
	requireSettled(t, env, res.Tree)

	assertSize(t, env, "window", 400, 300)
	assertSize(t, env, "form", 400, 144)
	assertSize(t, env, "title", 400, component.LineHeight)
	assertSize(t, env, "description", 400, 3*component.LineHeight)
	assertSize(t, env, "footer", 400, 40)
	assertSize(t, env, "ok", 80, 40)
	assertSize(t, env, "help", 0, 0)

	assert.NotEmpty(t, res.Passes)
	assert.Less(t, len(res.Passes), scheduler.DefaultMaxPasses)
	assert.Equal(t, res.TotalMeasured(), sumMeasured(res))
	assert.Positive(t, res.LayoutCounts["form"])
	assert.Positive(t, res.LayoutCounts["window"])
	assert.NotContains(t, res.LayoutCounts, "title")
	assert.Len(t, res.MostLaidOut(2), 2)
	assert.Len(t, res.MostLaidOut(10), len(res.LayoutCounts))

	t.Run("nothing pending", func(t *testing.T) {
		res, err := s.Run(ctx)
		require.NoError(t, err)
		assert.Empty(t, res.Passes)
		assert.Zero(t, res.TotalLayouts())
	})

	t.Run("measuring an unchanged component", func(t *testing.T) {
		s.RequestMeasure("title")
		res, err := s.Run(ctx)
		require.NoError(t, err)
		require.Len(t, res.Passes, 1)
		assert.Equal(t, 1, res.Passes[0].Measured)
		assert.Zero(t, res.TotalLayouts())
	})

	t.Run("layout request without measuring", func(t *testing.T) {
		s.RequestLayout("form")
		res, err := s.Run(ctx)
		require.NoError(t, err)
		requireSettled(t, env, res.Tree)
		assert.Equal(t, map[string]int{"form": 2}, res.LayoutCounts)
		assert.Zero(t, res.Passes[0].Measured)
		assertSize(t, env, "form", 400, 144)
	})
}

func sumMeasured(res *scheduler.Result) int {
	total := 0
	for _, p := range res.Passes {
		total += p.Measured
	}
	return total
}

func TestRunWithScrollbar(t *testing.T) {
	env := load(t, "../testdata/overflow.yaml")
	s := scheduler.New(env, scheduler.Config{})
	s.RequestMeasureAll()

	res, err := s.Run(context.Background())
	require.NoError(t, err)
	requireSettled(t, env, res.Tree)

	inner := 200 - component.ScrollbarSize
	assertSize(t, env, "list", inner, 160)
	assertSize(t, env, "row1", inner, 40)
	// 23 characters per line
	assertSize(t, env, "note", inner, 2*component.LineHeight)
}

func TestRunFingerprints(t *testing.T) {
	env := load(t, "../testdata/form.yaml")
	s := scheduler.New(env, scheduler.Config{MeasureAll: true})
	res, err := s.Run(context.Background())
	require.NoError(t, err)

	settled := deptree.New(env).Fingerprint()
	last := res.Passes[len(res.Passes)-1]
	assert.Equal(t, settled, last.Fingerprint)
	assert.Equal(t, settled, res.Tree.Fingerprint())
}

// restless reports a new width on every measurement.
type restless struct {
	*component.Environment
}

func (r restless) Measure(c deptree.Component) (bool, bool) {
	r.Environment.Measure(c)
	return true, false
}

func TestRunGivesUp(t *testing.T) {
	r := component.Spec{ID: "root", Width: "100px", Layout: component.LayoutSimple}.MustBuild()
	env := restless{component.NewEnvironment(r)}
	s := scheduler.New(env, scheduler.Config{MaxPasses: 5, MeasureAll: true})

	res, err := s.Run(context.Background())
	require.ErrorIs(t, err, scheduler.ErrTooManyPasses)
	assert.Len(t, res.Passes, 5)
	assert.Equal(t, 5, res.LayoutCounts["root"])
}

func TestRunCancelled(t *testing.T) {
	env := load(t, "../testdata/form.yaml")
	s := scheduler.New(env, scheduler.Config{MeasureAll: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := s.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.Passes)
}

// forgetful can measure components but not look them up again.
type forgetful struct {
	*component.Environment
}

func (forgetful) Component(string) (deptree.Component, bool) {
	return nil, false
}

func TestRunUnknownComponent(t *testing.T) {
	r := component.Spec{ID: "root", Width: "100px", Layout: component.LayoutSimple}.MustBuild()
	s := scheduler.New(forgetful{component.NewEnvironment(r)}, scheduler.Config{MeasureAll: true})

	_, err := s.Run(context.Background())
	require.ErrorIs(t, err, scheduler.ErrUnknownComponent)
	assert.ErrorContains(t, err, "root")
}

// reentrant starts another run from inside a measurement.
type reentrant struct {
	*component.Environment
	s   *scheduler.Scheduler
	err error
}

func (r *reentrant) Measure(c deptree.Component) (bool, bool) {
	if r.err == nil {
		_, r.err = r.s.Run(context.Background())
	}
	return r.Environment.Measure(c)
}

func TestRunIsNotReentrant(t *testing.T) {
	r := component.Spec{ID: "root", Width: "10px", Height: "10px"}.MustBuild()
	env := &reentrant{Environment: component.NewEnvironment(r)}
	env.s = scheduler.New(env, scheduler.Config{MeasureAll: true})

	_, err := env.s.Run(context.Background())
	require.NoError(t, err)
	assert.ErrorIs(t, env.err, scheduler.ErrLayoutRunning)
}

func TestPrepare(t *testing.T) {
	env := load(t, "../testdata/form.yaml")
	s := scheduler.New(env, scheduler.Config{})
	s.RequestHorizontalLayout("form")
	s.RequestVerticalLayout("footer")
	s.RequestMeasure("title", "ghost")

	tree := s.Prepare()
	require.NoError(t, tree.CheckInvariants())
	assert.Equal(t, []string{"form"}, tree.HorizontalLayoutTargets())
	assert.Equal(t, []string{"title"}, tree.MeasureQueue(deptree.Vertical))
	// the horizontal measure waits for the form to allocate its width
	assert.Empty(t, tree.MeasureQueue(deptree.Horizontal))
	assert.Equal(t, []string{"footer"}, tree.VerticalLayoutTargets())

	again := s.Prepare()
	assert.False(t, again.HasComponentsToMeasure())
	assert.False(t, again.HasHorizontalComponentToLayout())
}

func TestRunGeneratedTree(t *testing.T) {
	r := component.Generate(component.GenerateConfig{Columns: 4, Depth: 6, MaxText: 60, Seed: 1}).MustBuild()
	env := component.NewEnvironment(r)
	s := scheduler.New(env, scheduler.Config{
		MeasureAll:  true,
		TreeOptions: []deptree.Option{deptree.WithSkipMeasurement(component.SkipHidden)},
	})

	res, err := s.Run(context.Background())
	require.NoError(t, err)
	requireSettled(t, env, res.Tree)

	w, _ := env.Size("c0")
	assert.Equal(t, 256, w)
	for _, id := range []string{"t0_0", "c0_0", "t0_5"} {
		got, _ := env.Size(id)
		assert.Equal(t, w, got, id)
	}
}
