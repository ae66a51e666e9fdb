package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/layoutparty/component"
	"github.com/delaneyj/layoutparty/deptree"
	"github.com/delaneyj/layoutparty/scheduler"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

func main() {
	flag.Parse()

	f, err := os.Create("default.pgo")
	if err != nil {
		log.Fatal(err)
	}
	pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	log.Printf("warming up")
	benchmarkFullLayout(false)

	benchmarkFullLayout(true)
	benchmarkRelayout(true)
	benchmarkInvalidation(true)
}

var (
	ww    = []int{1, 10, 100}
	hh    = []int{1, 10, 100}
	iters = 100
)

func newEnvironment(w, h int) *component.Environment {
	spec := component.Generate(component.GenerateConfig{Columns: w, Depth: h, MaxText: 200, Seed: 1})
	return component.NewEnvironment(spec.MustBuild())
}

func newScheduler(env *component.Environment, measureAll bool) *scheduler.Scheduler {
	return scheduler.New(env, scheduler.Config{
		MeasureAll:  measureAll,
		MaxPasses:   1_000,
		TreeOptions: []deptree.Option{deptree.WithSkipMeasurement(component.SkipHidden)},
	})
}

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max", "passes"})
	return tbl
}

func appendResult(tbl table.Writer, name string, w, h int, tach *tachymeter.Tachymeter, passes int) {
	calc := tach.Calc()
	tbl.AppendRows([]table.Row{
		{
			fmt.Sprintf("%s: %d * %d", name, w, h),
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
			passes,
		},
	})
}

// benchmarkFullLayout lays out a freshly built tree from nothing.
func benchmarkFullLayout(shouldRender bool) {
	tbl := newTable("Full layout")
	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})
			passes := 0
			for i := 0; i < iters; i++ {
				env := newEnvironment(w, h)
				s := newScheduler(env, true)

				start := time.Now()
				res, err := s.Run(context.Background())
				tach.AddTime(time.Since(start))
				if err != nil {
					log.Panic(err)
				}
				passes = len(res.Passes)
			}
			appendResult(tbl, "layout", w, h, tach, passes)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

// benchmarkRelayout asks a settled tree to lay out its root again.
func benchmarkRelayout(shouldRender bool) {
	tbl := newTable("Relayout")
	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})
			env := newEnvironment(w, h)
			s := newScheduler(env, true)
			if _, err := s.Run(context.Background()); err != nil {
				log.Panic(err)
			}

			passes := 0
			for i := 0; i < iters; i++ {
				s.RequestLayout("root")
				start := time.Now()
				res, err := s.Run(context.Background())
				tach.AddTime(time.Since(start))
				if err != nil {
					log.Panic(err)
				}
				passes = len(res.Passes)
			}
			appendResult(tbl, "relayout", w, h, tach, passes)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

// benchmarkInvalidation measures the dependency tree alone: every leaf is
// invalidated and the queues are drained without an environment.
func benchmarkInvalidation(shouldRender bool) {
	tbl := newTable("Invalidation")
	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})
			env := newEnvironment(w, h)
			registry := env.Registry()
			components := registry.Components()

			passes := 0
			for i := 0; i < iters; i++ {
				start := time.Now()
				tree := deptree.New(registry)
				for _, c := range components {
					tree.SetNeedsMeasure(c, true)
				}
				passes = drain(tree, registry)
				tach.AddTime(time.Since(start))
			}
			appendResult(tbl, "invalidate", w, h, tach, passes)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

func drain(tree *deptree.Tree, registry *component.Registry) int {
	passes := 0
	for tree.HasComponentsToMeasure() || tree.HasHorizontalComponentToLayout() || tree.HasVerticalComponentToLayout() {
		passes++
		for _, id := range tree.MeasureTargets() {
			tree.SetNeedsMeasureByID(id, false)
		}
		for _, id := range tree.HorizontalLayoutTargets() {
			tree.MarkAsHorizontallyLayouted(registry.MustGet(id))
		}
		for _, id := range tree.VerticalLayoutTargets() {
			tree.MarkAsVerticallyLayouted(registry.MustGet(id))
		}
	}
	return passes
}
