package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"strings"

	"github.com/delaneyj/layoutparty/component"
	"github.com/delaneyj/layoutparty/deptree"
	"github.com/delaneyj/layoutparty/scheduler"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

func status(ctx context.Context, cmd *cli.Command) error {
	after := int(cmd.Uint(afterKey))
	env, s, err := setup(cmd, after)
	if err != nil {
		return err
	}

	tree, err := treeAfter(ctx, s, after)
	if err != nil {
		return err
	}
	for _, c := range env.Components() {
		tree.LogDependencyStatus(c)
	}
	renderStatuses(os.Stdout, env, tree, cmd.Bool(allKey))

	if err := tree.CheckInvariants(); err != nil {
		log.Printf("Inconsistent dependency state:\n%v", err)
	}
	return nil
}

// treeAfter returns the prepared tree, or the tree as it was when the run
// gave up after the given number of passes.
func treeAfter(ctx context.Context, s *scheduler.Scheduler, after int) (*deptree.Tree, error) {
	tree := s.Prepare()
	if after <= 0 {
		return tree, nil
	}
	_, err := s.RunTree(ctx, tree)
	if err != nil && !errors.Is(err, scheduler.ErrTooManyPasses) {
		return nil, err
	}
	return tree, nil
}

func renderStatuses(w io.Writer, env *component.Environment, tree *deptree.Tree, all bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Layout dependencies")
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{"component", "axis", "sizing", "layout", "layout blockers", "measure", "measure blockers"})
	for _, c := range env.Components() {
		for _, a := range []deptree.Axis{deptree.Horizontal, deptree.Vertical} {
			st := tree.Status(c, a)
			if st.Settled() && !all {
				continue
			}
			tbl.AppendRow(table.Row{
				st.ID,
				st.Axis,
				st.Sizing,
				work(st.NeedsLayout, st.InLayoutQueue),
				strings.Join(st.LayoutBlockers, " "),
				work(st.NeedsMeasure, st.InMeasureQueue),
				strings.Join(st.MeasureBlockers, " "),
			})
		}
	}
	tbl.Render()
}

func work(needed, queued bool) string {
	switch {
	case queued:
		return "queued"
	case needed:
		return "blocked"
	default:
		return ""
	}
}
