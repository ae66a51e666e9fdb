package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/delaneyj/layoutparty/cmd/layoutsim/templates"
	"github.com/delaneyj/layoutparty/component"
	"github.com/delaneyj/layoutparty/deptree"
	"github.com/urfave/cli/v3"
)

func dot(ctx context.Context, cmd *cli.Command) error {
	after := int(cmd.Uint(afterKey))
	env, s, err := setup(cmd, after)
	if err != nil {
		return err
	}
	tree, err := treeAfter(ctx, s, after)
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(cmd.String(fileKey)), filepath.Ext(cmd.String(fileKey)))
	g := buildGraph(name, env, tree)

	out := cmd.String(outKey)
	if out == "" {
		templates.WriteDot(os.Stdout, g)
		return nil
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()
	templates.WriteDot(f, g)
	return nil
}

var axisNames = map[deptree.Axis]string{
	deptree.Horizontal: "H",
	deptree.Vertical:   "V",
}

func buildGraph(name string, env *component.Environment, tree *deptree.Tree) *templates.Graph {
	g := &templates.Graph{Name: name}
	for _, c := range env.Components() {
		width, height := env.Size(c.ID())
		n := templates.Node{
			ID:        c.ID(),
			Width:     width,
			Height:    height,
			Container: c.IsLayoutContainer(),
		}
		for _, a := range []deptree.Axis{deptree.Horizontal, deptree.Vertical} {
			st := tree.Status(c, a)
			if st.NeedsLayout {
				n.Pending = append(n.Pending, axisNames[a]+" layout")
			}
			if st.NeedsMeasure {
				n.Pending = append(n.Pending, axisNames[a]+" measure")
			}
			for _, blocker := range st.LayoutBlockers {
				g.Edges = append(g.Edges, templates.Edge{From: blocker, To: c.ID(), Kind: templates.LayoutBlockerEdge, Axis: axisNames[a]})
			}
			for _, blocker := range st.MeasureBlockers {
				g.Edges = append(g.Edges, templates.Edge{From: blocker, To: c.ID(), Kind: templates.MeasureBlockerEdge, Axis: axisNames[a]})
			}
		}
		g.Nodes = append(g.Nodes, n)
		if parent := c.Parent(); parent != nil {
			g.Edges = append(g.Edges, templates.Edge{From: parent.ID(), To: c.ID()})
		}
	}
	return g
}
