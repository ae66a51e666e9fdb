package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/delaneyj/layoutparty/component"
	"github.com/delaneyj/layoutparty/scheduler"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

func run(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	env, s, err := setup(cmd, 0)
	if err != nil {
		return err
	}

	res, err := s.Run(ctx)
	if res != nil {
		renderPasses(os.Stdout, res)
	}
	if err != nil {
		return err
	}
	renderSizes(os.Stdout, filepath.Base(cmd.String(fileKey)), env, res)

	measures, layouts := env.Counts()
	log.Printf("Layout finished in %v, %s measures and %s arranges",
		time.Since(start), humanize.Comma(int64(measures)), humanize.Comma(int64(layouts)))
	return nil
}

func renderPasses(w io.Writer, res *scheduler.Result) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"pass", "measured", "layouts", "fingerprint", "time"})
	for _, p := range res.Passes {
		tw.Append([]string{
			fmt.Sprint(p.Pass),
			humanize.Comma(int64(p.Measured)),
			humanize.Comma(int64(p.Layouts)),
			fmt.Sprintf("%016x", p.Fingerprint),
			fmt.Sprint(p.Duration),
		})
	}
	tw.SetFooter([]string{
		"total",
		humanize.Comma(int64(res.TotalMeasured())),
		humanize.Comma(int64(res.TotalLayouts())),
		"",
		fmt.Sprint(res.Duration),
	})
	tw.Render()
}

func renderSizes(w io.Writer, title string, env *component.Environment, res *scheduler.Result) {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{"component", "width", "height", "layouts"})
	for _, c := range env.Components() {
		width, height := env.Size(c.ID())
		tbl.AppendRow(table.Row{c.ID(), width, height, res.LayoutCounts[c.ID()]})
	}
	tbl.Render()
}
