package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/delaneyj/layoutparty/component"
	"github.com/delaneyj/layoutparty/deptree"
	"github.com/delaneyj/layoutparty/scheduler"
	"github.com/urfave/cli/v3"
)

const (
	fileKey       = "file"
	verboseKey    = "verbose"
	maxPassesKey  = "max-passes"
	measureAllKey = "measure-all"
	measureKey    = "measure"
	layoutKey     = "layout"
	allKey        = "all"
	afterKey      = "after"
	outKey        = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "layoutsim",
		Usage: "Simulate layout runs over a YAML component tree",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     fileKey,
				Aliases:  []string{"f"},
				Usage:    "YAML component tree",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  verboseKey,
				Usage: "Log dependency tree activity to stderr",
			},
			&cli.UintFlag{
				Name:  maxPassesKey,
				Usage: "Give up after this many measure and layout passes",
				Value: scheduler.DefaultMaxPasses,
			},
			&cli.BoolFlag{
				Name:  measureAllKey,
				Usage: "Measure every component in the first pass",
				Value: true,
			},
			&cli.StringSliceFlag{
				Name:  measureKey,
				Usage: "IDs of components to measure",
			},
			&cli.StringSliceFlag{
				Name:  layoutKey,
				Usage: "IDs of containers to lay out in both axes",
			},
			&cli.UintFlag{
				Name:  afterKey,
				Usage: "Show the state after this many passes instead of before the first",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run the layout to completion and print every pass",
				Action: run,
			},
			{
				Name:  "status",
				Usage: "Print the dependency status of every component",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  allKey,
						Usage: "Include settled components",
					},
				},
				Action: status,
			},
			{
				Name:  "dot",
				Usage: "Write the tree and its blockers as a Graphviz graph",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  outKey,
						Usage: "Output file, stdout when empty",
					},
				},
				Action: dot,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newLogger(cmd *cli.Command) *slog.Logger {
	if !cmd.Bool(verboseKey) {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// setup loads the tree and creates a scheduler holding the requested work.
// A positive maxPasses overrides the flag.
func setup(cmd *cli.Command, maxPasses int) (*component.Environment, *scheduler.Scheduler, error) {
	spec, err := component.LoadSpec(cmd.String(fileKey))
	if err != nil {
		return nil, nil, err
	}
	registry, err := spec.Build()
	if err != nil {
		return nil, nil, err
	}
	env := component.NewEnvironment(registry)

	if maxPasses <= 0 {
		maxPasses = int(cmd.Uint(maxPassesKey))
	}
	logger := newLogger(cmd)
	s := scheduler.New(env, scheduler.Config{
		MaxPasses:  maxPasses,
		MeasureAll: cmd.Bool(measureAllKey),
		Logger:     logger,
		TreeOptions: []deptree.Option{
			deptree.WithLogger(logger),
			deptree.WithSkipMeasurement(component.SkipHidden),
		},
	})
	s.RequestMeasure(cmd.StringSlice(measureKey)...)
	s.RequestLayout(cmd.StringSlice(layoutKey)...)
	return env, s, nil
}
