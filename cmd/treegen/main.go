package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/layoutparty/component"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
)

const (
	columnsKey = "columns"
	depthKey   = "depth"
	textKey    = "text"
	seedKey    = "seed"
	outKey     = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "treegen",
		Usage: "Generate a synthetic YAML component tree",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  columnsKey,
				Usage: "Number of columns under the root",
				Value: 4,
			},
			&cli.UintFlag{
				Name:  depthKey,
				Usage: "Nesting depth of every column",
				Value: 8,
			},
			&cli.UintFlag{
				Name:  textKey,
				Usage: "Longest paragraph in characters",
				Value: 200,
			},
			&cli.UintFlag{
				Name:  seedKey,
				Usage: "Random seed for paragraph lengths",
				Value: 1,
			},
			&cli.StringFlag{
				Name:  outKey,
				Usage: "Output file, stdout when empty",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	spec := component.Generate(component.GenerateConfig{
		Columns: int(cmd.Uint(columnsKey)),
		Depth:   int(cmd.Uint(depthKey)),
		MaxText: int(cmd.Uint(textKey)),
		Seed:    uint64(cmd.Uint(seedKey)),
	})
	registry, err := spec.Build()
	if err != nil {
		return err
	}

	out := cmd.String(outKey)
	if out == "" {
		return spec.Encode(os.Stdout)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()
	if err := spec.Encode(f); err != nil {
		return err
	}
	log.Printf("Wrote %s components to %s in %v", humanize.Comma(int64(registry.Len())), out, time.Since(start))
	return nil
}
