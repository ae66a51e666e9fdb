package component

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

type GenerateConfig struct {
	// Columns placed side by side under the root.
	Columns int
	// Depth of nested containers in every column.
	Depth int
	// MaxText is the longest paragraph in characters.
	MaxText int
	Seed    uint64
}

// Generate builds a synthetic tree: a scrolling root holding Columns relatively
// sized columns, each a chain of Depth nested directional containers with a
// wrapping paragraph at every level.
func Generate(cfg GenerateConfig) Spec {
	cfg.Columns = max(cfg.Columns, 1)
	cfg.Depth = max(cfg.Depth, 1)
	cfg.MaxText = max(cfg.MaxText, 1)
	r := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	root := Spec{
		ID:          "root",
		Width:       "1024px",
		Height:      "768px",
		Layout:      LayoutSimple,
		Orientation: Horizontal,
		Scrolls:     true,
	}
	width := strconv.FormatFloat(100/float64(cfg.Columns), 'f', -1, 64) + "%"
	for i := 0; i < cfg.Columns; i++ {
		column := Spec{
			ID:     fmt.Sprintf("c%d", i),
			Width:  width,
			Layout: LayoutDirectional,
		}
		parent := &column
		for j := 0; j < cfg.Depth; j++ {
			parent.Children = append(parent.Children, Spec{
				ID:      fmt.Sprintf("t%d_%d", i, j),
				Width:   "100%",
				Content: Content{Text: 1 + r.IntN(cfg.MaxText)},
			})
			if j == cfg.Depth-1 {
				break
			}
			parent.Children = append(parent.Children, Spec{
				ID:     fmt.Sprintf("c%d_%d", i, j),
				Width:  "100%",
				Layout: LayoutDirectional,
			})
			parent = &parent.Children[len(parent.Children)-1]
		}
		root.Children = append(root.Children, column)
	}
	return root
}
