package templates_test

import (
	"testing"

	"github.com/delaneyj/layoutparty/cmd/layoutsim/templates"
	"github.com/stretchr/testify/assert"
)

func TestDot(t *testing.T) {
	dot := templates.Dot(&templates.Graph{
		Name: "form",
		Nodes: []templates.Node{
			{ID: "p", Width: 300, Height: 200, Container: true, Pending: []string{"H layout"}},
			{ID: "c", Width: 10, Height: 20},
		},
		Edges: []templates.Edge{
			{From: "p", To: "c"},
			{From: "c", To: "p", Kind: templates.LayoutBlockerEdge, Axis: "H"},
		},
	})

	assert.Contains(t, dot, `digraph "form" {`)
	assert.Contains(t, dot, "\t"+`"p" [label="p\n300x200\nH layout", style=bold, color=orange];`)
	assert.Contains(t, dot, "\t"+`"c" [label="c\n10x20"];`)
	assert.Contains(t, dot, "\t"+`"p" -> "c";`)
	assert.Contains(t, dot, "\t"+`"c" -> "p" [style=dashed, color=red, label="H layout"];`)
	assert.Equal(t, "}\n", dot[len(dot)-2:])
}
