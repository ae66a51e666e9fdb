package templates

import (
	"strconv"
	"strings"
)

type Graph struct {
	Name  string
	Nodes []Node
	Edges []Edge
}

type Node struct {
	ID        string
	Width     int
	Height    int
	Container bool
	// Pending lists the work still waiting on the node, such as "H layout".
	Pending []string
}

type EdgeKind uint8

const (
	ChildEdge EdgeKind = iota
	LayoutBlockerEdge
	MeasureBlockerEdge
)

type Edge struct {
	From, To string
	Kind     EdgeKind
	// Axis is "H" or "V" for blocker edges.
	Axis string
}

func nodeAttrs(n Node) string {
	label := n.ID + `\n` + strconv.Itoa(n.Width) + "x" + strconv.Itoa(n.Height)
	if len(n.Pending) > 0 {
		label += `\n` + strings.Join(n.Pending, ", ")
	}
	pairs := []string{"label", quote(label)}
	if n.Container {
		pairs = append(pairs, "style", "bold")
	}
	if len(n.Pending) > 0 {
		pairs = append(pairs, "color", "orange")
	}
	return attrs(pairs...)
}

func edgeAttrs(e Edge) string {
	switch e.Kind {
	case LayoutBlockerEdge:
		return attrs("style", "dashed", "color", "red", "label", quote(e.Axis+" layout"))
	case MeasureBlockerEdge:
		return attrs("style", "dashed", "color", "blue", "label", quote(e.Axis+" measure"))
	default:
		return ""
	}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// attrs renders key value pairs as a DOT attribute list.
func attrs(pairs ...string) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i+1 < len(pairs); i += 2 {
		sb.WriteString(pairs[i])
		sb.WriteByte('=')
		sb.WriteString(pairs[i+1])
		if i+2 < len(pairs)-1 {
			sb.WriteString(", ")
		}
	}
	sb.WriteByte(']')
	return sb.String()
}
