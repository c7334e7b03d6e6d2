package export

import (
	"fmt"
	"strings"

	"github.com/vk/pipeconf/internal/graph"
)

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

// DOT renders g as a Graphviz digraph.
func DOT(g *graph.Graph, rankDir string) string {
	var sb strings.Builder
	sb.WriteString("digraph pipeline {\n")
	if rankDir != "" {
		sb.WriteString(fmt.Sprintf("    rankdir=%s;\n", rankDir))
	}

	for _, n := range g.Nodes() {
		shape := "box"
		if n.Shape == graph.ShapeEllipse {
			shape = "ellipse"
		}
		attrs := []string{
			"label=" + dotQuote(n.Label),
			"shape=" + shape,
			"class=" + dotQuote(NodeClass(n)),
		}
		if n.Orphaned {
			attrs = append(attrs, "style=dashed", "color=red")
		}
		sb.WriteString(fmt.Sprintf("    %s [%s];\n", dotQuote(n.ID), strings.Join(attrs, ", ")))
	}

	for _, e := range g.Edges() {
		var attrs []string
		if e.Label != "" {
			attrs = append(attrs, "label="+dotQuote(e.Label))
		}
		if e.Kind == graph.EdgeMessage {
			attrs = append(attrs, "style=dashed", "class="+dotQuote(e.Class))
		}
		line := fmt.Sprintf("    %s -> %s", dotQuote(e.From), dotQuote(e.To))
		if len(attrs) > 0 {
			line += " [" + strings.Join(attrs, ", ") + "]"
		}
		sb.WriteString(line + ";\n")
	}

	sb.WriteString("}\n")
	return sb.String()
}
