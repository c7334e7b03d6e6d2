package export

import (
	"fmt"
	"strings"

	"github.com/vk/pipeconf/internal/graph"
)

var mermaidEscaper = strings.NewReplacer(`"`, "#quot;", "|", "#124;")

// Mermaid renders g as a Mermaid flowchart.
func Mermaid(g *graph.Graph, rankDir string) string {
	dir := rankDir
	if dir == "" {
		dir = "TD"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("flowchart %s\n", dir))

	nodes := g.Nodes()
	ids := mermaidIDs(nodes)

	var orphaned []string
	for _, n := range nodes {
		id := ids[n.ID]
		label := mermaidEscaper.Replace(n.Label)
		if n.Shape == graph.ShapeEllipse {
			sb.WriteString(fmt.Sprintf("    %s([\"%s\"])\n", id, label))
		} else {
			sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", id, label))
		}
		if n.Orphaned {
			orphaned = append(orphaned, id)
		}
	}

	for _, e := range g.Edges() {
		arrow := "-->"
		if e.Kind == graph.EdgeMessage {
			arrow = "-.->"
		}
		if e.Label != "" {
			arrow += "|" + mermaidEscaper.Replace(e.Label) + "|"
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", ids[e.From], arrow, ids[e.To]))
	}

	if len(orphaned) > 0 {
		sb.WriteString("    classDef orphaned stroke-dasharray: 5 5\n")
		sb.WriteString(fmt.Sprintf("    class %s orphaned\n", strings.Join(orphaned, ",")))
	}
	return sb.String()
}

// mermaidIDs maps node IDs to Mermaid identifiers. Characters outside
// [A-Za-z0-9_] become "_"; an identifier already taken gets the node's
// index appended.
func mermaidIDs(nodes []*graph.Node) map[string]string {
	ids := make(map[string]string, len(nodes))
	taken := make(map[string]bool, len(nodes))
	for i, n := range nodes {
		id := strings.Map(func(r rune) rune {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
				return r
			}
			return '_'
		}, n.ID)
		if taken[id] {
			id = fmt.Sprintf("%s_%d", id, i)
		}
		taken[id] = true
		ids[n.ID] = id
	}
	return ids
}
