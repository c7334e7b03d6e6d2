// Package export renders dependency graphs in formats other tools consume:
// graphlib JSON for layout engines, Graphviz DOT, Mermaid flowcharts, and
// YAML.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vk/pipeconf/internal/graph"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatDOT     Format = "dot"
	FormatMermaid Format = "mermaid"
	FormatYAML    Format = "yaml"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatDOT, FormatMermaid, FormatYAML}

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown graph format %q (want one of json, dot, mermaid, yaml)", s)
}

// Write renders g to w. rankDir is a layout direction hint such as "LR"
// or "TB"; empty means the consumer's default.
func Write(w io.Writer, g *graph.Graph, format Format, rankDir string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(FromGraph(g, rankDir))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(FromGraph(g, rankDir)); err != nil {
			return fmt.Errorf("encoding graph YAML: %w", err)
		}
		return enc.Close()
	case FormatDOT:
		_, err := io.WriteString(w, DOT(g, rankDir))
		return err
	case FormatMermaid:
		_, err := io.WriteString(w, Mermaid(g, rankDir))
		return err
	default:
		return fmt.Errorf("unknown graph format %q", format)
	}
}
