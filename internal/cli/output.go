package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/vk/pipeconf/internal/app"
	"github.com/vk/pipeconf/internal/catalog"
	"github.com/vk/pipeconf/internal/lint"
	"github.com/vk/pipeconf/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// styles renders for one writer, so colors are dropped when it is not a
// terminal.
type styles struct {
	success lipgloss.Style
	err     lipgloss.Style
	warning lipgloss.Style
	path    lipgloss.Style
	dim     lipgloss.Style
	header  lipgloss.Style
}

func newStyles(w io.Writer) *styles {
	r := lipgloss.NewRenderer(w)
	return &styles{
		success: r.NewStyle().Foreground(lipgloss.Color("green")).Bold(true),
		err:     r.NewStyle().Foreground(lipgloss.Color("red")).Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true),
		path:    r.NewStyle().Foreground(lipgloss.Color("cyan")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("240")),
		header:  r.NewStyle().Bold(true),
	}
}

func (s *styles) successLine(w io.Writer, msg string) {
	fmt.Fprintln(w, s.success.Render("✔ "+msg))
}

// writeReport prints one line per diagnostic followed by a summary.
func writeReport(w io.Writer, report *app.CheckReport) {
	s := newStyles(w)
	for _, d := range report.Diagnostics {
		sev := s.warning
		if d.Severity == lint.SeverityError {
			sev = s.err
		}
		loc := fmt.Sprintf("%s:%d:%d:", d.Path, d.Span.Line+1, d.Span.Start+1)
		fmt.Fprintf(w, "%s %s %s %s\n",
			s.path.Render(loc),
			sev.Render(string(d.Severity)+":"),
			d.Message,
			s.dim.Render("["+string(d.Rule)+"]"),
		)
	}

	errs := lint.Count(report.Diagnostics, lint.SeverityError)
	warns := lint.Count(report.Diagnostics, lint.SeverityWarning)
	files := plural(len(report.Files), "file")
	if errs == 0 && warns == 0 {
		s.successLine(w, fmt.Sprintf("No problems found in %s.", files))
		return
	}
	summary := fmt.Sprintf("%s, %s in %s.", plural(errs, "error"), plural(warns, "warning"), files)
	if errs > 0 {
		fmt.Fprintln(w, s.err.Render("✖ "+summary))
		return
	}
	fmt.Fprintln(w, s.warning.Render("⚠ "+summary))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// writeField prints the attributes of a resolved field, one per line.
func writeField(w io.Writer, f *catalog.FieldInfo) {
	s := newStyles(w)
	row := func(key, val string) {
		if val == "" {
			return
		}
		pad := strings.Repeat(" ", max(12-len(key)-1, 0))
		fmt.Fprintf(w, "%s%s %s\n", s.header.Render(key+":"), pad, val)
	}
	row("field", f.Name)
	row("type", f.Type)
	row("description", f.Description)
	row("default", defaultText(f))
	row("required", fmt.Sprint(f.Required))
	row("visibility", string(f.Visibility))
	row("typeHint", f.TypeHint)
	row("allowed", listText(f.AllowedValues))
	row("suggested", listText(f.SuggestedValues))
	if f.RecommendedValue != nil {
		row("recommended", value.Text(*f.RecommendedValue))
	}
}

// writeFields prints fields as a table.
func writeFields(w io.Writer, fields []*catalog.FieldInfo) {
	s := newStyles(w)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.dim).
		Headers("FIELD", "TYPE", "DEFAULT", "REQUIRED").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, f := range fields {
		required := ""
		if f.Required {
			required = "yes"
		}
		t.Row(f.Name, f.Type, defaultText(f), required)
	}
	fmt.Fprintln(w, t.String())
}

// writeInstances prints each instance followed by its effective fields.
func writeInstances(w io.Writer, reports []app.InstanceReport) {
	s := newStyles(w)
	for _, r := range reports {
		typeName := r.TypeName
		if !r.KnownType {
			typeName += " (unknown type)"
		}
		fmt.Fprintf(w, "%s %s\n", s.header.Render(r.Name), s.dim.Render(typeName))
		for _, f := range r.Fields {
			line := fmt.Sprintf("  %s = %s", f.Expr, f.Text)
			if f.FromDefault {
				line += " " + s.dim.Render("(default)")
			}
			fmt.Fprintln(w, line)
		}
	}
}

func defaultText(f *catalog.FieldInfo) string {
	switch {
	case f.Default == nil:
		return ""
	case f.Default.IsNull():
		return "null"
	default:
		return value.Text(*f.Default)
	}
}

func listText(vals []cty.Value) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = value.Text(v)
	}
	return strings.Join(parts, ", ")
}
