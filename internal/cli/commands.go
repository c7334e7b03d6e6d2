package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vk/pipeconf/internal/graph/export"
	"github.com/vk/pipeconf/internal/lint"
)

func (r *runner) graphCmd() *cobra.Command {
	var (
		collapse  bool
		format    string
		useLayout bool
	)
	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Print the dependency graph of a configuration",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return usageError(err)
			}
			settings := r.app.Settings()
			opts := settings.Graph.Options
			if cmd.Flags().Changed("collapse") {
				opts.Collapse = collapse
			}

			ctx := r.ctx(cmd)
			g, err := r.app.Graph(ctx, args[0], opts)
			if err != nil {
				return err
			}
			if !useLayout {
				return export.Write(r.out, g, f, settings.Graph.RankDir)
			}

			result, err := r.app.Layout(ctx, g)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(r.out)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().BoolVar(&collapse, "collapse", false, "Replace level nodes with direct writer-to-reader edges.")
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatJSON), "Output format: json, dot, mermaid or yaml.")
	cmd.Flags().BoolVar(&useLayout, "layout", false, "Send the graph to the layout service and print the positions.")
	return cmd
}

func (r *runner) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file|dir>...",
		Short: "Validate configuration files against the catalog",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := r.app.Check(r.ctx(cmd), args)
			if err != nil {
				return err
			}
			writeReport(r.out, report)
			if n := lint.Count(report.Diagnostics, lint.SeverityError); n > 0 {
				return &ExitError{Code: ExitLintError, Message: fmt.Sprintf("check failed: %d error(s) found", n)}
			}
			return nil
		},
	}
}

func (r *runner) resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <type> <field-expr>",
		Short: "Resolve a field expression on a component type",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := r.app.Resolve(r.ctx(cmd), args[0], args[1])
			if err != nil {
				return err
			}
			writeField(r.out, field)
			return nil
		},
	}
}

func (r *runner) fieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields <type>",
		Short: "List the fields of a type, including inherited ones",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := r.app.Fields(r.ctx(cmd), args[0])
			if err != nil {
				return err
			}
			writeFields(r.out, fields)
			return nil
		},
	}
}

func (r *runner) instancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "instances <file>",
		Short: "List assembled instances and their effective field values",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := r.app.Instances(r.ctx(cmd), args[0])
			if err != nil {
				return err
			}
			writeInstances(r.out, reports)
			return nil
		},
	}
}

func (r *runner) catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the type catalog",
	}

	var outPath string
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Build the catalog by querying the SMILExtract binary",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := outPath
			if path == "" {
				path = r.app.Settings().Catalog.Path
			}
			if path == "" {
				return usageError(errors.New("no output path: pass -o or set catalog.path in pipeconf.hcl"))
			}
			f, err := r.app.ImportCatalog(r.ctx(cmd), path)
			if err != nil {
				return err
			}
			newStyles(r.out).successLine(r.out, fmt.Sprintf("Imported %d components and %d objects into %s", len(f.Components), len(f.Objects), path))
			return nil
		},
	}
	importCmd.Flags().StringVarP(&outPath, "output", "o", "", "File to write the catalog to. Defaults to catalog.path.")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the loaded catalog as JSON",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.app.WriteCatalog(r.ctx(cmd), r.out)
		},
	}

	cmd.AddCommand(importCmd, showCmd)
	return cmd
}

func (r *runner) watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the catalog loaded and reload it when the file changes",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(r.ctx(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return r.app.Watch(ctx)
		},
	}
	cmd.Flags().Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	return cmd
}
