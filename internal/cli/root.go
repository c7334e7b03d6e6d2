package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vk/pipeconf/internal/app"
)

// Version is reported by --version.
var Version = "dev"

// EnvPrefix prefixes every environment variable bound to a flag.
const EnvPrefix = "PIPECONF"

// runner carries what the commands share: output streams, the filesystem,
// the resolved settings and the App built from them.
type runner struct {
	out    io.Writer
	errOut io.Writer
	fs     afero.Fs
	v      *viper.Viper
	app    *app.App
}

// Execute runs the command line in args. Output goes to out, logs and
// messages to errOut. Every returned error is an *ExitError.
func Execute(ctx context.Context, args []string, out, errOut io.Writer, fsys afero.Fs) error {
	// A missing .env is not an error.
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded.", "error", err)
	}

	root := NewRootCmd(out, errOut, fsys)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return toExitError(err)
	}
	return nil
}

// NewRootCmd creates the pipeconf command tree.
func NewRootCmd(out, errOut io.Writer, fsys afero.Fs) *cobra.Command {
	r := &runner{out: out, errOut: errOut, fs: fsys, v: viper.New()}

	cmd := &cobra.Command{
		Use:   "pipeconf",
		Short: "Inspect and validate openSMILE pipeline configurations",
		Long: `pipeconf reads openSMILE configuration files and a catalog of component
types to explain how a pipeline is wired.

It can:
• Draw the dependency graph between components and data memory levels
• Check files for unknown types, unknown fields and invalid values
• Resolve field expressions and list the fields of a type
• Import the catalog from the SMILExtract binary and keep it hot-reloaded`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: r.setup,
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := cmd.PersistentFlags()
	flags.StringP("workdir", "C", ".", "Directory to search for pipeconf.hcl.")
	flags.String("workspace", "", "Path to the workspace file. Overrides discovery in --workdir.")
	flags.String("catalog", "", "Path to the JSON or YAML type catalog.")
	flags.String("tool", "", "SMILExtract-compatible binary used to import the catalog.")
	flags.String("layout-url", "", "URL of the layout service.")
	flags.Int("workers", 0, "Number of files checked concurrently. 0 uses the workspace setting.")
	flags.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	cmd.AddCommand(
		r.graphCmd(),
		r.checkCmd(),
		r.resolveCmd(),
		r.fieldsCmd(),
		r.instancesCmd(),
		r.catalogCmd(),
		r.watchCmd(),
	)
	return cmd
}

// setup resolves settings for the command being run and builds the App.
// Flags win over PIPECONF_* variables, which win over flag defaults.
func (r *runner) setup(cmd *cobra.Command, _ []string) error {
	r.v.SetEnvPrefix(EnvPrefix)
	r.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	r.v.AutomaticEnv()
	if err := r.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	cfg, err := app.NewConfig(app.Config{
		WorkspacePath:   r.v.GetString("workspace"),
		WorkDir:         r.v.GetString("workdir"),
		CatalogPath:     r.v.GetString("catalog"),
		Tool:            r.v.GetString("tool"),
		LayoutURL:       r.v.GetString("layout-url"),
		Workers:         r.v.GetInt("workers"),
		LogFormat:       strings.ToLower(r.v.GetString("log-format")),
		LogLevel:        strings.ToLower(r.v.GetString("log-level")),
		HealthcheckPort: r.v.GetInt("healthcheck-port"),
	})
	if err != nil {
		return usageError(err)
	}

	r.app, err = app.NewApp(r.errOut, cfg, r.fs)
	if err != nil {
		return err
	}
	return nil
}

// ctx returns the command's context carrying the App's logger.
func (r *runner) ctx(cmd *cobra.Command) context.Context {
	return r.app.Context(cmd.Context())
}
