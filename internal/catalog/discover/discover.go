// Package discover builds a type catalog by querying an openSMILE
// compatible tool for its component list and config type help.
package discover

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/vk/pipeconf/internal/catalog"
	"github.com/vk/pipeconf/internal/ctxlog"
)

// ErrToolNotFound is returned when the tool executable cannot be located.
var ErrToolNotFound = errors.New("catalog tool not found")

// RunFunc runs tool with args and returns its report.
type RunFunc func(ctx context.Context, tool string, args ...string) (string, error)

// Options configures Discover.
type Options struct {
	// Tool is the executable name or path.
	Tool string
	// BaseTypes overrides the built-in base type table, keyed by full type
	// name.
	BaseTypes map[string]string
	// Run executes the tool. Nil means ExecRun.
	Run RunFunc
}

// Discover queries the tool and converts its report into a catalog file.
func Discover(ctx context.Context, opts Options) (*catalog.File, error) {
	logger := ctxlog.FromContext(ctx).With("tool", opts.Tool)
	run := opts.Run
	if run == nil {
		run = ExecRun
	}

	logger.Debug("Listing components.")
	list, err := run(ctx, opts.Tool, "-L", "-nologfile")
	if err != nil {
		return nil, fmt.Errorf("listing components: %w", err)
	}
	logger.Debug("Reading config type help.")
	help, err := run(ctx, opts.Tool, "-H", "-nologfile")
	if err != nil {
		return nil, fmt.Errorf("reading config types: %w", err)
	}

	types := Merge(ParseComponentList(list), ParseConfigTypes(help))
	if len(types) == 0 {
		return nil, fmt.Errorf("tool %s reported no components", opts.Tool)
	}
	logger.Info("Discovered component types.", "count", len(types))
	return Import(logger, types, NewBaseTypes(opts.BaseTypes)), nil
}

// ExecRun runs tool as a subprocess. The tool prints its report to stderr
// and exits with status -1, which shows up as 255 on most platforms; in
// that case stderr is the report. A clean exit yields stdout.
func ExecRun(ctx context.Context, tool string, args ...string) (string, error) {
	path, err := exec.LookPath(tool)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, tool)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code == 255 || code == -1 {
			return stderr.String(), nil
		}
	}
	return "", fmt.Errorf("running %s %s: %w: %s", tool, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
}
