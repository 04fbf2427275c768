package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/indaco/csprojchange/internal/config"
	"github.com/indaco/csprojchange/internal/core"
	"github.com/indaco/csprojchange/internal/discovery"
	"github.com/indaco/csprojchange/internal/options"
	"github.com/indaco/csprojchange/internal/printer"
	"github.com/indaco/csprojchange/internal/project"
	"github.com/indaco/csprojchange/internal/tui"
	"github.com/indaco/csprojchange/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

const appName = "csprojchange"

// introLines are printed before anything else on every invocation.
var introLines = []string{
	"Small tool to change version and other tags in csproj modern format files.",
	"Usage for tag update: " + appName + " -f filename -t tag-name -v new-value",
	"Usage for package version update: " + appName + " -m package -f filename -t package-name -v new-version",
	"Use folder instead filename to update all csproj files recursively.",
}

// ArgumentError holds every problem found in the command line arguments.
// Nothing has been written when it is returned.
type ArgumentError struct {
	Errs []error
}

func (e *ArgumentError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return "invalid arguments: " + strings.Join(msgs, "; ")
}

// Execute prints the intro text, runs the root command with args and reports
// errors on out. The returned error is nil only when every file was processed.
func Execute(ctx context.Context, args []string, fsys core.FileSystem, out io.Writer) error {
	for _, line := range introLines {
		fmt.Fprintln(out, line)
	}

	err := New(fsys, out).Run(ctx, args)
	if err == nil {
		return nil
	}

	var argErr *ArgumentError
	if errors.As(err, &argErr) {
		for _, e := range argErr.Errs {
			printer.Fprintln(out, printer.Error, "Error in source arguments: "+e.Error())
		}
		return err
	}

	printer.Fprintln(out, printer.Error, "Error: "+err.Error())
	return err
}

// New builds the root CLI command. Output goes to out and every file
// operation goes through fsys.
func New(fsys core.FileSystem, out io.Writer) *urfavecli.Command {
	var noColor bool

	// -v is the value flag, so the version flag keeps only its long name.
	urfavecli.VersionFlag = &urfavecli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}

	return &urfavecli.Command{
		Name:      appName,
		Version:   "v" + strings.TrimPrefix(version.GetVersion(), "v"),
		Usage:     "Change versions, tags and package references in .csproj files",
		UsageText: appName + " -f <file|folder> [-m tag|package] [-t name] [-s attribute] [-v value]",
		Writer:    out,
		ErrWriter: out,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Input file or folder to be processed (required)",
			},
			&urfavecli.StringFlag{
				Name:    "tag",
				Aliases: []string{"t"},
				Usage:   "Tag or package name",
			},
			&urfavecli.StringFlag{
				Name:    "subtag",
				Aliases: []string{"s"},
				Usage:   "Attribute of the matched tag to update",
			},
			&urfavecli.StringFlag{
				Name:    "value",
				Aliases: []string{"v"},
				Usage:   "Value or version",
			},
			&urfavecli.StringFlag{
				Name:        "mode",
				Aliases:     []string{"m"},
				Usage:       "Mode: tag or package",
				DefaultText: options.ModeTag.String(),
			},
			&urfavecli.StringFlag{
				Name:        "config",
				Usage:       "Path to a config file",
				DefaultText: config.DefaultYAMLFile,
			},
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColor,
			},
		},
		OnUsageError: func(ctx context.Context, cmd *urfavecli.Command, err error, isSubcommand bool) error {
			return &ArgumentError{Errs: []error{err}}
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(!tui.ColorEnabled(noColor))
			return ctx, nil
		},
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			return run(ctx, cmd, fsys, out)
		},
	}
}

// run validates the flags, then loads the config and processes every
// enumerated file in order.
func run(ctx context.Context, cmd *urfavecli.Command, fsys core.FileSystem, out io.Writer) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfigFn(ctx, fsys, cmd.String("config"))
	if err != nil {
		return err
	}
	if !cmd.IsSet("mode") {
		opts.Mode = cfg.DefaultMode()
	}

	files, err := discovery.NewService(fsys, cfg).Enumerate(ctx, opts.Path)
	if err != nil {
		return err
	}

	summary, err := project.NewProcessor(fsys, opts).
		WithSkipInvalid(cfg.SkipInvalid).
		WithOutput(out).
		Run(ctx, files)
	if err != nil {
		return err
	}
	if n := len(summary.Skipped); n > 0 {
		printer.Fprintln(out, printer.Warning, fmt.Sprintf("Skipped %d of %d file(s) with malformed XML", n, len(files)))
	}
	return nil
}

// resolveOptions builds the Options record from the flags alone. When --mode
// is not given the mode is left as tag, for the caller to replace with the
// config file's mode.
func resolveOptions(cmd *urfavecli.Command) (options.Options, error) {
	var errs []error

	mode := options.ModeTag
	if cmd.IsSet("mode") {
		parsed, err := options.ParseMode(cmd.String("mode"))
		if err != nil {
			errs = append(errs, err)
		} else {
			mode = parsed
		}
	}

	opts := options.Options{
		Mode:   mode,
		Path:   cmd.String("file"),
		Tag:    cmd.String("tag"),
		SubTag: cmd.String("subtag"),
		Value:  cmd.String("value"),
	}

	if err := opts.Validate(); err != nil {
		errs = append(errs, splitJoined(err)...)
	}
	if len(errs) > 0 {
		return options.Options{}, &ArgumentError{Errs: errs}
	}

	return opts, nil
}

// splitJoined returns the errors combined by errors.Join, or err itself.
func splitJoined(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
