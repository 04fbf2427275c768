package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/indaco/csprojchange/internal/core"
	"github.com/indaco/csprojchange/internal/options"
	"github.com/indaco/csprojchange/internal/printer"
	"github.com/indaco/csprojchange/internal/semver"
)

// Result describes what happened to one file.
type Result struct {
	Path                string
	Changes             []Change
	DeclarationStripped bool
	Warnings            []string
}

// Summary aggregates the results of a run.
type Summary struct {
	Results []Result
	// Skipped lists files that failed to parse when skipping is enabled.
	Skipped []string
}

// Processor applies one set of options to project files, one file at a time.
type Processor struct {
	fs          core.FileSystem
	opts        options.Options
	skipInvalid bool
	out         io.Writer
}

// NewProcessor creates a Processor writing progress lines to stdout.
func NewProcessor(fs core.FileSystem, opts options.Options) *Processor {
	return &Processor{fs: fs, opts: opts, out: os.Stdout}
}

// WithSkipInvalid makes Run report and skip files with malformed XML
// instead of stopping at the first one.
func (p *Processor) WithSkipInvalid(skip bool) *Processor {
	p.skipInvalid = skip
	return p
}

// WithOutput redirects progress and warning lines.
func (p *Processor) WithOutput(w io.Writer) *Processor {
	p.out = w
	return p
}

// Run processes paths sequentially. It stops at the first error; files
// processed before it stay modified. A *ParseError is skipped instead when
// WithSkipInvalid(true) was set.
func (p *Processor) Run(ctx context.Context, paths []string) (*Summary, error) {
	summary := &Summary{}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result, err := p.Process(ctx, path)
		if err != nil {
			var perr *ParseError
			if p.skipInvalid && errors.As(err, &perr) {
				printer.Fprintln(p.out, printer.Warning, fmt.Sprintf("Skipping %s: %v", path, perr.Err))
				summary.Skipped = append(summary.Skipped, path)
				continue
			}
			return summary, err
		}

		summary.Results = append(summary.Results, *result)
	}

	return summary, nil
}

// Process loads, updates and rewrites a single file. The file is rewritten
// even when nothing matched.
func (p *Processor) Process(ctx context.Context, path string) (*Result, error) {
	fmt.Fprintf(p.out, "Processing file: %s\n", path)

	doc, err := Load(ctx, p.fs, path)
	if err != nil {
		return nil, err
	}

	result := &Result{Path: path, Changes: Apply(doc, p.opts)}
	if p.opts.Mode == options.ModePackage {
		result.Warnings = versionWarnings(p.opts.Tag, result.Changes)
	}

	if err := doc.Save(ctx, p.fs); err != nil {
		return nil, err
	}

	stripped, err := StripDeclaration(ctx, p.fs, path)
	if err != nil {
		return nil, err
	}
	result.DeclarationStripped = stripped

	for _, w := range result.Warnings {
		printer.Fprintln(p.out, printer.Warning, w)
	}

	return result, nil
}

// versionWarnings flags values that are not versions and version downgrades.
func versionWarnings(pkg string, changes []Change) []string {
	var warnings []string
	for _, c := range changes {
		next, err := semver.Parse(c.New)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %q is not a valid package version", pkg, c.New))
			continue
		}
		prev, err := semver.Parse(c.Old)
		if err != nil {
			continue
		}
		if next.Compare(prev) < 0 {
			warnings = append(warnings, fmt.Sprintf("%s: downgrading from %s to %s", pkg, prev, next))
		}
	}
	return warnings
}
