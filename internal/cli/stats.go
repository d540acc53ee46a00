package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdparse/pkg/analysis"
	"github.com/yaklabco/gomdparse/pkg/config"
	"github.com/yaklabco/gomdparse/pkg/reporter"
)

type statsFlags struct {
	sortBy     string
	asc        bool
	byKind     bool
	byFile     bool
	json       bool
	ignore     []string
	extensions []string
}

func newStatsCommand(globals *globalFlags) *cobra.Command {
	flags := &statsFlags{}

	cmd := &cobra.Command{
		Use:   "stats [paths...]",
		Short: "Summarize node kinds across Markdown files",
		Long: `Parse files and report how often each block and inline kind occurs,
with per-file block, inline and heading counts.

Examples:
  gomdparse stats docs/
  gomdparse stats --sort alpha --no-files .
  gomdparse stats --json . | jq '.byKind[0]'`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args, globals, flags)
		},
	}

	cmd.Flags().StringVar(&flags.sortBy, "sort", string(analysis.SortByCount), "sort order: count, alpha")
	cmd.Flags().BoolVar(&flags.asc, "asc", false, "sort counts lowest first")
	cmd.Flags().BoolVar(&flags.byKind, "kinds", true, "include the node kind table")
	cmd.Flags().BoolVar(&flags.byFile, "files", true, "include the per-file table")
	cmd.Flags().BoolVar(&flags.json, "json", false, "write the report as JSON")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "Markdown file extensions (default .md,.markdown)")

	return cmd
}

func runStats(cmd *cobra.Command, args []string, globals *globalFlags, flags *statsFlags) error {
	sortBy := analysis.SortField(flags.sortBy)
	if !sortBy.IsValid() {
		return fmt.Errorf("%w: invalid sort %q: must be count or alpha", ErrInvalidUsage, flags.sortBy)
	}

	sess, err := newSession(cmd, globals, &config.Config{Ignore: flags.ignore, Extensions: flags.extensions})
	if err != nil {
		return err
	}

	p, err := sess.parser()
	if err != nil {
		return err
	}

	result, err := sess.run(cmd, p, args)
	if err != nil {
		return err
	}

	report := analysis.Analyze(result, analysis.Options{
		IncludeByFile: flags.byFile,
		IncludeByKind: flags.byKind,
		SortBy:        sortBy,
		SortDesc:      !flags.asc,
		WorkingDir:    sess.workDir,
	})

	if flags.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	} else {
		opts := reporter.DefaultOptions()
		opts.Writer = cmd.OutOrStdout()
		opts.ErrorWriter = cmd.ErrOrStderr()
		opts.Color = string(sess.cfg.Color)
		opts.WorkingDir = sess.workDir

		if err := reporter.NewSummaryRenderer(opts).Render(sess.ctx, report); err != nil {
			return fmt.Errorf("render report: %w", err)
		}
	}

	return failedFiles(result)
}
