package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdparse/internal/logging"
	"github.com/yaklabco/gomdparse/internal/watch"
	"github.com/yaklabco/gomdparse/pkg/config"
	"github.com/yaklabco/gomdparse/pkg/reporter"
	"github.com/yaklabco/gomdparse/pkg/runner"
)

type parseFlags struct {
	format     string
	jobs       int
	ignore     []string
	extensions []string
	disable    []string
	noDetect   bool
	headingIDs bool
	unsafeHTML bool
	compact    bool
	noSummary  bool
	watch      bool
}

func newParseCommand(globals *globalFlags) *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [paths...]",
		Short: "Parse Markdown files and print the result",
		Long:  parseLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, globals, flags)
		},
	}

	addParseFlags(cmd, flags)

	return cmd
}

const parseLongDescription = `Parse Markdown files and print each document.

By default, parses all .md and .markdown files in the current directory
and subdirectories and prints their trees. Use "-" to read standard input.

Examples:
  gomdparse parse                        # Trees for the current directory
  gomdparse parse README.md              # Tree for one file
  gomdparse parse --format html doc.md   # Render to HTML
  gomdparse parse --format json docs/    # JSON trees for CI tooling
  gomdparse parse --format summary       # Node statistics
  cat doc.md | gomdparse parse -         # Read standard input
  gomdparse parse --watch docs/          # Re-parse on every change`

func addParseFlags(cmd *cobra.Command, flags *parseFlags) {
	cmd.Flags().StringVarP(&flags.format, "format", "f", string(config.FormatTree),
		"output format: tree, json, html, text, markdown, summary")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of files parsed at once (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "Markdown file extensions (default .md,.markdown)")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "parser IDs to disable")
	cmd.Flags().BoolVar(&flags.noDetect, "no-detect", false, "do not guess the language of unlabeled code")
	cmd.Flags().BoolVar(&flags.headingIDs, "heading-ids", false, "add slug ids to HTML headings")
	cmd.Flags().BoolVar(&flags.unsafeHTML, "unsafe-html", false, "keep javascript: and similar URLs in HTML output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify JSON output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the summary line")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-parse when files change")
}

// overrides collects the flags that were set explicitly.
func (f *parseFlags) overrides(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if changed("jobs") {
		cfg.Jobs = f.jobs
	}
	cfg.Ignore = f.ignore
	cfg.Extensions = f.extensions
	cfg.DisabledParsers = f.disable
	if changed("no-detect") {
		cfg.DetectLanguages = config.Bool(!f.noDetect)
	}
	if changed("heading-ids") {
		cfg.HTML.HeadingIDs = config.Bool(f.headingIDs)
	}
	if changed("unsafe-html") {
		cfg.HTML.Safe = config.Bool(!f.unsafeHTML)
	}

	return cfg
}

func runParse(cmd *cobra.Command, args []string, globals *globalFlags, flags *parseFlags) error {
	if flags.watch && len(args) == 1 && args[0] == "-" {
		return fmt.Errorf("%w: --watch cannot read standard input", ErrInvalidUsage)
	}
	if cmd.Flags().Changed("format") {
		if _, err := reporter.ParseFormat(flags.format); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
	}

	sess, err := newSession(cmd, globals, flags.overrides(cmd))
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(sess.cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	p, err := sess.parser()
	if err != nil {
		return err
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       string(sess.cfg.Color),
		ShowSummary: !flags.noSummary,
		Compact:     flags.compact,
		HTML:        sess.htmlOptions(),
		WorkingDir:  sess.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	parseOnce := func(ctx context.Context) error {
		result, err := sess.run(cmd, p, args)
		if err != nil {
			return err
		}
		if _, err := rep.Report(ctx, result); err != nil {
			return fmt.Errorf("report results: %w", err)
		}
		return failedFiles(result)
	}

	err = parseOnce(sess.ctx)
	if !flags.watch {
		return err
	}
	if err != nil && !IsFinding(err) {
		return err
	}

	return watchAndParse(sess, args, parseOnce)
}

// watchAndParse re-parses after every burst of changes until interrupted.
// Per-file failures are reported but do not end the watch.
func watchAndParse(sess *session, args []string, parseOnce func(context.Context) error) error {
	roots := make([]string, 0, len(args))
	for _, arg := range args {
		if !filepath.IsAbs(arg) {
			arg = filepath.Join(sess.workDir, arg)
		}
		roots = append(roots, arg)
	}
	if len(roots) == 0 {
		roots = []string{sess.workDir}
	}

	ctx, stop := signalContext(sess.ctx)
	defer stop()

	extensions := sess.runnerOptions(nil).Extensions
	if len(extensions) == 0 {
		extensions = runner.DefaultExtensions()
	}

	sess.logger.Info("watching for changes", logging.FieldPaths, roots)

	return watch.Watch(ctx, watch.Options{Roots: roots, Extensions: extensions},
		func(ctx context.Context, changed []string) error {
			sess.logger.Info("files changed", logging.FieldFiles, len(changed))
			if err := parseOnce(ctx); err != nil && !IsFinding(err) {
				return err
			}
			return nil
		})
}
