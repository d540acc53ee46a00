package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdparse/internal/logging"
	"github.com/yaklabco/gomdparse/internal/ui/pretty"
	"github.com/yaklabco/gomdparse/pkg/config"
	"github.com/yaklabco/gomdparse/pkg/format"
	"github.com/yaklabco/gomdparse/pkg/reporter"
)

type fmtFlags struct {
	check      bool
	diff       bool
	write      bool
	noBackup   bool
	jobs       int
	ignore     []string
	extensions []string
}

func newFmtCommand(globals *globalFlags) *cobra.Command {
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Rewrite Markdown files in canonical form",
		Long: `Format Markdown files by parsing them and printing the tree back as
Markdown: one blank line between blocks, "# " headings, "***" rules and
fenced code with backticks.

Without flags, prints the changes as unified diffs. Use "-" to format
standard input to standard output.

Examples:
  gomdparse fmt                  # Show diffs for the current directory
  gomdparse fmt --check          # List unformatted files, exit 1 if any
  gomdparse fmt --write docs/    # Rewrite files in place (with backups)
  gomdparse fmt - < in.md        # Format standard input`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, globals, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.check, "check", false, "list files that would change and exit 1 if any")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print unified diffs of the changes")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "rewrite files in place")
	cmd.Flags().BoolVar(&flags.noBackup, "no-backup", false, "do not keep a backup when rewriting")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of files parsed at once (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "Markdown file extensions (default .md,.markdown)")

	return cmd
}

func runFmt(cmd *cobra.Command, args []string, globals *globalFlags, flags *fmtFlags) error {
	stdin := len(args) == 1 && args[0] == "-"
	if stdin && flags.write {
		return fmt.Errorf("%w: --write cannot rewrite standard input", ErrInvalidUsage)
	}

	overrides := &config.Config{Ignore: flags.ignore, Extensions: flags.extensions}
	if cmd.Flags().Changed("jobs") {
		overrides.Jobs = flags.jobs
	}

	sess, err := newSession(cmd, globals, overrides)
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

	if stdin && !flags.check && !flags.diff {
		_, err := cmd.OutOrStdout().Write(format.Source(result.Files[0].Document))
		return err
	}

	var changes []*format.Change
	for _, file := range result.Files {
		if file.Error != nil {
			sess.logger.Error("cannot format", logging.FieldPath, relativeTo(sess.workDir, file.Path), logging.FieldError, file.Error)
			continue
		}
		change, err := format.Plan(file)
		if err != nil {
			return err
		}
		if change.Changed() {
			changes = append(changes, change)
		}
	}

	showDiff := flags.diff || (!flags.write && !flags.check)
	styles := pretty.NewStyles(pretty.IsColorEnabled(string(sess.cfg.Color), cmd.OutOrStdout()))

	if showDiff {
		_, err := reporter.NewDiffReporter(reporter.Options{
			Writer:      cmd.OutOrStdout(),
			Color:       string(sess.cfg.Color),
			ShowSummary: true,
			WorkingDir:  sess.workDir,
		}).Report(sess.ctx, changes)
		if err != nil {
			return fmt.Errorf("report diffs: %w", err)
		}
	} else if flags.check {
		for _, change := range changes {
			fmt.Fprintln(cmd.OutOrStdout(), styles.FilePath.Render(relativeTo(sess.workDir, change.Path)))
		}
	}

	var errs []error

	if flags.write {
		backup := sess.cfg.ShouldBackup() && !flags.noBackup
		written := 0

		for _, change := range changes {
			ok, err := format.Apply(sess.ctx, change, format.ApplyOptions{Backup: backup})
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if ok {
				written++
				sess.logger.Info("formatted", logging.FieldPath, relativeTo(sess.workDir, change.Path))
			}
		}

		sess.logger.Debug("write finished", logging.FieldChanged, written)

		if len(errs) > 0 {
			return errors.Join(errs...)
		}
	}

	if flags.check && len(changes) > 0 {
		errs = append(errs, ErrUnformatted)
	}
	if err := failedFiles(result); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
