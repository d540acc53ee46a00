package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdparse/internal/logging"
	"github.com/yaklabco/gomdparse/internal/ui/pretty"
	"github.com/yaklabco/gomdparse/pkg/compare"
	"github.com/yaklabco/gomdparse/pkg/config"
	goldmarkparser "github.com/yaklabco/gomdparse/pkg/parser/goldmark"
	"github.com/yaklabco/gomdparse/pkg/runner"
)

const formatJSON = "json"

type compareFlags struct {
	flavor       string
	inlines      bool
	ignoreSetext bool
	format       string
	ignore       []string
	extensions   []string
}

// fileMismatches is one file's entry in JSON output.
type fileMismatches struct {
	Path       string             `json:"path"`
	Mismatches []compare.Mismatch `json:"mismatches"`
}

func newCompareCommand(globals *globalFlags) *cobra.Command {
	flags := &compareFlags{}

	cmd := &cobra.Command{
		Use:   "compare [paths...]",
		Short: "Compare parses with the goldmark reference parser",
		Long: `Parse each file with gomdparse and with goldmark, then report where the
block trees differ. Differences are expected where gomdparse's syntax
departs from CommonMark; the command exits 1 when any file differs.

Examples:
  gomdparse compare README.md
  gomdparse compare --flavor gfm --inlines docs/
  gomdparse compare --format json > mismatches.json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args, globals, flags)
		},
	}

	cmd.Flags().StringVar(&flags.flavor, "flavor", goldmarkparser.FlavorGFM, "reference flavor: commonmark, gfm")
	cmd.Flags().BoolVar(&flags.inlines, "inlines", false, "compare inline structure, not just text")
	cmd.Flags().BoolVar(&flags.ignoreSetext, "ignore-setext", true, "treat setext and ATX headings as equal")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "output format: text, json")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "Markdown file extensions (default .md,.markdown)")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string, globals *globalFlags, flags *compareFlags) error {
	if flags.format != "text" && flags.format != formatJSON {
		return fmt.Errorf("%w: invalid format %q: must be text or json", ErrInvalidUsage, flags.format)
	}
	if flags.flavor != goldmarkparser.FlavorCommonMark && flags.flavor != goldmarkparser.FlavorGFM {
		return fmt.Errorf("%w: invalid flavor %q: must be commonmark or gfm", ErrInvalidUsage, flags.flavor)
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

	reference := goldmarkparser.New(flags.flavor)
	opts := compare.Options{Inlines: flags.inlines, IgnoreSetext: flags.ignoreSetext}

	files := make([]fileMismatches, 0, len(result.Files))
	for _, file := range result.Files {
		if file.Error != nil {
			sess.logger.Error("cannot compare", logging.FieldPath, relativeTo(sess.workDir, file.Path), logging.FieldError, file.Error)
			continue
		}

		entry, err := compareFile(sess, reference, file, opts)
		if err != nil {
			return err
		}
		files = append(files, entry)
	}

	if flags.format == formatJSON {
		err = writeMismatchesJSON(cmd.OutOrStdout(), files)
	} else {
		err = writeMismatchesText(cmd.OutOrStdout(), sess, reference.Flavor(), files)
	}
	if err != nil {
		return err
	}

	var errs []error
	for _, entry := range files {
		if len(entry.Mismatches) > 0 {
			errs = append(errs, ErrMismatch)
			break
		}
	}
	if err := failedFiles(result); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func compareFile(sess *session, reference *goldmarkparser.Parser, file runner.FileOutcome, opts compare.Options) (fileMismatches, error) {
	theirs, err := reference.Parse(sess.ctx, file.Content)
	if err != nil {
		return fileMismatches{}, fmt.Errorf("reference parse %s: %w", file.Path, err)
	}

	mismatches := compare.Documents(file.Document, theirs, opts)
	if mismatches == nil {
		mismatches = []compare.Mismatch{}
	}

	sess.logger.Debug("compared",
		logging.FieldPath, file.Path,
		logging.FieldMismatches, len(mismatches),
	)

	return fileMismatches{Path: relativeTo(sess.workDir, file.Path), Mismatches: mismatches}, nil
}

func writeMismatchesJSON(w io.Writer, files []fileMismatches) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(files); err != nil {
		return fmt.Errorf("encode mismatches: %w", err)
	}
	return nil
}

func writeMismatchesText(w io.Writer, sess *session, flavor string, files []fileMismatches) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(string(sess.cfg.Color), w))

	differ := 0
	for _, entry := range files {
		if len(entry.Mismatches) == 0 {
			continue
		}
		differ++

		fmt.Fprintln(w, styles.FilePath.Render(entry.Path))
		for _, m := range entry.Mismatches {
			fmt.Fprintf(w, "  %s %s\n", styles.Warning.Render(m.Path+":"),
				styles.Dim.Render(fmt.Sprintf("ours=%s theirs=%s", orMissing(m.Ours), orMissing(m.Theirs))))
		}
	}

	summary := fmt.Sprintf("%d of %d files match goldmark (%s)", len(files)-differ, len(files), flavor)
	if differ == 0 {
		summary = styles.Success.Render(summary)
	} else {
		summary = styles.Failure.Render(summary)
	}

	_, err := fmt.Fprintln(w, summary)
	return err
}

func orMissing(s string) string {
	if s == "" {
		return "<missing>"
	}
	return s
}
