package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdparse/internal/configloader"
	"github.com/yaklabco/gomdparse/internal/logging"
	"github.com/yaklabco/gomdparse/pkg/config"
	"github.com/yaklabco/gomdparse/pkg/parser"
	"github.com/yaklabco/gomdparse/pkg/registry"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand(globals *globalFlags) *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gomdparse configuration file",
		Long: `Create a new .gomdparse.yml configuration file in the working directory
with sensible defaults. The full template also documents every parser ID
that disabled_parsers accepts.

Examples:
  gomdparse init                      Create minimal .gomdparse.yml
  gomdparse init --full               Create full config with all parsers documented
  gomdparse init --format json        Create .gomdparse.json instead
  gomdparse init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, globals, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "generate full template with all parsers documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default .gomdparse.yml or .gomdparse.json)")

	return cmd
}

func runInit(cmd *cobra.Command, globals *globalFlags, flags *initFlags) error {
	if flags.format != "yaml" && flags.format != formatJSON {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrInvalidUsage, flags.format)
	}

	workDir, err := resolveWorkDir(globals.workDir)
	if err != nil {
		return err
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".gomdparse.yml"
		if flags.format == formatJSON {
			outputPath = ".gomdparse.json"
		}
	}
	if !filepath.IsAbs(outputPath) {
		outputPath = filepath.Join(workDir, outputPath)
	}

	p := parser.Default()
	infos := parserInfos(nil, "block", p.BlockDescriptors())
	infos = parserInfos(infos, "inline", p.InlineDescriptors())

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:    flags.full,
		Format:  flags.format,
		Parsers: infos,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	logger := logging.NewInteractive()
	ctx := logging.WithLogger(cmd.Context(), logger)

	if err := configloader.WriteConfig(ctx, content, outputPath, flags.force); err != nil {
		return fmt.Errorf("init: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, relativeTo(workDir, outputPath))
	if flags.full {
		logger.Info("full template documents every parser ID")
	}
	logger.Info("run 'gomdparse parsers' to see the resolved parser order")

	return nil
}

func parserInfos[F any](infos []config.ParserInfo, kind string, descs []registry.Descriptor[F]) []config.ParserInfo {
	for _, desc := range descs {
		infos = append(infos, config.ParserInfo{
			ID:     desc.ID,
			Kind:   kind,
			Before: desc.Before,
			After:  desc.After,
		})
	}
	return infos
}
