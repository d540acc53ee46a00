package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdparse/internal/configloader"
	"github.com/yaklabco/gomdparse/internal/logging"
	"github.com/yaklabco/gomdparse/pkg/config"
	"github.com/yaklabco/gomdparse/pkg/langdetect"
	"github.com/yaklabco/gomdparse/pkg/parser"
	"github.com/yaklabco/gomdparse/pkg/render"
	"github.com/yaklabco/gomdparse/pkg/runner"
)

// session is the resolved state a command runs with: merged configuration,
// working directory and a logger bound into ctx.
type session struct {
	ctx     context.Context
	cfg     *config.Config
	workDir string
	logger  *log.Logger
}

// newSession loads configuration with overrides taken from the command's
// flags and sets up logging.
func newSession(cmd *cobra.Command, globals *globalFlags, overrides *config.Config) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	workDir, err := resolveWorkDir(globals.workDir)
	if err != nil {
		return nil, err
	}

	if overrides == nil {
		overrides = &config.Config{}
	}
	if cmd.Flags().Changed("color") {
		overrides.Color = config.ColorMode(globals.color)
	}
	if globals.debug {
		overrides.Log.Level = "debug"
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: globals.configPath,
		IgnoreEnv:    globals.noEnv,
		CLIConfig:    overrides,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	cfg := loadResult.Config

	logger := logging.NewWithOptions(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}
	logger.Debug("configuration resolved",
		logging.FieldWorkingDir, workDir,
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
	)

	return &session{
		ctx:     logging.WithLogger(ctx, logger),
		cfg:     cfg,
		workDir: workDir,
		logger:  logger,
	}, nil
}

func resolveWorkDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: --chdir: %w", ErrInvalidUsage, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: --chdir: %s is not a directory", ErrInvalidUsage, dir)
	}

	return abs, nil
}

// parser builds the parser the configuration asks for. Unknown disabled IDs
// were already reported as warnings and are skipped here.
func (s *session) parser() (*parser.Parser, error) {
	known := slices.Concat(parser.Default().BlockOrder(), parser.Default().InlineOrder())

	var disabled []string
	for _, id := range s.cfg.DisabledParsers {
		if slices.Contains(known, id) {
			disabled = append(disabled, id)
		}
	}

	opts := []parser.Option{parser.WithoutParsers(disabled...)}
	if s.cfg.ShouldDetectLanguages() {
		opts = append(opts, parser.WithLanguageDetector(langdetect.Detect))
	}

	p, err := parser.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("build parser: %w", err)
	}

	if len(disabled) > 0 {
		s.logger.Debug("parsers disabled", logging.FieldParser, disabled)
	}

	return p, nil
}

// runnerOptions maps the configuration onto a run over paths.
func (s *session) runnerOptions(paths []string) runner.Options {
	return runner.Options{
		Paths:        paths,
		WorkingDir:   s.workDir,
		Extensions:   s.cfg.Extensions,
		ExcludeGlobs: s.cfg.Ignore,
		Jobs:         s.cfg.Jobs,
	}
}

// run parses paths, or standard input when paths is exactly "-".
func (s *session) run(cmd *cobra.Command, p *parser.Parser, paths []string) (*runner.Result, error) {
	if len(paths) == 1 && paths[0] == "-" {
		return s.runStdin(cmd, p)
	}

	opts := s.runnerOptions(paths)
	s.logger.Debug("starting run", logging.FieldPaths, opts.Paths, logging.FieldJobs, opts.Jobs)

	result, err := runner.New(p).Run(s.ctx, opts)
	if err != nil {
		return result, fmt.Errorf("parse run: %w", err)
	}

	s.logger.Debug("run finished",
		logging.FieldFiles, result.Stats.FilesDiscovered,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldBlocks, result.Stats.Blocks,
		logging.FieldDuration, result.Stats.Duration,
	)

	return result, nil
}

// stdinPath names standard input in output.
const stdinPath = "<stdin>"

func (s *session) runStdin(cmd *cobra.Command, p *parser.Parser) (*runner.Result, error) {
	content, err := readAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}

	doc := p.Parse(string(content))

	return &runner.Result{
		Files: []runner.FileOutcome{{Path: stdinPath, Content: content, Document: doc}},
		Stats: runner.Stats{
			FilesDiscovered: 1,
			FilesParsed:     1,
			Blocks:          runner.CountBlocks(doc),
			Bytes:           int64(len(content)),
		},
	}, nil
}

// htmlOptions maps the html section of the configuration.
func (s *session) htmlOptions() render.HTMLOptions {
	return render.HTMLOptions{
		HeadingIDs: config.BoolValue(s.cfg.HTML.HeadingIDs, false),
		Safe:       config.BoolValue(s.cfg.HTML.Safe, true),
	}
}

// failedFiles turns per-file errors into the findings signal.
func failedFiles(result *runner.Result) error {
	if result.HasErrors() {
		return errors.Join(append([]error{ErrFilesFailed}, result.Errors()...)...)
	}
	return nil
}
