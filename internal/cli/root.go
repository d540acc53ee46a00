// Package cli provides the Cobra command structure for gomdparse.
package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdparse/internal/configloader"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	workDir    string
	noEnv      bool
}

// NewRootCommand creates the root gomdparse command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "gomdparse",
		Short: "A fast, extensible Markdown parser",
		Long: `gomdparse parses Markdown into a typed block and inline tree.

Block and inline parsers are registered with ordering hints and resolved
into a fixed order, so the syntax can be extended or trimmed per project.
Parsed documents can be shown as a tree, rendered to HTML, text or
canonical Markdown, exported as JSON, compared against a CommonMark
reference parser, or served over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations: map[string]string{
			annotationEnv: envHelp(),
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&globals.debug, "debug", false, "enable debug logging")
	flags.StringVar(&globals.configPath, "config", "", "path to config file")
	flags.StringVar(&globals.color, "color", "auto", "colorize output: auto, always, never")
	flags.StringVarP(&globals.workDir, "chdir", "C", "", "run as if started in `dir`")
	flags.BoolVar(&globals.noEnv, "no-env", false, "ignore .env and GOMDPARSE_* variables")

	rootCmd.AddGroup(commandGroups()...)

	for _, sub := range []struct {
		group string
		cmd   *cobra.Command
	}{
		{groupParse, newParseCommand(globals)},
		{groupParse, newFmtCommand(globals)},
		{groupInspect, newCompareCommand(globals)},
		{groupInspect, newStatsCommand(globals)},
		{groupInspect, newParsersCommand(globals)},
		{groupSetup, newServeCommand(globals)},
		{groupSetup, newInitCommand(globals)},
		{groupSetup, newVersionCommand(info)},
	} {
		sub.cmd.GroupID = sub.group
		rootCmd.AddCommand(sub.cmd)
	}

	helpFormatter := NewHelpFormatter(globals.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// envHelp lists the environment variables the configuration reads.
func envHelp() string {
	vars := configloader.ListEnvVars()

	names := make([]string, 0, len(vars))
	width := 0
	for name := range vars {
		names = append(names, name)
		width = max(width, len(name))
	}
	slices.Sort(names)

	var builder strings.Builder
	for i, name := range names {
		if i > 0 {
			builder.WriteByte('\n')
		}
		fmt.Fprintf(&builder, "  %s  %s", rpad(name, width), vars[name])
	}

	return builder.String()
}
