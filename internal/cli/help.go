package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gomdparse/internal/ui/pretty"
)

// annotationEnv holds the environment variable listing shown in root help.
const annotationEnv = "env"

// Command groups shown in root help.
const (
	groupParse   = "parse"
	groupInspect = "inspect"
	groupSetup   = "setup"
)

func commandGroups() []*cobra.Group {
	return []*cobra.Group{
		{ID: groupParse, Title: "Parsing:"},
		{ID: groupInspect, Title: "Inspection:"},
		{ID: groupSetup, Title: "Service and setup:"},
	}
}

// helpStyles colors the parts of help output.
type helpStyles struct {
	heading lipgloss.Style
	command lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{heading: plain, command: plain, flag: plain, dim: plain}
	}

	return helpStyles{
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders grouped, styled help for the command tree.
type HelpFormatter struct {
	styles helpStyles
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: newHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const helpTemplate = `{{with (or .Long .Short)}}{{trimRight .}}

{{end}}{{heading "Usage:"}}
{{- if .Runnable}}
  {{.UseLine}}{{end}}
{{- if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}
{{- if .HasExample}}

{{heading "Examples:"}}
{{.Example}}{{end}}
{{- range commandSections .}}

{{heading .Title}}
{{- range .Commands}}
  {{command (pad .Name .NamePadding)}} {{.Short}}{{end}}{{end}}
{{- if .HasAvailableLocalFlags}}

{{heading "Flags:"}}
{{flags .LocalFlags}}{{end}}
{{- if .HasAvailableInheritedFlags}}

{{heading "Global Flags:"}}
{{flags .InheritedFlags}}{{end}}
{{- with index .Annotations "env"}}

{{heading "Environment:"}}
{{.}}{{end}}
{{- if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`

// commandSection is one titled block of subcommands.
type commandSection struct {
	Title    string
	Commands []*cobra.Command
}

// sections splits the visible subcommands of cmd by group, in group order,
// with ungrouped commands last.
func sections(cmd *cobra.Command) []commandSection {
	var out []commandSection

	for _, group := range cmd.Groups() {
		section := commandSection{Title: group.Title}
		for _, sub := range cmd.Commands() {
			if sub.GroupID == group.ID && sub.IsAvailableCommand() {
				section.Commands = append(section.Commands, sub)
			}
		}
		if len(section.Commands) > 0 {
			out = append(out, section)
		}
	}

	rest := commandSection{Title: "Additional Commands:"}
	if len(out) == 0 {
		rest.Title = "Available Commands:"
	}
	for _, sub := range cmd.Commands() {
		if sub.GroupID == "" && (sub.IsAvailableCommand() || sub.Name() == "help") {
			rest.Commands = append(rest.Commands, sub)
		}
	}
	if len(rest.Commands) > 0 {
		out = append(out, rest)
	}

	return out
}

// flagUsages lays out flags as "-s, --name type   usage (default x)" with
// the usage column aligned.
func (h *HelpFormatter) flagUsages(flags *pflag.FlagSet) string {
	type row struct{ names, usage string }

	var rows []row
	width := 0

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		names := "    --" + f.Name
		if f.Shorthand != "" {
			names = "-" + f.Shorthand + ", --" + f.Name
		}

		varName, usage := pflag.UnquoteUsage(f)
		if varName != "" {
			names += " " + varName
		}
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" && f.DefValue != "[]" {
			usage += fmt.Sprintf(" (default %s)", f.DefValue)
		}

		rows = append(rows, row{names: names, usage: usage})
		width = max(width, len(names))
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, "  "+h.styles.flag.Render(rpad(r.names, width))+"   "+r.usage)
	}

	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":         h.styles.heading.Render,
		"command":         h.styles.command.Render,
		"flags":           h.flagUsages,
		"commandSections": sections,
		"pad":             rpad,
		"trimRight":       trimTrailingWhitespaces,
	}
}

// ApplyToCommand installs the help and usage output on cmd and, through
// inheritance, on every subcommand.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	tmpl := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))

	render := func(c *cobra.Command) error {
		if err := tmpl.Execute(c.OutOrStdout(), c); err != nil {
			return fmt.Errorf("render help: %w", err)
		}
		return nil
	}

	cmd.SetUsageFunc(render)
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := render(c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// rpad pads s with spaces to width.
func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// trimTrailingWhitespaces removes trailing whitespace from every line.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
