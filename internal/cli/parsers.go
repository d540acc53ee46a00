package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdparse/internal/ui/pretty"
	"github.com/yaklabco/gomdparse/pkg/parser"
	"github.com/yaklabco/gomdparse/pkg/registry"
)

// Parser kinds.
const (
	kindBlock  = "block"
	kindInline = "inline"
)

// parserEntry describes one registered parser for listing.
type parserEntry struct {
	ID       string   `json:"id"`
	Kind     string   `json:"kind"`
	Position int      `json:"position"`
	Before   []string `json:"before,omitempty"`
	After    []string `json:"after,omitempty"`
	Disabled bool     `json:"disabled,omitempty"`
}

type parsersFlags struct {
	json bool
}

func newParsersCommand(globals *globalFlags) *cobra.Command {
	flags := &parsersFlags{}

	cmd := &cobra.Command{
		Use:   "parsers",
		Short: "List block and inline parsers in resolved order",
		Long: `List every built-in parser in the order it runs, with its ordering
hints. Parsers disabled by configuration are marked; pass their IDs to
disabled_parsers or --disable to turn them off.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runParsers(cmd, globals, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.json, "json", false, "write the list as JSON")

	return cmd
}

func runParsers(cmd *cobra.Command, globals *globalFlags, flags *parsersFlags) error {
	sess, err := newSession(cmd, globals, nil)
	if err != nil {
		return err
	}

	entries := listParsers(parser.Default(), sess.cfg.DisabledParsers)

	if flags.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("encode parsers: %w", err)
		}
		return nil
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(string(sess.cfg.Color), cmd.OutOrStdout()))
	return writeParsers(cmd.OutOrStdout(), styles, entries)
}

// listParsers flattens p's resolved order into entries, block parsers first.
func listParsers(p *parser.Parser, disabled []string) []parserEntry {
	isDisabled := make(map[string]bool, len(disabled))
	for _, id := range disabled {
		isDisabled[id] = true
	}

	entries := make([]parserEntry, 0, len(p.BlockOrder())+len(p.InlineOrder()))
	entries = appendEntries(entries, kindBlock, p.BlockDescriptors(), isDisabled)
	entries = appendEntries(entries, kindInline, p.InlineDescriptors(), isDisabled)

	return entries
}

func appendEntries[F any](entries []parserEntry, kind string, descs []registry.Descriptor[F], disabled map[string]bool) []parserEntry {
	for i, desc := range descs {
		entries = append(entries, parserEntry{
			ID:       desc.ID,
			Kind:     kind,
			Position: i + 1,
			Before:   desc.Before,
			After:    desc.After,
			Disabled: disabled[desc.ID],
		})
	}
	return entries
}

func writeParsers(w io.Writer, styles *pretty.Styles, entries []parserEntry) error {
	tables := map[string]*pretty.Table{
		kindBlock:  {Title: "Block parsers"},
		kindInline: {Title: "Inline parsers"},
	}

	for _, table := range tables {
		table.Columns = []pretty.Column{
			{Header: "#", Right: true},
			{Header: "ID"},
			{Header: "Before"},
			{Header: "After"},
		}
	}

	for _, e := range entries {
		id := e.ID
		if e.Disabled {
			id += " (disabled)"
		}
		table := tables[e.Kind]
		table.Rows = append(table.Rows, pretty.TableRow{
			Cells:  []string{fmt.Sprint(e.Position), id, orDash(e.Before), orDash(e.After)},
			Failed: e.Disabled,
		})
	}

	out := styles.FormatTable(*tables[kindBlock]) + "\n" + styles.FormatTable(*tables[kindInline])
	_, err := io.WriteString(w, out)
	return err
}

func orDash(ids []string) string {
	if len(ids) == 0 {
		return "-"
	}
	return strings.Join(ids, ", ")
}
