package parser

import "github.com/yaklabco/gomdparse/pkg/registry"

// Block parser IDs.
const (
	IDYamlHeader     = "yaml-header"
	IDHeading        = "heading"
	IDHorizontalRule = "horizontal-rule"
	IDFencedCode     = "code-fenced"
	IDIndentedCode   = "code-indented"
	IDQuote          = "quote"
	IDList           = "list"
	IDTable          = "table"
	IDSetextHeading  = "setext-heading"
)

// Inline parser IDs.
const (
	IDEscape           = "escape"
	IDCodeSpan         = "code-span"
	IDImage            = "image"
	IDLink             = "link"
	IDBoldAsterisk     = "bold-asterisk"
	IDBoldUnderscore   = "bold-underscore"
	IDItalicAsterisk   = "italic-asterisk"
	IDItalicUnderscore = "italic-underscore"
	IDStrikethrough    = "strikethrough"
	IDSubscript        = "subscript"
	IDSuperscript      = "superscript"
)

// DefaultBlockParsers returns the built-in block parsers in registration
// order.
func DefaultBlockParsers() []registry.Descriptor[BlockFunc] {
	return []registry.Descriptor[BlockFunc]{
		{ID: IDYamlHeader, Before: []string{IDHorizontalRule}, Parse: parseYamlHeader},
		{ID: IDHeading, Parse: parseATXHeading},
		{ID: IDHorizontalRule, Before: []string{IDList}, Parse: parseHorizontalRule},
		{ID: IDFencedCode, Parse: parseFencedCode},
		{ID: IDIndentedCode, Parse: parseIndentedCode},
		{ID: IDQuote, After: []string{IDIndentedCode}, Parse: parseQuote},
		{ID: IDList, After: []string{IDHorizontalRule, IDIndentedCode}, Parse: parseList},
		{ID: IDTable, Parse: parseTable},
		{
			ID:    IDSetextHeading,
			After: []string{IDHeading, IDHorizontalRule, IDList, IDQuote, IDTable},
			Parse: parseSetextHeading,
		},
	}
}

// DefaultInlineParsers returns the built-in inline parsers in registration
// order.
func DefaultInlineParsers() []registry.Descriptor[InlineParser] {
	return []registry.Descriptor[InlineParser]{
		{ID: IDEscape, Parse: InlineParser{Triggers: `\`, Parse: parseEscape}},
		{ID: IDCodeSpan, Parse: InlineParser{Triggers: "`", Parse: parseCodeSpan}},
		{ID: IDImage, Before: []string{IDLink}, Parse: InlineParser{Triggers: "!", Parse: parseImage}},
		{ID: IDLink, Parse: InlineParser{Triggers: "[", Parse: parseLink}},
		{ID: IDBoldAsterisk, Parse: InlineParser{Triggers: "*", Parse: parseBoldAsterisk}},
		{ID: IDBoldUnderscore, Parse: InlineParser{Triggers: "_", Parse: parseBoldUnderscore}},
		{
			ID:    IDItalicAsterisk,
			After: []string{IDBoldAsterisk},
			Parse: InlineParser{Triggers: "*", Parse: parseItalicAsterisk},
		},
		{
			ID:    IDItalicUnderscore,
			After: []string{IDBoldUnderscore},
			Parse: InlineParser{Triggers: "_", Parse: parseItalicUnderscore},
		},
		{ID: IDStrikethrough, Parse: InlineParser{Triggers: "~", Parse: parseStrikethrough}},
		{ID: IDSubscript, Parse: InlineParser{Triggers: "<", Parse: parseSubscript}},
		{ID: IDSuperscript, Parse: InlineParser{Triggers: "<", Parse: parseSuperscript}},
	}
}
