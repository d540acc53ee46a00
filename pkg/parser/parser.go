// Package parser turns Markdown text into an mdast.Document.
//
// Parsing has two stages. The block engine walks the lines of a
// textwin.Window and asks each registered block parser, in resolved order,
// whether it recognizes the current line; container blocks (quotes, list
// items) strip their markers and recurse. Paragraph, heading and table cell
// text is then handed to the inline engine, which scans for delimiter
// triggers and matches open/close pairs.
//
// Parser ordering is declarative: each parser carries Before/After hints that
// are resolved once by package registry.
package parser

import (
	"fmt"
	"strings"
	"sync"

	"github.com/yaklabco/gomdparse/pkg/mdast"
	"github.com/yaklabco/gomdparse/pkg/registry"
	"github.com/yaklabco/gomdparse/pkg/textwin"
)

// LanguageDetector guesses the language of unlabeled code.
type LanguageDetector func(code []byte) string

// Parser holds resolved block and inline parser orders. It is immutable and
// safe for concurrent use.
type Parser struct {
	blocks  *registry.Order[BlockFunc]
	inlines *registry.Order[InlineParser]

	// triggers is the union of inline trigger bytes.
	triggers *textwin.CharSet

	// byTrigger lists inline parsers per trigger byte, in resolved order.
	byTrigger [256][]InlineFunc

	detectLanguage LanguageDetector
}

// Option configures a Parser.
type Option func(*options)

type options struct {
	blocks   []registry.Descriptor[BlockFunc]
	inlines  []registry.Descriptor[InlineParser]
	disabled []string
	detector LanguageDetector
}

// WithBlockParser registers an additional block parser.
func WithBlockParser(desc registry.Descriptor[BlockFunc]) Option {
	return func(o *options) {
		o.blocks = append(o.blocks, desc)
	}
}

// WithInlineParser registers an additional inline parser.
func WithInlineParser(desc registry.Descriptor[InlineParser]) Option {
	return func(o *options) {
		o.inlines = append(o.inlines, desc)
	}
}

// WithoutParsers removes block or inline parsers by ID.
func WithoutParsers(ids ...string) Option {
	return func(o *options) {
		o.disabled = append(o.disabled, ids...)
	}
}

// WithLanguageDetector sets the detector used for code blocks without a
// language.
func WithLanguageDetector(detect LanguageDetector) Option {
	return func(o *options) {
		o.detector = detect
	}
}

// New builds a parser from the default parsers plus any options. It fails
// on duplicate IDs or ordering cycles.
func New(opts ...Option) (*Parser, error) {
	cfg := options{
		blocks:  DefaultBlockParsers(),
		inlines: DefaultInlineParsers(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	blockReg := registry.New[BlockFunc]()
	for _, desc := range cfg.blocks {
		if err := blockReg.Register(desc); err != nil {
			return nil, fmt.Errorf("block parser: %w", err)
		}
	}

	inlineReg := registry.New[InlineParser]()
	for _, desc := range cfg.inlines {
		if err := inlineReg.Register(desc); err != nil {
			return nil, fmt.Errorf("inline parser: %w", err)
		}
	}

	for _, id := range cfg.disabled {
		if !blockReg.Remove(id) && !inlineReg.Remove(id) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownParser, id)
		}
	}

	blocks, err := blockReg.Resolve()
	if err != nil {
		return nil, fmt.Errorf("block parsers: %w", err)
	}

	inlines, err := inlineReg.Resolve()
	if err != nil {
		return nil, fmt.Errorf("inline parsers: %w", err)
	}

	p := &Parser{
		blocks:         blocks,
		inlines:        inlines,
		detectLanguage: cfg.detector,
	}

	var triggers strings.Builder
	for i := range inlines.Len() {
		desc := inlines.At(i)
		for idx := range len(desc.Parse.Triggers) {
			c := desc.Parse.Triggers[idx]
			if len(p.byTrigger[c]) == 0 {
				triggers.WriteByte(c)
			}
			p.byTrigger[c] = append(p.byTrigger[c], desc.Parse.Parse)
		}
	}

	p.triggers = textwin.NewCharSet(triggers.String())

	return p, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Parser {
	p, err := New(opts...)
	if err != nil {
		panic(err)
	}

	return p
}

var defaultParser = sync.OnceValue(func() *Parser {
	return MustNew()
})

// Default returns the process-wide parser with the default parser set. It
// is built on first use.
func Default() *Parser {
	return defaultParser()
}

// Parse parses text into a document.
func (p *Parser) Parse(text string) *mdast.Document {
	return p.ParseWindow(textwin.New(text))
}

// ParseWindow parses the lines of w into a document.
func (p *Parser) ParseWindow(w textwin.Window) *mdast.Document {
	return mdast.NewDocument(p.parseBlocks(w, 0))
}

// ParseInlines parses a single run of text into inlines.
func (p *Parser) ParseInlines(text string) []mdast.Inline {
	w := textwin.New(text)
	return p.parseInlines(w, w.String())
}

// BlockOrder returns the resolved block parser IDs.
func (p *Parser) BlockOrder() []string {
	return p.blocks.IDs()
}

// InlineOrder returns the resolved inline parser IDs.
func (p *Parser) InlineOrder() []string {
	return p.inlines.IDs()
}

// BlockDescriptors returns the resolved block parser descriptors.
func (p *Parser) BlockDescriptors() []registry.Descriptor[BlockFunc] {
	return p.blocks.All()
}

// InlineDescriptors returns the resolved inline parser descriptors.
func (p *Parser) InlineDescriptors() []registry.Descriptor[InlineParser] {
	return p.inlines.All()
}
