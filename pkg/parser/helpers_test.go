package parser_test

import (
	"github.com/yaklabco/gomdparse/pkg/mdast"
)

func txt(s string) *mdast.Text {
	return &mdast.Text{Text: s}
}

func para(inlines ...mdast.Inline) *mdast.Paragraph {
	return &mdast.Paragraph{Inlines: inlines}
}

func textPara(s string) *mdast.Paragraph {
	return para(txt(s))
}

func item(blocks ...mdast.Block) *mdast.ListItem {
	return &mdast.ListItem{Blocks: blocks}
}

func bullets(bullet byte, items ...*mdast.ListItem) *mdast.List {
	return &mdast.List{Style: mdast.ListBulleted, Bullet: bullet, Items: items}
}

func numbered(items ...*mdast.ListItem) *mdast.List {
	return &mdast.List{Style: mdast.ListNumbered, Items: items}
}

func blocks(b ...mdast.Block) []mdast.Block {
	return b
}

func atx(level int, s string) *mdast.Heading {
	return &mdast.Heading{Level: level, Inlines: []mdast.Inline{txt(s)}}
}
