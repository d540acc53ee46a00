package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdparse/pkg/mdast"
)

func text(s string) []mdast.Inline {
	return []mdast.Inline{&mdast.Text{Text: s}}
}

func TestBlockString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		block mdast.Block
		want  string
	}{
		{
			name:  "atx heading",
			block: &mdast.Heading{Level: 3, Inlines: text("Title")},
			want:  "### Title",
		},
		{
			name:  "setext heading",
			block: &mdast.Heading{Level: 2, Setext: true, Inlines: text("Hi")},
			want:  "Hi\n---",
		},
		{
			name: "nested list",
			block: &mdast.List{Bullet: '*', Items: []*mdast.ListItem{
				{Blocks: []mdast.Block{
					&mdast.Paragraph{Inlines: text("a")},
					&mdast.List{Style: mdast.ListNumbered, Items: []*mdast.ListItem{
						{Blocks: []mdast.Block{&mdast.Paragraph{Inlines: text("b")}}},
						{Blocks: []mdast.Block{&mdast.Paragraph{Inlines: text("c")}}},
					}},
				}},
				{Blocks: []mdast.Block{&mdast.Paragraph{Inlines: text("d")}}},
			}},
			want: "* a\n\n  1. b\n  2. c\n* d",
		},
		{
			name: "quote",
			block: &mdast.Quote{Blocks: []mdast.Block{
				&mdast.Paragraph{Inlines: text("one")},
				&mdast.Paragraph{Inlines: text("two")},
			}},
			want: "> one\n>\n> two",
		},
		{
			name:  "fenced code",
			block: &mdast.Code{Text: "x := 1", Language: "go", Fenced: true},
			want:  "```go\nx := 1\n```",
		},
		{
			name:  "fence longer than content backticks",
			block: &mdast.Code{Text: "````", Fenced: true},
			want:  "`````\n````\n`````",
		},
		{
			name:  "indented code",
			block: &mdast.Code{Text: "a\n\nb"},
			want:  "    a\n\n    b",
		},
		{
			name: "table",
			block: &mdast.Table{
				Columns: []mdast.ColumnDefinition{{Alignment: mdast.AlignNone}, {Alignment: mdast.AlignCenter}},
				Rows: []mdast.TableRow{
					{Cells: []mdast.TableCell{{Inlines: text("h1")}, {Inlines: text("h2")}}},
					{Cells: []mdast.TableCell{{Inlines: text("c1")}}},
				},
			},
			want: "| h1 | h2 |\n|---|:---:|\n| c1 |  |",
		},
		{
			name:  "yaml header",
			block: &mdast.YamlHeader{Raw: "title: x"},
			want:  "---\ntitle: x\n---",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.block.String())
		})
	}
}

func TestInlineString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		inline mdast.Inline
		want   string
	}{
		{
			name:   "bold default delimiter",
			inline: &mdast.Bold{Inlines: text("b")},
			want:   "**b**",
		},
		{
			name: "italic in bold",
			inline: &mdast.Bold{Delimiter: "__", Inlines: []mdast.Inline{
				&mdast.Italic{Delimiter: "_", Inlines: text("x")},
			}},
			want: "___x___",
		},
		{
			name:   "strikethrough",
			inline: &mdast.Strikethrough{Inlines: text("s")},
			want:   "~~s~~",
		},
		{
			name:   "subscript",
			inline: &mdast.Subscript{Inlines: text("2")},
			want:   "<sub>2</sub>",
		},
		{
			name:   "superscript",
			inline: &mdast.Superscript{Inlines: text("2")},
			want:   "<sup>2</sup>",
		},
		{
			name:   "escaped text",
			inline: &mdast.Text{Text: "*", Escaped: true},
			want:   `\*`,
		},
		{
			name:   "code span with backtick",
			inline: &mdast.CodeSpan{Text: "a`b"},
			want:   "``a`b``",
		},
		{
			name:   "link with title",
			inline: &mdast.Link{Inlines: text("site"), URL: "https://x.y", Title: "X"},
			want:   `[site](https://x.y "X")`,
		},
		{
			name:   "image",
			inline: &mdast.Image{Alt: "logo", URL: "l.png"},
			want:   "![logo](l.png)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.inline.String())
		})
	}
}

func TestBlocksString_ClosesLists(t *testing.T) {
	t.Parallel()

	item := func(s string) []*mdast.ListItem {
		return []*mdast.ListItem{{Blocks: []mdast.Block{&mdast.Paragraph{Inlines: text(s)}}}}
	}

	tests := []struct {
		name   string
		blocks []mdast.Block
		want   string
	}{
		{
			name: "same bullet lists",
			blocks: []mdast.Block{
				&mdast.List{Bullet: '-', Items: item("a")},
				&mdast.List{Bullet: '-', Items: item("b")},
			},
			want: "- a\n\n\n- b",
		},
		{
			name: "numbered lists",
			blocks: []mdast.Block{
				&mdast.List{Style: mdast.ListNumbered, Items: item("a")},
				&mdast.List{Style: mdast.ListNumbered, Items: item("b")},
			},
			want: "1. a\n\n\n1. b",
		},
		{
			name: "indented code after list",
			blocks: []mdast.Block{
				&mdast.List{Bullet: '-', Items: item("a")},
				&mdast.Code{Text: "code"},
			},
			want: "- a\n\n\n    code",
		},
		{
			name: "different bullets",
			blocks: []mdast.Block{
				&mdast.List{Bullet: '-', Items: item("a")},
				&mdast.List{Bullet: '*', Items: item("b")},
			},
			want: "- a\n\n* b",
		},
		{
			name: "paragraph after list",
			blocks: []mdast.Block{
				&mdast.List{Bullet: '-', Items: item("a")},
				&mdast.Paragraph{Inlines: text("b")},
			},
			want: "- a\n\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, mdast.BlocksString(tt.blocks))
		})
	}
}
