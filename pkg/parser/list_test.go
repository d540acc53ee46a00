package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdparse/pkg/mdast"
	"github.com/yaklabco/gomdparse/pkg/parser"
)

func TestParse_Lists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []mdast.Block
	}{
		{
			name:  "single item",
			input: "- List",
			want:  blocks(bullets('-', item(textPara("List")))),
		},
		{
			name:  "simple",
			input: "- a\n- b\n- c",
			want: blocks(bullets('-',
				item(textPara("a")),
				item(textPara("b")),
				item(textPara("c")),
			)),
		},
		{
			name:  "two space marker nests",
			input: "- a\n  - b",
			want: blocks(bullets('-',
				item(textPara("a"), bullets('-', item(textPara("b")))),
			)),
		},
		{
			name:  "one space marker is a sibling",
			input: "- a\n - b",
			want: blocks(bullets('-',
				item(textPara("a")),
				item(textPara("b")),
			)),
		},
		{
			name:  "nested then back out",
			input: "- a\n  - b\n- c",
			want: blocks(bullets('-',
				item(textPara("a"), bullets('-', item(textPara("b")))),
				item(textPara("c")),
			)),
		},
		{
			name:  "three levels",
			input: "* one\n  * two\n    * three",
			want: blocks(bullets('*',
				item(textPara("one"), bullets('*',
					item(textPara("two"), bullets('*', item(textPara("three")))),
				)),
			)),
		},
		{
			name:  "marker far right is text",
			input: "- a\n        - b",
			want: blocks(bullets('-',
				item(textPara("a - b")),
			)),
		},
		{
			name:  "single blank line keeps the list",
			input: "- a\n\n- b",
			want: blocks(bullets('-',
				item(textPara("a")),
				item(textPara("b")),
			)),
		},
		{
			name:  "two blank lines end the list",
			input: "- a\n\n\n- b",
			want: blocks(
				bullets('-', item(textPara("a"))),
				bullets('-', item(textPara("b"))),
			),
		},
		{
			name:  "bullet change without blank continues",
			input: "- a\n* b\n+ c",
			want: blocks(bullets('-',
				item(textPara("a")),
				item(textPara("b")),
				item(textPara("c")),
			)),
		},
		{
			name:  "bullet change after blank starts a new list",
			input: "- a\n\n* b",
			want: blocks(
				bullets('-', item(textPara("a"))),
				bullets('*', item(textPara("b"))),
			),
		},
		{
			name:  "numbered",
			input: "1. a\n2. b\n10. c",
			want: blocks(numbered(
				item(textPara("a")),
				item(textPara("b")),
				item(textPara("c")),
			)),
		},
		{
			name:  "style change ends the list",
			input: "- a\n1. b",
			want: blocks(
				bullets('-', item(textPara("a"))),
				numbered(item(textPara("b"))),
			),
		},
		{
			name:  "lazy continuation",
			input: "- a\nb",
			want:  blocks(bullets('-', item(textPara("a b")))),
		},
		{
			name:  "text after blank leaves the list",
			input: "- a\n\nb",
			want:  blocks(bullets('-', item(textPara("a"))), textPara("b")),
		},
		{
			name:  "item with several blocks",
			input: "- a\n\n  b\n\n      code",
			want: blocks(bullets('-',
				item(textPara("a"), textPara("b"), &mdast.Code{Text: "code"}),
			)),
		},
		{
			name:  "horizontal rule ends the list",
			input: "- a\n* * *",
			want:  blocks(bullets('-', item(textPara("a"))), &mdast.HorizontalRule{}),
		},
		{
			name:  "no space after bullet",
			input: "-List",
			want:  blocks(textPara("-List")),
		},
		{
			name:  "no space after number",
			input: "1.List",
			want:  blocks(textPara("1.List")),
		},
		{
			name:  "letter marker",
			input: "a. List",
			want:  blocks(textPara("a. List")),
		},
		{
			name:  "too many digits",
			input: "1234567890. x",
			want:  blocks(textPara("1234567890. x")),
		},
		{
			name:  "quote inside item",
			input: "- > q",
			want:  blocks(bullets('-', item(&mdast.Quote{Blocks: blocks(textPara("q"))}))),
		},
		{
			name:  "marker three past content column nests",
			input: "- a\n     - b",
			want: blocks(bullets('-',
				item(textPara("a"), bullets('-', item(textPara("b")))),
			)),
		},
		{
			name:  "marker four past content column is text",
			input: "- a\n      - b",
			want:  blocks(bullets('-', item(textPara("a - b")))),
		},
		{
			name:  "indented first item then flush siblings",
			input: "   - List item 1\n- List item 2\n- List item 3",
			want: blocks(bullets('-',
				item(textPara("List item 1")),
				item(textPara("List item 2")),
				item(textPara("List item 3")),
			)),
		},
		{
			name:  "indented first item then nested third",
			input: "   - List item 1\n- List item 2\n  - List item 3",
			want: blocks(bullets('-',
				item(textPara("List item 1")),
				item(textPara("List item 2"), bullets('-', item(textPara("List item 3")))),
			)),
		},
		{
			name:  "nesting window spans three extra spaces",
			input: "   - List item 1\n- List item 2\n     - List item 3",
			want: blocks(bullets('-',
				item(textPara("List item 1")),
				item(textPara("List item 2"), bullets('-', item(textPara("List item 3")))),
			)),
		},
		{
			name:  "sibling one space in then nested",
			input: "- List item 1\n - List item 2\n    - List item 3",
			want: blocks(bullets('-',
				item(textPara("List item 1")),
				item(textPara("List item 2"), bullets('-', item(textPara("List item 3")))),
			)),
		},
		{
			name:  "alternating one space indent stays flat",
			input: "- 1\n - 2\n- 3\n - 4",
			want: blocks(bullets('-',
				item(textPara("1")),
				item(textPara("2")),
				item(textPara("3")),
				item(textPara("4")),
			)),
		},
		{
			name:  "paragraph after nested list",
			input: "* 1\n  * 2\n\n  3",
			want: blocks(bullets('*',
				item(textPara("1"), bullets('*', item(textPara("2"))), textPara("3")),
			)),
		},
		{
			name:  "indented paragraph in last item",
			input: "* 1\n  * 2\n* 3\n\n     4",
			want: blocks(bullets('*',
				item(textPara("1"), bullets('*', item(textPara("2")))),
				item(textPara("3"), textPara("4")),
			)),
		},
		{
			name: "nested headings then flush text and code",
			input: "- #Level 1\n- #Level 1\n    - #Level 2\n        - #Level 3\n" +
				"            - #Level 4  \nlevel 4, line 2\n\n     text",
			want: blocks(
				bullets('-',
					item(atx(1, "Level 1")),
					item(atx(1, "Level 1"), bullets('-',
						item(atx(1, "Level 2"), bullets('-',
							item(atx(1, "Level 3"), bullets('-',
								item(atx(1, "Level 4")),
							)),
						)),
					)),
				),
				textPara("level 4, line 2"),
				&mdast.Code{Text: " text"},
			),
		},
		{
			name: "nested headings with continued text",
			input: "- #Level 1\n- #Level 1\n    - #Level 2\n        - #Level 3\n" +
				"            - #Level 4  \n              level 4, line 2\n\n      text level 2",
			want: blocks(bullets('-',
				item(atx(1, "Level 1")),
				item(atx(1, "Level 1"), bullets('-',
					item(atx(1, "Level 2"),
						bullets('-',
							item(atx(1, "Level 3"), bullets('-',
								item(atx(1, "Level 4"), textPara("level 4, line 2")),
							)),
						),
						textPara("text level 2"),
					),
				)),
			)),
		},
		{
			name:  "too much space to nest under second item",
			input: "* a\n * b\n            * c",
			want: blocks(bullets('*',
				item(textPara("a")),
				item(textPara("b * c")),
			)),
		},
		{
			name:  "overlong number continues the previous item",
			input: "7. List item 1\n502. List item 2\n502456456456456456456456456456456456. List item 3",
			want: blocks(numbered(
				item(textPara("List item 1")),
				item(textPara("List item 2 502456456456456456456456456456456456. List item 3")),
			)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := parser.Default().Parse(tt.input)
			assert.Equal(t, tt.want, doc.Blocks())
		})
	}
}
