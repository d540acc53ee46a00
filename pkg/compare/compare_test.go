package compare_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdparse/pkg/compare"
	"github.com/yaklabco/gomdparse/pkg/mdast"
	"github.com/yaklabco/gomdparse/pkg/parser"
	"github.com/yaklabco/gomdparse/pkg/parser/goldmark"
)

func para(s string) *mdast.Paragraph {
	return &mdast.Paragraph{Inlines: []mdast.Inline{&mdast.Text{Text: s}}}
}

func TestBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		ours   []mdast.Block
		theirs []mdast.Block
		opts   compare.Options
		want   []compare.Mismatch
	}{
		{
			name:   "equal",
			ours:   []mdast.Block{para("a"), &mdast.HorizontalRule{}},
			theirs: []mdast.Block{para("a"), &mdast.HorizontalRule{}},
		},
		{
			name:   "whitespace is normalized",
			ours:   []mdast.Block{para("a  b")},
			theirs: []mdast.Block{para("a b ")},
		},
		{
			name:   "heading level",
			ours:   []mdast.Block{&mdast.Heading{Level: 1, Inlines: []mdast.Inline{&mdast.Text{Text: "a"}}}},
			theirs: []mdast.Block{&mdast.Heading{Level: 2, Inlines: []mdast.Inline{&mdast.Text{Text: "a"}}}},
			want:   []compare.Mismatch{{Path: "0", Ours: `Heading(1)"a"`, Theirs: `Heading(2)"a"`}},
		},
		{
			name:   "setext ignored",
			ours:   []mdast.Block{&mdast.Heading{Level: 1, Setext: true}},
			theirs: []mdast.Block{&mdast.Heading{Level: 1}},
			opts:   compare.Options{IgnoreSetext: true},
		},
		{
			name:   "missing block",
			ours:   []mdast.Block{para("a"), para("b")},
			theirs: []mdast.Block{para("a")},
			want:   []compare.Mismatch{{Path: "1", Ours: `Paragraph"b"`}},
		},
		{
			name: "nested list item",
			ours: []mdast.Block{&mdast.List{Items: []*mdast.ListItem{
				{Blocks: []mdast.Block{para("a")}},
				{Blocks: []mdast.Block{para("b")}},
			}}},
			theirs: []mdast.Block{&mdast.List{Items: []*mdast.ListItem{
				{Blocks: []mdast.Block{para("a")}},
				{Blocks: []mdast.Block{para("c")}},
			}}},
			want: []compare.Mismatch{{Path: "0/item[1]/0", Ours: `Paragraph"b"`, Theirs: `Paragraph"c"`}},
		},
		{
			name: "inline kinds ignored by default",
			ours: []mdast.Block{&mdast.Paragraph{Inlines: []mdast.Inline{
				&mdast.Bold{Delimiter: "**", Inlines: []mdast.Inline{&mdast.Text{Text: "a"}}},
			}}},
			theirs: []mdast.Block{&mdast.Paragraph{Inlines: []mdast.Inline{
				&mdast.Italic{Delimiter: "*", Inlines: []mdast.Inline{&mdast.Text{Text: "a"}}},
			}}},
		},
		{
			name: "inline kinds compared",
			ours: []mdast.Block{&mdast.Paragraph{Inlines: []mdast.Inline{
				&mdast.Bold{Delimiter: "**", Inlines: []mdast.Inline{&mdast.Text{Text: "a"}}},
			}}},
			theirs: []mdast.Block{&mdast.Paragraph{Inlines: []mdast.Inline{
				&mdast.Italic{Delimiter: "*", Inlines: []mdast.Inline{&mdast.Text{Text: "a"}}},
			}}},
			opts: compare.Options{Inlines: true},
			want: []compare.Mismatch{{Path: "0", Ours: `Paragraph[Bold["a"]]`, Theirs: `Paragraph[Italic["a"]]`}},
		},
		{
			name: "split text runs are merged",
			ours: []mdast.Block{&mdast.Paragraph{Inlines: []mdast.Inline{
				&mdast.Text{Text: "*", Escaped: true},
				&mdast.Text{Text: "a"},
			}}},
			theirs: []mdast.Block{para("*a")},
			opts:   compare.Options{Inlines: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, compare.Blocks(tt.ours, tt.theirs, tt.opts))
		})
	}
}

func TestMismatch_String(t *testing.T) {
	t.Parallel()

	m := compare.Mismatch{Path: "3", Ours: "HorizontalRule"}
	assert.Equal(t, "3: ours=HorizontalRule theirs=<missing>", m.String())
}

func TestDocuments_AgreesWithGoldmark(t *testing.T) {
	t.Parallel()

	input := "# T\n\n- a\n- b\n\n> q\n\n```go\nx\n```\n\n---\n"

	theirs, err := goldmark.New(goldmark.FlavorGFM).Parse(context.Background(), []byte(input))
	require.NoError(t, err)

	ours := parser.Default().Parse(input)

	assert.Empty(t, compare.Documents(ours, theirs, compare.Options{}))
}
