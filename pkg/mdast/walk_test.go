package mdast_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdparse/pkg/mdast"
)

func buildTestDocument() *mdast.Document {
	// Document
	//   Heading
	//   List
	//     ListItem
	//       Paragraph
	//       Quote
	//         Paragraph
	//   HorizontalRule
	return mdast.NewDocument([]mdast.Block{
		&mdast.Heading{Level: 1, Inlines: []mdast.Inline{&mdast.Text{Text: "Title"}}},
		&mdast.List{Items: []*mdast.ListItem{{
			Blocks: []mdast.Block{
				&mdast.Paragraph{Inlines: []mdast.Inline{&mdast.Text{Text: "item"}}},
				&mdast.Quote{Blocks: []mdast.Block{
					&mdast.Paragraph{Inlines: []mdast.Inline{
						&mdast.Bold{Inlines: []mdast.Inline{&mdast.Text{Text: "quoted"}}},
					}},
				}},
			},
		}}},
		&mdast.HorizontalRule{},
	})
}

func TestWalk(t *testing.T) {
	t.Parallel()

	doc := buildTestDocument()

	type visit struct {
		kind  mdast.BlockKind
		depth int
	}

	var visited []visit
	err := mdast.Walk(doc.Blocks(), func(b mdast.Block, depth int) error {
		visited = append(visited, visit{b.Kind(), depth})
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []visit{
		{mdast.BlockHeading, 0},
		{mdast.BlockList, 0},
		{mdast.BlockListItem, 1},
		{mdast.BlockParagraph, 2},
		{mdast.BlockQuote, 2},
		{mdast.BlockParagraph, 3},
		{mdast.BlockHorizontalRule, 0},
	}, visited)
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()

	doc := buildTestDocument()
	errStop := errors.New("stop")

	count := 0
	err := mdast.Walk(doc.Blocks(), func(mdast.Block, int) error {
		count++
		if count == 3 {
			return errStop
		}
		return nil
	})

	require.ErrorIs(t, err, errStop)
	assert.Equal(t, 3, count)
}

func TestFind(t *testing.T) {
	t.Parallel()

	doc := buildTestDocument()

	assert.Len(t, mdast.FindByKind(doc, mdast.BlockParagraph), 2)
	assert.Equal(t, mdast.BlockQuote, mdast.FindFirst(doc, func(b mdast.Block) bool {
		return b.Kind() == mdast.BlockQuote
	}).Kind())
	assert.Nil(t, mdast.FindFirst(doc, func(b mdast.Block) bool {
		return b.Kind() == mdast.BlockTable
	}))
}

func TestWalkInlines(t *testing.T) {
	t.Parallel()

	inlines := []mdast.Inline{
		&mdast.Text{Text: "a "},
		&mdast.Bold{Inlines: []mdast.Inline{
			&mdast.Italic{Inlines: []mdast.Inline{&mdast.Text{Text: "b"}}},
		}},
	}

	var kinds []string
	err := mdast.WalkInlines(inlines, func(in mdast.Inline) error {
		kinds = append(kinds, in.Kind().String())
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Text", "Bold", "Italic", "Text"}, kinds)
	assert.Equal(t, "a b", mdast.PlainText(inlines))
}

func TestDocument_BlocksIsCopy(t *testing.T) {
	t.Parallel()

	doc := buildTestDocument()
	blocks := doc.Blocks()
	blocks[0] = nil

	assert.NotNil(t, doc.At(0))
	assert.Equal(t, 3, doc.Len())
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "HorizontalRule", mdast.BlockHorizontalRule.String())
	assert.Equal(t, "YamlHeader", mdast.BlockYamlHeader.String())
	assert.Equal(t, "Strikethrough", mdast.InlineStrikethrough.String())
	assert.Equal(t, "BlockKind(42)", mdast.BlockKind(42).String())
}
