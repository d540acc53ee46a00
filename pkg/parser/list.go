package parser

import (
	"github.com/yaklabco/gomdparse/pkg/mdast"
	"github.com/yaklabco/gomdparse/pkg/textwin"
)

// itemLines is the line range [start, end) of one list item and the column
// where its content begins.
type itemLines struct {
	start   int
	end     int
	content int
}

// parseList recognizes bulleted and numbered lists.
//
// Each item's content column C is the marker column plus the marker width
// plus one space. A later line indented by at least C belongs to the current
// item; once the marker prefix is stripped, a list marker within three
// columns of C opens a nested list there, and one further right is plain
// continuation text. A marker left of C starts a sibling item. Other lines
// left of C continue the item lazily only if the previous line was paragraph
// text and no blank line intervened. Two blank lines in a row end the list,
// as does a change between bulleted and numbered markers, or a change of
// bullet character after a blank line.
func parseList(st *BlockState, w textwin.Window) (mdast.Block, int) {
	first, ok := parseListMarker(w.Line(0))
	if !ok {
		return nil, 0
	}

	items := []itemLines{{start: 0, end: 1, content: first.content}}
	bullet := first.bullet
	blankRun := 0
	consumed := 1

	for i := 1; i < w.LineCount(); i++ {
		line := w.Line(i)

		if isBlank(line) {
			blankRun++
			if blankRun >= 2 {
				break
			}

			continue
		}

		current := &items[len(items)-1]

		if leadingSpaces(line) >= current.content {
			current.end = i + 1
			consumed = i + 1
			blankRun = 0

			continue
		}

		if isHorizontalRule(line) {
			break
		}

		if marker, ok := parseListMarker(line); ok {
			if marker.numbered != first.numbered {
				break
			}

			if !marker.numbered && marker.bullet != bullet && blankRun > 0 {
				break
			}

			items = append(items, itemLines{start: i, end: i + 1, content: marker.content})
			bullet = marker.bullet
			consumed = i + 1
			blankRun = 0

			continue
		}

		if blankRun > 0 || interruptsParagraph(line) || !continuesParagraph(w.Line(i-1)) {
			break
		}

		current.end = i + 1
		consumed = i + 1
	}

	list := &mdast.List{Style: mdast.ListBulleted, Bullet: first.bullet}
	if first.numbered {
		list.Style = mdast.ListNumbered
		list.Bullet = 0
	}

	list.Items = make([]*mdast.ListItem, 0, len(items))
	for _, item := range items {
		list.Items = append(list.Items, &mdast.ListItem{
			Blocks: st.ParseBlocks(itemContent(w.Lines(item.start, item.end-item.start), item.content)),
		})
	}

	return list, consumed
}

// itemContent strips the marker from the first line and up to content
// columns of indentation from the rest.
func itemContent(w textwin.Window, content int) textwin.Window {
	return w.MustMap(func(line string, idx int) textwin.LineEdit {
		if idx == 0 {
			return textwin.Keep(line, content)
		}

		return textwin.Keep(line, min(content, leadingSpaces(line)))
	})
}
