package parser

import (
	"strings"

	"github.com/yaklabco/gomdparse/pkg/mdast"
	"github.com/yaklabco/gomdparse/pkg/textwin"
)

// parseFencedCode recognizes ``` and ~~~ fences. An unclosed fence runs to
// the end of the window.
func parseFencedCode(st *BlockState, w textwin.Window) (mdast.Block, int) {
	fence, size, indent, info, ok := fenceOpen(w.Line(0))
	if !ok {
		return nil, 0
	}

	end := w.LineCount()
	consumed := end

	for i := 1; i < w.LineCount(); i++ {
		if isFenceClose(w.Line(i), fence, size) {
			end = i
			consumed = i + 1

			break
		}
	}

	// Content lines lose up to the opening fence's indentation.
	body := w.Lines(1, end-1).MustMap(func(line string, _ int) textwin.LineEdit {
		return textwin.Keep(line, min(indent, leadingSpaces(line)))
	})

	code := &mdast.Code{
		Text:   body.String(),
		Fenced: true,
	}

	if lang, _, _ := strings.Cut(info, " "); lang != "" {
		code.Language = lang
	} else {
		code.DetectedLanguage = st.DetectLanguage(code.Text)
	}

	return code, consumed
}

// parseIndentedCode recognizes lines indented by four columns or a tab.
// It cannot interrupt a paragraph.
func parseIndentedCode(st *BlockState, w textwin.Window) (mdast.Block, int) {
	if st.ParagraphPending || !isCodeLine(w.Line(0)) {
		return nil, 0
	}

	last := 0
	for i := 1; i < w.LineCount(); i++ {
		line := w.Line(i)

		if isCodeLine(line) {
			last = i
			continue
		}

		if !isBlank(line) {
			break
		}
	}

	body := w.Lines(0, last+1).MustMap(func(line string, _ int) textwin.LineEdit {
		if strings.HasPrefix(line, "\t") {
			return textwin.Keep(line, 1)
		}

		return textwin.Keep(line, min(codeIndent, leadingSpaces(line)))
	})

	code := &mdast.Code{Text: body.String()}
	code.DetectedLanguage = st.DetectLanguage(code.Text)

	return code, last + 1
}

func isCodeLine(line string) bool {
	if isBlank(line) {
		return false
	}

	return strings.HasPrefix(line, "\t") || strings.HasPrefix(line, strings.Repeat(" ", codeIndent))
}
