// Package analysis computes statistics over parsed Markdown documents.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/gomdparse/pkg/mdast"
	"github.com/yaklabco/gomdparse/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

type kindKey struct {
	category Category
	kind     string
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	kinds     map[kindKey]*KindAnalysis
	kindFiles map[kindKey]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		kinds:     make(map[kindKey]*KindAnalysis),
		kindFiles: make(map[kindKey]map[string]bool),
	}
}

func (ctx *analysisContext) count(category Category, kind, path string) {
	key := kindKey{category: category, kind: kind}
	if _, ok := ctx.kinds[key]; !ok {
		ctx.kinds[key] = &KindAnalysis{Kind: kind, Category: category}
		ctx.kindFiles[key] = make(map[string]bool)
	}

	ctx.kinds[key].Count++
	ctx.kindFiles[key][path] = true
}

// analyzeDocument walks one document, counting kinds into ctx.
func (ctx *analysisContext) analyzeDocument(path string, doc *mdast.Document, fa *FileAnalysis) {
	_ = mdast.Walk(doc.Blocks(), func(b mdast.Block, depth int) error {
		fa.Blocks++
		fa.MaxDepth = max(fa.MaxDepth, depth+1)
		if b.Kind() == mdast.BlockHeading {
			fa.Headings++
		}
		ctx.count(CategoryBlock, b.Kind().String(), path)

		_ = mdast.WalkInlines(mdast.Inlines(b), func(in mdast.Inline) error {
			fa.Inlines++
			ctx.count(CategoryInline, in.Kind().String(), path)
			return nil
		})

		return nil
	})
}

func (ctx *analysisContext) buildByKind(opts Options) []KindAnalysis {
	result := make([]KindAnalysis, 0, len(ctx.kinds))
	for key, ka := range ctx.kinds {
		for f := range ctx.kindFiles[key] {
			ka.Files = append(ka.Files, f)
		}
		slices.Sort(ka.Files)
		result = append(result, *ka)
	}
	sortKindAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

// Analyze transforms a runner.Result into a Report.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext()
	var byFile []FileAnalysis

	for _, file := range result.Files {
		report.Totals.Files++

		fa := FileAnalysis{Path: makeRelativePath(file.Path, opts.WorkingDir)}

		if file.Error != nil || file.Document == nil {
			report.Totals.FilesFailed++
			if file.Error != nil {
				fa.Error = file.Error.Error()
			}
			byFile = append(byFile, fa)
			continue
		}

		report.Totals.FilesParsed++
		fa.Bytes = int64(len(file.Content))
		ctx.analyzeDocument(fa.Path, file.Document, &fa)

		report.Totals.Blocks += fa.Blocks
		report.Totals.Inlines += fa.Inlines
		report.Totals.Bytes += fa.Bytes

		byFile = append(byFile, fa)
	}

	if opts.IncludeByKind {
		report.ByKind = ctx.buildByKind(opts)
	}
	if opts.IncludeByFile {
		sortFileAnalysis(byFile, opts.SortBy, opts.SortDesc)
		report.ByFile = byFile
	}

	return report
}

func sortKindAnalysis(kinds []KindAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(kinds, func(left, right KindAnalysis) int {
		byName := cmp.Or(
			cmp.Compare(left.Category, right.Category),
			cmp.Compare(left.Kind, right.Kind),
		)

		if sortBy == SortByAlpha {
			return byName
		}

		result := cmp.Compare(left.Count, right.Count)
		if desc {
			result = -result
		}
		return cmp.Or(result, byName)
	})
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(files, func(left, right FileAnalysis) int {
		if sortBy == SortByAlpha {
			return cmp.Compare(left.Path, right.Path)
		}

		result := cmp.Compare(left.Blocks, right.Blocks)
		if desc {
			result = -result
		}
		return cmp.Or(result, cmp.Compare(left.Path, right.Path))
	})
}
