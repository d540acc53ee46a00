package runner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gomdparse/pkg/fsutil"
	"github.com/yaklabco/gomdparse/pkg/parser"
)

// Runner parses discovered files with one shared parser.
type Runner struct {
	Parser *parser.Parser
}

// New creates a Runner. A nil parser means parser.Default().
func New(p *parser.Parser) *Runner {
	if p == nil {
		p = parser.Default()
	}
	return &Runner{Parser: p}
}

// Run discovers files under opts.Paths and parses them concurrently.
// Outcomes are returned in path order regardless of completion order.
// A cancelled context stops the run and returns what completed so far.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}

			outcomes[i] = r.ParseFile(groupCtx, path)
			done[i] = true

			return nil
		})
	}

	_ = group.Wait()

	for i, outcome := range outcomes {
		if done[i] {
			result.accumulate(outcome)
		}
	}

	result.Stats.Duration = time.Since(start)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

// ParseFile reads and parses a single file.
func (r *Runner) ParseFile(ctx context.Context, path string) FileOutcome {
	start := time.Now()
	outcome := FileOutcome{Path: path}

	content, snap, err := fsutil.Read(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	outcome.Content = content
	outcome.Snapshot = snap
	outcome.Document = r.Parser.Parse(string(content))
	outcome.Duration = time.Since(start)

	return outcome
}
