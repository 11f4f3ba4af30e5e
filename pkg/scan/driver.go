package scan

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/pthscan/pkg/errors"
	"github.com/matzehuels/pthscan/pkg/links"
	"github.com/matzehuels/pthscan/pkg/observability"
)

// DefaultProgressEvery is how many completions separate progress lines.
const DefaultProgressEvery = 100

// Catalog is the part of the index client the driver needs on top of
// what the evaluator uses.
type Catalog interface {
	// FetchRoot returns the catalog listing page.
	FetchRoot(ctx context.Context) ([]byte, error)
}

// Options tunes a [Driver]. Zero values select the defaults.
type Options struct {
	Workers       int // concurrent evaluations (default 8)
	BatchSize     int // links per dispatch (default 10)
	ProgressEvery int // completions between progress lines (default 100)
}

// Summary describes a finished (or aborted) run.
type Summary struct {
	RunID     string
	Total     int // links dispatched
	Completed int // verdicts received
	Positive  int // verdicts with a marker
	Elapsed   time.Duration
}

// Driver runs a whole-catalog scan.
type Driver struct {
	catalog  Catalog
	eval     *Evaluator
	out      io.Writer
	progress io.Writer
	opts     Options
	logger   *log.Logger
}

// NewDriver creates a Driver. Positive package links are written to out,
// one per line; progress lines go to progress. If logger is nil,
// log.Default() is used.
func NewDriver(catalog Catalog, eval *Evaluator, out, progress io.Writer, opts Options, logger *log.Logger) *Driver {
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = DefaultProgressEvery
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Driver{
		catalog:  catalog,
		eval:     eval,
		out:      out,
		progress: progress,
		opts:     opts,
		logger:   logger,
	}
}

// Run fetches the catalog and evaluates every package in it. When resume
// is non-empty, packages up to and including the first occurrence of
// resume are skipped.
//
// Run fails before dispatching anything when the catalog cannot be
// fetched or decoded, or when resume is not in the catalog.
func (d *Driver) Run(ctx context.Context, resume string) (Summary, error) {
	page, err := d.catalog.FetchRoot(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("fetch catalog: %w", err)
	}
	all, err := links.Extract(page)
	if err != nil {
		return Summary{}, fmt.Errorf("read catalog: %w", err)
	}
	pkgs, err := Resume(all, resume)
	if err != nil {
		return Summary{}, err
	}
	if resume != "" {
		d.logger.Info("resuming", "after", resume, "skipped", len(all)-len(pkgs))
	}
	return d.Dispatch(ctx, pkgs)
}

// Dispatch evaluates the given package links on the worker pool and
// writes the results. It returns ctx.Err() if the run was interrupted,
// or an INTERNAL_ERROR when a result cannot be written to the primary
// output, which also stops the run.
func (d *Driver) Dispatch(ctx context.Context, pkgs []string) (Summary, error) {
	s := Summary{RunID: uuid.NewString(), Total: len(pkgs)}
	logger := d.logger.With("run", s.RunID[:8])
	start := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger.Info("scan started", "packages", s.Total, "workers", d.workers())
	observability.Scan().OnScanStart(ctx, s.Total)

	var writeErr error
	results := NewPool(d.opts.Workers, d.opts.BatchSize).Run(ctx, pkgs, d.eval.Evaluate)
	for v := range results {
		s.Completed++
		if v.HasMarker {
			s.Positive++
			if _, err := fmt.Fprintln(d.out, v.Link); err != nil && writeErr == nil {
				writeErr = errors.Wrap(errors.ErrCodeInternal, err, "write result")
				cancel()
			}
		}
		if s.Completed%d.opts.ProgressEvery == 0 {
			fmt.Fprintf(d.progress, "%d / %d\n", s.Completed, s.Total)
		}
	}
	s.Elapsed = time.Since(start)

	err := writeErr
	if err == nil {
		err = ctx.Err()
	}
	observability.Scan().OnScanComplete(ctx, s.Completed, s.Positive, s.Elapsed, err)
	if err != nil {
		logger.Warn("scan aborted", "completed", s.Completed, "of", s.Total, "err", err)
		return s, err
	}
	logger.Info("scan finished", "completed", s.Completed, "positive", s.Positive, "elapsed", s.Elapsed.Round(time.Millisecond))
	return s, nil
}

func (d *Driver) workers() int {
	if d.opts.Workers <= 0 {
		return DefaultWorkers
	}
	return d.opts.Workers
}

// Resume returns the links that follow the first occurrence of token.
// An empty token returns all links unchanged. A token that is not in
// links fails with RESUME_TOKEN_NOT_FOUND.
func Resume(all []string, token string) ([]string, error) {
	if token == "" {
		return all, nil
	}
	i := slices.Index(all, token)
	if i < 0 {
		return nil, errors.New(errors.ErrCodeResumeTokenNotFound, "resume link %q is not in the catalog", token)
	}
	return all[i+1:], nil
}
