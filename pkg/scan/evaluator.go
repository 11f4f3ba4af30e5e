package scan

import (
	"context"
	"net/url"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pthscan/pkg/archive"
	"github.com/matzehuels/pthscan/pkg/artifact"
	"github.com/matzehuels/pthscan/pkg/errors"
	"github.com/matzehuels/pthscan/pkg/links"
	"github.com/matzehuels/pthscan/pkg/marker"
	"github.com/matzehuels/pthscan/pkg/observability"
)

// Fetcher is the part of the index client the evaluator needs.
type Fetcher interface {
	// ListingURL returns the URL of the release listing for link.
	ListingURL(link string) string
	// FetchListing returns the release listing page for link.
	FetchListing(ctx context.Context, link string) ([]byte, error)
	// Fetch downloads an artifact.
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Verdict is the outcome for one package.
type Verdict struct {
	Link      string // package link exactly as dispatched
	HasMarker bool   // newest artifacts install a .pth file
}

// Evaluator decides whether a single package installs a .pth file.
// It holds no per-package state and is safe for concurrent use.
type Evaluator struct {
	index  Fetcher
	logger *log.Logger
}

// NewEvaluator creates an Evaluator reading from idx.
// If logger is nil, log.Default() is used.
func NewEvaluator(idx Fetcher, logger *log.Logger) *Evaluator {
	if logger == nil {
		logger = log.Default()
	}
	return &Evaluator{index: idx, logger: logger}
}

// Evaluate returns the verdict for the package at link. It never fails:
// any fetch, decoding or archive problem counts as "no marker".
func (e *Evaluator) Evaluate(ctx context.Context, link string) Verdict {
	start := time.Now()
	observability.Scan().OnPackageStart(ctx, link)

	v := Verdict{Link: link, HasMarker: e.hasMarker(ctx, link)}

	observability.Scan().OnVerdict(ctx, link, v.HasMarker, time.Since(start))
	return v
}

func (e *Evaluator) hasMarker(ctx context.Context, link string) bool {
	page, err := e.index.FetchListing(ctx, link)
	if err != nil {
		e.noEvidence(link, "listing", err)
		return false
	}
	hrefs, err := links.Extract(page)
	if err != nil {
		e.noEvidence(link, "listing", err)
		return false
	}

	c := artifact.Classify(hrefs)
	if c.Empty() {
		e.logger.Debug("no artifacts", "pkg", link)
		return false
	}
	listingURL := e.index.ListingURL(link)

	if c.HasWheel() {
		e.logSelected(link, "wheel", c.Wheel)
		found, err := e.inspectWheel(ctx, resolve(listingURL, c.Wheel))
		if err != nil {
			e.noEvidence(link, "wheel", err)
		} else if found {
			return true
		}
	}

	if c.HasSdist() {
		e.logSelected(link, "sdist", c.Sdist)
		found, err := e.inspectSdist(ctx, resolve(listingURL, c.Sdist))
		if err != nil {
			e.noEvidence(link, "sdist", err)
		} else if found {
			return true
		}
	}
	return false
}

func (e *Evaluator) inspectWheel(ctx context.Context, rawURL string) (bool, error) {
	data, err := e.index.Fetch(ctx, rawURL)
	if err != nil {
		return false, err
	}
	names, err := archive.ListZip(data)
	if err != nil {
		return false, err
	}
	return slices.ContainsFunc(names, marker.IsMarkerFilename), nil
}

func (e *Evaluator) inspectSdist(ctx context.Context, rawURL string) (bool, error) {
	data, err := e.index.Fetch(ctx, rawURL)
	if err != nil {
		return false, err
	}
	tgz, err := archive.OpenTar(data)
	if err != nil {
		return false, err
	}
	defer tgz.Close()

	var script *archive.Member
	for _, m := range tgz.Members() {
		switch {
		case marker.IsMarkerFilename(m.Name):
			return true, nil
		case marker.IsBuildScript(m.Name):
			script = &m
		}
	}
	if script == nil {
		return false, nil
	}

	content, err := tgz.ReadMember(*script)
	if err != nil {
		return false, err
	}
	return marker.InBuildScript(content), nil
}

func (e *Evaluator) noEvidence(link, stage string, err error) {
	if errors.NoEvidence(err) {
		e.logger.Debug("no evidence", "pkg", link, "stage", stage, "code", errors.GetCode(err), "err", errors.UserMessage(err))
		return
	}
	e.logger.Warn("unexpected evaluation error", "pkg", link, "stage", stage, "err", err)
}

func (e *Evaluator) logSelected(link, kind, href string) {
	if v, ok := artifact.Version(href); ok {
		e.logger.Debug("inspecting artifact", "pkg", link, "kind", kind, "version", v)
		return
	}
	e.logger.Debug("inspecting artifact", "pkg", link, "kind", kind, "href", href)
}

// resolve turns a relative artifact href into an absolute URL using the
// listing it came from. Absolute hrefs are returned unchanged.
func resolve(base, href string) string {
	ref, err := url.Parse(href)
	if err != nil || ref.IsAbs() {
		return href
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}
