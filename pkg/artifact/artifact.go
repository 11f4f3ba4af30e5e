// Package artifact picks the release artifacts worth inspecting from a
// package's release listing.
//
// # Selection Rule
//
// A listing is scanned left to right and the last source archive
// (.tar.gz, .tgz) and the last wheel (.whl) win. No version comparison
// takes place: the simple index lists files oldest first, so "last" is
// treated as "newest". A listing presented in another order will make
// the scanner look at an older artifact.
//
// [Version] parses the version embedded in an artifact filename. It is
// informational only and never affects selection.
package artifact

import (
	"path"
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"
)

// Candidates holds the newest artifact link of each supported kind.
// An empty field means the listing had no artifact of that kind.
type Candidates struct {
	Sdist string // newest source archive (.tar.gz or .tgz), fragment stripped
	Wheel string // newest wheel (.whl), fragment stripped
}

// HasSdist reports whether a source archive was found.
func (c Candidates) HasSdist() bool { return c.Sdist != "" }

// HasWheel reports whether a wheel was found.
func (c Candidates) HasWheel() bool { return c.Wheel != "" }

// Empty reports whether neither kind was found.
func (c Candidates) Empty() bool { return !c.HasSdist() && !c.HasWheel() }

// Classify scans links in order and returns the last source archive and
// the last wheel. Each link has its "#..." fragment removed before the
// suffix test, and the stripped form is what gets returned.
func Classify(links []string) Candidates {
	var c Candidates
	for _, link := range links {
		link, _, _ = strings.Cut(link, "#")
		switch {
		case strings.HasSuffix(link, ".tar.gz"), strings.HasSuffix(link, ".tgz"):
			c.Sdist = link
		case strings.HasSuffix(link, ".whl"):
			c.Wheel = link
		}
	}
	return c
}

// Version returns the PEP 440 version embedded in an artifact link,
// e.g. "2.3.1" for ".../pkg-2.3.1.tar.gz". It reports false when the
// filename carries no parseable version.
func Version(link string) (string, bool) {
	link, _, _ = strings.Cut(link, "#")
	name := path.Base(link)

	var raw string
	switch {
	case strings.HasSuffix(name, ".whl"):
		// {distribution}-{version}(-{build})?-{python}-{abi}-{platform}.whl
		parts := strings.Split(strings.TrimSuffix(name, ".whl"), "-")
		if len(parts) < 5 {
			return "", false
		}
		raw = parts[1]
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		// {distribution}-{version}.tar.gz; the distribution may contain dashes.
		stem := strings.TrimSuffix(strings.TrimSuffix(name, ".tar.gz"), ".tgz")
		i := strings.LastIndex(stem, "-")
		if i < 0 {
			return "", false
		}
		raw = stem[i+1:]
	default:
		return "", false
	}

	v, err := pep440.Parse(raw)
	if err != nil {
		return "", false
	}
	return v.String(), true
}
