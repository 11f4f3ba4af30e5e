// Package marker recognises path-configuration (.pth) files.
//
// A .pth file dropped into site-packages makes the interpreter append
// extra directories to sys.path at startup. Namespace-package shims
// generated by setuptools ("*-nspkg.pth") use the same mechanism but are
// ubiquitous and harmless, so they are excluded.
package marker

import (
	"bytes"
	"strings"
)

const (
	// Suffix is the filename suffix of a path-configuration file.
	Suffix = ".pth"

	// NamespaceShimSuffix marks setuptools namespace shims. It ends with
	// Suffix, so it must be tested as an exclusion after Suffix matches.
	NamespaceShimSuffix = "nspkg.pth"

	// BuildScriptSuffix identifies the build script inside an sdist.
	BuildScriptSuffix = "/setup.py"
)

// IsMarkerFilename reports whether name is a .pth file that is not a
// namespace shim. Directory components are ignored.
func IsMarkerFilename(name string) bool {
	return strings.HasSuffix(name, Suffix) && !strings.HasSuffix(name, NamespaceShimSuffix)
}

// IsBuildScript reports whether name is an archive member holding the
// package's setup.py.
func IsBuildScript(name string) bool {
	return strings.HasSuffix(name, BuildScriptSuffix)
}

// InBuildScript reports whether a build script mentions the marker
// suffix anywhere in its raw bytes. This is a textual check; the script
// is never parsed.
func InBuildScript(content []byte) bool {
	return bytes.Contains(content, []byte(Suffix))
}
