// Package pkg holds the libraries behind pthscan, a scanner that finds
// Python packages whose newest release installs a .pth file.
//
// # Overview
//
// A scan reads the index catalog, evaluates every package on a worker
// pool and prints the links of packages that ship a .pth file:
//
//	catalog listing (/simple)
//	         ↓
//	    [links] extract package links
//	         ↓
//	    [scan] pool of evaluators, per package:
//	         release listing → [artifact] newest wheel and sdist
//	                         → [archive] member names, setup.py
//	                         → [marker] .pth detection
//	         ↓
//	    positive links on stdout, progress on stderr
//
// # Packages
//
//   - [scan]: evaluator, worker pool and catalog driver
//   - [index]: HTTP client for simple-index listings and artifacts
//   - [links], [artifact], [archive], [marker]: pure building blocks
//   - [cache]: listing cache backends (file, Redis, null)
//   - [config]: TOML/YAML configuration with environment overrides
//   - [errors]: coded errors shared by all packages
//   - [httputil]: retry helpers
//   - [observability]: hooks for logging and metrics
//   - [buildinfo]: version information set at build time
//
// # Quick Start
//
//	idx := index.NewClient(index.Options{})
//	eval := scan.NewEvaluator(idx, nil)
//	d := scan.NewDriver(idx, eval, os.Stdout, os.Stderr, scan.Options{}, nil)
//	if _, err := d.Run(ctx, ""); err != nil {
//	    log.Fatal(err)
//	}
package pkg
