// Package scan classifies every package of an index by whether its
// newest artifacts install a .pth file.
//
// # Overview
//
// Three pieces cooperate:
//
//   - [Evaluator] decides one package: it reads the release listing,
//     picks the newest wheel and sdist, and looks for .pth members,
//     falling back to a textual check of setup.py.
//   - [Pool] runs evaluations on a fixed set of workers and streams
//     verdicts back in completion order.
//   - [Driver] fetches the catalog, applies --continue-from, feeds the
//     pool and writes results: positive links to the primary writer,
//     "<done> / <total>" to the progress writer every 100 completions.
//
// # Failure Policy
//
// Evaluation is fail-open. A package whose listing or artifacts cannot
// be fetched or opened is reported as having no marker, and the scan
// goes on. Only the catalog fetch and an unknown resume link abort a
// run, before any package is dispatched.
//
// # Example
//
//	idx := index.NewClient(index.Options{})
//	eval := scan.NewEvaluator(idx, logger)
//	d := scan.NewDriver(idx, eval, os.Stdout, os.Stderr, scan.Options{}, logger)
//	summary, err := d.Run(ctx, "")
package scan
