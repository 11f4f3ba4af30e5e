package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pthscan/pkg/config"
	"github.com/matzehuels/pthscan/pkg/scan"
)

// indexFlags are the flags shared by commands that talk to an index.
type indexFlags struct {
	indexURL string
	noCache  bool
	cacheDir string
}

func (f *indexFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.indexURL, "index", "", "index origin (default https://pypi.org)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable listing cache")
	cmd.Flags().StringVar(&f.cacheDir, "cache-dir", "", "cache listings in this directory")
}

// apply overrides cfg with the flags the user actually set.
func (f *indexFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("index") {
		cfg.Index.URL = f.indexURL
	}
	if flags.Changed("cache-dir") {
		cfg.Cache.Dir = f.cacheDir
		cfg.Cache.Enabled = true
	}
	if f.noCache {
		cfg.Cache.Enabled = false
	}
}

// scanCommand creates the scan command.
func (c *CLI) scanCommand() *cobra.Command {
	var (
		idx     indexFlags
		resume  string
		workers int
		batch   int
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan every package in the index",
		Long: `Scan fetches the catalog and checks the newest wheel and source archive of
every package. Links of packages that install a .pth file are printed to
stdout, one per line. Progress goes to stderr every 100 packages.

Interrupted scans can be resumed with --continue-from and the last link
that was printed or reported.`,
		Example: `  # Full scan, results to a file
  pthscan scan > pth-packages.txt

  # Resume after a known package
  pthscan scan --continue-from /simple/requests/ >> pth-packages.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			idx.apply(cmd, &cfg)
			if cmd.Flags().Changed("workers") {
				cfg.Scan.Workers = workers
			}
			if cmd.Flags().Changed("batch") {
				cfg.Scan.BatchSize = batch
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runScan(cmd.Context(), cfg, resume, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&resume, "continue-from", "", "skip packages up to and including this link")
	cmd.Flags().IntVarP(&workers, "workers", "w", scan.DefaultWorkers, "concurrent package evaluations")
	cmd.Flags().IntVar(&batch, "batch", scan.DefaultBatchSize, "packages handed to a worker at once")
	idx.register(cmd)

	return cmd
}

// runScan runs a full catalog scan. In verbose mode a summary follows
// on stderr; otherwise stderr only carries progress lines and warnings.
func (c *CLI) runScan(ctx context.Context, cfg config.Config, resume string, stdout, stderr io.Writer) error {
	client, store := c.newIndex(ctx, cfg)
	defer store.Close()

	eval := scan.NewEvaluator(client, c.Logger)
	d := scan.NewDriver(client, eval, stdout, stderr, scan.Options{
		Workers:       cfg.Scan.Workers,
		BatchSize:     cfg.Scan.BatchSize,
		ProgressEvery: cfg.Scan.ProgressEvery,
	}, c.Logger)

	s, err := d.Run(ctx, resume)
	if s.RunID != "" && c.verbose {
		printSummary(stderr, s)
	}
	return err
}
