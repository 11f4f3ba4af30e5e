package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pthscan/pkg/errors"
	"github.com/matzehuels/pthscan/pkg/scan"
)

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	var idx indexFlags

	cmd := &cobra.Command{
		Use:   "check LINK...",
		Short: "Check specific packages",
		Long: `Check evaluates the given package links without fetching the catalog.
Links use the catalog's form, e.g. /simple/requests/. Packages whose newest
release installs a .pth file are printed to stdout.`,
		Example: `  pthscan check /simple/setuptools/ /simple/distutils-precedence/`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, link := range args {
				if err := errors.ValidateLink(link); err != nil {
					return err
				}
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			idx.apply(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			client, store := c.newIndex(ctx, cfg)
			defer store.Close()

			prog := newProgress(c.Logger)
			d := scan.NewDriver(client, scan.NewEvaluator(client, c.Logger), cmd.OutOrStdout(), cmd.ErrOrStderr(), scan.Options{
				Workers:       cfg.Scan.Workers,
				BatchSize:     1,
				ProgressEvery: cfg.Scan.ProgressEvery,
			}, c.Logger)
			s, err := d.Dispatch(ctx, args)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Checked %d packages, %d with .pth", s.Completed, s.Positive))
			return nil
		},
	}
	idx.register(cmd)

	return cmd
}
