package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/autolayout/pkg/cache"
)

// cacheCommand manages the on-disk cache of converted PDF, PNG and graph
// artifacts.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered-artifact cache",
	}

	var expired bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached PDF, PNG and graph artifacts",
		Long: `Remove cached artifacts. With --expired only entries past their
time-to-live (and unreadable ones) are removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := openFileCache()
			if err != nil {
				return err
			}
			sweep, what := fc.Clear, "cached"
			if expired {
				sweep, what = fc.Prune, "expired"
			}
			n, err := sweep()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Removed %d %s entries", n, what)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&expired, "expired", false, "only remove entries past their time-to-live")

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("locate cache: %w", err)
			}
			fmt.Fprintln(c.stdout, dir)
			return nil
		},
	}

	cmd.AddCommand(clearCmd, path)
	return cmd
}

func openFileCache() (*cache.FileCache, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, fmt.Errorf("locate cache: %w", err)
	}
	return cache.NewFileCache(dir)
}
