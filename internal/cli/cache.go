package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fitsunits/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the persistent parse and conversion cache",
		Long: `Parsed unit strings and conversions are cached on disk between runs,
keyed by the build that wrote them. The directory comes from cache_dir in
the config file, or defaults to $XDG_CACHE_HOME/fitsunits.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached entry",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, _ []string) error { return c.clearCache() },
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), dir)
			return err
		},
	})
	return cmd
}

// cacheDir resolves the configured cache directory without creating it.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.CacheDir != "" {
		return c.Config.CacheDir, nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return dir, nil
}

func (c *CLI) clearCache() error {
	fc, err := cache.NewFileCache(c.Config.CacheDir)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer fc.Close()

	n, err := fc.Clear()
	switch {
	case err != nil:
		return fmt.Errorf("clear cache: %w", err)
	case n == 0:
		printInfo("Cache is empty")
	default:
		printSuccess("Cleared %d cached entries", n)
		printDetail("Directory: %s", fc.Dir())
	}
	return nil
}
