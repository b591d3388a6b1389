package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// cacheCommand creates the cache management command. The file cache keeps
// generated networks and rendered artifacts in separate class directories,
// so clearing reports what kind of work is being thrown away.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached networks and artifacts",
		Long: `The cache stores content-addressed results of previous runs:

  network    generated network documents, keyed by inputs and epsilon
  artifact   rendered SVG/PNG output, keyed by the network and format

Entries expire on their own (networks after a week, artifacts after a
month); clear only when you want to reclaim the space early.`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached networks and rendered artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			classes, err := os.ReadDir(dir)
			if os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}
			if err != nil {
				return fmt.Errorf("read cache dir: %w", err)
			}

			total := 0
			perClass := make(map[string]int, len(classes))
			for _, class := range classes {
				if !class.IsDir() {
					continue
				}
				sub := filepath.Join(dir, class.Name())
				entries, err := os.ReadDir(sub)
				if err != nil {
					continue
				}
				if err := os.RemoveAll(sub); err != nil {
					return fmt.Errorf("clear %s entries: %w", class.Name(), err)
				}
				perClass[class.Name()] = len(entries)
				total += len(entries)
			}

			if total == 0 {
				printInfo("Cache is empty")
				return nil
			}

			printSuccess("Cleared %d cached entries", total)
			for _, class := range []string{"network", "artifact"} {
				if n := perClass[class]; n > 0 {
					printDetail("%s: %d", class, n)
				}
			}
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
