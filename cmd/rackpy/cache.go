package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"rackpy/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clean the translation cache",
	Long: `Inspect or clean the on-disk translation cache. Entries are keyed by the
source hash, output options and rackpy version, so stale ones are never served
but do take disk space until pruned.`,
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show cache location and size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := driver.OpenDiskCache("rackpy")
		if err != nil {
			return err
		}
		return cacheInfo(cmd.OutOrStdout(), cache)
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached translation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := driver.OpenDiskCache("rackpy")
		if err != nil {
			return err
		}
		if err := cache.Clear(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", cache.Dir())
		return nil
	},
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove cached translations older than --older-than",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		age, err := cmd.Flags().GetDuration("older-than")
		if err != nil {
			return fmt.Errorf("failed to get older-than flag: %w", err)
		}
		if age <= 0 {
			return fmt.Errorf("--older-than must be positive, got %s", age)
		}
		cache, err := driver.OpenDiskCache("rackpy")
		if err != nil {
			return err
		}
		removed, err := cache.Prune(age)
		fmt.Fprintf(cmd.OutOrStdout(), "pruned %d entries\n", removed)
		return err
	},
}

func init() {
	cachePruneCmd.Flags().Duration("older-than", 30*24*time.Hour, "prune entries not written within this duration")
	cacheCmd.AddCommand(cacheInfoCmd, cacheClearCmd, cachePruneCmd)
}

func cacheInfo(out io.Writer, cache *driver.DiskCache) error {
	st, err := cache.Stats()
	if err != nil {
		return fmt.Errorf("failed to scan cache: %w", err)
	}
	fmt.Fprintf(out, "dir:     %s\nentries: %d\nsize:    %d bytes\n", cache.Dir(), st.Entries, st.Bytes)
	return nil
}
