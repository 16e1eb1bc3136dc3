package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rackpy/internal/driver"
)

var filesCmd = &cobra.Command{
	Use:   "files [dir]",
	Short: "List the source files available to run",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		recursive, err := cmd.Flags().GetBool("recursive")
		if err != nil {
			return fmt.Errorf("failed to get recursive flag: %w", err)
		}
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		return listFiles(cmd.OutOrStdout(), dir, settings.driver.Extension, recursive, !settings.global.quiet)
	},
}

func init() {
	filesCmd.Flags().BoolP("recursive", "r", false, "descend into subdirectories")
}

func listFiles(out io.Writer, dir, ext string, recursive, header bool) error {
	files, err := driver.ListFiles(dir, ext, recursive)
	if err != nil {
		return fmt.Errorf("list %s: %w", dir, err)
	}
	if header {
		fmt.Fprintln(out, "Available Files to Test:")
	}
	for _, f := range files {
		fmt.Fprintln(out, f)
	}
	return nil
}
