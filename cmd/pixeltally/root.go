// Package main provides the entry point for the pixeltally CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pixeltally/pixeltally/internal/config"
	"github.com/pixeltally/pixeltally/internal/scan"
)

// NewRootCmd creates the root command for pixeltally.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pixeltally",
		Short: "Count non-white pixels in images",
		Long: `pixeltally counts non-white pixels in one or more images.

A pixel is considered white when ALL of its channels (RGB or gray) are at or
above the brightness threshold, 250 by default on the 0-255 scale. 16-bit
images scale the threshold internally. Per-file counts are printed as the
batch runs, followed by a grand total, and can also be written to CSV, JSON,
or Markdown.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCountCmd())
	cmd.AddCommand(NewInspectCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command and exits with the documented codes:
// 2 for a threshold outside [0, 255], 1 when no files matched or on any
// other error, 0 otherwise (per-file decode failures are warnings, not
// errors).
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error onto the process exit code.
func exitCode(err error) int {
	if errors.Is(err, config.ErrThresholdOutOfRange) {
		return 2
	}
	if errors.Is(err, scan.ErrNoFiles) {
		return 1
	}
	return 1
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}
