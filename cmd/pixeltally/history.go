package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pixeltally/pixeltally/internal/config"
	"github.com/pixeltally/pixeltally/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show previously saved counting runs",
		Long: `History lists past counting runs stored in the local SQLite database,
newest first. Passing a run ID prints that run's per-file results instead.

Runs are saved automatically by the count command unless --no-history is
given.

Examples:
  # List the most recent runs
  pixeltally history

  # List the last 5 runs
  pixeltally history --limit 5

  # Show the per-file results of run 3
  pixeltally history 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().Int("limit", config.DefaultHistoryLimit,
		"Maximum number of runs to list")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	db, err := database.Open(config.XDGDataDir(), database.ReadOnlyOptions())
	if err != nil {
		return fmt.Errorf("no run history found (run a count first): %w", err)
	}
	defer db.Close()

	if len(args) == 1 {
		runID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run ID %q: %w", args[0], err)
		}
		return showRun(cmd, db, runID)
	}
	return listRuns(cmd, db, limit)
}

// listRuns prints the stored runs, newest first.
func listRuns(cmd *cobra.Command, db *database.RunDB, limit int) error {
	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	stdout := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(stdout, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(stdout, "%-5s %-20s %-10s %-6s %-7s %-14s %-14s %s\n",
		"ID", "STARTED", "THRESHOLD", "FILES", "FAILED", "NON-WHITE", "TOTAL", "PCT")
	for _, r := range runs {
		fmt.Fprintf(stdout, "%-5d %-20s %-10d %-6d %-7d %-14d %-14d %6.2f%%\n",
			r.ID,
			r.Started.Format("2006-01-02 15:04:05"),
			r.Threshold,
			r.Files,
			r.Failed,
			r.Nonwhite,
			r.Total,
			r.Percent(),
		)
	}
	return nil
}

// showRun prints the per-file results of a single stored run.
func showRun(cmd *cobra.Command, db *database.RunDB, runID int64) error {
	run, err := db.GetRun(cmd.Context(), runID)
	if err != nil {
		return fmt.Errorf("failed to load run %d: %w", runID, err)
	}
	if run == nil {
		return fmt.Errorf("run %d not found", runID)
	}

	files, err := db.GetRunFiles(cmd.Context(), runID)
	if err != nil {
		return fmt.Errorf("failed to load files of run %d: %w", runID, err)
	}

	stdout := cmd.OutOrStdout()
	fmt.Fprintf(stdout, "Run %d (started %s, threshold %d)\n",
		run.ID, run.Started.Format("2006-01-02 15:04:05"), run.Threshold)
	printRunStats(stdout, run)

	if len(files) == 0 {
		return nil
	}

	fmt.Fprintln(stdout)
	for _, f := range files {
		fmt.Fprintf(stdout, "%s: non-white=%d  total=%d  pct=%6.2f%%  depth=%d-bit\n",
			f.Path, f.Nonwhite, f.Total, f.Percent, f.BitDepth)
	}
	return nil
}

// printRunStats prints the aggregate numbers of a stored run.
func printRunStats(w io.Writer, run *database.RunRecord) {
	fmt.Fprintf(w, "Files: %d (%d failed)  non-white=%d  total=%d  pct=%6.2f%%\n",
		run.Files, run.Failed, run.Nonwhite, run.Total, run.Percent())
}
