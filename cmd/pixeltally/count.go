package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pixeltally/pixeltally/internal/config"
	"github.com/pixeltally/pixeltally/internal/database"
	logpkg "github.com/pixeltally/pixeltally/internal/log"
	"github.com/pixeltally/pixeltally/internal/model"
	"github.com/pixeltally/pixeltally/internal/report"
	"github.com/pixeltally/pixeltally/internal/scan"
)

// NewCountCmd creates the count command.
func NewCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count [paths...]",
		Short: "Count non-white pixels in image files and directories",
		Long: `Count classifies every pixel of every discovered image against the
whiteness threshold and reports per-file and aggregate non-white counts.

Directories are expanded through the extension filter; files named explicitly
are always processed. The same file reached through several arguments is
counted once. An image that cannot be decoded is skipped with a warning and
excluded from the totals; it never aborts the batch.

Examples:
  # Count two images with the default threshold of 250
  pixeltally count img1.jpg img2.png

  # Recurse into a directory
  pixeltally count -r /path/to/dir

  # Custom threshold and extension filter
  pixeltally count -r -t 245 -e jpg -e png -e tif /path/to/dir

  # Write a CSV report next to the terminal output
  pixeltally count -r --csv results.csv imgs

  # Markdown report to a file
  pixeltally count --markdown -o report.md imgs

Configuration file (.pixeltally) example:
  threshold: 245
  extensions: [png, tif, tiff]
  recursive: true`,
		Args: cobra.ArbitraryArgs,
		RunE: runCountCmd,
	}

	// Counting flags
	cmd.Flags().IntP("threshold", "t", config.DefaultThreshold,
		"8-bit whiteness threshold (0-255)")
	cmd.Flags().StringSliceP("ext", "e", config.DefaultExtensions(),
		"Allowed file extensions for directory expansion (no dots)")
	cmd.Flags().BoolP("recursive", "r", false,
		"Recurse into subfolders for directories")
	cmd.Flags().IntP("jobs", "j", config.DefaultJobs,
		"Number of concurrent decode workers (1 = strictly sequential)")

	// Report flags
	cmd.Flags().String("csv", "",
		"Optional CSV output path (parent directories are created)")
	cmd.Flags().Bool("json", false,
		"Output JSON run report (mutually exclusive with --markdown)")
	cmd.Flags().Bool("markdown", false,
		"Output Markdown run report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write the JSON/Markdown report to this file instead of stdout")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .pixeltally in current or home directory)")

	// History
	cmd.Flags().Bool("no-history", false,
		"Do not save this run to the history database")

	return cmd
}

// runCountCmd executes the count command.
func runCountCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildCountConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := logpkg.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling so a batch can be interrupted
	// between files.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runCount(ctx, cmd, cfg, logger)
}

// buildCountConfig creates a Config from cobra command flags and the
// optional YAML defaults file.
func buildCountConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Paths = args
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	if cfg.Threshold, err = cmd.Flags().GetInt("threshold"); err != nil {
		return nil, err
	}
	if cfg.Extensions, err = cmd.Flags().GetStringSlice("ext"); err != nil {
		return nil, err
	}
	if cfg.Recursive, err = cmd.Flags().GetBool("recursive"); err != nil {
		return nil, err
	}
	if cfg.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return nil, err
	}
	if cfg.CSVPath, err = cmd.Flags().GetString("csv"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, err
	}
	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory

	// Load defaults from the config file. An explicitly specified file must
	// exist; the default search locations may all be absent.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg, cmd.Flags().Changed)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	return cfg, nil
}

// runCount discovers the files, runs the batch, and emits the reports.
func runCount(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	logger.Info("starting count",
		"paths", cfg.Paths,
		"threshold", cfg.Threshold,
		"recursive", cfg.Recursive,
		"jobs", cfg.Jobs,
	)

	files, missing := scan.Discover(cfg.Paths, cfg.Extensions, cfg.Recursive)
	for _, m := range missing {
		fmt.Fprintf(stderr, "Warning: not found: %s\n", m)
	}
	if len(files) == 0 {
		return scan.ErrNoFiles
	}

	console := report.NewConsole(stdout)
	batch := scan.New(cfg.Threshold,
		scan.WithJobs(cfg.Jobs),
		scan.WithLogger(logger),
	)

	summary, err := batch.Run(ctx, files, func(o scan.Outcome) {
		if o.Err != nil {
			fmt.Fprintf(stderr, "Warning: skipping %s: %v\n", filepath.Base(o.Path), o.Err)
			return
		}
		console.WriteResult(*o.Result)
	})
	if err != nil {
		return err
	}

	if summary.Total > 0 {
		console.WriteSummary(summary)
	}

	if cfg.CSVPath != "" && len(summary.Results) > 0 {
		if err := writeCSVReport(cfg.CSVPath, summary); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote CSV report to %s\n", cfg.CSVPath)
	}

	if cfg.JSONReport || cfg.MarkdownReport {
		if err := outputReport(cfg, stdout, summary); err != nil {
			return err
		}
	}

	// History persistence is best effort: a broken database must not turn a
	// successful count into a failure.
	if cfg.SaveHistory {
		if err := saveRun(ctx, cfg, summary); err != nil {
			logger.Warn("failed to save run history", "error", err)
		}
	}

	return nil
}

// writeCSVReport writes the per-file CSV, creating parent directories.
func writeCSVReport(path string, summary *model.RunSummary) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create CSV directory: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	return report.NewCSVWriter(f).Write(summary)
}

// outputReport writes the JSON or Markdown run report to the configured
// destination.
func outputReport(cfg *config.Config, stdout io.Writer, summary *model.RunSummary) error {
	output := stdout
	if cfg.ReportFile != "" {
		if dir := filepath.Dir(cfg.ReportFile); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.Create(cfg.ReportFile) //nolint:gosec // User-provided output path is intentional
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer report.Writer
	if cfg.JSONReport {
		writer = report.NewJSONWriter(output)
	} else {
		writer = report.NewMarkdownWriter(output)
	}
	return writer.Write(summary)
}

// saveRun stores the summary in the history database.
func saveRun(ctx context.Context, cfg *config.Config, summary *model.RunSummary) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	if _, err := db.SaveRun(ctx, summary); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}
