package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/pixeltally/pixeltally/internal/config"
	"github.com/pixeltally/pixeltally/internal/scan"
)

// writeFixture writes a 2x2 grayscale PNG with two white and two black pixels.
func writeFixture(t *testing.T, path string) {
	t.Helper()
	im := image.NewGray(image.Rect(0, 0, 2, 2))
	im.SetGray(0, 0, color.Gray{Y: 255})
	im.SetGray(1, 0, color.Gray{Y: 255})
	im.SetGray(0, 1, color.Gray{Y: 10})
	im.SetGray(1, 1, color.Gray{Y: 10})
	if err := imaging.Save(im, path); err != nil {
		t.Fatal(err)
	}
}

// runCommand executes the root command with args, returning stdout and stderr.
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// TestNewCountCmd tests the count command creation.
func TestNewCountCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCountCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "count [paths...]" {
			t.Errorf("expected use 'count [paths...]', got %q", cmd.Use)
		}
	})

	t.Run("has threshold flag with default 250", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("threshold")
		if flag == nil {
			t.Fatal("expected threshold flag")
		}
		if flag.Shorthand != "t" {
			t.Errorf("expected shorthand 't', got %q", flag.Shorthand)
		}
		if flag.DefValue != "250" {
			t.Errorf("expected default '250', got %q", flag.DefValue)
		}
	})

	t.Run("has ext flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("ext")
		if flag == nil {
			t.Fatal("expected ext flag")
		}
		if flag.Shorthand != "e" {
			t.Errorf("expected shorthand 'e', got %q", flag.Shorthand)
		}
	})

	t.Run("has recursive flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("recursive")
		if flag == nil {
			t.Fatal("expected recursive flag")
		}
		if flag.Shorthand != "r" {
			t.Errorf("expected shorthand 'r', got %q", flag.Shorthand)
		}
	})

	t.Run("has jobs flag with default 1", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("jobs")
		if flag == nil {
			t.Fatal("expected jobs flag")
		}
		if flag.DefValue != "1" {
			t.Errorf("expected default '1', got %q", flag.DefValue)
		}
	})

	t.Run("has report flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"csv", "json", "markdown", "output", "config", "no-history"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s flag", name)
			}
		}
	})
}

// TestCountCmd tests end-to-end counting through the CLI.
func TestCountCmd(t *testing.T) {
	t.Parallel()

	t.Run("counts a single file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "sample.png")
		writeFixture(t, path)

		stdout, _, err := runCommand(t, "count", "--no-history", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(stdout, "sample.png: non-white=2  total=4  pct= 50.00%  depth=8-bit") {
			t.Errorf("unexpected per-file line in output:\n%s", stdout)
		}
		if !strings.Contains(stdout, "TOTAL: non-white=2  total=4  pct= 50.00%") {
			t.Errorf("expected TOTAL line in output:\n%s", stdout)
		}
		if !strings.Contains(stdout, strings.Repeat("-", 60)) {
			t.Errorf("expected separator line in output:\n%s", stdout)
		}
	})

	t.Run("aggregates over a directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFixture(t, filepath.Join(dir, "a.png"))
		writeFixture(t, filepath.Join(dir, "b.png"))

		stdout, _, err := runCommand(t, "count", "--no-history", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "TOTAL: non-white=4  total=8  pct= 50.00%") {
			t.Errorf("expected aggregated TOTAL in output:\n%s", stdout)
		}
	})

	t.Run("skips undecodable files with a warning", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFixture(t, filepath.Join(dir, "good.png"))
		if err := os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not an image"), 0600); err != nil {
			t.Fatal(err)
		}

		stdout, stderr, err := runCommand(t, "count", "--no-history", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stderr, "Warning: skipping bad.png") {
			t.Errorf("expected skip warning on stderr, got:\n%s", stderr)
		}
		if !strings.Contains(stdout, "TOTAL: non-white=2  total=4") {
			t.Errorf("expected totals without the bad file:\n%s", stdout)
		}
	})

	t.Run("warns about missing paths", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "sample.png")
		writeFixture(t, path)

		_, stderr, err := runCommand(t, "count", "--no-history", path, filepath.Join(dir, "nope.png"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stderr, "Warning: not found:") {
			t.Errorf("expected not-found warning on stderr, got:\n%s", stderr)
		}
	})

	t.Run("threshold zero counts nothing", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "sample.png")
		writeFixture(t, path)

		stdout, _, err := runCommand(t, "count", "--no-history", "-t", "0", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "non-white=0  total=4") {
			t.Errorf("expected zero non-white pixels:\n%s", stdout)
		}
	})

	t.Run("out-of-range threshold fails validation", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "sample.png")
		writeFixture(t, path)

		_, _, err := runCommand(t, "count", "--no-history", "-t", "300", path)
		if !errors.Is(err, config.ErrThresholdOutOfRange) {
			t.Errorf("got %v, expected ErrThresholdOutOfRange", err)
		}
		if exitCode(err) != 2 {
			t.Errorf("got exit code %d, expected 2", exitCode(err))
		}
	})

	t.Run("no matching files", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		_, _, err := runCommand(t, "count", "--no-history", dir)
		if !errors.Is(err, scan.ErrNoFiles) {
			t.Errorf("got %v, expected ErrNoFiles", err)
		}
		if exitCode(err) != 1 {
			t.Errorf("got exit code %d, expected 1", exitCode(err))
		}
	})

	t.Run("duplicate arguments count once", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "sample.png")
		writeFixture(t, path)

		stdout, _, err := runCommand(t, "count", "--no-history", path, path, dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "TOTAL: non-white=2  total=4") {
			t.Errorf("expected the file counted once:\n%s", stdout)
		}
	})

	t.Run("writes CSV report", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "sample.png")
		writeFixture(t, path)
		csvPath := filepath.Join(dir, "out", "results.csv")

		stdout, _, err := runCommand(t, "count", "--no-history", "--csv", csvPath, path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Wrote CSV report to") {
			t.Errorf("expected CSV confirmation:\n%s", stdout)
		}

		data, err := os.ReadFile(csvPath) //nolint:gosec // Test-controlled path
		if err != nil {
			t.Fatal(err)
		}
		content := string(data)
		if !strings.HasPrefix(content, "path,nonwhite_pixels,total_pixels,percent_nonwhite,bit_depth") {
			t.Errorf("unexpected CSV header:\n%s", content)
		}
		if !strings.Contains(content, "50.0000") {
			t.Errorf("expected four-decimal percent in CSV:\n%s", content)
		}
	})

	t.Run("writes JSON report to file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "sample.png")
		writeFixture(t, path)
		outPath := filepath.Join(dir, "report.json")

		_, _, err := runCommand(t, "count", "--no-history", "--json", "-o", outPath, path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(outPath) //nolint:gosec // Test-controlled path
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), `"nonwhite_pixels"`) {
			t.Errorf("unexpected JSON report:\n%s", data)
		}
	})

	t.Run("conflicting report formats fail validation", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "sample.png")
		writeFixture(t, path)

		_, _, err := runCommand(t, "count", "--no-history", "--json", "--markdown", path)
		if !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("got %v, expected ErrConflictingReportFormats", err)
		}
	})

	t.Run("explicit config file must exist", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "sample.png")
		writeFixture(t, path)

		_, _, err := runCommand(t, "count", "--no-history", "-c", filepath.Join(dir, "missing.yml"), path)
		if err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("config file supplies defaults flags override", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "sample.png")
		writeFixture(t, path)

		cfgPath := filepath.Join(dir, config.DefaultConfigFile)
		if err := os.WriteFile(cfgPath, []byte("threshold: 0\n"), 0600); err != nil {
			t.Fatal(err)
		}

		// File default of 0 counts nothing.
		stdout, _, err := runCommand(t, "count", "--no-history", "-c", cfgPath, path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "non-white=0") {
			t.Errorf("expected config threshold to apply:\n%s", stdout)
		}

		// An explicit flag wins over the file.
		stdout, _, err = runCommand(t, "count", "--no-history", "-c", cfgPath, "-t", "250", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "non-white=2") {
			t.Errorf("expected flag to override config file:\n%s", stdout)
		}
	})

	t.Run("concurrent jobs match sequential totals", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFixture(t, filepath.Join(dir, "a.png"))
		writeFixture(t, filepath.Join(dir, "b.png"))
		writeFixture(t, filepath.Join(dir, "c.png"))

		seq, _, err := runCommand(t, "count", "--no-history", dir)
		if err != nil {
			t.Fatal(err)
		}
		par, _, err := runCommand(t, "count", "--no-history", "-j", "4", dir)
		if err != nil {
			t.Fatal(err)
		}
		if seq != par {
			t.Errorf("concurrent output differs from sequential:\n--- sequential\n%s--- concurrent\n%s", seq, par)
		}
	})
}
