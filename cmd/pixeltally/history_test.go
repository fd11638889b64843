package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/pixeltally/pixeltally/internal/database"
	"github.com/pixeltally/pixeltally/internal/model"
)

// TestNewHistoryCmd tests the history command creation.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "history [run-id]" {
			t.Errorf("expected use 'history [run-id]', got %q", cmd.Use)
		}
	})

	t.Run("has limit flag with default 20", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("limit")
		if flag == nil {
			t.Fatal("expected limit flag")
		}
		if flag.DefValue != "20" {
			t.Errorf("expected default '20', got %q", flag.DefValue)
		}
	})
}

// newTestHistoryDB creates a database with one saved run for rendering tests.
func newTestHistoryDB(t *testing.T) (*database.RunDB, int64) {
	t.Helper()

	db, err := database.Open(t.TempDir(), database.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	summary := model.NewRunSummary(250)
	summary.Add(model.NewFileResult("a.png", 2, 4, 8))
	summary.Add(model.NewFileResult("b.png", 1, 4, 8))
	summary.AddFailure()

	id, err := db.SaveRun(context.Background(), summary)
	if err != nil {
		t.Fatal(err)
	}
	return db, id
}

// outputCommand builds a bare command with a captured stdout buffer.
func outputCommand() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(&buf)
	return cmd, &buf
}

// TestListRuns tests the run listing output.
func TestListRuns(t *testing.T) {
	t.Parallel()

	db, _ := newTestHistoryDB(t)
	cmd, buf := outputCommand()

	if err := listRuns(cmd, db, 10); err != nil {
		t.Fatal(err)
	}

	output := buf.String()
	if !strings.Contains(output, "THRESHOLD") {
		t.Errorf("expected header row, got:\n%s", output)
	}
	if !strings.Contains(output, "250") {
		t.Errorf("expected threshold in listing, got:\n%s", output)
	}
	if !strings.Contains(output, "37.50%") {
		t.Errorf("expected aggregate percentage, got:\n%s", output)
	}
}

// TestShowRun tests the per-file output of a stored run.
func TestShowRun(t *testing.T) {
	t.Parallel()

	db, id := newTestHistoryDB(t)
	cmd, buf := outputCommand()

	if err := showRun(cmd, db, id); err != nil {
		t.Fatal(err)
	}

	output := buf.String()
	if !strings.Contains(output, "threshold 250") {
		t.Errorf("expected run header, got:\n%s", output)
	}
	if !strings.Contains(output, "(1 failed)") {
		t.Errorf("expected failure count, got:\n%s", output)
	}
	if !strings.Contains(output, "a.png: non-white=2  total=4") {
		t.Errorf("expected per-file line, got:\n%s", output)
	}
}

// TestShowRunMissing tests the error for an unknown run ID.
func TestShowRunMissing(t *testing.T) {
	t.Parallel()

	db, _ := newTestHistoryDB(t)
	cmd, buf := outputCommand()

	err := showRun(cmd, db, 9999)
	if err == nil {
		t.Fatal("expected error for unknown run ID")
	}
	if !strings.Contains(err.Error(), "run 9999 not found") {
		t.Errorf("got %v, expected a not-found error", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output for an unknown run, got:\n%s", buf.String())
	}
}
