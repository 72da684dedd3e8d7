package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dshills/jqrt/pkg/storage"
)

// RunsListFlags holds the flags for the runs command
type RunsListFlags struct {
	Limit   int
	Catalog string
	Since   string
}

// RunDetailFlags holds the flags for the runs show command
type RunDetailFlags struct {
	JSON bool
}

// NewRunsCommand creates the runs command
func NewRunsCommand() *cobra.Command {
	flags := &RunsListFlags{}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded conformance runs",
		Long:  `List conformance runs recorded with "jqrt conform --record", most recent first.`,
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsList(cmd, flags)
		},
	}

	cmd.Flags().IntVar(&flags.Limit, "limit", 20, "Maximum number of runs to display")
	cmd.Flags().StringVar(&flags.Catalog, "catalog", "", "Filter by catalog name")
	cmd.Flags().StringVar(&flags.Since, "since", "", "Filter by date (e.g., 7d, 24h, 2026-01-05)")

	cmd.AddCommand(newRunShowCommand())

	return cmd
}

func newRunShowCommand() *cobra.Command {
	flags := &RunDetailFlags{}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Display a recorded run with its cases",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunDetail(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.JSON, "json", false, "Output run details as JSON")

	return cmd
}

func runRunsList(cmd *cobra.Command, flags *RunsListFlags) error {
	opts := storage.ListOptions{
		Limit:   flags.Limit,
		Catalog: flags.Catalog,
	}
	if flags.Since != "" {
		since, err := parseSinceFlag(flags.Since)
		if err != nil {
			return fmt.Errorf("%w: invalid --since value: %w", ErrUsage, err)
		}
		opts.StartedAfter = since
	}

	repo, err := storage.NewSQLiteRunRepository(GetDatabasePath())
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}
	defer func() { _ = repo.Close() }()

	runs, err := repo.ListFiltered(opts)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		_, _ = fmt.Fprintln(out, "No runs found.")
		return nil
	}

	printRunsTable(out, runs)
	return nil
}

func runRunDetail(cmd *cobra.Command, rawID string, flags *RunDetailFlags) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("%w: invalid run id %q: %w", ErrUsage, rawID, err)
	}

	repo, err := storage.NewSQLiteRunRepository(GetDatabasePath())
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}
	defer func() { _ = repo.Close() }()

	run, err := repo.Get(id)
	if err != nil {
		return err
	}

	if flags.JSON {
		return printRunJSON(cmd.OutOrStdout(), run)
	}
	printRunDetail(cmd.OutOrStdout(), run)
	return nil
}

// printRunsTable displays runs in a formatted table
func printRunsTable(out io.Writer, runs []*storage.Run) {
	_, _ = fmt.Fprintf(out, "%-36s  %-20s %6s %6s  %s\n", "ID", "Catalog", "Passed", "Failed", "Started")
	_, _ = fmt.Fprintln(out, strings.Repeat("-", 90))

	for _, run := range runs {
		_, _ = fmt.Fprintf(out, "%-36s  %-20s %6d %6d  %s\n",
			run.ID,
			truncateString(run.Catalog, 20),
			run.Passed,
			run.Failed,
			run.StartedAt.Local().Format("2006-01-02 15:04"))
	}
}

// printRunDetail displays a run and each of its cases
func printRunDetail(out io.Writer, run *storage.Run) {
	_, _ = fmt.Fprintf(out, "Run: %s\n", run.ID)
	_, _ = fmt.Fprintf(out, "Catalog: %s\n", run.Catalog)
	_, _ = fmt.Fprintf(out, "Started: %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	_, _ = fmt.Fprintf(out, "Result: %d passed, %d failed\n", run.Passed, run.Failed)

	if len(run.Cases) == 0 {
		return
	}
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Cases:")
	for _, c := range run.Cases {
		mark := "ok  "
		if !c.Passed {
			mark = "FAIL"
		}
		line := fmt.Sprintf("  %s %s", mark, c.CaseID)
		if c.Kind != "" {
			line += " [" + c.Kind + "]"
		}
		if c.Message != "" {
			line += ": " + c.Message
		}
		_, _ = fmt.Fprintln(out, line)
	}
}

// printRunJSON outputs a run as JSON
func printRunJSON(out io.Writer, run *storage.Run) error {
	cases := make([]map[string]interface{}, len(run.Cases))
	for i, c := range run.Cases {
		cases[i] = map[string]interface{}{
			"case_id": c.CaseID,
			"passed":  c.Passed,
		}
		if c.Kind != "" {
			cases[i]["kind"] = c.Kind
		}
		if c.Message != "" {
			cases[i]["message"] = c.Message
		}
	}

	output := map[string]interface{}{
		"id":         run.ID,
		"catalog":    run.Catalog,
		"started_at": run.StartedAt,
		"passed":     run.Passed,
		"failed":     run.Failed,
		"cases":      cases,
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// parseSinceFlag parses the --since flag into a time.Time
// Supports formats: "7d" (7 days), "24h" (24 hours), "2026-01-05" (date)
func parseSinceFlag(since string) (time.Time, error) {
	now := time.Now()

	if strings.HasSuffix(since, "d") {
		var d int
		if _, err := fmt.Sscanf(since[:len(since)-1], "%d", &d); err == nil {
			return now.AddDate(0, 0, -d), nil
		}
	}
	if strings.HasSuffix(since, "h") {
		var h int
		if _, err := fmt.Sscanf(since[:len(since)-1], "%d", &h); err == nil {
			return now.Add(-time.Duration(h) * time.Hour), nil
		}
	}

	layouts := []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, since, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date format (use: 7d, 24h, or 2026-01-05)")
}

// truncateString truncates a string to the specified length
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-2] + ".."
}
