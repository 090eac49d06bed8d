package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/vox/internal/state"
	"github.com/ShayCichocki/vox/internal/status"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the assistant status and journal summary",
	Long: `Display what a running assistant last published and a summary of
the cycle journal.

Shows:
  - The status label and microphone state from the data directory
  - Cycle counts by branch and outcome
  - The most recent cycle
  - Pending reminders`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	label, mic, err := status.ReadFiles(cfg.DataDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintln(out, "No status published yet. Run 'vox' to start the assistant.")
	case err != nil:
		return fmt.Errorf("read status files: %w", err)
	default:
		displayStatus(out, label, mic)
	}

	dbPath := cfg.DBPath()
	if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	db, err := state.OpenAndMigrate(dbPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer db.Close()

	stats, err := db.Stats(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	displayStats(out, stats, time.Now())

	reminders, err := db.ListReminders(cmd.Context(), true)
	if err != nil {
		return err
	}
	displayReminders(out, reminders)
	return nil
}

func displayStatus(out io.Writer, label string, mic bool) {
	micState := "off"
	if mic {
		micState = "on"
	}
	fmt.Fprintf(out, "Status: %s\n", label)
	fmt.Fprintf(out, "  Microphone: %s\n", micState)
}

func displayStats(out io.Writer, s *state.Stats, now time.Time) {
	fmt.Fprintf(out, "Journal: %s cycles\n", formatNumber(s.Total))
	if s.Total == 0 {
		return
	}

	fmt.Fprintf(out, "  Branches: %s\n", formatCounts(s.ByBranch))
	byOutcome := make(map[string]int, len(s.ByOutcome))
	for k, v := range s.ByOutcome {
		byOutcome[string(k)] = v
	}
	fmt.Fprintf(out, "  Outcomes: %s\n", formatCounts(byOutcome))

	if s.Last != nil {
		fmt.Fprintf(out, "  Last: %q via %s, %s (%s ago)\n",
			truncate(s.Last.Utterance, 60),
			s.Last.Branch,
			s.Last.Outcome,
			formatDuration(now.Sub(s.Last.StartedAt)))
	}
}

func displayReminders(out io.Writer, reminders []state.Reminder) {
	if len(reminders) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Pending Reminders:")
	for _, r := range reminders {
		fmt.Fprintf(out, "  #%d: %s\n", r.ID, r.Text)
	}
}

// formatCounts renders counts as "a=1, b=2" sorted by key.
func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		name := k
		if name == "" {
			name = "none"
		}
		parts = append(parts, fmt.Sprintf("%s=%d", name, counts[k]))
	}
	return strings.Join(parts, ", ")
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		if m > 0 {
			return fmt.Sprintf("%dh%dm", h, m)
		}
		return fmt.Sprintf("%dh", h)
	}
	days := int(d.Hours()) / 24
	return fmt.Sprintf("%dd", days)
}

// formatNumber formats a number with commas.
func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	offset := len(s) % 3
	if offset > 0 {
		result.WriteString(s[:offset])
		result.WriteString(",")
	}
	for i := offset; i < len(s); i += 3 {
		result.WriteString(s[i : i+3])
		if i+3 < len(s) {
			result.WriteString(",")
		}
	}
	return result.String()
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
