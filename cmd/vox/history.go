package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/vox/internal/state"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent cycles from the journal",
	Long: `List the most recent listen-classify-act cycles, newest first.

Each entry shows when the utterance was heard, how the cycle ended, the
branch that answered it, and the first part of the answer.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		dbPath := cfg.DBPath()
		if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(out, "No cycles recorded yet.")
			return nil
		}

		db, err := state.OpenAndMigrate(dbPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer db.Close()

		cycles, err := db.ListCycles(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		displayCycles(out, cycles)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of cycles to show (0 for all)")
}

func displayCycles(out io.Writer, cycles []state.Cycle) {
	if len(cycles) == 0 {
		fmt.Fprintln(out, "No cycles recorded yet.")
		return
	}
	for _, c := range cycles {
		branch := c.Branch
		if branch == "" {
			branch = "-"
		}
		fmt.Fprintf(out, "%s  %-11s %-10s %s\n",
			c.StartedAt.Local().Format(time.DateTime),
			c.Outcome,
			branch,
			truncate(c.Utterance, 60))
		if len(c.Decision) > 0 {
			fmt.Fprintf(out, "    decision: %s\n", strings.Join(c.Decision, ", "))
		}
		if c.Answer != "" {
			fmt.Fprintf(out, "    answer: %s\n", truncate(strings.ReplaceAll(c.Answer, "\n", " "), 100))
		}
		if c.Error != "" {
			fmt.Fprintf(out, "    error: %s\n", c.Error)
		}
	}
}
