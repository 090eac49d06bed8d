package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/vox/internal/status"
	"github.com/ShayCichocki/vox/internal/voice"
)

var runMuted bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the assistant headless on stdin and stdout",
	Long: `Run the assistant without the TUI.

Each line read from stdin is one utterance. Answers are printed to stdout
and spoken when a synthesizer is available. The loop stops on an exit
command, end of input, or Ctrl+C.

With --muted the microphone starts off; write "True" to Mic.data in the
data directory to turn it on from another process.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHeadless(cmd.Context(), headlessOptions{muted: runMuted})
	},
}

func init() {
	runCmd.Flags().BoolVar(&runMuted, "muted", false, "Start with the microphone off")
}

type headlessOptions struct {
	muted bool
}

// runHeadless runs the loop on the console.
func runHeadless(ctx context.Context, opts headlessOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	display := voice.NewConsoleDisplay(os.Stdout)
	a, err := newAssistant(ctx, cfg, wiring{
		Listener: voice.NewConsoleListener(os.Stdin, cfg.Voice.ListenTimeout),
		Display:  display,
		Console:  verbose,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	a.status.Observe(func(s status.Snapshot) {
		display.Status(s.Status.Label())
	})

	return a.run(ctx, !opts.muted)
}
