package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/vox/internal/config"
)

var (
	configPath string
	dataDir    string
	verbose    bool
	noSpeech   bool
)

var rootCmd = &cobra.Command{
	Use:   "vox",
	Short: "Voice-driven personal assistant",
	Long: `Vox listens for an utterance, classifies it into tagged commands, and
answers by chatting, searching the web, or running desktop automation.

With no arguments, launches the interactive TUI when stdout is a terminal,
and the headless loop otherwise.

Core capabilities:
- Multi-intent classification through the Anthropic API
- Concurrent automation handlers (open, close, play, system, content...)
- Realtime answers backed by web search
- Weather, news, stocks, email and other enhanced features
- An optional healthcare journal`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			return runTUI(cmd.Context())
		}
		return runHeadless(cmd.Context(), headlessOptions{})
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: user and project config)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for the chat log, status files and journal")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")
	rootCmd.PersistentFlags().BoolVar(&noSpeech, "no-speech", false, "Disable speech synthesis")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads configuration and applies the global flags.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if noSpeech {
		cfg.Voice.Speaker = "none"
	}
	return cfg, nil
}
