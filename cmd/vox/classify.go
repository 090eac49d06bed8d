package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/vox/internal/classify"
	"github.com/ShayCichocki/vox/internal/logging"
)

var classifyJSON bool

var classifyCmd = &cobra.Command{
	Use:   "classify <utterance...>",
	Short: "Print the tagged commands for an utterance",
	Long: `Classify one utterance and print the resulting decision, one tagged
command per line. Nothing is executed.

Without Anthropic credentials the keyword fallback is used.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log := logging.Nop()
		_, model, _ := newCompleters(cfg, log)
		classifier := classify.New(model, classify.Options{
			Vocabulary:  loadVocabulary(cfg.DataDir, log),
			MaxRetries:  cfg.Classifier.MaxRetries,
			Temperature: cfg.Classifier.Temperature,
			Logger:      log,
		})

		utterance := strings.Join(args, " ")
		decision := classifier.Classify(cmd.Context(), utterance, classify.NewTranscript(cfg.Classifier.TranscriptLimit))

		out := cmd.OutOrStdout()
		if classifyJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(decision.Strings())
		}
		for _, c := range decision.Strings() {
			fmt.Fprintln(out, c)
		}
		return nil
	},
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "Print the decision as a JSON array")
}
