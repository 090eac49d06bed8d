// Package command maps tagged commands to action descriptors.
package command

import (
	"strings"

	"github.com/ShayCichocki/vox/internal/vocab"
	"github.com/ShayCichocki/vox/pkg/models"
)

// Handler names understood by the automation dispatcher.
const (
	HandlerOpen          = "open"
	HandlerClose         = "close"
	HandlerPlay          = "play"
	HandlerSystem        = "system"
	HandlerContent       = "content"
	HandlerGoogleSearch  = "google_search"
	HandlerYoutubeSearch = "youtube_search"
	HandlerGenerateImage = "generate_image"
	HandlerScreenshot    = "screenshot"
	HandlerReminder      = "reminder"
	HandlerEnhanced      = "enhanced"
)

// verbHandlers maps verbs whose argument follows the verb.
var verbHandlers = map[string]string{
	"open":           HandlerOpen,
	"close":          HandlerClose,
	"play":           HandlerPlay,
	"system":         HandlerSystem,
	"content":        HandlerContent,
	"google search":  HandlerGoogleSearch,
	"google":         HandlerGoogleSearch,
	"search":         HandlerGoogleSearch,
	"youtube search": HandlerYoutubeSearch,
	"generate image": HandlerGenerateImage,
	"screenshot":     HandlerScreenshot,
	"reminder":       HandlerReminder,
}

// systemShortcuts are bare verbs that are really system sub-commands.
var systemShortcuts = map[string]bool{
	"pause":              true,
	"next":               true,
	"previous":           true,
	"volume up":          true,
	"increase volume":    true,
	"decrease volume":    true,
	"volume down":        true,
	"minimize all":       true,
	"shut down computer": true,
	"close window":       true,
	"close tab":          true,
}

// noOpPhrases are exact commands that are dropped without dispatch.
var noOpPhrases = map[models.TaggedCommand]bool{
	"open it":   true,
	"open file": true,
}

// Parser builds ActionDescriptors. Safe for concurrent use.
type Parser struct {
	vocab *vocab.Vocabulary
}

// NewParser creates a Parser over v. A nil v uses vocab.Default().
func NewParser(v *vocab.Vocabulary) *Parser {
	if v == nil {
		v = vocab.Default()
	}
	return &Parser{vocab: v}
}

// Parse maps one tagged command to a descriptor. It returns false for
// commands that must be dropped entirely ("open it", "open file").
// Control and health commands yield a no-op descriptor; commands with an
// unknown verb yield a descriptor naming a handler nobody registered, which
// the dispatcher logs and skips.
func (p *Parser) Parse(cmd models.TaggedCommand) (models.ActionDescriptor, bool) {
	cmd = models.TaggedCommand(strings.TrimSpace(string(cmd)))
	if noOpPhrases[cmd] {
		return models.ActionDescriptor{}, false
	}

	desc := models.ActionDescriptor{Command: cmd}

	verb, ok := p.vocab.Match(cmd)
	if !ok {
		if fields := strings.Fields(string(cmd)); len(fields) > 0 {
			desc.Handler = fields[0]
		}
		desc.Argument = string(cmd)
		return desc, true
	}

	if systemShortcuts[verb] {
		desc.Handler = HandlerSystem
		desc.Argument = string(cmd)
		return desc, true
	}

	if handler, ok := verbHandlers[verb]; ok {
		desc.Handler = handler
		desc.Argument = strings.TrimRight(cmd.Argument(verb), ".,!?;:")
		return desc, true
	}

	if p.vocab.Classify(cmd) == vocab.ClassEnhanced {
		desc.Handler = HandlerEnhanced
		desc.Argument = string(cmd)
		return desc, true
	}

	// general, realtime, exit and health verbs are handled by the orchestrator.
	return desc, true
}

// ParseAll maps every command of d in order, skipping dropped ones.
func (p *Parser) ParseAll(d models.Decision) []models.ActionDescriptor {
	out := make([]models.ActionDescriptor, 0, len(d))
	for _, cmd := range d {
		if desc, ok := p.Parse(cmd); ok {
			out = append(out, desc)
		}
	}
	return out
}
