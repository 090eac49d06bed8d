package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/ShayCichocki/vox/internal/logging"
	"github.com/ShayCichocki/vox/internal/vocab"
	"github.com/ShayCichocki/vox/pkg/models"
)

// handle runs the branches for one captured utterance.
func (o *Orchestrator) handle(ctx context.Context, c *cycle) Outcome {
	utterance := c.rec.Utterance
	if utterance == "" {
		c.rec.Branch = string(BranchEmpty)
		o.respond(ctx, c, ApologyMessage)
		return OutcomeHandled
	}
	o.showUser(utterance)

	o.status.SetStatus(models.StatusThinking)
	decision := o.classifier.Classify(ctx, utterance, o.opts.transcript)
	c.rec.Decision = decision.Strings()
	o.log.Info("orchestrator", "decision", logging.Fields{
		"cycle":    c.rec.ID,
		"decision": strings.Join(c.rec.Decision, ", "),
	})
	o.emit(OrchestratorEvent{Type: EventDecision, CycleID: c.rec.ID, Decision: decision})

	v := o.opts.vocabulary
	executed := false
	if v.AnyIs(decision, vocab.ClassAutomation) || v.AnyIs(decision, vocab.ClassAuxiliary) {
		o.automation(ctx, c, decision)
		executed = true
	}

	if !executed {
		for _, cmd := range decision {
			switch v.Classify(cmd) {
			case vocab.ClassHealth:
				c.rec.Branch = string(BranchHealth)
				return o.delegateHealth(ctx, c, cmd)
			case vocab.ClassEnhanced:
				if o.opts.enhanced != nil {
					c.rec.Branch = string(BranchEnhanced)
					return o.delegate(ctx, c, o.opts.enhanced, utterance)
				}
			}
		}
	}

	if decision.Any("realtime") {
		c.rec.Branch = string(BranchRealtime)
		return o.realtime(ctx, c, decision)
	}

	for _, cmd := range decision {
		switch {
		case cmd.HasVerb("general"):
			c.rec.Branch = string(BranchChat)
			o.status.SetStatus(models.StatusThinking)
			return o.chat(ctx, c, QueryModifier(cmd.Argument("general")))
		case cmd.HasVerb("exit"), cmd.HasVerb("terminate"):
			c.rec.Branch = string(BranchExit)
			return o.farewell(ctx, c)
		}
	}

	if !executed {
		c.rec.Branch = string(BranchNone)
	}
	return OutcomeHandled
}

// automation dispatches the whole Decision. Entries the dispatcher cannot
// run become no-op descriptors, so results line up with the commands.
func (o *Orchestrator) automation(ctx context.Context, c *cycle, decision models.Decision) {
	c.rec.Branch = string(BranchAutomation)
	o.status.SetStatus(models.StatusExecuting)

	descs := o.parser.ParseAll(decision)
	results := o.dispatcher.Dispatch(ctx, descs)

	failed := 0
	for i := range results {
		r := results[i]
		o.emit(OrchestratorEvent{
			Type:     EventActionCompleted,
			CycleID:  c.rec.ID,
			Result:   &r,
			Message:  string(descs[i].Command),
			Duration: r.Duration,
		})
		if !r.Success {
			failed++
			c.fail(fmt.Errorf("%s: %s", r.Handler, r.Err))
			continue
		}
		if r.Answer != "" {
			o.respond(ctx, c, r.Answer)
		}
	}
	if failed > 0 {
		o.log.Warn("orchestrator", "some actions failed", logging.Fields{
			"cycle":  c.rec.ID,
			"failed": failed,
			"total":  len(results),
		})
	}
}

func (o *Orchestrator) delegateHealth(ctx context.Context, c *cycle, cmd models.TaggedCommand) Outcome {
	answer, err := o.opts.health.Handle(ctx, string(cmd), c.rec.Utterance)
	if err != nil {
		o.log.Error("orchestrator", "health request failed", logging.Fields{"error": err.Error()})
		c.fail(err)
		answer = "I had trouble processing that healthcare request. Please try again."
	}
	o.status.SetStatus(models.StatusAnswering)
	o.respond(ctx, c, answer)
	return OutcomeHandled
}

func (o *Orchestrator) delegate(ctx context.Context, c *cycle, a Answerer, query string) Outcome {
	answer, err := a.Answer(ctx, query)
	if err != nil {
		o.log.Error("orchestrator", "delegated request failed", logging.Fields{
			"branch": c.rec.Branch,
			"error":  err.Error(),
		})
		c.fail(err)
		answer = TroubleMessage
	}
	o.status.SetStatus(models.StatusAnswering)
	o.respond(ctx, c, answer)
	return OutcomeHandled
}

// realtime answers every general and realtime command at once through the
// search collaborator.
func (o *Orchestrator) realtime(ctx context.Context, c *cycle, decision models.Decision) Outcome {
	o.status.SetStatus(models.StatusSearching)

	var parts []string
	for _, cmd := range decision {
		for _, verb := range []string{"general", "realtime"} {
			if cmd.HasVerb(verb) {
				if arg := cmd.Argument(verb); arg != "" {
					parts = append(parts, arg)
				}
				break
			}
		}
	}
	query := QueryModifier(strings.Join(parts, " and "))

	searcher := o.opts.search
	if searcher == nil {
		searcher = o.chatbot
	}
	answer, err := searcher.Answer(ctx, query)
	if err != nil {
		o.log.Error("orchestrator", "realtime search failed", logging.Fields{"error": err.Error()})
		c.fail(err)
		answer = TroubleMessage
	}
	o.status.SetStatus(models.StatusAnswering)
	o.respond(ctx, c, answer)
	return OutcomeHandled
}

func (o *Orchestrator) chat(ctx context.Context, c *cycle, query string) Outcome {
	answer, err := o.chatbot.Answer(ctx, query)
	if err != nil {
		o.log.Error("orchestrator", "chat failed", logging.Fields{"error": err.Error()})
		c.fail(err)
		answer = TroubleMessage
	}
	o.status.SetStatus(models.StatusAnswering)
	o.respond(ctx, c, answer)
	return OutcomeHandled
}

func (o *Orchestrator) farewell(ctx context.Context, c *cycle) Outcome {
	answer, err := o.chatbot.Answer(ctx, QueryModifier(FarewellQuery))
	if err != nil || strings.TrimSpace(answer) == "" {
		answer = FarewellMessage
	}
	o.status.SetStatus(models.StatusExecuting)
	o.respond(ctx, c, answer)
	return OutcomeExit
}
