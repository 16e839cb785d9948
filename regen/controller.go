// Package regen orchestrates quality-gated regeneration: it drives the
// enricher, metrics calculator and evaluator for up to N attempts and
// returns the best candidate with its per-attempt history.
package regen

import (
	"context"

	"github.com/ShkrSltn/dbot-sub000/config"
	"github.com/ShkrSltn/dbot-sub000/enrich"
	"github.com/ShkrSltn/dbot-sub000/evaluate"
	"github.com/ShkrSltn/dbot-sub000/llm"
	"github.com/ShkrSltn/dbot-sub000/metrics"
	"github.com/ShkrSltn/dbot-sub000/profile"
	"github.com/ShkrSltn/dbot-sub000/utils"
)

// Evaluation placeholders surfaced to the host when no judge reply is
// available.
const (
	EvaluationDisabledText = "Evaluation disabled"
	EvaluationFailedText   = "Evaluation failed"
)

// Request carries the inputs of one regeneration run.
type Request struct {
	Context     string
	Original    string
	Proficiency profile.Proficiency
	Policy      config.GenerationPolicy
	Template    string
	Extra       map[string]string
}

// Attempt is one history entry. Attempt indexes are 1-based and
// chronological.
type Attempt struct {
	Attempt    int              `json:"attempt"`
	Enriched   string           `json:"enriched"`
	Metrics    *metrics.Metrics `json:"metrics,omitempty"`
	Evaluation string           `json:"evaluation"`
	Scores     evaluate.Scores  `json:"scores"`
	ScoreSum   int              `json:"score_sum"`
}

// Outcome is the result of a regeneration run. History is ordered
// oldest-first and has one entry per attempt performed.
type Outcome struct {
	Original   string    `json:"original"`
	Enriched   string    `json:"enriched"`
	Evaluation string    `json:"evaluation"`
	Attempts   int       `json:"attempts"`
	History    []Attempt `json:"history"`
}

// Controller runs the regeneration loop. It holds no state across
// invocations; everything lives in the Regenerate stack frame.
type Controller struct {
	enricher  *enrich.Enricher
	calc      *metrics.Calculator
	evaluator *evaluate.Evaluator
	logger    utils.Logger
}

// NewController creates a Controller. The evaluator may be nil when the
// host never enables evaluation.
func NewController(enricher *enrich.Enricher, calc *metrics.Calculator, evaluator *evaluate.Evaluator, logger utils.Logger) *Controller {
	if logger == nil {
		logger = utils.NopLogger{}
	}
	return &Controller{
		enricher:  enricher,
		calc:      calc,
		evaluator: evaluator,
		logger:    logger,
	}
}

// Regenerate produces an enriched statement for the request. Attempts
// run strictly in sequence; the first attempt whose scores pass the
// threshold gate is returned immediately, otherwise the best candidate
// by clarity+relevance+retention wins (earliest on ties). Soft
// per-attempt failures are recorded and do not terminate the loop; when
// no attempt produced any text the original statement is returned with
// a failure note instead of an error.
func (c *Controller) Regenerate(ctx context.Context, req Request) (*Outcome, error) {
	maxAttempts := req.Policy.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if !req.Policy.EvaluationEnabled {
		maxAttempts = 1
	}

	var history []Attempt
	var best Attempt
	haveBest := false
	bestSum := -1

	for i := 1; i <= maxAttempts; i++ {
		// Cancellation interrupts between attempts; a partial
		// attempt leaves no history entry.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry := c.runAttempt(ctx, req, i)
		history = append(history, entry)

		if entry.Enriched != "" && entry.ScoreSum > bestSum {
			bestSum = entry.ScoreSum
			best = entry
			haveBest = true
		}

		if !req.Policy.EvaluationEnabled {
			break
		}

		if entry.Enriched != "" && entry.Scores.MeetsThreshold(req.Proficiency) {
			c.logger.Debug("Threshold met", "attempt", i, "score_sum", entry.ScoreSum)
			return &Outcome{
				Original:   req.Original,
				Enriched:   entry.Enriched,
				Evaluation: entry.Evaluation,
				Attempts:   i,
				History:    history,
			}, nil
		}
	}

	if !haveBest {
		c.logger.Warn("All attempts failed to produce text", "attempts", len(history))
		return &Outcome{
			Original:   req.Original,
			Enriched:   req.Original,
			Evaluation: EvaluationFailedText,
			Attempts:   len(history),
			History:    history,
		}, nil
	}

	return &Outcome{
		Original:   req.Original,
		Enriched:   best.Enriched,
		Evaluation: best.Evaluation,
		Attempts:   len(history),
		History:    history,
	}, nil
}

// runAttempt performs one enrich/metrics/evaluate pass. Failures are
// folded into the returned entry rather than propagated.
func (c *Controller) runAttempt(ctx context.Context, req Request, attempt int) Attempt {
	entry := Attempt{Attempt: attempt}

	enriched, err := c.enricher.Enrich(ctx, enrich.Request{
		Context:         req.Context,
		Original:        req.Original,
		StatementLength: req.Policy.StatementLength,
		Template:        req.Template,
		Extra:           req.Extra,
	})
	if err != nil {
		c.logger.Warn("Enrichment failed", "attempt", attempt, "error", err)
		return entry
	}
	entry.Enriched = enriched

	m, err := c.calc.Calculate(ctx, req.Original, enriched)
	if err != nil {
		if llm.IsInvalidInput(err) {
			c.logger.Warn("Metrics rejected input", "attempt", attempt, "error", err)
		} else {
			c.logger.Warn("Metrics computation failed", "attempt", attempt, "error", err)
		}
		entry.Enriched = ""
		return entry
	}
	entry.Metrics = m

	if !req.Policy.EvaluationEnabled {
		entry.Evaluation = EvaluationDisabledText
		return entry
	}

	evaluation, err := c.evaluator.Evaluate(ctx, req.Original, enriched)
	if err != nil {
		// The candidate stays in play on judge failure; zero scores
		// simply fail the gate.
		c.logger.Warn("Evaluation failed", "attempt", attempt, "error", err)
		return entry
	}
	entry.Evaluation = evaluation
	entry.Scores = evaluate.ExtractScores(evaluation)
	entry.ScoreSum = entry.Scores.Sum()
	return entry
}
