// Package evaluate runs the LLM-as-judge assessment of enriched
// statements and parses the judge's scores.
package evaluate

import (
	"context"
	"fmt"
	"strings"

	"github.com/ShkrSltn/dbot-sub000/llm"
	"github.com/ShkrSltn/dbot-sub000/utils"
)

// DefaultJudgeTemperature keeps the judge's replies stable across
// attempts.
const DefaultJudgeTemperature = 0.3

// The rubric is fixed so scores stay comparable across deployments.
const rubricTemplate = `You are evaluating a personalized rewrite of a digital competency statement.

Original statement:
%s

Enriched statement:
%s

Rate the enriched statement on each criterion with an integer from 0 to 5.
Respond with exactly four lines in this format, followed by a one-to-two-sentence explanation:
Clarity: N
Relevance for context: N
Retention of original meaning: N
Difficulty: N`

// Evaluator invokes the chat model as a judge on (original, enriched)
// pairs.
type Evaluator struct {
	chat   llm.ChatModel
	logger utils.Logger
}

// NewEvaluator creates an Evaluator over the given chat model. The
// model should be configured with DefaultJudgeTemperature.
func NewEvaluator(chat llm.ChatModel, logger utils.Logger) *Evaluator {
	if logger == nil {
		logger = utils.NopLogger{}
	}
	return &Evaluator{chat: chat, logger: logger}
}

// Evaluate returns the judge's raw reply, trimmed. Remote failures are
// wrapped as evaluation errors.
func (e *Evaluator) Evaluate(ctx context.Context, original, enriched string) (string, error) {
	prompt := fmt.Sprintf(rubricTemplate, original, enriched)

	reply, err := e.chat.Generate(ctx, prompt)
	if err != nil {
		return "", llm.NewPipelineError(llm.ErrorTypeEvaluation, "evaluation call failed", err)
	}

	evaluation := strings.TrimSpace(reply)
	e.logger.Debug("Evaluation received", "length", len(evaluation))
	return evaluation, nil
}
