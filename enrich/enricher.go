// Package enrich renders the enrichment prompt and invokes the chat
// model to produce a personalized rewrite of a competency statement.
package enrich

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ShkrSltn/dbot-sub000/llm"
	"github.com/ShkrSltn/dbot-sub000/utils"
)

// MinTargetLength is the floor for percentage-based character budgets.
const MinTargetLength = 150

// TargetLength computes the character budget for the enriched
// statement. A statementLength of 100 or less is a percentage added on
// top of the original's length, floored at MinTargetLength; larger
// values are taken as an absolute budget.
func TargetLength(original string, statementLength int) int {
	if statementLength <= 100 {
		scaled := float64(utf8.RuneCountInString(original)) * (1 + float64(statementLength)/100)
		target := int(math.Round(scaled))
		if target < MinTargetLength {
			target = MinTargetLength
		}
		return target
	}
	return statementLength
}

// RenderTemplate substitutes the named placeholders into the template.
// Substitution is literal: placeholders absent from the template are
// ignored and braces that are not placeholders pass through untouched.
func RenderTemplate(template, contextString, original string, targetLength int, extra map[string]string) string {
	pairs := []string{
		"{context}", contextString,
		"{original_statement}", original,
		"{length}", fmt.Sprintf("%d", targetLength),
	}
	for key, value := range extra {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Request carries everything one enrichment call needs.
type Request struct {
	Context         string
	Original        string
	StatementLength int
	Template        string
	Extra           map[string]string
}

// Enricher invokes the chat model with a rendered enrichment prompt.
type Enricher struct {
	chat   llm.ChatModel
	logger utils.Logger
}

// NewEnricher creates an Enricher over the given chat model.
func NewEnricher(chat llm.ChatModel, logger utils.Logger) *Enricher {
	if logger == nil {
		logger = utils.NopLogger{}
	}
	return &Enricher{chat: chat, logger: logger}
}

// Enrich renders the prompt and returns the model's reply with leading
// and trailing whitespace stripped. Remote failures are wrapped as
// enrichment errors; there is no retry at this layer.
func (e *Enricher) Enrich(ctx context.Context, req Request) (string, error) {
	target := TargetLength(req.Original, req.StatementLength)
	prompt := RenderTemplate(req.Template, req.Context, req.Original, target, req.Extra)

	e.logger.Debug("Enriching statement",
		"original_length", utf8.RuneCountInString(req.Original),
		"target_length", target)

	reply, err := e.chat.Generate(ctx, prompt)
	if err != nil {
		return "", llm.NewPipelineError(llm.ErrorTypeEnrichment, "enrichment call failed", err)
	}
	return strings.TrimSpace(reply), nil
}
