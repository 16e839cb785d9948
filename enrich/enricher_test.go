package enrich

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShkrSltn/dbot-sub000/llm"
	"github.com/ShkrSltn/dbot-sub000/utils"
)

type fakeChat struct {
	reply      string
	err        error
	lastPrompt string
}

func (f *fakeChat) Generate(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestTargetLength(t *testing.T) {
	testCases := []struct {
		name            string
		original        string
		statementLength int
		expected        int
	}{
		{"zero percent keeps floor", "abcdef", 0, 150},
		{"fifty percent below floor", "abcdef", 50, 150},
		{"hundred percent doubles", "abcdef", 100, 150},
		{"boundary at hundred-one is absolute", "abcdef", 101, 101},
		{"absolute budget", "abcdef", 200, 200},
		{"long original with percentage", strings.Repeat("a", 200), 50, 300},
		{"hundred percent above floor", strings.Repeat("a", 120), 100, 240},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TargetLength(tc.original, tc.statementLength))
		})
	}
}

func TestRenderTemplate(t *testing.T) {
	t.Run("substitutes all placeholders", func(t *testing.T) {
		rendered := RenderTemplate(
			"Profile: {context}\nStatement: {original_statement}\nLength: {length}",
			"Job Role: teacher", "I can use email.", 150, nil)

		assert.Equal(t, "Profile: Job Role: teacher\nStatement: I can use email.\nLength: 150", rendered)
	})

	t.Run("missing placeholders are not an error", func(t *testing.T) {
		rendered := RenderTemplate("no placeholders here", "ctx", "orig", 150, nil)
		assert.Equal(t, "no placeholders here", rendered)
	})

	t.Run("stray braces pass through", func(t *testing.T) {
		rendered := RenderTemplate("{context} and {unknown} stays", "ctx", "orig", 150, nil)
		assert.Equal(t, "ctx and {unknown} stays", rendered)
	})

	t.Run("substitution is literal, not recursive", func(t *testing.T) {
		rendered := RenderTemplate("{original_statement}", "", "see {context}", 150, nil)
		assert.Equal(t, "see {context}", rendered)
	})

	t.Run("extra params", func(t *testing.T) {
		rendered := RenderTemplate("{tone} rewrite of {original_statement}", "", "orig", 150,
			map[string]string{"tone": "formal"})
		assert.Equal(t, "formal rewrite of orig", rendered)
	})
}

func TestEnrich(t *testing.T) {
	t.Run("returns trimmed reply", func(t *testing.T) {
		chat := &fakeChat{reply: "  an enriched statement \n"}
		enricher := NewEnricher(chat, utils.NopLogger{})

		result, err := enricher.Enrich(context.Background(), Request{
			Context:         "Job Role: developer",
			Original:        "I can write scripts.",
			StatementLength: 0,
			Template:        "{context} | {original_statement} | {length}",
		})
		require.NoError(t, err)
		assert.Equal(t, "an enriched statement", result)
		assert.Equal(t, "Job Role: developer | I can write scripts. | 150", chat.lastPrompt)
	})

	t.Run("wraps model errors as enrichment errors", func(t *testing.T) {
		chat := &fakeChat{err: errors.New("connection refused")}
		enricher := NewEnricher(chat, utils.NopLogger{})

		_, err := enricher.Enrich(context.Background(), Request{
			Original: "I can write scripts.",
			Template: "{original_statement}",
		})
		require.Error(t, err)
		assert.True(t, llm.IsErrorType(err, llm.ErrorTypeEnrichment))

		var pe *llm.PipelineError
		require.ErrorAs(t, err, &pe)
		assert.ErrorContains(t, pe.Err, "connection refused")
	})
}
