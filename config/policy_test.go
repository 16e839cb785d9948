package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy()

	assert.True(t, policy.EvaluationEnabled)
	assert.Equal(t, 5, policy.MaxAttempts)
	assert.Equal(t, "gpt-4o", policy.ModelName)
	assert.InDelta(t, 0.7, policy.Temperature, 1e-9)
	require.NoError(t, policy.Validate())
}

func TestResolvePolicy(t *testing.T) {
	t.Run("unset attempts use default", func(t *testing.T) {
		policy := ResolvePolicy(Settings{EvaluationEnabled: true})
		assert.Equal(t, DefaultMaxAttempts, policy.MaxAttempts)
	})

	t.Run("attempts clamped to upper bound", func(t *testing.T) {
		policy := ResolvePolicy(Settings{EvaluationEnabled: true, EvaluationMaxAttempts: 50})
		assert.Equal(t, MaxAttempts, policy.MaxAttempts)
	})

	t.Run("attempts clamped to lower bound", func(t *testing.T) {
		policy := ResolvePolicy(Settings{EvaluationEnabled: true, EvaluationMaxAttempts: -3})
		assert.Equal(t, MinAttempts, policy.MaxAttempts)
	})

	t.Run("evaluation disabled forces single attempt", func(t *testing.T) {
		policy := ResolvePolicy(Settings{EvaluationEnabled: false, EvaluationMaxAttempts: 7})
		assert.False(t, policy.EvaluationEnabled)
		assert.Equal(t, 1, policy.MaxAttempts)
	})
}

func TestPolicyValidate(t *testing.T) {
	policy := DefaultPolicy()
	policy.MaxAttempts = 11
	assert.Error(t, policy.Validate())

	policy = DefaultPolicy()
	policy.ModelName = ""
	assert.Error(t, policy.Validate())

	policy = DefaultPolicy()
	policy.StatementLength = 120
	assert.NoError(t, policy.Validate())
}

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)

	ApplyOptions(cfg, SetModel("gpt-4o-mini"), SetAPIKey("sk-test"), SetMaxTokens(0))
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, 1, cfg.MaxTokens)
}
