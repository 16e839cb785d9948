package config

import (
	"github.com/go-playground/validator/v10"
)

// Default generation policy values.
const (
	DefaultModel       = "gpt-4o"
	DefaultTemperature = 0.7
	DefaultMaxAttempts = 5
	MinAttempts        = 1
	MaxAttempts        = 10
)

// Settings is the configuration record supplied by the host. It mirrors
// what the host keeps in its settings store: whether evaluation gating
// is on, how many attempts it allows, and which prompt template is
// selected.
type Settings struct {
	EvaluationEnabled     bool `json:"evaluation_enabled"`
	EvaluationMaxAttempts int  `json:"evaluation_max_attempts"`
	SelectedPromptID      int  `json:"selected_prompt_id"`
}

// GenerationPolicy controls a single Regenerate invocation.
// StatementLength of 100 or less is a percentage of the original
// statement's length; larger values are an absolute character budget.
type GenerationPolicy struct {
	EvaluationEnabled bool    `json:"evaluation_enabled"`
	MaxAttempts       int     `json:"max_attempts" validate:"min=1,max=10"`
	ModelName         string  `json:"model_name" validate:"required"`
	Temperature       float64 `json:"temperature" validate:"min=0,max=2"`
	StatementLength   int     `json:"statement_length" validate:"min=0"`
}

var validate = validator.New()

// Validate checks the policy against its struct tags.
func (p GenerationPolicy) Validate() error {
	return validate.Struct(p)
}

// DefaultPolicy returns the policy used when the host supplies nothing.
func DefaultPolicy() GenerationPolicy {
	return GenerationPolicy{
		EvaluationEnabled: true,
		MaxAttempts:       DefaultMaxAttempts,
		ModelName:         DefaultModel,
		Temperature:       DefaultTemperature,
	}
}

// ResolvePolicy builds a GenerationPolicy from host settings. Attempt
// counts are clamped to [1, 10]; with evaluation disabled a single
// attempt is performed regardless of the configured maximum.
func ResolvePolicy(settings Settings) GenerationPolicy {
	policy := DefaultPolicy()
	policy.EvaluationEnabled = settings.EvaluationEnabled

	attempts := settings.EvaluationMaxAttempts
	if attempts == 0 {
		attempts = DefaultMaxAttempts
	}
	if attempts < MinAttempts {
		attempts = MinAttempts
	}
	if attempts > MaxAttempts {
		attempts = MaxAttempts
	}
	policy.MaxAttempts = attempts

	if !policy.EvaluationEnabled {
		policy.MaxAttempts = 1
	}
	return policy
}
