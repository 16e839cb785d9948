// Package providers implements the LLM provider interfaces used by the
// enrichment pipeline: chat completions and text embeddings. OpenAI is
// the default backend; a mock provider backs the test suite.
package providers

import (
	"github.com/ShkrSltn/dbot-sub000/config"
)

// Provider is the chat-completions backend. Implementations prepare a
// request body from a rendered prompt and parse the assistant text out
// of the raw response.
type Provider interface {
	Name() string
	Endpoint() string
	Headers() map[string]string
	PrepareRequest(prompt string, options map[string]any) ([]byte, error)
	ParseResponse(body []byte) (string, error)
	SetDefaultOptions(cfg *config.Config)
	SetOption(key string, value any)
	SetMaxTokens(maxTokens int)
}

// EmbeddingProvider is the embeddings backend. The vector length is
// fixed by the embedding model; callers must not mix models within one
// similarity computation.
type EmbeddingProvider interface {
	Name() string
	Endpoint() string
	Headers() map[string]string
	PrepareEmbeddingRequest(inputs []string) ([]byte, error)
	ParseEmbeddingResponse(body []byte) ([][]float64, error)
}

// ProviderConstructor creates a chat provider instance.
type ProviderConstructor func(apiKey, model string, extraHeaders map[string]string) Provider

// EmbeddingConstructor creates an embedding provider instance.
type EmbeddingConstructor func(apiKey, model string) EmbeddingProvider
