package llm

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/ShkrSltn/dbot-sub000/config"
	"github.com/ShkrSltn/dbot-sub000/providers"
	"github.com/ShkrSltn/dbot-sub000/utils"
)

// Per-client request pacing. Keeps a best-of-N regeneration run within
// the provider's rate limits.
const defaultRequestInterval = 500 * time.Millisecond

type chatKey struct {
	model       string
	temperature float64
	maxTokens   int
}

// ModelProvider lazily constructs and memoizes chat and embedding
// clients. The caches are read-mostly; a losing concurrent constructor
// call is discarded in favor of the cached instance.
type ModelProvider struct {
	cfg      *config.Config
	registry *providers.ProviderRegistry
	logger   utils.Logger

	mu    sync.RWMutex
	chat  map[chatKey]*Client
	embed map[string]*EmbeddingClient
}

// NewModelProvider creates a ModelProvider over the given configuration.
func NewModelProvider(cfg *config.Config, registry *providers.ProviderRegistry, logger utils.Logger) *ModelProvider {
	if registry == nil {
		registry = providers.NewProviderRegistry()
	}
	if logger == nil {
		logger = utils.NopLogger{}
	}
	return &ModelProvider{
		cfg:      cfg,
		registry: registry,
		logger:   logger,
		chat:     make(map[chatKey]*Client),
		embed:    make(map[string]*EmbeddingClient),
	}
}

// ChatModel returns a configured chat client, cached by
// (model, temperature, maxTokens). A maxTokens of 0 keeps the
// configured default. Fails with a ConfigError when the API key is
// absent.
func (mp *ModelProvider) ChatModel(model string, temperature float64, maxTokens int) (*Client, error) {
	if mp.cfg.APIKey == "" {
		return nil, NewPipelineError(ErrorTypeConfig, "missing API key; set OPENAI_API_KEY", nil)
	}
	if model == "" {
		return nil, NewPipelineError(ErrorTypeConfig, "model name must not be empty", nil)
	}
	if maxTokens == 0 {
		maxTokens = mp.cfg.MaxTokens
	}

	key := chatKey{model: model, temperature: temperature, maxTokens: maxTokens}

	mp.mu.RLock()
	client, ok := mp.chat[key]
	mp.mu.RUnlock()
	if ok {
		return client, nil
	}

	provider, err := mp.registry.Get(mp.cfg.Provider, mp.cfg.APIKey, model, nil)
	if err != nil {
		return nil, NewPipelineError(ErrorTypeConfig, fmt.Sprintf("invalid provider %q", mp.cfg.Provider), err)
	}
	provider.SetDefaultOptions(mp.cfg)
	provider.SetOption("temperature", temperature)
	// The provider owns the token budget key; newer OpenAI families
	// take max_completion_tokens instead of max_tokens.
	provider.SetMaxTokens(maxTokens)

	client = NewClient(
		provider,
		&http.Client{Timeout: mp.cfg.Timeout},
		rate.NewLimiter(rate.Every(defaultRequestInterval), 1),
		mp.logger,
	)

	mp.mu.Lock()
	if cached, ok := mp.chat[key]; ok {
		client = cached
	} else {
		mp.chat[key] = client
	}
	mp.mu.Unlock()

	mp.logger.Debug("Chat client ready", "model", model, "temperature", temperature)
	return client, nil
}

// EmbeddingModel returns a configured embedding client, cached by
// model id. Fails with a ConfigError when the API key is absent.
func (mp *ModelProvider) EmbeddingModel(model string) (*EmbeddingClient, error) {
	if mp.cfg.APIKey == "" {
		return nil, NewPipelineError(ErrorTypeConfig, "missing API key; set OPENAI_API_KEY", nil)
	}
	if model == "" {
		model = mp.cfg.EmbeddingModel
	}

	mp.mu.RLock()
	client, ok := mp.embed[model]
	mp.mu.RUnlock()
	if ok {
		return client, nil
	}

	provider, err := mp.registry.GetEmbedding(mp.cfg.Provider, mp.cfg.APIKey, model)
	if err != nil {
		return nil, NewPipelineError(ErrorTypeConfig, fmt.Sprintf("invalid embedding provider %q", mp.cfg.Provider), err)
	}

	client = NewEmbeddingClient(
		provider,
		&http.Client{Timeout: mp.cfg.Timeout},
		rate.NewLimiter(rate.Every(defaultRequestInterval), 1),
		mp.logger,
	)

	mp.mu.Lock()
	if cached, ok := mp.embed[model]; ok {
		client = cached
	} else {
		mp.embed[model] = client
	}
	mp.mu.Unlock()

	mp.logger.Debug("Embedding client ready", "model", model)
	return client, nil
}
