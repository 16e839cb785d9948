package providers

import (
	"fmt"
	"sync"
)

// ProviderRegistry manages the registration and retrieval of chat and
// embedding providers. It is safe for concurrent use.
type ProviderRegistry struct {
	providers map[string]ProviderConstructor
	embedders map[string]EmbeddingConstructor
	mutex     sync.RWMutex
}

// NewProviderRegistry creates a registry with all known providers
// registered, or only the named ones when providerNames is given.
func NewProviderRegistry(providerNames ...string) *ProviderRegistry {
	registry := &ProviderRegistry{
		providers: make(map[string]ProviderConstructor),
		embedders: make(map[string]EmbeddingConstructor),
	}

	knownProviders := getKnownProviders()
	knownEmbedders := getKnownEmbedders()

	if len(providerNames) == 0 {
		for name, constructor := range knownProviders {
			registry.providers[name] = constructor
		}
		for name, constructor := range knownEmbedders {
			registry.embedders[name] = constructor
		}
	} else {
		for _, name := range providerNames {
			if constructor, ok := knownProviders[name]; ok {
				registry.providers[name] = constructor
			}
			if constructor, ok := knownEmbedders[name]; ok {
				registry.embedders[name] = constructor
			}
		}
	}

	return registry
}

func getKnownProviders() map[string]ProviderConstructor {
	return map[string]ProviderConstructor{
		"openai": func(apiKey, model string, extraHeaders map[string]string) Provider {
			return NewOpenAIProvider(apiKey, model, extraHeaders)
		},
		"mock": func(apiKey, model string, extraHeaders map[string]string) Provider {
			return NewMockProvider("", model, extraHeaders)
		},
	}
}

func getKnownEmbedders() map[string]EmbeddingConstructor {
	return map[string]EmbeddingConstructor{
		"openai": func(apiKey, model string) EmbeddingProvider {
			return NewOpenAIEmbeddingProvider(apiKey, model)
		},
	}
}

// Register adds a chat provider constructor to the registry.
func (r *ProviderRegistry) Register(name string, constructor ProviderConstructor) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.providers[name] = constructor
}

// RegisterEmbedding adds an embedding provider constructor.
func (r *ProviderRegistry) RegisterEmbedding(name string, constructor EmbeddingConstructor) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.embedders[name] = constructor
}

// Get retrieves a chat provider instance by name.
func (r *ProviderRegistry) Get(name, apiKey, model string, extraHeaders map[string]string) (Provider, error) {
	r.mutex.RLock()
	constructor, exists := r.providers[name]
	r.mutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
	return constructor(apiKey, model, extraHeaders), nil
}

// GetEmbedding retrieves an embedding provider instance by name.
func (r *ProviderRegistry) GetEmbedding(name, apiKey, model string) (EmbeddingProvider, error) {
	r.mutex.RLock()
	constructor, exists := r.embedders[name]
	r.mutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unknown embedding provider: %s", name)
	}
	return constructor(apiKey, model), nil
}
