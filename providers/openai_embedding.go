package providers

import (
	"encoding/json"
	"fmt"
)

// OpenAIEmbeddingProvider implements the EmbeddingProvider interface
// for OpenAI's embeddings API.
type OpenAIEmbeddingProvider struct {
	apiKey string
	model  string
}

// NewOpenAIEmbeddingProvider creates a new OpenAI embeddings provider.
func NewOpenAIEmbeddingProvider(apiKey, model string) EmbeddingProvider {
	return &OpenAIEmbeddingProvider{
		apiKey: apiKey,
		model:  model,
	}
}

func (p *OpenAIEmbeddingProvider) Name() string {
	return "openai"
}

func (p *OpenAIEmbeddingProvider) Endpoint() string {
	return "https://api.openai.com/v1/embeddings"
}

func (p *OpenAIEmbeddingProvider) Headers() map[string]string {
	return map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + p.apiKey,
	}
}

// PrepareEmbeddingRequest builds the request body for a batch of
// inputs. All inputs in one request are embedded by the same model, so
// the returned vectors share a length.
func (p *OpenAIEmbeddingProvider) PrepareEmbeddingRequest(inputs []string) ([]byte, error) {
	request := map[string]any{
		"model": p.model,
		"input": inputs,
	}
	return json.Marshal(request)
}

// ParseEmbeddingResponse returns one vector per input, in input order.
func (p *OpenAIEmbeddingProvider) ParseEmbeddingResponse(body []byte) ([][]float64, error) {
	var response struct {
		Data []struct {
			Index     int       `json:"index"`
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode embedding response: %w", err)
	}
	if response.Error != nil {
		return nil, fmt.Errorf("API error: %s", response.Error.Message)
	}
	if len(response.Data) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}

	vectors := make([][]float64, len(response.Data))
	for _, d := range response.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}
