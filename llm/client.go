// Package llm provides the HTTP-backed chat and embedding clients the
// enrichment pipeline talks to, plus the provider that constructs and
// memoizes them.
package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/ShkrSltn/dbot-sub000/providers"
	"github.com/ShkrSltn/dbot-sub000/utils"
)

// ChatModel is the narrow capability the pipeline needs from a chat
// backend.
type ChatModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// EmbeddingModel is the narrow capability the pipeline needs from an
// embeddings backend. Vectors for inputs of one call share a length.
type EmbeddingModel interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// Client is an HTTP-backed ChatModel over a providers.Provider.
type Client struct {
	provider providers.Provider
	client   *http.Client
	limiter  *rate.Limiter
	logger   utils.Logger
	options  map[string]any
}

// NewClient wraps a chat provider. The limiter may be nil, in which
// case calls are not rate limited.
func NewClient(provider providers.Provider, httpClient *http.Client, limiter *rate.Limiter, logger utils.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = utils.NopLogger{}
	}
	return &Client{
		provider: provider,
		client:   httpClient,
		limiter:  limiter,
		logger:   logger,
		options:  make(map[string]any),
	}
}

// SetOption sets a per-client request option such as temperature.
func (c *Client) SetOption(key string, value any) {
	c.options[key] = value
}

// Generate sends the rendered prompt to the chat endpoint and returns
// the assistant text. The request carries the context's deadline.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", NewPipelineError(ErrorTypeRequest, "rate limiter wait interrupted", err)
		}
	}

	reqBody, err := c.provider.PrepareRequest(prompt, c.options)
	if err != nil {
		return "", NewPipelineError(ErrorTypeRequest, "failed to prepare request", err)
	}

	body, err := c.post(ctx, c.provider.Endpoint(), c.provider.Headers(), reqBody)
	if err != nil {
		return "", err
	}

	result, err := c.provider.ParseResponse(body)
	if err != nil {
		return "", NewPipelineError(ErrorTypeResponse, "failed to parse response", err)
	}

	c.logger.Debug("Text generated", "provider", c.provider.Name(), "length", len(result))
	return result, nil
}

func (c *Client) post(ctx context.Context, endpoint string, headers map[string]string, reqBody []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, NewPipelineError(ErrorTypeRequest, "failed to create request", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, NewPipelineError(ErrorTypeRequest, "failed to send request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewPipelineError(ErrorTypeResponse, "failed to read response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("API error", "status", resp.StatusCode, "body", string(body))
		return nil, NewPipelineError(ErrorTypeAPI, fmt.Sprintf("API error: status code %d", resp.StatusCode), nil)
	}
	return body, nil
}

// EmbeddingClient is an HTTP-backed EmbeddingModel over a
// providers.EmbeddingProvider.
type EmbeddingClient struct {
	provider providers.EmbeddingProvider
	client   *http.Client
	limiter  *rate.Limiter
	logger   utils.Logger
}

// NewEmbeddingClient wraps an embedding provider.
func NewEmbeddingClient(provider providers.EmbeddingProvider, httpClient *http.Client, limiter *rate.Limiter, logger utils.Logger) *EmbeddingClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = utils.NopLogger{}
	}
	return &EmbeddingClient{
		provider: provider,
		client:   httpClient,
		limiter:  limiter,
		logger:   logger,
	}
}

// Embed returns one vector per input text, in input order.
func (c *EmbeddingClient) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, NewPipelineError(ErrorTypeRequest, "rate limiter wait interrupted", err)
		}
	}

	reqBody, err := c.provider.PrepareEmbeddingRequest(texts)
	if err != nil {
		return nil, NewPipelineError(ErrorTypeRequest, "failed to prepare embedding request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.provider.Endpoint(), bytes.NewReader(reqBody))
	if err != nil {
		return nil, NewPipelineError(ErrorTypeRequest, "failed to create embedding request", err)
	}
	for k, v := range c.provider.Headers() {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, NewPipelineError(ErrorTypeRequest, "failed to send embedding request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewPipelineError(ErrorTypeResponse, "failed to read embedding response", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Embedding API error", "status", resp.StatusCode, "body", string(body))
		return nil, NewPipelineError(ErrorTypeAPI, fmt.Sprintf("API error: status code %d", resp.StatusCode), nil)
	}

	vectors, err := c.provider.ParseEmbeddingResponse(body)
	if err != nil {
		return nil, NewPipelineError(ErrorTypeResponse, "failed to parse embedding response", err)
	}
	if len(vectors) != len(texts) {
		return nil, NewPipelineError(ErrorTypeResponse,
			fmt.Sprintf("expected %d embeddings, got %d", len(texts), len(vectors)), nil)
	}
	return vectors, nil
}
