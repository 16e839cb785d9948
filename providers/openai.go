package providers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ShkrSltn/dbot-sub000/config"
	"github.com/ShkrSltn/dbot-sub000/utils"
)

// OpenAIProvider implements the Provider interface for OpenAI's
// chat-completions API.
type OpenAIProvider struct {
	apiKey       string
	model        string
	extraHeaders map[string]string
	options      map[string]any
	logger       utils.Logger
}

// NewOpenAIProvider creates a new OpenAI chat provider instance.
func NewOpenAIProvider(apiKey, model string, extraHeaders map[string]string) Provider {
	if extraHeaders == nil {
		extraHeaders = make(map[string]string)
	}
	return &OpenAIProvider{
		apiKey:       apiKey,
		model:        model,
		extraHeaders: extraHeaders,
		options:      make(map[string]any),
		logger:       utils.NewLogger(utils.LogLevelWarn),
	}
}

func (p *OpenAIProvider) SetLogger(logger utils.Logger) {
	p.logger = logger
}

// SetOption sets a request option such as temperature or max_tokens.
func (p *OpenAIProvider) SetOption(key string, value any) {
	p.options[key] = value
	p.logger.Debug("Option set", "key", key, "value", value)
}

// SetDefaultOptions applies the configured sampling defaults.
func (p *OpenAIProvider) SetDefaultOptions(cfg *config.Config) {
	p.SetOption("temperature", cfg.Temperature)
	p.SetMaxTokens(cfg.MaxTokens)
}

// SetMaxTokens stores the completion budget under the key the model
// family accepts. A request must carry exactly one of max_tokens and
// max_completion_tokens; the API rejects bodies with both.
func (p *OpenAIProvider) SetMaxTokens(maxTokens int) {
	p.SetOption(p.maxTokensKey(), maxTokens)
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

func (p *OpenAIProvider) Endpoint() string {
	return "https://api.openai.com/v1/chat/completions"
}

func (p *OpenAIProvider) Headers() map[string]string {
	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + p.apiKey,
	}
	for key, value := range p.extraHeaders {
		headers[key] = value
	}
	return headers
}

// Newer model families reject max_tokens in favor of
// max_completion_tokens.
func (p *OpenAIProvider) maxTokensKey() string {
	if strings.HasPrefix(p.model, "o1") || strings.HasPrefix(p.model, "gpt-4o") {
		return "max_completion_tokens"
	}
	return "max_tokens"
}

// PrepareRequest builds the chat-completions request body around a
// single user message carrying the rendered prompt.
func (p *OpenAIProvider) PrepareRequest(prompt string, options map[string]any) ([]byte, error) {
	request := map[string]any{
		"model": p.model,
		"messages": []any{
			map[string]any{
				"role":    "user",
				"content": prompt,
			},
		},
	}

	for k, v := range p.options {
		request[k] = v
	}
	for k, v := range options {
		request[k] = v
	}

	reqJSON, err := json.Marshal(request)
	if err != nil {
		p.logger.Error("Failed to marshal request", "error", err)
		return nil, err
	}
	return reqJSON, nil
}

// ParseResponse extracts the first choice's message content.
func (p *OpenAIProvider) ParseResponse(body []byte) (string, error) {
	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if response.Error != nil {
		return "", fmt.Errorf("API error: %s", response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("empty response from API")
	}
	return response.Choices[0].Message.Content, nil
}
