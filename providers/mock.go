package providers

import (
	"encoding/json"
	"errors"

	"github.com/ShkrSltn/dbot-sub000/config"
)

// MockProvider implements the Provider interface for testing. It plays
// back a queue of preset responses.
type MockProvider struct {
	endpoint      string
	model         string
	extraHeaders  map[string]string
	options       map[string]any
	responseText  string
	shouldError   bool
	errorMsg      string
	responses     []string
	currentIndex  int
	loopResponses bool
}

// NewMockProvider creates a mock provider for testing.
func NewMockProvider(endpoint, model string, extraHeaders map[string]string) *MockProvider {
	if extraHeaders == nil {
		extraHeaders = make(map[string]string)
	}
	return &MockProvider{
		endpoint:     endpoint,
		model:        model,
		extraHeaders: extraHeaders,
		options:      make(map[string]any),
		responseText: "This is a mock response",
	}
}

// SetMockResponse configures the fallback response text.
func (p *MockProvider) SetMockResponse(response string) {
	p.responseText = response
}

// SetMockError configures the mock to fail.
func (p *MockProvider) SetMockError(shouldError bool, errorMsg string) {
	p.shouldError = shouldError
	p.errorMsg = errorMsg
}

// SetResponses configures a list of responses returned in sequence.
func (p *MockProvider) SetResponses(responses []string, loop bool) {
	p.responses = responses
	p.currentIndex = 0
	p.loopResponses = loop
}

func (p *MockProvider) Name() string                { return "mock" }
func (p *MockProvider) Endpoint() string            { return p.endpoint }
func (p *MockProvider) SetOption(key string, v any) { p.options[key] = v }

func (p *MockProvider) Headers() map[string]string {
	headers := map[string]string{
		"Content-Type": "application/json",
	}
	for k, v := range p.extraHeaders {
		headers[k] = v
	}
	return headers
}

func (p *MockProvider) SetDefaultOptions(cfg *config.Config) {
	p.SetOption("temperature", cfg.Temperature)
	p.SetMaxTokens(cfg.MaxTokens)
}

func (p *MockProvider) SetMaxTokens(maxTokens int) {
	p.SetOption("max_tokens", maxTokens)
}

func (p *MockProvider) PrepareRequest(prompt string, options map[string]any) ([]byte, error) {
	if p.shouldError {
		return nil, errors.New(p.errorMsg)
	}
	requestBody := map[string]any{
		"model":  p.model,
		"prompt": prompt,
	}
	for k, v := range options {
		requestBody[k] = v
	}
	return json.Marshal(requestBody)
}

func (p *MockProvider) ParseResponse(body []byte) (string, error) {
	if p.shouldError {
		return "", errors.New(p.errorMsg)
	}
	return p.getNextResponse()
}

func (p *MockProvider) getNextResponse() (string, error) {
	if len(p.responses) == 0 {
		return p.responseText, nil
	}
	if p.currentIndex >= len(p.responses) {
		if p.loopResponses {
			p.currentIndex = 0
		} else {
			return "", errors.New("mock responses exhausted")
		}
	}
	response := p.responses[p.currentIndex]
	p.currentIndex++
	return response, nil
}
