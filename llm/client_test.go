package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShkrSltn/dbot-sub000/providers"
	"github.com/ShkrSltn/dbot-sub000/utils"
)

func TestClientGenerate(t *testing.T) {
	t.Run("returns parsed provider response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		provider := providers.NewMockProvider(server.URL, "test-model", nil)
		provider.SetResponses([]string{"generated text"}, false)

		client := NewClient(provider, server.Client(), nil, utils.NopLogger{})
		result, err := client.Generate(context.Background(), "prompt")
		require.NoError(t, err)
		assert.Equal(t, "generated text", result)
	})

	t.Run("per-client options reach the request body", func(t *testing.T) {
		var request map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		provider := providers.NewMockProvider(server.URL, "test-model", nil)
		client := NewClient(provider, server.Client(), nil, utils.NopLogger{})
		client.SetOption("top_p", 0.9)

		_, err := client.Generate(context.Background(), "prompt")
		require.NoError(t, err)
		assert.Equal(t, 0.9, request["top_p"])
	})

	t.Run("non-200 becomes API error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		provider := providers.NewMockProvider(server.URL, "test-model", nil)
		client := NewClient(provider, server.Client(), nil, utils.NopLogger{})

		_, err := client.Generate(context.Background(), "prompt")
		require.Error(t, err)
		assert.True(t, IsErrorType(err, ErrorTypeAPI))
	})

	t.Run("request preparation failure", func(t *testing.T) {
		provider := providers.NewMockProvider("http://unused", "test-model", nil)
		provider.SetMockError(true, "bad request body")
		client := NewClient(provider, nil, nil, utils.NopLogger{})

		_, err := client.Generate(context.Background(), "prompt")
		require.Error(t, err)
		assert.True(t, IsErrorType(err, ErrorTypeRequest))
	})

	t.Run("cancelled context aborts the call", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		provider := providers.NewMockProvider(server.URL, "test-model", nil)
		client := NewClient(provider, server.Client(), nil, utils.NopLogger{})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := client.Generate(ctx, "prompt")
		require.Error(t, err)
	})
}

// stubEmbeddingProvider points the real request/response cycle at a
// test server.
type stubEmbeddingProvider struct {
	endpoint string
}

func (s *stubEmbeddingProvider) Name() string               { return "stub" }
func (s *stubEmbeddingProvider) Endpoint() string           { return s.endpoint }
func (s *stubEmbeddingProvider) Headers() map[string]string { return map[string]string{} }

func (s *stubEmbeddingProvider) PrepareEmbeddingRequest(inputs []string) ([]byte, error) {
	return json.Marshal(map[string]any{"input": inputs})
}

func (s *stubEmbeddingProvider) ParseEmbeddingResponse(body []byte) ([][]float64, error) {
	var parsed struct {
		Vectors [][]float64 `json:"vectors"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	return parsed.Vectors, nil
}

func TestEmbeddingClientEmbed(t *testing.T) {
	t.Run("returns one vector per input", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"vectors": [[1, 0], [0, 1]]}`))
		}))
		defer server.Close()

		client := NewEmbeddingClient(&stubEmbeddingProvider{endpoint: server.URL}, server.Client(), nil, utils.NopLogger{})
		vectors, err := client.Embed(context.Background(), []string{"one", "two"})
		require.NoError(t, err)
		require.Len(t, vectors, 2)
		assert.Equal(t, []float64{1, 0}, vectors[0])
		assert.Equal(t, []float64{0, 1}, vectors[1])
	})

	t.Run("count mismatch is a response error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"vectors": [[1, 0]]}`))
		}))
		defer server.Close()

		client := NewEmbeddingClient(&stubEmbeddingProvider{endpoint: server.URL}, server.Client(), nil, utils.NopLogger{})
		_, err := client.Embed(context.Background(), []string{"one", "two"})
		require.Error(t, err)
		assert.True(t, IsErrorType(err, ErrorTypeResponse))
	})

	t.Run("non-200 becomes API error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewEmbeddingClient(&stubEmbeddingProvider{endpoint: server.URL}, server.Client(), nil, utils.NopLogger{})
		_, err := client.Embed(context.Background(), []string{"one"})
		require.Error(t, err)
		assert.True(t, IsErrorType(err, ErrorTypeAPI))
	})
}
