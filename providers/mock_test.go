package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProviderPlayback(t *testing.T) {
	t.Run("looping queue wraps around", func(t *testing.T) {
		provider := NewMockProvider("", "mock-model", nil)
		provider.SetResponses([]string{"first", "second"}, true)

		for _, expected := range []string{"first", "second", "first"} {
			got, err := provider.ParseResponse(nil)
			require.NoError(t, err)
			assert.Equal(t, expected, got)
		}
	})

	t.Run("non-looping queue exhausts", func(t *testing.T) {
		provider := NewMockProvider("", "mock-model", nil)
		provider.SetResponses([]string{"only"}, false)

		got, err := provider.ParseResponse(nil)
		require.NoError(t, err)
		assert.Equal(t, "only", got)

		_, err = provider.ParseResponse(nil)
		assert.Error(t, err)
	})

	t.Run("empty queue falls back to the fixed response", func(t *testing.T) {
		provider := NewMockProvider("", "mock-model", nil)
		provider.SetMockResponse("canned")

		got, err := provider.ParseResponse(nil)
		require.NoError(t, err)
		assert.Equal(t, "canned", got)
	})
}
