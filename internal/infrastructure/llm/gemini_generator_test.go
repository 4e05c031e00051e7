package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productdesc/app/config"
)

func TestGeminiGeneratorGenerateText(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"a\":1}"}]}}]}`))
	}))
	defer srv.Close()

	g, err := NewGeminiGenerator(context.Background(), GeminiOptions{
		APIKey:  "test-key",
		Model:   "gemini-test",
		BaseURL: srv.URL,
	})
	require.NoError(t, err)
	assert.Equal(t, config.ProviderGemini, g.Provider())

	text, err := g.GenerateText(context.Background(), "describe a mug")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, text)
	assert.True(t, strings.HasSuffix(path, "models/gemini-test:generateContent"), path)
}

func TestNewGeminiGeneratorRequiresKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), GeminiOptions{})
	require.Error(t, err)
}
