package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"productdesc/app/config"
	"productdesc/internal/infrastructure/metrics"
)

const (
	defaultChatModel   = "gpt-4o-mini"
	defaultChatBaseURL = "https://api.openai.com/v1/chat/completions"
)

type ChatOptions struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	JSONMode    bool
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// ChatGenerator talks to any OpenAI-compatible chat completions endpoint.
type ChatGenerator struct {
	apiKey      string
	baseURL     string
	model       string
	client      *http.Client
	maxTokens   int
	temperature float32
	jsonMode    bool
}

func NewChatGenerator(opts ChatOptions) (*ChatGenerator, error) {
	if opts.APIKey == "" {
		return nil, errors.New("chat completions api key is required")
	}
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = defaultChatBaseURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultChatModel
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 2 * time.Minute
		}
		client = &http.Client{Timeout: timeout}
	}
	return &ChatGenerator{
		apiKey:      opts.APIKey,
		baseURL:     baseURL,
		model:       model,
		client:      client,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		jsonMode:    opts.JSONMode,
	}, nil
}

func (g *ChatGenerator) Provider() string { return config.ProviderOpenAI }

func (g *ChatGenerator) Model() string { return g.model }

func (g *ChatGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	metrics.IncLLMRequest(config.ProviderOpenAI, g.model)

	request := map[string]interface{}{
		"model": g.model,
		"messages": []map[string]string{
			{
				"role":    "user",
				"content": prompt,
			},
		},
	}
	if g.temperature > 0 {
		request["temperature"] = g.temperature
	}
	if g.maxTokens > 0 {
		request["max_tokens"] = g.maxTokens
	}
	if g.jsonMode {
		request["response_format"] = map[string]string{"type": "json_object"}
	}

	response, err := g.makeRequest(ctx, request)
	if err != nil {
		metrics.IncError("llm", "make_request")
		return "", fmt.Errorf("failed to make chat completions request: %w", err)
	}

	content, err := g.parseResponse(response)
	if err != nil {
		metrics.IncError("llm", "parse_response")
		return "", fmt.Errorf("failed to parse chat completions response: %w", err)
	}
	return content, nil
}

func (g *ChatGenerator) makeRequest(ctx context.Context, request map[string]interface{}) (map[string]interface{}, error) {
	jsonData, err := json.Marshal(request)
	if err != nil {
		metrics.IncError("llm", "marshal_request")
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		metrics.IncError("llm", "create_request")
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		metrics.IncError("llm", "http_do")
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("close chat completions body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		metrics.IncError("llm", fmt.Sprintf("api_error_%d", resp.StatusCode))
		return nil, fmt.Errorf("chat completions api error: %d - %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var response map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		metrics.IncError("llm", "decode_response")
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return response, nil
}

func (g *ChatGenerator) parseResponse(response map[string]interface{}) (string, error) {
	choices, ok := response["choices"].([]interface{})
	if !ok || len(choices) == 0 {
		return "", fmt.Errorf("invalid response format: no choices")
	}

	choice, ok := choices[0].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("invalid response format: invalid choice")
	}

	message, ok := choice["message"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("invalid response format: no message")
	}

	content, ok := message["content"].(string)
	if !ok {
		return "", fmt.Errorf("invalid response format: no content")
	}
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("invalid response format: empty content")
	}

	return content, nil
}
