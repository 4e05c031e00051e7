package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"productdesc/app/config"
	"productdesc/internal/infrastructure/metrics"
)

const defaultGeminiModel = "gemini-1.5-flash"

type GeminiOptions struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
	// JSONMode asks the model for an application/json reply.
	JSONMode   bool
	Timeout    time.Duration
	HTTPClient *http.Client
}

// GeminiGenerator calls the Gemini API through the genai SDK.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

func NewGeminiGenerator(ctx context.Context, opts GeminiOptions) (*GeminiGenerator, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultGeminiModel
	}

	httpClient := opts.HTTPClient
	if httpClient == nil && opts.Timeout > 0 {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	clientConfig := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if opts.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	genConfig := &genai.GenerateContentConfig{}
	if opts.Temperature > 0 {
		genConfig.Temperature = genai.Ptr(opts.Temperature)
	}
	if opts.JSONMode {
		genConfig.ResponseMIMEType = "application/json"
	}

	return &GeminiGenerator{
		client: client,
		model:  model,
		config: genConfig,
	}, nil
}

func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	metrics.IncLLMRequest(config.ProviderGemini, g.model)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.config)
	if err != nil {
		metrics.IncError("llm", "gemini_generate")
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		metrics.IncError("llm", "gemini_empty_response")
		return "", errors.New("gemini returned an empty response")
	}
	return text, nil
}

func (g *GeminiGenerator) Provider() string { return config.ProviderGemini }

func (g *GeminiGenerator) Model() string { return g.model }
