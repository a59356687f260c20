package genai

import (
	"context"
	"fmt"
	"strings"
	"time"

	httpclient "schemesathi/internal/common/http"
)

// GatewayGenerator posts prompts to an internal AI gateway at <base>/api/ai/generate.
type GatewayGenerator struct {
	endpoint string
	apiKey   string
	http     *httpclient.Client
}

type gatewayRequest struct {
	Prompt         string  `json:"prompt"`
	SystemPrompt   string  `json:"system_prompt,omitempty"`
	MaxTokens      int     `json:"max_tokens,omitempty"`
	Temperature    float64 `json:"temperature"`
	ResponseFormat string  `json:"response_format,omitempty"`
}

type gatewayResponse struct {
	Text string `json:"text"`
}

func NewGatewayGenerator(baseURL, apiKey string, timeout time.Duration, maxRetries int) *GatewayGenerator {
	return &GatewayGenerator{
		endpoint: strings.TrimSuffix(baseURL, "/") + "/api/ai/generate",
		apiKey:   apiKey,
		http:     httpclient.NewClient(timeout, httpclient.WithRetries(maxRetries, 100*time.Millisecond)),
	}
}

func (g *GatewayGenerator) Generate(ctx context.Context, req Request) (string, error) {
	body := gatewayRequest{
		Prompt:       req.Prompt,
		SystemPrompt: req.System,
		MaxTokens:    req.MaxTokens,
		Temperature:  req.Temperature,
	}
	if req.JSON {
		body.ResponseFormat = "json"
	}

	headers := map[string]string{}
	if g.apiKey != "" {
		headers["Authorization"] = "Bearer " + g.apiKey
	}

	var resp gatewayResponse
	if err := g.http.PostJSON(ctx, g.endpoint, headers, body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
