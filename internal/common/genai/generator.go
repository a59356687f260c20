// Package genai sends prompts to a text-generation backend: Gemini directly or an HTTP gateway.
package genai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"schemesathi/internal/common/config"
)

var (
	ErrGenerationFailed = errors.New("GENERATION_FAILED")
	ErrEmptyResponse    = errors.New("EMPTY_RESPONSE")
)

// Request is a single-turn generation request.
type Request struct {
	System      string
	Prompt      string
	JSON        bool // ask for application/json output
	Temperature float64
	MaxTokens   int
}

type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// New builds the generator selected by apis.genai.provider.
func New(ctx context.Context, cfg config.Config) (Generator, error) {
	g := cfg.APIs.GenAI
	timeout := time.Duration(g.Timeout) * time.Millisecond

	switch g.Provider {
	case "gemini":
		gem, err := NewGeminiGenerator(ctx, g.APIKey, g.Model)
		if err != nil {
			return nil, err
		}
		return WithLimits(gem, timeout, g.MaxRetries), nil
	case "gateway":
		return NewGatewayGenerator(g.BaseURL, g.APIKey, timeout, g.MaxRetries), nil
	default:
		return nil, fmt.Errorf("unsupported genai provider %q", g.Provider)
	}
}

type limited struct {
	next       Generator
	timeout    time.Duration
	maxRetries int
}

// WithLimits bounds every attempt of next by timeout and retries generation failures up to
// maxRetries times. A zero timeout leaves attempts bounded only by the caller's context.
func WithLimits(next Generator, timeout time.Duration, maxRetries int) Generator {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &limited{next: next, timeout: timeout, maxRetries: maxRetries}
}

func (l *limited) Generate(ctx context.Context, req Request) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= l.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return "", lastErr
			}
			return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		}

		text, err := l.attempt(ctx, req)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if errors.Is(err, ErrEmptyResponse) {
			return "", err
		}
	}
	return "", lastErr
}

func (l *limited) attempt(ctx context.Context, req Request) (string, error) {
	if l.timeout <= 0 {
		return l.next.Generate(ctx, req)
	}
	actx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	return l.next.Generate(actx, req)
}
