package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayGenerator_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/generate", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var body gatewayRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body.Prompt)
		assert.Equal(t, "json", body.ResponseFormat)
		assert.Equal(t, 256, body.MaxTokens)

		json.NewEncoder(w).Encode(gatewayResponse{Text: "  [1,2,3] "})
	}))
	defer server.Close()

	g := NewGatewayGenerator(server.URL+"/", "key", time.Second, 0)
	out, err := g.Generate(context.Background(), Request{Prompt: "hello", JSON: true, MaxTokens: 256})
	require.NoError(t, err)
	assert.Equal(t, "[1,2,3]", out)
}

func TestGatewayGenerator_RetriesThenFails(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	g := NewGatewayGenerator(server.URL, "", time.Second, 2)
	_, err := g.Generate(context.Background(), Request{Prompt: "x"})

	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGatewayGenerator_EmptyText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":"   "}`))
	}))
	defer server.Close()

	_, err := NewGatewayGenerator(server.URL, "", time.Second, 0).Generate(context.Background(), Request{Prompt: "x"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestNewGeminiGenerator_RequiresKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), "", "")
	assert.Error(t, err)
}

func TestWithLimits_TimesOutEachAttempt(t *testing.T) {
	var calls int32
	blocking := GeneratorFunc(func(ctx context.Context, req Request) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-ctx.Done()
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, ctx.Err())
	})

	start := time.Now()
	_, err := WithLimits(blocking, 20*time.Millisecond, 1).Generate(context.Background(), Request{Prompt: "x"})

	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestWithLimits_RetriesUntilSuccess(t *testing.T) {
	var calls int32
	flaky := GeneratorFunc(func(ctx context.Context, req Request) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return "", ErrGenerationFailed
		}
		return "ok", nil
	})

	out, err := WithLimits(flaky, time.Second, 2).Generate(context.Background(), Request{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestWithLimits_EmptyResponseIsNotRetried(t *testing.T) {
	var calls int32
	empty := GeneratorFunc(func(ctx context.Context, req Request) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", ErrEmptyResponse
	})

	_, err := WithLimits(empty, time.Second, 3).Generate(context.Background(), Request{Prompt: "x"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
