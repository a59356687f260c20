// Package recommendation asks a generative model for scheme recommendations and scheme summaries.
package recommendation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"schemesathi/internal/common/errors"
	"schemesathi/internal/common/genai"
	"schemesathi/internal/common/logger"
	"schemesathi/internal/common/validation"
	"schemesathi/internal/models"
	"schemesathi/internal/schemes/catalog"
)

// RecommendationCount is the exact number of recommendations the model must return.
const RecommendationCount = 3

var recommendationsSchema = validation.MustCompile(`{
	"type": "array",
	"minItems": 3,
	"maxItems": 3,
	"items": {
		"type": "object",
		"required": ["schemeName", "reasoning"],
		"properties": {
			"schemeId": {"type": "string"},
			"schemeName": {"type": "string", "minLength": 1},
			"reasoning": {"type": "string", "minLength": 1}
		},
		"additionalProperties": false
	}
}`)

var summarySchema = validation.MustCompile(`{
	"type": "object",
	"required": ["summary"],
	"properties": {
		"summary": {"type": "string", "minLength": 1}
	},
	"additionalProperties": false
}`)

type Options struct {
	Temperature float64
	MaxTokens   int
}

type Client struct {
	gen     genai.Generator
	catalog *catalog.Catalog
	opts    Options
	logger  logger.Logger
}

func NewClient(gen genai.Generator, cat *catalog.Catalog, opts Options, log logger.Logger) *Client {
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 1024
	}
	return &Client{
		gen:     gen,
		catalog: cat,
		opts:    opts,
		logger:  log.WithFields(map[string]interface{}{"component": "recommendation"}),
	}
}

// Recommend returns exactly three recommendations for p. Any transport or payload problem is
// reported as RECOMMENDATION_SERVICE_FAILED.
func (c *Client) Recommend(ctx context.Context, p models.Profile) ([]models.Recommendation, error) {
	text, err := c.gen.Generate(ctx, genai.Request{
		System:      systemPrompt,
		Prompt:      c.buildRecommendPrompt(p),
		JSON:        true,
		Temperature: c.opts.Temperature,
		MaxTokens:   c.opts.MaxTokens,
	})
	if err != nil {
		return nil, errors.NewRecommendationServiceError(err)
	}

	payload := []byte(stripCodeFence(text))
	if res := recommendationsSchema.ValidateBytes(payload); !res.Valid {
		c.logger.Warn("recommendation payload rejected", map[string]interface{}{
			"errors": res.GetErrorMessages(),
		})
		return nil, errors.NewRecommendationServiceError(fmt.Errorf("invalid payload: %s", res.Error()))
	}

	var recs []models.Recommendation
	if err := json.Unmarshal(payload, &recs); err != nil {
		return nil, errors.NewRecommendationServiceError(fmt.Errorf("decode payload: %w", err))
	}

	for i := range recs {
		recs[i].SchemeName = strings.TrimSpace(recs[i].SchemeName)
		recs[i].SchemeID = strings.TrimSpace(recs[i].SchemeID)
	}
	return recs, nil
}

// Summarize returns a short explanation of s, highlighting benefits and requirements.
func (c *Client) Summarize(ctx context.Context, s models.Scheme) (*models.SchemeSummary, error) {
	text, err := c.gen.Generate(ctx, genai.Request{
		System:      summarySystemPrompt,
		Prompt:      buildSummaryPrompt(s),
		JSON:        true,
		Temperature: c.opts.Temperature,
		MaxTokens:   c.opts.MaxTokens,
	})
	if err != nil {
		return nil, errors.NewSummaryServiceError(err)
	}

	payload := []byte(stripCodeFence(text))
	if res := summarySchema.ValidateBytes(payload); !res.Valid {
		return nil, errors.NewSummaryServiceError(fmt.Errorf("invalid payload: %s", res.Error()))
	}

	var out struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, errors.NewSummaryServiceError(fmt.Errorf("decode payload: %w", err))
	}
	return &models.SchemeSummary{SchemeID: s.SchemeID, Summary: strings.TrimSpace(out.Summary)}, nil
}

// stripCodeFence removes a ```json ... ``` wrapper some models add despite JSON mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
