package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

type Hit struct {
	SchemeID string
	Score    float64
}

type QueryResult struct {
	Hits      []Hit
	TotalHits int64
	MaxScore  float64
	Took      int64
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		MaxScore *float64 `json:"max_score"`
		Hits     []struct {
			ID     string  `json:"_id"`
			Score  float64 `json:"_score"`
			Source struct {
				SchemeID string `json:"schemeId"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Execute runs q and returns scheme ids in relevance order.
func Execute(ctx context.Context, es *elasticsearch.Client, q SchemeQuery) (*QueryResult, error) {
	req, err := BuildQuery(q)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := req.Do(ctx, es)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search query failed: %s", res.String())
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := &QueryResult{
		TotalHits: r.Hits.Total.Value,
		Took:      time.Since(start).Milliseconds(),
	}
	if r.Hits.MaxScore != nil {
		out.MaxScore = *r.Hits.MaxScore
	}
	for _, h := range r.Hits.Hits {
		id := h.Source.SchemeID
		if id == "" {
			id = h.ID
		}
		out.Hits = append(out.Hits, Hit{SchemeID: id, Score: h.Score})
	}
	return out, nil
}
