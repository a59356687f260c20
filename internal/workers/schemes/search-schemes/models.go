package searchschemes

import "schemesathi/internal/models"

type Input struct {
	Query    string `json:"query"`
	Category string `json:"category,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

type Output struct {
	Schemes   []models.Scheme `json:"schemes"`
	SchemeIDs []string        `json:"schemeIds"`
	TotalHits int64           `json:"totalHits"`
	MaxScore  float64         `json:"maxScore,omitempty"`
	Took      int64           `json:"took"`
	// Source is "search" when Elasticsearch answered, "catalog" for an empty query.
	Source string `json:"source"`
}
