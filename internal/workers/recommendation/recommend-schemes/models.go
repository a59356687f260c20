package recommendschemes

import "schemesathi/internal/models"

type Input struct {
	UserID string `json:"userId"`
	// Refresh skips the cache.
	Refresh bool `json:"refresh,omitempty"`
}

type Output struct {
	UserID               string                      `json:"userId"`
	RecommendationStatus models.RecommendationStatus `json:"recommendationStatus"`
	Recommendations      []models.Recommendation     `json:"recommendations"`
	Notice               string                      `json:"notice,omitempty"`
}
