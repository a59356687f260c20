package summarizescheme

import "schemesathi/internal/models"

type Input struct {
	SchemeID string `json:"schemeId"`
}

type Output struct {
	SchemeID   string                      `json:"schemeId"`
	SchemeName string                      `json:"schemeName"`
	Summary    string                      `json:"summary,omitempty"`
	Status     models.RecommendationStatus `json:"status"`
	// Description is the catalog text, the fallback when Summary is empty.
	Description string `json:"description"`
}
