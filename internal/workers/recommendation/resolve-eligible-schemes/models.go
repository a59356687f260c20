package resolveeligibleschemes

import "schemesathi/internal/models"

type Input struct {
	UserID string `json:"userId"`
	// Recommendations from an earlier recommend-schemes task. When absent the cache is consulted.
	Recommendations *[]models.Recommendation `json:"recommendations"`
}

type Output struct {
	UserID               string          `json:"userId"`
	Schemes              []models.Scheme `json:"schemes"`
	SchemeIDs            []string        `json:"schemeIds"`
	RuleMatches          []string        `json:"ruleMatches"`
	RecommendationSource string          `json:"recommendationSource"` // input, cache, none
	Unresolved           []string        `json:"unresolved,omitempty"`
}
