package models

// Recommendation is one AI-suggested scheme. SchemeID is optional; SchemeName is the fallback join key.
type Recommendation struct {
	SchemeID   string `json:"schemeId,omitempty"`
	SchemeName string `json:"schemeName"`
	Reasoning  string `json:"reasoning"`
}

// RecommendationStatus is reported by save-user-profile, recommend-schemes and PUT /profile.
type RecommendationStatus string

const (
	RecommendationSucceeded RecommendationStatus = "succeeded"
	RecommendationCached    RecommendationStatus = "cached"
	RecommendationFailed    RecommendationStatus = "failed"
	RecommendationSkipped   RecommendationStatus = "skipped"
)

// RecommendationFailedNotice is the one-time message shown when recommendations could not be fetched.
const RecommendationFailedNotice = "Your profile was saved, but we couldn't fetch AI recommendations right now. Showing schemes that match your details."

// SchemeSummary is the AI explanation of a single scheme.
type SchemeSummary struct {
	SchemeID string `json:"schemeId"`
	Summary  string `json:"summary"`
}
