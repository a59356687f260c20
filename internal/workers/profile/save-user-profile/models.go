package saveuserprofile

import (
	"encoding/json"

	"schemesathi/internal/models"
)

type Input struct {
	UserID  string          `json:"userId"`
	Profile json.RawMessage `json:"profile"`
}

type Output struct {
	UserID               string                      `json:"userId"`
	ProfileSaved         bool                        `json:"profileSaved"`
	Profile              models.Profile              `json:"profile"`
	RecommendationStatus models.RecommendationStatus `json:"recommendationStatus"`
	Recommendations      []models.Recommendation     `json:"recommendations"`
	Notice               string                      `json:"notice,omitempty"`
	SavedAt              string                      `json:"savedAt"` // ISO 8601
}
