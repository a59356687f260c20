package getuserprofile

import "schemesathi/internal/models"

type Input struct {
	UserID string `json:"userId"`
}

type Output struct {
	UserID  string          `json:"userId"`
	Found   bool            `json:"found"`
	Profile *models.Profile `json:"profile"`
}
