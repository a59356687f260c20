package getschemedetails

import "schemesathi/internal/models"

type Input struct {
	SchemeID string `json:"schemeId"`
}

type Output struct {
	Scheme models.Scheme `json:"scheme"`
}
