package listapplications

import "schemesathi/internal/models"

type Input struct {
	UserID string `json:"userId"`
}

type Output struct {
	UserID       string               `json:"userId"`
	Applications []models.Application `json:"applications"`
	Count        int                  `json:"count"`
	// Open counts applications that can still change status.
	Open int `json:"open"`
}
