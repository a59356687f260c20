package recordapplication

import "schemesathi/internal/models"

type Input struct {
	UserID   string `json:"userId"`
	SchemeID string `json:"schemeId"`
	// ApplicationDate defaults to now; RFC3339.
	ApplicationDate string `json:"applicationDate,omitempty"`
	// Status is Draft or Submitted; empty means Submitted.
	Status models.ApplicationStatus `json:"status,omitempty"`
}

type Output struct {
	Application       models.Application       `json:"application"`
	ApplicationID     string                   `json:"applicationId"`
	ApplicationStatus models.ApplicationStatus `json:"applicationStatus"`
	CreatedAt         string                   `json:"createdAt"`
}
