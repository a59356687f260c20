package updateapplicationstatus

import "schemesathi/internal/models"

type Input struct {
	ApplicationID string                   `json:"applicationId"`
	UserID        string                   `json:"userId,omitempty"`
	Status        models.ApplicationStatus `json:"status"`
}

type Output struct {
	Application    models.Application       `json:"application"`
	PreviousStatus models.ApplicationStatus `json:"previousStatus"`
	Status         models.ApplicationStatus `json:"status"`
	Terminal       bool                     `json:"terminal"`
	MessageSent    bool                     `json:"messageSent"`
}

type statusChangedMessage struct {
	ApplicationID  string                   `json:"applicationId"`
	UserID         string                   `json:"userId"`
	SchemeID       string                   `json:"schemeId"`
	SchemeName     string                   `json:"schemeName"`
	PreviousStatus models.ApplicationStatus `json:"previousStatus"`
	Status         models.ApplicationStatus `json:"status"`
	ChangedAt      string                   `json:"changedAt"`
}
