package sendapplicationnotification

import "schemesathi/internal/models"

const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
	StatusSkipped  = "skipped"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

type Input struct {
	UserID        string                  `json:"userId"`
	ApplicationID string                  `json:"applicationId"`
	Type          models.NotificationType `json:"notificationType"`
	// PreviousStatus is set by update-application-status.
	PreviousStatus models.ApplicationStatus `json:"previousStatus,omitempty"`
	Metadata       map[string]interface{}   `json:"metadata,omitempty"`
}

type Output struct {
	NotificationID string                `json:"notificationId"`
	Status         string                `json:"status"`
	Notifications  []models.Notification `json:"notifications"`
	SentAt         string                `json:"sentAt"`
}

type template struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	SMS     string `json:"sms"`
}
