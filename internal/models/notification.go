package models

type NotificationType string

const (
	NotificationApplicationRecorded NotificationType = "application_recorded"
	NotificationStatusChanged       NotificationType = "application_status_changed"
)

type Notification struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	ApplicationID string           `json:"applicationId"`
	Type          NotificationType `json:"type"`
	Channel       string           `json:"channel"` // "email", "sms"
	Status        string           `json:"status"`  // "sent", "failed", "disabled", "skipped"
	Subject       string           `json:"subject,omitempty"`
	Body          string           `json:"body"`
	SentAt        string           `json:"sentAt,omitempty"`
}

// Contact is where a user's notifications are delivered.
type Contact struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Name   string `json:"name,omitempty"`
}
