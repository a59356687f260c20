package sendapplicationnotification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"schemesathi/internal/common/camunda"
	"schemesathi/internal/common/errors"
	"schemesathi/internal/common/logger"
	"schemesathi/internal/common/metrics"
	"schemesathi/internal/models"
	"schemesathi/internal/store/application"
	"schemesathi/internal/store/profile"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-application-notification"
)

// EmailSender is implemented by aws.SESClient.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) (string, error)
}

// SMSSender is implemented by aws.SNSClient.
type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

type Handler struct {
	config       *Config
	contacts     profile.ContactStore
	applications application.Store
	email        EmailSender
	sms          SMSSender
	templates    map[models.NotificationType]template
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
	now          func() time.Time
}

// NewHandler wires the senders; a nil sender disables its channel.
func NewHandler(config *Config, contacts profile.ContactStore, applications application.Store, email EmailSender, sms SMSSender, log logger.Logger) (*Handler, error) {
	templates, err := loadTemplates(defaultTemplates)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		contacts:     contacts,
		applications: applications,
		email:        email,
		sms:          sms,
		templates:    templates,
		errorHandler: errors.NewErrorHandler(l),
		logger:       l,
		now:          func() time.Time { return time.Now().UTC() },
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	done := metrics.JobStarted(TaskType)

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := camunda.DecodeVariables(job, &input); err != nil {
		done(string(h.errorHandler.HandleJobError(ctx, client, job, err)), time.Since(start).Seconds())
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		done(string(h.errorHandler.HandleJobError(ctx, client, job, err)), time.Since(start).Seconds())
		return
	}

	// Delivery failures are reported in the output, never as job failures.
	camunda.CompleteJob(ctx, client, job, output, h.logger)
	done("", time.Since(start).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	appID := strings.TrimSpace(input.ApplicationID)
	if appID == "" {
		return nil, errors.NewValidationError("applicationId is required")
	}

	app, err := h.applications.Get(ctx, appID)
	if err != nil {
		return nil, err
	}
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		userID = app.UserID
	}
	if userID != app.UserID {
		return nil, errors.NewApplicationNotFoundError(appID)
	}

	typ := input.Type
	if typ == "" {
		typ = models.NotificationApplicationRecorded
		if input.PreviousStatus != "" {
			typ = models.NotificationStatusChanged
		}
	}
	tmpl, ok := h.templates[typ]
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("no template for notification type %q", typ))
	}

	now := h.now().Format(time.RFC3339)
	out := &Output{
		NotificationID: uuid.New().String(),
		Notifications:  []models.Notification{},
		SentAt:         now,
	}

	contact := h.contact(ctx, userID)
	// Metadata only fills placeholders; the stored application always wins.
	data := make(map[string]interface{}, len(input.Metadata)+7)
	for k, v := range input.Metadata {
		data[k] = v
	}
	if _, ok := data["name"]; !ok {
		data["name"] = "citizen"
	}
	if contact != nil && contact.Name != "" {
		data["name"] = contact.Name
	}
	data["applicationId"] = app.ApplicationID
	data["schemeId"] = app.SchemeID
	data["schemeName"] = app.SchemeName
	data["status"] = app.Status
	data["previousStatus"] = input.PreviousStatus
	data["applicationDate"] = app.ApplicationDate

	subject := renderTemplate(tmpl.Subject, data)
	body := renderTemplate(tmpl.Body, data)
	smsBody := body
	if tmpl.SMS != "" {
		smsBody = renderTemplate(tmpl.SMS, data)
	}

	newNotification := func(channel string) models.Notification {
		return models.Notification{
			ID:            uuid.New().String(),
			UserID:        userID,
			ApplicationID: app.ApplicationID,
			Type:          typ,
			Channel:       channel,
		}
	}

	email := newNotification(ChannelEmail)
	email.Subject, email.Body = subject, body
	switch {
	case !h.config.EmailEnabled || h.email == nil:
		email.Status = StatusDisabled
	case contact == nil || contact.Email == "":
		email.Status = StatusSkipped
	default:
		email.Status = h.deliver(ChannelEmail, func() (string, error) {
			return h.email.SendEmail(ctx, contact.Email, subject, body)
		}, appID)
	}
	out.Notifications = append(out.Notifications, email)

	sms := newNotification(ChannelSMS)
	sms.Body = smsBody
	switch {
	case !h.config.SMSEnabled || h.sms == nil:
		sms.Status = StatusDisabled
	case contact == nil || contact.Phone == "":
		sms.Status = StatusSkipped
	default:
		sms.Status = h.deliver(ChannelSMS, func() (string, error) {
			return h.sms.SendSMS(ctx, contact.Phone, smsBody)
		}, appID)
	}
	out.Notifications = append(out.Notifications, sms)

	for i := range out.Notifications {
		if out.Notifications[i].Status == StatusSent {
			out.Notifications[i].SentAt = now
		}
	}
	out.Status = overallStatus(out.Notifications)

	h.logger.Info("notification processed", map[string]interface{}{
		"applicationId": appID,
		"type":          typ,
		"status":        out.Status,
		"email":         email.Status,
		"sms":           sms.Status,
	})
	return out, nil
}

func (h *Handler) contact(ctx context.Context, userID string) *models.Contact {
	if h.contacts == nil {
		return nil
	}
	c, err := h.contacts.GetContact(ctx, userID)
	if err != nil {
		h.logger.Warn("contact lookup failed", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		return nil
	}
	return c
}

func (h *Handler) deliver(channel string, send func() (string, error), appID string) string {
	messageID, err := send()
	if err != nil {
		h.logger.Error("notification send failed", map[string]interface{}{
			"channel":       channel,
			"applicationId": appID,
			"error":         errors.NewNotificationSendFailedError(channel, err).Error(),
		})
		return StatusFailed
	}
	h.logger.Debug("notification sent", map[string]interface{}{
		"channel":   channel,
		"messageId": messageID,
	})
	return StatusSent
}

func overallStatus(ns []models.Notification) string {
	seen := map[string]bool{}
	for _, n := range ns {
		seen[n.Status] = true
	}
	for _, s := range []string{StatusFailed, StatusSent, StatusSkipped} {
		if seen[s] {
			return s
		}
	}
	return StatusDisabled
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
