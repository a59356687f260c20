package updateapplicationstatus

import (
	"context"
	"strings"
	"time"

	"schemesathi/internal/common/camunda"
	"schemesathi/internal/common/errors"
	"schemesathi/internal/common/logger"
	"schemesathi/internal/common/metrics"
	"schemesathi/internal/models"
	"schemesathi/internal/store/application"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "update-application-status"
)

// MessagePublisher is implemented by camunda.Client.
type MessagePublisher interface {
	PublishMessage(ctx context.Context, name, correlationKey string, variables interface{}) error
}

type Handler struct {
	config       *Config
	applications application.Store
	publisher    MessagePublisher
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler builds the handler; publisher may be nil.
func NewHandler(config *Config, applications application.Store, publisher MessagePublisher, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		applications: applications,
		publisher:    publisher,
		errorHandler: errors.NewErrorHandler(l),
		logger:       l,
	}
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

	camunda.CompleteJob(ctx, client, job, output, h.logger)
	done("", time.Since(start).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	appID := strings.TrimSpace(input.ApplicationID)
	if appID == "" {
		return nil, errors.NewValidationError("applicationId is required")
	}
	if input.Status == "" {
		return nil, errors.NewValidationError("status is required")
	}

	app, previous, err := h.applications.UpdateStatus(ctx, appID, strings.TrimSpace(input.UserID), input.Status)
	if err != nil {
		return nil, err
	}

	h.logger.Info("application status changed", map[string]interface{}{
		"applicationId": appID,
		"from":          previous,
		"to":            app.Status,
	})

	return &Output{
		Application:    *app,
		PreviousStatus: previous,
		Status:         app.Status,
		Terminal:       app.Status.Terminal(),
		MessageSent:    h.publish(ctx, app, previous),
	}, nil
}

// publish is best effort: the transition is already committed.
func (h *Handler) publish(ctx context.Context, app *models.Application, previous models.ApplicationStatus) bool {
	if h.publisher == nil || h.config.MessageName == "" {
		return false
	}

	err := h.publisher.PublishMessage(ctx, h.config.MessageName, app.ApplicationID, statusChangedMessage{
		ApplicationID:  app.ApplicationID,
		UserID:         app.UserID,
		SchemeID:       app.SchemeID,
		SchemeName:     app.SchemeName,
		PreviousStatus: previous,
		Status:         app.Status,
		ChangedAt:      app.LastStatusUpdateDate,
	})
	if err != nil {
		h.logger.Warn("status change message not published", map[string]interface{}{
			"applicationId": app.ApplicationID,
			"message":       h.config.MessageName,
			"error":         err.Error(),
		})
		return false
	}
	return true
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
