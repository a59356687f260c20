package recordapplication

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
	"schemesathi/internal/schemes/catalog"
	"schemesathi/internal/store/application"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "record-application"
)

type Handler struct {
	config       *Config
	catalog      *catalog.Catalog
	applications application.Store
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, cat *catalog.Catalog, applications application.Store, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		catalog:      cat,
		applications: applications,
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
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, errors.NewNotAuthenticatedError("userId is required to record an application")
	}

	schemeID := strings.TrimSpace(input.SchemeID)
	if schemeID == "" {
		return nil, errors.NewValidationError("schemeId is required")
	}
	scheme, ok := h.catalog.Get(schemeID)
	if !ok {
		return nil, errors.NewSchemeNotFoundError(schemeID)
	}

	status := input.Status
	if status == "" {
		status = models.StatusSubmitted
	}
	if status != models.StatusDraft && status != models.StatusSubmitted {
		return nil, errors.NewValidationError(fmt.Sprintf("new applications start as %s or %s, not %q",
			models.StatusDraft, models.StatusSubmitted, status))
	}

	app, err := h.applications.Create(ctx, models.Application{
		UserID:          userID,
		SchemeID:        scheme.SchemeID,
		SchemeName:      scheme.SchemeName,
		ApplicationDate: input.ApplicationDate,
		Status:          status,
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("application recorded", map[string]interface{}{
		"applicationId": app.ApplicationID,
		"userId":        userID,
		"schemeId":      scheme.SchemeID,
		"status":        app.Status,
	})

	return &Output{
		Application:       *app,
		ApplicationID:     app.ApplicationID,
		ApplicationStatus: app.Status,
		CreatedAt:         app.LastStatusUpdateDate,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
