package listapplications

import (
	"context"
	"strings"
	"time"

	"schemesathi/internal/common/camunda"
	"schemesathi/internal/common/errors"
	"schemesathi/internal/common/logger"
	"schemesathi/internal/common/metrics"
	"schemesathi/internal/store/application"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "list-applications"
)

type Handler struct {
	config       *Config
	applications application.Store
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, applications application.Store, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
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
		return nil, errors.NewNotAuthenticatedError("userId is required to list applications")
	}

	apps, err := h.applications.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &Output{UserID: userID, Applications: apps, Count: len(apps)}
	for _, app := range apps {
		if !app.Status.Terminal() {
			out.Open++
		}
	}
	return out, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
