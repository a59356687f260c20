package summarizescheme

import (
	"context"
	"strings"
	"time"

	"schemesathi/internal/common/camunda"
	"schemesathi/internal/common/errors"
	"schemesathi/internal/common/logger"
	"schemesathi/internal/common/metrics"
	"schemesathi/internal/models"
	"schemesathi/internal/schemes/catalog"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "summarize-scheme"
)

// Summarizer is implemented by recommendation.Client.
type Summarizer interface {
	Summarize(ctx context.Context, s models.Scheme) (*models.SchemeSummary, error)
}

type Handler struct {
	config       *Config
	catalog      *catalog.Catalog
	summarizer   Summarizer
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, cat *catalog.Catalog, summarizer Summarizer, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		catalog:      cat,
		summarizer:   summarizer,
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
	id := strings.TrimSpace(input.SchemeID)
	if id == "" {
		return nil, errors.NewValidationError("schemeId is required")
	}

	scheme, ok := h.catalog.Get(id)
	if !ok {
		return nil, errors.NewSchemeNotFoundError(id)
	}

	out := &Output{
		SchemeID:    scheme.SchemeID,
		SchemeName:  scheme.SchemeName,
		Description: scheme.Description,
		Status:      models.RecommendationSkipped,
	}
	if h.summarizer == nil {
		return out, nil
	}

	summary, err := h.summarizer.Summarize(ctx, scheme)
	if err != nil {
		h.logger.Warn("summary unavailable, falling back to catalog description", map[string]interface{}{
			"schemeId": id,
			"error":    err.Error(),
		})
		out.Status = models.RecommendationFailed
		return out, nil
	}

	out.Summary = summary.Summary
	out.Status = models.RecommendationSucceeded
	return out, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
