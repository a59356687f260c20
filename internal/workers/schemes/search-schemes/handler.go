package searchschemes

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"schemesathi/internal/common/camunda"
	"schemesathi/internal/common/errors"
	"schemesathi/internal/common/logger"
	"schemesathi/internal/common/metrics"
	"schemesathi/internal/models"
	"schemesathi/internal/schemes/catalog"
	"schemesathi/internal/workers/schemes/search-schemes/queries"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
)

const (
	TaskType = "search-schemes"
)

var (
	ErrSearchQueryFailed = stderrors.New("SEARCH_QUERY_FAILED")
	ErrSearchTimeout     = stderrors.New("SEARCH_TIMEOUT")
	ErrInvalidCategory   = stderrors.New("INVALID_CATEGORY")
)

type Handler struct {
	config       *Config
	client       *elasticsearch.Client
	catalog      *catalog.Catalog
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, client *elasticsearch.Client, cat *catalog.Catalog, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		client:       client,
		catalog:      cat,
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
		done(string(h.errorHandler.HandleJobError(ctx, client, job, toStandardError(err))), time.Since(start).Seconds())
		return
	}

	camunda.CompleteJob(ctx, client, job, output, h.logger)
	done("", time.Since(start).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	var category models.SchemeCategory
	if strings.TrimSpace(input.Category) != "" {
		c, ok := models.ParseSchemeCategory(input.Category)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, input.Category)
		}
		category = c
	}

	size := h.config.MaxResults
	if input.Limit > 0 && input.Limit < size {
		size = input.Limit
	}

	text := strings.TrimSpace(input.Query)
	if text == "" {
		return h.browse(category, size), nil
	}

	result, err := queries.Execute(ctx, h.client, queries.SchemeQuery{
		Index:    h.config.Index,
		Text:     text,
		Category: string(category),
		Size:     size,
	})
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %v", ErrSearchTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrSearchQueryFailed, err)
	}

	out := &Output{
		Schemes:   []models.Scheme{},
		SchemeIDs: []string{},
		TotalHits: result.TotalHits,
		MaxScore:  result.MaxScore,
		Took:      result.Took,
		Source:    "search",
	}
	for _, hit := range result.Hits {
		s, ok := h.catalog.Get(hit.SchemeID)
		if !ok {
			// Index is older than the catalog.
			h.logger.Warn("search hit not in catalog", map[string]interface{}{"schemeId": hit.SchemeID})
			continue
		}
		out.Schemes = append(out.Schemes, s)
		out.SchemeIDs = append(out.SchemeIDs, s.SchemeID)
	}

	h.logger.Info("search completed", map[string]interface{}{
		"query":     text,
		"category":  category,
		"totalHits": result.TotalHits,
		"returned":  len(out.Schemes),
		"took":      result.Took,
	})
	return out, nil
}

// browse lists the catalog in declaration order without touching the index.
func (h *Handler) browse(category models.SchemeCategory, size int) *Output {
	out := &Output{Schemes: []models.Scheme{}, SchemeIDs: []string{}, Source: "catalog"}
	for _, s := range h.catalog.All() {
		if category != "" && s.Category != category {
			continue
		}
		out.TotalHits++
		if len(out.Schemes) < size {
			out.Schemes = append(out.Schemes, s)
			out.SchemeIDs = append(out.SchemeIDs, s.SchemeID)
		}
	}
	return out
}

func toStandardError(err error) error {
	switch {
	case stderrors.Is(err, ErrSearchTimeout):
		return errors.NewSearchTimeoutError()
	case stderrors.Is(err, ErrSearchQueryFailed):
		return errors.NewSearchQueryFailedError(err)
	case stderrors.Is(err, ErrInvalidCategory):
		return errors.NewValidationError(err.Error())
	}
	return err
}

// Execute returns StandardErrors so API callers can map them directly.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	out, err := h.execute(ctx, input)
	if err != nil {
		return nil, toStandardError(err)
	}
	return out, nil
}
