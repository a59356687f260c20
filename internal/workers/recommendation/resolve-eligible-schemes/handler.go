package resolveeligibleschemes

import (
	"context"
	"strings"
	"time"

	"schemesathi/internal/common/camunda"
	"schemesathi/internal/common/errors"
	"schemesathi/internal/common/logger"
	"schemesathi/internal/common/metrics"
	"schemesathi/internal/models"
	"schemesathi/internal/recommendation"
	"schemesathi/internal/schemes/catalog"
	"schemesathi/internal/schemes/eligibility"
	"schemesathi/internal/schemes/merge"
	"schemesathi/internal/store/profile"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "resolve-eligible-schemes"
)

type Handler struct {
	config       *Config
	catalog      *catalog.Catalog
	matcher      *eligibility.Matcher
	profiles     profile.Store
	recs         *recommendation.Service
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, cat *catalog.Catalog, matcher *eligibility.Matcher, profiles profile.Store, recs *recommendation.Service, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		catalog:      cat,
		matcher:      matcher,
		profiles:     profiles,
		recs:         recs,
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
		return nil, errors.NewNotAuthenticatedError("userId is required to resolve schemes")
	}

	// Always the latest persisted profile, never a snapshot carried in the process.
	p, err := h.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.IsEmpty() {
		return nil, errors.NewProfileRequiredError(userID)
	}

	schemes := h.catalog.All()
	ruleMatches := h.matcher.Match(*p, schemes)

	var (
		aiRecs []models.Recommendation
		source = "none"
	)
	switch {
	case input.Recommendations != nil:
		aiRecs, source = *input.Recommendations, "input"
	case h.recs != nil:
		if cached := h.recs.Cached(ctx, userID, *p); cached != nil {
			aiRecs, source = cached, "cache"
		}
	}

	merged := merge.Merge(ruleMatches, aiRecs, h.catalog.AlwaysShown(), schemes)

	var unresolved []string
	if aiRecs != nil {
		_, missing := merge.Resolve(aiRecs, schemes)
		for _, u := range missing {
			unresolved = append(unresolved, u.Recommendation.SchemeName)
		}
		if len(unresolved) > 0 {
			h.logger.Warn("recommendations without a catalog entry", map[string]interface{}{
				"userId":     userID,
				"unresolved": unresolved,
			})
		}
	}

	for id := range ruleMatches {
		metrics.EligibilityMatches.WithLabelValues(id, "rules").Inc()
	}

	h.logger.Info("eligible schemes resolved", map[string]interface{}{
		"userId":      userID,
		"ruleMatches": len(ruleMatches),
		"total":       len(merged),
		"source":      source,
	})

	return &Output{
		UserID:               userID,
		Schemes:              merged,
		SchemeIDs:            merge.IDs(merged),
		RuleMatches:          ruleMatches.Sorted(),
		RecommendationSource: source,
		Unresolved:           unresolved,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
