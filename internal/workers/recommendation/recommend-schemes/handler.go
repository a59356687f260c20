package recommendschemes

import (
	"context"
	"strings"
	"time"

	"schemesathi/internal/common/camunda"
	"schemesathi/internal/common/errors"
	"schemesathi/internal/common/logger"
	"schemesathi/internal/common/metrics"
	"schemesathi/internal/recommendation"
	"schemesathi/internal/store/profile"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "recommend-schemes"
)

type Handler struct {
	config       *Config
	profiles     profile.Store
	recs         *recommendation.Service
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, profiles profile.Store, recs *recommendation.Service, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
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

	// A failed recommendation still completes the job; the process shows rule matches only.
	camunda.CompleteJob(ctx, client, job, output, h.logger)
	done("", time.Since(start).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, errors.NewNotAuthenticatedError("userId is required for recommendations")
	}

	p, err := h.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.IsEmpty() {
		return nil, errors.NewProfileRequiredError(userID)
	}

	var res recommendation.Result
	if input.Refresh {
		res = h.recs.Refresh(ctx, userID, *p)
	} else {
		res = h.recs.Fetch(ctx, userID, *p)
	}

	h.logger.Info("recommendations fetched", map[string]interface{}{
		"userId": userID,
		"status": res.Status,
		"count":  len(res.Recommendations),
	})

	return &Output{
		UserID:               userID,
		RecommendationStatus: res.Status,
		Recommendations:      res.Recommendations,
		Notice:               res.Notice,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
