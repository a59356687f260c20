package saveuserprofile

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
	"schemesathi/internal/recommendation"
	"schemesathi/internal/store/profile"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "save-user-profile"
)

var (
	ErrMissingUserID = stderrors.New("NOT_AUTHENTICATED")
)

type Handler struct {
	config       *Config
	profiles     profile.Store
	recs         *recommendation.Service
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler accepts a nil recs service; recommendations are then skipped.
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
		if stderrors.Is(err, ErrMissingUserID) {
			err = errors.NewNotAuthenticatedError(err.Error())
		}
		done(string(h.errorHandler.HandleJobError(ctx, client, job, err)), time.Since(start).Seconds())
		return
	}

	camunda.CompleteJob(ctx, client, job, output, h.logger)
	done("", time.Since(start).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required to save a profile", ErrMissingUserID)
	}

	update, err := profile.ParsePayload(input.Profile)
	if err != nil {
		return nil, err
	}

	if err := h.profiles.SaveProfile(ctx, userID, update); err != nil {
		return nil, err
	}
	savedAt := time.Now().UTC().Format(time.RFC3339)

	// Recommendations run against the merged record, not the partial update.
	stored, err := h.profiles.GetProfile(ctx, userID)
	if err != nil || stored == nil {
		h.logger.Warn("could not re-read saved profile; using the update", map[string]interface{}{
			"userId": userID,
		})
		stored = &update
	}

	output := &Output{
		UserID:               userID,
		ProfileSaved:         true,
		Profile:              *stored,
		RecommendationStatus: models.RecommendationSkipped,
		SavedAt:              savedAt,
	}

	if h.recs == nil {
		return output, nil
	}
	if !h.config.RecommendOnSave {
		h.recs.Invalidate(ctx, userID)
		return output, nil
	}

	rctx, cancel := h.recommendContext(ctx)
	defer cancel()
	res := h.recs.Refresh(rctx, userID, *stored)
	output.RecommendationStatus = res.Status
	output.Recommendations = res.Recommendations
	output.Notice = res.Notice

	h.logger.Info("profile saved", map[string]interface{}{
		"userId":               userID,
		"recommendationStatus": res.Status,
	})
	return output, nil
}

func (h *Handler) recommendContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.config.RecommendTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.config.RecommendTimeout)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
