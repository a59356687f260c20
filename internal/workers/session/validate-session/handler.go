package validatesession

import (
	"context"
	"strings"
	"time"

	"schemesathi/internal/common/auth"
	"schemesathi/internal/common/camunda"
	"schemesathi/internal/common/errors"
	"schemesathi/internal/common/logger"
	"schemesathi/internal/common/metrics"
	"schemesathi/internal/models"
	"schemesathi/internal/store/profile"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "validate-session"
)

type Handler struct {
	config       *Config
	verifier     auth.SessionVerifier
	contacts     profile.ContactStore
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, verifier auth.SessionVerifier, contacts profile.ContactStore, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		verifier:     verifier,
		contacts:     contacts,
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
	token := strings.TrimSpace(input.Token)
	if token == "" {
		var err error
		if token, err = auth.BearerToken(input.Authorization); err != nil {
			return nil, err
		}
	}

	session, err := h.verifier.Verify(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.IsExpired() {
		return nil, errors.NewNotAuthenticatedError("session expired")
	}

	// Contacts only feed notifications; a failed upsert must not block sign-in.
	if h.contacts != nil {
		contact := models.Contact{UserID: session.UserID, Email: session.Email, Phone: session.Phone, Name: session.Name}
		if err := h.contacts.SaveContact(ctx, contact); err != nil {
			h.logger.Warn("contact upsert failed", map[string]interface{}{
				"userId": session.UserID,
				"error":  err.Error(),
			})
		}
	}

	out := &Output{
		Authenticated: true,
		UserID:        session.UserID,
		Email:         session.Email,
		Phone:         session.Phone,
		Name:          session.Name,
	}
	if !session.ExpiresAt.IsZero() {
		out.ExpiresAt = session.ExpiresAt.UTC().Format(time.RFC3339)
	}

	h.logger.Info("session validated", map[string]interface{}{"userId": session.UserID})
	return out, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
