package camunda

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"schemesathi/internal/common/errors"
	"schemesathi/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// CommandTimeout bounds the complete command sent after a handler finishes.
const CommandTimeout = 10 * time.Second

// DecodeVariables unmarshals the job variables into v. Failures are VALIDATION_FAILED.
func DecodeVariables(job entities.Job, v interface{}) error {
	if err := json.Unmarshal([]byte(job.Variables), v); err != nil {
		return errors.NewValidationError(fmt.Sprintf("parse input: %v", err))
	}
	return nil
}

// commandContext keeps ctx values but not its deadline, so a handler that used up its own
// timeout can still report the result.
func commandContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), CommandTimeout)
}

// CompleteJob completes job with output as its variables.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}, log logger.Logger) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		log.Error("failed to create complete job command", map[string]interface{}{
			"error":  err.Error(),
			"jobKey": job.Key,
		})
		return
	}

	sendCtx, cancel := commandContext(ctx)
	defer cancel()

	if _, err := cmd.Send(sendCtx); err != nil {
		log.Error("failed to send complete job command", map[string]interface{}{
			"error":  err.Error(),
			"jobKey": job.Key,
		})
		return
	}
	log.Info("job completed successfully", map[string]interface{}{
		"jobKey": job.Key,
	})
}
