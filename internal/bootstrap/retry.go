// Package bootstrap connects the backing services and builds the task handlers shared by
// the worker manager and the API server.
package bootstrap

import (
	"fmt"
	"time"

	"schemesathi/internal/common/logger"
)

// sleep is replaced in tests.
var sleep = time.Sleep

// RetryWithBackoff runs operation up to maxRetries times, doubling the delay after each failure.
func RetryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}
