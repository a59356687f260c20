package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestJobStarted(t *testing.T) {
	done := JobStarted("test-task")
	assert.Equal(t, 1.0, testutil.ToFloat64(WorkerJobsActive.WithLabelValues("test-task")))

	done("", 0.01)
	assert.Equal(t, 0.0, testutil.ToFloat64(WorkerJobsActive.WithLabelValues("test-task")))
	assert.Equal(t, 1.0, testutil.ToFloat64(WorkerJobsCompleted.WithLabelValues("test-task")))

	JobStarted("test-task")("SCHEME_NOT_FOUND", 0.02)
	assert.Equal(t, 1.0, testutil.ToFloat64(WorkerJobsFailed.WithLabelValues("test-task", "SCHEME_NOT_FOUND")))
}
