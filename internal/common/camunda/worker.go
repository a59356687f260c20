package camunda

import (
	"context"
	"sync"
	"time"

	"schemesathi/internal/common/config"
	"schemesathi/internal/common/logger"
	"schemesathi/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.opentelemetry.io/otel/attribute"
)

// HandlerFunc is the signature every task handler exposes as Handle.
type HandlerFunc func(client worker.JobClient, job entities.Job)

// Pool opens one job worker per task type and closes them together on shutdown.
type Pool struct {
	client  zbc.Client
	logger  logger.Logger
	obs     *observability.Observability
	mu      sync.Mutex
	workers map[string]worker.JobWorker
}

func NewPool(client zbc.Client, log logger.Logger) *Pool {
	return &Pool{
		client:  client,
		logger:  log,
		workers: make(map[string]worker.JobWorker),
	}
}

// WithObservability wraps every handler started afterwards in a span and a duration record.
func (p *Pool) WithObservability(obs *observability.Observability) *Pool {
	p.obs = obs
	return p
}

// Start opens a worker for taskType unless it is disabled. It reports whether a worker was opened.
func (p *Pool) Start(taskType string, wcfg config.WorkerConfig, handler HandlerFunc) bool {
	if !wcfg.Enabled {
		p.logger.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.workers[taskType]; exists {
		p.logger.Warn("worker already started", map[string]interface{}{"taskType": taskType})
		return false
	}

	jw := p.client.NewJobWorker().
		JobType(taskType).
		Handler(p.instrument(taskType, handler)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()
	p.workers[taskType] = jw

	p.logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return true
}

func (p *Pool) instrument(taskType string, handler HandlerFunc) worker.JobHandler {
	if p.obs == nil {
		return worker.JobHandler(handler)
	}
	return func(client worker.JobClient, job entities.Job) {
		ctx, span := p.obs.StartSpan(context.Background(), taskType,
			attribute.Int64("job.key", job.Key),
			attribute.Int64("process.instance.key", job.ProcessInstanceKey),
		)
		start := time.Now()
		handler(client, job)
		span.End()

		p.obs.RecordJobProcessed(ctx, taskType, "handled")
		p.obs.RecordJobDuration(ctx, taskType, time.Since(start), "handled")
	}
}

// TaskTypes lists the running workers.
func (p *Pool) TaskTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]string, 0, len(p.workers))
	for t := range p.workers {
		types = append(types, t)
	}
	return types
}

// Close stops every worker and waits for in-flight jobs.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for taskType, jw := range p.workers {
		p.logger.Info("stopping worker", map[string]interface{}{"taskType": taskType})
		jw.Close()
		jw.AwaitClose()
	}
	p.workers = make(map[string]worker.JobWorker)
}
