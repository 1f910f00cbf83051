package snapshot

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/noah-isme/isp-backoffice-api/pkg/jobs"
)

const refreshJobType = "snapshot_refresh"

// Refresher dispatches snapshot refreshes onto a worker queue, on a cron
// schedule and on demand.
type Refresher struct {
	registry *Registry
	queue    *jobs.Queue
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewRefresher builds a refresher with workers consuming refresh jobs. onDone may be nil.
func NewRefresher(registry *Registry, workers int, onDone jobs.DoneFunc, logger *zap.Logger) *Refresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Refresher{registry: registry, logger: logger}
	r.queue = jobs.NewQueue("snapshots", r.handle, jobs.QueueConfig{Workers: workers, Logger: logger, OnDone: onDone})
	return r
}

// Start launches the workers and, when spec is non-empty, the cron schedule
// enqueueing a refresh of every resource.
func (r *Refresher) Start(ctx context.Context, spec string) error {
	r.queue.Start(ctx)
	if spec == "" {
		return nil
	}
	r.cron = cron.New()
	if _, err := r.cron.AddFunc(spec, func() {
		for _, resource := range r.registry.Resources() {
			if err := r.Enqueue(resource); err != nil {
				r.logger.Warn("scheduled snapshot refresh not enqueued", zap.String("resource", resource), zap.Error(err))
			}
		}
	}); err != nil {
		r.queue.Stop()
		return fmt.Errorf("schedule snapshot refresh %q: %w", spec, err)
	}
	r.cron.Start()
	return nil
}

// Stop halts the schedule and drains the workers.
func (r *Refresher) Stop() {
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
	r.queue.Stop()
}

// Enqueue schedules one refresh of resource.
func (r *Refresher) Enqueue(resource string) error {
	if _, ok := r.registry.Get(resource); !ok {
		return fmt.Errorf("unknown snapshot %q", resource)
	}
	return r.queue.Enqueue(jobs.Job{ID: uuid.NewString(), Type: refreshJobType, Payload: resource})
}

// Pending reports refreshes queued but not yet started.
func (r *Refresher) Pending() int {
	return r.queue.Pending()
}

func (r *Refresher) handle(ctx context.Context, job jobs.Job) error {
	resource, _ := job.Payload.(string)
	s, ok := r.registry.Get(resource)
	if !ok {
		return fmt.Errorf("unknown snapshot %q", resource)
	}
	return s.Refresh(ctx)
}
