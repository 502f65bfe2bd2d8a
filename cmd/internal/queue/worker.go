package queue

import (
	"context"
	"meetapp/cmd/internal/domain/entity"
	"meetapp/cmd/internal/scheduling"
	"time"

	"github.com/labstack/gommon/log"
)

// Handler runs one job. A returned error schedules a retry.
type Handler interface {
	Handle(ctx context.Context, job *entity.Job) error
}

type HandlerFunc func(ctx context.Context, job *entity.Job) error

func (f HandlerFunc) Handle(ctx context.Context, job *entity.Job) error {
	return f(ctx, job)
}

type WorkerOptions struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
	// Backoff is the delay before the first retry; it doubles on each later one
	// up to MaxBackoff.
	Backoff    time.Duration
	MaxBackoff time.Duration
}

const defaultMaxBackoff = 6 * time.Hour

func DefaultWorkerOptions() WorkerOptions {
	return WorkerOptions{
		PollInterval: 5 * time.Second,
		BatchSize:    20,
		MaxAttempts:  5,
		Backoff:      30 * time.Second,
		MaxBackoff:   defaultMaxBackoff,
	}
}

type Worker struct {
	jobs     JobRepository
	clock    scheduling.Clock
	opts     WorkerOptions
	handlers map[string]Handler
}

func NewWorker(jobs JobRepository, clock scheduling.Clock, opts WorkerOptions) *Worker {
	if opts.MaxBackoff <= 0 {
		opts.MaxBackoff = defaultMaxBackoff
	}
	return &Worker{
		jobs:     jobs,
		clock:    clock,
		opts:     opts,
		handlers: make(map[string]Handler),
	}
}

func (w *Worker) Register(kind string, handler Handler) {
	w.handlers[kind] = handler
}

// Run processes due jobs every poll interval until ctx is done.
func (w *Worker) Run(ctx context.Context) {
	log.Infof("job worker started, polling every %s", w.opts.PollInterval)
	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	for {
		if _, err := w.ProcessDue(ctx); err != nil {
			log.Errorf("failed to process due jobs: %v", err)
		}

		select {
		case <-ctx.Done():
			log.Info("job worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// ProcessDue runs one batch of due jobs and returns how many were attempted.
func (w *Worker) ProcessDue(ctx context.Context) (int, error) {
	jobs, err := w.jobs.FindDue(ctx, w.clock.Now().UnixMilli(), w.opts.BatchSize)
	if err != nil {
		return 0, err
	}

	for _, job := range jobs {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		w.process(ctx, job)
	}
	return len(jobs), nil
}

func (w *Worker) process(ctx context.Context, job *entity.Job) {
	handler, ok := w.handlers[job.Kind]
	if !ok {
		log.Warnf("no handler for job %s of kind %s", job.ID, job.Kind)
		job.Status = entity.JobFailed
		job.LastError = "no handler registered for " + job.Kind
		w.save(ctx, job)
		return
	}

	job.Attempts++
	err := handler.Handle(ctx, job)
	now := w.clock.Now()

	switch {
	case err == nil:
		job.Status = entity.JobDone
		job.LastError = ""
	case job.Attempts >= w.opts.MaxAttempts:
		log.Errorf("job %s (%s) failed for good after %d attempts: %v", job.ID, job.Kind, job.Attempts, err)
		job.Status = entity.JobFailed
		job.LastError = err.Error()
	default:
		delay := w.backoff(job.Attempts)
		log.Warnf("job %s (%s) failed, retrying in %s: %v", job.ID, job.Kind, delay, err)
		job.LastError = err.Error()
		job.RunAt = now.Add(delay).UnixMilli()
	}
	job.UpdatedAt = now.UnixMilli()
	w.save(ctx, job)
}

func (w *Worker) backoff(attempts int) time.Duration {
	delay := w.opts.Backoff
	for i := 1; i < attempts && delay < w.opts.MaxBackoff; i++ {
		delay *= 2
	}
	return min(delay, w.opts.MaxBackoff)
}

func (w *Worker) save(ctx context.Context, job *entity.Job) {
	if err := w.jobs.Update(ctx, job); err != nil {
		log.Errorf("failed to update job %s: %v", job.ID, err)
	}
}
