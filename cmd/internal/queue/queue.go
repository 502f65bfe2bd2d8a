// Package queue stores background jobs in the database and runs them.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"meetapp/cmd/internal/domain/entity"
	"meetapp/cmd/internal/scheduling"

	"github.com/google/uuid"
)

type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	FindDue(ctx context.Context, now int64, limit int) ([]*entity.Job, error)
	Update(ctx context.Context, job *entity.Job) error
}

// Queue enqueues jobs durably. It satisfies scheduling.Dispatcher.
type Queue struct {
	jobs  JobRepository
	clock scheduling.Clock
}

func New(jobs JobRepository, clock scheduling.Clock) *Queue {
	return &Queue{jobs: jobs, clock: clock}
}

// Enqueue stores a pending job of the given kind. The payload is JSON encoded.
func (q *Queue) Enqueue(ctx context.Context, kind string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", kind, err)
	}

	now := q.clock.Now().UnixMilli()
	job := &entity.Job{
		ID:        uuid.NewString(),
		Kind:      kind,
		Payload:   string(data),
		Status:    entity.JobPending,
		RunAt:     now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := q.jobs.Create(ctx, job); err != nil {
		return fmt.Errorf("failed to store %s job: %w", kind, err)
	}
	return nil
}
