package scheduling

import (
	"context"
	"meetapp/cmd/internal/domain/entity"
)

// Stores return (nil, nil) when a record does not exist.

type MeetupStore interface {
	FindByID(ctx context.Context, id int) (*entity.Meetup, error)
	Save(ctx context.Context, meetup *entity.Meetup) error
	Delete(ctx context.Context, meetup *entity.Meetup) error
}

type ConflictFinder interface {
	FindConflict(ctx context.Context, userID int, date int64) (*entity.Subscription, error)
}

type SubscriptionStore interface {
	ConflictFinder
	FindByID(ctx context.Context, id int) (*entity.Subscription, error)
	Save(ctx context.Context, sub *entity.Subscription) error
	Delete(ctx context.Context, sub *entity.Subscription) error
}

type FileStore interface {
	FindByID(ctx context.Context, id int) (*entity.File, error)
}

type UserStore interface {
	FindByID(ctx context.Context, id int) (*entity.User, error)
}
