package scheduling

import (
	"context"
	"time"
)

// ConflictChecker tells whether a subscriber is already booked at an instant.
// Only identical instants conflict; meetups one millisecond apart never do.
type ConflictChecker struct {
	finder ConflictFinder
}

func NewConflictChecker(finder ConflictFinder) *ConflictChecker {
	return &ConflictChecker{finder: finder}
}

func (c *ConflictChecker) HasConflict(ctx context.Context, subscriberID int, at time.Time) (bool, error) {
	sub, err := c.finder.FindConflict(ctx, subscriberID, at.UnixMilli())
	if err != nil {
		return false, storeFailure("find subscription conflict", err)
	}
	return sub != nil, nil
}
