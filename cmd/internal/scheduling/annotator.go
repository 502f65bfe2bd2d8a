package scheduling

import (
	"context"
	"meetapp/cmd/internal/domain/entity"
)

// View selects which derived fields a listing carries.
type View int

const (
	// BrowseView is someone else's meetups: CanSubscribe is computed.
	BrowseView View = iota
	// OrganizerView is the viewer's own meetups: CanSubscribe is left unset.
	OrganizerView
)

// Listing is a meetup decorated with fields derived at read time.
type Listing struct {
	Meetup       *entity.Meetup
	Past         bool
	CanSubscribe *bool
}

type Annotator struct {
	conflicts *ConflictChecker
	clock     Clock
}

func NewAnnotator(finder ConflictFinder, clock Clock) *Annotator {
	return &Annotator{conflicts: NewConflictChecker(finder), clock: clock}
}

// Annotate decorates meetups for viewerID, keeping their order.
func (a *Annotator) Annotate(ctx context.Context, viewerID int, meetups []*entity.Meetup, view View) ([]*Listing, error) {
	now := a.clock.Now()

	listings := make([]*Listing, len(meetups))
	for i, meetup := range meetups {
		listing := &Listing{
			Meetup: meetup,
			Past:   IsPast(meetup.ScheduledAt(), now),
		}

		if view == BrowseView {
			can, err := a.canSubscribe(ctx, viewerID, meetup)
			if err != nil {
				return nil, err
			}
			listing.CanSubscribe = &can
		}
		listings[i] = listing
	}
	return listings, nil
}

func (a *Annotator) canSubscribe(ctx context.Context, viewerID int, meetup *entity.Meetup) (bool, error) {
	if meetup.UserID == viewerID {
		return false, nil
	}

	conflict, err := a.conflicts.HasConflict(ctx, viewerID, meetup.ScheduledAt())
	if err != nil {
		return false, err
	}
	return !conflict, nil
}
