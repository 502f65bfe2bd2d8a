package scheduling

import (
	"context"
	"meetapp/cmd/internal/domain/entity"
	"time"

	"github.com/labstack/gommon/log"
)

// MeetupDraft carries the fields of a meetup being created.
type MeetupDraft struct {
	Title       string
	Description string
	Location    string
	Date        time.Time
	FileID      *int
}

// MeetupPatch carries the fields of a meetup being updated. Nil fields are left untouched.
type MeetupPatch struct {
	Title       *string
	Description *string
	Location    *string
	Date        *time.Time
	FileID      *int
}

// Policy orchestrates the legality checks of subscription and meetup changes.
// Each call is re-derived from the store; nothing is held between calls and no
// locking is done, so two concurrent subscriptions of one subscriber at the same
// instant may both pass the conflict check.
type Policy struct {
	meetups       MeetupStore
	subscriptions SubscriptionStore
	users         UserStore
	files         FileStore
	conflicts     *ConflictChecker
	dispatcher    Dispatcher
	clock         Clock
}

func NewPolicy(meetups MeetupStore, subscriptions SubscriptionStore, users UserStore, files FileStore, dispatcher Dispatcher, clock Clock) *Policy {
	return &Policy{
		meetups:       meetups,
		subscriptions: subscriptions,
		users:         users,
		files:         files,
		conflicts:     NewConflictChecker(subscriptions),
		dispatcher:    dispatcher,
		clock:         clock,
	}
}

// Subscribe subscribes subscriberID to meetupID and enqueues a notification to
// the organizer. A failed enqueue is logged; the subscription stays.
func (p *Policy) Subscribe(ctx context.Context, subscriberID, meetupID int) (*entity.Subscription, error) {
	meetup, err := p.loadMeetup(ctx, meetupID)
	if err != nil {
		return nil, err
	}

	if meetup.UserID == subscriberID {
		return nil, ErrSelfSubscription
	}

	if IsPast(meetup.ScheduledAt(), p.clock.Now()) {
		return nil, ErrEventElapsed
	}

	conflict, err := p.conflicts.HasConflict(ctx, subscriberID, meetup.ScheduledAt())
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrScheduleConflict
	}

	subscriber, err := p.users.FindByID(ctx, subscriberID)
	if err != nil {
		return nil, storeFailure("find subscriber", err)
	}
	if subscriber == nil {
		return nil, ErrNotFound
	}

	now := p.clock.Now().UnixMilli()
	sub := &entity.Subscription{
		UserID:    subscriberID,
		MeetupID:  meetup.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.subscriptions.Save(ctx, sub); err != nil {
		return nil, storeFailure("create subscription", err)
	}
	sub.Meetup = *meetup
	sub.Subscriber = *subscriber

	notice := NewSubscriptionNotice(meetup, subscriber)
	if err := p.dispatcher.Enqueue(ctx, SubscriptionNotification, notice); err != nil {
		log.Errorf("failed to enqueue notification for subscription %d: %v", sub.ID, err)
	}
	return sub, nil
}

// Unsubscribe removes a subscription held by subscriberID. No notification is sent.
func (p *Policy) Unsubscribe(ctx context.Context, subscriberID, subscriptionID int) error {
	sub, err := p.subscriptions.FindByID(ctx, subscriptionID)
	if err != nil {
		return storeFailure("find subscription", err)
	}
	if sub == nil {
		return ErrNotFound
	}

	if sub.UserID != subscriberID {
		return ErrNotAuthorized
	}

	if IsPast(sub.Meetup.ScheduledAt(), p.clock.Now()) {
		return ErrEventElapsed
	}

	if err := p.subscriptions.Delete(ctx, sub); err != nil {
		return storeFailure("delete subscription", err)
	}
	return nil
}

func (p *Policy) CreateMeetup(ctx context.Context, ownerID int, draft *MeetupDraft) (*entity.Meetup, error) {
	now := p.clock.Now()
	if !draft.Date.After(now) {
		return nil, ErrInvalidSchedule
	}

	if err := p.checkFile(ctx, draft.FileID); err != nil {
		return nil, err
	}

	meetup := &entity.Meetup{
		Title:       draft.Title,
		Description: draft.Description,
		Location:    draft.Location,
		Date:        draft.Date.UnixMilli(),
		UserID:      ownerID,
		FileID:      draft.FileID,
		CreatedAt:   now.UnixMilli(),
		UpdatedAt:   now.UnixMilli(),
	}
	if err := p.meetups.Save(ctx, meetup); err != nil {
		return nil, storeFailure("create meetup", err)
	}
	return meetup, nil
}

// UpdateMeetup applies patch to a meetup owned by requesterID and returns the
// stored result.
func (p *Policy) UpdateMeetup(ctx context.Context, requesterID, meetupID int, patch *MeetupPatch) (*entity.Meetup, error) {
	meetup, err := p.ownedMeetup(ctx, requesterID, meetupID)
	if err != nil {
		return nil, err
	}

	now := p.clock.Now()
	if patch.Date != nil && !patch.Date.After(now) {
		return nil, ErrInvalidSchedule
	}

	if err := p.checkFile(ctx, patch.FileID); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		meetup.Title = *patch.Title
	}
	if patch.Description != nil {
		meetup.Description = *patch.Description
	}
	if patch.Location != nil {
		meetup.Location = *patch.Location
	}
	if patch.Date != nil {
		meetup.Date = patch.Date.UnixMilli()
	}
	if patch.FileID != nil {
		meetup.FileID = patch.FileID
	}
	meetup.UpdatedAt = now.UnixMilli()

	if err := p.meetups.Save(ctx, meetup); err != nil {
		return nil, storeFailure("update meetup", err)
	}

	updated, err := p.meetups.FindByID(ctx, meetup.ID)
	if err != nil {
		return nil, storeFailure("find meetup", err)
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

func (p *Policy) DeleteMeetup(ctx context.Context, requesterID, meetupID int) error {
	meetup, err := p.ownedMeetup(ctx, requesterID, meetupID)
	if err != nil {
		return err
	}

	if err := p.meetups.Delete(ctx, meetup); err != nil {
		return storeFailure("delete meetup", err)
	}
	return nil
}

// ownedMeetup loads a meetup that requesterID may still change.
func (p *Policy) ownedMeetup(ctx context.Context, requesterID, meetupID int) (*entity.Meetup, error) {
	meetup, err := p.loadMeetup(ctx, meetupID)
	if err != nil {
		return nil, err
	}

	if meetup.UserID != requesterID {
		return nil, ErrNotAuthorized
	}

	if IsPast(meetup.ScheduledAt(), p.clock.Now()) {
		return nil, ErrEventElapsed
	}
	return meetup, nil
}

func (p *Policy) loadMeetup(ctx context.Context, meetupID int) (*entity.Meetup, error) {
	meetup, err := p.meetups.FindByID(ctx, meetupID)
	if err != nil {
		return nil, storeFailure("find meetup", err)
	}
	if meetup == nil {
		return nil, ErrNotFound
	}
	return meetup, nil
}

// checkFile verifies that a referenced banner exists. A nil id references nothing.
func (p *Policy) checkFile(ctx context.Context, fileID *int) error {
	if fileID == nil {
		return nil
	}

	file, err := p.files.FindByID(ctx, *fileID)
	if err != nil {
		return storeFailure("find file", err)
	}
	if file == nil {
		return ErrFileNotFound
	}
	return nil
}
