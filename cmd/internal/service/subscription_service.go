package service

import (
	"bytes"
	"context"
	"errors"
	"meetapp/cmd/internal/calendar"
	"meetapp/cmd/internal/domain/entity"
	"meetapp/cmd/internal/scheduling"
	"meetapp/cmd/internal/utils"
	"meetapp/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

// calendarLimit caps how many upcoming subscriptions go into one feed.
const calendarLimit = 500

type SubscriptionRepository interface {
	FindUpcomingByUserID(ctx context.Context, userID int, now int64, page entity.Page) ([]*entity.Subscription, int64, error)
}

type SubscriptionPolicy interface {
	Subscribe(ctx context.Context, subscriberID, meetupID int) (*entity.Subscription, error)
	Unsubscribe(ctx context.Context, subscriberID, subscriptionID int) error
}

type SubscriptionsPage struct {
	Subscriptions []*SubscriptionResponse
	TotalPages    int64
}

type DefaultSubscriptionService struct {
	SubscriptionRepo SubscriptionRepository
	Policy           SubscriptionPolicy
	Annotator        ListingAnnotator
	Clock            scheduling.Clock
	PublicURL        string
}

func NewSubscriptionService(subRepo SubscriptionRepository, policy SubscriptionPolicy, annotator ListingAnnotator, clock scheduling.Clock, publicURL string) *DefaultSubscriptionService {
	return &DefaultSubscriptionService{
		SubscriptionRepo: subRepo,
		Policy:           policy,
		Annotator:        annotator,
		Clock:            clock,
		PublicURL:        publicURL,
	}
}

// GetSubscriptions lists the viewer's subscriptions to meetups that did not
// happen yet, ordered by meetup date.
func (s *DefaultSubscriptionService) GetSubscriptions(ctx context.Context, pageNumber int, viewerID int) (*SubscriptionsPage, apierror.ErrorResponse) {
	page := entity.NewPage(pageNumber)
	subs, total, err := s.SubscriptionRepo.FindUpcomingByUserID(ctx, viewerID, s.Clock.Now().UnixMilli(), page)
	if err != nil {
		log.Errorf("failed to list subscriptions of user %d: %v", viewerID, err)
		return nil, apierror.InternalServerError
	}

	meetups := make([]*entity.Meetup, len(subs))
	for i, sub := range subs {
		meetups[i] = &sub.Meetup
	}
	listings, err := s.Annotator.Annotate(ctx, viewerID, meetups, scheduling.OrganizerView)
	if err != nil {
		return nil, fromSchedulingError(err, "annotate subscriptions")
	}

	resp := make([]*SubscriptionResponse, len(subs))
	for i, sub := range subs {
		resp[i] = toSubscriptionResponse(sub)
		resp[i].Meetup = toMeetupResponse(listings[i], s.PublicURL)
	}
	return &SubscriptionsPage{Subscriptions: resp, TotalPages: page.TotalPages(total)}, nil
}

func (s *DefaultSubscriptionService) Subscribe(ctx context.Context, meetupID int, viewerID int) (*SubscriptionResponse, apierror.ErrorResponse) {
	sub, err := s.Policy.Subscribe(ctx, viewerID, meetupID)
	if err != nil {
		return nil, fromSchedulingError(err, "subscribe")
	}
	return toSubscriptionResponse(sub), nil
}

func (s *DefaultSubscriptionService) Unsubscribe(ctx context.Context, id int, viewerID int) apierror.ErrorResponse {
	if err := s.Policy.Unsubscribe(ctx, viewerID, id); err != nil {
		return fromSchedulingError(err, "unsubscribe")
	}
	return nil
}

// GetCalendar renders the viewer's upcoming subscriptions as iCalendar data.
func (s *DefaultSubscriptionService) GetCalendar(ctx context.Context, viewerID int) ([]byte, apierror.ErrorResponse) {
	now := s.Clock.Now()
	page := entity.Page{Number: 1, Size: calendarLimit}
	subs, _, err := s.SubscriptionRepo.FindUpcomingByUserID(ctx, viewerID, now.UnixMilli(), page)
	if err != nil {
		log.Errorf("failed to list subscriptions of user %d: %v", viewerID, err)
		return nil, apierror.InternalServerError
	}

	var buf bytes.Buffer
	err = calendar.Encode(&buf, subs, now)
	if errors.Is(err, calendar.ErrEmpty) {
		return nil, apierror.NoUpcomingMeetupsError
	}
	if err != nil {
		log.Errorf("failed to render calendar of user %d: %v", viewerID, err)
		return nil, apierror.InternalServerError
	}
	return buf.Bytes(), nil
}

func toSubscriptionResponse(sub *entity.Subscription) *SubscriptionResponse {
	return &SubscriptionResponse{
		ID:        sub.ID,
		MeetupID:  sub.MeetupID,
		CreatedAt: utils.FormatEpoch(sub.CreatedAt),
	}
}
