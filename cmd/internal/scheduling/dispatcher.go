package scheduling

import (
	"context"
	"meetapp/cmd/internal/domain/entity"
)

// SubscriptionNotification is the job kind enqueued when a subscription is accepted.
const SubscriptionNotification = "SubscriptionNotification"

// Dispatcher hands a job to a durable queue. Enqueue returns once the job is
// stored; delivery happens later and elsewhere.
type Dispatcher interface {
	Enqueue(ctx context.Context, kind string, payload any) error
}

// SubscriptionNotice is the payload of a SubscriptionNotification job.
type SubscriptionNotice struct {
	MeetupID        int    `json:"meetup_id"`
	MeetupTitle     string `json:"meetup_title"`
	MeetupDate      int64  `json:"meetup_date"`
	OrganizerName   string `json:"organizer_name"`
	OrganizerEmail  string `json:"organizer_email"`
	SubscriberID    int    `json:"subscriber_id"`
	SubscriberName  string `json:"subscriber_name"`
	SubscriberEmail string `json:"subscriber_email"`
}

func NewSubscriptionNotice(meetup *entity.Meetup, subscriber *entity.User) *SubscriptionNotice {
	return &SubscriptionNotice{
		MeetupID:        meetup.ID,
		MeetupTitle:     meetup.Title,
		MeetupDate:      meetup.Date,
		OrganizerName:   meetup.Organizer.Name,
		OrganizerEmail:  meetup.Organizer.Email,
		SubscriberID:    subscriber.ID,
		SubscriberName:  subscriber.Name,
		SubscriberEmail: subscriber.Email,
	}
}
