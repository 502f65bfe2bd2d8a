package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"meetapp/cmd/internal/domain/entity"
	"meetapp/cmd/internal/scheduling"
	"time"
)

// SubscriptionMail tells an organizer that someone subscribed to their meetup.
type SubscriptionMail struct {
	mailer Mailer
}

func NewSubscriptionMail(mailer Mailer) *SubscriptionMail {
	return &SubscriptionMail{mailer: mailer}
}

func (s *SubscriptionMail) Handle(ctx context.Context, job *entity.Job) error {
	var notice scheduling.SubscriptionNotice
	if err := json.Unmarshal([]byte(job.Payload), &notice); err != nil {
		return fmt.Errorf("failed to decode subscription notice: %w", err)
	}
	return s.mailer.Send(ctx, s.compose(&notice))
}

func (s *SubscriptionMail) compose(n *scheduling.SubscriptionNotice) *Message {
	date := time.UnixMilli(n.MeetupDate).UTC().Format("January 2, 2006 at 15:04 MST")
	body := fmt.Sprintf(
		"Hello %s,\n\n%s <%s> subscribed to your meetup \"%s\" on %s.\n",
		n.OrganizerName, n.SubscriberName, n.SubscriberEmail, n.MeetupTitle, date,
	)
	return &Message{
		To:      n.OrganizerEmail,
		ToName:  n.OrganizerName,
		Subject: "New subscription to " + n.MeetupTitle,
		Body:    body,
	}
}
