// Package calendar renders subscriptions as an iCalendar feed.
package calendar

import (
	"errors"
	"fmt"
	"io"
	"meetapp/cmd/internal/domain/entity"
	"time"

	"github.com/emersion/go-ical"
)

const productID = "-//meetapp//subscriptions//EN"

// Meetups have no end; calendar clients get a one hour slot.
const eventDuration = time.Hour

// ErrEmpty is returned for a feed without events, which iCalendar does not allow.
var ErrEmpty = errors.New("calendar has no events")

// Encode writes one VEVENT per subscription. stamp is used as DTSTAMP.
func Encode(w io.Writer, subs []*entity.Subscription, stamp time.Time) error {
	if len(subs) == 0 {
		return ErrEmpty
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	for _, sub := range subs {
		cal.Children = append(cal.Children, toEvent(&sub.Meetup, stamp.UTC()))
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

func toEvent(meetup *entity.Meetup, stamp time.Time) *ical.Component {
	start := meetup.ScheduledAt()

	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, fmt.Sprintf("meetup-%d@meetapp", meetup.ID))
	ve.Props.SetText(ical.PropSummary, meetup.Title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	ve.Props.SetDateTime(ical.PropDateTimeStart, start)
	ve.Props.SetDateTime(ical.PropDateTimeEnd, start.Add(eventDuration))

	if meetup.Description != "" {
		ve.Props.SetText(ical.PropDescription, meetup.Description)
	}
	if meetup.Location != "" {
		ve.Props.SetText(ical.PropLocation, meetup.Location)
	}
	if meetup.Organizer.Email != "" {
		p := ical.NewProp(ical.PropOrganizer)
		p.SetText(fmt.Sprintf("mailto:%s", meetup.Organizer.Email))
		ve.Props.Add(p)
	}
	return ve
}
