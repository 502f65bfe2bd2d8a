package service

import (
	"context"
	"meetapp/cmd/internal/utils/apierror"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeetupService_CreateMeetup(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	owner := e.user(t, "ana")
	file := e.banner(t)

	req := &CreateMeetupRequest{
		Title:       "  Go night  ",
		Description: "talks",
		Location:    "hall",
		Date:        "2030-03-05T18:00:00Z",
		FileID:      file.ID,
	}
	resp, apierr := e.meetups.CreateMeetup(ctx, req, owner.ID)
	require.Nil(t, apierr)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "Go night", resp.Title)
	assert.Equal(t, "2030-03-05T18:00:00Z", resp.Date)
	assert.False(t, resp.Past)
	assert.Nil(t, resp.CanSubscribe)
	require.NotNil(t, resp.FileID)
	assert.Equal(t, file.ID, *resp.FileID)
}

func TestMeetupService_CreateMeetupRejections(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	owner := e.user(t, "ana")
	file := e.banner(t)

	valid := func() *CreateMeetupRequest {
		return &CreateMeetupRequest{Title: "t", Description: "d", Location: "l", Date: "2030-03-05T18:00:00Z", FileID: file.ID}
	}

	t.Run("past date", func(t *testing.T) {
		req := valid()
		req.Date = "2030-02-01T18:00:00Z"
		_, apierr := e.meetups.CreateMeetup(ctx, req, owner.ID)
		assert.Equal(t, apierror.InvalidScheduleError, apierr)
	})

	t.Run("date equal to now", func(t *testing.T) {
		req := valid()
		req.Date = testNow.Format(time.RFC3339)
		_, apierr := e.meetups.CreateMeetup(ctx, req, owner.ID)
		assert.Equal(t, apierror.InvalidScheduleError, apierr)
	})

	t.Run("unknown file", func(t *testing.T) {
		req := valid()
		req.FileID = 999
		_, apierr := e.meetups.CreateMeetup(ctx, req, owner.ID)
		assert.Equal(t, apierror.FileNotFoundError, apierr)
	})

	t.Run("invalid fields", func(t *testing.T) {
		req := valid()
		req.Title = "   "
		req.Date = "next friday"
		_, apierr := e.meetups.CreateMeetup(ctx, req, owner.ID)
		require.NotNil(t, apierr)
		assert.Equal(t, http.StatusBadRequest, apierr.Code())

		verr, ok := apierr.(*apierror.ValidationError)
		require.True(t, ok)
		assert.Equal(t, "required", verr.Fields["title"])
		assert.Equal(t, "iso8601", verr.Fields["date"])
	})
}

func TestMeetupService_GetMeetups(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	viewer := e.user(t, "viewer")
	other := e.user(t, "other")

	e.meetup(t, viewer, testNow.Add(time.Hour))
	booked := e.meetup(t, other, testNow.Add(24*time.Hour))
	clash := e.meetup(t, other, testNow.Add(24*time.Hour))
	e.meetup(t, other, testNow.Add(48*time.Hour))

	_, apierr := e.subscriptions.Subscribe(ctx, booked.ID, viewer.ID)
	require.Nil(t, apierr)

	page, apierr := e.meetups.GetMeetups(ctx, &MeetupQuery{Page: 1}, viewer.ID)
	require.Nil(t, apierr)
	assert.EqualValues(t, 1, page.TotalPages)
	require.Len(t, page.Meetups, 3)

	byID := make(map[int]*MeetupResponse)
	for _, m := range page.Meetups {
		require.NotNil(t, m.CanSubscribe)
		require.NotNil(t, m.Organizer)
		assert.Equal(t, "other", m.Organizer.Name)
		byID[m.ID] = m
	}
	assert.False(t, *byID[booked.ID].CanSubscribe)
	assert.False(t, *byID[clash.ID].CanSubscribe)

	day, apierr := e.meetups.GetMeetups(ctx, &MeetupQuery{Date: "2030-03-03", Page: 1}, viewer.ID)
	require.Nil(t, apierr)
	require.Len(t, day.Meetups, 1)
	assert.True(t, *day.Meetups[0].CanSubscribe)

	_, apierr = e.meetups.GetMeetups(ctx, &MeetupQuery{Date: "03/03/2030"}, viewer.ID)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())
}

func TestMeetupService_GetMeetupsPaginates(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	viewer := e.user(t, "viewer")
	other := e.user(t, "other")

	for i := 1; i <= 11; i++ {
		e.meetup(t, other, testNow.Add(time.Duration(i)*time.Hour))
	}

	first, apierr := e.meetups.GetMeetups(ctx, &MeetupQuery{Page: 1}, viewer.ID)
	require.Nil(t, apierr)
	assert.Len(t, first.Meetups, 10)
	assert.EqualValues(t, 2, first.TotalPages)

	second, apierr := e.meetups.GetMeetups(ctx, &MeetupQuery{Page: 2}, viewer.ID)
	require.Nil(t, apierr)
	assert.Len(t, second.Meetups, 1)
}

func TestMeetupService_GetOrganizing(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	owner := e.user(t, "owner")

	e.meetup(t, owner, testNow.Add(time.Hour))
	e.meetup(t, owner, testNow.Add(-time.Hour))

	meetups, apierr := e.meetups.GetOrganizing(ctx, owner.ID)
	require.Nil(t, apierr)
	require.Len(t, meetups, 2)
	assert.True(t, meetups[0].Past)
	assert.False(t, meetups[1].Past)
	for _, m := range meetups {
		assert.Nil(t, m.CanSubscribe)
	}
}

func TestMeetupService_UpdateMeetup(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	owner := e.user(t, "owner")
	other := e.user(t, "other")
	m := e.meetup(t, owner, testNow.Add(time.Hour))

	title := "Rust night"
	resp, apierr := e.meetups.UpdateMeetup(ctx, m.ID, &UpdateMeetupRequest{Title: &title}, owner.ID)
	require.Nil(t, apierr)
	assert.Equal(t, "Rust night", resp.Title)
	assert.Equal(t, "hall", resp.Location)
	require.NotNil(t, resp.Organizer)
	assert.Equal(t, "owner", resp.Organizer.Name)

	_, apierr = e.meetups.UpdateMeetup(ctx, m.ID, &UpdateMeetupRequest{Title: &title}, other.ID)
	assert.Equal(t, apierror.NotAuthorizedError, apierr)

	past := "2029-01-01T00:00:00Z"
	_, apierr = e.meetups.UpdateMeetup(ctx, m.ID, &UpdateMeetupRequest{Date: &past}, owner.ID)
	assert.Equal(t, apierror.InvalidScheduleError, apierr)

	missing := 42
	_, apierr = e.meetups.UpdateMeetup(ctx, m.ID, &UpdateMeetupRequest{FileID: &missing}, owner.ID)
	assert.Equal(t, apierror.FileNotFoundError, apierr)

	_, apierr = e.meetups.UpdateMeetup(ctx, 999, &UpdateMeetupRequest{Title: &title}, owner.ID)
	assert.Equal(t, apierror.NotFoundError, apierr)

	e.now = testNow.Add(2 * time.Hour)
	_, apierr = e.meetups.UpdateMeetup(ctx, m.ID, &UpdateMeetupRequest{Title: &title}, owner.ID)
	assert.Equal(t, apierror.EventElapsedError, apierr)
}

func TestMeetupService_UpdateMeetupUnknownFileAfterGuards(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	owner := e.user(t, "owner")
	other := e.user(t, "other")
	upcoming := e.meetup(t, owner, testNow.Add(time.Hour))
	elapsed := e.meetup(t, owner, testNow.Add(-time.Hour))

	missing := 42
	req := &UpdateMeetupRequest{FileID: &missing}

	_, apierr := e.meetups.UpdateMeetup(ctx, elapsed.ID, req, owner.ID)
	assert.Equal(t, apierror.EventElapsedError, apierr)

	_, apierr = e.meetups.UpdateMeetup(ctx, upcoming.ID, req, other.ID)
	assert.Equal(t, apierror.NotAuthorizedError, apierr)

	_, apierr = e.meetups.UpdateMeetup(ctx, 999, req, owner.ID)
	assert.Equal(t, apierror.NotFoundError, apierr)

	_, apierr = e.meetups.UpdateMeetup(ctx, upcoming.ID, req, owner.ID)
	assert.Equal(t, apierror.FileNotFoundError, apierr)
}

func TestMeetupService_DeleteMeetup(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	owner := e.user(t, "owner")
	other := e.user(t, "other")
	m := e.meetup(t, owner, testNow.Add(time.Hour))
	old := e.meetup(t, owner, testNow.Add(-time.Hour))

	assert.Equal(t, apierror.NotAuthorizedError, e.meetups.DeleteMeetup(ctx, m.ID, other.ID))
	assert.Equal(t, apierror.EventElapsedError, e.meetups.DeleteMeetup(ctx, old.ID, owner.ID))
	assert.Nil(t, e.meetups.DeleteMeetup(ctx, m.ID, owner.ID))
	assert.Equal(t, apierror.NotFoundError, e.meetups.DeleteMeetup(ctx, m.ID, owner.ID))
}
