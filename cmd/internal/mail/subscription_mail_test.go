package mail

import (
	"context"
	"encoding/json"
	"errors"
	"meetapp/cmd/internal/domain/entity"
	"meetapp/cmd/internal/scheduling"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	sent []*Message
	err  error
}

func (r *recordingMailer) Send(_ context.Context, msg *Message) error {
	r.sent = append(r.sent, msg)
	return r.err
}

func noticeJob(t *testing.T, notice *scheduling.SubscriptionNotice) *entity.Job {
	t.Helper()
	data, err := json.Marshal(notice)
	require.NoError(t, err)
	return &entity.Job{ID: "job-1", Kind: scheduling.SubscriptionNotification, Payload: string(data)}
}

func TestSubscriptionMail_Handle(t *testing.T) {
	mailer := &recordingMailer{}
	handler := NewSubscriptionMail(mailer)

	job := noticeJob(t, &scheduling.SubscriptionNotice{
		MeetupID:        1,
		MeetupTitle:     "Gophers Night",
		MeetupDate:      time.Date(2030, 1, 1, 18, 0, 0, 0, time.UTC).UnixMilli(),
		OrganizerName:   "Ana",
		OrganizerEmail:  "ana@example.com",
		SubscriberID:    2,
		SubscriberName:  "Bruno",
		SubscriberEmail: "bruno@example.com",
	})

	require.NoError(t, handler.Handle(context.Background(), job))
	require.Len(t, mailer.sent, 1)

	msg := mailer.sent[0]
	assert.Equal(t, "ana@example.com", msg.To)
	assert.Equal(t, `"Ana" <ana@example.com>`, msg.recipient())
	assert.Equal(t, "New subscription to Gophers Night", msg.Subject)
	assert.Contains(t, msg.Body, "Bruno <bruno@example.com>")
	assert.Contains(t, msg.Body, "January 1, 2030 at 18:00 UTC")
}

func TestSubscriptionMail_HandleErrors(t *testing.T) {
	t.Run("bad payload", func(t *testing.T) {
		handler := NewSubscriptionMail(&recordingMailer{})
		err := handler.Handle(context.Background(), &entity.Job{Payload: "{"})
		assert.Error(t, err)
	})

	t.Run("mailer failure is returned for retry", func(t *testing.T) {
		mailer := &recordingMailer{err: errors.New("connection refused")}
		handler := NewSubscriptionMail(mailer)

		err := handler.Handle(context.Background(), noticeJob(t, &scheduling.SubscriptionNotice{MeetupTitle: "x"}))
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestSMTPConfig_Render(t *testing.T) {
	cfg := SMTPConfig{From: "Meetapp <noreply@meetapp.dev>"}
	raw := string(cfg.render(&Message{To: "ana@example.com", ToName: "Ana", Subject: "Hi", Body: "Body"}))

	assert.Contains(t, raw, "From: Meetapp <noreply@meetapp.dev>\r\n")
	assert.Contains(t, raw, "To: \"Ana\" <ana@example.com>\r\n")
	assert.Contains(t, raw, "Subject: Hi\r\n")
	assert.True(t, len(raw) > 4 && raw[len(raw)-4:] == "Body")
}

func TestSMTPConfig_RenderKeepsHeadersIntact(t *testing.T) {
	cfg := SMTPConfig{From: "Meetapp <noreply@meetapp.dev>"}
	raw := string(cfg.render(&Message{
		To:      "ana@example.com",
		ToName:  "Ana\r\nCc: eve@example.com",
		Subject: "New subscription to Go\r\nBcc: eve@example.com",
		Body:    "Body",
	}))

	headers, body, found := strings.Cut(raw, "\r\n\r\n")
	require.True(t, found)
	assert.Equal(t, "Body", body)

	lines := strings.Split(headers, "\r\n")
	assert.Len(t, lines, 5)
	for _, line := range lines {
		assert.NotContains(t, line, "\n")
		assert.False(t, strings.HasPrefix(line, "Bcc:"), line)
		assert.False(t, strings.HasPrefix(line, "Cc:"), line)
	}
	assert.Contains(t, raw, "Subject: =?utf-8?q?")
}
