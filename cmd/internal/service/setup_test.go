package service

import (
	"context"
	"meetapp/cmd/internal/auth"
	"meetapp/cmd/internal/domain/entity"
	"meetapp/cmd/internal/domain/sqlite"
	"meetapp/cmd/internal/domain/sqlite/repository"
	"meetapp/cmd/internal/scheduling"
	"meetapp/cmd/internal/utils/validators"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

const publicURL = "http://meet.test"

var testNow = time.Date(2030, 3, 1, 12, 0, 0, 0, time.UTC)

type recordingDispatcher struct {
	kinds []string
}

func (r *recordingDispatcher) Enqueue(_ context.Context, kind string, _ any) error {
	r.kinds = append(r.kinds, kind)
	return nil
}

// testEnv wires every service over an in-memory database and a movable clock.
type testEnv struct {
	now        time.Time
	dispatcher *recordingDispatcher

	userRepo   *repository.DefaultUserRepository
	meetupRepo *repository.DefaultMeetupRepository
	subRepo    *repository.DefaultSubscriptionRepository
	fileRepo   *repository.DefaultFileRepository

	users         *DefaultUserService
	meetups       *DefaultMeetupService
	subscriptions *DefaultSubscriptionService
	files         *DefaultFileService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sqlite.Init(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})

	validate := validator.New()
	validate.RegisterTagNameFunc(validators.JSONTagName)
	require.NoError(t, validate.RegisterValidation("iso8601", validators.IsIso8601))

	e := &testEnv{now: testNow, dispatcher: &recordingDispatcher{}}
	clock := scheduling.ClockFunc(func() time.Time { return e.now })

	e.userRepo = repository.NewUserRepository(db)
	e.meetupRepo = repository.NewMeetupRepository(db)
	e.subRepo = repository.NewSubscriptionRepository(db)
	e.fileRepo = repository.NewFileRepository(db)

	policy := scheduling.NewPolicy(e.meetupRepo, e.subRepo, e.userRepo, e.fileRepo, e.dispatcher, clock)
	annotator := scheduling.NewAnnotator(e.subRepo, clock)

	e.users = NewUserService(e.userRepo, auth.NewJWTAuth("test-secret", time.Hour), validate)
	e.meetups = NewMeetupService(e.meetupRepo, policy, annotator, validate, publicURL)
	e.subscriptions = NewSubscriptionService(e.subRepo, policy, annotator, clock, publicURL)
	e.files = NewFileService(e.fileRepo, t.TempDir(), 1<<20, publicURL)
	return e
}

func (e *testEnv) user(t *testing.T, name string) *entity.User {
	t.Helper()
	u := &entity.User{Name: name, Email: name + "@example.com", PasswordHash: "x"}
	require.NoError(t, e.userRepo.Save(context.Background(), u))
	return u
}

func (e *testEnv) banner(t *testing.T) *entity.File {
	t.Helper()
	f := &entity.File{Name: "banner.png", Path: time.Now().Format("150405.000000000") + ".png"}
	require.NoError(t, e.fileRepo.Save(context.Background(), f))
	return f
}

// meetup stores a meetup directly, bypassing the future-date check.
func (e *testEnv) meetup(t *testing.T, owner *entity.User, at time.Time) *entity.Meetup {
	t.Helper()
	m := &entity.Meetup{Title: "Go night", Description: "talks", Location: "hall", Date: at.UnixMilli(), UserID: owner.ID}
	require.NoError(t, e.meetupRepo.Save(context.Background(), m))
	return m
}
