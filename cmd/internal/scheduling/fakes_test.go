package scheduling

import (
	"context"
	"meetapp/cmd/internal/domain/entity"
	"time"
)

type fakeMeetups struct {
	rows    map[int]*entity.Meetup
	users   *fakeUsers
	nextID  int
	findErr error
	saves   int
}

func newFakeMeetups(users *fakeUsers) *fakeMeetups {
	return &fakeMeetups{rows: make(map[int]*entity.Meetup), users: users}
}

func (f *fakeMeetups) add(ownerID int, at time.Time) *entity.Meetup {
	f.nextID++
	m := &entity.Meetup{ID: f.nextID, Title: "meetup", UserID: ownerID, Date: at.UnixMilli()}
	f.rows[m.ID] = m
	return m
}

func (f *fakeMeetups) FindByID(_ context.Context, id int) (*entity.Meetup, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	m, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	if owner, ok := f.users.rows[m.UserID]; ok {
		cp.Organizer = *owner
	}
	return &cp, nil
}

func (f *fakeMeetups) Save(_ context.Context, meetup *entity.Meetup) error {
	f.saves++
	if meetup.ID == 0 {
		f.nextID++
		meetup.ID = f.nextID
	}
	cp := *meetup
	f.rows[meetup.ID] = &cp
	return nil
}

func (f *fakeMeetups) Delete(_ context.Context, meetup *entity.Meetup) error {
	delete(f.rows, meetup.ID)
	return nil
}

type fakeSubscriptions struct {
	rows        map[int]*entity.Subscription
	meetups     *fakeMeetups
	nextID      int
	conflictErr error
	saveErr     error
	saves       int
}

func newFakeSubscriptions(meetups *fakeMeetups) *fakeSubscriptions {
	return &fakeSubscriptions{rows: make(map[int]*entity.Subscription), meetups: meetups}
}

func (f *fakeSubscriptions) FindByID(_ context.Context, id int) (*entity.Subscription, error) {
	s, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	if m, ok := f.meetups.rows[s.MeetupID]; ok {
		cp.Meetup = *m
	}
	return &cp, nil
}

func (f *fakeSubscriptions) FindConflict(_ context.Context, userID int, date int64) (*entity.Subscription, error) {
	if f.conflictErr != nil {
		return nil, f.conflictErr
	}
	for _, s := range f.rows {
		m, ok := f.meetups.rows[s.MeetupID]
		if ok && s.UserID == userID && m.Date == date {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSubscriptions) Save(_ context.Context, sub *entity.Subscription) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	if sub.ID == 0 {
		f.nextID++
		sub.ID = f.nextID
	}
	cp := *sub
	f.rows[sub.ID] = &cp
	return nil
}

func (f *fakeSubscriptions) Delete(_ context.Context, sub *entity.Subscription) error {
	delete(f.rows, sub.ID)
	return nil
}

type fakeUsers struct {
	rows map[int]*entity.User
}

func newFakeUsers(ids ...int) *fakeUsers {
	f := &fakeUsers{rows: make(map[int]*entity.User)}
	for _, id := range ids {
		f.rows[id] = &entity.User{ID: id, Name: "user", Email: "user@example.com"}
	}
	return f
}

func (f *fakeUsers) FindByID(_ context.Context, id int) (*entity.User, error) {
	u, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

type fakeFiles struct {
	rows    map[int]*entity.File
	findErr error
}

func newFakeFiles(ids ...int) *fakeFiles {
	f := &fakeFiles{rows: make(map[int]*entity.File)}
	for _, id := range ids {
		f.rows[id] = &entity.File{ID: id, Name: "banner.png", Path: "banner.png"}
	}
	return f
}

func (f *fakeFiles) FindByID(_ context.Context, id int) (*entity.File, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	file, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return file, nil
}

type enqueued struct {
	kind    string
	payload any
	// storedRows is how many subscriptions the store held when Enqueue ran.
	storedRows int
}

type fakeDispatcher struct {
	subscriptions *fakeSubscriptions
	calls         []enqueued
	err           error
}

func (f *fakeDispatcher) Enqueue(_ context.Context, kind string, payload any) error {
	f.calls = append(f.calls, enqueued{kind: kind, payload: payload, storedRows: len(f.subscriptions.rows)})
	return f.err
}

// fixture wires a policy over fakes with users 1, 2 and 3, file 4 and a movable clock.
type fixture struct {
	now           time.Time
	users         *fakeUsers
	meetups       *fakeMeetups
	subscriptions *fakeSubscriptions
	files         *fakeFiles
	dispatcher    *fakeDispatcher
	policy        *Policy
	annotator     *Annotator
}

func newFixture(now time.Time) *fixture {
	f := &fixture{now: now}
	f.users = newFakeUsers(1, 2, 3)
	f.meetups = newFakeMeetups(f.users)
	f.subscriptions = newFakeSubscriptions(f.meetups)
	f.files = newFakeFiles(4)
	f.dispatcher = &fakeDispatcher{subscriptions: f.subscriptions}

	clock := ClockFunc(func() time.Time { return f.now })
	f.policy = NewPolicy(f.meetups, f.subscriptions, f.users, f.files, f.dispatcher, clock)
	f.annotator = NewAnnotator(f.subscriptions, clock)
	return f
}
