package scheduling

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("meetup or subscription not found")
	ErrNotAuthorized    = errors.New("not the owner")
	ErrSelfSubscription = errors.New("cannot subscribe to own meetup")
	ErrEventElapsed     = errors.New("meetup already happened")
	ErrInvalidSchedule  = errors.New("meetup date must be in the future")
	ErrScheduleConflict = errors.New("already subscribed to a meetup at the same date")
	ErrFileNotFound     = errors.New("banner file not found")
	ErrStoreFailure     = errors.New("store failure")
)

// StoreError wraps an I/O error returned by a store collaborator.
// errors.Is(err, ErrStoreFailure) matches it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreFailure
}

func storeFailure(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
