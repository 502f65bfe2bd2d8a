package service

import (
	"errors"
	"meetapp/cmd/internal/scheduling"
	"meetapp/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

// fromSchedulingError maps a scheduling rejection to its API error. Anything
// unclassified is logged and reported as an internal error.
func fromSchedulingError(err error, action string) apierror.ErrorResponse {
	switch {
	case errors.Is(err, scheduling.ErrNotFound):
		return apierror.NotFoundError
	case errors.Is(err, scheduling.ErrNotAuthorized):
		return apierror.NotAuthorizedError
	case errors.Is(err, scheduling.ErrSelfSubscription):
		return apierror.SelfSubscriptionError
	case errors.Is(err, scheduling.ErrEventElapsed):
		return apierror.EventElapsedError
	case errors.Is(err, scheduling.ErrInvalidSchedule):
		return apierror.InvalidScheduleError
	case errors.Is(err, scheduling.ErrScheduleConflict):
		return apierror.ScheduleConflictError
	case errors.Is(err, scheduling.ErrFileNotFound):
		return apierror.FileNotFoundError
	default:
		log.Errorf("failed to %s: %v", action, err)
		return apierror.InternalServerError
	}
}
