// Package apierror holds the error bodies returned by the HTTP API.
// Every failure carries a stable Kind so clients can render a consistent message.
package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse interface {
	error
	Code() int
}

type SimpleError struct {
	Status  int    `json:"-"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *SimpleError) Error() string {
	return e.Message
}

func (e *SimpleError) Code() int {
	return e.Status
}

func NewSimple(status int, message string) *SimpleError {
	return &SimpleError{Status: status, Kind: kindFor(status), Message: message}
}

func newKind(status int, kind, message string) *SimpleError {
	return &SimpleError{Status: status, Kind: kind, Message: message}
}

func kindFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusNotFound:
		return "not_found"
	default:
		return "error"
	}
}

var (
	InternalServerError   = newKind(http.StatusInternalServerError, "internal_error", "Something went wrong on our side")
	MalformedBodyError    = newKind(http.StatusBadRequest, "malformed_body", "Could not understand the request body")
	InvalidAuthTokenError = newKind(http.StatusUnauthorized, "invalid_auth_token", "Missing or invalid authentication token")
	NotFoundError         = newKind(http.StatusNotFound, "not_found", "Resource not found")

	NotAuthorizedError     = newKind(http.StatusUnauthorized, "not_authorized", "You are not the owner of this resource")
	SelfSubscriptionError  = newKind(http.StatusBadRequest, "self_subscription", "You cannot subscribe to a meetup you organize")
	EventElapsedError      = newKind(http.StatusBadRequest, "event_elapsed", "This meetup already happened")
	InvalidScheduleError   = newKind(http.StatusBadRequest, "invalid_schedule", "Meetup date must be in the future")
	ScheduleConflictError  = newKind(http.StatusBadRequest, "schedule_conflict", "You are already subscribed to a meetup at the same date")
	NoUpcomingMeetupsError = newKind(http.StatusNotFound, "no_upcoming_meetups", "You have no upcoming subscriptions")

	UserAlreadyExistsError    = newKind(http.StatusBadRequest, "user_already_exists", "A user with this email already exists")
	CredentialsMismatch       = newKind(http.StatusUnauthorized, "credentials_mismatch", "Email or password does not match")
	OldPasswordMismatch       = newKind(http.StatusUnauthorized, "old_password_mismatch", "Old password does not match")
	PasswordConfirmationError = newKind(http.StatusBadRequest, "password_confirmation", "Password confirmation does not match")
	FileNotFoundError         = newKind(http.StatusBadRequest, "file_not_found", "Referenced file does not exist")
	FileTooLargeError         = newKind(http.StatusRequestEntityTooLarge, "file_too_large", "File exceeds the upload limit")
	UnsupportedFileError      = newKind(http.StatusBadRequest, "unsupported_file", "Only image uploads are accepted")
	MissingUploadFieldError   = newKind(http.StatusBadRequest, "missing_param", "Missing multipart field 'file'")
)

func NewMissingParamError(param string) *SimpleError {
	return newKind(http.StatusBadRequest, "missing_param", fmt.Sprintf("Missing parameter '%s'", param))
}

func NewInvalidParamTypeError(param, expected string) *SimpleError {
	return newKind(http.StatusBadRequest, "invalid_param_type", fmt.Sprintf("Parameter '%s' must be of type %s", param, expected))
}

// ValidationError lists the rule each invalid field broke.
type ValidationError struct {
	SimpleError
	Fields map[string]string `json:"fields"`
}

func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MalformedBodyError
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[fe.Field()] = rule
	}

	return &ValidationError{
		SimpleError: SimpleError{
			Status:  http.StatusBadRequest,
			Kind:    "validation_failed",
			Message: "Some fields are invalid, please check them again",
		},
		Fields: fields,
	}
}
