package failure

import (
	"errors"
	"net/http"
)

// Failure carries the HTTP status a handler should answer with.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	ForbiddenError      = New(http.StatusForbidden, "You don't have the required permissions")
	NotHotelManager     = New(http.StatusForbidden, "you do not manage this hotel")
	NotBookingOwner     = New(http.StatusForbidden, "you do not own this booking")
	NoAvailability      = New(http.StatusConflict, "no availability")
	AlreadyReviewed     = New(http.StatusConflict, "booking already reviewed")
	InvalidRefreshToken = New(http.StatusUnauthorized, "invalid refresh token")
)

func New(code int, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

func (e *Failure) Error() string {
	return e.Message
}

// Is matches failures by code and message so sentinels survive wrapping.
func (e *Failure) Is(target error) bool {
	var other *Failure
	if !errors.As(target, &other) {
		return false
	}

	return e.Code == other.Code && e.Message == other.Message
}

// BadRequest returns nil when err is nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

// InternalError returns nil when err is nil.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusInternalServerError, err.Error())
}

// GetCode defaults to 500 for errors that are not failures.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
