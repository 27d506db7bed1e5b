package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"daybooker/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"bad request", failure.BadRequestFromString("invalid date"), http.StatusBadRequest, "invalid date"},
		{"bad request from error", failure.BadRequest(errors.New("start must be before end")), http.StatusBadRequest, "start must be before end"},
		{"unauthorized", failure.Unauthorized("Missing authorization header"), http.StatusUnauthorized, "Missing authorization header"},
		{"forbidden", failure.Forbidden("admins only"), http.StatusForbidden, "admins only"},
		{"not found", failure.NotFound("hotel not found"), http.StatusNotFound, "hotel not found"},
		{"conflict", failure.Conflict("promotion code already exists"), http.StatusConflict, "promotion code already exists"},
		{"internal", failure.InternalError(errors.New("boom")), http.StatusInternalServerError, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.EqualError(t, tt.err, tt.msg)
		})
	}
}

func TestNilPassthrough(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("create booking: %w", failure.NoAvailability)

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
}

func TestIs(t *testing.T) {
	wrapped := fmt.Errorf("cancel booking: %w", failure.NotBookingOwner)

	assert.ErrorIs(t, wrapped, failure.NotBookingOwner)
	assert.ErrorIs(t, failure.Forbidden("you do not manage this hotel"), failure.NotHotelManager)
	assert.NotErrorIs(t, wrapped, failure.NotHotelManager)
	assert.NotErrorIs(t, errors.New("you do not own this booking"), failure.NotBookingOwner)
}
