package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"daybooker/shared/constant"
	"daybooker/shared/failure"
	"daybooker/transport/http/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	return body
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "client failure keeps its message",
			err:      failure.NoAvailability,
			wantCode: http.StatusConflict,
			wantMsg:  "no availability",
		},
		{
			name:     "not found",
			err:      failure.NotFound("hotel not found"),
			wantCode: http.StatusNotFound,
			wantMsg:  "hotel not found",
		},
		{
			name:     "plain error is masked",
			err:      errors.New("pq: relation \"bookings\" does not exist"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  constant.ResponseErrorInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			response.WithError(recorder, tt.err)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, constant.ContentTypeJSON, recorder.Header().Get(constant.RequestHeaderContentType))
			assert.Equal(t, tt.wantMsg, decode(t, recorder)["error"])
		})
	}
}

func TestWithJSON(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithJSON(recorder, http.StatusCreated, map[string]string{"reference": "DB-7K2Q9M"})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, map[string]any{"reference": "DB-7K2Q9M"}, decode(t, recorder)["data"])
}

func TestWithUnhealthy(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithUnhealthy(recorder)

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, constant.ResponseErrorUnhealthy, decode(t, recorder)["message"])
}
