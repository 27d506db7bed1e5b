package validator_test

import (
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"daybooker/shared/constant"
	"daybooker/shared/failure"
	"daybooker/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotRequest struct {
	Label     string `json:"label"      validate:"required,max=20"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time"   validate:"required,clock"`
	Date      string `json:"date"       validate:"omitempty,day"`
	Rooms     int    `json:"rooms"      validate:"min=1,max=20"`
}

type photoRequest struct {
	Image *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpeg,maxfilesize=1"`
}

type avatarRequest struct {
	Image string `json:"image" validate:"required,mimetypes=image/png image/webp,maxfilesize=1"`
}

func fileHeader(contentType string, size int64) *multipart.FileHeader {
	header := textproto.MIMEHeader{}
	header.Set(constant.RequestHeaderContentType, contentType)

	return &multipart.FileHeader{Filename: "room.png", Header: header, Size: size}
}

func TestValidateStruct(t *testing.T) {
	valid := slotRequest{Label: "Morning", StartTime: "09:00", EndTime: "13:00", Date: "2025-06-01", Rooms: 2}

	tests := []struct {
		name    string
		mutate  func(r *slotRequest)
		wantMsg string
	}{
		{name: "valid", mutate: func(*slotRequest) {}},
		{name: "missing label", mutate: func(r *slotRequest) { r.Label = "" }, wantMsg: "label is required"},
		{name: "bad clock", mutate: func(r *slotRequest) { r.StartTime = "9am" }, wantMsg: "start_time must use the HH:MM format"},
		{name: "out of range clock", mutate: func(r *slotRequest) { r.EndTime = "24:30" }, wantMsg: "end_time must use the HH:MM format"},
		{name: "bad day", mutate: func(r *slotRequest) { r.Date = "01/06/2025" }, wantMsg: "date must use the YYYY-MM-DD format"},
		{name: "too many rooms", mutate: func(r *slotRequest) { r.Rooms = 21 }, wantMsg: "rooms must be less than or equal to 20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestValidateDecodesBody(t *testing.T) {
	var req slotRequest

	err := validator.Validate(strings.NewReader(`{"label":"Evening","start_time":"18:00","end_time":"22:00","rooms":1}`), &req)
	require.NoError(t, err)
	assert.Equal(t, "Evening", req.Label)

	err = validator.Validate(strings.NewReader(`{"label":`), &req)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Contains(t, err.Error(), "failed to decode request body")
}

func TestMultipartImage(t *testing.T) {
	tests := []struct {
		name    string
		header  *multipart.FileHeader
		wantErr bool
	}{
		{name: "png under limit", header: fileHeader("image/png", 512*1024)},
		{name: "wrong type", header: fileHeader("application/pdf", 1024), wantErr: true},
		{name: "too large", header: fileHeader("image/jpeg", 2*1024*1024), wantErr: true},
		{name: "missing", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&photoRequest{Image: tt.header})

			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestDataURLImage(t *testing.T) {
	assert.NoError(t, validator.ValidateStruct(&avatarRequest{Image: "data:image/webp;base64,UklGRg=="}))

	err := validator.ValidateStruct(&avatarRequest{Image: "data:image/gif;base64,R0lGOD=="})
	assert.EqualError(t, err, "image must be one of image/png image/webp")

	err = validator.ValidateStruct(&avatarRequest{Image: "UklGRg=="})
	assert.Error(t, err)
}

func TestDataURLImageSize(t *testing.T) {
	dataURL := func(payloadBytes int) string {
		return "data:image/png;base64," + strings.Repeat("A", payloadBytes/3*4)
	}

	// 1 MB decoded is about 1.33 MB of base64 text and still fits the 1 MB limit.
	assert.NoError(t, validator.ValidateStruct(&avatarRequest{Image: dataURL(1024 * 1024)}))
	assert.Error(t, validator.ValidateStruct(&avatarRequest{Image: dataURL(1024*1024 + 3)}))
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("guest@example.com", "email"))
	assert.NoError(t, validator.ValidateVar("10:30", "clock"))

	err := validator.ValidateVar("not-a-uuid", "uuid")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
