package base64_test

import (
	"testing"

	"daybooker/shared/base64"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"png", "data:image/png;base64,iVBORw0KGgo=", "image/png"},
		{"webp", "data:image/webp;base64,UklGRg==", "image/webp"},
		{"missing marker", "data:image/png,plain", ""},
		{"missing prefix", "image/png;base64,AAAA", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base64.GetContentType(tt.value))
		})
	}
}

func TestDecode(t *testing.T) {
	contentType, data, err := base64.Decode("data:image/jpeg;base64,aGVsbG8=")
	require.NoError(t, err)

	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, []byte("hello"), data)

	_, _, err = base64.Decode("aGVsbG8=")
	assert.ErrorIs(t, err, base64.ErrNotDataURL)

	_, _, err = base64.Decode("data:image/png;base64,%%%")
	assert.Error(t, err)
}

func TestDecodedLen(t *testing.T) {
	size, ok := base64.DecodedLen("data:image/jpeg;base64,aGVsbG8=")
	assert.True(t, ok)
	assert.Equal(t, 5, size)

	size, ok = base64.DecodedLen("data:image/png;base64,aGVsbG8h")
	assert.True(t, ok)
	assert.Equal(t, 6, size)

	_, ok = base64.DecodedLen("aGVsbG8=")
	assert.False(t, ok)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".jpg", base64.Extension("image/jpeg"))
	assert.Equal(t, ".webp", base64.Extension("image/webp"))
	assert.Empty(t, base64.Extension("application/pdf"))
}
