package s3_test

import (
	"testing"

	"daybooker/infras/s3"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://cdn.daybooker.test/hotel/h1/a.jpg", s3.PublicURL("https://cdn.daybooker.test/", "hotel/h1/a.jpg"))
	assert.Equal(t, "https://cdn.daybooker.test/user/u1/b.png", s3.PublicURL("https://cdn.daybooker.test", "user/u1/b.png"))
}

func TestObjectKey(t *testing.T) {
	const (
		domain   = "https://cdn.daybooker.test"
		endpoint = "https://s3.local:9000"
		bucket   = "daybooker"
	)

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"public domain", "https://cdn.daybooker.test/hotel/h1/a.jpg", "hotel/h1/a.jpg"},
		{"path style bucket url", "https://s3.local:9000/daybooker/room_type/h1/c.webp", "room_type/h1/c.webp"},
		{"other bucket", "https://s3.local:9000/archive/x.jpg", ""},
		{"foreign host", "https://images.example.com/x.jpg", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s3.ObjectKey(domain, endpoint, bucket, tt.url))
		})
	}

	assert.Empty(t, s3.ObjectKey("", "", bucket, "https://cdn.daybooker.test/a.jpg"))
}

func TestRoundTrip(t *testing.T) {
	url := s3.PublicURL("https://cdn.daybooker.test", "user/u1/avatar.png")

	assert.Equal(t, "user/u1/avatar.png", s3.ObjectKey("https://cdn.daybooker.test", "", "daybooker", url))
}
