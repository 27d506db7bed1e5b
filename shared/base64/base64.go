package base64

import (
	stdBase64 "encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

var ErrNotDataURL = errors.New("value is not a base64 data URL")

var extensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/webp": ".webp",
}

// GetContentType returns the media type of a data URL, or "" when value is not one.
func GetContentType(value string) string {
	if !strings.HasPrefix(value, dataPrefix) {
		return ""
	}

	end := strings.Index(value, base64Marker)
	if end == -1 {
		return ""
	}

	return value[len(dataPrefix):end]
}

// Decode splits a data URL into its media type and payload.
func Decode(value string) (contentType string, data []byte, err error) {
	contentType = GetContentType(value)
	if contentType == "" {
		return "", nil, ErrNotDataURL
	}

	payload := value[strings.Index(value, base64Marker)+len(base64Marker):]

	data, err = stdBase64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode %s payload: %w", contentType, err)
	}

	return contentType, data, nil
}

// DecodedLen is the byte size of a data URL payload without decoding it.
// ok is false when value is not a data URL.
func DecodedLen(value string) (size int, ok bool) {
	if GetContentType(value) == "" {
		return 0, false
	}

	payload := value[strings.Index(value, base64Marker)+len(base64Marker):]
	padding := len(payload) - len(strings.TrimRight(payload, "="))

	return stdBase64.StdEncoding.DecodedLen(len(payload)) - padding, true
}

// Extension maps an image media type to a file extension, "" when unknown.
func Extension(contentType string) string {
	return extensions[contentType]
}
