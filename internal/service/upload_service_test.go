package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUploadService_UploadImage(t *testing.T) {
	uploader := new(MockUploader)
	uploader.On("Upload", mock.Anything, "1700000000000-picnic.jpg", "image/jpeg", mock.Anything).
		Return("https://cdn.example.com/1700000000000-picnic.jpg", nil)

	service := &uploadService{
		uploader: uploader,
		now:      func() time.Time { return time.UnixMilli(1700000000000) },
	}

	url, err := service.UploadImage(context.Background(), "picnic.jpg", "image/jpeg", strings.NewReader("fake-bytes"))
	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/1700000000000-picnic.jpg", url)
	uploader.AssertExpectations(t)
}

func TestUploadService_UploadImage_StoreFailure(t *testing.T) {
	uploader := new(MockUploader)
	uploader.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("bucket unavailable"))

	service := NewUploadService(uploader)
	url, err := service.UploadImage(context.Background(), "picnic.jpg", "image/jpeg", strings.NewReader("fake-bytes"))

	assert.Error(t, err)
	assert.Empty(t, url)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain name", input: "picnic.jpg", expected: "picnic.jpg"},
		{name: "path traversal stripped", input: "../../etc/passwd", expected: "passwd"},
		{name: "windows separators", input: "C:\\photos\\me.png", expected: "me.png"},
		{name: "spaces replaced", input: "my photo.png", expected: "my_photo.png"},
		{name: "empty falls back", input: "", expected: "upload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeFilename(tt.input))
		})
	}
}
