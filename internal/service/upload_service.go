package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"evently/internal/storage"
)

// UploadService stores event images in the blob store under
// collision-resistant names.
type UploadService interface {
	UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

type uploadService struct {
	uploader storage.Uploader
	now      func() time.Time
}

// NewUploadService builds an UploadService on top of a blob uploader.
func NewUploadService(uploader storage.Uploader) UploadService {
	return &uploadService{uploader: uploader, now: time.Now}
}

// UploadImage stores the file under "<unix-millis>-<original-name>" and
// returns its public URL. The timestamp prefix keeps same-named uploads from
// colliding.
func (s *uploadService) UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("%d-%s", s.now().UnixMilli(), sanitizeFilename(filename))
	url, err := s.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}

// sanitizeFilename strips directory components and whitespace so a client
// supplied name can never escape the bucket prefix.
func sanitizeFilename(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.TrimSpace(base)
	if base == "" || base == "." || base == "/" {
		return "upload"
	}
	return strings.ReplaceAll(base, " ", "_")
}
