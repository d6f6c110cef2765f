package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/hustle-village/internal/storage"
	apperrors "github.com/spec-kit/hustle-village/pkg/util"
)

// ImageService ingests listing image references. Already-hosted URLs pass
// through untouched; inline base64 payloads are decoded and uploaded. Each
// image is processed independently: by default a failed upload is logged and
// the image dropped rather than failing the whole operation, mirroring the
// lenient behavior sellers rely on. RequireUpload hardens that into an error.
type ImageService struct {
	blobs         storage.BlobStore
	logger        *zap.Logger
	requireUpload bool
}

// NewImageService constructs the service.
func NewImageService(blobs storage.BlobStore, logger *zap.Logger, requireUpload bool) *ImageService {
	return &ImageService{blobs: blobs, logger: logger, requireUpload: requireUpload}
}

// Ingest resolves every reference to a hosted URL, best-effort.
func (s *ImageService) Ingest(ctx context.Context, refs []string) ([]string, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	urls := make([]string, 0, len(refs))
	for i, ref := range refs {
		if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
			urls = append(urls, ref)
			continue
		}

		url, err := s.uploadInline(ctx, ref, i)
		if err != nil {
			if s.requireUpload {
				return nil, apperrors.NewUnavailable("image upload failed", err)
			}
			s.logger.Warn("image upload failed; continuing without it",
				zap.Int("index", i), zap.Error(err))
			continue
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *ImageService) uploadInline(ctx context.Context, ref string, index int) (string, error) {
	contentType, payload := splitDataURL(ref)
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decode image %d: %w", index, err)
	}

	objectName := fmt.Sprintf("services/%d-%s%s",
		time.Now().UnixMilli(),
		strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
		extensionFor(contentType))
	return s.blobs.Upload(ctx, objectName, contentType, data)
}

// splitDataURL strips an optional "data:image/png;base64," prefix and reports
// the declared content type, defaulting to JPEG.
func splitDataURL(ref string) (contentType, payload string) {
	contentType = "image/jpeg"
	payload = ref
	if !strings.HasPrefix(ref, "data:") {
		return contentType, payload
	}
	head, rest, found := strings.Cut(ref, ",")
	if !found {
		return contentType, payload
	}
	payload = rest
	head = strings.TrimPrefix(head, "data:")
	if mediaType, _, ok := strings.Cut(head, ";"); ok && mediaType != "" {
		contentType = mediaType
	}
	return contentType, payload
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
