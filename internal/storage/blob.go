package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/spec-kit/hustle-village/internal/config"
)

// BlobStore uploads binary objects and returns their public URLs. The rest of
// the system treats object storage as opaque behind this interface.
type BlobStore interface {
	Upload(ctx context.Context, objectName string, contentType string, data []byte) (string, error)
}

type httpBlobStore struct {
	endpoint string
	bucket   string
	apiKey   string
	client   *http.Client
}

// NewHTTPBlobStore builds a client against an S3-style object store exposing
// POST {endpoint}/object/{bucket}/{name} and public reads under
// {endpoint}/object/public/{bucket}/{name}.
func NewHTTPBlobStore(cfg config.StorageConfig) BlobStore {
	return &httpBlobStore{
		endpoint: cfg.Endpoint,
		bucket:   cfg.Bucket,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout()},
	}
}

func (s *httpBlobStore) Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	if s.endpoint == "" {
		return "", fmt.Errorf("blob store endpoint not configured")
	}

	uploadURL := fmt.Sprintf("%s/object/%s/%s", s.endpoint, s.bucket, objectName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("blob store returned %d: %s", resp.StatusCode, string(body))
	}

	return fmt.Sprintf("%s/object/public/%s/%s", s.endpoint, s.bucket, objectName), nil
}
