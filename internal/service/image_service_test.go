package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestImageServiceIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("hosted URLs pass through without an upload", func(t *testing.T) {
		blobs := &fakeBlobStore{}
		images := NewImageService(blobs, zap.NewNop(), false)

		urls, err := images.Ingest(ctx, []string{
			"https://cdn.example.com/a.jpg",
			"http://cdn.example.com/b.png",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://cdn.example.com/a.jpg",
			"http://cdn.example.com/b.png",
		}, urls)
		assert.Empty(t, blobs.uploads)
	})

	t.Run("data URL payload is decoded and uploaded with its extension", func(t *testing.T) {
		blobs := &fakeBlobStore{}
		images := NewImageService(blobs, zap.NewNop(), false)

		urls, err := images.Ingest(ctx, []string{"data:image/png;base64,aGVsbG8="})
		require.NoError(t, err)
		require.Len(t, urls, 1)
		require.Len(t, blobs.uploads, 1)
		assert.True(t, strings.HasPrefix(blobs.uploads[0], "services/"))
		assert.True(t, strings.HasSuffix(blobs.uploads[0], ".png"))
	})

	t.Run("bare base64 defaults to jpeg", func(t *testing.T) {
		blobs := &fakeBlobStore{}
		images := NewImageService(blobs, zap.NewNop(), false)

		_, err := images.Ingest(ctx, []string{"aGVsbG8="})
		require.NoError(t, err)
		require.Len(t, blobs.uploads, 1)
		assert.True(t, strings.HasSuffix(blobs.uploads[0], ".jpg"))
	})

	t.Run("failed upload is dropped, the rest survive", func(t *testing.T) {
		blobs := &fakeBlobStore{fail: true}
		images := NewImageService(blobs, zap.NewNop(), false)

		urls, err := images.Ingest(ctx, []string{
			"https://cdn.example.com/kept.jpg",
			"aGVsbG8=",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"https://cdn.example.com/kept.jpg"}, urls)
	})

	t.Run("undecodable payload is dropped too", func(t *testing.T) {
		blobs := &fakeBlobStore{}
		images := NewImageService(blobs, zap.NewNop(), false)

		urls, err := images.Ingest(ctx, []string{"not valid base64 !!!"})
		require.NoError(t, err)
		assert.Empty(t, urls)
		assert.Empty(t, blobs.uploads)
	})

	t.Run("requireUpload turns a failed upload into an error", func(t *testing.T) {
		blobs := &fakeBlobStore{fail: true}
		images := NewImageService(blobs, zap.NewNop(), true)

		_, err := images.Ingest(ctx, []string{"aGVsbG8="})
		requireDomainCode(t, err, "UNAVAILABLE")
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		blobs := &fakeBlobStore{}
		images := NewImageService(blobs, zap.NewNop(), false)

		urls, err := images.Ingest(ctx, nil)
		require.NoError(t, err)
		assert.Nil(t, urls)
	})
}

func TestSplitDataURL(t *testing.T) {
	cases := []struct {
		name        string
		ref         string
		contentType string
		payload     string
	}{
		{"full data URL", "data:image/png;base64,abc", "image/png", "abc"},
		{"bare payload", "abc", "image/jpeg", "abc"},
		{"data prefix without comma", "data:image/png", "image/jpeg", "data:image/png"},
		{"missing media type", "data:;base64,abc", "image/jpeg", "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			contentType, payload := splitDataURL(tc.ref)
			assert.Equal(t, tc.contentType, contentType)
			assert.Equal(t, tc.payload, payload)
		})
	}
}
