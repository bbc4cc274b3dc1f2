// Package storage provides the profile-picture backends: an external
// object-storage bucket reached over HTTP, and a local directory for
// deployments without one.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vibescine/cinevibes/internal/domain"
)

// BucketStore stores pictures in an external object-storage bucket. Save
// returns the object's public URL; Delete accepts that URL back.
type BucketStore struct {
	baseURL    string
	serviceKey string
	bucket     string
	http       *http.Client
}

// NewBucketStore creates a BucketStore for the given endpoint and bucket.
func NewBucketStore(baseURL, serviceKey, bucket string) *BucketStore {
	return &BucketStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		bucket:     bucket,
		http:       &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *BucketStore) Save(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := domain.PicturePrefix + "/" + name
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	s.authorize(req)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload picture: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("upload picture: status %d: %s", resp.StatusCode, body)
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, key), nil
}

func (s *BucketStore) Delete(ctx context.Context, ref string) error {
	key, ok := s.objectKey(ref)
	if !ok {
		return fmt.Errorf("unrecognized picture reference %q", ref)
	}
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	s.authorize(req)

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete picture: %w", err)
	}
	defer resp.Body.Close()

	// An already-gone object is not a failure.
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete picture: status %d", resp.StatusCode)
	}
	return nil
}

func (s *BucketStore) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)
}

// objectKey extracts the bucket-relative key from a public URL.
func (s *BucketStore) objectKey(ref string) (string, bool) {
	marker := "/storage/v1/object/public/" + s.bucket + "/"
	idx := strings.Index(ref, marker)
	if idx < 0 {
		return "", false
	}
	key := ref[idx+len(marker):]
	if key == "" {
		return "", false
	}
	return key, true
}
