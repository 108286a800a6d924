// Package storage wraps the MinIO object store that holds listing photos.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// PhotoStore uploads listing photos to a single bucket and resolves their
// public URLs. The endpoint is kept with its scheme for URL construction;
// the client itself wants a bare host:port.
type PhotoStore struct {
	client   *minio.Client
	endpoint string // including scheme, e.g. http://localhost:9000
	bucket   string
}

// NewPhotoStore builds a MinIO client from the configured endpoint and
// credentials. Path-style access is the minio-go default, which is what
// MinIO deployments expect.
func NewPhotoStore(endpoint, accessKey, secretKey, bucket string) (*PhotoStore, error) {
	host := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: strings.HasPrefix(endpoint, "https://"),
	})
	if err != nil {
		return nil, err
	}
	return &PhotoStore{client: client, endpoint: endpoint, bucket: bucket}, nil
}

// EnsureBucket checks that the photo bucket exists and creates it when it
// does not. Called once at startup, never per request.
func (s *PhotoStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

// Upload streams a photo into the bucket under a collision-resistant key
// derived from the upload time and the original filename. It returns the
// object key and its public URL.
func (s *PhotoStore) Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (key, url string, err error) {
	key = fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filename)
	_, err = s.client.PutObject(ctx, s.bucket, key, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", "", err
	}
	return key, s.URL(key), nil
}

// URL resolves the public URL of an object key.
func (s *PhotoStore) URL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
}
