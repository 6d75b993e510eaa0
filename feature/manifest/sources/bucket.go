package sources

import (
	"context"
	"fmt"
	"io"
	"strings"

	"manifest-validator/core/storage"

	"github.com/minio/minio-go/v7"
)

// BucketSource reads a manifest object from the storage bucket.
type BucketSource struct {
	client storage.Client
	bucket string
	object string
}

// NewBucketSource creates a source for object in bucket.
func NewBucketSource(client storage.Client, bucket, object string) *BucketSource {
	return &BucketSource{client: client, bucket: bucket, object: object}
}

func (s *BucketSource) Describe() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.object)
}

func (s *BucketSource) Read(ctx context.Context) ([]byte, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", s.bucket)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, wrapObjectError(s.object, err)
	}
	defer obj.Close()

	// Minio objects fetch lazily, so a missing key only surfaces on read.
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, wrapObjectError(s.object, err)
	}
	return data, nil
}

func wrapObjectError(object string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", ErrNotFound, object)
	}
	return fmt.Errorf("failed to get object %s: %w", object, err)
}

// ListBucket returns the names of the .json objects under prefix.
func ListBucket(ctx context.Context, client storage.Client, bucket, prefix string) ([]string, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	var names []string
	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: true}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, ".json") {
			names = append(names, obj.Key)
		}
	}
	return names, nil
}
