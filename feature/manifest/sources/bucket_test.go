package sources

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"manifest-validator/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type failingReader struct {
	err error
}

func (r failingReader) Read([]byte) (int, error) {
	return 0, r.err
}

func TestBucketSource_Read(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", ctx, "manifests").Return(true, nil)
		mockClient.On("GetObject", ctx, "manifests", "installer/higurashi.json", mock.Anything).
			Return(io.NopCloser(strings.NewReader(`{"mods":[]}`)), nil)

		src := NewBucketSource(mockClient, "manifests", "installer/higurashi.json")
		data, err := src.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, `{"mods":[]}`, string(data))
		assert.Equal(t, "s3://manifests/installer/higurashi.json", src.Describe())
		mockClient.AssertExpectations(t)
	})

	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", ctx, "manifests").Return(false, nil)

		_, err := NewBucketSource(mockClient, "manifests", "a.json").Read(ctx)
		assert.EqualError(t, err, "bucket manifests does not exist")
		mockClient.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Bucket Check Fails", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", ctx, "manifests").Return(false, errors.New("connection refused"))

		_, err := NewBucketSource(mockClient, "manifests", "a.json").Read(ctx)
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("Object Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", ctx, "manifests").Return(true, nil)
		mockClient.On("GetObject", ctx, "manifests", "absent.json", mock.Anything).
			Return(io.NopCloser(failingReader{err: minio.ErrorResponse{Code: "NoSuchKey"}}), nil)

		_, err := NewBucketSource(mockClient, "manifests", "absent.json").Read(ctx)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Get Fails", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", ctx, "manifests").Return(true, nil)
		mockClient.On("GetObject", ctx, "manifests", "a.json", mock.Anything).Return(nil, errors.New("access denied"))

		_, err := NewBucketSource(mockClient, "manifests", "a.json").Read(ctx)
		assert.ErrorContains(t, err, "access denied")
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestListBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Filters JSON Objects", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", ctx, "manifests").Return(true, nil)

		ch := make(chan minio.ObjectInfo, 3)
		ch <- minio.ObjectInfo{Key: "installer/higurashi.json"}
		ch <- minio.ObjectInfo{Key: "installer/readme.txt"}
		ch <- minio.ObjectInfo{Key: "installer/umineko.json"}
		close(ch)
		mockClient.On("ListObjects", ctx, "manifests", minio.ListObjectsOptions{Prefix: "installer/", Recursive: true}).
			Return((<-chan minio.ObjectInfo)(ch))

		names, err := ListBucket(ctx, mockClient, "manifests", "installer/")
		require.NoError(t, err)
		assert.Equal(t, []string{"installer/higurashi.json", "installer/umineko.json"}, names)
	})

	t.Run("Listing Error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", ctx, "manifests").Return(true, nil)

		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Err: errors.New("timeout")}
		close(ch)
		mockClient.On("ListObjects", ctx, "manifests", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		_, err := ListBucket(ctx, mockClient, "manifests", "")
		assert.ErrorContains(t, err, "failed to list objects")
	})
}
