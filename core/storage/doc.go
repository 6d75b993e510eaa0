// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so manifests published to an S3 or MinIO bucket can be
// fetched and listed. The Client interface exists so tests can substitute the mock in
// core/storage/mocks.
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - GetObject: Retrieves content as a stream.
//   - ListObjects: Lists objects in a bucket (supports prefix/recursive).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
