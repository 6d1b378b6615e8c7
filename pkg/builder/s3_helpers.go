package builder

import (
	"context"

	"github.com/joeydtaylor/respira/pkg/internal/source"
)

// S3ListObjectsAPI is the listing half of an S3 client.
type S3ListObjectsAPI = source.ListObjectsAPI

// S3API is what batch runs need: listing plus downloads. *s3.Client satisfies it.
type S3API interface {
	S3GetObjectAPI
	S3ListObjectsAPI
}

// S3ListSignalKeys returns the keys under bucket/prefix that LoadSignal can read.
func S3ListSignalKeys(ctx context.Context, cli S3ListObjectsAPI, bucket, prefix string) ([]string, error) {
	return source.ListSignalKeys(ctx, cli, bucket, prefix)
}

// IsSignalKey reports whether LoadSignal recognises the object key's extension.
func IsSignalKey(key string) bool {
	return source.IsSignalKey(key)
}

// IsS3Prefix reports whether uri names an s3 prefix rather than an object.
func IsS3Prefix(uri string) bool {
	return source.IsS3Prefix(uri)
}

// ParseS3Prefix splits s3://bucket/prefix/.
func ParseS3Prefix(uri string) (string, string, error) {
	return source.ParseS3Prefix(uri)
}
