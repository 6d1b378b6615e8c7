package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3api "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeydtaylor/respira/pkg/internal/codec"
)

// ListObjectsAPI is the subset of the S3 client used to enumerate recordings.
type ListObjectsAPI interface {
	ListObjectsV2(ctx context.Context, in *s3api.ListObjectsV2Input, optFns ...func(*s3api.Options)) (*s3api.ListObjectsV2Output, error)
}

var signalExtensions = map[string]bool{
	".parquet": true,
	".rsp":     true,
	".bin":     true,
	".csv":     true,
	".txt":     true,
}

// IsSignalKey reports whether Load recognises the extension of key, after stripping one
// compression suffix.
func IsSignalKey(key string) bool {
	if strings.HasSuffix(key, "/") {
		return false
	}
	name := strings.ToLower(key)
	if _, ok := codec.CompressionForExtension(filepath.Ext(name)); ok {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return signalExtensions[filepath.Ext(name)]
}

// IsS3Prefix reports whether uri names an s3 prefix (s3://bucket/ or s3://bucket/dir/).
func IsS3Prefix(uri string) bool {
	return strings.HasPrefix(uri, "s3://") && strings.HasSuffix(uri, "/")
}

// ParseS3Prefix splits s3://bucket/prefix/. The prefix may be empty.
func ParseS3Prefix(uri string) (bucket, prefix string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("source: %q is not an s3:// uri", uri)
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("source: %q has no bucket", uri)
	}
	return bucket, prefix, nil
}

// ListSignalKeys pages through bucket/prefix and returns the keys IsSignalKey accepts, in
// listing order.
func ListSignalKeys(ctx context.Context, cli ListObjectsAPI, bucket, prefix string) ([]string, error) {
	if cli == nil {
		return nil, errors.New("source: s3 listing requires a client")
	}
	if bucket == "" {
		return nil, errors.New("source: bucket is required")
	}

	var (
		keys []string
		cont *string
	)
	for {
		out, err := cli.ListObjectsV2(ctx, &s3api.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: cont,
			MaxKeys:           aws.Int32(1000),
		})
		if err != nil {
			return nil, fmt.Errorf("source: list s3://%s/%s: %w", bucket, prefix, err)
		}
		for _, o := range out.Contents {
			if k := aws.ToString(o.Key); IsSignalKey(k) {
				keys = append(keys, k)
			}
		}
		if !aws.ToBool(out.IsTruncated) || out.NextContinuationToken == nil {
			return keys, nil
		}
		cont = out.NextContinuationToken
	}
}
