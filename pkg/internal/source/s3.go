package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3api "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/codeGROOVE-dev/retry"
	"github.com/joeydtaylor/respira/pkg/internal/types"
)

// GetObjectAPI is the subset of the S3 client used to download recordings.
type GetObjectAPI interface {
	GetObject(ctx context.Context, in *s3api.GetObjectInput, optFns ...func(*s3api.Options)) (*s3api.GetObjectOutput, error)
}

// ObjectFetcher downloads a whole object.
type ObjectFetcher interface {
	Fetch(ctx context.Context, bucket, key string) ([]byte, error)
}

// S3Fetcher downloads objects with jittered retries. Missing keys are not retried.
type S3Fetcher struct {
	cli      GetObjectAPI
	attempts uint
	delay    time.Duration
	maxDelay time.Duration

	loggersLock sync.Mutex
	loggers     []types.Logger
}

// S3FetcherOption configures an S3Fetcher.
type S3FetcherOption func(*S3Fetcher)

// NewS3Fetcher returns a fetcher backed by cli.
func NewS3Fetcher(cli GetObjectAPI, options ...S3FetcherOption) *S3Fetcher {
	f := &S3Fetcher{
		cli:      cli,
		attempts: 4,
		delay:    250 * time.Millisecond,
		maxDelay: 10 * time.Second,
	}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// WithFetchAttempts sets the total number of GetObject attempts.
func WithFetchAttempts(n uint) S3FetcherOption {
	return func(f *S3Fetcher) {
		if n > 0 {
			f.attempts = n
		}
	}
}

// WithFetchBackoff sets the base and maximum retry delay.
func WithFetchBackoff(delay, maxDelay time.Duration) S3FetcherOption {
	return func(f *S3Fetcher) {
		if delay > 0 {
			f.delay = delay
		}
		if maxDelay >= delay && maxDelay > 0 {
			f.maxDelay = maxDelay
		}
	}
}

// WithFetchLogger attaches loggers.
func WithFetchLogger(l ...types.Logger) S3FetcherOption {
	return func(f *S3Fetcher) {
		f.loggers = append(f.loggers, l...)
	}
}

// Fetch downloads bucket/key.
func (f *S3Fetcher) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	if f.cli == nil {
		return nil, errors.New("source: s3 fetch requires a client")
	}

	var (
		body    []byte
		lastErr error
	)
	err := retry.Do(
		func() error {
			out, err := f.cli.GetObject(ctx, &s3api.GetObjectInput{
				Bucket: aws.String(bucket),
				Key:    aws.String(key),
			})
			if err != nil {
				lastErr = err
				var missing *s3types.NoSuchKey
				if errors.As(err, &missing) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			defer out.Body.Close()

			data, err := io.ReadAll(out.Body)
			if err != nil {
				lastErr = err
				return err
			}
			body = data
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(f.attempts),
		retry.Delay(f.delay),
		retry.MaxDelay(f.maxDelay),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.OnRetry(func(n uint, err error) {
			f.notifyLoggers(types.WarnLevel, "S3Fetcher: retrying GetObject",
				"bucket", bucket, "key", key, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		if lastErr == nil {
			lastErr = err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("source: get s3://%s/%s: %w", bucket, key, ctxErr)
		}
		return nil, fmt.Errorf("source: get s3://%s/%s: %w", bucket, key, lastErr)
	}

	f.notifyLoggers(types.DebugLevel, "S3Fetcher: object downloaded",
		"bucket", bucket, "key", key, "bytes", len(body))
	return body, nil
}

func (f *S3Fetcher) notifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	f.loggersLock.Lock()
	loggers := append([]types.Logger(nil), f.loggers...)
	f.loggersLock.Unlock()

	for _, logger := range loggers {
		if logger == nil || logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		default:
			logger.Error(msg, keysAndValues...)
		}
	}
}

// ParseS3URI splits s3://bucket/key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("source: %q is not an s3:// uri", uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("source: %q needs both bucket and key", uri)
	}
	return bucket, key, nil
}
