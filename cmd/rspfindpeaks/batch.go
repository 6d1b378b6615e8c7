package main

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/fatih/color"
	"github.com/joeydtaylor/respira/pkg/builder"
)

// objectResult is one line of batch output.
type objectResult struct {
	Key string `json:"key"`
	builder.Landmarks
	Error string `json:"error,omitempty"`
}

// runBatch detects landmarks in every signal object under an s3 prefix. A failing object is
// reported and the run continues; the exit code reflects whether any object failed.
func runBatch(ctx context.Context, opts options, cfg builder.DetectorConfig, stdout, stderr io.Writer, logger builder.Logger) int {
	if opts.out != "" {
		fail(stderr, fmt.Errorf("-out is not supported for s3 prefixes"))
		return exitUsage
	}
	bucket, prefix, err := builder.ParseS3Prefix(opts.in)
	if err != nil {
		fail(stderr, err)
		return exitUsage
	}
	cli, err := newS3Client(ctx)
	if err != nil {
		fail(stderr, fmt.Errorf("s3 client: %w", err))
		return exitFailed
	}
	keys, err := builder.S3ListSignalKeys(ctx, cli, bucket, prefix)
	if err != nil {
		fail(stderr, err)
		return exitFailed
	}
	if len(keys) == 0 {
		fail(stderr, fmt.Errorf("no signal objects under %s", opts.in))
		return exitFailed
	}

	load := builder.LoadOptions{
		SamplingRate: opts.detector.SamplingRate,
		Fetcher:      builder.NewS3Fetcher(cli, builder.S3FetcherWithLogger(logger)),
	}
	enc := builder.NewJSONEncoder[objectResult]()
	lines := builder.NewLineEncoder[string]()

	failed := 0
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			fail(stderr, err)
			return exitFailed
		}
		res := objectResult{Key: key, Landmarks: builder.Landmarks{Peaks: []int{}, Troughs: []int{}}}

		uri := "s3://" + path.Join(bucket, key)
		sig, err := builder.LoadSignal(ctx, uri, load)
		if err == nil {
			res.Landmarks, err = detect(ctx, rateFor(opts, cfg, sig), sig, logger)
		}
		if err != nil {
			failed++
			res.Error = err.Error()
			logger.Warn("object failed", "key", key, "error", err)
		}

		if opts.format == "json" {
			err = enc.Encode(stdout, res)
		} else {
			for i := 0; i < res.Len() && err == nil; i++ {
				err = lines.Encode(stdout, fmt.Sprintf("%s\t%d\t%d", key, res.Troughs[i], res.Peaks[i]))
			}
		}
		if err != nil {
			fail(stderr, err)
			return exitFailed
		}
	}

	color.New(color.Bold).Fprintf(stderr, "%s: ", cfg.Method)
	fmt.Fprintf(stderr, "%d objects, ", len(keys))
	if failed > 0 {
		color.New(color.FgRed).Fprintf(stderr, "%d failed\n", failed)
		return exitFailed
	}
	color.New(color.FgGreen).Fprintln(stderr, "all ok")
	return exitOK
}
