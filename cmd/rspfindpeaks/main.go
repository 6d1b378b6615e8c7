// Command rspfindpeaks detects inhalation onsets (troughs) and exhalation onsets (peaks) in a
// cleaned respiration signal read from a file, stdin, S3 or a built-in simulation.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joeydtaylor/respira/pkg/builder"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

type options struct {
	in       string
	simulate float64
	rate     float64
	seed     uint64
	noise    float64
	format   string
	out      string
	logLevel string
	detector builder.DetectorConfig
	set      map[string]bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	def := builder.DefaultDetectorConfig()
	opts := options{set: map[string]bool{}}

	fs := flag.NewFlagSet("rspfindpeaks", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.in, "in", "", "input signal: local path, s3://bucket/key or - for stdin")
	fs.Float64Var(&opts.simulate, "simulate", 0, "simulate this many seconds of breathing instead of reading -in")
	fs.Float64Var(&opts.rate, "rate", 15, "simulated breathing rate in breaths per minute")
	fs.Uint64Var(&opts.seed, "seed", 1, "simulation seed")
	fs.Float64Var(&opts.noise, "noise", 0, "standard deviation of simulated gaussian noise")
	fs.StringVar(&opts.format, "format", "json", "output format: json or text")
	fs.StringVar(&opts.out, "out", "", "optional parquet file receiving the landmarks")
	fs.StringVar(&opts.logLevel, "log-level", builder.EnvOr("RESPIRA_LOG_LEVEL", "warn"), "log level")

	method := fs.String("method", builder.EnvOr("RESPIRA_METHOD", string(def.Method)), "detection method: "+methodList())
	fs.Float64Var(&opts.detector.AmplitudeMin, "amplitude-min", builder.EnvFloatOr("RESPIRA_AMPLITUDE_MIN", def.AmplitudeMin), "outlier threshold for khodadad2018")
	fs.IntVar(&opts.detector.SamplingRate, "sampling-rate", builder.EnvIntOr("RESPIRA_SAMPLING_RATE", def.SamplingRate), "sampling rate in Hz")
	fs.Float64Var(&opts.detector.MinBreathPeriod, "min-breath-period", def.MinBreathPeriod, "shortest accepted breath in seconds (biosppy)")
	fs.Float64Var(&opts.detector.PeakDistance, "peak-distance", def.PeakDistance, "minimal seconds between peaks (scipy)")
	fs.Float64Var(&opts.detector.PeakProminence, "peak-prominence", def.PeakProminence, "minimal peak prominence (scipy)")
	fs.Float64Var(&opts.detector.Delta, "delta", def.Delta, "minimal excursion confirming an extremum (noto2018)")
	fs.IntVar(&opts.detector.Lookahead, "lookahead", def.Lookahead, "samples scanned past a candidate extremum (noto2018)")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	opts.detector.Method = builder.Method(*method)
	opts.format = strings.ToLower(strings.TrimSpace(opts.format))

	switch {
	case opts.in == "" && opts.simulate <= 0:
		return opts, errors.New("one of -in or -simulate is required")
	case opts.in != "" && opts.simulate > 0:
		return opts, errors.New("-in and -simulate are mutually exclusive")
	case opts.format != "json" && opts.format != "text":
		return opts, fmt.Errorf("unknown -format %q (expected json or text)", opts.format)
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fail(stderr, err)
		return exitUsage
	}

	logger := builder.NewLogger(builder.LoggerWithLevel(opts.logLevel), builder.LoggerWithoutCaller())
	defer logger.Flush()

	cfg := opts.detector
	method, err := builder.ValidateDetectorConfig(cfg)
	if err != nil {
		fail(stderr, err)
		return exitUsage
	}
	cfg.Method = method

	if builder.IsS3Prefix(opts.in) {
		return runBatch(ctx, opts, cfg, stdout, stderr, logger)
	}

	sig, err := loadSignal(ctx, opts, stdin, logger)
	if err != nil {
		fail(stderr, err)
		return exitFailed
	}

	cfg = rateFor(opts, cfg, sig)
	landmarks, err := detect(ctx, cfg, sig, logger)
	if err != nil {
		fail(stderr, err)
		return exitFailed
	}

	if err := writeLandmarks(stdout, opts.format, landmarks); err != nil {
		fail(stderr, err)
		return exitFailed
	}
	if opts.out != "" {
		if err := writeParquet(opts.out, landmarks); err != nil {
			fail(stderr, err)
			return exitFailed
		}
	}
	summary(stderr, cfg, len(sig.Samples), landmarks)
	return exitOK
}

// rateFor lets a rate carried by the input win unless the user pinned one.
func rateFor(opts options, cfg builder.DetectorConfig, sig builder.Signal) builder.DetectorConfig {
	if sig.SamplingRate > 0 && !opts.set["sampling-rate"] {
		cfg.SamplingRate = sig.SamplingRate
	}
	return cfg
}

func detect(ctx context.Context, cfg builder.DetectorConfig, sig builder.Signal, logger builder.Logger) (builder.Landmarks, error) {
	det := builder.NewDetector(builder.DetectorWithConfig(cfg), builder.DetectorWithLogger(logger))
	landmarks, err := det.FindPeaks(ctx, sig.Samples)
	if err != nil {
		return builder.Landmarks{}, err
	}
	if landmarks.Peaks == nil {
		landmarks.Peaks = []int{}
	}
	if landmarks.Troughs == nil {
		landmarks.Troughs = []int{}
	}
	return landmarks, nil
}

func loadSignal(ctx context.Context, opts options, stdin io.Reader, logger builder.Logger) (builder.Signal, error) {
	if opts.simulate > 0 {
		samples := builder.SimulateBreathing(opts.simulate, opts.detector.SamplingRate, opts.rate, builder.BreathingOptions{
			Noise: opts.noise,
			Seed:  opts.seed,
		})
		return builder.Signal{SamplingRate: opts.detector.SamplingRate, Samples: samples}, nil
	}

	load := builder.LoadOptions{SamplingRate: opts.detector.SamplingRate, Stdin: stdin}
	if strings.HasPrefix(opts.in, "s3://") {
		cli, err := newS3Client(ctx)
		if err != nil {
			return builder.Signal{}, fmt.Errorf("s3 client: %w", err)
		}
		load.Fetcher = builder.NewS3Fetcher(cli, builder.S3FetcherWithLogger(logger))
	}
	return builder.LoadSignal(ctx, opts.in, load)
}

// newS3Client is replaced in tests.
var newS3Client = envS3Client

// envS3Client picks assume-role, static keys or the default chain from the environment.
func envS3Client(ctx context.Context) (builder.S3API, error) {
	region := builder.EnvOr("RESPIRA_S3_REGION", "us-east-1")
	endpoint := builder.EnvOr("RESPIRA_S3_ENDPOINT", "")
	pathStyle := builder.EnvBoolOr("RESPIRA_S3_PATH_STYLE", endpoint != "")

	if role := builder.EnvOr("RESPIRA_S3_ROLE_ARN", ""); role != "" {
		return builder.NewS3ClientAssumeRole(ctx, region, role, "respira-findpeaks", 15*time.Minute,
			builder.EnvOr("RESPIRA_S3_EXTERNAL_ID", ""), nil, endpoint, pathStyle)
	}
	if key := builder.EnvOr("RESPIRA_S3_ACCESS_KEY", ""); key != "" {
		return builder.NewS3ClientStatic(ctx, region, key, builder.EnvOr("RESPIRA_S3_SECRET_KEY", ""),
			builder.EnvOr("RESPIRA_S3_SESSION_TOKEN", ""), endpoint, pathStyle)
	}
	return builder.NewS3ClientDefault(ctx, region, endpoint, pathStyle)
}

func writeLandmarks(w io.Writer, format string, l builder.Landmarks) error {
	if format == "json" {
		return builder.NewJSONEncoder[builder.Landmarks]().Encode(w, l)
	}
	enc := builder.NewLineEncoder[string]()
	for i := 0; i < l.Len(); i++ {
		if err := enc.Encode(w, fmt.Sprintf("%d\t%d", l.Troughs[i], l.Peaks[i])); err != nil {
			return err
		}
	}
	return nil
}

func writeParquet(path string, l builder.Landmarks) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := builder.WriteLandmarksParquet(f, l); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func summary(w io.Writer, cfg builder.DetectorConfig, samples int, l builder.Landmarks) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	if l.Len() == 0 {
		color.New(color.FgYellow).Fprintf(w, "no breaths found in %d samples (%s)\n", samples, cfg.Method)
		return
	}
	bold.Fprintf(w, "%s: ", cfg.Method)
	green.Fprintf(w, "%d breaths", l.Len())
	fmt.Fprintf(w, " in %d samples", samples)
	if cfg.SamplingRate > 0 {
		fmt.Fprintf(w, " (%.1fs)", float64(samples)/float64(cfg.SamplingRate))
	}
	fmt.Fprintln(w)
}

func fail(w io.Writer, err error) {
	color.New(color.FgRed, color.Bold).Fprint(w, "error: ")
	fmt.Fprintln(w, err)
}

func methodList() string {
	names := make([]string, 0, 4)
	for _, m := range builder.Methods() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}
