// Command rspworker consumes respiration signals from Kafka, detects their landmarks and
// publishes the results. Failed signals go to an optional dead letter topic.
//
// Configuration is read from the environment:
//
//	RESPIRA_KAFKA_BROKERS   comma separated bootstrap brokers (default 127.0.0.1:9092)
//	RESPIRA_KAFKA_IN        input topic (default rsp-signals)
//	RESPIRA_KAFKA_OUT       output topic (default rsp-landmarks)
//	RESPIRA_KAFKA_DLQ       dead letter topic, empty to disable
//	RESPIRA_KAFKA_GROUP     consumer group (default respira-worker)
//	RESPIRA_KAFKA_EARLIEST  start a new group at the oldest offset
//	RESPIRA_KAFKA_CA        comma separated CA bundle candidates enabling TLS
//	RESPIRA_KAFKA_SNI       TLS server name
//	RESPIRA_KAFKA_USER      SASL/SCRAM user, empty to disable SASL
//	RESPIRA_KAFKA_PASS      SASL/SCRAM password
//	RESPIRA_KAFKA_MECH      SCRAM-SHA-256 or SCRAM-SHA-512
//	RESPIRA_METHOD          default detection method
//	RESPIRA_AMPLITUDE_MIN   default khodadad2018 outlier threshold
//	RESPIRA_SAMPLING_RATE   default sampling rate in Hz
//	RESPIRA_LOG_LEVEL       log level (default info)
//	RESPIRA_METER_INTERVAL  meter report interval, 0 to disable (default 1m)
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joeydtaylor/respira/pkg/builder"
)

type config struct {
	brokers  []string
	inTopic  string
	outTopic string
	dlqTopic string
	group    string
	earliest bool
	clientID string

	caCandidates string
	serverName   string
	saslUser     string
	saslPass     string
	saslMech     string

	detector      builder.DetectorConfig
	logLevel      string
	meterInterval time.Duration
}

func loadConfig() (config, error) {
	def := builder.DefaultDetectorConfig()
	cfg := config{
		brokers:      builder.EnvListOr("RESPIRA_KAFKA_BROKERS", []string{"127.0.0.1:9092"}),
		inTopic:      builder.EnvOr("RESPIRA_KAFKA_IN", "rsp-signals"),
		outTopic:     builder.EnvOr("RESPIRA_KAFKA_OUT", "rsp-landmarks"),
		dlqTopic:     builder.EnvOr("RESPIRA_KAFKA_DLQ", ""),
		group:        builder.EnvOr("RESPIRA_KAFKA_GROUP", "respira-worker"),
		earliest:     builder.EnvBoolOr("RESPIRA_KAFKA_EARLIEST", false),
		clientID:     builder.EnvOr("RESPIRA_KAFKA_CLIENT_ID", "respira-worker"),
		caCandidates: builder.EnvOr("RESPIRA_KAFKA_CA", ""),
		serverName:   builder.EnvOr("RESPIRA_KAFKA_SNI", ""),
		saslUser:     builder.EnvOr("RESPIRA_KAFKA_USER", ""),
		saslPass:     builder.EnvOr("RESPIRA_KAFKA_PASS", ""),
		saslMech:     builder.EnvOr("RESPIRA_KAFKA_MECH", "SCRAM-SHA-256"),
		logLevel:     builder.EnvOr("RESPIRA_LOG_LEVEL", "info"),
	}

	cfg.detector = def
	cfg.detector.Method = builder.Method(builder.EnvOr("RESPIRA_METHOD", string(def.Method)))
	cfg.detector.AmplitudeMin = builder.EnvFloatOr("RESPIRA_AMPLITUDE_MIN", def.AmplitudeMin)
	cfg.detector.SamplingRate = builder.EnvIntOr("RESPIRA_SAMPLING_RATE", def.SamplingRate)

	interval := builder.EnvOr("RESPIRA_METER_INTERVAL", "1m")
	d, err := time.ParseDuration(interval)
	if err != nil {
		return cfg, fmt.Errorf("RESPIRA_METER_INTERVAL: %w", err)
	}
	cfg.meterInterval = d

	if len(cfg.brokers) == 0 {
		return cfg, errors.New("RESPIRA_KAFKA_BROKERS is empty")
	}
	if cfg.inTopic == "" || cfg.outTopic == "" {
		return cfg, errors.New("RESPIRA_KAFKA_IN and RESPIRA_KAFKA_OUT are required")
	}
	if cfg.dlqTopic == cfg.inTopic {
		return cfg, errors.New("RESPIRA_KAFKA_DLQ must differ from RESPIRA_KAFKA_IN")
	}
	method, err := builder.ValidateDetectorConfig(cfg.detector)
	if err != nil {
		return cfg, err
	}
	cfg.detector.Method = method
	return cfg, nil
}

// security returns nil when neither TLS nor SASL is configured.
func (c config) security() (*builder.KafkaSecurity, error) {
	if c.caCandidates == "" && c.saslUser == "" {
		return nil, nil
	}
	opts := []builder.KafkaSecurityOption{builder.WithClientID(c.clientID)}
	if c.caCandidates != "" {
		tlsCfg, err := builder.TLSFromCAPathCSV(c.caCandidates, c.serverName)
		if err != nil {
			return nil, err
		}
		opts = append(opts, builder.WithTLS(tlsCfg))
	}
	if c.saslUser != "" {
		mech, err := builder.SASLSCRAM(c.saslUser, c.saslPass, c.saslMech)
		if err != nil {
			return nil, err
		}
		opts = append(opts, builder.WithSASL(mech))
	}
	return builder.NewKafkaSecurity(opts...), nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "rspworker:", err)
		os.Exit(2)
	}

	logger := builder.NewLogger(
		builder.LoggerWithLevel(cfg.logLevel),
		builder.LoggerWithFields(map[string]interface{}{"service": "rspworker"}),
	)
	defer logger.Flush()

	if err := serve(cfg, logger); err != nil {
		logger.Error("worker stopped", "error", err)
		_ = logger.Flush()
		os.Exit(1)
	}
}

func serve(cfg config, logger builder.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sec, err := cfg.security()
	if err != nil {
		return fmt.Errorf("kafka security: %w", err)
	}

	var readerOpts []builder.KafkaGoReaderOption
	if cfg.earliest {
		readerOpts = append(readerOpts, builder.KafkaGoReaderWithEarliestStart())
	}
	reader := builder.NewKafkaGoReaderWithSecurity(cfg.brokers, cfg.group, []string{cfg.inTopic}, sec, readerOpts...)
	writer := builder.NewKafkaGoWriterWithSecurity(cfg.brokers, cfg.outTopic, sec)

	meter := builder.NewMeter(
		builder.MeterWithLogger(logger),
		builder.MeterWithComponentMetadata("rspworker", cfg.group),
	)
	sensor := builder.NewSensor(
		builder.SensorWithMeter(meter),
		builder.SensorWithLogger(logger),
	)

	options := []builder.KafkaWorkerOption{
		builder.KafkaWorkerWithReader(reader),
		builder.KafkaWorkerWithWriter(writer),
		builder.KafkaWorkerWithDetectorConfig(cfg.detector),
		builder.KafkaWorkerWithLogger(logger),
		builder.KafkaWorkerWithSensor(sensor),
		builder.KafkaWorkerWithMeter(meter),
	}
	if cfg.dlqTopic != "" {
		options = append(options, builder.KafkaWorkerWithDeadLetterWriter(
			builder.NewKafkaGoWriterWithSecurity(cfg.brokers, cfg.dlqTopic, sec),
		))
	}
	worker := builder.NewKafkaWorker(options...)
	defer func() {
		if err := worker.Close(); err != nil {
			logger.Warn("close failed", "error", err)
		}
	}()

	if cfg.meterInterval > 0 {
		go builder.MonitorMeter(ctx, meter, cfg.meterInterval)
	}

	logger.Info("worker started",
		"brokers", cfg.brokers,
		"in", cfg.inTopic,
		"out", cfg.outTopic,
		"dlq", cfg.dlqTopic,
		"group", cfg.group,
		"method", string(cfg.detector.Method),
	)
	err = worker.Serve(ctx)
	meter.ReportStatus()
	return err
}
