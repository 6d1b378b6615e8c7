package builder

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/scram"

	"github.com/joeydtaylor/respira/pkg/internal/adapter/kafkaclient"
	"github.com/joeydtaylor/respira/pkg/internal/types"
)

// KafkaSecurity groups the optional TLS/SASL settings shared by readers and writers.
type KafkaSecurity struct {
	TLS       *tls.Config
	SASL      sasl.Mechanism
	ClientID  string
	DialerTO  time.Duration
	DualStack bool
}

// Worker message types.
type (
	KafkaWorker        = kafkaclient.Worker
	SignalMessage      = kafkaclient.SignalMessage
	LandmarksMessage   = kafkaclient.LandmarksMessage
	FailureMessage     = kafkaclient.FailureMessage
	KafkaMessageReader = kafkaclient.MessageReader
	KafkaMessageWriter = kafkaclient.MessageWriter
	KafkaWorkerOption  = types.Option[*kafkaclient.Worker]
)

// NewKafkaWorker creates a landmark detection worker. Supply a reader and writer before Serve.
func NewKafkaWorker(options ...KafkaWorkerOption) *KafkaWorker {
	return kafkaclient.NewWorker(options...)
}

func KafkaWorkerWithReader(r KafkaMessageReader) KafkaWorkerOption {
	return kafkaclient.WithReader(r)
}
func KafkaWorkerWithWriter(w KafkaMessageWriter) KafkaWorkerOption {
	return kafkaclient.WithWriter(w)
}
func KafkaWorkerWithDeadLetterWriter(w KafkaMessageWriter) KafkaWorkerOption {
	return kafkaclient.WithDeadLetterWriter(w)
}
func KafkaWorkerWithDetectorConfig(cfg DetectorConfig) KafkaWorkerOption {
	return kafkaclient.WithDetectorConfig(cfg)
}
func KafkaWorkerWithKeyTemplate(tmpl string) KafkaWorkerOption {
	return kafkaclient.WithKeyTemplate(tmpl)
}
func KafkaWorkerWithHeaderTemplates(tmpls map[string]string) KafkaWorkerOption {
	return kafkaclient.WithHeaderTemplates(tmpls)
}
func KafkaWorkerWithProduceRetry(attempts uint, delay, maxDelay time.Duration) KafkaWorkerOption {
	return kafkaclient.WithProduceRetry(attempts, delay, maxDelay)
}
func KafkaWorkerWithFetchBackoff(d time.Duration) KafkaWorkerOption {
	return kafkaclient.WithFetchBackoff(d)
}
func KafkaWorkerWithDedupe(maxEntries int, ttl time.Duration) KafkaWorkerOption {
	return kafkaclient.WithDedupe(maxEntries, ttl)
}
func KafkaWorkerWithLogger(l ...Logger) KafkaWorkerOption {
	return kafkaclient.WithLogger(l...)
}
func KafkaWorkerWithSensor(s ...Sensor) KafkaWorkerOption {
	return kafkaclient.WithSensor(s...)
}
func KafkaWorkerWithMeter(m ...Meter) KafkaWorkerOption {
	return kafkaclient.WithMeter(m...)
}
func KafkaWorkerWithComponentMetadata(name, id string) KafkaWorkerOption {
	return kafkaclient.WithComponentMetadata(name, id)
}

// ---- kafka-go Writer convenience ----

type KafkaGoWriterOption func(*kafka.Writer)

// NewKafkaGoWriter builds a sensible kafka-go Writer for the given brokers/topic.
func NewKafkaGoWriter(brokers []string, topic string, opts ...KafkaGoWriterOption) *kafka.Writer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           200 * time.Millisecond,
		BatchBytes:             int64(1 << 20), // kafka-go uses int64 for BatchBytes
		BatchSize:              1000,
		RequiredAcks:           kafka.RequireAll,
		Async:                  false,
		AllowAutoTopicCreation: true,
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

func KafkaGoWriterWithRoundRobin() KafkaGoWriterOption {
	return func(w *kafka.Writer) { w.Balancer = &kafka.RoundRobin{} }
}
func KafkaGoWriterWithHash() KafkaGoWriterOption {
	return func(w *kafka.Writer) { w.Balancer = &kafka.Hash{} }
}
func KafkaGoWriterWithLeastBytes() KafkaGoWriterOption {
	return func(w *kafka.Writer) { w.Balancer = &kafka.LeastBytes{} }
}
func KafkaGoWriterWithBatchTimeout(d time.Duration) KafkaGoWriterOption {
	return func(w *kafka.Writer) { w.BatchTimeout = d }
}
func KafkaGoWriterWithBatchBytes(n int64) KafkaGoWriterOption { // int64 to match kafka-go
	return func(w *kafka.Writer) { w.BatchBytes = n }
}
func KafkaGoWriterWithBatchSize(n int) KafkaGoWriterOption {
	return func(w *kafka.Writer) { w.BatchSize = n }
}
func KafkaGoWriterWithAsync(async bool) KafkaGoWriterOption {
	return func(w *kafka.Writer) { w.Async = async }
}
func KafkaGoWriterWithRequiredAcks(mode string) KafkaGoWriterOption {
	return func(w *kafka.Writer) {
		switch strings.ToLower(mode) {
		case "0", "none":
			w.RequiredAcks = kafka.RequireNone
		case "1", "leader":
			w.RequiredAcks = kafka.RequireOne
		default: // "all", "-1"
			w.RequiredAcks = kafka.RequireAll
		}
	}
}

// ---- kafka-go Reader convenience ----

type KafkaGoReaderOption func(*kafka.ReaderConfig)

// NewKafkaGoReader builds a kafka-go Reader for a consumer group over one or more topics.
func NewKafkaGoReader(brokers []string, group string, topics []string, opts ...KafkaGoReaderOption) *kafka.Reader {
	cfg := kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        group,
		StartOffset:    kafka.LastOffset, // "latest"
		MinBytes:       1 << 10,          // 1 KiB
		MaxBytes:       10 << 20,         // 10 MiB
		MaxWait:        500 * time.Millisecond,
		CommitInterval: 1 * time.Second, // driver auto-commit cadence
	}
	// Single vs multi-topic wiring (kafka-go uses Topic OR GroupTopics)
	if len(topics) == 1 {
		cfg.Topic = topics[0]
	} else if len(topics) > 1 {
		cfg.GroupTopics = topics
	}
	for _, o := range opts {
		o(&cfg)
	}
	return kafka.NewReader(cfg)
}

func KafkaGoReaderWithEarliestStart() KafkaGoReaderOption {
	return func(c *kafka.ReaderConfig) { c.StartOffset = kafka.FirstOffset }
}
func KafkaGoReaderWithLatestStart() KafkaGoReaderOption {
	return func(c *kafka.ReaderConfig) { c.StartOffset = kafka.LastOffset }
}
func KafkaGoReaderWithMinBytes(n int) KafkaGoReaderOption {
	return func(c *kafka.ReaderConfig) { c.MinBytes = n }
}
func KafkaGoReaderWithMaxBytes(n int) KafkaGoReaderOption {
	return func(c *kafka.ReaderConfig) { c.MaxBytes = n }
}
func KafkaGoReaderWithMaxWait(d time.Duration) KafkaGoReaderOption {
	return func(c *kafka.ReaderConfig) { c.MaxWait = d }
}
func KafkaGoReaderWithCommitInterval(d time.Duration) KafkaGoReaderOption {
	return func(c *kafka.ReaderConfig) { c.CommitInterval = d }
}

// -------------------------------------------------
// Security helpers (TLS + SASL) to reduce boilerplate
// -------------------------------------------------

// TLSFromCAFilesStrict loads a strict TLS config (Min TLS1.2) using the first
// existing file path from candidates. If serverName != "", it is set for SNI
// and hostname verification.
func TLSFromCAFilesStrict(candidates []string, serverName string) (*tls.Config, error) {
	var picked string
	for _, p := range candidates {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			picked = p
			break
		}
	}
	if picked == "" {
		return nil, fmt.Errorf("no CA file found in candidates: %v", candidates)
	}
	pem, err := os.ReadFile(filepath.Clean(picked))
	if err != nil {
		return nil, fmt.Errorf("read CA: %w", err)
	}
	cp := x509.NewCertPool()
	if !cp.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("invalid CA PEM at %s", picked)
	}
	cfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		RootCAs:    cp,
	}
	if serverName != "" {
		cfg.ServerName = serverName
	}
	return cfg, nil
}

// TLSFromCAPathCSV convenience wrapper around TLSFromCAFilesStrict.
func TLSFromCAPathCSV(csv, serverName string) (*tls.Config, error) {
	var paths []string
	for _, p := range strings.Split(csv, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			paths = append(paths, p)
		}
	}
	return TLSFromCAFilesStrict(paths, serverName)
}

// SASLSCRAM returns a sasl.Mechanism for kafka-go from a common name.
// Supported: "SCRAM-SHA-256" (default), "SCRAM-SHA-512".
func SASLSCRAM(user, pass, mech string) (sasl.Mechanism, error) {
	switch strings.ToUpper(strings.ReplaceAll(mech, "_", "-")) {
	case "", "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, user, pass)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, user, pass)
	default:
		return nil, fmt.Errorf("unsupported SASL mechanism: %s", mech)
	}
}

// NewKafkaGoTransport builds a kafka-go Transport with optional TLS/SASL/ClientID.
func NewKafkaGoTransport(tlsCfg *tls.Config, mech sasl.Mechanism, clientID string) *kafka.Transport {
	return &kafka.Transport{
		TLS:      tlsCfg,
		SASL:     mech,
		ClientID: clientID,
	}
}

// NewKafkaGoDialer builds a kafka-go Dialer with optional TLS/SASL.
// If timeout is zero, 10s is used. DualStack is set as provided.
func NewKafkaGoDialer(tlsCfg *tls.Config, mech sasl.Mechanism, timeout time.Duration, dualStack bool) *kafka.Dialer {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &kafka.Dialer{
		Timeout:       timeout,
		DualStack:     dualStack,
		SASLMechanism: mech,
		TLS:           tlsCfg,
	}
}

// Option helpers to attach Transport/Dialer to the convenience constructors below.
func KafkaGoWriterWithTransport(t *kafka.Transport) KafkaGoWriterOption {
	return func(w *kafka.Writer) { w.Transport = t }
}
func KafkaGoReaderWithDialer(d *kafka.Dialer) KafkaGoReaderOption {
	return func(c *kafka.ReaderConfig) { c.Dialer = d }
}

// NewKafkaGoWriterSecure: NewKafkaGoWriter + Transport(TLS/SASL) in one call.
func NewKafkaGoWriterSecure(brokers []string, topic string, tlsCfg *tls.Config, mech sasl.Mechanism, clientID string, opts ...KafkaGoWriterOption) *kafka.Writer {
	transport := NewKafkaGoTransport(tlsCfg, mech, clientID)
	opts = append([]KafkaGoWriterOption{KafkaGoWriterWithTransport(transport)}, opts...)
	return NewKafkaGoWriter(brokers, topic, opts...)
}

// NewKafkaGoReaderSecure: NewKafkaGoReader + Dialer(TLS/SASL) in one call.
// timeout=0 => 10s. dualStack=true is typical for local dev.
func NewKafkaGoReaderSecure(brokers []string, group string, topics []string, tlsCfg *tls.Config, mech sasl.Mechanism, timeout time.Duration, dualStack bool, opts ...KafkaGoReaderOption) *kafka.Reader {
	dialer := NewKafkaGoDialer(tlsCfg, mech, timeout, dualStack)
	opts = append([]KafkaGoReaderOption{KafkaGoReaderWithDialer(dialer)}, opts...)
	return NewKafkaGoReader(brokers, group, topics, opts...)
}

// -------------------------------------------------
// KafkaSecurity builder
// -------------------------------------------------

// KafkaSecurityOption mutates a KafkaSecurity.
type KafkaSecurityOption func(*KafkaSecurity)

// NewKafkaSecurity creates a KafkaSecurity with sensible defaults.
// Defaults: DialerTO=10s, DualStack=true. TLS/SASL/ClientID are optional.
func NewKafkaSecurity(opts ...KafkaSecurityOption) *KafkaSecurity {
	sec := &KafkaSecurity{
		DialerTO:  10 * time.Second,
		DualStack: true,
	}
	for _, o := range opts {
		o(sec)
	}
	return sec
}

func WithTLS(cfg *tls.Config) KafkaSecurityOption {
	return func(s *KafkaSecurity) { s.TLS = cfg }
}
func WithSASL(mech sasl.Mechanism) KafkaSecurityOption {
	return func(s *KafkaSecurity) { s.SASL = mech }
}
func WithClientID(id string) KafkaSecurityOption {
	return func(s *KafkaSecurity) { s.ClientID = id }
}
func WithDialer(timeout time.Duration, dualStack bool) KafkaSecurityOption {
	return func(s *KafkaSecurity) {
		if timeout > 0 {
			s.DialerTO = timeout
		}
		s.DualStack = dualStack
	}
}

// NewKafkaGoTransportFromSecurity maps KafkaSecurity -> kafka.Transport.
func NewKafkaGoTransportFromSecurity(sec *KafkaSecurity) *kafka.Transport {
	if sec == nil {
		return nil
	}
	return NewKafkaGoTransport(sec.TLS, sec.SASL, sec.ClientID)
}

// NewKafkaGoDialerFromSecurity maps KafkaSecurity -> kafka.Dialer.
func NewKafkaGoDialerFromSecurity(sec *KafkaSecurity) *kafka.Dialer {
	if sec == nil {
		return nil
	}
	timeout := sec.DialerTO
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return NewKafkaGoDialer(sec.TLS, sec.SASL, timeout, sec.DualStack)
}

// NewKafkaGoWriterWithSecurity wires a writer and applies security.Transport.
func NewKafkaGoWriterWithSecurity(brokers []string, topic string, sec *KafkaSecurity, opts ...KafkaGoWriterOption) *kafka.Writer {
	if sec != nil {
		opts = append([]KafkaGoWriterOption{KafkaGoWriterWithTransport(NewKafkaGoTransportFromSecurity(sec))}, opts...)
	}
	return NewKafkaGoWriter(brokers, topic, opts...)
}

// NewKafkaGoReaderWithSecurity wires a reader and applies security.Dialer.
func NewKafkaGoReaderWithSecurity(brokers []string, group string, topics []string, sec *KafkaSecurity, opts ...KafkaGoReaderOption) *kafka.Reader {
	if sec != nil {
		opts = append([]KafkaGoReaderOption{KafkaGoReaderWithDialer(NewKafkaGoDialerFromSecurity(sec))}, opts...)
	}
	return NewKafkaGoReader(brokers, group, topics, opts...)
}
