// Package kafkaclient runs landmark detection as a Kafka consumer/producer.
package kafkaclient

import (
	"context"
	"sync"
	"time"

	"github.com/joeydtaylor/respira/pkg/internal/rsp"
	"github.com/joeydtaylor/respira/pkg/internal/types"
	"github.com/joeydtaylor/respira/pkg/internal/utils"
	"github.com/maypok86/otter/v2"
	"github.com/segmentio/kafka-go"
)

// MessageReader is the consuming side of a worker; *kafka.Reader satisfies it.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// MessageWriter is the producing side of a worker; *kafka.Writer satisfies it.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Worker consumes SignalMessages, runs a detector per message and publishes LandmarksMessages.
type Worker struct {
	componentMetadata types.ComponentMetadata

	reader MessageReader
	writer MessageWriter
	dlq    MessageWriter

	detector   types.DetectorConfig
	keyTmpl    string
	headerTmpl map[string]string

	produceAttempts uint
	produceDelay    time.Duration
	produceMaxDelay time.Duration
	fetchBackoff    time.Duration

	answered    *otter.Cache[string, struct{}]
	dedupeSize  int
	dedupeTTL   time.Duration
	initAnswers sync.Once

	loggers     []types.Logger
	loggersLock sync.Mutex
	sensors     []types.Sensor
	sensorsLock sync.Mutex
	meters      []types.Meter
	metersLock  sync.Mutex
}

// NewWorker creates a worker. A reader and a writer must be supplied before Serve.
func NewWorker(options ...types.Option[*Worker]) *Worker {
	w := &Worker{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "KAFKA_WORKER",
		},
		detector:        rsp.DefaultConfig(),
		keyTmpl:         "{id}",
		headerTmpl:      map[string]string{"content-type": "application/json", "rsp-method": "{method}"},
		produceAttempts: 5,
		produceDelay:    100 * time.Millisecond,
		produceMaxDelay: 5 * time.Second,
		fetchBackoff:    time.Second,
		dedupeSize:      100_000,
		dedupeTTL:       time.Hour,
	}

	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

func (w *Worker) answeredCache() *otter.Cache[string, struct{}] {
	w.initAnswers.Do(func() {
		w.answered = otter.Must(&otter.Options[string, struct{}]{
			MaximumSize:      w.dedupeSize,
			ExpiryCalculator: otter.ExpiryWriting[string, struct{}](w.dedupeTTL),
		})
	})
	return w.answered
}

// GetComponentMetadata returns the worker metadata.
func (w *Worker) GetComponentMetadata() types.ComponentMetadata { return w.componentMetadata }

// SetComponentMetadata overrides name/id while preserving the component type.
func (w *Worker) SetComponentMetadata(name, id string) {
	w.componentMetadata = types.ComponentMetadata{
		Name: name,
		ID:   id,
		Type: w.componentMetadata.Type,
	}
}

// Close closes the reader and writers.
func (w *Worker) Close() error {
	var first error
	closers := []interface{ Close() error }{w.reader, w.writer}
	if w.dlq != w.writer {
		closers = append(closers, w.dlq)
	}
	for _, c := range closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
