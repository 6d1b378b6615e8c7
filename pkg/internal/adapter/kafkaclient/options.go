package kafkaclient

import (
	"time"

	"github.com/joeydtaylor/respira/pkg/internal/types"
)

// WithReader sets the consumer.
func WithReader(r MessageReader) types.Option[*Worker] {
	return func(w *Worker) { w.reader = r }
}

// WithWriter sets the producer for answers.
func WithWriter(mw MessageWriter) types.Option[*Worker] {
	return func(w *Worker) { w.writer = mw }
}

// WithDeadLetterWriter sets the producer for failures. Without one, failures are only logged.
func WithDeadLetterWriter(mw MessageWriter) types.Option[*Worker] {
	return func(w *Worker) { w.dlq = mw }
}

// WithDetectorConfig sets the defaults applied to every message.
func WithDetectorConfig(cfg types.DetectorConfig) types.Option[*Worker] {
	return func(w *Worker) { w.detector = cfg }
}

// WithKeyTemplate sets the message key of answers; "{field}" resolves against the answer JSON.
func WithKeyTemplate(tmpl string) types.Option[*Worker] {
	return func(w *Worker) { w.keyTmpl = tmpl }
}

// WithHeaderTemplates merges header templates rendered like the key template.
func WithHeaderTemplates(tmpls map[string]string) types.Option[*Worker] {
	return func(w *Worker) {
		merged := make(map[string]string, len(w.headerTmpl)+len(tmpls))
		for k, v := range w.headerTmpl {
			merged[k] = v
		}
		for k, v := range tmpls {
			merged[k] = v
		}
		w.headerTmpl = merged
	}
}

// WithProduceRetry sets attempts and backoff bounds for publishing.
func WithProduceRetry(attempts uint, delay, maxDelay time.Duration) types.Option[*Worker] {
	return func(w *Worker) {
		if attempts > 0 {
			w.produceAttempts = attempts
		}
		if delay > 0 {
			w.produceDelay = delay
		}
		if maxDelay >= delay && maxDelay > 0 {
			w.produceMaxDelay = maxDelay
		}
	}
}

// WithFetchBackoff sets the pause after a failed fetch.
func WithFetchBackoff(d time.Duration) types.Option[*Worker] {
	return func(w *Worker) { w.fetchBackoff = d }
}

// WithDedupe bounds the cache of answered message ids.
func WithDedupe(maxEntries int, ttl time.Duration) types.Option[*Worker] {
	return func(w *Worker) {
		if maxEntries > 0 {
			w.dedupeSize = maxEntries
		}
		if ttl > 0 {
			w.dedupeTTL = ttl
		}
	}
}

// WithLogger attaches loggers to the worker and its detectors.
func WithLogger(l ...types.Logger) types.Option[*Worker] {
	return func(w *Worker) { w.ConnectLogger(l...) }
}

// WithSensor attaches sensors to every detector the worker runs.
func WithSensor(s ...types.Sensor) types.Option[*Worker] {
	return func(w *Worker) { w.ConnectSensor(s...) }
}

// WithMeter attaches meters counting skipped messages.
func WithMeter(m ...types.Meter) types.Option[*Worker] {
	return func(w *Worker) { w.ConnectMeter(m...) }
}

// WithComponentMetadata sets the worker name and id.
func WithComponentMetadata(name, id string) types.Option[*Worker] {
	return func(w *Worker) { w.SetComponentMetadata(name, id) }
}
