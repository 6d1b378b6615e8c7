package kafkaclient

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/joeydtaylor/respira/pkg/internal/types"
)

// Serve consumes until ctx is cancelled or the reader is closed. A message is committed once its
// answer or failure is published; a publish failure stops Serve so the message is redelivered.
func (w *Worker) Serve(ctx context.Context) error {
	if w.reader == nil || w.writer == nil {
		return errors.New("kafkaclient: Serve requires a reader and a writer")
	}

	w.NotifyLoggers(types.InfoLevel, "Worker: consumer started",
		"component", w.componentMetadata, "event", "ConsumerStart", "method", w.detector.Method)
	defer w.NotifyLoggers(types.InfoLevel, "Worker: consumer stopped",
		"component", w.componentMetadata, "event", "ConsumerStop")

	for {
		msg, err := w.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			w.NotifyLoggers(types.WarnLevel, "Worker: fetch failed",
				"component", w.componentMetadata, "event", "FetchMessage", "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(w.fetchBackoff):
			}
			continue
		}

		if err := w.HandleMessage(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.NotifyLoggers(types.ErrorLevel, "Worker: message not answered",
				"component", w.componentMetadata, "event", "Handle", "topic", msg.Topic,
				"partition", msg.Partition, "offset", msg.Offset, "error", err)
			return err
		}

		if err := w.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.NotifyLoggers(types.ErrorLevel, "Worker: commit failed",
				"component", w.componentMetadata, "event", "Commit", "offset", msg.Offset, "error", err)
		}
	}
}
