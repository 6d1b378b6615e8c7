package kafkaclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/codeGROOVE-dev/retry"
	"github.com/joeydtaylor/respira/pkg/internal/rsp"
	"github.com/joeydtaylor/respira/pkg/internal/types"
	"github.com/joeydtaylor/respira/pkg/internal/utils"
	"github.com/segmentio/kafka-go"
)

// HandleMessage answers one consumed message. Detection and decode failures go to the dead letter
// writer and count as handled; a non-nil error means nothing could be published.
func (w *Worker) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var in SignalMessage
	if err := json.Unmarshal(msg.Value, &in); err != nil {
		w.NotifyLoggers(types.ErrorLevel, "Worker: decode failed",
			"component", w.componentMetadata, "event", "Decode", "topic", msg.Topic,
			"partition", msg.Partition, "offset", msg.Offset, "error", err)
		return w.deadLetter(ctx, msg, FailureMessage{Error: fmt.Sprintf("decode: %v", err)})
	}

	key := dedupeKey(in)
	answered := w.answeredCache()
	if _, ok := answered.GetIfPresent(key); ok {
		w.incrementMeters(types.MetricMessagesSkipped)
		w.NotifyLoggers(types.DebugLevel, "Worker: message already answered",
			"component", w.componentMetadata, "event", "Skip", "id", in.ID, "offset", msg.Offset)
		return nil
	}

	cfg := w.configFor(in)
	det := rsp.NewDetector(
		rsp.WithConfig(cfg),
		rsp.WithLogger(w.snapshotLoggers()...),
		rsp.WithSensor(w.snapshotSensors()...),
	)

	landmarks, err := det.FindPeaks(ctx, in.Samples)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err := w.deadLetter(ctx, msg, FailureMessage{ID: in.ID, Method: string(cfg.Method), Error: err.Error()}); err != nil {
			return err
		}
		answered.Set(key, struct{}{})
		return nil
	}

	method, _ := rsp.ParseMethod(string(cfg.Method))
	out := LandmarksMessage{ID: in.ID, Method: string(method), Peaks: landmarks.Peaks, Troughs: landmarks.Troughs}
	if out.Peaks == nil {
		out.Peaks = []int{}
	}
	if out.Troughs == nil {
		out.Troughs = []int{}
	}
	body, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("kafkaclient: encode landmarks: %w", err)
	}
	if w.writer == nil {
		return errors.New("kafkaclient: no writer configured")
	}
	if err := w.publish(ctx, w.writer, body, "ok"); err != nil {
		return err
	}
	answered.Set(key, struct{}{})

	w.NotifyLoggers(types.InfoLevel, "Worker: landmarks published",
		"component", w.componentMetadata, "event", "Publish", "id", in.ID,
		"method", out.Method, "pairs", landmarks.Len(), "offset", msg.Offset)
	return nil
}

// configFor overlays the per-message overrides on the worker defaults.
func (w *Worker) configFor(in SignalMessage) types.DetectorConfig {
	cfg := w.detector
	if m := strings.TrimSpace(in.Method); m != "" {
		cfg.Method = types.Method(m)
	}
	if in.AmplitudeMin != nil {
		cfg.AmplitudeMin = *in.AmplitudeMin
	}
	if in.SamplingRate > 0 {
		cfg.SamplingRate = in.SamplingRate
	}
	return cfg
}

// dedupeKey identifies a request by id, or by content when the producer sent none.
func dedupeKey(in SignalMessage) string {
	if in.ID != "" {
		return "id:" + in.ID
	}
	amp := "default"
	if in.AmplitudeMin != nil {
		amp = fmt.Sprint(*in.AmplitudeMin)
	}
	return fmt.Sprintf("fp:%s:%s:%s",
		utils.FingerprintSamples(in.SamplingRate, in.Samples),
		strings.ToLower(strings.TrimSpace(in.Method)), amp)
}

func (w *Worker) deadLetter(ctx context.Context, msg kafka.Message, f FailureMessage) error {
	f.Topic = msg.Topic
	f.Partition = msg.Partition
	f.Offset = msg.Offset

	if w.dlq == nil {
		w.NotifyLoggers(types.ErrorLevel, "Worker: failure dropped, no dead letter writer",
			"component", w.componentMetadata, "event", "DeadLetter", "id", f.ID, "error", f.Error)
		return nil
	}

	body, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("kafkaclient: encode failure: %w", err)
	}
	if err := w.publish(ctx, w.dlq, body, "failed"); err != nil {
		return err
	}
	w.NotifyLoggers(types.WarnLevel, "Worker: failure dead-lettered",
		"component", w.componentMetadata, "event", "DeadLetter", "id", f.ID,
		"offset", msg.Offset, "error", f.Error)
	return nil
}

func (w *Worker) publish(ctx context.Context, mw MessageWriter, body []byte, status string) error {
	out := kafka.Message{
		Key:     renderKeyFromTemplate(w.keyTmpl, body),
		Value:   body,
		Headers: renderHeadersFromTemplates(w.headerTmpl, body),
	}
	out.Headers = append(out.Headers, kafka.Header{Key: "rsp-status", Value: []byte(status)})

	var lastErr error
	err := retry.Do(
		func() error {
			if err := mw.WriteMessages(ctx, out); err != nil {
				lastErr = err
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(w.produceAttempts),
		retry.Delay(w.produceDelay),
		retry.MaxDelay(w.produceMaxDelay),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.OnRetry(func(n uint, err error) {
			w.NotifyLoggers(types.WarnLevel, "Worker: retrying publish",
				"component", w.componentMetadata, "event", "Publish", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return fmt.Errorf("kafkaclient: publish: %w", lastErr)
	}
	return nil
}
