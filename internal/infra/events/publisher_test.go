package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func headerValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisher(w, "")
	p.now = func() time.Time { return time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC) }

	err := p.Publish(context.Background(), SlotEvent{
		Type:     TypeSlotBooked,
		TenantID: "t1",
		SlotID:   "slot-1",
		StartAt:  time.Date(2025, 10, 16, 10, 0, 0, 0, time.UTC),
		EndAt:    time.Date(2025, 10, 16, 11, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, DefaultTopic, msg.Topic)
	assert.Equal(t, "slot-1", string(msg.Key))
	assert.Equal(t, "slot.booked", headerValue(msg.Headers, "event_type"))
	assert.NotEmpty(t, headerValue(msg.Headers, "event_id"))

	var decoded SlotEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, headerValue(msg.Headers, "event_id"), decoded.ID)
	assert.Equal(t, p.now(), decoded.OccurredAt)
}

func TestPublisher_InjectsTraceContext(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	w := &fakeWriter{}
	require.NoError(t, NewPublisher(w, "t").Publish(ctx, SlotEvent{Type: TypeSlotCancelled, SlotID: "s"}))

	assert.Equal(t, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01", headerValue(w.msgs[0].Headers, "traceparent"))
}

func TestPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	err := NewPublisher(w, "t").Publish(context.Background(), SlotEvent{Type: TypeSlotExpired, SlotID: "s"})
	assert.ErrorIs(t, err, ErrPublish)
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, SplitBrokers(" a:9092, ,b:9092 "))
	assert.Nil(t, SplitBrokers(""))
}
