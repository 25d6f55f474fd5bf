package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/simoneromano96/coffeed-coffee-service/internal/server/events"
	"github.com/simoneromano96/coffeed-coffee-service/pkg/catalog"
)

// newTestBroker returns a running broker that stops with the test.
func newTestBroker(t *testing.T) *events.Broker {
	t.Helper()
	logger := zerolog.Nop()
	broker := events.NewBroker(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go broker.Run(ctx)

	return broker
}

// stream runs Stream in a goroutine against a recorder and returns the
// cancel that ends the request plus a channel closed when Stream returns.
func stream(t *testing.T, s *Streamer, filter *catalog.MutationKind) (*httptest.ResponseRecorder, context.CancelFunc, chan struct{}) {
	t.Helper()

	rec := httptest.NewRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/items/subscribe/stream", nil).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Stream(rec, req, filter)
	}()

	return rec, cancel, done
}

// TestStreamer_ConnectedEvent tests the initial handshake frame and headers.
func TestStreamer_ConnectedEvent(t *testing.T) {
	logger := zerolog.Nop()
	broker := newTestBroker(t)
	s := NewStreamer(broker, &logger)

	rec, cancel, done := stream(t, s, nil)
	time.Sleep(50 * time.Millisecond)

	if count := s.ClientCount(); count != 1 {
		t.Errorf("expected 1 client, got %d", count)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stream did not return after disconnect")
	}

	if count := s.ClientCount(); count != 0 {
		t.Errorf("expected 0 clients after disconnect, got %d", count)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("expected text/event-stream, got %q", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "event: connected") {
		t.Errorf("expected connected event in stream, got:\n%s", body)
	}
}

// TestStreamer_DeliversEvents tests that published mutations appear as
// SSE frames.
func TestStreamer_DeliversEvents(t *testing.T) {
	logger := zerolog.Nop()
	broker := newTestBroker(t)
	s := NewStreamer(broker, &logger)

	rec, cancel, done := stream(t, s, nil)
	time.Sleep(50 * time.Millisecond)

	broker.Publish(catalog.NewChangeEvent(catalog.MutationCreated, "item-1"))
	broker.Publish(catalog.NewChangeEvent(catalog.MutationDeleted, "item-2"))
	time.Sleep(100 * time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stream did not return after disconnect")
	}

	body := rec.Body.String()
	if !strings.Contains(body, "event: item.created") {
		t.Errorf("expected item.created frame, got:\n%s", body)
	}
	if !strings.Contains(body, `"item_id":"item-1"`) {
		t.Errorf("expected item-1 payload, got:\n%s", body)
	}
	if !strings.Contains(body, "event: item.deleted") {
		t.Errorf("expected item.deleted frame, got:\n%s", body)
	}
}

// TestStreamer_Filter tests that a kind filter narrows the stream.
func TestStreamer_Filter(t *testing.T) {
	logger := zerolog.Nop()
	broker := newTestBroker(t)
	s := NewStreamer(broker, &logger)

	kind := catalog.MutationUpdated
	rec, cancel, done := stream(t, s, &kind)
	time.Sleep(50 * time.Millisecond)

	broker.Publish(catalog.NewChangeEvent(catalog.MutationCreated, "skip"))
	broker.Publish(catalog.NewChangeEvent(catalog.MutationUpdated, "keep"))
	time.Sleep(100 * time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stream did not return after disconnect")
	}

	body := rec.Body.String()
	if strings.Contains(body, "event: item.created") {
		t.Errorf("created event should have been filtered out:\n%s", body)
	}
	if !strings.Contains(body, "event: item.updated") {
		t.Errorf("expected item.updated frame, got:\n%s", body)
	}
	if !strings.Contains(body, `"item_id":"keep"`) {
		t.Errorf("expected keep payload, got:\n%s", body)
	}
}

// TestStreamer_BrokerShutdown tests that broker shutdown ends the stream.
func TestStreamer_BrokerShutdown(t *testing.T) {
	logger := zerolog.Nop()
	broker := events.NewBroker(&logger)

	brokerCtx, stopBroker := context.WithCancel(context.Background())
	go broker.Run(brokerCtx)

	s := NewStreamer(broker, &logger)
	_, cancel, done := stream(t, s, nil)
	defer cancel()
	time.Sleep(50 * time.Millisecond)

	stopBroker()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stream did not return after broker shutdown")
	}
}
