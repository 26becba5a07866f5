package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/antonkazakov/dmline-server/internal/store"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.New(nil)
	return &logger
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func mustNoEvent(t *testing.T, ch <-chan *Event) {
	t.Helper()

	select {
	case ev := <-ch:
		t.Fatalf("expected no event, got %+v", ev)
	default:
	}
}

func timeoutC(t *testing.T) <-chan time.Time {
	t.Helper()
	return time.After(2 * time.Second)
}

// stubRecorder is an in-memory MessageRecorder with a failure switch.
type stubRecorder struct {
	mu    sync.Mutex
	saved []*store.Message
	fail  error
	clock time.Time
}

func newStubRecorder() *stubRecorder {
	return &stubRecorder{clock: time.Now()}
}

func (r *stubRecorder) SaveMessage(_ context.Context, msg *store.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fail != nil {
		return r.fail
	}
	r.clock = r.clock.Add(time.Millisecond)
	msg.ID = int64(len(r.saved) + 1)
	msg.CreatedAt = r.clock
	r.saved = append(r.saved, msg)
	return nil
}

func (r *stubRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saved)
}
