package core

import (
	"context"
	"errors"
	"testing"
)

func newTestRouter(rec *stubRecorder) (*Router, *Registry) {
	reg := NewRegistry()
	return NewRouter(reg, rec, testLogger()), reg
}

func TestRouterPersistsThenDeliversAndEchoes(t *testing.T) {
	rec := newStubRecorder()
	router, reg := newTestRouter(rec)

	alice := NewClient("alice", "conn-a")
	bob := NewClient("bob", "conn-b")
	reg.Register(alice)
	reg.Register(bob)

	raw := []byte(`{"from_user":"alice","to_user":"bob","content":"hi"}`)
	if cerr := router.Handle(context.Background(), alice, raw); cerr != nil {
		t.Fatalf("handle failed: %v", cerr)
	}

	if rec.count() != 1 {
		t.Fatalf("expected message to be persisted once, got %d", rec.count())
	}

	delivered := mustEvent(t, bob.Events(), EventMessage)
	echoed := mustEvent(t, alice.Events(), EventMessage)

	if delivered.Message != echoed.Message {
		t.Fatalf("recipient copy and echo must be the same canonical message")
	}
	if delivered.Message.From != "alice" || delivered.Message.To != "bob" || delivered.Message.Content != "hi" {
		t.Fatalf("unexpected message: %+v", delivered.Message)
	}
	if delivered.Message.CreatedAt.IsZero() {
		t.Fatalf("expected a server-assigned timestamp")
	}
}

func TestRouterEchoesWhenRecipientOffline(t *testing.T) {
	rec := newStubRecorder()
	router, reg := newTestRouter(rec)

	alice := NewClient("alice", "conn-a")
	reg.Register(alice)

	raw := []byte(`{"from_user":"alice","to_user":"carol","content":"hello?"}`)
	if cerr := router.Handle(context.Background(), alice, raw); cerr != nil {
		t.Fatalf("handle failed: %v", cerr)
	}

	if rec.count() != 1 {
		t.Fatalf("expected message to be persisted")
	}
	ev := mustEvent(t, alice.Events(), EventMessage)
	if ev.Message.To != "carol" {
		t.Fatalf("unexpected echo: %+v", ev.Message)
	}
}

func TestRouterStorageFailureAbortsDelivery(t *testing.T) {
	rec := newStubRecorder()
	rec.fail = errors.New("disk on fire")
	router, reg := newTestRouter(rec)

	alice := NewClient("alice", "conn-a")
	bob := NewClient("bob", "conn-b")
	reg.Register(alice)
	reg.Register(bob)

	raw := []byte(`{"from_user":"alice","to_user":"bob","content":"hi"}`)
	cerr := router.Handle(context.Background(), alice, raw)
	if cerr == nil || cerr.Code != ErrCodeStorageFailed {
		t.Fatalf("expected storage_failed, got %+v", cerr)
	}

	// No partial forward: neither delivery nor echo.
	mustNoEvent(t, bob.Events())
	mustNoEvent(t, alice.Events())
}

func TestRouterRejectsMalformedPayloads(t *testing.T) {
	rec := newStubRecorder()
	router, _ := newTestRouter(rec)

	alice := NewClient("alice", "conn-a")

	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `{{{`},
		{"missing recipient", `{"from_user":"alice","content":"hi"}`},
		{"missing content", `{"from_user":"alice","to_user":"bob"}`},
		{"empty content", `{"from_user":"alice","to_user":"bob","content":""}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cerr := router.Handle(context.Background(), alice, []byte(tc.raw))
			if cerr == nil || cerr.Code != ErrCodeBadPayload {
				t.Fatalf("expected bad_payload, got %+v", cerr)
			}
		})
	}

	if rec.count() != 0 {
		t.Fatalf("malformed payloads must not be persisted")
	}
}

func TestRouterRejectsSpoofedSender(t *testing.T) {
	rec := newStubRecorder()
	router, _ := newTestRouter(rec)

	mallory := NewClient("mallory", "conn-m")

	raw := []byte(`{"from_user":"alice","to_user":"bob","content":"hi"}`)
	cerr := router.Handle(context.Background(), mallory, raw)
	if cerr == nil || cerr.Code != ErrCodeSenderMismatch {
		t.Fatalf("expected sender_mismatch, got %+v", cerr)
	}
	if rec.count() != 0 {
		t.Fatalf("spoofed message must not be persisted")
	}
}

func TestRouterSuppressesRecipientSendFailure(t *testing.T) {
	rec := newStubRecorder()
	router, reg := newTestRouter(rec)

	alice := NewClient("alice", "conn-a")
	bob := NewClient("bob", "conn-b")
	bob.Close() // recipient transport already broken
	reg.Register(alice)
	reg.Register(bob)

	raw := []byte(`{"from_user":"alice","to_user":"bob","content":"hi"}`)
	if cerr := router.Handle(context.Background(), alice, raw); cerr != nil {
		t.Fatalf("delivery failure must not surface to the sender, got %+v", cerr)
	}

	// The echo still happens.
	mustEvent(t, alice.Events(), EventMessage)
}

func TestRouterCarriesAttachment(t *testing.T) {
	rec := newStubRecorder()
	router, reg := newTestRouter(rec)

	alice := NewClient("alice", "conn-a")
	reg.Register(alice)

	raw := []byte(`{"from_user":"alice","to_user":"bob","content":"see file",` +
		`"file_data":"aGVsbG8=","file_name":"hello.txt","file_type":"text/plain"}`)
	if cerr := router.Handle(context.Background(), alice, raw); cerr != nil {
		t.Fatalf("handle failed: %v", cerr)
	}

	ev := mustEvent(t, alice.Events(), EventMessage)
	att := ev.Message.Attachment
	if att == nil || att.Data != "aGVsbG8=" || att.Name != "hello.txt" || att.MediaType != "text/plain" {
		t.Fatalf("unexpected attachment: %+v", att)
	}
}
