package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestStores(t *testing.T) (*ChatStore, *ProfileStore) {
	t.Helper()
	dir := t.TempDir()
	chat, err := NewChatStore(filepath.Join(dir, "chat.json"))
	if err != nil {
		t.Fatalf("chat store: %v", err)
	}
	profiles, err := NewProfileStore(filepath.Join(dir, "profile.json"))
	if err != nil {
		t.Fatalf("profile store: %v", err)
	}
	return chat, profiles
}

func TestGeneratorSendMergesFragmentsInOrder(t *testing.T) {
	var gotSystem string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotSystem = string(body)
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, sseBody(
			chunkLine(t, "Hel"),
			chunkLine(t, "lo, "),
			chunkLine(t, "world"),
			"data: [DONE]",
		))
	}))
	defer srv.Close()

	chat, profiles := newTestStores(t)
	if err := profiles.SetProfile(CreatorProfile{
		Name: "Ana", Niche: "productivity", Voice: "direct", TargetAudience: "founders",
	}); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	profiles.SetBrief(ReelBrief{Topic: "5AM routine"})

	gen := &Generator{
		Client:   NewDeepSeekClient("test-key", "", srv.URL, 0),
		Chat:     chat,
		Profiles: profiles,
		Log:      zerolog.Nop(),
	}

	var updates []string
	err := gen.Send(context.Background(), "morning routine", ScriptOptions{}, func(acc string) {
		updates = append(updates, acc)
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	msgs := chat.Messages()
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want user + assistant", len(msgs))
	}
	if msgs[0].Role != RoleUser || msgs[0].Content != "morning routine" {
		t.Fatalf("user message: %+v", msgs[0])
	}
	if msgs[1].Role != RoleAssistant || msgs[1].Content != "Hello, world" {
		t.Fatalf("assistant message: %+v", msgs[1])
	}
	wantUpdates := []string{"Hel", "Hello, ", "Hello, world"}
	if len(updates) != len(wantUpdates) {
		t.Fatalf("updates = %v", updates)
	}
	for i := range wantUpdates {
		if updates[i] != wantUpdates[i] {
			t.Fatalf("update %d = %q, want %q", i, updates[i], wantUpdates[i])
		}
	}
	if chat.Streaming() {
		t.Fatalf("streaming flag must be cleared after completion")
	}
	// Creator context rides in the system message; the brief is consumed.
	if !strings.Contains(gotSystem, "CREATOR PROFILE") || !strings.Contains(gotSystem, "5AM routine") {
		t.Fatalf("system prompt missing creator context: %q", gotSystem)
	}
	if profiles.Brief() != nil {
		t.Fatalf("brief must be cleared after one successful generation")
	}
}

func TestGeneratorSendWithoutKey(t *testing.T) {
	chat, profiles := newTestStores(t)
	gen := &Generator{
		Client:   NewDeepSeekClient("", "", "http://127.0.0.1:1", 0),
		Chat:     chat,
		Profiles: profiles,
		Log:      zerolog.Nop(),
	}
	err := gen.Send(context.Background(), "idea", ScriptOptions{}, nil)
	if !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("err = %v, want ErrNoAPIKey", err)
	}
	if len(chat.Messages()) != 0 {
		t.Fatalf("no messages should be appended without a credential")
	}
}

func TestGeneratorSendTransportErrorLeavesInlineNotice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"message":"rate limited"}}`)
	}))
	defer srv.Close()

	chat, profiles := newTestStores(t)
	gen := &Generator{
		Client:   NewDeepSeekClient("test-key", "", srv.URL, 0),
		Chat:     chat,
		Profiles: profiles,
		Log:      zerolog.Nop(),
	}

	err := gen.Send(context.Background(), "idea", ScriptOptions{}, nil)
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %v, want *TransportError", err)
	}

	msgs := chat.Messages()
	if len(msgs) != 2 {
		t.Fatalf("failed attempt must stay in the log, got %d messages", len(msgs))
	}
	if !strings.Contains(msgs[1].Content, "rate limited") {
		t.Fatalf("inline error notice missing: %q", msgs[1].Content)
	}
	if chat.Streaming() {
		t.Fatalf("streaming flag must be cleared on failure")
	}
}

func TestGeneratorSendKeepsPartialOnMidStreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, sseBody(chunkLine(t, "partial scr")))
		// Flush then drop the connection before [DONE].
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		conn, _, _ := w.(http.Hijacker).Hijack()
		conn.Close()
	}))
	defer srv.Close()

	chat, profiles := newTestStores(t)
	gen := &Generator{
		Client:   NewDeepSeekClient("test-key", "", srv.URL, 0),
		Chat:     chat,
		Profiles: profiles,
		Log:      zerolog.Nop(),
	}

	err := gen.Send(context.Background(), "idea", ScriptOptions{}, nil)
	if err == nil {
		t.Fatalf("expected mid-stream failure")
	}
	last, ok := chat.Last()
	if !ok {
		t.Fatalf("assistant message missing")
	}
	if !strings.Contains(last.Content, "partial scr") {
		t.Fatalf("partial content must be preserved: %q", last.Content)
	}
	if !strings.Contains(last.Content, "interrupted") {
		t.Fatalf("interruption notice missing: %q", last.Content)
	}
}

func TestGeneratorSendConcurrentWithSnapshots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		f := w.(http.Flusher)
		for i := 0; i < 50; i++ {
			_, _ = io.WriteString(w, chunkLine(t, "x")+"\n\n")
			f.Flush()
		}
		_, _ = io.WriteString(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	chat, profiles := newTestStores(t)
	profiles.SetBrief(ReelBrief{Topic: "habits"})
	gen := &Generator{
		Client:   NewDeepSeekClient("test-key", "", srv.URL, 0),
		Chat:     chat,
		Profiles: profiles,
		Log:      zerolog.Nop(),
	}

	// Mirror the UI: Send runs on its own goroutine while this goroutine
	// keeps polling the stores for repaints.
	done := make(chan error, 1)
	go func() {
		done <- gen.Send(context.Background(), "idea", ScriptOptions{}, nil)
	}()

	for {
		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("send: %v", err)
			}
			if chat.Streaming() {
				t.Fatalf("streaming flag still set after completion")
			}
			last, ok := chat.Last()
			if !ok || last.Content != strings.Repeat("x", 50) {
				t.Fatalf("merged content = %q", last.Content)
			}
			if profiles.Brief() != nil {
				t.Fatalf("brief not cleared after success")
			}
			return
		default:
			_ = chat.Messages()
			_ = chat.Streaming()
			_ = profiles.Profile()
			_ = profiles.Brief()
		}
	}
}
