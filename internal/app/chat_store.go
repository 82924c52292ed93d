package app

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry in the conversation log. Role and ID never change
// after creation; Content is mutated only while the message is the trailing
// assistant message of an active stream.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatStore owns the ordered conversation log. It is the single mutation
// point the streaming pipeline writes into; the UI only reads snapshots.
// Safe for concurrent use: the stream goroutine mutates while the UI
// goroutine polls Messages and Streaming.
type ChatStore struct {
	mu        sync.RWMutex
	path      string
	messages  []Message
	streaming bool
}

// NewChatStore loads the persisted log from path, or starts empty when the
// file does not exist yet.
func NewChatStore(path string) (*ChatStore, error) {
	s := &ChatStore{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, &s.messages); err != nil {
		// A corrupt log should not brick the assistant; start fresh.
		s.messages = nil
	}
	return s, nil
}

// Append creates a new message at the end of the log and persists it.
func (s *ChatStore) Append(role, content string) Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
	s.messages = append(s.messages, msg)
	s.persist()
	return msg
}

// MutateLast replaces the content of the trailing message. Callers must have
// appended the assistant placeholder before streaming begins; on an empty log
// this is a no-op.
func (s *ChatStore) MutateLast(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		return
	}
	s.messages[len(s.messages)-1].Content = content
	s.persist()
}

// ClearAll empties the log and drops any in-flight accumulation state.
func (s *ChatStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.streaming = false
	s.persist()
}

func (s *ChatStore) SetStreaming(streaming bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streaming = streaming
}

func (s *ChatStore) Streaming() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.streaming
}

// Messages returns a snapshot of the log.
func (s *ChatStore) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Last returns the trailing message, or false when the log is empty.
func (s *ChatStore) Last() (Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.messages) == 0 {
		return Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}

// persist writes the log to disk. Callers hold mu.
func (s *ChatStore) persist() {
	if s.path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return
	}
	data, err := json.MarshalIndent(s.messages, "", "  ")
	if err != nil {
		return
	}
	// The streaming flag is request-scoped and intentionally not persisted.
	_ = os.WriteFile(s.path, data, 0o644)
}
