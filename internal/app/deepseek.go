package app

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "https://api.deepseek.com/v1/chat/completions"
	defaultModel     = "deepseek-chat"
	defaultMaxTokens = 2000
)

// TransportError carries the HTTP status and the endpoint-supplied reason for
// a failed generation request.
type TransportError struct {
	Status int
	Reason string
}

func (e *TransportError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("deepseek api error: status %d: %s", e.Status, e.Reason)
	}
	return fmt.Sprintf("deepseek api error: %s", e.Reason)
}

// DeepSeekClient talks to the DeepSeek chat-completions endpoint.
type DeepSeekClient struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	HTTP      *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

func NewDeepSeekClient(apiKey, model, baseURL string, maxTokens int) *DeepSeekClient {
	if model == "" {
		model = defaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &DeepSeekClient{
		APIKey:    apiKey,
		Model:     model,
		BaseURL:   baseURL,
		MaxTokens: maxTokens,
		HTTP:      &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *DeepSeekClient) newRequest(ctx context.Context, body chatRequest) (*http.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	return req, nil
}

func transportErrorFromResponse(resp *http.Response) *TransportError {
	reason := resp.Status
	if body, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
			reason = errResp.Error.Message
		}
	}
	return &TransportError{Status: resp.StatusCode, Reason: reason}
}

// Generate issues a single blocking completion request and returns the first
// choice's text, or the empty string when the response carries no choice.
func (c *DeepSeekClient) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	if c.APIKey == "" {
		return "", errors.New("deepseek api key is required")
	}
	req, err := c.newRequest(ctx, chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   c.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", transportErrorFromResponse(resp)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return parsed.Choices[0].Message.Content, nil
}

// Stream is a pull-based handle over an in-flight streaming completion. The
// caller owns it and must Close it; Close mid-stream cancels the request and
// keeps whatever fragments were already pulled.
type Stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	done    bool
}

// Next returns the next text fragment. It returns io.EOF after the [DONE]
// sentinel or when the server closes the stream. Malformed data lines and
// chunks without a text payload are skipped, not yielded as empty fragments.
func (s *Stream) Next() (string, error) {
	if s.done {
		return "", io.EOF
	}
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			s.done = true
			return "", io.EOF
		}
		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// A single corrupt line must not end generation early.
			continue
		}
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		return chunk.Choices[0].Delta.Content, nil
	}
	s.done = true
	if err := s.scanner.Err(); err != nil {
		return "", fmt.Errorf("stream interrupted: %w", err)
	}
	return "", io.EOF
}

func (s *Stream) Close() error {
	s.done = true
	return s.body.Close()
}

// StreamGenerate opens a streaming completion request and returns a Stream of
// text fragments. A non-2xx status or missing body fails here, before any
// fragment is yielded.
func (c *DeepSeekClient) StreamGenerate(ctx context.Context, prompt, systemPrompt string) (*Stream, error) {
	if c.APIKey == "" {
		return nil, errors.New("deepseek api key is required")
	}
	req, err := c.newRequest(ctx, chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   c.MaxTokens,
		Stream:      true,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api request failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, transportErrorFromResponse(resp)
	}
	if resp.Body == nil {
		return nil, &TransportError{Reason: "no response body available"}
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Stream{body: resp.Body, scanner: scanner}, nil
}

// ValidateKey issues a minimal one-token completion with the candidate key.
// Every failure mode collapses to false.
func (c *DeepSeekClient) ValidateKey(ctx context.Context, apiKey string) bool {
	if strings.TrimSpace(apiKey) == "" {
		return false
	}
	body := chatRequest{
		Model:     c.Model,
		Messages:  []chatMessage{{Role: "user", Content: "test"}},
		MaxTokens: 1,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 300
}
