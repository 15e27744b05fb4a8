package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/biarkamimasak/backend/config"
)

// streamBuffer bounds how far the upstream decode loop can run ahead of the
// downstream relay before it blocks.
const streamBuffer = 16

// LLMService talks to an OpenAI-compatible chat-completions endpoint.
type LLMService struct {
	apiKey      string
	apiURL      string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
}

// NewLLMService creates an LLMService from configuration. A missing API key
// is a startup failure; the process must not begin serving without it.
func NewLLMService(cfg *config.Config) (*LLMService, error) {
	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY or OPENAI_API_KEY_FILE must be set")
	}

	return &LLMService{
		apiKey:      cfg.LLMAPIKey,
		apiURL:      cfg.LLMAPIURL,
		model:       cfg.LLMModel,
		temperature: cfg.LLMTemperature,
		maxTokens:   cfg.LLMMaxTokens,
		client:      &http.Client{},
	}, nil
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// completionRequest is the request body for the chat-completions endpoint.
type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Stream      bool      `json:"stream,omitempty"`
}

// streamChunk is the per-event payload of a streamed completion.
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Complete returns the full completion text for the prompt.
func (s *LLMService) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.post(ctx, prompt, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return result.Choices[0].Message.Content, nil
}

// CompleteStream issues the prompt with streaming enabled and relays each
// content delta as a Fragment. The returned channel is closed when the
// completion ends, the upstream fails, or ctx is cancelled; a failure is
// delivered as a final Fragment carrying the error.
func (s *LLMService) CompleteStream(ctx context.Context, prompt string) (<-chan Fragment, error) {
	resp, err := s.post(ctx, prompt, true)
	if err != nil {
		return nil, err
	}

	out := make(chan Fragment, streamBuffer)
	go func() {
		defer close(out)
		defer resp.Body.Close()

		dec := newSSEDecoder(resp.Body)
		for {
			data, err := dec.Next()
			if err != nil {
				if errors.Is(err, io.EOF) {
					// Some providers close the connection without sending [DONE].
					return
				}
				emit(ctx, out, Fragment{Err: fmt.Errorf("stream read failed: %w", err)})
				return
			}

			data = bytes.TrimSpace(data)
			if bytes.Equal(data, []byte("[DONE]")) {
				return
			}

			var chunk streamChunk
			if err := json.Unmarshal(data, &chunk); err != nil {
				emit(ctx, out, Fragment{Err: fmt.Errorf("failed to decode stream chunk: %w", err)})
				return
			}
			for _, choice := range chunk.Choices {
				if choice.Delta.Content == "" {
					continue
				}
				if !emit(ctx, out, Fragment{Text: choice.Delta.Content}) {
					return
				}
			}
		}
	}()

	return out, nil
}

func (s *LLMService) post(ctx context.Context, prompt string, stream bool) (*http.Response, error) {
	reqBody := completionRequest{
		Model:       s.model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
		Stream:      stream,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return resp, nil
}

// emit forwards a fragment unless the caller has gone away.
func emit(ctx context.Context, out chan<- Fragment, f Fragment) bool {
	select {
	case out <- f:
		return true
	case <-ctx.Done():
		return false
	}
}
