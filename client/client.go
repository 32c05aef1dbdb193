// Package client consumes the assistant's event stream and folds it
// into conversation state safe to render from a UI loop.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rayiskander2406/vendorportal/assistant"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		// no overall client timeout: streams outlive any sane value,
		// per-turn bounding is the TurnRunner's job
		http: &http.Client{},
	}
}

// ChatRequest is one turn submission: the full visible transcript
// including the new user entry, plus opaque vendor context the server
// folds into the system prompt. ConversationId is optional; when set
// the server also records the turn in its session log.
type ChatRequest struct {
	ConversationId string                  `json:"conversationId,omitempty"`
	Messages       []Message               `json:"messages"`
	VendorContext  assistant.VendorContext `json:"vendorContext,omitempty"`
}

// Stream opens one turn. The caller owns the returned body and must
// close it; events are read off it with wire.NewDecoder.
func (c *Client) Stream(ctx context.Context, req *ChatRequest) (io.ReadCloser, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("chat request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		var body struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		if body.Error == "" {
			body.Error = resp.Status
		}
		return nil, fmt.Errorf("chat rejected: %s", body.Error)
	}

	return resp.Body, nil
}

// Messages fetches the recorded transcript of a conversation, used to
// resume one across client restarts.
func (c *Client) Messages(ctx context.Context, conversationId string) ([]Message, error) {
	reqCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet,
		c.baseURL+"/api/conversations/"+conversationId+"/messages", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("messages request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("messages request failed: %s", resp.Status)
	}

	var out struct {
		Messages []Message `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode messages response: %w", err)
	}

	return out.Messages, nil
}

type healthView struct {
	Status string   `json:"status"`
	Model  string   `json:"model"`
	Tools  []string `json:"tools"`
}

func (c *Client) Health(ctx context.Context) (*healthView, error) {
	reqCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("health request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("health check failed: %s", resp.Status)
	}

	var hv healthView
	if err := json.NewDecoder(resp.Body).Decode(&hv); err != nil {
		return nil, fmt.Errorf("decode health response: %w", err)
	}

	return &hv, nil
}
