package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ollo-ai/ollo/pkg/models"
)

// DefaultEndpoint is the local Ollama server address.
const DefaultEndpoint = "http://localhost:11434"

// Client is a transport shim over the Ollama HTTP API. It owns no
// caching or retry policy.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given base URL. An empty URL selects
// the default local endpoint.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultEndpoint
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// Generate issues a single non-streaming /api/generate request with a
// hard wall-clock timeout. On expiry the in-flight request is abandoned
// and ErrTimeout is returned wrapped with the elapsed time.
func (c *Client) Generate(ctx context.Context, genReq models.GenerateRequest, timeout time.Duration) (*models.GenerateResponse, error) {
	genReq.Stream = false

	body, err := json.Marshal(genReq)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("generate after %s: %w", time.Since(start).Round(time.Millisecond), ErrTimeout)
		}
		return nil, &TransportError{Op: "generate", Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("generate after %s: %w", time.Since(start).Round(time.Millisecond), ErrTimeout)
		}
		return nil, &TransportError{Op: "generate", Cause: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Op: "generate", Status: resp.StatusCode}
	}

	var genResp models.GenerateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return nil, &TransportError{Op: "generate", Cause: fmt.Errorf("decode response: %w", err)}
	}
	return &genResp, nil
}

// Tags lists the models installed on the server.
func (c *Client) Tags(ctx context.Context) ([]models.ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("list models: %w", ErrTimeout)
		}
		return nil, &TransportError{Op: "tags", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Op: "tags", Status: resp.StatusCode}
	}

	var tags models.TagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, &TransportError{Op: "tags", Cause: fmt.Errorf("decode response: %w", err)}
	}
	return tags.Models, nil
}

// BestModel picks the largest installed model. Largest is a heuristic
// for most capable; callers can always name a model explicitly.
func (c *Client) BestModel(ctx context.Context) (string, error) {
	installed, err := c.Tags(ctx)
	if err != nil {
		return "", err
	}
	if len(installed) == 0 {
		return "", errors.New("no models installed")
	}

	best := installed[0]
	for _, m := range installed[1:] {
		if m.Size > best.Size {
			best = m
		}
	}
	return best.Name, nil
}

// Ping probes the server with a short deadline.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := c.Tags(ctx)
	return err
}
