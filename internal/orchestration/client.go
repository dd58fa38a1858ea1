package orchestration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/potterlabs/video-orchestrator/internal/domain/entity"
)

// DownstreamClient is the Go port of the downstream execution API this
// service dispatches jobs to (spec §6).
type DownstreamClient interface {
	Generate(ctx context.Context, job entity.JobConfig) (*DispatchResult, error)
}

// DispatchResult is the parsed response from a successful dispatch.
type DispatchResult struct {
	JobID             string `json:"jobId"`
	EstimatedDuration string `json:"estimatedDuration,omitempty"`
}

// HTTPDownstreamClient talks to the downstream execution API over HTTP,
// matching the teacher's BaseProvider HTTP-client-with-API-key pattern.
type HTTPDownstreamClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPDownstreamClient builds a downstream client pointed at baseURL,
// authenticating dispatch calls with apiKey.
func NewHTTPDownstreamClient(baseURL, apiKey string) *HTTPDownstreamClient {
	return &HTTPDownstreamClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Generate POSTs the job to <baseURL>/video/generate and expects 202.
func (c *HTTPDownstreamClient) Generate(ctx context.Context, job entity.JobConfig) (*DispatchResult, error) {
	body, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("encode job config: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/video/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: downstream returned %d: %s", entity.ErrTransport, resp.StatusCode, string(respBody))
	}

	var result DispatchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", entity.ErrTransport, err)
	}

	return &result, nil
}
