// Package health implements concurrent provider liveness probing (spec
// §4.B), grounded on original_source/v0/ai-logic/providers.py's
// ProviderHealthChecker and the teacher's BaseProvider HTTP-client idiom.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/potterlabs/video-orchestrator/internal/domain/entity"
	"github.com/potterlabs/video-orchestrator/internal/domain/service"
)

const probeTimeout = 10 * time.Second

var recoveryBackoff = []time.Duration{5 * time.Second, 10 * time.Second, 20 * time.Second, 30 * time.Second, 60 * time.Second}

var envKeyByProvider = map[entity.Provider]string{
	entity.ProviderRunway:    "RUNWAY_API_KEY",
	entity.ProviderPika:      "PIKA_API_KEY",
	entity.ProviderGeminiVeo: "GEMINI_API_KEY",
}

// Checker probes downstream provider liveness.
type Checker struct {
	nodeAPIURL string
	apiKey     string
	client     *http.Client
	registry   service.CapabilityRegistry
	logger     *zap.Logger
}

// New builds a Checker that probes nodeAPIURL's health meta-endpoint with
// apiKey, consulting registry for the capabilities snapshot attached to
// each status.
func New(nodeAPIURL, apiKey string, registry service.CapabilityRegistry, logger *zap.Logger) *Checker {
	return &Checker{
		nodeAPIURL: nodeAPIURL,
		apiKey:     apiKey,
		client:     &http.Client{Timeout: probeTimeout},
		registry:   registry,
		logger:     logger,
	}
}

type healthResponse struct {
	Providers map[string]struct {
		Healthy bool `json:"healthy"`
	} `json:"providers"`
}

// Check probes a single provider and returns its status. Slideshow is
// always healthy; the rest are probed via the downstream meta-endpoint,
// falling back to environment-variable presence on transport failure.
func (c *Checker) Check(ctx context.Context, provider entity.Provider) entity.ProviderStatus {
	caps, _ := c.registry.Capabilities(provider)

	if provider == entity.ProviderSlideshow {
		return entity.ProviderStatus{
			Provider:     provider,
			IsHealthy:    true,
			Capabilities: &caps,
		}
	}

	start := time.Now()
	healthy, err := c.probe(ctx, provider)
	elapsed := time.Since(start)

	if err != nil {
		c.logger.Warn("health probe failed, falling back to env presence",
			zap.String("provider", string(provider)), zap.Error(err))
		return entity.ProviderStatus{
			Provider:     provider,
			IsHealthy:    envKeyPresent(provider),
			Capabilities: &caps,
		}
	}

	return entity.ProviderStatus{
		Provider:       provider,
		IsHealthy:      healthy,
		ResponseTimeMs: float64(elapsed.Microseconds()) / 1000.0,
		Capabilities:   &caps,
	}
}

func (c *Checker) probe(ctx context.Context, provider entity.Provider) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.nodeAPIURL+"/video/providers/health", nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, entity.ErrTransport
	}

	var body healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, err
	}

	return body.Providers[string(provider)].Healthy, nil
}

func envKeyPresent(provider entity.Provider) bool {
	key, ok := envKeyByProvider[provider]
	if !ok {
		return true
	}
	return os.Getenv(key) != ""
}

// CheckAll probes every known provider concurrently and returns exactly
// one status per provider, including slideshow.
func (c *Checker) CheckAll(ctx context.Context) map[entity.Provider]entity.ProviderStatus {
	statuses := make([]entity.ProviderStatus, len(entity.Providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, provider := range entity.Providers {
		i, provider := i, provider
		g.Go(func() error {
			statuses[i] = c.Check(gctx, provider)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[entity.Provider]entity.ProviderStatus, len(statuses))
	for _, s := range statuses {
		out[s.Provider] = s
	}
	return out
}

// WaitForRecovery re-probes provider on the fixed backoff schedule,
// stopping on first healthy status, cumulative wait reaching maxWait
// seconds, or context cancellation.
func (c *Checker) WaitForRecovery(ctx context.Context, provider entity.Provider, maxWait int) bool {
	totalWaited := 0
	for _, step := range recoveryBackoff {
		if totalWaited >= maxWait {
			break
		}

		c.logger.Info("waiting for provider to recover",
			zap.String("provider", string(provider)), zap.Duration("wait", step))

		select {
		case <-ctx.Done():
			return false
		case <-time.After(step):
		}
		totalWaited += int(step.Seconds())

		if c.Check(ctx, provider).IsHealthy {
			c.logger.Info("provider recovered", zap.String("provider", string(provider)))
			return true
		}
	}

	c.logger.Warn("provider did not recover in time",
		zap.String("provider", string(provider)), zap.Int("max_wait", maxWait))
	return false
}
