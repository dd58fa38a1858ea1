package orchestration

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/potterlabs/video-orchestrator/internal/domain/entity"
	"github.com/potterlabs/video-orchestrator/internal/domain/service"
	"github.com/potterlabs/video-orchestrator/internal/registry"
	"github.com/potterlabs/video-orchestrator/internal/router"
	"github.com/potterlabs/video-orchestrator/internal/transformer"
)

type stubHealthChecker struct {
	healthy map[entity.Provider]bool
}

func (s stubHealthChecker) Check(ctx context.Context, provider entity.Provider) entity.ProviderStatus {
	return entity.ProviderStatus{Provider: provider, IsHealthy: s.healthy[provider]}
}

func (s stubHealthChecker) CheckAll(ctx context.Context) map[entity.Provider]entity.ProviderStatus {
	out := make(map[entity.Provider]entity.ProviderStatus, len(entity.Providers))
	for _, p := range entity.Providers {
		out[p] = s.Check(ctx, p)
	}
	return out
}

func (s stubHealthChecker) WaitForRecovery(ctx context.Context, provider entity.Provider, maxWait int) bool {
	return s.healthy[provider]
}

type stubDownstream struct {
	calls int
	err   error
}

func (s *stubDownstream) Generate(ctx context.Context, job entity.JobConfig) (*DispatchResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &DispatchResult{JobID: "job-1", EstimatedDuration: "30s"}, nil
}

func newTestService(health service.HealthChecker, downstream DownstreamClient) *Service {
	reg := registry.Load("", zap.NewNop())
	return New(reg, health, router.New(reg), transformer.New(), downstream, NewMetrics(prometheus.NewRegistry()), zap.NewNop())
}

func TestOrchestrate_HealthyProviderDispatches(t *testing.T) {
	health := stubHealthChecker{healthy: map[entity.Provider]bool{
		entity.ProviderRunway: true, entity.ProviderPika: true, entity.ProviderGeminiVeo: true, entity.ProviderSlideshow: true,
	}}
	downstream := &stubDownstream{}
	svc := newTestService(health, downstream)

	result, err := svc.Orchestrate(context.Background(), entity.VideoRequest{Topic: "space", Style: entity.StyleCinematic})

	require.NoError(t, err)
	assert.Equal(t, entity.ProviderRunway, result.Provider)
	assert.Equal(t, "job-1", result.JobID)
	assert.Equal(t, 1, downstream.calls)
}

func TestOrchestrate_UnhealthySubstitutesFallbackOnce(t *testing.T) {
	health := stubHealthChecker{healthy: map[entity.Provider]bool{
		entity.ProviderRunway: false, entity.ProviderPika: true, entity.ProviderGeminiVeo: true, entity.ProviderSlideshow: true,
	}}
	downstream := &stubDownstream{}
	svc := newTestService(health, downstream)

	result, err := svc.Orchestrate(context.Background(), entity.VideoRequest{Topic: "space", Style: entity.StyleCinematic})

	require.NoError(t, err)
	assert.NotEqual(t, entity.ProviderRunway, result.Provider)
}

func TestOrchestrate_NoFallbackReturnsNoViableProvider(t *testing.T) {
	health := stubHealthChecker{healthy: map[entity.Provider]bool{}}
	downstream := &stubDownstream{}
	svc := newTestService(health, downstream)

	_, err := svc.Orchestrate(context.Background(), entity.VideoRequest{Topic: "space", Style: entity.StyleCinematic})

	assert.ErrorIs(t, err, entity.ErrNoViableProvider)
	assert.Equal(t, 0, downstream.calls)
}

func TestOrchestrate_DurationExceedsEveryMaxReturnsNoViableProvider(t *testing.T) {
	health := stubHealthChecker{healthy: map[entity.Provider]bool{
		entity.ProviderRunway: true, entity.ProviderPika: true, entity.ProviderGeminiVeo: true, entity.ProviderSlideshow: true,
	}}
	downstream := &stubDownstream{}
	svc := newTestService(health, downstream)

	_, err := svc.Orchestrate(context.Background(), entity.VideoRequest{
		Topic: "x", Style: entity.StylePhotorealistic, Duration: 9999,
	})

	assert.ErrorIs(t, err, entity.ErrNoViableProvider)
	assert.Equal(t, 0, downstream.calls)
}

func TestOrchestrate_ValidationErrorSurfacesImmediately(t *testing.T) {
	health := stubHealthChecker{healthy: map[entity.Provider]bool{entity.ProviderSlideshow: true}}
	downstream := &stubDownstream{}
	svc := newTestService(health, downstream)

	_, err := svc.Orchestrate(context.Background(), entity.VideoRequest{Style: entity.StyleCinematic})

	assert.ErrorIs(t, err, entity.ErrMissingTopic)
}

func TestOrchestrate_TransportErrorPropagates(t *testing.T) {
	health := stubHealthChecker{healthy: map[entity.Provider]bool{
		entity.ProviderRunway: true, entity.ProviderPika: true, entity.ProviderGeminiVeo: true, entity.ProviderSlideshow: true,
	}}
	downstream := &stubDownstream{err: errors.New("boom")}
	svc := newTestService(health, downstream)

	_, err := svc.Orchestrate(context.Background(), entity.VideoRequest{Topic: "space", Style: entity.StyleCinematic})

	assert.Error(t, err)
}

func TestAnalyze_NoSideEffectNoDispatch(t *testing.T) {
	health := stubHealthChecker{healthy: map[entity.Provider]bool{}}
	downstream := &stubDownstream{}
	svc := newTestService(health, downstream)

	analysis, err := svc.Analyze(entity.VideoRequest{Topic: "space", Style: entity.StyleCinematic})

	require.NoError(t, err)
	assert.Equal(t, entity.ProviderRunway, analysis.Decision.Provider)
	assert.Equal(t, 0, downstream.calls)
}

func TestOrchestrateBatch_IndependentFailureIsolation(t *testing.T) {
	health := stubHealthChecker{healthy: map[entity.Provider]bool{
		entity.ProviderRunway: true, entity.ProviderPika: true, entity.ProviderGeminiVeo: true, entity.ProviderSlideshow: true,
	}}
	downstream := &stubDownstream{}
	svc := newTestService(health, downstream)

	requests := []entity.VideoRequest{
		{RequestID: "r1", Topic: "a", Style: entity.StyleAnimation},
		{RequestID: "r2", Style: entity.StyleAnimation}, // missing topic: invalid
		{RequestID: "r3", Topic: "c", Style: entity.StyleAnimation},
	}

	results := svc.OrchestrateBatch(context.Background(), requests)

	require.Len(t, results, 3)
	assert.Equal(t, "success", results[0].Status)
	assert.Equal(t, "error", results[1].Status)
	assert.Equal(t, "success", results[2].Status)
}

func TestOrchestrateBatch_SameStyleItemsAllSucceed(t *testing.T) {
	health := stubHealthChecker{healthy: map[entity.Provider]bool{
		entity.ProviderRunway: true, entity.ProviderPika: true, entity.ProviderGeminiVeo: true, entity.ProviderSlideshow: true,
	}}
	downstream := &stubDownstream{}
	svc := newTestService(health, downstream)

	requests := []entity.VideoRequest{
		{RequestID: "r1", Topic: "a", Style: entity.StyleAnimation},
		{RequestID: "r2", Topic: "b", Style: entity.StyleAnimation},
		{RequestID: "r3", Topic: "c", Style: entity.StyleAnimation},
	}

	results := svc.OrchestrateBatch(context.Background(), requests)

	for _, r := range results {
		require.Equal(t, "success", r.Status)
	}
}
