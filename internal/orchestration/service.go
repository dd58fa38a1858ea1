// Package orchestration composes the capability registry, health checker,
// router, and config transformer into the request lifecycle described in
// spec §4.E, grounded on the original's main.py orchestrate_video /
// analyze_routing / batch_orchestrate handlers and the teacher's
// cmd/api/main.go constructor-composition wiring style.
package orchestration

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/potterlabs/video-orchestrator/internal/domain/entity"
	"github.com/potterlabs/video-orchestrator/internal/domain/service"
)

const singleDispatchTimeout = 30 * time.Second

// Service is the orchestration core's HTTP-facing entry point.
type Service struct {
	registry    service.CapabilityRegistry
	health      service.HealthChecker
	router      service.Router
	transformer service.ConfigTransformer
	downstream  DownstreamClient
	metrics     *Metrics
	logger      *zap.Logger
}

// New builds a Service composing the four core components and a
// downstream dispatch client.
func New(
	registry service.CapabilityRegistry,
	health service.HealthChecker,
	router service.Router,
	transformer service.ConfigTransformer,
	downstream DownstreamClient,
	metrics *Metrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		registry:    registry,
		health:      health,
		router:      router,
		transformer: transformer,
		downstream:  downstream,
		metrics:     metrics,
		logger:      logger,
	}
}

// OrchestrateResult is the response shape for a single orchestrated
// request (spec §4.E item 1).
type OrchestrateResult struct {
	JobID             string `json:"job_id"`
	Provider          entity.Provider `json:"provider"`
	Mode              entity.Mode     `json:"mode"`
	RoutingReason     string          `json:"routing_reason"`
	EstimatedDuration string          `json:"estimated_duration,omitempty"`
	NodeAPIResponse   *DispatchResult `json:"node_api_response"`
}

// Orchestrate runs the full single-request lifecycle: route, health-check
// with single fallback substitution, transform, dispatch.
func (s *Service) Orchestrate(ctx context.Context, request entity.VideoRequest) (*OrchestrateResult, error) {
	if err := request.Normalize(); err != nil {
		return nil, err
	}

	decision, err := s.router.Route(request)
	if err != nil {
		return nil, err
	}
	s.metrics.recordRouting(string(decision.Provider))

	decision, err = s.ensureHealthy(ctx, decision)
	if err != nil {
		return nil, err
	}

	config := s.transformer.Prepare(request, decision)

	dispatchCtx, cancel := context.WithTimeout(ctx, singleDispatchTimeout)
	defer cancel()

	result, err := s.downstream.Generate(dispatchCtx, config)
	if err != nil {
		s.metrics.recordDispatch("error")
		s.logger.Error("dispatch failed", zap.String("provider", string(decision.Provider)), zap.Error(err))
		return nil, err
	}
	s.metrics.recordDispatch("accepted")

	return &OrchestrateResult{
		JobID:             result.JobID,
		Provider:          decision.Provider,
		Mode:              decision.Mode,
		RoutingReason:     decision.Reason,
		EstimatedDuration: result.EstimatedDuration,
		NodeAPIResponse:   result,
	}, nil
}

// ensureHealthy probes the chosen provider and substitutes its recorded
// fallback exactly once on failure; it never loops (spec §7 policy).
func (s *Service) ensureHealthy(ctx context.Context, decision entity.RoutingDecision) (entity.RoutingDecision, error) {
	start := time.Now()
	status := s.health.Check(ctx, decision.Provider)
	s.metrics.recordHealthLatency(string(decision.Provider), time.Since(start).Seconds())

	if status.IsHealthy {
		return decision, nil
	}

	if decision.FallbackProvider == "" {
		return decision, entity.ErrNoViableProvider
	}

	s.logger.Warn("provider unhealthy, substituting fallback",
		zap.String("provider", string(decision.Provider)),
		zap.String("fallback", string(decision.FallbackProvider)))

	fallback := decision
	fallback.Provider = decision.FallbackProvider
	fallback.Mode = entity.ModeFor(decision.FallbackProvider)
	fallback.Reason = "Fallback: " + string(decision.Provider) + " unavailable, using " + string(decision.FallbackProvider)
	fallback.FallbackProvider = ""

	fallbackStart := time.Now()
	fallbackStatus := s.health.Check(ctx, fallback.Provider)
	s.metrics.recordHealthLatency(string(fallback.Provider), time.Since(fallbackStart).Seconds())
	if !fallbackStatus.IsHealthy {
		return fallback, entity.ErrNoViableProvider
	}

	return fallback, nil
}

// Analyze runs routing without any side effect (spec §4.E item 2). A
// no-viable-provider routing error is returned alongside the full score
// breakdown, not swallowed, so callers can see why every provider lost.
func (s *Service) Analyze(request entity.VideoRequest) (entity.RoutingAnalysis, error) {
	if err := request.Normalize(); err != nil {
		return entity.RoutingAnalysis{}, err
	}
	return s.router.Analyze(request)
}

// ProvidersStatus fans out a health check across every provider (spec
// §4.E item 3).
func (s *Service) ProvidersStatus(ctx context.Context) map[entity.Provider]entity.ProviderStatus {
	return s.health.CheckAll(ctx)
}

// ProvidersCapabilities dumps the capability registry (spec §4.E item 4).
func (s *Service) ProvidersCapabilities() map[entity.Provider]entity.Capabilities {
	return s.registry.All()
}
