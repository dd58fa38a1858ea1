// Package service declares the narrow interfaces the orchestration core
// composes: the capability registry, health checker, router, and config
// transformer. Concrete implementations live in internal/registry,
// internal/health, internal/router, and internal/transformer.
package service

import (
	"context"

	"github.com/potterlabs/video-orchestrator/internal/domain/entity"
)

// CapabilityRegistry provides synchronous, read-only lookup of per-provider
// metadata. It is initialized once at startup and never mutated afterward.
type CapabilityRegistry interface {
	Capabilities(provider entity.Provider) (entity.Capabilities, bool)
	All() map[entity.Provider]entity.Capabilities
}

// HealthChecker probes provider liveness, concurrently when checking all.
type HealthChecker interface {
	Check(ctx context.Context, provider entity.Provider) entity.ProviderStatus
	CheckAll(ctx context.Context) map[entity.Provider]entity.ProviderStatus
	WaitForRecovery(ctx context.Context, provider entity.Provider, maxWait int) bool
}

// Router scores providers for a request and returns a routing decision.
// Route and Analyze return entity.ErrNoViableProvider when every provider
// is excluded by a hard constraint (e.g. duration exceeds every max).
type Router interface {
	Route(request entity.VideoRequest) (entity.RoutingDecision, error)
	Analyze(request entity.VideoRequest) (entity.RoutingAnalysis, error)
	Capabilities() map[entity.Provider]entity.Capabilities
}

// ConfigTransformer turns a request + routing decision into a provider
// job payload.
type ConfigTransformer interface {
	Prepare(request entity.VideoRequest, decision entity.RoutingDecision) entity.JobConfig
	PrepareBatch(requests []entity.VideoRequest, decisions []entity.RoutingDecision) []entity.JobConfig
}
