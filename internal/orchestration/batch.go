package orchestration

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/potterlabs/video-orchestrator/internal/domain/entity"
)

const batchDispatchTimeout = 60 * time.Second

// BatchItemResult is the per-item outcome of a batch orchestration run
// (spec §4.E item 5): either a successful OrchestrateResult or an error
// tagged by request_id.
type BatchItemResult struct {
	Status    string             `json:"status"`
	RequestID string             `json:"request_id,omitempty"`
	Result    *OrchestrateResult `json:"result,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// OrchestrateBatch routes and health-checks every request independently,
// then builds the batch-grouped JobConfigs (batch_priority/batch_delay,
// spec §4.D) before dispatching each concurrently. A single item's
// failure never aborts the batch (spec §5, §7).
func (s *Service) OrchestrateBatch(ctx context.Context, requests []entity.VideoRequest) []BatchItemResult {
	results := make([]BatchItemResult, len(requests))
	decisions := make([]entity.RoutingDecision, len(requests))
	routeErr := make([]error, len(requests))

	for i, request := range requests {
		if err := request.Normalize(); err != nil {
			routeErr[i] = err
			continue
		}
		decision, err := s.router.Route(request)
		if err != nil {
			routeErr[i] = err
			continue
		}
		s.metrics.recordRouting(string(decision.Provider))

		healthy, err := s.ensureHealthy(ctx, decision)
		if err != nil {
			routeErr[i] = err
			continue
		}
		decisions[i] = healthy
	}

	configs := s.transformer.PrepareBatch(requests, decisions)

	batchCtx, cancel := context.WithTimeout(ctx, batchDispatchTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(batchCtx)
	for i := range requests {
		i := i
		if routeErr[i] != nil {
			results[i] = BatchItemResult{Status: "error", RequestID: requests[i].RequestID, Error: routeErr[i].Error()}
			continue
		}
		g.Go(func() error {
			results[i] = s.dispatchBatchItem(gctx, requests[i], decisions[i], configs[i])
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *Service) dispatchBatchItem(ctx context.Context, request entity.VideoRequest, decision entity.RoutingDecision, config entity.JobConfig) BatchItemResult {
	result, err := s.downstream.Generate(ctx, config)
	if err != nil {
		s.metrics.recordDispatch("error")
		return BatchItemResult{Status: "error", RequestID: request.RequestID, Error: err.Error()}
	}
	s.metrics.recordDispatch("accepted")

	return BatchItemResult{
		Status:    "success",
		RequestID: request.RequestID,
		Result: &OrchestrateResult{
			JobID:             result.JobID,
			Provider:          decision.Provider,
			Mode:              decision.Mode,
			RoutingReason:     decision.Reason,
			EstimatedDuration: result.EstimatedDuration,
			NodeAPIResponse:   result,
		},
	}
}
