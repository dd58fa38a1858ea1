// Package router implements the multi-factor provider scorer (spec §4.C),
// grounded on original_source/v0/ai-logic/routing.py's ProviderRouter.
package router

import (
	"fmt"
	"sort"

	"github.com/potterlabs/video-orchestrator/internal/domain/entity"
	"github.com/potterlabs/video-orchestrator/internal/domain/service"
)

// Router scores providers against a request using the fixed weighted
// factors and matrices in matrices.go. It holds no state beyond the
// capability registry it was built with.
type Router struct {
	registry service.CapabilityRegistry
}

// New builds a Router over the given capability registry.
func New(registry service.CapabilityRegistry) *Router {
	return &Router{registry: registry}
}

// Capabilities exposes the underlying registry's full table.
func (r *Router) Capabilities() map[entity.Provider]entity.Capabilities {
	return r.registry.All()
}

// Route selects the best-scoring provider for request, or returns the
// user's explicit override unconditionally. A provider whose DurationScore
// is 0 (duration exceeds its max_duration, spec §4.C's hard exclusion) is
// never eligible as either the chosen provider or the fallback; if every
// provider is excluded this way, Route returns entity.ErrNoViableProvider
// (spec §7's "no viable provider" case).
func (r *Router) Route(request entity.VideoRequest) (entity.RoutingDecision, error) {
	if request.PreferredProvider != "" {
		return entity.RoutingDecision{
			Provider:   request.PreferredProvider,
			Mode:       entity.ModeFor(request.PreferredProvider),
			Reason:     fmt.Sprintf("User explicitly requested %s", request.PreferredProvider),
			Confidence: 1.0,
		}, nil
	}

	scores := r.scoreAll(request)
	candidates := make([]entity.ScoreBreakdown, 0, len(scores))
	for _, s := range scores {
		if s.DurationScore > 0 {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return entity.RoutingDecision{}, entity.ErrNoViableProvider
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].TotalScore != candidates[j].TotalScore {
			return candidates[i].TotalScore > candidates[j].TotalScore
		}
		return tieBreakIndex(candidates[i].Provider) < tieBreakIndex(candidates[j].Provider)
	})

	best := candidates[0]
	decision := entity.RoutingDecision{
		Provider:   best.Provider,
		Mode:       entity.ModeFor(best.Provider),
		Reason:     reason(best, request),
		Confidence: best.TotalScore,
	}
	if len(candidates) > 1 {
		decision.FallbackProvider = candidates[1].Provider
	}

	if adapt, ok := styleAdaptations[request.Style][best.Provider]; ok {
		a := adapt
		decision.Adaptations = &a
	}

	return decision, nil
}

// Analyze returns the decision alongside the full per-provider scoring
// breakdown, without any side effect. Scores always covers every provider,
// even when Route's decision errors with entity.ErrNoViableProvider, so
// callers can see why every candidate was excluded.
func (r *Router) Analyze(request entity.VideoRequest) (entity.RoutingAnalysis, error) {
	decision, err := r.Route(request)
	analysis := entity.RoutingAnalysis{
		Decision: decision,
		Scores:   r.scoreAll(request),
	}
	return analysis, err
}

func tieBreakIndex(p entity.Provider) int {
	for i, candidate := range entity.Providers {
		if candidate == p {
			return i
		}
	}
	return len(entity.Providers)
}

func (r *Router) scoreAll(request entity.VideoRequest) []entity.ScoreBreakdown {
	scores := make([]entity.ScoreBreakdown, 0, len(entity.Providers))
	for _, p := range entity.Providers {
		scores = append(scores, r.score(p, request))
	}
	return scores
}

func (r *Router) score(provider entity.Provider, request entity.VideoRequest) entity.ScoreBreakdown {
	caps, _ := r.registry.Capabilities(provider)

	styleScore := scoreStyle(provider, caps, request.Style)
	contentScore := scoreContent(provider, request.ContentType)
	durationScore := scoreDuration(provider, caps, request.Duration)
	qualityScore := scoreQuality(caps, request.Style)
	costScore := scoreCost(caps, request.Priority)

	total := styleScore*weightStyle + contentScore*weightContent +
		durationScore*weightDuration + qualityScore*weightQuality + costScore*weightCost

	factor, _ := primaryFactor(styleScore, contentScore, durationScore, qualityScore, costScore)

	return entity.ScoreBreakdown{
		Provider:      provider,
		StyleScore:    styleScore,
		ContentScore:  contentScore,
		DurationScore: durationScore,
		QualityScore:  qualityScore,
		CostScore:     costScore,
		TotalScore:    total,
		PrimaryFactor: factor,
	}
}

func scoreStyle(provider entity.Provider, caps entity.Capabilities, style entity.Style) float64 {
	if caps.HasStrength(string(style)) {
		return 1.0
	}
	if table, ok := styleCompatibility[style]; ok {
		if v, ok := table[provider]; ok {
			return v
		}
	}
	return unknownStyleScore
}

func scoreContent(provider entity.Provider, contentType entity.ContentType) float64 {
	if contentType == "" {
		return neutralContentScore
	}
	table, ok := contentPreference[contentType]
	if !ok {
		return unknownContentScore
	}
	if v, ok := table[provider]; ok {
		return v
	}
	return unknownContentScore
}

func scoreDuration(provider entity.Provider, caps entity.Capabilities, duration int) float64 {
	if duration == 0 {
		return neutralDurationScore
	}
	if duration > caps.MaxDuration {
		return 0.0
	}
	band := durationBand(duration)
	if v, ok := band[provider]; ok {
		return v
	}
	return durationBandDefault
}

func scoreQuality(caps entity.Capabilities, style entity.Style) float64 {
	required, ok := qualityRequirement[style]
	if !ok {
		required = qualityRequirementDefault
	}
	if v, ok := qualityScoreTable[[2]entity.Quality{required, caps.Quality}]; ok {
		return v
	}
	return qualityScoreDefault
}

func scoreCost(caps entity.Capabilities, priority entity.Priority) float64 {
	base, ok := costBaseScore[caps.CostTier]
	if !ok {
		base = costScoreDefault
	}
	if priority == entity.PriorityHigh {
		v := base * 0.7
		if v > 1.0 {
			v = 1.0
		}
		return v
	}
	return base
}

// primaryFactor identifies the sub-score that contributed most, ignoring
// weighting, matching the original's `max(..., key=score)` tie behavior
// (first-listed factor wins ties: style, content, duration, quality, cost).
func primaryFactor(style, content, duration, quality, cost float64) (string, float64) {
	factors := []struct {
		name  string
		score float64
	}{
		{"style", style},
		{"content", content},
		{"duration", duration},
		{"quality", quality},
		{"cost", cost},
	}
	best := factors[0]
	for _, f := range factors[1:] {
		if f.score > best.score {
			best = f
		}
	}
	return best.name, best.score
}

// reason renders a human-readable sentence from the primary scoring
// factor, matching the original's _generate_routing_reason templates.
func reason(best entity.ScoreBreakdown, request entity.VideoRequest) string {
	switch best.PrimaryFactor {
	case "style":
		return fmt.Sprintf("%s excels at %s style content", best.Provider, request.Style)
	case "content":
		return fmt.Sprintf("%s is optimized for %s content", best.Provider, request.ContentType)
	case "duration":
		return fmt.Sprintf("%s is optimal for %ds duration videos", best.Provider, request.Duration)
	case "quality":
		return fmt.Sprintf("%s provides the quality level needed for %s", best.Provider, request.Style)
	case "cost":
		return fmt.Sprintf("%s offers the most cost-effective solution", best.Provider)
	default:
		return fmt.Sprintf("%s selected based on comprehensive analysis", best.Provider)
	}
}
