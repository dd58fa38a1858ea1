// Package registry implements the Capability Registry (spec §4.A): a
// synchronous, read-only lookup of static per-provider metadata, modeled on
// the teacher's infrastructure/provider.ProviderRegistry register/get/getAll
// shape.
package registry

import (
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"github.com/potterlabs/video-orchestrator/internal/domain/entity"
)

// Registry is an immutable, process-wide table of provider capabilities.
// Once constructed by Load, it is never mutated — callers only ever read it,
// concurrently, from any number of goroutines.
type Registry struct {
	capabilities map[entity.Provider]entity.Capabilities
}

// builtin is the authoritative default table from spec §4.A, ported from
// original_source/v0/ai-logic/routing.py's _load_provider_capabilities.
func builtin() map[entity.Provider]entity.Capabilities {
	return map[entity.Provider]entity.Capabilities{
		entity.ProviderRunway: {
			Provider:               entity.ProviderRunway,
			MaxDuration:            300,
			EstimatedTimePerSecond: 2.0,
			Quality:                entity.QualityHigh,
			Strengths:              []string{"cinematic", "photorealistic", "documentary", "corporate"},
			Resolutions:            []string{"1920x1080", "1080x1920", "1080x1080"},
			Features:               []string{"camera_movements", "photorealism", "narrative_flow"},
			CostTier:               entity.CostHigh,
			Fallbacks:              []entity.Provider{entity.ProviderGeminiVeo, entity.ProviderSlideshow},
		},
		entity.ProviderPika: {
			Provider:               entity.ProviderPika,
			MaxDuration:            120,
			EstimatedTimePerSecond: 1.5,
			Quality:                entity.QualityCreative,
			Strengths:              []string{"animation", "artistic", "abstract", "creative"},
			Resolutions:            []string{"1280x720", "720x1280", "1080x1080"},
			Features:               []string{"artistic_styles", "fast_generation", "experimental"},
			CostTier:               entity.CostMedium,
			Fallbacks:              []entity.Provider{entity.ProviderGeminiVeo, entity.ProviderRunway, entity.ProviderSlideshow},
		},
		entity.ProviderGeminiVeo: {
			Provider:               entity.ProviderGeminiVeo,
			MaxDuration:            180,
			EstimatedTimePerSecond: 1.0,
			Quality:                entity.QualityCreative,
			Strengths:              []string{"animation", "creative", "artistic", "abstract"},
			Resolutions:            []string{"1280x720", "720x1280", "1080x1080"},
			Features:               []string{"fast_generation", "creative_effects", "animation"},
			CostTier:               entity.CostLow,
			Fallbacks:              []entity.Provider{entity.ProviderPika, entity.ProviderRunway, entity.ProviderSlideshow},
		},
		entity.ProviderSlideshow: {
			Provider:               entity.ProviderSlideshow,
			MaxDuration:            600,
			EstimatedTimePerSecond: 0.1,
			Quality:                entity.QualityStandard,
			Strengths:              []string{"educational", "presentation", "cost_effective", "long_form"},
			Resolutions:            []string{"1920x1080", "1080x1920", "1080x1080"},
			Features:               []string{"cost_effective", "voice_sync", "fast_generation", "image_generation"},
			CostTier:               entity.CostVeryLow,
			Fallbacks:              nil,
		},
	}
}

// overlayDoc is the shape of the optional external JSON overlay, structurally
// compatible with the original implementation's video_pipeline_config.json
// (a "providers" section keyed by provider id).
type overlayDoc struct {
	Providers map[string]struct {
		MaxDuration            int      `json:"max_duration"`
		EstimatedTimePerSecond float64  `json:"estimated_time_per_second"`
		Quality                string   `json:"quality"`
		Strengths              []string `json:"strengths"`
		Resolutions            []string `json:"resolutions"`
		Features               []string `json:"features"`
		CostTier               string   `json:"cost_tier"`
		Fallbacks              []string `json:"fallbacks"`
	} `json:"providers"`
}

// Load builds the registry from the built-in table, optionally overlaid by
// an external JSON document at path. A missing, unreadable, or malformed
// overlay is logged as a warning and the built-ins are used as-is — this
// must never fail startup (spec §4.A, §6).
func Load(path string, logger *zap.Logger) *Registry {
	caps := builtin()

	if path == "" {
		return &Registry{capabilities: caps}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("capability overlay not found, using built-in defaults",
			zap.String("path", path), zap.Error(err))
		return &Registry{capabilities: caps}
	}

	var doc overlayDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("capability overlay malformed, using built-in defaults",
			zap.String("path", path), zap.Error(err))
		return &Registry{capabilities: caps}
	}

	for id, p := range doc.Providers {
		provider := entity.Provider(id)
		if !provider.IsValid() {
			continue
		}
		fallbacks := make([]entity.Provider, 0, len(p.Fallbacks))
		for _, f := range p.Fallbacks {
			fallbacks = append(fallbacks, entity.Provider(f))
		}
		caps[provider] = entity.Capabilities{
			Provider:               provider,
			MaxDuration:            p.MaxDuration,
			EstimatedTimePerSecond: p.EstimatedTimePerSecond,
			Quality:                entity.Quality(p.Quality),
			Strengths:              p.Strengths,
			Resolutions:            p.Resolutions,
			Features:               p.Features,
			CostTier:               entity.CostTier(p.CostTier),
			Fallbacks:              fallbacks,
		}
	}

	logger.Info("loaded capability overlay", zap.String("path", path))
	return &Registry{capabilities: caps}
}

// Capabilities returns the capabilities for provider, if known.
func (r *Registry) Capabilities(provider entity.Provider) (entity.Capabilities, bool) {
	c, ok := r.capabilities[provider]
	return c, ok
}

// All returns a copy of the full capability table.
func (r *Registry) All() map[entity.Provider]entity.Capabilities {
	out := make(map[entity.Provider]entity.Capabilities, len(r.capabilities))
	for k, v := range r.capabilities {
		out[k] = v
	}
	return out
}
