// Package transformer implements the config transformer (spec §4.D),
// grounded on original_source/v0/ai-logic/orchestrator.py's
// VideoOrchestrator.
package transformer

import (
	"math"

	"github.com/potterlabs/video-orchestrator/internal/domain/entity"
)

// Transformer turns a request and routing decision into a provider job
// payload. It is stateless.
type Transformer struct{}

// New builds a Transformer.
func New() *Transformer {
	return &Transformer{}
}

// Prepare builds the JobConfig for a single request/decision pair.
func (t *Transformer) Prepare(request entity.VideoRequest, decision entity.RoutingDecision) entity.JobConfig {
	config := entity.JobConfig{
		Topic:           request.Topic,
		Prompt:          request.Prompt,
		Style:           request.Style,
		Theme:           request.Theme,
		Duration:        request.Duration,
		AspectRatio:     request.AspectRatio,
		VoiceStyle:      request.VoiceStyle,
		BackgroundMusic: request.BackgroundMusic,
		ContentType:     request.ContentType,

		Provider:      decision.Provider,
		Mode:          decision.Mode,
		RoutingReason: decision.Reason,
		RequestID:     request.RequestID,
		Priority:      request.Priority,
	}

	applyDefaults(&config, decision.Provider)

	if !decision.Adaptations.IsEmpty() {
		config.Adaptations = decision.Adaptations
		applyAdaptations(&config, decision.Adaptations)
	}

	applyOptimizations(&config, decision.Provider, request)

	return config
}

// PrepareBatch builds a JobConfig per item, then applies batch-level
// grouping optimizations (spec §4.D "Batch mode").
func (t *Transformer) PrepareBatch(requests []entity.VideoRequest, decisions []entity.RoutingDecision) []entity.JobConfig {
	configs := make([]entity.JobConfig, len(requests))
	for i := range requests {
		config := t.Prepare(requests[i], decisions[i])
		config.Set("batch_processing", true)
		configs[i] = config
	}

	applyBatchOptimizations(configs)

	return configs
}

func applyDefaults(config *entity.JobConfig, provider entity.Provider) {
	switch provider {
	case entity.ProviderRunway:
		config.Set("resolution", "1920x1080")
		config.Set("fps", 24)
		config.Set("quality", "high")
		config.Set("style_strength", 0.8)
	case entity.ProviderPika:
		config.Set("resolution", "1280x720")
		config.Set("fps", 24)
		config.Set("quality", "creative")
		config.Set("style_strength", 0.9)
	case entity.ProviderGeminiVeo:
		config.Set("resolution", "1280x720")
		config.Set("fps", 24)
		config.Set("quality", "creative")
		config.Set("style_strength", 0.7)
	case entity.ProviderSlideshow:
		config.Set("resolution", "1920x1080")
		config.Set("transition_duration", 0.5)
		config.Set("image_display_time", 3.0)
		config.Set("include_captions", true)
	}
}

func applyAdaptations(config *entity.JobConfig, adaptations *entity.Adaptations) {
	if adaptations.PromptEnhancement != "" {
		config.Prompt = config.Prompt + ". Style note: " + adaptations.PromptEnhancement
	}
	if adaptations.ImageStyle != "" {
		config.Set("image_style_override", adaptations.ImageStyle)
	}
}

func applyOptimizations(config *entity.JobConfig, provider entity.Provider, request entity.VideoRequest) {
	switch provider {
	case entity.ProviderRunway:
		optimizeRunway(config, request)
	case entity.ProviderPika:
		optimizePika(config, request)
	case entity.ProviderGeminiVeo:
		optimizeGeminiVeo(config, request)
	case entity.ProviderSlideshow:
		optimizeSlideshow(config, request)
	}
}

func optimizeRunway(config *entity.JobConfig, request entity.VideoRequest) {
	switch request.Style {
	case entity.StyleCinematic, entity.StylePhotorealistic, entity.StyleDocumentary:
		config.Set("quality", "high")
		config.Set("style_strength", 0.9)
		config.Set("enable_camera_movements", true)
	}

	if request.Duration > 60 {
		config.Set("segment_generation", true)
		config.Set("max_segment_length", 30)
	}

	switch request.AspectRatio {
	case entity.AspectRatio9x16:
		config.Set("resolution", "1080x1920")
	case entity.AspectRatio1x1:
		config.Set("resolution", "1080x1080")
	}
}

func optimizePika(config *entity.JobConfig, request entity.VideoRequest) {
	switch request.Style {
	case entity.StyleAnimation, entity.StyleArtistic, entity.StyleAbstract:
		config.Set("creativity_boost", true)
		config.Set("style_strength", 1.0)
	}

	if request.Duration > 0 && request.Duration <= 30 {
		config.Set("generation_mode", "fast")
		config.Set("quality", "balanced")
	}
}

func optimizeGeminiVeo(config *entity.JobConfig, request entity.VideoRequest) {
	switch request.Style {
	case entity.StyleAnimation, entity.StyleArtistic:
		config.Set("animation_strength", 0.9)
		config.Set("creative_freedom", 0.8)
	}

	config.Set("cost_optimization", true)
}

func optimizeSlideshow(config *entity.JobConfig, request entity.VideoRequest) {
	switch request.ContentType {
	case entity.ContentEducational:
		config.Set("image_display_time", 4.0)
		config.Set("include_captions", true)
		config.Set("caption_position", "bottom")
		config.Set("transition_style", "fade")
	case entity.ContentCorporate:
		config.Set("transition_style", "professional")
		config.Set("image_style", "clean")
		config.Set("include_logo_space", true)
	}

	if request.Duration > 0 {
		displayTime := 3.0
		if v, ok := config.Get("image_display_time"); ok {
			displayTime = v.(float64)
		}
		transitionTime := 0.5
		if v, ok := config.Get("transition_duration"); ok {
			transitionTime = v.(float64)
		}

		imagesNeeded := int(math.Floor(float64(request.Duration) / (displayTime + transitionTime)))
		if imagesNeeded < 3 {
			imagesNeeded = 3
		}
		config.Set("target_image_count", imagesNeeded)
	}

	if request.VoiceStyle != "" {
		config.Set("sync_to_voice", true)
		config.Set("voice_pause_detection", true)
	}
}

// applyBatchOptimizations groups configs by provider: slideshow items get
// high batch priority, other providers with more than one item in the
// batch receive a staggered batch_delay.
func applyBatchOptimizations(configs []entity.JobConfig) {
	groups := make(map[entity.Provider][]int)
	for i, c := range configs {
		groups[c.Provider] = append(groups[c.Provider], i)
	}

	for provider, indices := range groups {
		if provider == entity.ProviderSlideshow {
			for _, i := range indices {
				configs[i].Set("batch_priority", "high")
			}
			continue
		}
		if len(indices) > 1 {
			for idx, i := range indices {
				configs[i].Set("batch_delay", idx*10)
			}
		}
	}
}
