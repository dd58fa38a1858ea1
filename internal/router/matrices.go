package router

import "github.com/potterlabs/video-orchestrator/internal/domain/entity"

// Scoring matrices as package-level data, ported verbatim from
// original_source/v0/ai-logic/routing.py so property tests over every
// (style, provider) pair are straightforward.

var styleCompatibility = map[entity.Style]map[entity.Provider]float64{
	entity.StyleCinematic: {
		entity.ProviderRunway:    1.0,
		entity.ProviderGeminiVeo: 0.7,
		entity.ProviderPika:      0.6,
		entity.ProviderSlideshow: 0.3,
	},
	entity.StylePhotorealistic: {
		entity.ProviderRunway:    1.0,
		entity.ProviderGeminiVeo: 0.6,
		entity.ProviderPika:      0.5,
		entity.ProviderSlideshow: 0.4,
	},
	entity.StyleAnimation: {
		entity.ProviderPika:      1.0,
		entity.ProviderGeminiVeo: 0.9,
		entity.ProviderRunway:    0.6,
		entity.ProviderSlideshow: 0.7,
	},
	entity.StyleArtistic: {
		entity.ProviderPika:      1.0,
		entity.ProviderGeminiVeo: 0.9,
		entity.ProviderRunway:    0.5,
		entity.ProviderSlideshow: 0.6,
	},
	entity.StyleAbstract: {
		entity.ProviderPika:      1.0,
		entity.ProviderGeminiVeo: 0.9,
		entity.ProviderRunway:    0.4,
		entity.ProviderSlideshow: 0.5,
	},
	entity.StyleDocumentary: {
		entity.ProviderRunway:    1.0,
		entity.ProviderSlideshow: 0.8,
		entity.ProviderGeminiVeo: 0.6,
		entity.ProviderPika:      0.4,
	},
}

const unknownStyleScore = 0.5

var contentPreference = map[entity.ContentType]map[entity.Provider]float64{
	entity.ContentEducational: {
		entity.ProviderSlideshow: 1.0,
		entity.ProviderRunway:    0.7,
		entity.ProviderGeminiVeo: 0.6,
		entity.ProviderPika:      0.5,
	},
	entity.ContentEntertainment: {
		entity.ProviderPika:      1.0,
		entity.ProviderGeminiVeo: 0.9,
		entity.ProviderRunway:    0.8,
		entity.ProviderSlideshow: 0.4,
	},
	entity.ContentCorporate: {
		entity.ProviderRunway:    1.0,
		entity.ProviderSlideshow: 0.8,
		entity.ProviderGeminiVeo: 0.6,
		entity.ProviderPika:      0.4,
	},
	entity.ContentCreative: {
		entity.ProviderPika:      1.0,
		entity.ProviderGeminiVeo: 0.9,
		entity.ProviderRunway:    0.6,
		entity.ProviderSlideshow: 0.5,
	},
}

const (
	neutralContentScore = 0.7
	unknownContentScore = 0.6
	neutralDurationScore = 0.7
)

// durationBand picks the speed-preference table for a duration bucket.
func durationBand(duration int) map[entity.Provider]float64 {
	switch {
	case duration <= 30:
		return map[entity.Provider]float64{
			entity.ProviderGeminiVeo: 1.0,
			entity.ProviderPika:      0.9,
			entity.ProviderSlideshow: 0.8,
			entity.ProviderRunway:    0.7,
		}
	case duration <= 120:
		return map[entity.Provider]float64{
			entity.ProviderRunway:    1.0,
			entity.ProviderGeminiVeo: 0.9,
			entity.ProviderPika:      0.9,
			entity.ProviderSlideshow: 0.8,
		}
	default:
		return map[entity.Provider]float64{
			entity.ProviderSlideshow: 1.0,
			entity.ProviderGeminiVeo: 0.7,
			entity.ProviderPika:      0.6,
			entity.ProviderRunway:    0.5,
		}
	}
}

const durationBandDefault = 0.6

// qualityRequirement maps a style to the quality tier it demands.
var qualityRequirement = map[entity.Style]entity.Quality{
	entity.StyleCinematic:      entity.QualityHigh,
	entity.StylePhotorealistic: entity.QualityHigh,
	entity.StyleDocumentary:    entity.QualityHigh,
	entity.StyleArtistic:       entity.QualityCreative,
	entity.StyleAnimation:      entity.QualityCreative,
	entity.StyleAbstract:       entity.QualityCreative,
}

const qualityRequirementDefault = entity.QualityStandard

// qualityScoreTable is keyed (required, provider quality), pinned per
// DESIGN.md's resolution of the table-orientation open question.
var qualityScoreTable = map[[2]entity.Quality]float64{
	{entity.QualityHigh, entity.QualityHigh}:         1.0,
	{entity.QualityHigh, entity.QualityCreative}:     0.8,
	{entity.QualityHigh, entity.QualityStandard}:     0.6,
	{entity.QualityCreative, entity.QualityCreative}: 1.0,
	{entity.QualityCreative, entity.QualityHigh}:     0.9,
	{entity.QualityCreative, entity.QualityStandard}: 0.7,
	{entity.QualityStandard, entity.QualityStandard}: 1.0,
	{entity.QualityStandard, entity.QualityCreative}: 0.9,
	{entity.QualityStandard, entity.QualityHigh}:     0.8,
}

const qualityScoreDefault = 0.7

var costBaseScore = map[entity.CostTier]float64{
	entity.CostVeryLow: 1.0,
	entity.CostLow:     0.8,
	entity.CostMedium:  0.6,
	entity.CostHigh:    0.4,
}

const costScoreDefault = 0.6

// weights are the fixed per-factor weights summing to 1.0.
const (
	weightStyle    = 0.30
	weightContent  = 0.25
	weightDuration = 0.20
	weightQuality  = 0.15
	weightCost     = 0.10
)

// styleAdaptations fires only for cinematic and animation styles — every
// other style carries no adaptation, matching the original exactly.
var styleAdaptations = map[entity.Style]map[entity.Provider]entity.Adaptations{
	entity.StyleCinematic: {
		entity.ProviderGeminiVeo: {
			PromptEnhancement:  "cinematic style with dramatic camera angles and professional lighting",
			DurationAdjustment: "Consider shorter duration for optimal quality",
		},
		entity.ProviderPika: {
			PromptEnhancement: "cinematic style with dramatic lighting and camera movements",
			StyleNote:         "May have more artistic interpretation than pure cinematic",
		},
		entity.ProviderSlideshow: {
			ImageStyle:        "cinematic photography style with dramatic lighting",
			TransitionEffects: "Use cross-fades and professional transitions",
		},
	},
	entity.StyleAnimation: {
		entity.ProviderRunway: {
			PromptEnhancement: "animated style with smooth motion and cartoon-like elements",
			StyleNote:         "May be more realistic than pure animation",
		},
		entity.ProviderSlideshow: {
			ImageStyle:     "cartoon and animated illustration style",
			SequenceTiming: "Use quick transitions to simulate animation",
		},
	},
}
