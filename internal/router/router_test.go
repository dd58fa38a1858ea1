package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/potterlabs/video-orchestrator/internal/domain/entity"
	"github.com/potterlabs/video-orchestrator/internal/registry"
)

func newTestRouter() *Router {
	return New(registry.Load("", zap.NewNop()))
}

func TestRoute_PreferredProviderShortCircuits(t *testing.T) {
	r := newTestRouter()
	req := entity.VideoRequest{
		Topic:             "demo",
		Style:             entity.StyleCinematic,
		PreferredProvider: entity.ProviderSlideshow,
	}

	decision, err := r.Route(req)

	require.NoError(t, err)
	assert.Equal(t, entity.ProviderSlideshow, decision.Provider)
	assert.Equal(t, 1.0, decision.Confidence)
	assert.Equal(t, "User explicitly requested slideshow", decision.Reason)
	assert.Empty(t, decision.FallbackProvider)
}

func TestRoute_Scenario1_CinematicShort(t *testing.T) {
	r := newTestRouter()
	req := entity.VideoRequest{
		Topic:       "space",
		Style:       entity.StyleCinematic,
		Duration:    45,
		AspectRatio: entity.AspectRatio16x9,
	}

	decision, err := r.Route(req)

	require.NoError(t, err)
	assert.Equal(t, entity.ProviderRunway, decision.Provider)
	assert.Equal(t, entity.ModeAIGenerated, decision.Mode)
	assert.Contains(t, decision.Reason, "cinematic")
	assert.Contains(t, []entity.Provider{entity.ProviderPika, entity.ProviderGeminiVeo}, decision.FallbackProvider)
}

func TestRoute_Scenario2_AnimationShort(t *testing.T) {
	r := newTestRouter()
	req := entity.VideoRequest{Topic: "a cat", Style: entity.StyleAnimation, Duration: 20}

	decision, err := r.Route(req)

	require.NoError(t, err)
	assert.Equal(t, entity.ProviderPika, decision.Provider)
	assert.Equal(t, entity.ProviderGeminiVeo, decision.FallbackProvider)
}

func TestRoute_Scenario3_LongDocumentaryExcludesRunway(t *testing.T) {
	r := newTestRouter()
	req := entity.VideoRequest{
		Topic:       "history",
		Style:       entity.StyleDocumentary,
		ContentType: entity.ContentEducational,
		Duration:    420,
	}

	decision, err := r.Route(req)

	require.NoError(t, err)
	assert.Equal(t, entity.ProviderSlideshow, decision.Provider)
	assert.NotEqual(t, entity.ProviderRunway, decision.Provider)
}

func TestRoute_Scenario5_NoViableProvider(t *testing.T) {
	r := newTestRouter()
	req := entity.VideoRequest{Topic: "x", Style: entity.StylePhotorealistic, Duration: 9999}

	_, err := r.Route(req)
	assert.ErrorIs(t, err, entity.ErrNoViableProvider)

	analysis, analyzeErr := r.Analyze(req)
	assert.ErrorIs(t, analyzeErr, entity.ErrNoViableProvider)
	assert.Empty(t, analysis.Decision.Provider)

	for _, s := range analysis.Scores {
		require.Equal(t, 0.0, s.DurationScore, "provider %s should be excluded by duration", s.Provider)
	}
}

func TestRoute_DurationHardExclusion_NeverChosenOrFallback(t *testing.T) {
	r := newTestRouter()
	// pika's max_duration is 120; runway's is 300; gemini_veo's is 180.
	// 250 excludes pika and gemini_veo, leaving runway and slideshow.
	req := entity.VideoRequest{Topic: "x", Style: entity.StyleArtistic, Duration: 250}

	decision, err := r.Route(req)

	require.NoError(t, err)
	assert.NotEqual(t, entity.ProviderPika, decision.Provider)
	assert.NotEqual(t, entity.ProviderGeminiVeo, decision.Provider)
	assert.NotEqual(t, entity.ProviderPika, decision.FallbackProvider)
	assert.NotEqual(t, entity.ProviderGeminiVeo, decision.FallbackProvider)
}

func TestRoute_FallbackNeverEqualsChosen(t *testing.T) {
	r := newTestRouter()
	styles := []entity.Style{
		entity.StyleCinematic, entity.StylePhotorealistic, entity.StyleAnimation,
		entity.StyleArtistic, entity.StyleAbstract, entity.StyleDocumentary,
	}
	for _, s := range styles {
		decision, err := r.Route(entity.VideoRequest{Topic: "t", Style: s})
		require.NoError(t, err)
		if decision.FallbackProvider != "" {
			assert.NotEqual(t, decision.Provider, decision.FallbackProvider)
		}
	}
}

func TestRoute_Deterministic(t *testing.T) {
	r := newTestRouter()
	req := entity.VideoRequest{Topic: "t", Style: entity.StyleArtistic, ContentType: entity.ContentCreative, Duration: 50}

	first, err := r.Route(req)
	require.NoError(t, err)
	second, err := r.Route(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyze_MatchesRoute(t *testing.T) {
	r := newTestRouter()
	req := entity.VideoRequest{Topic: "t", Style: entity.StyleCinematic}

	analysis, err := r.Analyze(req)
	require.NoError(t, err)
	decision, err := r.Route(req)
	require.NoError(t, err)

	assert.Equal(t, decision, analysis.Decision)
}

func TestScoreStyle_MatrixValuesWithinUnitRange(t *testing.T) {
	for style, row := range styleCompatibility {
		for _, provider := range entity.Providers {
			v, ok := row[provider]
			if !ok {
				continue
			}
			assert.GreaterOrEqual(t, v, 0.0, "style %s provider %s", style, provider)
			assert.LessOrEqual(t, v, 1.0, "style %s provider %s", style, provider)
		}
	}
}

func TestAdaptations_CinematicOnSlideshowCarriesImageStyle(t *testing.T) {
	r := newTestRouter()
	req := entity.VideoRequest{
		Topic:       "demo",
		Style:       entity.StyleCinematic,
		ContentType: entity.ContentEducational,
		Duration:    500,
	}

	decision, err := r.Route(req)

	require.NoError(t, err)
	require.Equal(t, entity.ProviderSlideshow, decision.Provider)
	require.NotNil(t, decision.Adaptations)
	assert.Equal(t, "cinematic photography style with dramatic lighting", decision.Adaptations.ImageStyle)
}

func TestRoute_PreferredProviderCarriesNoAdaptations(t *testing.T) {
	r := newTestRouter()
	req := entity.VideoRequest{Topic: "demo", Style: entity.StyleCinematic, PreferredProvider: entity.ProviderSlideshow}

	decision, err := r.Route(req)

	require.NoError(t, err)
	assert.Nil(t, decision.Adaptations)
}
