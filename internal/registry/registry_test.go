package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/potterlabs/video-orchestrator/internal/domain/entity"
)

func TestLoad_NoOverlayReturnsBuiltins(t *testing.T) {
	reg := Load("", zap.NewNop())

	caps, ok := reg.Capabilities(entity.ProviderRunway)
	require.True(t, ok)
	assert.Equal(t, 300, caps.MaxDuration)
	assert.Equal(t, entity.QualityHigh, caps.Quality)

	all := reg.All()
	assert.Len(t, all, 4)
}

func TestLoad_MissingOverlayFallsBackSilently(t *testing.T) {
	reg := Load(filepath.Join(t.TempDir(), "does-not-exist.json"), zap.NewNop())

	caps, ok := reg.Capabilities(entity.ProviderSlideshow)
	require.True(t, ok)
	assert.Equal(t, entity.CostVeryLow, caps.CostTier)
}

func TestLoad_MalformedOverlayFallsBackSilently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	reg := Load(path, zap.NewNop())

	caps, ok := reg.Capabilities(entity.ProviderPika)
	require.True(t, ok)
	assert.Equal(t, 120, caps.MaxDuration)
}

func TestLoad_OverlayOverridesBuiltinProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.json")
	doc := `{
		"providers": {
			"runway": {
				"max_duration": 999,
				"estimated_time_per_second": 3.5,
				"quality": "high",
				"strengths": ["cinematic"],
				"resolutions": ["1920x1080"],
				"features": ["camera_movements"],
				"cost_tier": "high",
				"fallbacks": ["slideshow"]
			}
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	reg := Load(path, zap.NewNop())

	caps, ok := reg.Capabilities(entity.ProviderRunway)
	require.True(t, ok)
	assert.Equal(t, 999, caps.MaxDuration)
	assert.Equal(t, []entity.Provider{entity.ProviderSlideshow}, caps.Fallbacks)

	// Untouched providers keep their built-in values.
	pika, ok := reg.Capabilities(entity.ProviderPika)
	require.True(t, ok)
	assert.Equal(t, 120, pika.MaxDuration)
}

func TestLoad_OverlayRejectsUnknownProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.json")
	doc := `{"providers": {"not_a_real_provider": {"max_duration": 10}}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	reg := Load(path, zap.NewNop())

	all := reg.All()
	assert.Len(t, all, 4)
	_, ok := reg.Capabilities(entity.Provider("not_a_real_provider"))
	assert.False(t, ok)
}

func TestAll_ReturnsIndependentCopy(t *testing.T) {
	reg := Load("", zap.NewNop())

	all := reg.All()
	delete(all, entity.ProviderRunway)

	_, ok := reg.Capabilities(entity.ProviderRunway)
	assert.True(t, ok, "mutating the returned map must not affect the registry")
}
