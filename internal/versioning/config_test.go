package versioning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

func sampleConfig() *VersionConfig {
	return &VersionConfig{
		Current: "v2",
		Available: []AvailableVersion{
			{ID: "v2", Label: "2.x"},
			{ID: "v1", Segment: "legacy", Banner: BannerUnmaintained},
		},
		Deprecated: []string{"v1"},
	}
}

func TestVersionConfigLookups(t *testing.T) {
	c := sampleConfig()

	assert.Equal(t, "v2", c.StableVersion())
	assert.True(t, c.Registered("v1"))
	assert.True(t, c.Registered("legacy"))
	assert.False(t, c.Registered("v3"))
	assert.Equal(t, "legacy", c.SegmentFor("v1"))
	assert.Equal(t, "v3", c.SegmentFor("v3"))
	assert.True(t, c.IsDeprecated("v1"))
	assert.False(t, c.IsDeprecated("v2"))

	a, ok := c.Lookup("v2")
	require.True(t, ok)
	assert.Equal(t, "2.x", a.DisplayLabel())
	assert.Equal(t, "v2", a.URLSegment())

	c.Stable = "v1"
	assert.Equal(t, "v1", c.StableVersion())
}

func TestVersionConfigValidate(t *testing.T) {
	t.Run("empty available", func(t *testing.T) {
		_, err := (&VersionConfig{Current: "v1"}).Validate(false)
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	})

	t.Run("nil config", func(t *testing.T) {
		var c *VersionConfig
		_, err := c.Validate(false)
		require.Error(t, err)
	})

	t.Run("duplicate ids", func(t *testing.T) {
		c := &VersionConfig{Available: []AvailableVersion{{ID: "v1"}, {ID: "v1"}}}
		_, err := c.Validate(false)
		require.Error(t, err)
	})

	t.Run("valid", func(t *testing.T) {
		warnings, err := sampleConfig().Validate(true)
		require.NoError(t, err)
		assert.Empty(t, warnings)
	})

	t.Run("dangling references warn by default", func(t *testing.T) {
		c := sampleConfig()
		c.Current = "v3"
		c.Deprecated = append(c.Deprecated, "v0")
		warnings, err := c.Validate(false)
		require.NoError(t, err)
		assert.Len(t, warnings, 2)
	})

	t.Run("dangling references fail when strict", func(t *testing.T) {
		c := sampleConfig()
		c.Stable = "v9"
		_, err := c.Validate(true)
		require.Error(t, err)
	})
}
