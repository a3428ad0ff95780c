package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigMatchesSpecDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 3, cfg.FuzzyThreshold)
	assert.Equal(t, 0.01, cfg.ProximityThreshold)
	assert.False(t, cfg.DryRun)
}
