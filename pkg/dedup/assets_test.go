package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackthreadai/wildcatter/pkg/store"
)

func strp(s string) *string { return &s }

func TestClusterPointsWithinThreshold(t *testing.T) {
	group := []store.AssetPoint{
		{ID: "b", Latitude: 31.0001, Longitude: -102.0001, OperatorID: strp("op1")},
		{ID: "a", Latitude: 31.0000, Longitude: -102.0000, OperatorID: strp("op1")},
	}

	clusters := clusterPoints(group, 0.01)
	assert.Len(t, clusters, 1)
	assert.Len(t, clusters[0], 2)
	assert.Equal(t, "a", clusters[0][0].ID)
	assert.Equal(t, "b", clusters[0][1].ID)
}

func TestClusterPointsOutsideThresholdStaySeparate(t *testing.T) {
	group := []store.AssetPoint{
		{ID: "a", Latitude: 31.0, Longitude: -102.0},
		{ID: "b", Latitude: 32.0, Longitude: -103.0},
	}

	clusters := clusterPoints(group, 0.01)
	assert.Empty(t, clusters)
}

func TestClusterPointsTransitiveChain(t *testing.T) {
	group := []store.AssetPoint{
		{ID: "a", Latitude: 31.0000, Longitude: -102.0000},
		{ID: "b", Latitude: 31.0090, Longitude: -102.0000},
		{ID: "c", Latitude: 31.0180, Longitude: -102.0000},
	}

	clusters := clusterPoints(group, 0.01)
	assert.Len(t, clusters, 1)
	assert.Len(t, clusters[0], 3)
}

func TestClusterPointsSingletonAndEmpty(t *testing.T) {
	assert.Empty(t, clusterPoints(nil, 0.01))
	assert.Empty(t, clusterPoints([]store.AssetPoint{{ID: "a"}}, 0.01))
}
