package dedup

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/blackthreadai/wildcatter/pkg/log"
	"github.com/blackthreadai/wildcatter/pkg/store"
	"github.com/blackthreadai/wildcatter/pkg/types"
)

// dedupAssets groups, one state at a time, assets that share an
// operator and fall within cfg.ProximityThreshold degrees of one
// another in both latitude and longitude, then merges each group's
// non-canonical members into the first by sorted ID.
func dedupAssets(ctx context.Context, q store.Querier, cfg Config, result *types.DedupResult) error {
	states, err := store.ListDistinctStates(ctx, q)
	if err != nil {
		return fmt.Errorf("failed to list states for asset dedup: %w", err)
	}

	for _, state := range states {
		points, err := store.ListAssetsNear(ctx, q, state)
		if err != nil {
			return fmt.Errorf("failed to list assets in %s: %w", state, err)
		}

		byOperator := make(map[string][]store.AssetPoint)
		for _, p := range points {
			if p.OperatorID == nil {
				continue
			}
			byOperator[*p.OperatorID] = append(byOperator[*p.OperatorID], p)
		}

		for _, group := range byOperator {
			if len(group) < 2 {
				continue
			}
			if err := clusterAndMerge(ctx, q, group, cfg.ProximityThreshold, result); err != nil {
				return err
			}
		}
	}

	return nil
}

// clusterPoints groups group into connected components where every
// member is within threshold degrees of at least one other member of
// the same component in both latitude and longitude, returning only
// components of size >= 2, each sorted by ID ascending so the first
// entry is always the canonical one.
func clusterPoints(group []store.AssetPoint, threshold float64) [][]store.AssetPoint {
	uf := newUnionFind(len(group))
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			if math.Abs(group[i].Latitude-group[j].Latitude) <= threshold &&
				math.Abs(group[i].Longitude-group[j].Longitude) <= threshold {
				uf.union(i, j)
			}
		}
	}

	var clusters [][]store.AssetPoint
	for _, members := range uf.groups() {
		if len(members) < 2 {
			continue
		}
		cluster := make([]store.AssetPoint, len(members))
		for k, idx := range members {
			cluster[k] = group[idx]
		}
		sort.Slice(cluster, func(a, b int) bool { return cluster[a].ID < cluster[b].ID })
		clusters = append(clusters, cluster)
	}
	return clusters
}

func clusterAndMerge(ctx context.Context, q store.Querier, group []store.AssetPoint, threshold float64, result *types.DedupResult) error {
	for _, cluster := range clusterPoints(group, threshold) {
		canonical := cluster[0]
		result.AssetGroups++

		for _, dup := range cluster[1:] {
			if err := store.MergeAssetInto(ctx, q, canonical.ID, dup.ID); err != nil {
				return err
			}
			result.AssetsMerged++
			result.Details = append(result.Details, types.DedupMergeEvent{
				Kind:        "asset",
				CanonicalID: canonical.ID,
				MergedID:    dup.ID,
				Strategy:    "proximity",
				DetectedAt:  time.Now(),
			})

			log.WithComponent("dedup").Info().Str("canonical_id", canonical.ID).Str("merged_id", dup.ID).
				Msg("merged duplicate asset")
		}
	}

	return nil
}
