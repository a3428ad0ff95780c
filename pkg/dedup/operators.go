package dedup

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/blackthreadai/wildcatter/pkg/log"
	"github.com/blackthreadai/wildcatter/pkg/normalize"
	"github.com/blackthreadai/wildcatter/pkg/store"
	"github.com/blackthreadai/wildcatter/pkg/types"
)

// dedupOperators groups operators by exact/fuzzy/alias match on
// normalized name, merges every non-canonical member of each group
// (size > 1) into the first by sorted legal name, and records one
// DedupMergeEvent per merge.
func dedupOperators(ctx context.Context, q store.Querier, cfg Config, result *types.DedupResult) error {
	logger := log.WithComponent("dedup")

	ops, err := store.ListOperators(ctx, q)
	if err != nil {
		return fmt.Errorf("failed to list operators for dedup: %w", err)
	}

	uf := newUnionFind(len(ops))
	for i := 0; i < len(ops); i++ {
		for j := i + 1; j < len(ops); j++ {
			if _, match := matchOperators(ops[i], ops[j], cfg.FuzzyThreshold); match {
				uf.union(i, j)
			}
		}
	}

	for _, members := range uf.groups() {
		if len(members) < 2 {
			continue
		}

		group := make([]*types.Operator, len(members))
		for k, idx := range members {
			group[k] = ops[idx]
		}
		sort.Slice(group, func(a, b int) bool { return group[a].LegalName < group[b].LegalName })

		canonical := group[0]
		result.OperatorGroups++

		for _, dup := range group[1:] {
			strategy, _ := matchOperators(canonical, dup, cfg.FuzzyThreshold)
			if strategy == "" {
				// Connected only transitively through a third operator
				// in the group, not directly to the canonical.
				strategy = "alias"
			}

			if _, err := store.RemapAssetsOperator(ctx, q, dup.ID, canonical.ID); err != nil {
				return err
			}
			extraAliases := append([]string{dup.LegalName}, dup.Aliases...)
			if err := store.MergeOperatorAliases(ctx, q, canonical.ID, extraAliases); err != nil {
				return err
			}
			if err := store.DeleteOperator(ctx, q, dup.ID); err != nil {
				return err
			}

			crossState := dup.HQState != nil && canonical.HQState != nil && *dup.HQState != *canonical.HQState
			if crossState {
				result.CrossStateMatches++
			}
			result.OperatorsMerged++
			result.Details = append(result.Details, types.DedupMergeEvent{
				Kind:            "operator",
				CanonicalID:     canonical.ID,
				MergedID:        dup.ID,
				Strategy:        strategy,
				CrossStateMatch: crossState,
				DetectedAt:      time.Now(),
			})

			logger.Info().Str("canonical_id", canonical.ID).Str("merged_id", dup.ID).
				Str("strategy", strategy).Msg("merged duplicate operator")
		}
	}

	return nil
}

// matchOperators reports the strongest strategy under which a and b are
// considered duplicates, in priority order exact > fuzzy > alias.
func matchOperators(a, b *types.Operator, fuzzyThreshold int) (string, bool) {
	na, nb := normalize.NormalizeForMatching(a.LegalName), normalize.NormalizeForMatching(b.LegalName)
	if na == nb {
		return "exact", true
	}

	if dist, ok := normalize.Levenshtein(na, nb, fuzzyThreshold); ok && dist <= fuzzyThreshold {
		return "fuzzy", true
	}

	variantsA := variantSet(a)
	variantsB := variantSet(b)
	for v := range variantsA {
		if variantsB[v] {
			return "alias", true
		}
	}

	return "", false
}

func variantSet(op *types.Operator) map[string]bool {
	set := map[string]bool{normalize.NormalizeForMatching(op.LegalName): true}
	for _, a := range op.Aliases {
		set[normalize.NormalizeForMatching(a)] = true
	}
	return set
}
