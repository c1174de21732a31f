package core

import (
	"sort"

	"cargocore/pkg/domain"
)

// RearrangementPlan is the output of suggestRearrangement: either an
// immediate go-ahead (SpaceAvailable) or a set of incumbents to evict plus
// alternate homes for them, alongside placements for the new cargo.
type RearrangementPlan struct {
	SpaceAvailable    bool
	ItemsToMove       []domain.Item
	AlternativePlacements map[string]Placement // itemID -> chosen alternate container/position
	Unmatched         []domain.Item
	NewItemPlacements []domain.Item
}

func itemVolume(it domain.Item) float64 {
	return it.Width * it.Depth * it.Height
}

// suggestRearrangement decides whether newItems fit in container alongside
// its current non-waste occupants within the 0.9*V fill threshold. If not,
// it evicts the lowest-priority incumbents until enough volume is freed and
// proposes alternate homes for each evicted item.
//
// The check is a volume-sum heuristic: it does not verify that the new items
// actually pack into the space the evicted items leave behind.
func suggestRearrangement(container domain.Container, incumbents []domain.Item, newItems []domain.Item, allContainers []domain.Container, allPlaced []domain.Item, cfg Config) RearrangementPlan {
	v := container.Volume()
	var vCur float64
	for _, it := range incumbents {
		if it.IsWaste {
			continue
		}
		vCur += itemVolume(it)
	}
	var vNew float64
	for _, it := range newItems {
		vNew += itemVolume(it)
	}

	threshold := cfg.Search.RearrangeFillFraction * v
	if vCur+vNew <= threshold {
		return RearrangementPlan{
			SpaceAvailable:    true,
			NewItemPlacements: findOptimalPlacementsForBatch(newItems, []domain.Container{container}, allPlaced, cfg),
		}
	}

	vFree := vCur + vNew - threshold

	sorted := make([]domain.Item, 0, len(incumbents))
	for _, it := range incumbents {
		if !it.IsWaste {
			sorted = append(sorted, it)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	var (
		evicted     []domain.Item
		cumVolume   float64
	)
	for _, it := range sorted {
		if cumVolume >= vFree {
			break
		}
		evicted = append(evicted, it)
		cumVolume += itemVolume(it)
	}

	plan := RearrangementPlan{
		SpaceAvailable: false,
		ItemsToMove:    evicted,
		AlternativePlacements: make(map[string]Placement),
	}

	otherContainers := make([]domain.Container, 0, len(allContainers))
	for _, c := range allContainers {
		if c.ID != container.ID {
			otherContainers = append(otherContainers, c)
		}
	}
	trees := buildTrees(otherContainers, allPlaced)

	for _, it := range evicted {
		placement, ok := findOptimalPlacement(it, otherContainers, trees, cfg)
		if !ok {
			plan.Unmatched = append(plan.Unmatched, it)
			continue
		}
		box := domain.ItemAABB(it, placement.X, placement.Y, placement.Z, placement.Rotated)
		trees[placement.ContainerID].Insert(it.ID, box)
		plan.AlternativePlacements[it.ID] = placement
	}

	return plan
}
