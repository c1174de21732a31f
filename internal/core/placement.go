package core

import (
	"sort"

	"cargocore/internal/octree"
	"cargocore/pkg/domain"
)

// Candidate is a feasible placement found by findEmptySpace, before scoring.
type Candidate struct {
	X, Y, Z float64
	Rotated bool
}

// findEmptySpace grids candidate positions inside the container and returns
// the best feasible one: minimum y, tie-broken by lower x, then lower z,
// then non-rotated over rotated (the first minimum-y slot in the x -> y -> z
// sweep order).
func findEmptySpace(tree *octree.Tree, container domain.Container, w, d, h float64, considerRotation bool, step float64) (Candidate, bool) {
	var (
		best  Candidate
		found bool
	)

	// betterThan reports whether cand ranks ahead of the current best:
	// minimum y, then lower x, then lower z, then non-rotated over rotated.
	betterThan := func(cand Candidate) bool {
		if !found {
			return true
		}
		if cand.Y != best.Y {
			return cand.Y < best.Y
		}
		if cand.X != best.X {
			return cand.X < best.X
		}
		if cand.Z != best.Z {
			return cand.Z < best.Z
		}
		return !cand.Rotated && best.Rotated
	}

	orientations := []bool{false}
	if considerRotation && w != d {
		orientations = append(orientations, true)
	}

	for _, rotated := range orientations {
		fw, fd := w, d
		if rotated {
			fw, fd = d, w
		}
		if fw > container.Width || fd > container.Depth || h > container.Height {
			continue
		}
		for x := 0.0; x+fw <= container.Width+1e-9; x += step {
			for y := 0.0; y+fd <= container.Depth+1e-9; y += step {
				for z := 0.0; z+h <= container.Height+1e-9; z += step {
					box := domain.NewAABB(x, y, z, fw, fd, h)
					if !tree.IsEmpty(box) {
						continue
					}
					cand := Candidate{X: x, Y: y, Z: z, Rotated: rotated}
					if betterThan(cand) {
						best = cand
						found = true
					}
				}
			}
		}
	}

	return best, found
}

// Placement is a scored candidate location for an item within a specific
// container.
type Placement struct {
	ContainerID string
	X, Y, Z     float64
	Rotated     bool
	Score       float64
}

// fitsAnyOrientation rejects items whose footprint cannot possibly fit the
// container under either orientation, before running the grid sweep.
func fitsAnyOrientation(item domain.Item, c domain.Container) bool {
	if item.Height > c.Height {
		return false
	}
	straight := item.Width <= c.Width && item.Depth <= c.Depth
	rotated := item.Depth <= c.Width && item.Width <= c.Depth
	return straight || rotated
}

// findOptimalPlacement ranks candidate containers for item using the zone
// bonus, door-proximity score, and priority tie-break, returning the
// maximum-scoring placement. trees supplies a prebuilt octree per container
// (the batch variant reuses the same map across items); a container with no
// entry in trees is skipped.
func findOptimalPlacement(item domain.Item, containers []domain.Container, trees map[string]*octree.Tree, cfg Config) (Placement, bool) {
	var (
		best    Placement
		found   bool
		bestVal = -1.0
	)

	for _, c := range containers {
		if !fitsAnyOrientation(item, c) {
			continue
		}
		tree, ok := trees[c.ID]
		if !ok {
			continue
		}
		cand, ok := findEmptySpace(tree, c, item.Width, item.Depth, item.Height, true, cfg.Search.GridStep)
		if !ok {
			continue
		}

		zoneScore := 0.0
		if item.PreferredZoneID != "" && c.ZoneID == item.PreferredZoneID {
			zoneScore = cfg.Scoring.ZoneBonus
		}
		placementScore := cfg.Scoring.DoorWeight * (1 - cand.Y/c.Depth)
		total := zoneScore + placementScore + float64(item.Priority)/cfg.Scoring.PriorityDivisor

		if !found || total > bestVal {
			bestVal = total
			best = Placement{
				ContainerID: c.ID,
				X:           cand.X,
				Y:           cand.Y,
				Z:           cand.Z,
				Rotated:     cand.Rotated,
				Score:       total,
			}
			found = true
		}
	}
	return best, found
}

// buildTrees materializes one octree per container from its currently
// placed, non-waste items.
func buildTrees(containers []domain.Container, items []domain.Item) map[string]*octree.Tree {
	byContainer := make(map[string][]domain.Item)
	for _, it := range items {
		if it.Placement == nil {
			continue
		}
		byContainer[it.Placement.ContainerID] = append(byContainer[it.Placement.ContainerID], it)
	}
	trees := make(map[string]*octree.Tree, len(containers))
	for _, c := range containers {
		trees[c.ID] = octree.BuildFromItems(c, byContainer[c.ID])
	}
	return trees
}

// findOptimalPlacementsForBatch sorts items by priority descending (stable)
// and greedily places each into the best-scoring container, inserting
// successes into that container's cached octree in place so later items in
// the batch see the updated occupancy. There is no backtracking.
func findOptimalPlacementsForBatch(items []domain.Item, containers []domain.Container, allPlaced []domain.Item, cfg Config) []domain.Item {
	ordered := make([]domain.Item, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	trees := buildTrees(containers, allPlaced)

	out := make([]domain.Item, 0, len(ordered))
	for _, item := range ordered {
		placement, ok := findOptimalPlacement(item, containers, trees, cfg)
		if !ok {
			continue
		}
		box := domain.ItemAABB(item, placement.X, placement.Y, placement.Z, placement.Rotated)
		trees[placement.ContainerID].Insert(item.ID, box)

		placed := item
		placed.Placement = &domain.Placement{
			ContainerID: placement.ContainerID,
			X:           placement.X,
			Y:           placement.Y,
			Z:           placement.Z,
			Rotated:     placement.Rotated,
		}
		out = append(out, placed)
	}
	return out
}
