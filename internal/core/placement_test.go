package core

import (
	"testing"

	"cargocore/internal/octree"
	"cargocore/pkg/domain"
)

func cube(id string, size float64) domain.Item {
	return domain.Item{ID: id, Width: size, Depth: size, Height: size, Priority: 50}
}

// S1: empty 100x100x100 container places a 10x10x10 item at the origin,
// non-rotated.
func TestFindEmptySpaceEmptyContainerPlacesAtOrigin(t *testing.T) {
	c := domain.Container{ID: "c1", Width: 100, Depth: 100, Height: 100}
	tree := octree.New(c)

	cand, ok := findEmptySpace(tree, c, 10, 10, 10, true, 5)
	if !ok {
		t.Fatal("expected a fit")
	}
	if cand.X != 0 || cand.Y != 0 || cand.Z != 0 || cand.Rotated {
		t.Fatalf("expected (0,0,0,false), got %+v", cand)
	}
}

// S2: with A occupying (0,0,0) 10x10x10, B of the same size lands at
// (0,0,10) — stacked on top of A, since the y=0 row still has an empty z
// slot once z is swept after y.
func TestFindEmptySpaceStacksOnTopWhenRowOccupied(t *testing.T) {
	c := domain.Container{ID: "c1", Width: 100, Depth: 100, Height: 100}
	tree := octree.New(c)
	tree.Insert("a", domain.NewAABB(0, 0, 0, 10, 10, 10))

	cand, ok := findEmptySpace(tree, c, 10, 10, 10, true, 5)
	if !ok {
		t.Fatal("expected a fit")
	}
	if cand.X != 0 || cand.Y != 0 || cand.Z != 10 {
		t.Fatalf("expected (0,0,10), got %+v", cand)
	}
}

// S3: A occupies (0,0,0) 50x100x100; B (50x100x100) cannot go at (0,0,0)
// (overlap) but fits at (50,0,0).
func TestFindEmptySpaceSkipsOverlapAndFindsAdjacentSlot(t *testing.T) {
	c := domain.Container{ID: "c1", Width: 100, Depth: 100, Height: 100}
	tree := octree.New(c)
	tree.Insert("a", domain.NewAABB(0, 0, 0, 50, 100, 100))

	cand, ok := findEmptySpace(tree, c, 50, 100, 100, true, 5)
	if !ok {
		t.Fatal("expected a fit")
	}
	if cand.X != 50 || cand.Y != 0 || cand.Z != 0 {
		t.Fatalf("expected (50,0,0), got %+v", cand)
	}
}

func TestFindEmptySpaceReturnsFalseWhenFull(t *testing.T) {
	c := domain.Container{ID: "c1", Width: 10, Depth: 10, Height: 10}
	tree := octree.New(c)
	tree.Insert("a", domain.NewAABB(0, 0, 0, 10, 10, 10))

	_, ok := findEmptySpace(tree, c, 5, 5, 5, true, 5)
	if ok {
		t.Fatal("expected no fit in a fully occupied container")
	}
}

func TestFindOptimalPlacementScoresZoneBonusAndDoorProximity(t *testing.T) {
	zoneA := domain.Container{ID: "c1", ZoneID: "zoneA", Width: 100, Depth: 100, Height: 100}
	zoneB := domain.Container{ID: "c2", ZoneID: "zoneB", Width: 100, Depth: 100, Height: 100}
	containers := []domain.Container{zoneB, zoneA}

	item := domain.Item{ID: "item1", Width: 10, Depth: 10, Height: 10, Priority: 50, PreferredZoneID: "zoneA"}
	trees := buildTrees(containers, nil)

	cfg := DefaultConfig()
	placement, ok := findOptimalPlacement(item, containers, trees, cfg)
	if !ok {
		t.Fatal("expected a placement")
	}
	if placement.ContainerID != "c1" {
		t.Fatalf("expected the preferred-zone container to win, got %s", placement.ContainerID)
	}
	wantScore := cfg.Scoring.ZoneBonus + cfg.Scoring.DoorWeight*(1-0.0/100) + float64(item.Priority)/cfg.Scoring.PriorityDivisor
	if placement.Score != wantScore {
		t.Fatalf("expected score %v, got %v", wantScore, placement.Score)
	}
}

func TestFindOptimalPlacementsForBatchOrdersByPriorityDescending(t *testing.T) {
	container := domain.Container{ID: "c1", Width: 100, Depth: 100, Height: 100}
	low := domain.Item{ID: "low", Width: 90, Depth: 90, Height: 10, Priority: 10}
	high := domain.Item{ID: "high", Width: 90, Depth: 90, Height: 10, Priority: 90}

	placed := findOptimalPlacementsForBatch([]domain.Item{low, high}, []domain.Container{container}, nil, DefaultConfig())
	if len(placed) != 2 {
		t.Fatalf("expected both items placed (distinct z), got %d", len(placed))
	}
	if placed[0].ID != "high" {
		t.Fatalf("expected higher priority item placed first, got %s", placed[0].ID)
	}
}

func TestFitsAnyOrientationRejectsOversizedItem(t *testing.T) {
	c := domain.Container{Width: 50, Depth: 50, Height: 50}
	tooTall := domain.Item{Width: 10, Depth: 10, Height: 60}
	if fitsAnyOrientation(tooTall, c) {
		t.Fatal("expected rejection for an item taller than the container")
	}

	// Fits only when rotated: straight needs d<=40, rotated needs w<=40.
	rectangular := domain.Container{Width: 60, Depth: 40, Height: 50}
	rotatable := domain.Item{Width: 35, Depth: 55, Height: 10}
	if !fitsAnyOrientation(rotatable, rectangular) {
		t.Fatal("expected rotation to make the item fit")
	}
}
