package core

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"cargocore/internal/infra/persistence/memory"
	"cargocore/pkg/domain"
)

func newTestService() *Service {
	store := memory.NewStore(NewDefaultRulesEngine())
	return NewService(store, DefaultConfig(), nil, nil)
}

func TestServiceAddAndPlaceItemRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	zone, err := svc.CreateZone(ctx, domain.Zone{Name: "crew quarters"})
	if err != nil {
		t.Fatal(err)
	}
	container, err := svc.CreateContainer(ctx, domain.Container{ZoneID: zone.ID, Width: 50, Depth: 50, Height: 50})
	if err != nil {
		t.Fatal(err)
	}
	item, err := svc.AddItem(ctx, domain.Item{Name: "food packet", Width: 10, Depth: 10, Height: 10, Priority: 50})
	if err != nil {
		t.Fatal(err)
	}
	if item.IsPlaced() {
		t.Fatal("expected a freshly added item to be unplaced")
	}

	placed, err := svc.PlaceItem(ctx, item.ID, container.ID, 0, 0, 0, false, "astronaut")
	if err != nil {
		t.Fatal(err)
	}
	if !placed.IsPlaced() || placed.Placement.ContainerID != container.ID {
		t.Fatalf("expected item to be placed in %s, got %+v", container.ID, placed.Placement)
	}

	logs := svc.Store().ListLogs()
	if len(logs) != 2 {
		t.Fatalf("expected an added log and a placed log, got %d", len(logs))
	}
}

func TestServicePlaceItemRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	zone, _ := svc.CreateZone(ctx, domain.Zone{Name: "z"})
	container, _ := svc.CreateContainer(ctx, domain.Container{ZoneID: zone.ID, Width: 50, Depth: 50, Height: 50})
	a, _ := svc.AddItem(ctx, domain.Item{Name: "a", Width: 10, Depth: 10, Height: 10, Priority: 10})
	b, _ := svc.AddItem(ctx, domain.Item{Name: "b", Width: 10, Depth: 10, Height: 10, Priority: 10})

	if _, err := svc.PlaceItem(ctx, a.ID, container.ID, 0, 0, 0, false, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.PlaceItem(ctx, b.ID, container.ID, 5, 5, 5, false, ""); err == nil {
		t.Fatal("expected an overlapping placement to be rejected")
	}
}

// S1/S2/S3 at the service level: SuggestPlacement finds a free slot and
// PlaceItem commits exactly that slot.
func TestServiceSuggestThenPlaceAgree(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	zone, _ := svc.CreateZone(ctx, domain.Zone{Name: "z"})
	container, _ := svc.CreateContainer(ctx, domain.Container{ZoneID: zone.ID, Width: 50, Depth: 50, Height: 50})
	incumbent, _ := svc.AddItem(ctx, domain.Item{Name: "incumbent", Width: 50, Depth: 50, Height: 10, Priority: 10})
	svc.PlaceItem(ctx, incumbent.ID, container.ID, 0, 0, 0, false, "")

	newItem, _ := svc.AddItem(ctx, domain.Item{Name: "new", Width: 10, Depth: 10, Height: 10, Priority: 10})

	suggestion, ok, err := svc.SuggestPlacement(ctx, newItem.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected a suggestion")
	}
	if suggestion.Z != 10 {
		t.Fatalf("expected the new item to stack above the incumbent at z=10, got z=%v", suggestion.Z)
	}

	placed, err := svc.PlaceItem(ctx, newItem.ID, suggestion.ContainerID, suggestion.X, suggestion.Y, suggestion.Z, suggestion.Rotated, "")
	if err != nil {
		t.Fatal(err)
	}
	if placed.Placement.Z != 10 {
		t.Fatal("expected the committed placement to match the suggestion")
	}
}

// S4: retrieval steps reflect items blocking the path to the door.
func TestServiceGetRetrievalStepsReflectsBlockers(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	zone, _ := svc.CreateZone(ctx, domain.Zone{Name: "z"})
	container, _ := svc.CreateContainer(ctx, domain.Container{ZoneID: zone.ID, Width: 50, Depth: 50, Height: 50})

	blocker, _ := svc.AddItem(ctx, domain.Item{Name: "blocker", Width: 10, Depth: 10, Height: 10, Priority: 10})
	target, _ := svc.AddItem(ctx, domain.Item{Name: "target", Width: 10, Depth: 10, Height: 10, Priority: 10})
	svc.PlaceItem(ctx, blocker.ID, container.ID, 0, 0, 0, false, "")
	svc.PlaceItem(ctx, target.ID, container.ID, 0, 10, 0, false, "")

	info, err := svc.GetRetrievalSteps(ctx, target.ID)
	if err != nil {
		t.Fatal(err)
	}
	if info.Steps != 1 || len(info.Blockers) != 1 || info.Blockers[0].ID != blocker.ID {
		t.Fatalf("expected one blocker, got %+v", info)
	}
}

// Waste closure: after checkForWaste, no non-waste item is expired or
// depleted.
func TestServiceCheckForWasteClosesOverExpiredItems(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	svc.SetNowFunc(func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) })

	expired := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	item, _ := svc.AddItem(ctx, domain.Item{Name: "expired milk", Width: 1, Depth: 1, Height: 1, Priority: 10, ExpiryDate: &expired})

	newlyWasted, err := svc.CheckForWaste(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(newlyWasted) != 1 || newlyWasted[0].ID != item.ID {
		t.Fatalf("expected the expired item to be newly wasted, got %+v", newlyWasted)
	}

	for _, it := range svc.Store().ListItems(domain.ListFilter{}) {
		if !it.IsWaste && it.ExpiryDate != nil && !it.ExpiryDate.After(svc.nowFn()) {
			t.Fatalf("waste closure violated: %s is expired but not marked waste", it.ID)
		}
	}
}

// Return mass bound: PrepareWasteReturn never selects a set whose total
// mass exceeds the cap.
func TestServicePrepareWasteReturnRespectsMassCap(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	a, _ := svc.AddItem(ctx, domain.Item{Name: "a", Width: 1, Depth: 1, Height: 1, Mass: 4, Priority: 10})
	b, _ := svc.AddItem(ctx, domain.Item{Name: "b", Width: 1, Depth: 1, Height: 1, Mass: 6, Priority: 10})
	svc.MarkWaste(ctx, a.ID, "")
	svc.MarkWaste(ctx, b.ID, "")

	massCap := 5.0
	plan, err := svc.PrepareWasteReturn(ctx, &massCap)
	if err != nil {
		t.Fatal(err)
	}
	if plan.TotalMass > massCap {
		t.Fatalf("expected total mass <= cap, got %v > %v", plan.TotalMass, massCap)
	}
}

// Undock clears placement and flags the item returned, without deleting
// its record.
func TestServiceProcessUndockReturnsWasteAndPreservesRecord(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	zone, _ := svc.CreateZone(ctx, domain.Zone{Name: "z"})
	container, _ := svc.CreateContainer(ctx, domain.Container{ZoneID: zone.ID, Width: 50, Depth: 50, Height: 50})
	item, _ := svc.AddItem(ctx, domain.Item{Name: "trash", Width: 5, Depth: 5, Height: 5, Mass: 3, Priority: 1})
	svc.PlaceItem(ctx, item.ID, container.ID, 0, 0, 0, false, "")
	svc.MarkWaste(ctx, item.ID, "depleted")
	svc.MoveWasteToContainer(ctx, item.ID, container.ID)

	manifest, err := svc.ProcessUndock(ctx, container.ID)
	if err != nil {
		t.Fatal(err)
	}
	if manifest.TotalMass != 3 || len(manifest.Items) != 1 {
		t.Fatalf("expected one item of mass 3 in the manifest, got %+v", manifest)
	}

	stored, ok := svc.Store().GetItem(item.ID)
	if !ok {
		t.Fatal("expected the item record to survive undock")
	}
	if !stored.Returned || stored.Placement != nil {
		t.Fatalf("expected the item to be marked returned with no placement, got %+v", stored)
	}
}

// A return container accumulates every waste item bound for undock, so
// staging a second waste item must not collide with the first at the
// same origin corner.
func TestServiceMoveWasteToContainerStagesMultipleItemsWithoutColliding(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	sourceZone, _ := svc.CreateZone(ctx, domain.Zone{Name: "src"})
	source, _ := svc.CreateContainer(ctx, domain.Container{ZoneID: sourceZone.ID, Width: 50, Depth: 50, Height: 50})
	returnZone, _ := svc.CreateZone(ctx, domain.Zone{Name: "ret"})
	returnContainer, _ := svc.CreateContainer(ctx, domain.Container{ZoneID: returnZone.ID, Width: 20, Depth: 20, Height: 20})

	first, _ := svc.AddItem(ctx, domain.Item{Name: "trash-1", Width: 10, Depth: 10, Height: 10, Mass: 1, Priority: 1})
	second, _ := svc.AddItem(ctx, domain.Item{Name: "trash-2", Width: 10, Depth: 10, Height: 10, Mass: 1, Priority: 1})
	svc.PlaceItem(ctx, first.ID, source.ID, 0, 0, 0, false, "")
	svc.PlaceItem(ctx, second.ID, source.ID, 10, 0, 0, false, "")
	svc.MarkWaste(ctx, first.ID, "depleted")
	svc.MarkWaste(ctx, second.ID, "depleted")

	if _, err := svc.MoveWasteToContainer(ctx, first.ID, returnContainer.ID); err != nil {
		t.Fatalf("stage first waste item: %v", err)
	}
	if _, err := svc.MoveWasteToContainer(ctx, second.ID, returnContainer.ID); err != nil {
		t.Fatalf("stage second waste item: %v", err)
	}

	stored1, _ := svc.Store().GetItem(first.ID)
	stored2, _ := svc.Store().GetItem(second.ID)
	if stored1.Placement == nil || stored2.Placement == nil {
		t.Fatalf("expected both staged items to have a placement, got %+v and %+v", stored1, stored2)
	}
	p1, p2 := *stored1.Placement, *stored2.Placement
	if p1.X == p2.X && p1.Y == p2.Y && p1.Z == p2.Z {
		t.Fatalf("expected staged items to occupy distinct positions, both at %+v", p1)
	}
	box1 := domain.NewAABB(p1.X, p1.Y, p1.Z, stored1.Width, stored1.Depth, stored1.Height)
	box2 := domain.NewAABB(p2.X, p2.Y, p2.Z, stored2.Width, stored2.Depth, stored2.Height)
	if box1.Overlaps(box2) {
		t.Fatalf("expected staged items not to overlap, got %+v and %+v", box1, box2)
	}
}

// Batch monotonicity: placing items in priority order never places a
// lower-priority item at the expense of leaving a higher-priority item
// unplaced when both would fit independently.
func TestServiceSuggestBatchPlacementOrdersByPriority(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	zone, _ := svc.CreateZone(ctx, domain.Zone{Name: "z"})
	svc.CreateContainer(ctx, domain.Container{ZoneID: zone.ID, Width: 10, Depth: 10, Height: 10})

	low, _ := svc.AddItem(ctx, domain.Item{Name: "low", Width: 10, Depth: 10, Height: 10, Priority: 1})
	high, _ := svc.AddItem(ctx, domain.Item{Name: "high", Width: 10, Depth: 10, Height: 10, Priority: 99})

	placements, err := svc.SuggestBatchPlacement(ctx, []string{low.ID, high.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(placements) != 1 || placements[0].ID != high.ID {
		t.Fatalf("expected only the higher-priority item to win the single slot, got %+v", placements)
	}
}

func TestServiceAdvanceTimeAppliesUsageAndSweepsWaste(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.SetNowFunc(func() time.Time { return start })

	item, _ := svc.AddItem(ctx, domain.Item{
		Name: "battery", Width: 1, Depth: 1, Height: 1, Priority: 10,
		Usage: &domain.UsageLimit{UsageLimit: 1, UsesRemaining: 1},
	})

	summary, err := svc.AdvanceTime(ctx, 3, []AdvanceTimeUsage{{ItemID: item.ID, Uses: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if summary.UsesApplied != 1 {
		t.Fatalf("expected 1 use applied, got %d", summary.UsesApplied)
	}

	stored, _ := svc.Store().GetItem(item.ID)
	if !stored.IsWaste || stored.WasteReason != "depleted" {
		t.Fatalf("expected depleted usage budget to flip the item to waste, got %+v", stored)
	}
}

// SuggestPlacement returning no candidate is reported as outcome "no_fit",
// not "error" — a planner recovering locally from NoFit (§7) is not a
// failure of the call itself.
func TestServiceSuggestPlacementRecordsNoFitOutcome(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(NewDefaultRulesEngine())
	metrics := NewMetrics(prometheus.NewRegistry())
	svc := NewService(store, DefaultConfig(), metrics, nil)

	zone, _ := svc.CreateZone(ctx, domain.Zone{Name: "crew quarters"})
	_, _ = svc.CreateContainer(ctx, domain.Container{ZoneID: zone.ID, Width: 5, Depth: 5, Height: 5})
	item, _ := svc.AddItem(ctx, domain.Item{Name: "oversized crate", Width: 50, Depth: 50, Height: 50, Priority: 50})

	_, ok, err := svc.SuggestPlacement(ctx, item.ID)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected no container to fit an oversized item")
	}
	if got := testutil.ToFloat64(metrics.operations.WithLabelValues("suggestPlacement", "no_fit")); got != 1 {
		t.Fatalf("expected 1 no_fit observation for suggestPlacement, got %v", got)
	}
}
