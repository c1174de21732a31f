package memory

import (
	"context"
	"testing"

	"cargocore/internal/core"
	"cargocore/pkg/domain"
)

func TestRunInTransactionCommitsOnSuccess(t *testing.T) {
	store := NewStore(core.NewDefaultRulesEngine())
	ctx := context.Background()

	zone, err := txCreateZone(t, ctx, store, domain.Zone{Name: "crew quarters"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.GetZone(zone.ID); !ok {
		t.Fatal("expected zone to be committed")
	}
}

func TestRunInTransactionRollsBackOnBlockingViolation(t *testing.T) {
	store := NewStore(core.NewDefaultRulesEngine())
	ctx := context.Background()

	zone, _ := txCreateZone(t, ctx, store, domain.Zone{Name: "z"})
	container, _ := txCreateContainer(t, ctx, store, domain.Container{ZoneID: zone.ID, Width: 10, Depth: 10, Height: 10})

	_, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.CreateItem(domain.Item{
			Width: 10, Depth: 10, Height: 10,
			Placement: &domain.Placement{ContainerID: container.ID, X: 5, Y: 5, Z: 5},
		})
		return err
	})
	if err == nil {
		t.Fatal("expected an out-of-bounds placement to be rejected at commit time")
	}
	if len(store.ListItems(domain.ListFilter{})) != 0 {
		t.Fatal("expected the rejected item not to have been committed")
	}
}

func TestRunInTransactionRollsBackOnOverlap(t *testing.T) {
	store := NewStore(core.NewDefaultRulesEngine())
	ctx := context.Background()

	zone, _ := txCreateZone(t, ctx, store, domain.Zone{Name: "z"})
	container, _ := txCreateContainer(t, ctx, store, domain.Container{ZoneID: zone.ID, Width: 100, Depth: 100, Height: 100})

	_, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.CreateItem(domain.Item{
			Width: 10, Depth: 10, Height: 10,
			Placement: &domain.Placement{ContainerID: container.ID, X: 0, Y: 0, Z: 0},
		})
		return err
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.CreateItem(domain.Item{
			Width: 10, Depth: 10, Height: 10,
			Placement: &domain.Placement{ContainerID: container.ID, X: 5, Y: 5, Z: 5},
		})
		return err
	})
	if err == nil {
		t.Fatal("expected an overlapping placement to be rejected at commit time")
	}
	if len(store.ListItems(domain.ListFilter{})) != 1 {
		t.Fatal("expected only the first item to have committed")
	}
}

func TestExportImportStateRoundTrip(t *testing.T) {
	store := NewStore(core.NewDefaultRulesEngine())
	ctx := context.Background()

	zone, _ := txCreateZone(t, ctx, store, domain.Zone{Name: "z"})
	txCreateContainer(t, ctx, store, domain.Container{ZoneID: zone.ID, Width: 10, Depth: 10, Height: 10})

	snap := store.ExportState()

	restored := NewStore(core.NewDefaultRulesEngine())
	restored.ImportState(snap)

	if len(restored.ListZones()) != 1 || len(restored.ListContainers()) != 1 {
		t.Fatalf("expected round-tripped state to match, got zones=%d containers=%d",
			len(restored.ListZones()), len(restored.ListContainers()))
	}
}

func TestViewReflectsStateAfterCommit(t *testing.T) {
	store := NewStore(core.NewDefaultRulesEngine())
	ctx := context.Background()

	var sawDuringTx int
	_, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		if _, err := tx.CreateZone(domain.Zone{Name: "in flight"}); err != nil {
			return err
		}
		sawDuringTx = len(tx.Snapshot().ListZones())
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if sawDuringTx != 1 {
		t.Fatalf("expected the transaction's own snapshot to see its write, got %d", sawDuringTx)
	}

	var afterCommit int
	err = store.View(ctx, func(view domain.TransactionView) error {
		afterCommit = len(view.ListZones())
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if afterCommit != 1 {
		t.Fatal("expected the zone to be visible after commit")
	}
}

func txCreateZone(t *testing.T, ctx context.Context, store *Store, z domain.Zone) (domain.Zone, error) {
	t.Helper()
	var created domain.Zone
	_, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateZone(z)
		return err
	})
	return created, err
}

func txCreateContainer(t *testing.T, ctx context.Context, store *Store, c domain.Container) (domain.Container, error) {
	t.Helper()
	var created domain.Container
	_, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateContainer(c)
		return err
	})
	return created, err
}
