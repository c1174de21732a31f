package core

import (
	"context"
	"testing"

	"cargocore/pkg/domain"
)

type fakeRuleView struct {
	containers []domain.Container
	items      []domain.Item
}

func (v fakeRuleView) ListZones() []domain.Zone           { return nil }
func (v fakeRuleView) ListContainers() []domain.Container { return v.containers }
func (v fakeRuleView) ListItems(domain.ListFilter) []domain.Item { return v.items }
func (v fakeRuleView) FindZone(string) (domain.Zone, bool) { return domain.Zone{}, false }
func (v fakeRuleView) FindContainer(id string) (domain.Container, bool) {
	for _, c := range v.containers {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Container{}, false
}
func (v fakeRuleView) FindItem(string) (domain.Item, bool) { return domain.Item{}, false }

func TestNonOverlapRuleFlagsOverlappingItems(t *testing.T) {
	a := placedItem("a", "c1", 0, 0, 0, 10, 10, 10)
	b := placedItem("b", "c1", 5, 5, 5, 10, 10, 10)
	view := fakeRuleView{items: []domain.Item{a, b}}

	res, err := nonOverlapRule{}.Evaluate(context.Background(), view, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.HasBlocking() {
		t.Fatal("expected a blocking violation for overlapping items")
	}
}

func TestNonOverlapRuleAllowsFlushStacking(t *testing.T) {
	a := placedItem("a", "c1", 0, 0, 0, 10, 10, 10)
	b := placedItem("b", "c1", 0, 0, 10, 10, 10, 10)
	view := fakeRuleView{items: []domain.Item{a, b}}

	res, err := nonOverlapRule{}.Evaluate(context.Background(), view, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.HasBlocking() {
		t.Fatalf("expected flush-stacked items not to violate non-overlap, got %+v", res.Violations)
	}
}

func TestContainerBoundsRuleFlagsOutOfBoundsItem(t *testing.T) {
	c := domain.Container{ID: "c1", Width: 10, Depth: 10, Height: 10}
	outOfBounds := placedItem("a", "c1", 5, 5, 5, 10, 10, 10)
	view := fakeRuleView{containers: []domain.Container{c}, items: []domain.Item{outOfBounds}}

	res, err := containerBoundsRule{}.Evaluate(context.Background(), view, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.HasBlocking() {
		t.Fatal("expected a blocking violation for an out-of-bounds item")
	}
}

func TestContainerBoundsRuleAllowsInBoundsItem(t *testing.T) {
	c := domain.Container{ID: "c1", Width: 10, Depth: 10, Height: 10}
	inBounds := placedItem("a", "c1", 0, 0, 0, 10, 10, 10)
	view := fakeRuleView{containers: []domain.Container{c}, items: []domain.Item{inBounds}}

	res, err := containerBoundsRule{}.Evaluate(context.Background(), view, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.HasBlocking() {
		t.Fatalf("expected no violation, got %+v", res.Violations)
	}
}
