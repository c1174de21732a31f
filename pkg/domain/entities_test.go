package domain

import "testing"

func TestResultMergeAndHasBlocking(t *testing.T) {
	var r Result
	r.Merge(Result{Violations: []Violation{{Rule: "a", Severity: SeverityWarn}}})
	if r.HasBlocking() {
		t.Fatalf("warn-only result must not be blocking")
	}
	r.Merge(Result{Violations: []Violation{{Rule: "b", Severity: SeverityBlock}}})
	if !r.HasBlocking() {
		t.Fatalf("expected blocking violation after merge")
	}
	if len(r.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %d", len(r.Violations))
	}
}

func TestItemIsPlaced(t *testing.T) {
	it := Item{}
	if it.IsPlaced() {
		t.Fatalf("fresh item must be unplaced")
	}
	it.Placement = &Placement{ContainerID: "c1"}
	if !it.IsPlaced() {
		t.Fatalf("expected placed item")
	}
}

func TestContainerVolume(t *testing.T) {
	c := Container{Width: 2, Depth: 3, Height: 4}
	if got := c.Volume(); got != 24 {
		t.Fatalf("expected volume 24, got %v", got)
	}
}
