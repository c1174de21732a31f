package domain

import "testing"

func TestAABBOverlapsStrictInterior(t *testing.T) {
	a := NewAABB(0, 0, 0, 10, 10, 10)
	touching := NewAABB(10, 0, 0, 10, 10, 10)
	if a.Overlaps(touching) {
		t.Fatalf("boxes sharing only a face must not overlap")
	}
	overlapping := NewAABB(5, 0, 0, 10, 10, 10)
	if !a.Overlaps(overlapping) {
		t.Fatalf("expected overlap for boxes sharing interior volume")
	}
}

func TestAABBIntersectsIncludesTouchingFaces(t *testing.T) {
	a := NewAABB(0, 0, 0, 10, 10, 10)
	touching := NewAABB(10, 0, 0, 10, 10, 10)
	if !a.Intersects(touching) {
		t.Fatalf("Intersects should include touching faces")
	}
}

func TestFitsContainer(t *testing.T) {
	c := Container{Width: 100, Depth: 100, Height: 100}
	if !FitsContainer(c, 0, 0, 0, 10, 10, 10) {
		t.Fatalf("expected fit at origin")
	}
	if FitsContainer(c, 95, 0, 0, 10, 10, 10) {
		t.Fatalf("expected no fit past width bound")
	}
	if FitsContainer(c, -1, 0, 0, 10, 10, 10) {
		t.Fatalf("expected no fit for negative coordinate")
	}
}

func TestItemFootprintRotation(t *testing.T) {
	it := Item{Width: 5, Depth: 10, Height: 3}
	w, d, h := it.Footprint(false)
	if w != 5 || d != 10 || h != 3 {
		t.Fatalf("unrotated footprint mismatch: %v %v %v", w, d, h)
	}
	w, d, h = it.Footprint(true)
	if w != 10 || d != 5 || h != 3 {
		t.Fatalf("rotated footprint mismatch: %v %v %v", w, d, h)
	}
}
