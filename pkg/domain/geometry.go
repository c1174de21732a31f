package domain

// AABB is an axis-aligned bounding box in container-local coordinates (C1).
type AABB struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// NewAABB builds the box spanning [x, x+w] x [y, y+d] x [z, z+h].
func NewAABB(x, y, z, w, d, h float64) AABB {
	return AABB{
		MinX: x, MinY: y, MinZ: z,
		MaxX: x + w, MaxY: y + d, MaxZ: z + h,
	}
}

// Overlaps reports whether two boxes overlap on all three axes using a
// strict interior test — boxes that merely touch faces do not overlap, so
// items may be stacked flush against one another.
func (a AABB) Overlaps(b AABB) bool {
	return a.MinX < b.MaxX && b.MinX < a.MaxX &&
		a.MinY < b.MaxY && b.MinY < a.MaxY &&
		a.MinZ < b.MaxZ && b.MinZ < a.MaxZ
}

// Intersects is like Overlaps but treats touching faces as intersecting.
// Used by the occupancy index when deciding which octants a box belongs
// in: an item sitting exactly on a subdivision plane must still be
// inserted into the octants whose faces it touches.
func (a AABB) Intersects(b AABB) bool {
	return a.MinX <= b.MaxX && b.MinX <= a.MaxX &&
		a.MinY <= b.MaxY && b.MinY <= a.MaxY &&
		a.MinZ <= b.MaxZ && b.MinZ <= a.MaxZ
}

// Contains reports whether box a fully contains box b.
func (a AABB) Contains(b AABB) bool {
	return a.MinX <= b.MinX && a.MaxX >= b.MaxX &&
		a.MinY <= b.MinY && a.MaxY >= b.MaxY &&
		a.MinZ <= b.MinZ && a.MaxZ >= b.MaxZ
}

// Volume returns the box's volume.
func (a AABB) Volume() float64 {
	return (a.MaxX - a.MinX) * (a.MaxY - a.MinY) * (a.MaxZ - a.MinZ)
}

// ItemAABB computes the AABB an item occupies at (x, y, z) given its
// footprint rotation.
func ItemAABB(item Item, x, y, z float64, rotated bool) AABB {
	w, d, h := item.Footprint(rotated)
	return NewAABB(x, y, z, w, d, h)
}

// FitsContainer reports whether the footprint at (x,y,z) lies fully within
// the container's bounds [0..W]x[0..D]x[0..H], with no negative coordinates.
func FitsContainer(c Container, x, y, z, w, d, h float64) bool {
	if x < 0 || y < 0 || z < 0 {
		return false
	}
	return x+w <= c.Width && y+d <= c.Depth && z+h <= c.Height
}
