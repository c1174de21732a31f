// Package octree implements the occupancy index (C2): a per-container
// spatial index of placed items built on demand from the Store and never
// persisted.
package octree

import "cargocore/pkg/domain"

const (
	// MaxItems is the maximum number of entries a leaf holds before it
	// subdivides.
	MaxItems = 4
	// MaxDepth bounds how deep the tree may subdivide.
	MaxDepth = 8
)

// Entry pairs an item id with the AABB it occupies, so queries can
// deduplicate by id without re-deriving geometry from the item record.
type Entry struct {
	ItemID string
	Box    domain.AABB
}

// Tree is an octree over one container's occupied volume.
type Tree struct {
	root *node
}

type node struct {
	center   [3]float64
	halfSize float64
	depth    int
	children [8]*node
	entries  []Entry
}

func (n *node) isLeaf() bool {
	return n.children[0] == nil
}

func (n *node) box() domain.AABB {
	return domain.AABB{
		MinX: n.center[0] - n.halfSize, MaxX: n.center[0] + n.halfSize,
		MinY: n.center[1] - n.halfSize, MaxY: n.center[1] + n.halfSize,
		MinZ: n.center[2] - n.halfSize, MaxZ: n.center[2] + n.halfSize,
	}
}

// New builds an empty tree sized to cover the container. The root is
// centered at (W/2, D/2, H/2) with side max(W, D, H), so the tree box may
// extend beyond the container; queries still clip against
// [0..W]x[0..D]x[0..H] by construction of the query box itself.
func New(c domain.Container) *Tree {
	side := c.Width
	if c.Depth > side {
		side = c.Depth
	}
	if c.Height > side {
		side = c.Height
	}
	return &Tree{
		root: &node{
			center:   [3]float64{c.Width / 2, c.Depth / 2, c.Height / 2},
			halfSize: side / 2,
			depth:    0,
		},
	}
}

// BuildFromItems constructs a tree for the container and inserts every
// already-placed item belonging to it. Items without a placement, or
// placed in a different container, are ignored.
func BuildFromItems(c domain.Container, items []domain.Item) *Tree {
	t := New(c)
	for _, it := range items {
		if it.Placement == nil || it.Placement.ContainerID != c.ID {
			continue
		}
		box := domain.ItemAABB(it, it.Placement.X, it.Placement.Y, it.Placement.Z, it.Placement.Rotated)
		t.Insert(it.ID, box)
	}
	return t
}

// Insert adds an item's AABB to the tree. The item is stored in every leaf
// its AABB intersects; QueryBox deduplicates by item id.
func (t *Tree) Insert(itemID string, box domain.AABB) {
	t.root.insert(Entry{ItemID: itemID, Box: box})
}

func (n *node) insert(e Entry) {
	if n.isLeaf() {
		n.entries = append(n.entries, e)
		if len(n.entries) > MaxItems && n.depth < MaxDepth {
			n.subdivide()
		}
		return
	}
	n.insertIntoChildren(e)
}

// subdivide splits a leaf into 8 octants about its center and redistributes
// its existing entries into whichever octants their AABBs intersect.
func (n *node) subdivide() {
	childHalf := n.halfSize / 2
	idx := 0
	for dx := -1; dx <= 1; dx += 2 {
		for dy := -1; dy <= 1; dy += 2 {
			for dz := -1; dz <= 1; dz += 2 {
				n.children[idx] = &node{
					center: [3]float64{
						n.center[0] + float64(dx)*childHalf,
						n.center[1] + float64(dy)*childHalf,
						n.center[2] + float64(dz)*childHalf,
					},
					halfSize: childHalf,
					depth:    n.depth + 1,
				}
				idx++
			}
		}
	}
	entries := n.entries
	n.entries = nil
	for _, e := range entries {
		n.insertIntoChildren(e)
	}
}

func (n *node) insertIntoChildren(e Entry) {
	for _, child := range n.children {
		if child.box().Intersects(e.Box) {
			child.insert(e)
		}
	}
}

// QueryBox returns every item whose AABB overlaps the query box (strict
// interior overlap, so items may stack flush against one another),
// deduplicated by item id.
func (t *Tree) QueryBox(box domain.AABB) []Entry {
	seen := make(map[string]bool)
	var out []Entry
	t.root.queryBox(box, seen, &out)
	return out
}

func (n *node) queryBox(box domain.AABB, seen map[string]bool, out *[]Entry) {
	if !n.box().Intersects(box) {
		return
	}
	if n.isLeaf() {
		for _, e := range n.entries {
			if seen[e.ItemID] {
				continue
			}
			// Strict overlap, not mere face-touching, is what findEmptySpace
			// relies on to accept positions that stack flush against an
			// existing item.
			if e.Box.Overlaps(box) {
				seen[e.ItemID] = true
				*out = append(*out, e)
			}
		}
		return
	}
	for _, child := range n.children {
		child.queryBox(box, seen, out)
	}
}

// IsEmpty reports whether no entry intersects the query box. Used by the
// placement search (C3) to test candidate positions.
func (t *Tree) IsEmpty(box domain.AABB) bool {
	return len(t.QueryBox(box)) == 0
}
