package core

import "cargocore/pkg/domain"

// RetrievalInfo reports how many items block the straight path from a
// placed item to its container's open face, and which items those are.
type RetrievalInfo struct {
	Steps    int
	Blockers []domain.Item
}

// getRetrievalSteps computes the blocking set for item against the other
// items placed in the same container. The path to the door is the column
// [item.x, item.x+w'] x [0, item.y] x [item.z, item.z+h]; any other item
// whose AABB overlaps that column is a blocker.
func getRetrievalSteps(item domain.Item, others []domain.Item) RetrievalInfo {
	if item.Placement == nil {
		return RetrievalInfo{}
	}
	w, _, h := item.Footprint(item.Placement.Rotated)
	path := domain.NewAABB(item.Placement.X, 0, item.Placement.Z, w, item.Placement.Y, h)

	var blockers []domain.Item
	for _, other := range others {
		if other.ID == item.ID || other.Placement == nil {
			continue
		}
		if other.Placement.ContainerID != item.Placement.ContainerID {
			continue
		}
		ow, od, oh := other.Footprint(other.Placement.Rotated)
		otherBox := domain.NewAABB(other.Placement.X, other.Placement.Y, other.Placement.Z, ow, od, oh)
		if otherBox.Overlaps(path) {
			blockers = append(blockers, other)
		}
	}
	return RetrievalInfo{Steps: len(blockers), Blockers: blockers}
}
