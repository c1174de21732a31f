package core

import (
	"context"
	"fmt"

	"cargocore/pkg/domain"
)

// NewNonOverlapRule returns the commit-time rule enforcing that no two
// placed items in the same container share interior volume.
func NewNonOverlapRule() domain.Rule {
	return nonOverlapRule{}
}

type nonOverlapRule struct{}

func (nonOverlapRule) Name() string { return "non_overlap" }

func (nonOverlapRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	byContainer := make(map[string][]domain.Item)
	for _, it := range view.ListItems(domain.ListFilter{NonNullContainer: true}) {
		byContainer[it.Placement.ContainerID] = append(byContainer[it.Placement.ContainerID], it)
	}

	var res domain.Result
	for containerID, items := range byContainer {
		for i := 0; i < len(items); i++ {
			a := items[i]
			aBox := domain.ItemAABB(a, a.Placement.X, a.Placement.Y, a.Placement.Z, a.Placement.Rotated)
			for j := i + 1; j < len(items); j++ {
				b := items[j]
				bBox := domain.ItemAABB(b, b.Placement.X, b.Placement.Y, b.Placement.Z, b.Placement.Rotated)
				if aBox.Overlaps(bBox) {
					res.Violations = append(res.Violations, domain.Violation{
						Rule:     "non_overlap",
						Severity: domain.SeverityBlock,
						Message:  fmt.Sprintf("item %s overlaps item %s in container %s", a.ID, b.ID, containerID),
						Entity:   domain.EntityItem,
						EntityID: a.ID,
					})
				}
			}
		}
	}
	return res, nil
}

// NewContainerBoundsRule returns the commit-time rule enforcing that a
// placed item's footprint lies fully within its container's bounds.
func NewContainerBoundsRule() domain.Rule {
	return containerBoundsRule{}
}

type containerBoundsRule struct{}

func (containerBoundsRule) Name() string { return "container_bounds" }

func (containerBoundsRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	var res domain.Result
	for _, it := range view.ListItems(domain.ListFilter{NonNullContainer: true}) {
		container, ok := view.FindContainer(it.Placement.ContainerID)
		if !ok {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "container_bounds",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("item %s placed in unknown container %s", it.ID, it.Placement.ContainerID),
				Entity:   domain.EntityItem,
				EntityID: it.ID,
			})
			continue
		}
		w, d, h := it.Footprint(it.Placement.Rotated)
		if !domain.FitsContainer(container, it.Placement.X, it.Placement.Y, it.Placement.Z, w, d, h) {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "container_bounds",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("item %s at (%.1f,%.1f,%.1f) exceeds bounds of container %s", it.ID, it.Placement.X, it.Placement.Y, it.Placement.Z, container.ID),
				Entity:   domain.EntityItem,
				EntityID: it.ID,
			})
		}
	}
	return res, nil
}

// NewDefaultRulesEngine builds the engine with both commit-time rules
// registered, matching the store's default configuration.
func NewDefaultRulesEngine() *domain.RulesEngine {
	engine := domain.NewRulesEngine()
	engine.Register(NewNonOverlapRule())
	engine.Register(NewContainerBoundsRule())
	return engine
}
