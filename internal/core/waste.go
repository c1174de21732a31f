package core

import (
	"sort"
	"time"

	"cargocore/pkg/domain"
)

// WasteClassification records why an item was swept into waste.
type WasteClassification struct {
	Item   domain.Item
	Reason string
}

// checkForWaste sweeps every non-waste item and flags it as waste if it is
// expired (expiryDate <= now) or depleted (usesRemaining <= 0). Items
// already marked waste are left untouched; this only reports newly-wasted
// items so callers can persist the flip.
func checkForWaste(items []domain.Item, now time.Time) []WasteClassification {
	var out []WasteClassification
	for _, it := range items {
		if it.IsWaste {
			continue
		}
		if it.ExpiryDate != nil && !it.ExpiryDate.After(now) {
			out = append(out, WasteClassification{Item: it, Reason: "expired"})
			continue
		}
		if it.Usage != nil && it.Usage.UsesRemaining <= 0 {
			out = append(out, WasteClassification{Item: it, Reason: "depleted"})
		}
	}
	return out
}

// WasteReturnPlan is the output of optimizeWasteReturn.
type WasteReturnPlan struct {
	Selected []domain.Item
	TotalMass float64
	Count    int
	Advisory string
}

// optimizeWasteReturn selects which waste items to send home. With no mass
// cap, every waste item is returned. With a cap, items are sorted by
// density (mass/volume) descending and accepted greedily while the
// cumulative mass stays within the cap. If no single item fits under the
// cap, the plan degrades to the single lightest waste item and carries an
// advisory note.
func optimizeWasteReturn(waste []domain.Item, maxMass *float64) WasteReturnPlan {
	if maxMass == nil {
		var total float64
		for _, it := range waste {
			total += it.Mass
		}
		return WasteReturnPlan{Selected: waste, TotalMass: total, Count: len(waste)}
	}

	massCap := *maxMass
	sorted := make([]domain.Item, len(waste))
	copy(sorted, waste)
	sort.SliceStable(sorted, func(i, j int) bool {
		return density(sorted[i]) > density(sorted[j])
	})

	var (
		selected  []domain.Item
		totalMass float64
	)
	for _, it := range sorted {
		if totalMass+it.Mass <= massCap {
			selected = append(selected, it)
			totalMass += it.Mass
		}
	}

	if len(selected) == 0 && len(sorted) > 0 {
		lightest := sorted[0]
		for _, it := range sorted[1:] {
			if it.Mass < lightest.Mass {
				lightest = it
			}
		}
		return WasteReturnPlan{
			Selected:  []domain.Item{lightest},
			TotalMass: lightest.Mass,
			Count:     1,
			Advisory:  "no combination fits the mass cap; returning the single lightest waste item",
		}
	}

	return WasteReturnPlan{Selected: selected, TotalMass: totalMass, Count: len(selected)}
}

func density(it domain.Item) float64 {
	v := itemVolume(it)
	if v == 0 {
		return 0
	}
	return it.Mass / v
}
