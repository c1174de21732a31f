package core

import (
	"strings"
	"time"

	"cargocore/pkg/domain"
)

// SelectionResult is the outcome of findItemToRetrieve: the chosen item plus
// the retrieval info that justified the pick.
type SelectionResult struct {
	Item      domain.Item
	Retrieval RetrievalInfo
}

// findItemToRetrieve scores every placed, non-waste item whose name contains
// the query substring (case-insensitive) and returns the item with the
// highest blended score. Ties are broken by first-seen order.
func findItemToRetrieve(nameQuery string, allItems []domain.Item, now time.Time, weights RetrievalWeights) (SelectionResult, bool) {
	query := strings.ToLower(nameQuery)

	var (
		best    SelectionResult
		bestVal = -1.0
		found   bool
	)

	for _, candidate := range allItems {
		if candidate.IsWaste || candidate.Placement == nil {
			continue
		}
		if !strings.Contains(strings.ToLower(candidate.Name), query) {
			continue
		}

		info := getRetrievalSteps(candidate, allItems)
		expiryScore := expiryScoreFor(candidate, now)
		usageScore := usageScoreFor(candidate)
		accessScore := 100 / float64(info.Steps+1)

		total := weights.Priority*float64(candidate.Priority) +
			weights.Expiry*expiryScore +
			weights.Usage*usageScore +
			weights.Access*accessScore

		if !found || total > bestVal {
			bestVal = total
			best = SelectionResult{Item: candidate, Retrieval: info}
			found = true
		}
	}
	return best, found
}

// expiryScoreFor returns 100 for an already-expired item, a decaying score
// as expiry approaches for items with a known expiry, or 0 for items with
// no expiry date.
func expiryScoreFor(item domain.Item, now time.Time) float64 {
	if item.ExpiryDate == nil {
		return 0
	}
	daysUntil := item.ExpiryDate.Sub(now).Hours() / 24
	if daysUntil <= 0 {
		return 100
	}
	score := 100 - daysUntil
	if score < 0 {
		return 0
	}
	return score
}

// usageScoreFor returns how depleted a usage-limited item's budget is, on a
// 0-100 scale, or 0 for items with no usage budget.
func usageScoreFor(item domain.Item) float64 {
	if item.Usage == nil || item.Usage.UsageLimit == 0 {
		return 0
	}
	return 100 * (1 - float64(item.Usage.UsesRemaining)/float64(item.Usage.UsageLimit))
}
