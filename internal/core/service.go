package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cargocore/internal/octree"
	"cargocore/pkg/domain"
)

// Service exposes the command surface an outer dispatcher drives: creation,
// placement, retrieval, rearrangement, and waste handling, all backed by a
// transactional Store.
type Service struct {
	store    domain.PersistentStore
	cfg      Config
	metrics  *Metrics
	archiver *ManifestArchiver
	nowFn    func() time.Time
}

// NewService constructs a service backed by store using cfg's scoring and
// search tunables. metrics and archiver are optional; pass nil to skip
// metrics recording or manifest archiving respectively.
func NewService(store domain.PersistentStore, cfg Config, metrics *Metrics, archiver *ManifestArchiver) *Service {
	return &Service{
		store:    store,
		cfg:      cfg,
		metrics:  metrics,
		archiver: archiver,
		nowFn:    func() time.Time { return time.Now().UTC() },
	}
}

// Store returns the underlying persistence layer.
func (s *Service) Store() domain.PersistentStore {
	return s.store
}

// SetNowFunc overrides the service's time source, used by advanceTime
// simulation and tests.
func (s *Service) SetNowFunc(fn func() time.Time) {
	s.nowFn = fn
}

func (s *Service) observe(op string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveOperation(op, time.Since(start), err)
}

// observeOutcome records an explicit outcome (e.g. "no_fit") in place of the
// err-derived "ok"/"error" split, for planners that recover locally from
// NoFit rather than returning an error.
func (s *Service) observeOutcome(op string, start time.Time, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveOutcome(op, outcome, time.Since(start))
}

// CreateZone persists a new zone.
func (s *Service) CreateZone(ctx context.Context, zone domain.Zone) (domain.Zone, error) {
	var created domain.Zone
	_, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateZone(zone)
		return err
	})
	return created, unwrapRuleViolation(err)
}

// CreateContainer persists a new container.
func (s *Service) CreateContainer(ctx context.Context, container domain.Container) (domain.Container, error) {
	var created domain.Container
	_, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		if _, ok := tx.FindZone(container.ZoneID); !ok {
			return domain.ErrNotFound{Entity: domain.EntityZone, ID: container.ZoneID}
		}
		var err error
		created, err = tx.CreateContainer(container)
		return err
	})
	return created, unwrapRuleViolation(err)
}

// addItem validates itemSpec and persists it unplaced.
func (s *Service) addItem(ctx context.Context, itemSpec domain.Item) (domain.Item, error) {
	start := s.nowFn()
	if itemSpec.Name == "" {
		return domain.Item{}, domain.ErrInvalidInput{Reason: "item name is required"}
	}
	if itemSpec.Priority < 1 || itemSpec.Priority > 100 {
		return domain.Item{}, domain.ErrInvalidInput{Reason: "priority must be in [1,100]"}
	}
	if itemSpec.Usage != nil && itemSpec.Usage.UsesRemaining > itemSpec.Usage.UsageLimit {
		return domain.Item{}, domain.ErrInvalidInput{Reason: "usesRemaining exceeds usageLimit"}
	}
	itemSpec.Placement = nil

	var created domain.Item
	_, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateItem(itemSpec)
		if err != nil {
			return err
		}
		tx.AppendLog(domain.LogEntry{Action: domain.LogActionAdded, ItemID: created.ID})
		return nil
	})
	s.observe("addItem", start, err)
	return created, unwrapRuleViolation(err)
}

// AddItem is the exported entry point for addItem.
func (s *Service) AddItem(ctx context.Context, itemSpec domain.Item) (domain.Item, error) {
	return s.addItem(ctx, itemSpec)
}

// placeItem validates the requested position against container bounds and
// existing occupancy, then commits the placement.
func (s *Service) placeItem(ctx context.Context, itemID, containerID string, x, y, z float64, rotated bool, actor string) (domain.Item, error) {
	start := s.nowFn()
	var updated domain.Item
	_, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		item, ok := tx.FindItem(itemID)
		if !ok {
			return domain.ErrNotFound{Entity: domain.EntityItem, ID: itemID}
		}
		container, ok := tx.FindContainer(containerID)
		if !ok {
			return domain.ErrNotFound{Entity: domain.EntityContainer, ID: containerID}
		}
		w, d, h := item.Footprint(rotated)
		if !domain.FitsContainer(container, x, y, z, w, d, h) {
			return domain.ErrInvalidPosition{Reason: "position is outside container bounds"}
		}

		wasPlaced := item.Placement != nil
		var err error
		updated, err = tx.UpdateItem(itemID, func(it *domain.Item) error {
			it.Placement = &domain.Placement{ContainerID: containerID, X: x, Y: y, Z: z, Rotated: rotated}
			return nil
		})
		if err != nil {
			return err
		}

		action := domain.LogActionPlaced
		if wasPlaced {
			action = domain.LogActionMoved
		}
		tx.AppendLog(domain.LogEntry{Action: action, ItemID: itemID, Actor: actor})
		return nil
	})
	s.observe("placeItem", start, err)
	return updated, unwrapRuleViolation(err)
}

// PlaceItem is the exported entry point for placeItem.
func (s *Service) PlaceItem(ctx context.Context, itemID, containerID string, x, y, z float64, rotated bool, actor string) (domain.Item, error) {
	return s.placeItem(ctx, itemID, containerID, x, y, z, rotated, actor)
}

// retrieveItem removes an item's placement, optionally decrementing its
// usage budget. A budget that reaches zero eagerly flips the item to waste
// within the same transaction.
func (s *Service) retrieveItem(ctx context.Context, itemID, actor string, use bool) (domain.Item, error) {
	start := s.nowFn()
	var updated domain.Item
	_, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		item, ok := tx.FindItem(itemID)
		if !ok {
			return domain.ErrNotFound{Entity: domain.EntityItem, ID: itemID}
		}
		if item.Placement == nil {
			return domain.ErrDomainViolation{Reason: "item is not currently placed"}
		}

		var err error
		updated, err = tx.UpdateItem(itemID, func(it *domain.Item) error {
			it.Placement = nil
			if use && it.Usage != nil {
				it.Usage.UsesRemaining--
				if it.Usage.UsesRemaining <= 0 {
					it.IsWaste = true
					it.WasteReason = "depleted"
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		action := domain.LogActionRetrieved
		if use {
			action = domain.LogActionUsed
		}
		tx.AppendLog(domain.LogEntry{Action: action, ItemID: itemID, Actor: actor})
		if updated.IsWaste {
			tx.AppendLog(domain.LogEntry{Action: domain.LogActionWaste, ItemID: itemID, Detail: updated.WasteReason})
		}
		return nil
	})
	s.observe("retrieveItem", start, err)
	return updated, unwrapRuleViolation(err)
}

// RetrieveItem is the exported entry point for retrieveItem.
func (s *Service) RetrieveItem(ctx context.Context, itemID, actor string, use bool) (domain.Item, error) {
	return s.retrieveItem(ctx, itemID, actor, use)
}

// suggestPlacement scores every container for item and returns the best
// candidate, without committing it.
func (s *Service) suggestPlacement(ctx context.Context, itemID string) (Placement, bool, error) {
	start := s.nowFn()
	item, containers, placed, err := s.loadPlanningState(ctx, itemID)
	if err != nil {
		s.observe("suggestPlacement", start, err)
		return Placement{}, false, err
	}
	trees := buildTrees(containers, placed)
	placement, ok := findOptimalPlacement(item, containers, trees, s.cfg)
	if ok {
		s.observe("suggestPlacement", start, nil)
	} else {
		s.observeOutcome("suggestPlacement", start, "no_fit")
	}
	return placement, ok, nil
}

// SuggestPlacement is the exported entry point for suggestPlacement.
func (s *Service) SuggestPlacement(ctx context.Context, itemID string) (Placement, bool, error) {
	return s.suggestPlacement(ctx, itemID)
}

func (s *Service) loadPlanningState(ctx context.Context, itemID string) (domain.Item, []domain.Container, []domain.Item, error) {
	var (
		item       domain.Item
		containers []domain.Container
		placed     []domain.Item
	)
	err := s.store.View(ctx, func(view domain.TransactionView) error {
		found, ok := view.FindItem(itemID)
		if !ok {
			return domain.ErrNotFound{Entity: domain.EntityItem, ID: itemID}
		}
		item = found
		containers = view.ListContainers()
		placed = view.ListItems(domain.ListFilter{NonNullContainer: true})
		return nil
	})
	return item, containers, placed, err
}

// suggestBatchPlacement places every itemID greedily, priority-descending,
// without backtracking. No changes are committed to the Store; callers must
// apply successful placements via placeItem.
func (s *Service) suggestBatchPlacement(ctx context.Context, itemIDs []string) ([]domain.Item, error) {
	start := s.nowFn()
	var (
		items      []domain.Item
		containers []domain.Container
		placed     []domain.Item
	)
	err := s.store.View(ctx, func(view domain.TransactionView) error {
		for _, id := range itemIDs {
			it, ok := view.FindItem(id)
			if !ok {
				return domain.ErrNotFound{Entity: domain.EntityItem, ID: id}
			}
			items = append(items, it)
		}
		containers = view.ListContainers()
		placed = view.ListItems(domain.ListFilter{NonNullContainer: true})
		return nil
	})
	if err != nil {
		s.observe("suggestBatchPlacement", start, err)
		return nil, err
	}
	result := findOptimalPlacementsForBatch(items, containers, placed, s.cfg)
	if len(result) < len(itemIDs) {
		s.observeOutcome("suggestBatchPlacement", start, "no_fit")
	} else {
		s.observe("suggestBatchPlacement", start, nil)
	}
	return result, nil
}

// SuggestBatchPlacement is the exported entry point for suggestBatchPlacement.
func (s *Service) SuggestBatchPlacement(ctx context.Context, itemIDs []string) ([]domain.Item, error) {
	return s.suggestBatchPlacement(ctx, itemIDs)
}

// suggestRetrieval finds the best-matching placed item by name and its
// retrieval info.
func (s *Service) suggestRetrieval(ctx context.Context, name string) (SelectionResult, bool, error) {
	start := s.nowFn()
	var allItems []domain.Item
	err := s.store.View(ctx, func(view domain.TransactionView) error {
		allItems = view.ListItems(domain.ListFilter{})
		return nil
	})
	if err != nil {
		s.observe("suggestRetrieval", start, err)
		return SelectionResult{}, false, err
	}
	result, ok := findItemToRetrieve(name, allItems, s.nowFn(), s.cfg.Scoring.Retrieval)
	if ok {
		s.observe("suggestRetrieval", start, nil)
	} else {
		s.observeOutcome("suggestRetrieval", start, "no_fit")
	}
	return result, ok, nil
}

// SuggestRetrieval is the exported entry point for suggestRetrieval.
func (s *Service) SuggestRetrieval(ctx context.Context, name string) (SelectionResult, bool, error) {
	return s.suggestRetrieval(ctx, name)
}

// getRetrievalStepsFor reports the blocking set for a single placed item.
func (s *Service) getRetrievalStepsFor(ctx context.Context, itemID string) (RetrievalInfo, error) {
	start := s.nowFn()
	var (
		item     domain.Item
		allItems []domain.Item
	)
	err := s.store.View(ctx, func(view domain.TransactionView) error {
		found, ok := view.FindItem(itemID)
		if !ok {
			return domain.ErrNotFound{Entity: domain.EntityItem, ID: itemID}
		}
		item = found
		allItems = view.ListItems(domain.ListFilter{NonNullContainer: true})
		return nil
	})
	if err != nil {
		s.observe("getRetrievalSteps", start, err)
		return RetrievalInfo{}, err
	}
	info := getRetrievalSteps(item, allItems)
	s.observe("getRetrievalSteps", start, nil)
	return info, nil
}

// GetRetrievalSteps is the exported entry point for getRetrievalSteps.
func (s *Service) GetRetrievalSteps(ctx context.Context, itemID string) (RetrievalInfo, error) {
	return s.getRetrievalStepsFor(ctx, itemID)
}

// suggestRearrangement plans how to make room for newItemIDs in container,
// evicting incumbents if the fill threshold would be exceeded.
func (s *Service) suggestRearrangement(ctx context.Context, containerID string, newItemIDs []string) (RearrangementPlan, error) {
	start := s.nowFn()
	var (
		container     domain.Container
		incumbents    []domain.Item
		newItems      []domain.Item
		allContainers []domain.Container
		allPlaced     []domain.Item
	)
	err := s.store.View(ctx, func(view domain.TransactionView) error {
		found, ok := view.FindContainer(containerID)
		if !ok {
			return domain.ErrNotFound{Entity: domain.EntityContainer, ID: containerID}
		}
		container = found
		cID := containerID
		incumbents = view.ListItems(domain.ListFilter{ContainerID: &cID})
		for _, id := range newItemIDs {
			it, ok := view.FindItem(id)
			if !ok {
				return domain.ErrNotFound{Entity: domain.EntityItem, ID: id}
			}
			newItems = append(newItems, it)
		}
		allContainers = view.ListContainers()
		allPlaced = view.ListItems(domain.ListFilter{NonNullContainer: true})
		return nil
	})
	if err != nil {
		s.observe("suggestRearrangement", start, err)
		return RearrangementPlan{}, err
	}
	plan := suggestRearrangement(container, incumbents, newItems, allContainers, allPlaced, s.cfg)
	if len(plan.Unmatched) > 0 {
		s.observeOutcome("suggestRearrangement", start, "no_fit")
	} else {
		s.observe("suggestRearrangement", start, nil)
	}
	return plan, nil
}

// SuggestRearrangement is the exported entry point for suggestRearrangement.
func (s *Service) SuggestRearrangement(ctx context.Context, containerID string, newItemIDs []string) (RearrangementPlan, error) {
	return s.suggestRearrangement(ctx, containerID, newItemIDs)
}

// checkForWaste sweeps all non-waste items, flips newly-wasted ones, and
// returns the list of items that changed state.
func (s *Service) checkForWaste(ctx context.Context) ([]domain.Item, error) {
	start := s.nowFn()
	var newlyWasted []domain.Item
	_, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		view := tx.Snapshot()
		items := view.ListItems(domain.ListFilter{})
		classified := checkForWaste(items, s.nowFn())
		for _, c := range classified {
			updated, err := tx.UpdateItem(c.Item.ID, func(it *domain.Item) error {
				it.IsWaste = true
				it.WasteReason = c.Reason
				return nil
			})
			if err != nil {
				return err
			}
			tx.AppendLog(domain.LogEntry{Action: domain.LogActionWaste, ItemID: updated.ID, Detail: c.Reason})
			newlyWasted = append(newlyWasted, updated)
		}
		return nil
	})
	s.observe("checkForWaste", start, err)
	return newlyWasted, unwrapRuleViolation(err)
}

// CheckForWaste is the exported entry point for checkForWaste.
func (s *Service) CheckForWaste(ctx context.Context) ([]domain.Item, error) {
	return s.checkForWaste(ctx)
}

// markWaste manually condemns an item.
func (s *Service) markWaste(ctx context.Context, itemID, reason string) (domain.Item, error) {
	start := s.nowFn()
	var updated domain.Item
	_, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateItem(itemID, func(it *domain.Item) error {
			it.IsWaste = true
			if reason == "" {
				reason = "manual"
			}
			it.WasteReason = reason
			return nil
		})
		if err != nil {
			return err
		}
		tx.AppendLog(domain.LogEntry{Action: domain.LogActionWaste, ItemID: itemID, Detail: reason})
		return nil
	})
	s.observe("markWaste", start, err)
	return updated, unwrapRuleViolation(err)
}

// MarkWaste is the exported entry point for markWaste.
func (s *Service) MarkWaste(ctx context.Context, itemID, reason string) (domain.Item, error) {
	return s.markWaste(ctx, itemID, reason)
}

// prepareWasteReturn selects which waste items should be sent home under an
// optional mass cap.
func (s *Service) prepareWasteReturn(ctx context.Context, maxMass *float64) (WasteReturnPlan, error) {
	start := s.nowFn()
	var waste []domain.Item
	wasteFlag := true
	err := s.store.View(ctx, func(view domain.TransactionView) error {
		waste = view.ListItems(domain.ListFilter{IsWaste: &wasteFlag})
		return nil
	})
	if err != nil {
		s.observe("prepareWasteReturn", start, err)
		return WasteReturnPlan{}, err
	}
	plan := optimizeWasteReturn(waste, maxMass)
	if plan.Advisory != "" {
		s.observeOutcome("prepareWasteReturn", start, "no_fit")
	} else {
		s.observe("prepareWasteReturn", start, nil)
	}
	return plan, nil
}

// PrepareWasteReturn is the exported entry point for prepareWasteReturn.
func (s *Service) PrepareWasteReturn(ctx context.Context, maxMass *float64) (WasteReturnPlan, error) {
	return s.prepareWasteReturn(ctx, maxMass)
}

// moveWasteToContainer relocates a waste item into a different (return)
// container without running it through the placement scorer; waste items
// are staged, not optimally packed, but they still need a free spot: a
// return container accumulates every waste item ahead of undock, so the
// destination is found the same way suggestPlacement finds one, via
// findEmptySpace over the container's current occupancy.
func (s *Service) moveWasteToContainer(ctx context.Context, itemID, containerID string) (domain.Item, error) {
	start := s.nowFn()
	var updated domain.Item
	_, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		item, ok := tx.FindItem(itemID)
		if !ok {
			return domain.ErrNotFound{Entity: domain.EntityItem, ID: itemID}
		}
		if !item.IsWaste {
			return domain.ErrDomainViolation{Reason: "only waste items may be moved to a return container"}
		}
		container, ok := tx.FindContainer(containerID)
		if !ok {
			return domain.ErrNotFound{Entity: domain.EntityContainer, ID: containerID}
		}
		occupants := tx.Snapshot().ListItems(domain.ListFilter{ContainerID: &containerID})
		tree := octree.BuildFromItems(container, occupants)
		cand, ok := findEmptySpace(tree, container, item.Width, item.Depth, item.Height, true, s.cfg.Search.GridStep)
		if !ok {
			return domain.ErrDomainViolation{Reason: "no free space for waste item in return container"}
		}
		var err error
		updated, err = tx.UpdateItem(itemID, func(it *domain.Item) error {
			it.Placement = &domain.Placement{ContainerID: containerID, X: cand.X, Y: cand.Y, Z: cand.Z, Rotated: cand.Rotated}
			return nil
		})
		if err != nil {
			return err
		}
		tx.AppendLog(domain.LogEntry{Action: domain.LogActionMoved, ItemID: itemID, Detail: "staged for return"})
		return nil
	})
	s.observe("moveWasteToContainer", start, err)
	return updated, unwrapRuleViolation(err)
}

// MoveWasteToContainer is the exported entry point for moveWasteToContainer.
func (s *Service) MoveWasteToContainer(ctx context.Context, itemID, containerID string) (domain.Item, error) {
	return s.moveWasteToContainer(ctx, itemID, containerID)
}

// UndockManifest summarizes the waste discarded when a container undocks.
type UndockManifest struct {
	ContainerID string
	Items       []domain.Item
	TotalMass   float64
	Timestamp   time.Time
}

// processUndock marks every waste item currently staged in container as
// returned and clears its placement, leaving the item record intact for
// audit. If an archiver is configured, the manifest is additionally
// persisted to blob storage; a failure to archive does not fail the undock.
func (s *Service) processUndock(ctx context.Context, containerID string) (UndockManifest, error) {
	start := s.nowFn()
	manifest := UndockManifest{ContainerID: containerID, Timestamp: s.nowFn()}
	_, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		view := tx.Snapshot()
		cID := containerID
		wasteFlag := true
		candidates := view.ListItems(domain.ListFilter{ContainerID: &cID, IsWaste: &wasteFlag})
		for _, it := range candidates {
			updated, err := tx.UpdateItem(it.ID, func(item *domain.Item) error {
				item.Returned = true
				item.Placement = nil
				return nil
			})
			if err != nil {
				return err
			}
			tx.AppendLog(domain.LogEntry{Action: domain.LogActionReturned, ItemID: it.ID})
			manifest.Items = append(manifest.Items, updated)
			manifest.TotalMass += updated.Mass
		}
		return nil
	})
	if err != nil {
		s.observe("processUndock", start, err)
		return UndockManifest{}, unwrapRuleViolation(err)
	}

	if s.archiver != nil {
		if archiveErr := s.archiver.ArchiveManifest(ctx, manifest); archiveErr != nil && s.metrics != nil {
			s.metrics.RecordArchiveFailure()
		}
	}
	s.observe("processUndock", start, nil)
	return manifest, nil
}

// ProcessUndock is the exported entry point for processUndock.
func (s *Service) ProcessUndock(ctx context.Context, containerID string) (UndockManifest, error) {
	return s.processUndock(ctx, containerID)
}

// AdvanceTimeUsage pairs an item id with a use count to apply during
// advanceTime.
type AdvanceTimeUsage struct {
	ItemID string
	Uses   int
}

// AdvanceTimeSummary reports the effects of simulating the passage of time.
type AdvanceTimeSummary struct {
	NewlyWasted []domain.Item
	UsesApplied int
}

// advanceTime moves the service's clock forward by days, decrements usage
// budgets for the supplied items, and sweeps for newly-expired or depleted
// waste.
func (s *Service) advanceTime(ctx context.Context, days int, uses []AdvanceTimeUsage) (AdvanceTimeSummary, error) {
	start := s.nowFn()
	if days < 0 {
		err := domain.ErrInvalidInput{Reason: "days must be non-negative"}
		s.observe("advanceTime", start, err)
		return AdvanceTimeSummary{}, err
	}
	newNow := s.nowFn().AddDate(0, 0, days)

	var applied int
	_, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		for _, usage := range uses {
			for i := 0; i < usage.Uses; i++ {
				_, err := tx.UpdateItem(usage.ItemID, func(it *domain.Item) error {
					if it.Usage == nil {
						return domain.ErrDomainViolation{Reason: "item has no usage budget"}
					}
					it.Usage.UsesRemaining--
					if it.Usage.UsesRemaining <= 0 {
						it.IsWaste = true
						it.WasteReason = "depleted"
					}
					return nil
				})
				if err != nil {
					return err
				}
				applied++
			}
			tx.AppendLog(domain.LogEntry{Action: domain.LogActionUsed, ItemID: usage.ItemID})
		}
		return nil
	})
	if err != nil {
		s.observe("advanceTime", start, unwrapRuleViolation(err))
		return AdvanceTimeSummary{}, unwrapRuleViolation(err)
	}

	s.nowFn = func() time.Time { return newNow }

	newlyWasted, err := s.checkForWaste(ctx)
	if err != nil {
		s.observe("advanceTime", start, err)
		return AdvanceTimeSummary{}, err
	}
	s.observe("advanceTime", start, nil)
	return AdvanceTimeSummary{NewlyWasted: newlyWasted, UsesApplied: applied}, nil
}

// AdvanceTime is the exported entry point for advanceTime.
func (s *Service) AdvanceTime(ctx context.Context, days int, uses []AdvanceTimeUsage) (AdvanceTimeSummary, error) {
	return s.advanceTime(ctx, days, uses)
}

// ExpiryForecast reports an item expected to expire within the forecast
// window.
type ExpiryForecast struct {
	Item      domain.Item
	DaysUntil int
}

// forecastExpirations lists non-waste items with an expiry date falling
// within the next `days` days.
func (s *Service) forecastExpirations(ctx context.Context, days int) ([]ExpiryForecast, error) {
	start := s.nowFn()
	var items []domain.Item
	err := s.store.View(ctx, func(view domain.TransactionView) error {
		items = view.ListItems(domain.ListFilter{})
		return nil
	})
	if err != nil {
		s.observe("forecastExpirations", start, err)
		return nil, err
	}

	now := s.nowFn()
	horizon := now.AddDate(0, 0, days)
	var out []ExpiryForecast
	for _, it := range items {
		if it.IsWaste || it.ExpiryDate == nil {
			continue
		}
		if it.ExpiryDate.After(horizon) {
			continue
		}
		daysUntil := int(it.ExpiryDate.Sub(now).Hours() / 24)
		out = append(out, ExpiryForecast{Item: it, DaysUntil: daysUntil})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DaysUntil < out[j].DaysUntil })
	s.observe("forecastExpirations", start, nil)
	return out, nil
}

// ForecastExpirations is the exported entry point for forecastExpirations.
func (s *Service) ForecastExpirations(ctx context.Context, days int) ([]ExpiryForecast, error) {
	return s.forecastExpirations(ctx, days)
}

// UsageForecast reports an item expected to deplete its usage budget within
// the forecast window, under the placeholder constant usage rate.
type UsageForecast struct {
	Item          domain.Item
	DaysUntilUsedUp float64
}

// forecastUsageDepletion projects, for every usage-limited item, how many
// days remain before usesRemaining reaches zero at a fixed rate of
// cfg.Search.ForecastUsesPerWeek uses/week, reporting items that will
// deplete within `days`.
func (s *Service) forecastUsageDepletion(ctx context.Context, days int) ([]UsageForecast, error) {
	start := s.nowFn()
	var items []domain.Item
	err := s.store.View(ctx, func(view domain.TransactionView) error {
		items = view.ListItems(domain.ListFilter{})
		return nil
	})
	if err != nil {
		s.observe("forecastUsageDepletion", start, err)
		return nil, err
	}

	ratePerDay := s.cfg.Search.ForecastUsesPerWeek / 7
	var out []UsageForecast
	for _, it := range items {
		if it.IsWaste || it.Usage == nil || it.Usage.UsesRemaining <= 0 || ratePerDay <= 0 {
			continue
		}
		daysUntilUsedUp := float64(it.Usage.UsesRemaining) / ratePerDay
		if daysUntilUsedUp <= float64(days) {
			out = append(out, UsageForecast{Item: it, DaysUntilUsedUp: daysUntilUsedUp})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DaysUntilUsedUp < out[j].DaysUntilUsedUp })
	s.observe("forecastUsageDepletion", start, nil)
	return out, nil
}

// ForecastUsageDepletion is the exported entry point for forecastUsageDepletion.
func (s *Service) ForecastUsageDepletion(ctx context.Context, days int) ([]UsageForecast, error) {
	return s.forecastUsageDepletion(ctx, days)
}

// unwrapRuleViolation rewrites a domain.RuleViolationError into a message
// carrying its first blocking violation, matching the human-readable error
// shape the command surface promises.
func unwrapRuleViolation(err error) error {
	var rv domain.RuleViolationError
	if asRuleViolation(err, &rv) {
		for _, v := range rv.Result.Violations {
			if v.Severity == domain.SeverityBlock {
				return fmt.Errorf("%s: %s", v.Rule, v.Message)
			}
		}
	}
	return err
}

func asRuleViolation(err error, target *domain.RuleViolationError) bool {
	rv, ok := err.(domain.RuleViolationError)
	if !ok {
		return false
	}
	*target = rv
	return true
}
