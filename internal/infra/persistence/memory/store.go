// Package memory provides an in-memory implementation of the core
// persistence store used for tests, demos, and as the state engine wrapped
// by the SQLite and Postgres backends.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"cargocore/pkg/domain"

	"github.com/google/uuid"
)

// Compile-time contract assertion ensuring memory.Store satisfies the
// domain persistence interface.
var _ domain.PersistentStore = (*Store)(nil)

type (
	Zone            = domain.Zone
	Container       = domain.Container
	Item            = domain.Item
	Change          = domain.Change
	LogEntry        = domain.LogEntry
	Result          = domain.Result
	RulesEngine     = domain.RulesEngine
	Transaction     = domain.Transaction
	TransactionView = domain.TransactionView
	ListFilter      = domain.ListFilter
)

type state struct {
	zones      map[string]Zone
	containers map[string]Container
	items      map[string]Item
	logs       []LogEntry
}

func newState() state {
	return state{
		zones:      make(map[string]Zone),
		containers: make(map[string]Container),
		items:      make(map[string]Item),
	}
}

func cloneItem(i Item) Item {
	cp := i
	if i.Placement != nil {
		p := *i.Placement
		cp.Placement = &p
	}
	if i.Usage != nil {
		u := *i.Usage
		cp.Usage = &u
	}
	if i.ExpiryDate != nil {
		d := *i.ExpiryDate
		cp.ExpiryDate = &d
	}
	return cp
}

func (s state) clone() state {
	cloned := newState()
	for k, v := range s.zones {
		cloned.zones[k] = v
	}
	for k, v := range s.containers {
		cloned.containers[k] = v
	}
	for k, v := range s.items {
		cloned.items[k] = cloneItem(v)
	}
	cloned.logs = append([]LogEntry(nil), s.logs...)
	return cloned
}

// Snapshot captures a point-in-time copy of the store state for durable
// backends (SQLite/Postgres) to serialize.
type Snapshot struct {
	Zones      map[string]Zone      `json:"zones"`
	Containers map[string]Container `json:"containers"`
	Items      map[string]Item      `json:"items"`
	Logs       []LogEntry           `json:"logs"`
}

func snapshotFromState(s state) Snapshot {
	snap := Snapshot{
		Zones:      make(map[string]Zone, len(s.zones)),
		Containers: make(map[string]Container, len(s.containers)),
		Items:      make(map[string]Item, len(s.items)),
		Logs:       append([]LogEntry(nil), s.logs...),
	}
	for k, v := range s.zones {
		snap.Zones[k] = v
	}
	for k, v := range s.containers {
		snap.Containers[k] = v
	}
	for k, v := range s.items {
		snap.Items[k] = cloneItem(v)
	}
	return snap
}

func stateFromSnapshot(snap Snapshot) state {
	st := newState()
	for k, v := range snap.Zones {
		st.zones[k] = v
	}
	for k, v := range snap.Containers {
		st.containers[k] = v
	}
	for k, v := range snap.Items {
		st.items[k] = cloneItem(v)
	}
	st.logs = append([]LogEntry(nil), snap.Logs...)
	return st
}

// Store is the in-memory, transactional implementation of
// domain.PersistentStore.
type Store struct {
	mu     sync.RWMutex
	state  state
	engine *RulesEngine
	nowFn  func() time.Time
}

// NewStore constructs an in-memory store backed by the provided rules
// engine. A nil engine means no commit-time rule evaluation.
func NewStore(engine *RulesEngine) *Store {
	return &Store{
		state: newState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

func newID() string {
	return uuid.NewString()
}

// ExportState clones the current store state for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromState(s.state)
}

// ImportState replaces the store state with the provided snapshot.
func (s *Store) ImportState(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = stateFromSnapshot(snap)
}

// RulesEngine exposes the configured engine for wiring additional rules.
func (s *Store) RulesEngine() *RulesEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// SetNowFunc overrides the store's time source, primarily for tests and for
// advanceTime simulation.
func (s *Store) SetNowFunc(fn func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFn = fn
}

type transaction struct {
	store   *Store
	state   state
	changes []Change
	now     time.Time
}

type transactionView struct {
	state *state
}

func newTransactionView(st *state) TransactionView {
	return transactionView{state: st}
}

func (v transactionView) ListZones() []Zone {
	out := make([]Zone, 0, len(v.state.zones))
	for _, z := range v.state.zones {
		out = append(out, z)
	}
	return out
}

func (v transactionView) ListContainers() []Container {
	out := make([]Container, 0, len(v.state.containers))
	for _, c := range v.state.containers {
		out = append(out, c)
	}
	return out
}

func matchesFilter(it Item, f ListFilter) bool {
	if f.ContainerID != nil {
		if it.Placement == nil || it.Placement.ContainerID != *f.ContainerID {
			return false
		}
	}
	if f.IsWaste != nil && it.IsWaste != *f.IsWaste {
		return false
	}
	if f.NonNullContainer && it.Placement == nil {
		return false
	}
	if f.NameContains != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(f.NameContains)) {
		return false
	}
	return true
}

func (v transactionView) ListItems(filter ListFilter) []Item {
	out := make([]Item, 0, len(v.state.items))
	for _, it := range v.state.items {
		if matchesFilter(it, filter) {
			out = append(out, cloneItem(it))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (v transactionView) FindZone(id string) (Zone, bool) {
	z, ok := v.state.zones[id]
	return z, ok
}

func (v transactionView) FindContainer(id string) (Container, bool) {
	c, ok := v.state.containers[id]
	return c, ok
}

func (v transactionView) FindItem(id string) (Item, bool) {
	it, ok := v.state.items[id]
	if !ok {
		return Item{}, false
	}
	return cloneItem(it), true
}

// RunInTransaction executes fn within a transactional copy of the store
// state, evaluates commit-time rules, and only applies the mutation if no
// blocking violation was raised.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		store: s,
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		view := newTransactionView(&tx.state)
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.state.clone()
	view := newTransactionView(&snap)
	return fn(view)
}

func (tx *transaction) recordChange(c Change) {
	tx.changes = append(tx.changes, c)
}

func (tx *transaction) Snapshot() TransactionView {
	return newTransactionView(&tx.state)
}

func (tx *transaction) FindZone(id string) (Zone, bool) {
	z, ok := tx.state.zones[id]
	return z, ok
}

func (tx *transaction) FindContainer(id string) (Container, bool) {
	c, ok := tx.state.containers[id]
	return c, ok
}

func (tx *transaction) FindItem(id string) (Item, bool) {
	it, ok := tx.state.items[id]
	if !ok {
		return Item{}, false
	}
	return cloneItem(it), true
}

func (tx *transaction) CreateZone(z Zone) (Zone, error) {
	if z.ID == "" {
		z.ID = newID()
	}
	if _, exists := tx.state.zones[z.ID]; exists {
		return Zone{}, domain.ErrConflict{Entity: domain.EntityZone, ID: z.ID}
	}
	z.CreatedAt = tx.now
	z.UpdatedAt = tx.now
	tx.state.zones[z.ID] = z
	tx.recordChange(Change{Entity: domain.EntityZone, Action: domain.ActionCreate, After: z})
	return z, nil
}

func (tx *transaction) UpdateZone(id string, mutator func(*Zone) error) (Zone, error) {
	current, ok := tx.state.zones[id]
	if !ok {
		return Zone{}, domain.ErrNotFound{Entity: domain.EntityZone, ID: id}
	}
	before := current
	if err := mutator(&current); err != nil {
		return Zone{}, err
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.zones[id] = current
	tx.recordChange(Change{Entity: domain.EntityZone, Action: domain.ActionUpdate, Before: before, After: current})
	return current, nil
}

func (tx *transaction) DeleteZone(id string) error {
	current, ok := tx.state.zones[id]
	if !ok {
		return domain.ErrNotFound{Entity: domain.EntityZone, ID: id}
	}
	for _, c := range tx.state.containers {
		if c.ZoneID == id {
			return fmt.Errorf("zone %q still referenced by container %q", id, c.ID)
		}
	}
	delete(tx.state.zones, id)
	tx.recordChange(Change{Entity: domain.EntityZone, Action: domain.ActionDelete, Before: current})
	return nil
}

func (tx *transaction) CreateContainer(c Container) (Container, error) {
	if c.ID == "" {
		c.ID = newID()
	}
	if _, exists := tx.state.containers[c.ID]; exists {
		return Container{}, domain.ErrConflict{Entity: domain.EntityContainer, ID: c.ID}
	}
	c.CreatedAt = tx.now
	c.UpdatedAt = tx.now
	tx.state.containers[c.ID] = c
	tx.recordChange(Change{Entity: domain.EntityContainer, Action: domain.ActionCreate, After: c})
	return c, nil
}

func (tx *transaction) UpdateContainer(id string, mutator func(*Container) error) (Container, error) {
	current, ok := tx.state.containers[id]
	if !ok {
		return Container{}, domain.ErrNotFound{Entity: domain.EntityContainer, ID: id}
	}
	before := current
	if err := mutator(&current); err != nil {
		return Container{}, err
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.containers[id] = current
	tx.recordChange(Change{Entity: domain.EntityContainer, Action: domain.ActionUpdate, Before: before, After: current})
	return current, nil
}

func (tx *transaction) DeleteContainer(id string) error {
	current, ok := tx.state.containers[id]
	if !ok {
		return domain.ErrNotFound{Entity: domain.EntityContainer, ID: id}
	}
	for _, it := range tx.state.items {
		if it.Placement != nil && it.Placement.ContainerID == id {
			return fmt.Errorf("container %q still holds item %q", id, it.ID)
		}
	}
	delete(tx.state.containers, id)
	tx.recordChange(Change{Entity: domain.EntityContainer, Action: domain.ActionDelete, Before: current})
	return nil
}

func (tx *transaction) CreateItem(it Item) (Item, error) {
	if it.ID == "" {
		it.ID = newID()
	}
	if _, exists := tx.state.items[it.ID]; exists {
		return Item{}, domain.ErrConflict{Entity: domain.EntityItem, ID: it.ID}
	}
	it.CreatedAt = tx.now
	it.UpdatedAt = tx.now
	tx.state.items[it.ID] = cloneItem(it)
	tx.recordChange(Change{Entity: domain.EntityItem, Action: domain.ActionCreate, After: cloneItem(it)})
	return cloneItem(it), nil
}

func (tx *transaction) UpdateItem(id string, mutator func(*Item) error) (Item, error) {
	current, ok := tx.state.items[id]
	if !ok {
		return Item{}, domain.ErrNotFound{Entity: domain.EntityItem, ID: id}
	}
	before := cloneItem(current)
	working := cloneItem(current)
	if err := mutator(&working); err != nil {
		return Item{}, err
	}
	working.ID = id
	working.UpdatedAt = tx.now
	tx.state.items[id] = cloneItem(working)
	tx.recordChange(Change{Entity: domain.EntityItem, Action: domain.ActionUpdate, Before: before, After: cloneItem(working)})
	return cloneItem(working), nil
}

func (tx *transaction) DeleteItem(id string) error {
	current, ok := tx.state.items[id]
	if !ok {
		return domain.ErrNotFound{Entity: domain.EntityItem, ID: id}
	}
	delete(tx.state.items, id)
	tx.recordChange(Change{Entity: domain.EntityItem, Action: domain.ActionDelete, Before: cloneItem(current)})
	return nil
}

func (tx *transaction) AppendLog(entry LogEntry) {
	if entry.ID == "" {
		entry.ID = newID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = tx.now
	}
	tx.state.logs = append(tx.state.logs, entry)
}

func (s *Store) GetZone(id string) (Zone, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	z, ok := s.state.zones[id]
	return z, ok
}

func (s *Store) ListZones() []Zone {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Zone, 0, len(s.state.zones))
	for _, z := range s.state.zones {
		out = append(out, z)
	}
	return out
}

func (s *Store) GetContainer(id string) (Container, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.state.containers[id]
	return c, ok
}

func (s *Store) ListContainers() []Container {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Container, 0, len(s.state.containers))
	for _, c := range s.state.containers {
		out = append(out, c)
	}
	return out
}

func (s *Store) GetItem(id string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.state.items[id]
	if !ok {
		return Item{}, false
	}
	return cloneItem(it), true
}

func (s *Store) ListItems(filter ListFilter) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, 0, len(s.state.items))
	for _, it := range s.state.items {
		if matchesFilter(it, filter) {
			out = append(out, cloneItem(it))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) ListLogs() []LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]LogEntry(nil), s.state.logs...)
}
