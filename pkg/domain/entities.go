// Package domain defines the core persistent entities, value types, and
// rule evaluation primitives used by the cargo placement core.
package domain

import "time"

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	// EntityZone identifies a zone record.
	EntityZone EntityType = "zone"
	// EntityContainer identifies a container record.
	EntityContainer EntityType = "container"
	// EntityItem identifies an item record.
	EntityItem EntityType = "item"
)

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior and logging.
const (
	// SeverityBlock blocks transaction commit.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows commit.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Action indicates the type of modification performed.
type Action string

// Change actions enumerate supported CRUD operations captured in the audit trail.
const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// LogAction enumerates the usage-log action vocabulary.
type LogAction string

// Canonical usage-log actions.
const (
	LogActionAdded     LogAction = "added"
	LogActionPlaced    LogAction = "placed"
	LogActionMoved     LogAction = "moved"
	LogActionRetrieved LogAction = "retrieved"
	LogActionUsed      LogAction = "used"
	LogActionWaste     LogAction = "waste"
	LogActionReturned  LogAction = "returned"
)

// Zone is a logical area grouping containers by intended use.
type Zone struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Container is an axis-aligned box belonging to one Zone. The face at y=0
// is the single open face (the door) through which items enter and leave.
type Container struct {
	ID        string    `json:"id"`
	ZoneID    string    `json:"zoneId"`
	Width     float64   `json:"width"`
	Depth     float64   `json:"depth"`
	Height    float64   `json:"height"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Volume returns width * depth * height.
func (c Container) Volume() float64 {
	return c.Width * c.Depth * c.Height
}

// UsageLimit pairs a maximum use count with a remaining count. Both fields
// of an Item's usage budget are present or absent together.
type UsageLimit struct {
	UsageLimit    int `json:"usageLimit"`
	UsesRemaining int `json:"usesRemaining"`
}

// Placement is the tuple carried by a placed Item.
type Placement struct {
	ContainerID string  `json:"containerId"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
	Rotated     bool    `json:"rotated"`
}

// Item is an axis-aligned cargo box with priority, optional expiry, optional
// usage budget, and an optional preferred zone. Unplaced items carry a nil
// Placement.
type Item struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Width           float64     `json:"width"`
	Depth           float64     `json:"depth"`
	Height          float64     `json:"height"`
	Mass            float64     `json:"mass"`
	Priority        int         `json:"priority"`
	ExpiryDate      *time.Time  `json:"expiryDate,omitempty"`
	Usage           *UsageLimit `json:"usage,omitempty"`
	PreferredZoneID string      `json:"preferredZoneId,omitempty"`
	IsWaste         bool        `json:"isWaste"`
	WasteReason     string      `json:"wasteReason,omitempty"`
	Returned        bool        `json:"returned"`
	Placement       *Placement  `json:"placement,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// IsPlaced reports whether the item currently occupies a container.
func (i Item) IsPlaced() bool {
	return i.Placement != nil
}

// Footprint returns the item's (w, d, h) after accounting for rotation.
// Rotation swaps width and depth only; height is invariant.
func (i Item) Footprint(rotated bool) (w, d, h float64) {
	if rotated {
		return i.Depth, i.Width, i.Height
	}
	return i.Width, i.Depth, i.Height
}

// ListFilter restricts ListItems queries.
type ListFilter struct {
	ContainerID     *string
	IsWaste         *bool
	NameContains    string
	NonNullContainer bool
}

// Change describes a mutation applied to an entity during a transaction.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// LogEntry is an append-only usage-log record.
type LogEntry struct {
	ID        string    `json:"id"`
	Action    LogAction `json:"action"`
	ItemID    string    `json:"itemId"`
	Actor     string    `json:"actor,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "transaction blocked by rules"
}
