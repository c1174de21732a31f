package domain

import "context"

// Transaction exposes the domain operations a persistence implementation
// must support within an atomic scope.
type Transaction interface {
	Snapshot() TransactionView

	CreateZone(Zone) (Zone, error)
	UpdateZone(id string, mutator func(*Zone) error) (Zone, error)
	DeleteZone(id string) error

	CreateContainer(Container) (Container, error)
	UpdateContainer(id string, mutator func(*Container) error) (Container, error)
	DeleteContainer(id string) error

	CreateItem(Item) (Item, error)
	UpdateItem(id string, mutator func(*Item) error) (Item, error)
	DeleteItem(id string) error

	AppendLog(LogEntry)

	FindZone(id string) (Zone, bool)
	FindContainer(id string) (Container, bool)
	FindItem(id string) (Item, bool)
}

// TransactionView provides read-only access to snapshot data for rules and
// planners.
type TransactionView interface {
	ListZones() []Zone
	ListContainers() []Container
	ListItems(filter ListFilter) []Item

	FindZone(id string) (Zone, bool)
	FindContainer(id string) (Container, bool)
	FindItem(id string) (Item, bool)
}

// PersistentStore is a minimal abstraction over durable backends. Multiple
// implementations (in-memory, SQLite, Postgres) are interchangeable.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error

	GetZone(id string) (Zone, bool)
	ListZones() []Zone
	GetContainer(id string) (Container, bool)
	ListContainers() []Container
	GetItem(id string) (Item, bool)
	ListItems(filter ListFilter) []Item
	ListLogs() []LogEntry
}
