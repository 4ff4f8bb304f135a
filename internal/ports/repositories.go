package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/daybook/core/internal/domain/entities"
)

// EventRepository defines the interface for calendar event storage
type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Event, error)
	Update(ctx context.Context, event *entities.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter EventFilter) ([]*entities.Event, error)
	Count(ctx context.Context, filter EventFilter) (int64, error)
	GetByRange(ctx context.Context, start, end time.Time) ([]*entities.Event, error)
	ReplaceAll(ctx context.Context, events []*entities.Event) error
}

// ShoppingRepository defines the interface for shopping list storage
type ShoppingRepository interface {
	Create(ctx context.Context, item *entities.ShoppingItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ShoppingItem, error)
	Update(ctx context.Context, item *entities.ShoppingItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ShoppingFilter) ([]*entities.ShoppingItem, error)
	Count(ctx context.Context, filter ShoppingFilter) (int, error)
	Categories(ctx context.Context) ([]string, error)
	ReplaceAll(ctx context.Context, items []*entities.ShoppingItem) error
}

// UserRepository defines the interface for user account storage
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Recognizer defines the interface for image recognition backends. The
// bundled adapter is an offline mock; a real service can replace it without
// touching the scanner flow.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte, hint entities.ScanCategory) (*entities.ScanResult, error)
}

// EventExporter renders a set of events into an interchange format.
type EventExporter interface {
	Export(ctx context.Context, events []*entities.Event) ([]byte, error)
	ContentType() string
}

// ShoppingListMode selects which items a shopping list query returns.
type ShoppingListMode string

const (
	ShoppingModeAll       ShoppingListMode = "all"
	ShoppingModePending   ShoppingListMode = "pending"
	ShoppingModePurchased ShoppingListMode = "purchased"
	ShoppingModeRecurring ShoppingListMode = "recurring"
)

// Filter types for repository queries

type EventFilter struct {
	From      *time.Time
	To        *time.Time
	Search    *string
	AllDay    *bool
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string
}

type ShoppingFilter struct {
	Mode     ShoppingListMode
	Category *string
	Search   *string
	Limit    int
	Offset   int
	SortBy   string
}
