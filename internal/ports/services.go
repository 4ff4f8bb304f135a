package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/domain/layout"
)

// AuthService interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateToken(tokenString string) (*Claims, error)
}

// EventService interface for calendar event management
type EventService interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*entities.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*entities.Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*entities.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	ListEvents(ctx context.Context, filter EventFilter) ([]*entities.Event, int, error)
	RescheduleEvent(ctx context.Context, id uuid.UUID, req RescheduleRequest) (*entities.Event, error)
	ExportICS(ctx context.Context, filter EventFilter) ([]byte, error)
}

// CalendarService interface for laid-out grid views
type CalendarService interface {
	DayGrid(ctx context.Context, req DayGridRequest) (*DayGridResponse, error)
	WeekGrid(ctx context.Context, req WeekGridRequest) (*WeekGridResponse, error)
	ApplyWindow(ctx context.Context, req WindowRequest) (*WindowResponse, error)
}

// ShoppingService interface for shopping list management
type ShoppingService interface {
	CreateItem(ctx context.Context, req CreateShoppingItemRequest) (*entities.ShoppingItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*entities.ShoppingItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, req UpdateShoppingItemRequest) (*entities.ShoppingItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListItems(ctx context.Context, filter ShoppingFilter) ([]*entities.ShoppingItem, int, error)
	TogglePurchased(ctx context.Context, id uuid.UUID) (*entities.ShoppingItem, error)
	Categories(ctx context.Context) ([]string, error)
}

// ScannerService interface for the document scanner flow
type ScannerService interface {
	Scan(ctx context.Context, req ScanRequest) (*ScanResponse, error)
	AcceptScan(ctx context.Context, req AcceptScanRequest) (*AcceptScanResponse, error)
}

// Request/Response Types

// Auth related types
type RegisterRequest struct {
	Email    string            `json:"email" validate:"required,email"`
	Name     string            `json:"name" validate:"required,min=2,max=100"`
	Password string            `json:"password" validate:"required,min=8"`
	Role     entities.UserRole `json:"role" validate:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int64          `json:"expires_in"`
	User         *entities.User `json:"user"`
}

type Claims struct {
	UserID string            `json:"user_id"`
	Email  string            `json:"email"`
	Role   entities.UserRole `json:"role"`
}

// Event related types
type CreateEventRequest struct {
	Title       string                   `json:"title" validate:"required,max=200"`
	Description *string                  `json:"description" validate:"omitempty,max=2000"`
	StartDate   time.Time                `json:"start_date" validate:"required"`
	EndDate     time.Time                `json:"end_date" validate:"required"`
	AllDay      bool                     `json:"all_day"`
	Location    *string                  `json:"location" validate:"omitempty,max=500"`
	Color       string                   `json:"color" validate:"omitempty,max=50"`
	Image       *string                  `json:"image"`
	Recurring   *entities.RecurrenceRule `json:"recurring"`
	Reminder    *string                  `json:"reminder" validate:"omitempty,max=50"`
	Attachments []entities.Attachment    `json:"attachments"`
}

type UpdateEventRequest struct {
	Title       *string                  `json:"title" validate:"omitempty,max=200"`
	Description *string                  `json:"description" validate:"omitempty,max=2000"`
	StartDate   *time.Time               `json:"start_date"`
	EndDate     *time.Time               `json:"end_date"`
	AllDay      *bool                    `json:"all_day"`
	Location    *string                  `json:"location" validate:"omitempty,max=500"`
	Color       *string                  `json:"color" validate:"omitempty,max=50"`
	Image       *string                  `json:"image"`
	Recurring   *entities.RecurrenceRule `json:"recurring"`
	Reminder    *string                  `json:"reminder" validate:"omitempty,max=50"`
}

// RescheduleRequest carries a drag commit. DeltaY is the vertical pixel
// offset of the drop relative to the event's original position; DayIndex
// and WeekDate identify the target column when an event is dragged across
// days in the week view.
type RescheduleRequest struct {
	DeltaY     float64    `json:"delta_y"`
	HourHeight float64    `json:"hour_height" validate:"omitempty,gt=0"`
	DayIndex   *int       `json:"day_index" validate:"omitempty,min=0,max=6"`
	WeekDate   *time.Time `json:"week_date"`
}

// Calendar grid types
type DayGridRequest struct {
	Date   time.Time          `json:"date" validate:"required"`
	Window *layout.TimeWindow `json:"window"`
	Now    *time.Time         `json:"-"`
}

type WeekGridRequest struct {
	Date   time.Time          `json:"date" validate:"required"`
	Window *layout.TimeWindow `json:"window"`
	Now    *time.Time         `json:"-"`
}

// WindowRequest applies a preset or a typed hour to the visible window and
// reports what the change hides on the given day.
type WindowRequest struct {
	Date    time.Time          `json:"date" validate:"required"`
	Current *layout.TimeWindow `json:"current"`
	Preset  *string            `json:"preset" validate:"omitempty,oneof=full business evening morning"`
	Start   *string            `json:"start"`
	End     *string            `json:"end"`
}

type WindowResponse struct {
	Window      layout.TimeWindow `json:"window"`
	HiddenCount int               `json:"hidden_count"`
	Hidden      []EventSummary    `json:"hidden,omitempty"`
	Warning     string            `json:"warning,omitempty"`
}

// PositionedEvent is an event plus its computed grid geometry.
type PositionedEvent struct {
	Event    *entities.Event `json:"event"`
	Geometry layout.Geometry `json:"geometry"`
	Column   int             `json:"column"`
	Columns  int             `json:"columns"`
	DayIndex int             `json:"day_index,omitempty"`
}

type EventSummary struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type DayGridResponse struct {
	Date        time.Time         `json:"date"`
	Window      layout.TimeWindow `json:"window"`
	Hours       []int             `json:"hours"`
	AllDay      []*entities.Event `json:"all_day"`
	Events      []PositionedEvent `json:"events"`
	HiddenCount int               `json:"hidden_count"`
	Warning     string            `json:"warning,omitempty"`
	NowPosition float64           `json:"now_position"`
}

type WeekGridDay struct {
	Date   time.Time         `json:"date"`
	AllDay []*entities.Event `json:"all_day"`
	Events []PositionedEvent `json:"events"`
}

type WeekGridResponse struct {
	Days        []WeekGridDay     `json:"days"`
	Window      layout.TimeWindow `json:"window"`
	Hours       []int             `json:"hours"`
	HiddenCount int               `json:"hidden_count"`
	Warning     string            `json:"warning,omitempty"`
	NowPosition float64           `json:"now_position"`
}

// Shopping related types
type CreateShoppingItemRequest struct {
	Name           string                `json:"name" validate:"required,max=200"`
	Category       string                `json:"category" validate:"omitempty,max=100"`
	Amount         *string               `json:"amount" validate:"omitempty,max=50"`
	Price          *string               `json:"price" validate:"omitempty,max=50"`
	DateToPurchase *time.Time            `json:"date_to_purchase"`
	ImageURL       *string               `json:"image_url"`
	Notes          *string               `json:"notes" validate:"omitempty,max=500"`
	RepeatOption   entities.RepeatOption `json:"repeat_option" validate:"omitempty"`
}

type UpdateShoppingItemRequest struct {
	Name           *string                `json:"name" validate:"omitempty,max=200"`
	Category       *string                `json:"category" validate:"omitempty,max=100"`
	Amount         *string                `json:"amount" validate:"omitempty,max=50"`
	Price          *string                `json:"price" validate:"omitempty,max=50"`
	DateToPurchase *time.Time             `json:"date_to_purchase"`
	ImageURL       *string                `json:"image_url"`
	Notes          *string                `json:"notes" validate:"omitempty,max=500"`
	RepeatOption   *entities.RepeatOption `json:"repeat_option"`
	Completed      *bool                  `json:"completed"`
}

// Scanner related types
type ScanRequest struct {
	Image []byte                `json:"image" validate:"required"`
	Hint  entities.ScanCategory `json:"hint" validate:"omitempty"`
}

type ScanResponse struct {
	Result *entities.ScanResult `json:"result"`
	Drafts ScanDrafts           `json:"drafts"`
}

// ScanDrafts holds the editable records derived from a scan, not yet saved.
type ScanDrafts struct {
	Event         *CreateEventRequest         `json:"event,omitempty"`
	ShoppingItems []CreateShoppingItemRequest `json:"shopping_items,omitempty"`
}

// AcceptScanRequest saves the (possibly edited) drafts of a scan.
type AcceptScanRequest struct {
	Event         *CreateEventRequest         `json:"event"`
	ShoppingItems []CreateShoppingItemRequest `json:"shopping_items"`
}

type AcceptScanResponse struct {
	Event         *entities.Event          `json:"event,omitempty"`
	ShoppingItems []*entities.ShoppingItem `json:"shopping_items,omitempty"`
}

// Response types for pagination and common structures
type PaginatedResponse[T any] struct {
	Data   []T `json:"data"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
