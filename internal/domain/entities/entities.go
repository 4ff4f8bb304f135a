package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrShoppingItemNotFound = errors.New("shopping item not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidEventRange    = errors.New("event start must not be after end")
	ErrInvalidTimeWindow    = errors.New("invalid time window")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidScanCategory  = errors.New("invalid scan category")
	ErrEmptyScanImage       = errors.New("scan image is empty")
	ErrInvalidRepeatOption  = errors.New("invalid repeat option")
	ErrInvalidInput         = errors.New("invalid input")
)

// Enums and types
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleMember UserRole = "member"
)

type RepeatOption string

const (
	RepeatNone    RepeatOption = "none"
	RepeatWeekly  RepeatOption = "weekly"
	RepeatMonthly RepeatOption = "monthly"
)

// RecurrenceFrequency describes the stored recurrence descriptor on an event.
// Events are never expanded into multiple occurrences; the descriptor is
// carried as opaque payload for clients and export.
type RecurrenceFrequency string

const (
	FrequencyDaily   RecurrenceFrequency = "daily"
	FrequencyWeekly  RecurrenceFrequency = "weekly"
	FrequencyMonthly RecurrenceFrequency = "monthly"
	FrequencyYearly  RecurrenceFrequency = "yearly"
)

// ScanCategory is the typed recognition result category. Dispatch on scan
// results goes through this enum rather than raw strings.
type ScanCategory string

const (
	ScanInvitation ScanCategory = "invitation"
	ScanReceipt    ScanCategory = "receipt"
	ScanProduct    ScanCategory = "product"
	ScanDocument   ScanCategory = "document"
	ScanUnknown    ScanCategory = "unknown"
)

// Event represents a calendar event. The layout engine reads StartDate,
// EndDate, AllDay and Color; everything else is payload it passes through.
type Event struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	AllDay      bool            `json:"all_day"`
	Location    *string         `json:"location,omitempty"`
	Color       string          `json:"color,omitempty"`
	Image       *string         `json:"image,omitempty"`
	Recurring   *RecurrenceRule `json:"recurring,omitempty"`
	Reminder    *string         `json:"reminder,omitempty"`
	Attachments []Attachment    `json:"attachments,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// RecurrenceRule is stored but never expanded into instances.
type RecurrenceRule struct {
	Frequency   RecurrenceFrequency `json:"frequency"`
	Interval    int                 `json:"interval"`
	EndDate     *time.Time          `json:"end_date,omitempty"`
	Occurrences *int                `json:"occurrences,omitempty"`
	DaysOfWeek  []int               `json:"days_of_week,omitempty"`
}

// Attachment is an opaque file reference on an event.
type Attachment struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	Size         *int64    `json:"size,omitempty"`
}

// ShoppingItem represents an item on the shopping list.
type ShoppingItem struct {
	ID             uuid.UUID    `json:"id"`
	Name           string       `json:"name"`
	Completed      bool         `json:"completed"`
	Category       string       `json:"category"`
	Amount         *string      `json:"amount,omitempty"`
	Price          *string      `json:"price,omitempty"`
	DateToPurchase *time.Time   `json:"date_to_purchase,omitempty"`
	DateAdded      time.Time    `json:"date_added"`
	ImageURL       *string      `json:"image_url,omitempty"`
	Notes          *string      `json:"notes,omitempty"`
	RepeatOption   RepeatOption `json:"repeat_option"`
	LastPurchased  *time.Time   `json:"last_purchased,omitempty"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// User represents an account in the system.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ScanResult is the typed recognition result returned by the detection
// engine. Exactly one of the per-category payloads is set, matching Category.
type ScanResult struct {
	Category        ScanCategory      `json:"category"`
	Confidence      float64           `json:"confidence"`
	ExtractedText   string            `json:"extracted_text"`
	DetectedObjects []DetectedObject  `json:"detected_objects"`
	Invitation      *InvitationDetail `json:"invitation,omitempty"`
	Receipt         *ReceiptDetail    `json:"receipt,omitempty"`
	Product         *ProductDetail    `json:"product,omitempty"`
	Document        *DocumentDetail   `json:"document,omitempty"`
}

// DetectedObject is a labeled detection with a confidence score.
type DetectedObject struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// InvitationDetail holds fields recognized from an event invitation.
type InvitationDetail struct {
	Title     string `json:"title"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Location  string `json:"location"`
	Organizer string `json:"organizer"`
	Notes     string `json:"notes"`
}

// ReceiptDetail holds fields recognized from a purchase receipt.
type ReceiptDetail struct {
	Store    string        `json:"store"`
	Date     string        `json:"date"`
	Total    string        `json:"total"`
	Category string        `json:"category"`
	Items    []ReceiptItem `json:"items"`
}

// ReceiptItem is a single line on a recognized receipt.
type ReceiptItem struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// ProductDetail holds fields recognized from a product photo.
type ProductDetail struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Brand       string `json:"brand"`
	Store       string `json:"store"`
	Description string `json:"description"`
}

// DocumentDetail holds fields recognized from a generic document.
type DocumentDetail struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Type    string `json:"type"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

// Business logic methods for Event

// Duration returns the event's length. All-day events report the raw
// timestamp difference; the layout engine ignores their times anyway.
func (e *Event) Duration() time.Duration {
	return e.EndDate.Sub(e.StartDate)
}

// IsMultiDay reports whether the event crosses a midnight boundary.
func (e *Event) IsMultiDay() bool {
	sy, sm, sd := e.StartDate.Date()
	ey, em, ed := e.EndDate.Date()
	return sy != ey || sm != em || sd != ed
}

// Validate checks the event invariant enforced at the edges.
func (e *Event) Validate() error {
	if e.EndDate.Before(e.StartDate) {
		return ErrInvalidEventRange
	}
	return nil
}

// Business logic methods for ShoppingItem

// TogglePurchased flips the completed flag, stamping LastPurchased when the
// item transitions to completed.
func (si *ShoppingItem) TogglePurchased(now time.Time) {
	si.Completed = !si.Completed
	if si.Completed {
		si.LastPurchased = &now
	}
	si.UpdatedAt = now
}

// IsRecurring reports whether the item repeats.
func (si *ShoppingItem) IsRecurring() bool {
	return si.RepeatOption == RepeatWeekly || si.RepeatOption == RepeatMonthly
}

// Utility methods

func (r RepeatOption) IsValid() bool {
	switch r {
	case RepeatNone, RepeatWeekly, RepeatMonthly:
		return true
	default:
		return false
	}
}

func (c ScanCategory) IsValid() bool {
	switch c {
	case ScanInvitation, ScanReceipt, ScanProduct, ScanDocument, ScanUnknown:
		return true
	default:
		return false
	}
}

func (f RecurrenceFrequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	default:
		return false
	}
}

func (ur UserRole) IsValid() bool {
	switch ur {
	case UserRoleAdmin, UserRoleMember:
		return true
	default:
		return false
	}
}
