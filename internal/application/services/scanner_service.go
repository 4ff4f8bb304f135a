package services

import (
	"context"
	"fmt"
	"time"

	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/infrastructure/logger"
	"github.com/daybook/core/internal/ports"
)

// ScannerService runs images through the recognizer and turns the results
// into editable drafts the user can accept into the calendar or the list.
type ScannerService struct {
	recognizer      ports.Recognizer
	eventService    ports.EventService
	shoppingService ports.ShoppingService
	logger          *logger.Logger
}

// NewScannerService creates a new scanner service
func NewScannerService(recognizer ports.Recognizer, eventService ports.EventService, shoppingService ports.ShoppingService, logger *logger.Logger) *ScannerService {
	return &ScannerService{
		recognizer:      recognizer,
		eventService:    eventService,
		shoppingService: shoppingService,
		logger:          logger,
	}
}

// Scan recognizes the image and returns the result with derived drafts.
// Nothing is saved until the drafts come back through AcceptScan.
func (s *ScannerService) Scan(ctx context.Context, req ports.ScanRequest) (*ports.ScanResponse, error) {
	result, err := s.recognizer.Recognize(ctx, req.Image, req.Hint)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Scan recognized",
		"category", result.Category,
		"confidence", result.Confidence,
	)

	return &ports.ScanResponse{
		Result: result,
		Drafts: draftsFrom(result),
	}, nil
}

// AcceptScan persists the (possibly edited) drafts of a scan.
func (s *ScannerService) AcceptScan(ctx context.Context, req ports.AcceptScanRequest) (*ports.AcceptScanResponse, error) {
	if req.Event == nil && len(req.ShoppingItems) == 0 {
		return nil, fmt.Errorf("%w: nothing to save", entities.ErrInvalidInput)
	}

	resp := &ports.AcceptScanResponse{}

	if req.Event != nil {
		event, err := s.eventService.CreateEvent(ctx, *req.Event)
		if err != nil {
			return nil, fmt.Errorf("failed to save scanned event: %w", err)
		}
		resp.Event = event
	}

	for _, draft := range req.ShoppingItems {
		item, err := s.shoppingService.CreateItem(ctx, draft)
		if err != nil {
			return nil, fmt.Errorf("failed to save scanned item %q: %w", draft.Name, err)
		}
		resp.ShoppingItems = append(resp.ShoppingItems, item)
	}

	s.logger.Infow("Scan accepted",
		"event_saved", resp.Event != nil,
		"items_saved", len(resp.ShoppingItems),
	)
	return resp, nil
}

// draftsFrom maps a recognition result onto record drafts. Invitations become
// an event draft, receipts and products become shopping item drafts, and
// documents produce no drafts since they carry nothing actionable.
func draftsFrom(result *entities.ScanResult) ports.ScanDrafts {
	var drafts ports.ScanDrafts

	switch result.Category {
	case entities.ScanInvitation:
		if result.Invitation != nil {
			drafts.Event = invitationDraft(result.Invitation)
		}
	case entities.ScanReceipt:
		if result.Receipt != nil {
			for _, line := range result.Receipt.Items {
				price := line.Price
				drafts.ShoppingItems = append(drafts.ShoppingItems, ports.CreateShoppingItemRequest{
					Name:     line.Name,
					Category: result.Receipt.Category,
					Price:    &price,
				})
			}
		}
	case entities.ScanProduct:
		if result.Product != nil {
			price := result.Product.Price
			var notes *string
			if result.Product.Description != "" {
				d := result.Product.Description
				notes = &d
			}
			drafts.ShoppingItems = append(drafts.ShoppingItems, ports.CreateShoppingItemRequest{
				Name:     result.Product.Name,
				Category: result.Product.Category,
				Price:    &price,
				Notes:    notes,
			})
		}
	}

	return drafts
}

func invitationDraft(inv *entities.InvitationDetail) *ports.CreateEventRequest {
	start := invitationStart(inv)
	draft := &ports.CreateEventRequest{
		Title:     inv.Title,
		StartDate: start,
		EndDate:   start.Add(time.Hour),
	}
	if inv.Location != "" {
		loc := inv.Location
		draft.Location = &loc
	}
	if inv.Notes != "" {
		notes := inv.Notes
		draft.Description = &notes
	}
	return draft
}

// invitationStart combines the recognized date and time strings. Unparseable
// input falls back to tomorrow morning so the draft stays editable.
func invitationStart(inv *entities.InvitationDetail) time.Time {
	day, err := time.Parse("2006-01-02", inv.Date)
	if err != nil {
		day = time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)
	}
	for _, format := range []string{"15:04", "3:04 PM", "3 PM"} {
		if clock, err := time.Parse(format, inv.Time); err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local)
		}
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, time.Local)
}
