package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/domain/layout"
	"github.com/daybook/core/internal/infrastructure/logger"
	"github.com/daybook/core/internal/ports"
)

// EventService handles calendar event operations
type EventService struct {
	eventRepo ports.EventRepository
	exporter  ports.EventExporter
	params    layout.GridParams
	logger    *logger.Logger
}

// NewEventService creates a new event service
func NewEventService(eventRepo ports.EventRepository, exporter ports.EventExporter, params layout.GridParams, logger *logger.Logger) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		exporter:  exporter,
		params:    params,
		logger:    logger,
	}
}

// CreateEvent creates a new event
func (s *EventService) CreateEvent(ctx context.Context, req ports.CreateEventRequest) (*entities.Event, error) {
	event := &entities.Event{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		AllDay:      req.AllDay,
		Location:    req.Location,
		Color:       req.Color,
		Image:       req.Image,
		Recurring:   req.Recurring,
		Reminder:    req.Reminder,
		Attachments: req.Attachments,
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.logger.Infow("Event created", "event_id", event.ID, "title", event.Title)
	return event, nil
}

// GetEvent retrieves an event by ID
func (s *EventService) GetEvent(ctx context.Context, id uuid.UUID) (*entities.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// UpdateEvent applies a partial update to an event
func (s *EventService) UpdateEvent(ctx context.Context, id uuid.UUID, req ports.UpdateEventRequest) (*entities.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.StartDate != nil {
		event.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		event.EndDate = *req.EndDate
	}
	if req.AllDay != nil {
		event.AllDay = *req.AllDay
	}
	if req.Location != nil {
		event.Location = req.Location
	}
	if req.Color != nil {
		event.Color = *req.Color
	}
	if req.Image != nil {
		event.Image = req.Image
	}
	if req.Recurring != nil {
		event.Recurring = req.Recurring
	}
	if req.Reminder != nil {
		event.Reminder = req.Reminder
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.logger.Infow("Event updated", "event_id", event.ID)
	return event, nil
}

// DeleteEvent removes an event
func (s *EventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("Event deleted", "event_id", id)
	return nil
}

// ListEvents lists events with filtering and pagination
func (s *EventService) ListEvents(ctx context.Context, filter ports.EventFilter) ([]*entities.Event, int, error) {
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	total, err := s.eventRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}
	return events, int(total), nil
}

// RescheduleEvent commits a drag drop. The vertical pixel offset becomes a
// minute shift on both timestamps, and a week-view day index rewrites the
// date components. Duration never changes.
func (s *EventService) RescheduleEvent(ctx context.Context, id uuid.UUID, req ports.RescheduleRequest) (*entities.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hourHeight := req.HourHeight
	if hourHeight <= 0 {
		hourHeight = s.params.HourHeight
	}
	minutesDelta := int(math.Round(req.DeltaY * 60 / hourHeight))

	var targetDay *time.Time
	if req.DayIndex != nil && req.WeekDate != nil {
		days := layout.WeekDays(*req.WeekDate, s.params.WeekStartsOn)
		idx := *req.DayIndex
		if idx < 0 {
			idx = 0
		}
		if idx > len(days)-1 {
			idx = len(days) - 1
		}
		targetDay = &days[idx]
	}

	before := event.Duration()
	updated := layout.CommitDelta(*event, minutesDelta, targetDay)
	if updated.Duration() != before {
		return nil, fmt.Errorf("reschedule changed event duration")
	}

	if err := s.eventRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to reschedule event: %w", err)
	}

	s.logger.Infow("Event rescheduled",
		"event_id", id,
		"minutes_delta", minutesDelta,
		"start", updated.StartDate.Format(time.RFC3339),
	)
	return &updated, nil
}

// ExportContentType returns the MIME type of the export format
func (s *EventService) ExportContentType() string {
	return s.exporter.ContentType()
}

// ExportICS renders the filtered events as an iCalendar feed
func (s *EventService) ExportICS(ctx context.Context, filter ports.EventFilter) ([]byte, error) {
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for export: %w", err)
	}
	return s.exporter.Export(ctx, events)
}
