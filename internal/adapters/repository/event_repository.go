package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/ports"
)

// EventRepositoryImpl implements the EventRepository interface with an
// in-memory store. All access is mutex-guarded; events are copied on the way
// in and out so callers never share memory with the store.
type EventRepositoryImpl struct {
	mu     sync.RWMutex
	events map[uuid.UUID]entities.Event
}

// NewEventRepository creates a new in-memory event repository
func NewEventRepository() ports.EventRepository {
	return &EventRepositoryImpl{events: make(map[uuid.UUID]entities.Event)}
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *entities.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event.ID] = cloneEvent(*event)
	return nil
}

func (r *EventRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.events[id]
	if !ok {
		return nil, entities.ErrEventNotFound
	}
	out := cloneEvent(event)
	return &out, nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, event *entities.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.events[event.ID]
	if !ok {
		return entities.ErrEventNotFound
	}
	event.CreatedAt = existing.CreatedAt
	event.UpdatedAt = time.Now()
	r.events[event.ID] = cloneEvent(*event)
	return nil
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return entities.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *EventRepositoryImpl) List(ctx context.Context, filter ports.EventFilter) ([]*entities.Event, error) {
	r.mu.RLock()
	matched := r.match(filter)
	r.mu.RUnlock()

	sortEvents(matched, filter.SortBy, filter.SortOrder)
	return paginate(matched, filter.Limit, filter.Offset), nil
}

func (r *EventRepositoryImpl) Count(ctx context.Context, filter ports.EventFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.match(filter))), nil
}

func (r *EventRepositoryImpl) GetByRange(ctx context.Context, start, end time.Time) ([]*entities.Event, error) {
	return r.List(ctx, ports.EventFilter{From: &start, To: &end, SortBy: "start_date"})
}

// ReplaceAll swaps the full contents of the store, used by the seed loader.
func (r *EventRepositoryImpl) ReplaceAll(ctx context.Context, events []*entities.Event) error {
	next := make(map[uuid.UUID]entities.Event, len(events))
	now := time.Now()
	for _, event := range events {
		if err := event.Validate(); err != nil {
			return err
		}
		if event.ID == uuid.Nil {
			event.ID = uuid.New()
		}
		clone := cloneEvent(*event)
		if clone.CreatedAt.IsZero() {
			clone.CreatedAt = now
		}
		if clone.UpdatedAt.IsZero() {
			clone.UpdatedAt = now
		}
		next[clone.ID] = clone
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = next
	return nil
}

// match filters the store under a held read lock.
func (r *EventRepositoryImpl) match(filter ports.EventFilter) []*entities.Event {
	var out []*entities.Event
	for _, event := range r.events {
		if filter.From != nil && event.EndDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && event.StartDate.After(*filter.To) {
			continue
		}
		if filter.AllDay != nil && event.AllDay != *filter.AllDay {
			continue
		}
		if filter.Search != nil && !matchesSearch(&event, *filter.Search) {
			continue
		}
		clone := cloneEvent(event)
		out = append(out, &clone)
	}
	return out
}

func matchesSearch(event *entities.Event, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(event.Title), q) {
		return true
	}
	if event.Description != nil && strings.Contains(strings.ToLower(*event.Description), q) {
		return true
	}
	if event.Location != nil && strings.Contains(strings.ToLower(*event.Location), q) {
		return true
	}
	return false
}

func sortEvents(events []*entities.Event, sortBy, sortOrder string) {
	less := func(a, b *entities.Event) bool {
		switch sortBy {
		case "title":
			return a.Title < b.Title
		case "updated_at":
			return a.UpdatedAt.Before(b.UpdatedAt)
		default:
			if a.StartDate.Equal(b.StartDate) {
				return a.Title < b.Title
			}
			return a.StartDate.Before(b.StartDate)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if sortOrder == "desc" {
			return less(events[j], events[i])
		}
		return less(events[i], events[j])
	})
}

func paginate(events []*entities.Event, limit, offset int) []*entities.Event {
	if offset > 0 {
		if offset >= len(events) {
			return nil
		}
		events = events[offset:]
	}
	if limit > 0 && limit < len(events) {
		events = events[:limit]
	}
	return events
}

// cloneEvent deep-copies the slices and pointer fields an event carries.
func cloneEvent(event entities.Event) entities.Event {
	out := event
	out.Description = clonePtr(event.Description)
	out.Location = clonePtr(event.Location)
	out.Image = clonePtr(event.Image)
	out.Reminder = clonePtr(event.Reminder)
	if event.Recurring != nil {
		rule := *event.Recurring
		rule.EndDate = clonePtr(event.Recurring.EndDate)
		rule.Occurrences = clonePtr(event.Recurring.Occurrences)
		rule.DaysOfWeek = append([]int(nil), event.Recurring.DaysOfWeek...)
		out.Recurring = &rule
	}
	if event.Attachments != nil {
		out.Attachments = make([]entities.Attachment, len(event.Attachments))
		for i, att := range event.Attachments {
			att.ThumbnailURL = clonePtr(att.ThumbnailURL)
			att.Size = clonePtr(att.Size)
			out.Attachments[i] = att
		}
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
