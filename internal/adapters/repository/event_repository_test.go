package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/ports"
)

func newEvent(title string, start, end time.Time) *entities.Event {
	return &entities.Event{Title: title, StartDate: start, EndDate: end}
}

func at(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.Local)
}

var day = time.Date(2025, 4, 3, 0, 0, 0, 0, time.Local)

func TestEventRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository()

	ev := newEvent("Standup", at(day, 9), at(day, 10))
	if err := repo.Create(ctx, ev); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if ev.ID == uuid.Nil {
		t.Fatal("Create() did not assign an id")
	}
	if ev.CreatedAt.IsZero() || ev.UpdatedAt.IsZero() {
		t.Error("Create() did not stamp timestamps")
	}

	got, err := repo.GetByID(ctx, ev.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Standup" {
		t.Errorf("Title = %q", got.Title)
	}

	got.Title = "Renamed"
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	again, _ := repo.GetByID(ctx, ev.ID)
	if again.Title != "Renamed" {
		t.Errorf("Title after update = %q", again.Title)
	}
	if !again.CreatedAt.Equal(got.CreatedAt) {
		t.Error("Update() changed CreatedAt")
	}

	if err := repo.Delete(ctx, ev.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, ev.ID); !errors.Is(err, entities.ErrEventNotFound) {
		t.Errorf("GetByID() after delete error = %v, want not found", err)
	}
	if err := repo.Delete(ctx, ev.ID); !errors.Is(err, entities.ErrEventNotFound) {
		t.Errorf("second Delete() error = %v, want not found", err)
	}
}

func TestEventRepositoryRejectsInvalidRange(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository()

	ev := newEvent("Backwards", at(day, 12), at(day, 10))
	if err := repo.Create(ctx, ev); !errors.Is(err, entities.ErrInvalidEventRange) {
		t.Errorf("Create() error = %v, want invalid range", err)
	}
}

func TestEventRepositoryIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository()

	loc := "office"
	ev := newEvent("Standup", at(day, 9), at(day, 10))
	ev.Location = &loc
	if err := repo.Create(ctx, ev); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Mutating the caller's copy must not leak into the store.
	*ev.Location = "home"
	ev.Title = "changed outside"

	got, _ := repo.GetByID(ctx, ev.ID)
	if got.Title != "Standup" || *got.Location != "office" {
		t.Errorf("store leaked caller mutations: %q at %q", got.Title, *got.Location)
	}

	// And mutating a fetched copy must not change the store either.
	*got.Location = "park"
	fresh, _ := repo.GetByID(ctx, ev.ID)
	if *fresh.Location != "office" {
		t.Errorf("store leaked reader mutations: %q", *fresh.Location)
	}
}

func TestEventRepositoryListFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository()

	seed := []*entities.Event{
		newEvent("Standup", at(day, 9), at(day, 10)),
		newEvent("Lunch with Sam", at(day, 12), at(day, 13)),
		newEvent("Dinner", at(day.AddDate(0, 0, 1), 19), at(day.AddDate(0, 0, 1), 20)),
	}
	for _, ev := range seed {
		if err := repo.Create(ctx, ev); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	t.Run("range", func(t *testing.T) {
		got, err := repo.GetByRange(ctx, at(day, 0), at(day, 23))
		if err != nil {
			t.Fatalf("GetByRange() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("GetByRange() returned %d events, want 2", len(got))
		}
		if got[0].Title != "Standup" || got[1].Title != "Lunch with Sam" {
			t.Errorf("order = %q, %q", got[0].Title, got[1].Title)
		}
	})

	t.Run("search", func(t *testing.T) {
		q := "sam"
		got, err := repo.List(ctx, ports.EventFilter{Search: &q})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(got) != 1 || got[0].Title != "Lunch with Sam" {
			t.Errorf("List(search) = %d events", len(got))
		}
	})

	t.Run("pagination", func(t *testing.T) {
		got, err := repo.List(ctx, ports.EventFilter{SortBy: "start_date", Limit: 1, Offset: 1})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(got) != 1 || got[0].Title != "Lunch with Sam" {
			t.Errorf("List(limit/offset) = %v", len(got))
		}
		count, _ := repo.Count(ctx, ports.EventFilter{})
		if count != 3 {
			t.Errorf("Count() = %d, want 3", count)
		}
	})
}

func TestEventRepositoryReplaceAll(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository()

	old := newEvent("Old", at(day, 9), at(day, 10))
	if err := repo.Create(ctx, old); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	next := []*entities.Event{
		newEvent("A", at(day, 8), at(day, 9)),
		newEvent("B", at(day, 10), at(day, 11)),
	}
	if err := repo.ReplaceAll(ctx, next); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	if _, err := repo.GetByID(ctx, old.ID); !errors.Is(err, entities.ErrEventNotFound) {
		t.Error("ReplaceAll() kept a previous event")
	}
	count, _ := repo.Count(ctx, ports.EventFilter{})
	if count != 2 {
		t.Errorf("Count() = %d after replace, want 2", count)
	}
}
