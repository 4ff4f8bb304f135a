package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/daybook/core/internal/adapters/ical"
	"github.com/daybook/core/internal/adapters/repository"
	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/domain/layout"
	"github.com/daybook/core/internal/infrastructure/logger"
	"github.com/daybook/core/internal/ports"
)

func newEventFixture(t *testing.T) *EventService {
	t.Helper()
	repo := repository.NewEventRepository()
	return NewEventService(repo, ical.NewExporter("Daybook", "test"), layout.DefaultGridParams(), logger.Nop())
}

func TestCreateEventValidatesRange(t *testing.T) {
	svc := newEventFixture(t)

	_, err := svc.CreateEvent(context.Background(), ports.CreateEventRequest{
		Title:     "Backwards",
		StartDate: calAt(calDay, 11, 0),
		EndDate:   calAt(calDay, 10, 0),
	})
	if err != entities.ErrInvalidEventRange {
		t.Fatalf("err = %v, want ErrInvalidEventRange", err)
	}
}

func TestUpdateEventPartial(t *testing.T) {
	svc := newEventFixture(t)

	created, err := svc.CreateEvent(context.Background(), ports.CreateEventRequest{
		Title:     "Dentist",
		StartDate: calAt(calDay, 14, 0),
		EndDate:   calAt(calDay, 15, 0),
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	title := "Dentist Appointment"
	color := "bg-red-500/70"
	updated, err := svc.UpdateEvent(context.Background(), created.ID, ports.UpdateEventRequest{
		Title: &title,
		Color: &color,
	})
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}

	if updated.Title != title || updated.Color != color {
		t.Errorf("update not applied: %+v", updated)
	}
	if !updated.StartDate.Equal(created.StartDate) {
		t.Errorf("StartDate changed by unrelated update")
	}
}

func TestUpdateEventRejectsInvertedRange(t *testing.T) {
	svc := newEventFixture(t)

	created, err := svc.CreateEvent(context.Background(), ports.CreateEventRequest{
		Title:     "Gym",
		StartDate: calAt(calDay, 7, 0),
		EndDate:   calAt(calDay, 8, 0),
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	badEnd := calAt(calDay, 6, 0)
	if _, err := svc.UpdateEvent(context.Background(), created.ID, ports.UpdateEventRequest{EndDate: &badEnd}); err == nil {
		t.Fatal("expected range validation error")
	}
}

func TestRescheduleEventShiftsBothTimestamps(t *testing.T) {
	svc := newEventFixture(t)

	created, err := svc.CreateEvent(context.Background(), ports.CreateEventRequest{
		Title:     "Meeting",
		StartDate: calAt(calDay, 14, 0),
		EndDate:   calAt(calDay, 15, 30),
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	// 160px at 80px per hour is a two hour shift.
	moved, err := svc.RescheduleEvent(context.Background(), created.ID, ports.RescheduleRequest{DeltaY: 160, HourHeight: 80})
	if err != nil {
		t.Fatalf("RescheduleEvent: %v", err)
	}

	if !moved.StartDate.Equal(calAt(calDay, 16, 0)) {
		t.Errorf("StartDate = %v, want 16:00", moved.StartDate)
	}
	if moved.Duration() != 90*time.Minute {
		t.Errorf("Duration = %v, want 90m", moved.Duration())
	}

	stored, err := svc.GetEvent(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if !stored.StartDate.Equal(moved.StartDate) {
		t.Errorf("reschedule not persisted")
	}
}

func TestRescheduleEventAcrossDays(t *testing.T) {
	svc := newEventFixture(t)

	created, err := svc.CreateEvent(context.Background(), ports.CreateEventRequest{
		Title:     "Brunch",
		StartDate: calAt(calDay, 11, 0),
		EndDate:   calAt(calDay, 12, 30),
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	// calDay is a Thursday, so column 5 of its Monday-start week is Saturday.
	saturday := calDay.AddDate(0, 0, 2)
	dayIndex := 5
	moved, err := svc.RescheduleEvent(context.Background(), created.ID, ports.RescheduleRequest{DayIndex: &dayIndex, WeekDate: &calDay})
	if err != nil {
		t.Fatalf("RescheduleEvent: %v", err)
	}

	if !moved.StartDate.Equal(calAt(saturday, 11, 0)) {
		t.Errorf("StartDate = %v, want Saturday 11:00", moved.StartDate)
	}
	if moved.Duration() != 90*time.Minute {
		t.Errorf("Duration = %v, want 90m", moved.Duration())
	}
}

func TestRescheduleMissingEvent(t *testing.T) {
	svc := newEventFixture(t)
	_, err := svc.RescheduleEvent(context.Background(), uuid.New(), ports.RescheduleRequest{DeltaY: 40})
	if err != entities.ErrEventNotFound {
		t.Fatalf("err = %v, want ErrEventNotFound", err)
	}
}

func TestExportICS(t *testing.T) {
	svc := newEventFixture(t)

	if _, err := svc.CreateEvent(context.Background(), ports.CreateEventRequest{
		Title:     "Team Meeting",
		StartDate: calAt(calDay, 10, 0),
		EndDate:   calAt(calDay, 11, 0),
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	data, err := svc.ExportICS(context.Background(), ports.EventFilter{})
	if err != nil {
		t.Fatalf("ExportICS: %v", err)
	}

	ics := string(data)
	if !strings.Contains(ics, "BEGIN:VCALENDAR") {
		t.Error("missing VCALENDAR envelope")
	}
	if !strings.Contains(ics, "SUMMARY:Team Meeting") {
		t.Error("missing event summary")
	}
}
