package ical

import (
	"context"
	"fmt"
	"strings"

	ics "github.com/arran4/golang-ical"

	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/ports"
)

// Exporter renders events as an iCalendar (RFC 5545) feed. Stored
// recurrence descriptors are serialized as RRULEs; expansion is left to the
// consuming calendar application.
type Exporter struct {
	prodID string
}

// NewExporter creates an ICS exporter
func NewExporter(appName, version string) ports.EventExporter {
	return &Exporter{prodID: fmt.Sprintf("-//%s//%s//EN", appName, version)}
}

func (e *Exporter) ContentType() string {
	return "text/calendar; charset=utf-8"
}

func (e *Exporter) Export(ctx context.Context, events []*entities.Event) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(e.prodID)

	for _, event := range events {
		ve := cal.AddEvent(event.ID.String())
		ve.SetSummary(event.Title)
		ve.SetDtStampTime(event.UpdatedAt)

		if event.AllDay {
			ve.SetAllDayStartAt(event.StartDate)
			ve.SetAllDayEndAt(event.EndDate)
		} else {
			ve.SetStartAt(event.StartDate)
			ve.SetEndAt(event.EndDate)
		}

		if event.Description != nil {
			ve.SetDescription(*event.Description)
		}
		if event.Location != nil {
			ve.SetLocation(*event.Location)
		}
		if event.Color != "" {
			ve.SetColor(event.Color)
		}
		if rule := rruleFor(event.Recurring); rule != "" {
			ve.AddRrule(rule)
		}
	}

	return []byte(cal.Serialize()), nil
}

var icsWeekdays = [7]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// rruleFor serializes a stored recurrence descriptor into an RRULE value.
func rruleFor(rule *entities.RecurrenceRule) string {
	if rule == nil {
		return ""
	}

	parts := []string{"FREQ=" + strings.ToUpper(string(rule.Frequency))}
	if rule.Interval > 1 {
		parts = append(parts, fmt.Sprintf("INTERVAL=%d", rule.Interval))
	}
	if len(rule.DaysOfWeek) > 0 {
		days := make([]string, 0, len(rule.DaysOfWeek))
		for _, d := range rule.DaysOfWeek {
			if d >= 0 && d < len(icsWeekdays) {
				days = append(days, icsWeekdays[d])
			}
		}
		if len(days) > 0 {
			parts = append(parts, "BYDAY="+strings.Join(days, ","))
		}
	}
	if rule.EndDate != nil {
		parts = append(parts, "UNTIL="+rule.EndDate.UTC().Format("20060102T150405Z"))
	}
	if rule.Occurrences != nil && *rule.Occurrences > 0 {
		parts = append(parts, fmt.Sprintf("COUNT=%d", *rule.Occurrences))
	}
	return strings.Join(parts, ";")
}
