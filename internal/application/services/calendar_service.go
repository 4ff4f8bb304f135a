package services

import (
	"context"
	"fmt"
	"time"

	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/domain/layout"
	"github.com/daybook/core/internal/infrastructure/config"
	"github.com/daybook/core/internal/infrastructure/logger"
	"github.com/daybook/core/internal/ports"
)

// CalendarService assembles laid-out day and week grids from the event
// store. All geometry is computed server-side; clients only place boxes.
type CalendarService struct {
	eventRepo ports.EventRepository
	params    layout.GridParams
	logger    *logger.Logger
}

// NewCalendarService creates a new calendar service
func NewCalendarService(eventRepo ports.EventRepository, params layout.GridParams, logger *logger.Logger) *CalendarService {
	return &CalendarService{
		eventRepo: eventRepo,
		params:    params,
		logger:    logger,
	}
}

// GridParamsFromConfig converts the configured rendering parameters into
// layout terms.
func GridParamsFromConfig(cfg config.CalendarConfig) layout.GridParams {
	params := layout.DefaultGridParams()
	if cfg.HourHeight > 0 {
		params.HourHeight = cfg.HourHeight
	}
	if cfg.MinEventHeight > 0 {
		params.MinEventHeight = cfg.MinEventHeight
	}
	if cfg.TimeColumnWidth > 0 {
		params.TimeColumnWidth = cfg.TimeColumnWidth
	}
	if cfg.MaxVisibleColumns > 0 {
		params.MaxVisibleColumns = cfg.MaxVisibleColumns
	}
	if cfg.WeekStartsOn >= 0 && cfg.WeekStartsOn <= 6 {
		params.WeekStartsOn = time.Weekday(cfg.WeekStartsOn)
	}
	params.HideEmptyRows = cfg.HideEmptyRows
	params.ConstrainEvents = cfg.ConstrainEvents
	params.MinTime = cfg.MinTime
	params.MaxTime = cfg.MaxTime
	return params
}

// DayGrid lays out one day
func (s *CalendarService) DayGrid(ctx context.Context, req ports.DayGridRequest) (*ports.DayGridResponse, error) {
	window, err := resolveWindow(req.Window)
	if err != nil {
		return nil, err
	}

	dayEvents, err := s.eventsForDay(ctx, req.Date)
	if err != nil {
		return nil, err
	}

	set := layout.FilterDay(dayEvents, req.Date, window)
	positioned := s.projectDayColumns(set.Visible, req.Date, window)

	resp := &ports.DayGridResponse{
		Date:        req.Date,
		Window:      window,
		Hours:       layout.VisibleHours(window, set.Visible, s.params),
		AllDay:      eventPtrs(set.AllDay),
		Events:      positioned,
		HiddenCount: set.HiddenCount(),
		Warning:     layout.WarningText(set.HiddenCount()),
		NowPosition: s.nowPosition(req.Now, req.Date, window),
	}
	return resp, nil
}

// WeekGrid lays out the week containing the requested date
func (s *CalendarService) WeekGrid(ctx context.Context, req ports.WeekGridRequest) (*ports.WeekGridResponse, error) {
	window, err := resolveWindow(req.Window)
	if err != nil {
		return nil, err
	}

	days := layout.WeekDays(req.Date, s.params.WeekStartsOn)
	weekStart := days[0]
	weekEnd := days[6].Add(24*time.Hour - time.Second)

	stored, err := s.eventRepo.GetByRange(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load week events: %w", err)
	}
	all := eventValues(stored)

	resp := &ports.WeekGridResponse{
		Window: window,
		Days:   make([]ports.WeekGridDay, len(days)),
	}

	hidden := 0
	var visibleAcrossWeek []entities.Event
	for i, day := range days {
		dayEvents := layout.EventsForDay(all, day)
		set := layout.FilterDay(dayEvents, day, window)
		hidden += set.HiddenCount()
		visibleAcrossWeek = append(visibleAcrossWeek, set.Visible...)

		resp.Days[i] = ports.WeekGridDay{
			Date:   day,
			AllDay: eventPtrs(set.AllDay),
			Events: s.projectWeekColumns(set.Visible, day, i, window),
		}
	}

	resp.Hours = layout.VisibleHours(window, visibleAcrossWeek, s.params)
	resp.HiddenCount = hidden
	resp.Warning = layout.WarningText(hidden)
	if req.Now != nil {
		resp.NowPosition = layout.CurrentTimePosition(*req.Now, window, s.params.HourHeight)
	} else {
		resp.NowPosition = -1
	}
	return resp, nil
}

// ApplyWindow runs the interactive window selector: a preset applies
// atomically, typed hour text follows the live-apply rules and commits as a
// blur would.
func (s *CalendarService) ApplyWindow(ctx context.Context, req ports.WindowRequest) (*ports.WindowResponse, error) {
	current := layout.FullDay()
	if req.Current != nil {
		if !req.Current.Valid() {
			return nil, entities.ErrInvalidTimeWindow
		}
		current = *req.Current
	}

	dayEvents, err := s.eventsForDay(ctx, req.Date)
	if err != nil {
		return nil, err
	}

	controller := layout.NewTimeRangeController(current)

	var result layout.WindowResult
	switch {
	case req.Preset != nil:
		result, err = controller.SelectPreset(layout.Preset(*req.Preset), dayEvents)
		if err != nil {
			return nil, err
		}
	default:
		if req.Start != nil {
			controller.SetHourText(layout.FieldStart, *req.Start, dayEvents)
			result = controller.Blur(layout.FieldStart, dayEvents)
		}
		if req.End != nil {
			controller.SetHourText(layout.FieldEnd, *req.End, dayEvents)
			result = controller.Blur(layout.FieldEnd, dayEvents)
		}
		if req.Start == nil && req.End == nil {
			result = layout.WindowResult{
				Window:  controller.Window(),
				Hidden:  layout.HiddenEvents(dayEvents, controller.Window()),
				Warning: layout.WarningText(len(layout.HiddenEvents(dayEvents, controller.Window()))),
			}
		}
	}

	resp := &ports.WindowResponse{
		Window:      result.Window,
		HiddenCount: len(result.Hidden),
		Warning:     result.Warning,
	}
	for _, ev := range result.Hidden {
		resp.Hidden = append(resp.Hidden, ports.EventSummary{ID: ev.ID, Title: ev.Title})
	}
	return resp, nil
}

// eventsForDay loads the events touching the given calendar day.
func (s *CalendarService) eventsForDay(ctx context.Context, date time.Time) ([]entities.Event, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Second)

	stored, err := s.eventRepo.GetByRange(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load day events: %w", err)
	}
	return layout.EventsForDay(eventValues(stored), date), nil
}

// projectDayColumns positions a day's visible events: overlap groups become
// side-by-side columns, ordered by start time within the group.
func (s *CalendarService) projectDayColumns(visible []entities.Event, date time.Time, window layout.TimeWindow) []ports.PositionedEvent {
	out := make([]ports.PositionedEvent, 0, len(visible))
	for _, group := range layout.GroupOverlapping(visible) {
		for col, ev := range group.Events {
			ev := ev
			out = append(out, ports.PositionedEvent{
				Event:    &ev,
				Geometry: layout.ProjectDay(ev, date, window, col, group.MaxOverlap, s.params),
				Column:   col,
				Columns:  group.MaxOverlap,
			})
		}
	}
	return out
}

func (s *CalendarService) projectWeekColumns(visible []entities.Event, day time.Time, dayIndex int, window layout.TimeWindow) []ports.PositionedEvent {
	out := make([]ports.PositionedEvent, 0, len(visible))
	for _, group := range layout.GroupOverlapping(visible) {
		for col, ev := range group.Events {
			ev := ev
			out = append(out, ports.PositionedEvent{
				Event:    &ev,
				Geometry: layout.ProjectWeek(ev, day, dayIndex, window, col, group.MaxOverlap, s.params),
				Column:   col,
				Columns:  group.MaxOverlap,
				DayIndex: dayIndex,
			})
		}
	}
	return out
}

func (s *CalendarService) nowPosition(now *time.Time, date time.Time, window layout.TimeWindow) float64 {
	if now == nil {
		return -1
	}
	ny, nm, nd := now.Date()
	dy, dm, dd := date.Date()
	if ny != dy || nm != dm || nd != dd {
		return -1
	}
	return layout.CurrentTimePosition(*now, window, s.params.HourHeight)
}

func resolveWindow(w *layout.TimeWindow) (layout.TimeWindow, error) {
	if w == nil {
		return layout.FullDay(), nil
	}
	if !w.Valid() {
		return layout.TimeWindow{}, entities.ErrInvalidTimeWindow
	}
	return *w, nil
}

func eventValues(events []*entities.Event) []entities.Event {
	out := make([]entities.Event, len(events))
	for i, ev := range events {
		out[i] = *ev
	}
	return out
}

func eventPtrs(events []entities.Event) []*entities.Event {
	out := make([]*entities.Event, len(events))
	for i := range events {
		out[i] = &events[i]
	}
	return out
}
