package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/daybook/core/internal/application/services"
	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/infrastructure/logger"
	"github.com/daybook/core/internal/ports"
)

// EventHandler handles calendar event requests
type EventHandler struct {
	eventService *services.EventService
	logger       *logger.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService, logger *logger.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		logger:       logger,
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create a calendar event
// @Tags events
// @Accept json
// @Produce json
// @Param request body ports.CreateEventRequest true "Event data"
// @Success 201 {object} entities.Event
// @Failure 400 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /events [post]
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req ports.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.eventService.CreateEvent(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Create event failed", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get event by ID
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} entities.Event
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /events/{id} [get]
func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	event, err := h.eventService.GetEvent(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Apply a partial update to an event
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body ports.UpdateEventRequest true "Fields to update"
// @Success 200 {object} entities.Event
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /events/{id} [put]
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req ports.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.eventService.UpdateEvent(c.Request().Context(), id, req)
	if err != nil {
		h.logger.Errorw("Update event failed", "error", err, "event_id", id)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} ports.MessageResponse
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.eventService.DeleteEvent(c.Request().Context(), id); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Event deleted"})
}

// ListEvents godoc
// @Summary List events
// @Description List events with optional range, search and pagination
// @Tags events
// @Produce json
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Param search query string false "Search in title, description and location"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} ports.PaginatedResponse[entities.Event]
// @Security BearerAuth
// @Router /events [get]
func (h *EventHandler) ListEvents(c echo.Context) error {
	filter, err := eventFilterFromQuery(c)
	if err != nil {
		return err
	}

	events, total, err := h.eventService.ListEvents(c.Request().Context(), filter)
	if err != nil {
		h.logger.Errorw("List events failed", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, ports.PaginatedResponse[*entities.Event]{
		Data:   events,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// RescheduleEvent godoc
// @Summary Reschedule an event
// @Description Commit a drag drop: the vertical pixel offset shifts the event in time and an optional week-view day index moves it to another day, preserving its duration
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body ports.RescheduleRequest true "Reschedule data"
// @Success 200 {object} entities.Event
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /events/{id}/reschedule [patch]
func (h *EventHandler) RescheduleEvent(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req ports.RescheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := h.eventService.RescheduleEvent(c.Request().Context(), id, req)
	if err != nil {
		h.logger.Errorw("Reschedule event failed", "error", err, "event_id", id)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, event)
}

// ExportICS godoc
// @Summary Export events as iCalendar
// @Description Download the filtered events as an .ics feed
// @Tags events
// @Produce text/calendar
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {string} string
// @Security BearerAuth
// @Router /events/export.ics [get]
func (h *EventHandler) ExportICS(c echo.Context) error {
	filter, err := eventFilterFromQuery(c)
	if err != nil {
		return err
	}

	data, err := h.eventService.ExportICS(c.Request().Context(), filter)
	if err != nil {
		h.logger.Errorw("Export events failed", "error", err)
		return httpError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="daybook.ics"`)
	return c.Blob(http.StatusOK, h.eventService.ExportContentType(), data)
}

func eventFilterFromQuery(c echo.Context) (ports.EventFilter, error) {
	filter := ports.EventFilter{
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: c.QueryParam("sort_order"),
	}
	if raw := c.QueryParam("search"); raw != "" {
		filter.Search = &raw
	}

	if raw := c.QueryParam("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid from parameter, expected YYYY-MM-DD")
		}
		filter.From = &from
	}
	if raw := c.QueryParam("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid to parameter, expected YYYY-MM-DD")
		}
		// Include the whole end day.
		end := to.Add(24*time.Hour - time.Second)
		filter.To = &end
	}

	limit, err := parseIntParam(c, "limit", 50)
	if err != nil {
		return filter, err
	}
	offset, err := parseIntParam(c, "offset", 0)
	if err != nil {
		return filter, err
	}
	filter.Limit = limit
	filter.Offset = offset
	return filter, nil
}
