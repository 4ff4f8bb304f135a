package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/daybook/core/internal/application/services"
	"github.com/daybook/core/internal/domain/layout"
	"github.com/daybook/core/internal/infrastructure/logger"
	"github.com/daybook/core/internal/ports"
)

// CalendarHandler serves the laid-out grid views
type CalendarHandler struct {
	calendarService *services.CalendarService
	logger          *logger.Logger
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(calendarService *services.CalendarService, logger *logger.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
		logger:          logger,
	}
}

// DayGrid godoc
// @Summary Get the day grid
// @Description Return one day's events with computed positions for the time grid
// @Tags calendar
// @Produce json
// @Param date query string true "Day (YYYY-MM-DD)"
// @Param start query int false "Visible window start hour (0-23)"
// @Param end query int false "Visible window end hour (0-23)"
// @Success 200 {object} ports.DayGridResponse
// @Failure 400 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /calendar/day [get]
func (h *CalendarHandler) DayGrid(c echo.Context) error {
	date, err := parseDateParam(c, "date")
	if err != nil {
		return err
	}
	window, err := windowFromQuery(c)
	if err != nil {
		return err
	}

	now := time.Now()
	resp, err := h.calendarService.DayGrid(c.Request().Context(), ports.DayGridRequest{
		Date:   date,
		Window: window,
		Now:    &now,
	})
	if err != nil {
		h.logger.Errorw("Day grid failed", "error", err, "date", date)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

// WeekGrid godoc
// @Summary Get the week grid
// @Description Return the week containing the given date, laid out per day
// @Tags calendar
// @Produce json
// @Param date query string true "Any day of the week (YYYY-MM-DD)"
// @Param start query int false "Visible window start hour (0-23)"
// @Param end query int false "Visible window end hour (0-23)"
// @Success 200 {object} ports.WeekGridResponse
// @Failure 400 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /calendar/week [get]
func (h *CalendarHandler) WeekGrid(c echo.Context) error {
	date, err := parseDateParam(c, "date")
	if err != nil {
		return err
	}
	window, err := windowFromQuery(c)
	if err != nil {
		return err
	}

	now := time.Now()
	resp, err := h.calendarService.WeekGrid(c.Request().Context(), ports.WeekGridRequest{
		Date:   date,
		Window: window,
		Now:    &now,
	})
	if err != nil {
		h.logger.Errorw("Week grid failed", "error", err, "date", date)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

// ApplyWindow godoc
// @Summary Change the visible time window
// @Description Apply a preset or typed hours to the visible window and report what the change hides
// @Tags calendar
// @Accept json
// @Produce json
// @Param request body ports.WindowRequest true "Window change"
// @Success 200 {object} ports.WindowResponse
// @Failure 400 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /calendar/window [post]
func (h *CalendarHandler) ApplyWindow(c echo.Context) error {
	var req ports.WindowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.calendarService.ApplyWindow(c.Request().Context(), req)
	if err != nil {
		h.logger.Warnw("Window change rejected", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

// windowFromQuery reads the optional start/end hour pair. Both must be given
// to override the default full-day window.
func windowFromQuery(c echo.Context) (*layout.TimeWindow, error) {
	if c.QueryParam("start") == "" && c.QueryParam("end") == "" {
		return nil, nil
	}
	start, err := parseIntParam(c, "start", 0)
	if err != nil {
		return nil, err
	}
	end, err := parseIntParam(c, "end", 23)
	if err != nil {
		return nil, err
	}
	return &layout.TimeWindow{Start: start, End: end}, nil
}
