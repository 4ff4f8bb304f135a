package layout

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/daybook/core/internal/domain/entities"
)

// TimeWindow is the visible hour range of a day or week grid. Both bounds
// are whole hours; the End hour itself is rendered in full, so the window
// [8,18] shows everything up to 19:00.
type TimeWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// FullDay is the default, unrestricted window.
func FullDay() TimeWindow {
	return TimeWindow{Start: 0, End: 23}
}

// Valid reports whether the window satisfies 0 <= Start <= End <= 23.
func (w TimeWindow) Valid() bool {
	return w.Start >= 0 && w.Start <= w.End && w.End <= 23
}

// Hours returns the hour markers of the window, first to last inclusive.
func (w TimeWindow) Hours() []int {
	hours := make([]int, 0, w.End-w.Start+1)
	for h := w.Start; h <= w.End; h++ {
		hours = append(hours, h)
	}
	return hours
}

// GridParams carries the rendering parameters of a time grid. Heights are
// pixels, horizontal measures are percentages of the grid width.
type GridParams struct {
	HourHeight        float64
	MinEventHeight    float64
	TimeColumnWidth   float64
	MaxVisibleColumns int
	WeekStartsOn      time.Weekday
	HideEmptyRows     bool
	ConstrainEvents   bool
	MinTime           string
	MaxTime           string
}

// DefaultGridParams mirrors the desktop rendering constants of the grid.
func DefaultGridParams() GridParams {
	return GridParams{
		HourHeight:        80,
		MinEventHeight:    20,
		TimeColumnWidth:   12,
		MaxVisibleColumns: 3,
		WeekStartsOn:      time.Monday,
	}
}

// Geometry is the positioned box of one event. Top and Height are pixels,
// Left and Width percentages.
type Geometry struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	ZIndex int     `json:"z_index"`
}

// VisibilitySet is the per-day partition of events for a window.
type VisibilitySet struct {
	AllDay  []entities.Event
	Visible []entities.Event
	Hidden  []entities.Event
}

// HiddenCount is the number used by the warning banner.
func (v VisibilitySet) HiddenCount() int {
	return len(v.Hidden)
}

// OverlapGroup is a maximal chain of start-sorted events where each member
// starts before its predecessor ends. MaxOverlap is the group's column count.
type OverlapGroup struct {
	Events     []entities.Event
	MaxOverlap int
}

// ParseClock parses an "HH:MM" string into a decimal hour.
func ParseClock(s string) (float64, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid clock hour %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid clock minute %q", s)
	}
	return float64(hour) + float64(minute)/60, nil
}

// hourDecimal converts a timestamp's time-of-day into decimal hours.
func hourDecimal(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}

// sameDay reports whether two timestamps fall on the same calendar day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// dayStart returns midnight of the timestamp's day.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dayEnd returns the last second of the timestamp's day.
func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
