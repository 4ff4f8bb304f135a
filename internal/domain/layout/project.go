package layout

import (
	"time"

	"github.com/daybook/core/internal/domain/entities"
)

const baseZIndex = 20

// ProjectDay computes the geometry of one event on a single-day grid.
// The event's range is clipped to the day, then to the window; the height
// never drops below MinEventHeight so degenerate events stay tappable.
func ProjectDay(ev entities.Event, day time.Time, w TimeWindow, columnIndex, columnCount int, p GridParams) Geometry {
	top, height := verticalExtent(ev, day, w, p)

	avail := 100 - p.TimeColumnWidth
	maxSide := sideColumns(columnCount, p)
	colWidth := avail / float64(maxSide)
	adjusted := columnIndex % maxSide

	width := colWidth
	if maxSide > 1 {
		width = colWidth - 1 // gap between columns
	}

	return Geometry{
		Top:    top,
		Height: height,
		Left:   p.TimeColumnWidth + float64(adjusted)*colWidth,
		Width:  width,
		ZIndex: baseZIndex + columnIndex,
	}
}

// ProjectWeek computes the geometry of one event inside the dayIndex-th
// column of a week grid. Vertical math matches ProjectDay; horizontally the
// event shares a single day column with its overlap group, capped at
// MaxVisibleColumns side by side with indexes wrapping past the cap.
func ProjectWeek(ev entities.Event, day time.Time, dayIndex int, w TimeWindow, columnIndex, columnCount int, p GridParams) Geometry {
	top, height := verticalExtent(ev, day, w, p)

	dayColWidth := (100 - p.TimeColumnWidth) / 7
	maxSide := sideColumns(columnCount, p)
	width := dayColWidth / float64(maxSide) * 0.9
	adjusted := columnIndex % maxSide

	return Geometry{
		Top:    top,
		Height: height,
		Left:   p.TimeColumnWidth + float64(dayIndex)*dayColWidth + float64(adjusted)*width,
		Width:  width,
		ZIndex: baseZIndex + columnIndex,
	}
}

// verticalExtent clips the event to the day and the window and converts the
// visible span into pixel top/height.
func verticalExtent(ev entities.Event, day time.Time, w TimeWindow, p GridParams) (top, height float64) {
	effStart := ev.StartDate
	if effStart.Before(dayStart(day)) {
		effStart = dayStart(day)
	}
	effEnd := ev.EndDate
	if effEnd.After(dayEnd(day)) {
		effEnd = dayEnd(day)
	}

	startDec := hourDecimal(effStart)
	endDec := hourDecimal(effEnd)

	if p.ConstrainEvents && p.MaxTime != "" {
		if maxDec, err := ParseClock(p.MaxTime); err == nil && endDec > maxDec {
			endDec = maxDec
		}
	}

	visibleStart := maxFloat(startDec, float64(w.Start))
	visibleEnd := minFloat(endDec, float64(w.End+1))

	top = (visibleStart - float64(w.Start)) * p.HourHeight
	height = maxFloat((visibleEnd-visibleStart)*p.HourHeight, p.MinEventHeight)
	return top, height
}

// sideColumns caps the number of side-by-side columns.
func sideColumns(columnCount int, p GridParams) int {
	limit := p.MaxVisibleColumns
	if limit < 1 {
		limit = 1
	}
	if columnCount < 1 {
		return 1
	}
	if columnCount > limit {
		return limit
	}
	return columnCount
}

// CurrentTimePosition returns the pixel offset of the "now" indicator, or -1
// when the current hour is outside the window.
func CurrentTimePosition(now time.Time, w TimeWindow, hourHeight float64) float64 {
	hour := now.Hour()
	if hour < w.Start || hour > w.End {
		return -1
	}
	return (float64(hour)-float64(w.Start))*hourHeight + float64(now.Minute())/60*hourHeight
}

// VisibleHours lists the hour rows to render. With HideEmptyRows set, hours
// that no visible event touches are suppressed.
func VisibleHours(w TimeWindow, visible []entities.Event, p GridParams) []int {
	hours := w.Hours()
	if !p.HideEmptyRows {
		return hours
	}

	occupied := make(map[int]bool)
	for _, ev := range visible {
		startDec := hourDecimal(ev.StartDate)
		endDec := hourDecimal(ev.EndDate)
		for h := w.Start; h <= w.End; h++ {
			if startDec < float64(h+1) && endDec > float64(h) {
				occupied[h] = true
			}
		}
	}

	var out []int
	for _, h := range hours {
		if occupied[h] {
			out = append(out, h)
		}
	}
	return out
}

// StartOfWeek returns midnight of the first day of the week containing t.
func StartOfWeek(t time.Time, weekStartsOn time.Weekday) time.Time {
	day := dayStart(t)
	diff := (int(day.Weekday()) - int(weekStartsOn) + 7) % 7
	return day.AddDate(0, 0, -diff)
}

// WeekDays returns the seven days of the week containing t.
func WeekDays(t time.Time, weekStartsOn time.Weekday) []time.Time {
	start := StartOfWeek(t, weekStartsOn)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
