package layout

import (
	"math"
	"time"

	"github.com/daybook/core/internal/domain/entities"
)

// DragState is the rescheduler's two-state machine.
type DragState int

const (
	StateIdle DragState = iota
	StateDragging
)

// PointerPos is a pointer sample in grid-relative pixels.
type PointerPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Ghost is the visual-only preview of a drag in flight. DayIndex is the day
// column under the pointer, or -1 on a single-day grid.
type Ghost struct {
	Top      float64 `json:"top"`
	DayIndex int     `json:"day_index"`
}

// DragGrid describes the geometry the rescheduler needs to translate pointer
// movement into time. Days is empty on a single-day grid.
type DragGrid struct {
	HourHeight     float64
	GridLeft       float64
	DayColumnWidth float64
	Days           []time.Time
}

type dragSession struct {
	event        entities.Event
	startPointer PointerPos
	initialTop   float64
	overDayIndex int
}

// DragRescheduler turns pointer gestures on rendered events into
// duration-preserving reschedules. One session at a time; a pointer-down
// while a session is active is ignored. The updated event is handed to the
// onUpdate callback on release, never persisted here.
type DragRescheduler struct {
	grid     DragGrid
	onUpdate func(entities.Event)
	state    DragState
	session  *dragSession
}

// NewDragRescheduler wires the grid geometry and the commit callback.
// onUpdate may be nil when the caller consumes PointerUp's return value.
func NewDragRescheduler(grid DragGrid, onUpdate func(entities.Event)) *DragRescheduler {
	return &DragRescheduler{grid: grid, onUpdate: onUpdate}
}

// State returns the current machine state.
func (d *DragRescheduler) State() DragState {
	return d.state
}

// PointerDown starts a session over the given event. It is a no-op unless
// the grid is in edit mode, no session is active, and the grid geometry is
// usable.
func (d *DragRescheduler) PointerDown(ev entities.Event, pos PointerPos, elementTop float64, editMode bool) bool {
	if !editMode || d.state == StateDragging {
		return false
	}
	if d.grid.HourHeight <= 0 {
		// Missing geometry: abort non-fatally, event stands.
		return false
	}
	d.session = &dragSession{
		event:        ev,
		startPointer: pos,
		initialTop:   elementTop,
		overDayIndex: -1,
	}
	d.state = StateDragging
	return true
}

// PointerMove updates the ghost from the latest pointer sample. Only the
// most recent sample matters; intermediate positions are not queued.
func (d *DragRescheduler) PointerMove(pos PointerPos) (Ghost, bool) {
	if d.state != StateDragging {
		return Ghost{}, false
	}
	d.session.overDayIndex = d.dayIndexAt(pos.X)
	return Ghost{
		Top:      d.session.initialTop + (pos.Y - d.session.startPointer.Y),
		DayIndex: d.session.overDayIndex,
	}, true
}

// PointerUp commits the drag: the vertical delta becomes a minute shift that
// preserves the event's duration exactly, and a day-column change rewrites
// only the date components. The updated event is returned and passed to the
// onUpdate callback.
func (d *DragRescheduler) PointerUp(pos PointerPos) (entities.Event, bool) {
	if d.state != StateDragging {
		return entities.Event{}, false
	}
	session := d.session
	d.reset()

	deltaY := pos.Y - session.startPointer.Y
	minutesDelta := int(math.Round(deltaY * 60 / d.grid.HourHeight))

	var targetDay *time.Time
	if idx := d.dayIndexAt(pos.X); idx >= 0 {
		day := d.grid.Days[idx]
		if !sameDay(day, session.event.StartDate) {
			targetDay = &day
		}
	}

	updated := CommitDelta(session.event, minutesDelta, targetDay)
	if d.onUpdate != nil {
		d.onUpdate(updated)
	}
	return updated, true
}

// Cancel abandons the active session without emitting an update.
func (d *DragRescheduler) Cancel() {
	d.reset()
}

// Resize handles a grid resize during a drag. The session anchor is void
// once the grid geometry changes, so the drag is cancelled.
func (d *DragRescheduler) Resize(grid DragGrid) {
	d.grid = grid
	d.reset()
}

func (d *DragRescheduler) reset() {
	d.state = StateIdle
	d.session = nil
}

// dayIndexAt maps a pointer x offset to a day column, clamped to the valid
// range. Returns -1 on a single-day grid.
func (d *DragRescheduler) dayIndexAt(x float64) int {
	if len(d.grid.Days) == 0 || d.grid.DayColumnWidth <= 0 {
		return -1
	}
	idx := int(math.Floor((x - d.grid.GridLeft) / d.grid.DayColumnWidth))
	if idx < 0 {
		idx = 0
	}
	if idx > len(d.grid.Days)-1 {
		idx = len(d.grid.Days) - 1
	}
	return idx
}

// CommitDelta applies a reschedule: both timestamps shift by minutesDelta,
// then, when targetDay is set, their date components are replaced while the
// shifted time-of-day is kept. Duration is preserved exactly.
func CommitDelta(ev entities.Event, minutesDelta int, targetDay *time.Time) entities.Event {
	updated := ev
	updated.StartDate = ev.StartDate.Add(time.Duration(minutesDelta) * time.Minute)
	updated.EndDate = ev.EndDate.Add(time.Duration(minutesDelta) * time.Minute)

	if targetDay != nil {
		dayOffset := int(dayStart(updated.EndDate).Sub(dayStart(updated.StartDate)).Hours() / 24)
		updated.StartDate = onDay(updated.StartDate, *targetDay)
		updated.EndDate = onDay(updated.EndDate, targetDay.AddDate(0, 0, dayOffset))
	}
	return updated
}

// onDay rebuilds a timestamp with the date of day and its own time-of-day.
func onDay(t time.Time, day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
