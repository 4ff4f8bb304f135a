package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/daybook/core/internal/domain/entities"
)

// Preset names a predefined visible window.
type Preset string

const (
	PresetFull     Preset = "full"
	PresetBusiness Preset = "business"
	PresetEvening  Preset = "evening"
	PresetMorning  Preset = "morning"
)

// Window returns the hour range of the preset.
func (p Preset) Window() (TimeWindow, bool) {
	switch p {
	case PresetFull:
		return TimeWindow{0, 23}, true
	case PresetBusiness:
		return TimeWindow{8, 18}, true
	case PresetEvening:
		return TimeWindow{17, 23}, true
	case PresetMorning:
		return TimeWindow{4, 12}, true
	default:
		return TimeWindow{}, false
	}
}

// Field selects one of the two free-text hour inputs.
type Field int

const (
	FieldStart Field = iota
	FieldEnd
)

// WindowResult reports the outcome of a window change: the committed window,
// the events it hides, and the warning banner text (empty when nothing is
// hidden).
type WindowResult struct {
	Window  TimeWindow       `json:"window"`
	Hidden  []entities.Event `json:"hidden"`
	Warning string           `json:"warning,omitempty"`
}

// TimeRangeController owns the interactive visible-window selector: presets,
// free-text hour entry applied live only while valid, and blur-time reverts.
// The committed window always satisfies 0 <= Start <= End <= 23; only the
// uncommitted text may transiently violate it.
type TimeRangeController struct {
	window    TimeWindow
	startText string
	endText   string
}

// NewTimeRangeController starts at the given window, falling back to the
// full day when the window is malformed.
func NewTimeRangeController(initial TimeWindow) *TimeRangeController {
	if !initial.Valid() {
		initial = FullDay()
	}
	return &TimeRangeController{
		window:    initial,
		startText: strconv.Itoa(initial.Start),
		endText:   strconv.Itoa(initial.End),
	}
}

// Window returns the committed window.
func (c *TimeRangeController) Window() TimeWindow {
	return c.window
}

// StartText and EndText return the current input field contents.
func (c *TimeRangeController) StartText() string { return c.startText }
func (c *TimeRangeController) EndText() string   { return c.endText }

// ShowAllHours reports whether the committed window is the full day.
func (c *TimeRangeController) ShowAllHours() bool {
	return c.window == FullDay()
}

// SelectPreset sets the window atomically and recomputes the hidden set over
// the day's timed events.
func (c *TimeRangeController) SelectPreset(p Preset, dayEvents []entities.Event) (WindowResult, error) {
	w, ok := p.Window()
	if !ok {
		return WindowResult{}, fmt.Errorf("unknown time range preset %q", p)
	}
	c.commit(w)
	return c.result(dayEvents), nil
}

// SetHourText records a keystroke in one of the hour fields. The parsed
// value is applied to the committed window live only when it is an integer
// in [0,23] that keeps start <= end; otherwise the text is held but the
// window stands. The returned result reflects the committed window either
// way, applied reporting whether the keystroke changed it.
func (c *TimeRangeController) SetHourText(f Field, raw string, dayEvents []entities.Event) (result WindowResult, applied bool) {
	c.setText(f, raw)

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return c.result(dayEvents), false
	}
	hour, err := strconv.Atoi(trimmed)
	if err != nil || hour < 0 || hour > 23 {
		return c.result(dayEvents), false
	}

	next := c.window
	switch f {
	case FieldStart:
		if hour > c.window.End {
			return c.result(dayEvents), false
		}
		next.Start = hour
	case FieldEnd:
		if hour < c.window.Start {
			return c.result(dayEvents), false
		}
		next.End = hour
	}

	c.window = next
	return c.result(dayEvents), true
}

// Blur finalizes one of the hour fields: unparsable or out-of-range text
// reverts to the last committed value, valid text commits.
func (c *TimeRangeController) Blur(f Field, dayEvents []entities.Event) WindowResult {
	raw := strings.TrimSpace(c.text(f))
	hour, err := strconv.Atoi(raw)
	if err != nil {
		c.revert(f)
		return c.result(dayEvents)
	}

	switch f {
	case FieldStart:
		if hour < 0 || hour > 23 || hour > c.window.End {
			c.revert(f)
			return c.result(dayEvents)
		}
		c.window.Start = hour
	case FieldEnd:
		if hour < 0 || hour > 23 || hour < c.window.Start {
			c.revert(f)
			return c.result(dayEvents)
		}
		c.window.End = hour
	}

	c.setText(f, strconv.Itoa(hour))
	return c.result(dayEvents)
}

func (c *TimeRangeController) commit(w TimeWindow) {
	c.window = w
	c.startText = strconv.Itoa(w.Start)
	c.endText = strconv.Itoa(w.End)
}

func (c *TimeRangeController) result(dayEvents []entities.Event) WindowResult {
	hidden := HiddenEvents(dayEvents, c.window)
	return WindowResult{
		Window:  c.window,
		Hidden:  hidden,
		Warning: WarningText(len(hidden)),
	}
}

func (c *TimeRangeController) text(f Field) string {
	if f == FieldStart {
		return c.startText
	}
	return c.endText
}

func (c *TimeRangeController) setText(f Field, raw string) {
	if f == FieldStart {
		c.startText = raw
	} else {
		c.endText = raw
	}
}

func (c *TimeRangeController) revert(f Field) {
	if f == FieldStart {
		c.startText = strconv.Itoa(c.window.Start)
	} else {
		c.endText = strconv.Itoa(c.window.End)
	}
}

// WarningText renders the hidden-events banner, empty when count is zero.
func WarningText(count int) string {
	switch {
	case count == 0:
		return ""
	case count == 1:
		return "Warning: 1 event is outside the selected time range and is not visible."
	default:
		return fmt.Sprintf("Warning: %d events are outside the selected time range and are not visible.", count)
	}
}
