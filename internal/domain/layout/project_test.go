package layout

import (
	"math"
	"testing"
	"time"

	"github.com/daybook/core/internal/domain/entities"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestProjectDayVertical(t *testing.T) {
	params := DefaultGridParams() // HourHeight 80, MinEventHeight 20

	tests := []struct {
		name       string
		startH     int
		startM     int
		endH       int
		endM       int
		window     TimeWindow
		wantTop    float64
		wantHeight float64
	}{
		{
			name:   "mid-morning event on the full window",
			startH: 9, startM: 0, endH: 10, endM: 30,
			window:  TimeWindow{0, 23},
			wantTop: 9 * 80, wantHeight: 1.5 * 80,
		},
		{
			name:   "minutes position with decimal precision",
			startH: 9, startM: 15, endH: 9, endM: 45,
			window:  TimeWindow{0, 23},
			wantTop: 9.25 * 80, wantHeight: 0.5 * 80,
		},
		{
			name:   "clipped to the window start",
			startH: 7, startM: 0, endH: 9, endM: 0,
			window:  TimeWindow{8, 18},
			wantTop: 0, wantHeight: 80,
		},
		{
			name:   "clipped to the full end hour",
			startH: 18, startM: 0, endH: 21, endM: 0,
			window:  TimeWindow{8, 18},
			wantTop: 10 * 80, wantHeight: 80, // visible up to 19:00
		},
		{
			name:   "zero duration floors at the minimum height",
			startH: 12, startM: 0, endH: 12, endM: 0,
			window:  TimeWindow{0, 23},
			wantTop: 12 * 80, wantHeight: 20,
		},
		{
			name:   "very short event floors at the minimum height",
			startH: 12, startM: 0, endH: 12, endM: 5,
			window:  TimeWindow{0, 23},
			wantTop: 12 * 80, wantHeight: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := timedEvent("ev", tt.startH, tt.startM, tt.endH, tt.endM)
			got := ProjectDay(ev, testDay, tt.window, 0, 1, params)
			if !almostEqual(got.Top, tt.wantTop) {
				t.Errorf("Top = %v, want %v", got.Top, tt.wantTop)
			}
			if !almostEqual(got.Height, tt.wantHeight) {
				t.Errorf("Height = %v, want %v", got.Height, tt.wantHeight)
			}
		})
	}
}

func TestProjectDayColumns(t *testing.T) {
	params := DefaultGridParams() // TimeColumnWidth 12, cap 3
	ev := timedEvent("ev", 9, 0, 10, 0)

	t.Run("single column spans the available width", func(t *testing.T) {
		got := ProjectDay(ev, testDay, FullDay(), 0, 1, params)
		if !almostEqual(got.Left, 12) {
			t.Errorf("Left = %v, want 12", got.Left)
		}
		if !almostEqual(got.Width, 88) {
			t.Errorf("Width = %v, want 88", got.Width)
		}
	})

	t.Run("two columns split the width", func(t *testing.T) {
		first := ProjectDay(ev, testDay, FullDay(), 0, 2, params)
		second := ProjectDay(ev, testDay, FullDay(), 1, 2, params)
		if !almostEqual(first.Left, 12) {
			t.Errorf("first Left = %v, want 12", first.Left)
		}
		if !almostEqual(second.Left, 12+44) {
			t.Errorf("second Left = %v, want 56", second.Left)
		}
		if !almostEqual(first.Width, 43) { // 44 minus the column gap
			t.Errorf("Width = %v, want 43", first.Width)
		}
	})

	t.Run("columns past the cap wrap around", func(t *testing.T) {
		capped := ProjectDay(ev, testDay, FullDay(), 3, 5, params)
		wrapped := ProjectDay(ev, testDay, FullDay(), 0, 5, params)
		if !almostEqual(capped.Left, wrapped.Left) {
			t.Errorf("column 3 of 5 Left = %v, want wrap to column 0's %v", capped.Left, wrapped.Left)
		}
		if capped.ZIndex <= wrapped.ZIndex {
			t.Errorf("wrapped column zIndex %d should stay above column 0's %d", capped.ZIndex, wrapped.ZIndex)
		}
	})

	t.Run("zIndex grows with the column index", func(t *testing.T) {
		prev := -1
		for col := 0; col < 4; col++ {
			g := ProjectDay(ev, testDay, FullDay(), col, 4, params)
			if g.ZIndex <= prev {
				t.Fatalf("zIndex not monotonic at column %d: %d <= %d", col, g.ZIndex, prev)
			}
			prev = g.ZIndex
		}
	})
}

func TestProjectDayGeometryBounds(t *testing.T) {
	params := DefaultGridParams()
	windows := []TimeWindow{{0, 23}, {8, 18}, {17, 23}, {4, 12}}
	events := []struct{ sh, sm, eh, em int }{
		{0, 0, 1, 0}, {7, 45, 8, 15}, {11, 0, 14, 30}, {18, 0, 19, 0}, {12, 0, 12, 0},
	}

	for _, w := range windows {
		for _, spec := range events {
			ev := timedEvent("ev", spec.sh, spec.sm, spec.eh, spec.em)
			if !InWindow(ev, w) {
				continue
			}
			g := ProjectDay(ev, testDay, w, 0, 1, params)
			if g.Top < 0 {
				t.Errorf("window %v event %+v: Top = %v < 0", w, spec, g.Top)
			}
			if g.Height < params.MinEventHeight {
				t.Errorf("window %v event %+v: Height = %v < floor", w, spec, g.Height)
			}
		}
	}
}

func TestProjectDayMultiDayClipping(t *testing.T) {
	params := DefaultGridParams()

	// Runs from the previous day 22:00 to 06:00 today.
	ev := timedEvent("overnight", 22, 0, 6, 0)
	ev.StartDate = ev.StartDate.AddDate(0, 0, -1)

	got := ProjectDay(ev, testDay, FullDay(), 0, 1, params)
	if !almostEqual(got.Top, 0) {
		t.Errorf("Top = %v, want 0 (clipped to midnight)", got.Top)
	}
	if !almostEqual(got.Height, 6*80) {
		t.Errorf("Height = %v, want %v", got.Height, 6*80)
	}

	// The same event on its first day renders from 22:00 to end of day.
	prevDay := testDay.AddDate(0, 0, -1)
	first := ProjectDay(ev, prevDay, FullDay(), 0, 1, params)
	if !almostEqual(first.Top, 22*80) {
		t.Errorf("first-day Top = %v, want %v", first.Top, 22*80)
	}
}

func TestProjectDayConstrainEvents(t *testing.T) {
	params := DefaultGridParams()
	params.ConstrainEvents = true
	params.MaxTime = "17:00"

	ev := timedEvent("late", 15, 0, 20, 0)
	got := ProjectDay(ev, testDay, FullDay(), 0, 1, params)
	if !almostEqual(got.Height, 2*80) {
		t.Errorf("Height = %v, want %v (end clipped to 17:00)", got.Height, 2*80)
	}
}

func TestProjectDayDegenerateEvent(t *testing.T) {
	params := DefaultGridParams()

	// end < start violates the upstream invariant; the projector clamps to
	// the floor instead of failing.
	ev := timedEvent("broken", 14, 0, 13, 0)
	got := ProjectDay(ev, testDay, FullDay(), 0, 1, params)
	if !almostEqual(got.Height, params.MinEventHeight) {
		t.Errorf("Height = %v, want floor %v", got.Height, params.MinEventHeight)
	}
}

func TestProjectWeekColumns(t *testing.T) {
	params := DefaultGridParams()
	params.TimeColumnWidth = 5
	ev := timedEvent("ev", 9, 0, 10, 0)
	dayColWidth := (100 - 5.0) / 7

	t.Run("day column offset", func(t *testing.T) {
		for dayIndex := 0; dayIndex < 7; dayIndex++ {
			g := ProjectWeek(ev, testDay, dayIndex, FullDay(), 0, 1, params)
			wantLeft := 5 + float64(dayIndex)*dayColWidth
			if !almostEqual(g.Left, wantLeft) {
				t.Errorf("day %d Left = %v, want %v", dayIndex, g.Left, wantLeft)
			}
		}
	})

	t.Run("overlap shrinks the width inside the day column", func(t *testing.T) {
		alone := ProjectWeek(ev, testDay, 2, FullDay(), 0, 1, params)
		crowded := ProjectWeek(ev, testDay, 2, FullDay(), 1, 3, params)
		if !almostEqual(alone.Width, dayColWidth*0.9) {
			t.Errorf("alone Width = %v, want %v", alone.Width, dayColWidth*0.9)
		}
		if !almostEqual(crowded.Width, dayColWidth/3*0.9) {
			t.Errorf("crowded Width = %v, want %v", crowded.Width, dayColWidth/3*0.9)
		}
		if !almostEqual(crowded.Left, alone.Left+crowded.Width) {
			t.Errorf("crowded Left = %v, want %v", crowded.Left, alone.Left+crowded.Width)
		}
	})

	t.Run("events never leave their day column", func(t *testing.T) {
		for col := 0; col < 6; col++ {
			g := ProjectWeek(ev, testDay, 3, FullDay(), col, 6, params)
			colStart := 5 + 3*dayColWidth
			if g.Left < colStart-1e-9 || g.Left+g.Width > colStart+dayColWidth+1e-9 {
				t.Errorf("column %d: box [%v, %v] outside day column [%v, %v]",
					col, g.Left, g.Left+g.Width, colStart, colStart+dayColWidth)
			}
		}
	})
}

func TestCurrentTimePosition(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		window TimeWindow
		want   float64
	}{
		{
			name:   "inside window",
			now:    time.Date(2025, 4, 3, 10, 30, 0, 0, time.Local),
			window: TimeWindow{8, 18},
			want:   2.5 * 60,
		},
		{
			name:   "before window",
			now:    time.Date(2025, 4, 3, 6, 0, 0, 0, time.Local),
			window: TimeWindow{8, 18},
			want:   -1,
		},
		{
			name:   "after window",
			now:    time.Date(2025, 4, 3, 20, 0, 0, 0, time.Local),
			window: TimeWindow{8, 18},
			want:   -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentTimePosition(tt.now, tt.window, 60); !almostEqual(got, tt.want) {
				t.Errorf("CurrentTimePosition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVisibleHours(t *testing.T) {
	w := TimeWindow{8, 12}

	params := DefaultGridParams()
	all := VisibleHours(w, nil, params)
	if len(all) != 5 {
		t.Fatalf("VisibleHours() without HideEmptyRows = %v", all)
	}

	params.HideEmptyRows = true
	ev := timedEvent("ev", 9, 30, 11, 0)
	occupied := VisibleHours(w, []entities.Event{ev}, params)
	want := []int{9, 10}
	if len(occupied) != len(want) {
		t.Fatalf("VisibleHours() = %v, want %v", occupied, want)
	}
	for i := range want {
		if occupied[i] != want[i] {
			t.Errorf("VisibleHours()[%d] = %d, want %d", i, occupied[i], want[i])
		}
	}
}

func TestStartOfWeek(t *testing.T) {
	// 2025-04-03 is a Thursday.
	tests := []struct {
		weekStartsOn time.Weekday
		wantDay      int
	}{
		{time.Monday, 31},  // Monday March 31
		{time.Sunday, 30},  // Sunday March 30
		{time.Thursday, 3}, // the day itself
	}

	for _, tt := range tests {
		got := StartOfWeek(testDay, tt.weekStartsOn)
		if got.Day() != tt.wantDay {
			t.Errorf("StartOfWeek(weekStartsOn=%v) = %v, want day %d", tt.weekStartsOn, got, tt.wantDay)
		}
		if got.Hour() != 0 || got.Minute() != 0 {
			t.Errorf("StartOfWeek() not at midnight: %v", got)
		}
	}

	days := WeekDays(testDay, time.Monday)
	if len(days) != 7 {
		t.Fatalf("WeekDays() returned %d days", len(days))
	}
	if days[0].Weekday() != time.Monday || days[6].Weekday() != time.Sunday {
		t.Errorf("WeekDays() = %v .. %v", days[0].Weekday(), days[6].Weekday())
	}
}
