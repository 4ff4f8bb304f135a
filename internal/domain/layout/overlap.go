package layout

import (
	"sort"

	"github.com/daybook/core/internal/domain/entities"
)

// GroupOverlapping partitions timed events into chains of overlapping
// neighbors. Events are sorted by start time and each event is compared to
// the immediately preceding event in sort order only: it joins the current
// group when it starts before that predecessor ends, otherwise it opens a
// new group.
//
// This is deliberately chain linking, not interval-graph coloring: A(0-1),
// B(0:30-2) and C(1:30-3) form one group of three even though A and C never
// overlap. Column widths divide by the group size, so the grouping and the
// projection stay keyed to each other.
//
// An event's column index is its position within its group.
func GroupOverlapping(events []entities.Event) []OverlapGroup {
	if len(events) == 0 {
		return nil
	}

	sorted := make([]entities.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})

	var groups []OverlapGroup
	current := []entities.Event{sorted[0]}

	for i := 1; i < len(sorted); i++ {
		ev := sorted[i]
		prev := sorted[i-1]
		if ev.StartDate.Before(prev.EndDate) {
			current = append(current, ev)
			continue
		}
		groups = append(groups, OverlapGroup{Events: current, MaxOverlap: len(current)})
		current = []entities.Event{ev}
	}

	groups = append(groups, OverlapGroup{Events: current, MaxOverlap: len(current)})
	return groups
}
