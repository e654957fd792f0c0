package scheduler

import (
	"shift-scheduler/models"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// tempPrefix marks ids of slots created locally that the backend has not stored yet.
const tempPrefix = "tmp-"

// Assignment is the number of slots held by one agent.
type Assignment struct {
	AgentID string
	Count   int
}

// Sort returns a copy of slots ordered by day, then by start label, with Order
// renumbered from 1. Slots with an unknown or absent day or start sort after the
// known ones; ties keep their input order.
func Sort(slots []models.ShiftSlot) []models.ShiftSlot {
	sorted := make([]models.ShiftSlot, len(slots))
	copy(sorted, slots)

	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := ordinal(sorted[i].Day.Index()), ordinal(sorted[j].Day.Index())
		if di != dj {
			return di < dj
		}
		return ordinal(sorted[i].Start.Index()) < ordinal(sorted[j].Start.Index())
	})

	for i := range sorted {
		sorted[i].Order = i + 1
	}
	return sorted
}

// ordinal pushes unknown (-1) indexes past every real position.
func ordinal(idx int) int {
	if idx < 0 {
		return len(models.HourLabels)
	}
	return idx
}

// NewSlot returns a blank slot with a temporary id at the given position.
func NewSlot(order int) models.ShiftSlot {
	return models.ShiftSlot{
		ID:    tempPrefix + uuid.NewString(),
		Order: order,
	}
}

// IsTemporary reports whether id was issued by NewSlot.
func IsTemporary(id string) bool {
	return strings.HasPrefix(id, tempPrefix)
}

// NextOrder returns the position for a slot appended to slots.
func NextOrder(slots []models.ShiftSlot) int {
	next := 1
	for _, s := range slots {
		if s.Order >= next {
			next = s.Order + 1
		}
	}
	return next
}

// Assignments counts slots per agent, in order of each agent's first appearance.
// Slots without an agent are counted under the empty id.
func Assignments(slots []models.ShiftSlot) []Assignment {
	index := make(map[string]int)
	assignments := make([]Assignment, 0)
	for _, s := range slots {
		i, ok := index[s.AgentID]
		if !ok {
			i = len(assignments)
			index[s.AgentID] = i
			assignments = append(assignments, Assignment{AgentID: s.AgentID})
		}
		assignments[i].Count++
	}
	return assignments
}

// ByDay groups slots by weekday, keeping their relative order. Slots on an
// unknown or absent day are grouped under their raw value.
func ByDay(slots []models.ShiftSlot) map[models.Day][]models.ShiftSlot {
	days := make(map[models.Day][]models.ShiftSlot, len(models.Days))
	for _, s := range slots {
		days[s.Day] = append(days[s.Day], s)
	}
	return days
}

// Unscheduled returns the slots whose day is absent or not a weekday, in order.
func Unscheduled(slots []models.ShiftSlot) []models.ShiftSlot {
	var out []models.ShiftSlot
	for _, s := range slots {
		if s.Day.Index() < 0 {
			out = append(out, s)
		}
	}
	return out
}
