// Package editor models a schedule editing session as an explicit state value.
//
// Every transition takes the current State and returns the next one; nothing is
// mutated in place, so callers can keep earlier states around (for example to
// render the previous screen while a request is in flight).
package editor

import (
	"fmt"
	"shift-scheduler/errors"
	"shift-scheduler/models"
	"shift-scheduler/scheduler"
	"shift-scheduler/validator"
	"slices"
)

// Phase is the position of a session in the edit lifecycle.
type Phase int

const (
	Idle Phase = iota
	Editing
	Validated
	Applied
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Validated:
		return "validated"
	case Applied:
		return "applied"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Field names accepted by Change.
const (
	FieldDay   = "day"
	FieldStart = "start"
	FieldEnd   = "end"
	FieldAgent = "agent"
)

// Mark is how a slot should be highlighted in a rendered schedule.
type Mark int

const (
	Unmarked Mark = iota
	Touched
	Saved
)

// State is a snapshot of an editing session.
type State struct {
	Phase Phase
	Slots []models.ShiftSlot
	// Result holds the outcome of the most recent validation pass, if any.
	Result *models.ValidationResult
	// Touched lists slot ids changed since the last apply.
	Touched []string
	// Applied lists slot ids written by the last apply.
	Applied []string
}

// Load starts editing a schedule fetched from the backend.
func Load(st State, slots []models.ShiftSlot) State {
	return State{
		Phase:   Editing,
		Slots:   scheduler.Sort(slots),
		Applied: slices.Clone(st.Applied),
	}
}

// CreateNew starts editing an empty schedule.
func CreateNew(State) State {
	return State{Phase: Editing, Slots: make([]models.ShiftSlot, 0)}
}

// AddEntry appends a blank slot. The new slot is incomplete until every field is set.
func AddEntry(st State) (State, models.ShiftSlot, error) {
	if st.Phase == Idle {
		return st, models.ShiftSlot{}, errors.ErrNotEditing
	}
	slot := scheduler.NewSlot(scheduler.NextOrder(st.Slots))
	next := st.edited()
	next.Slots = append(next.Slots, slot)
	return next, slot, nil
}

// Change sets one field of the slot with the given id. Changing the day or the
// start re-sorts the schedule. Any change invalidates a previous validation.
func Change(st State, id, field, value string) (State, error) {
	if st.Phase == Idle {
		return st, errors.ErrNotEditing
	}
	i := slices.IndexFunc(st.Slots, func(s models.ShiftSlot) bool { return s.ID == id })
	if i < 0 {
		return st, fmt.Errorf("%w: %s", errors.ErrUnknownSlot, id)
	}

	next := st.edited()
	slot := &next.Slots[i]
	switch field {
	case FieldDay:
		slot.Day = models.Day(value)
	case FieldStart:
		slot.Start = models.HourLabel(value)
	case FieldEnd:
		slot.End = models.HourLabel(value)
	case FieldAgent:
		slot.AgentID = value
	default:
		return st, fmt.Errorf("%w: %s", errors.ErrUnknownField, field)
	}
	if field == FieldDay || field == FieldStart {
		next.Slots = scheduler.Sort(next.Slots)
	}

	if !slices.Contains(next.Touched, id) {
		next.Touched = append(next.Touched, id)
	}
	next.Applied = slices.DeleteFunc(next.Applied, func(a string) bool { return a == id })
	return next, nil
}

// Validate runs a validation pass over the current slots. A passing result
// moves the session to Validated; a failing one leaves it in Editing.
func Validate(st State, agents models.Directory) (State, models.ValidationResult, error) {
	if st.Phase == Idle {
		return st, models.ValidationResult{}, errors.ErrNotEditing
	}
	result := validator.Validate(st.Slots, agents)

	next := st.clone()
	next.Result = &result
	next.Phase = Editing
	if result.OK {
		next.Phase = Validated
	}
	return next, result, nil
}

// Apply records that the validated slots were written to the backend.
func Apply(st State) (State, error) {
	if st.Phase != Validated {
		return st, errors.ErrNotValidated
	}
	next := st.clone()
	next.Phase = Applied
	next.Applied = next.Touched
	next.Touched = nil
	return next, nil
}

// Restore resumes editing with the slots reloaded after an undo on the backend.
func Restore(_ State, slots []models.ShiftSlot) State {
	return State{Phase: Editing, Slots: scheduler.Sort(slots)}
}

// Highlight reports how the slot with the given id should be rendered.
func Highlight(st State, id string) Mark {
	switch {
	case slices.Contains(st.Applied, id):
		return Saved
	case slices.Contains(st.Touched, id):
		return Touched
	default:
		return Unmarked
	}
}

// CanValidate reports whether a validation pass is allowed in this state.
func (st State) CanValidate() bool {
	return st.Phase != Idle
}

// CanApply reports whether the slots may be written to the backend.
func (st State) CanApply() bool {
	return st.Phase == Validated
}

// edited returns a copy of st in Editing with the previous result dropped.
func (st State) edited() State {
	next := st.clone()
	next.Phase = Editing
	next.Result = nil
	return next
}

func (st State) clone() State {
	next := st
	next.Slots = slices.Clone(st.Slots)
	next.Touched = slices.Clone(st.Touched)
	next.Applied = slices.Clone(st.Applied)
	return next
}
