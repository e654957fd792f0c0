package validator

import (
	"fmt"
	"shift-scheduler/metrics"
	"shift-scheduler/models"
	"shift-scheduler/scheduler"
	"strings"
	"time"
)

// Validate checks a snapshot of slots and returns a verdict with diagnostics.
//
// Rules run in order and the first failing rule ends the pass: an empty list,
// then incomplete slots, then repeated (day, start, end) keys. Agents assigned
// to more than one slot only produce warnings, never errors. Unknown agent ids
// are reported by id.
//
// Validate does not modify slots or agents and is safe for concurrent use.
func Validate(slots []models.ShiftSlot, agents models.Directory) models.ValidationResult {
	start := time.Now()
	defer func() {
		metrics.ValidationDurationSeconds.Observe(time.Since(start).Seconds())
	}()
	metrics.ValidationSlots.Set(float64(len(slots)))

	result := models.ValidationResult{
		Errors:   make([]string, 0),
		Warnings: make([]string, 0),
	}

	if len(slots) == 0 {
		return fail(result, "empty", []string{"no entries"})
	}

	if errs := checkComplete(slots); len(errs) > 0 {
		return fail(result, "incomplete", errs)
	}

	if errs := checkUnique(slots); len(errs) > 0 {
		return fail(result, "duplicate", errs)
	}

	result.Warnings = agentLoad(slots, agents)
	result.OK = true
	metrics.ValidationRunsTotal.WithLabelValues("ok").Inc()
	metrics.ValidationWarningsTotal.Add(float64(len(result.Warnings)))
	return result
}

func fail(result models.ValidationResult, rule string, errs []string) models.ValidationResult {
	result.OK = false
	result.Errors = errs
	metrics.ValidationRunsTotal.WithLabelValues("failed").Inc()
	metrics.ValidationErrorsTotal.WithLabelValues(rule).Add(float64(len(errs)))
	return result
}

func checkComplete(slots []models.ShiftSlot) []string {
	var errs []string
	for i, s := range slots {
		missing := s.Missing()
		if len(missing) == 0 {
			continue
		}
		errs = append(errs, fmt.Sprintf("slot %d (%s): missing %s", i+1, s.ID, strings.Join(missing, ", ")))
	}
	return errs
}

// checkUnique reports every slot whose key was already seen earlier in the list.
func checkUnique(slots []models.ShiftSlot) []string {
	var errs []string
	seen := make(map[string]bool, len(slots))
	for _, s := range slots {
		key := s.Key()
		if seen[key] {
			errs = append(errs, fmt.Sprintf("duplicate slot: %s %s - %s", s.Day.Short(), s.Start, s.End))
			continue
		}
		seen[key] = true
	}
	return errs
}

func agentLoad(slots []models.ShiftSlot, agents models.Directory) []string {
	warnings := make([]string, 0)
	for _, a := range scheduler.Assignments(slots) {
		if a.Count > 1 {
			warnings = append(warnings, fmt.Sprintf("agent %s is assigned to %d slots", agents.DisplayName(a.AgentID), a.Count))
		}
	}
	return warnings
}
