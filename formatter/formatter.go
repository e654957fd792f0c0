package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"shift-scheduler/models"
	"shift-scheduler/scheduler"
	"strings"
)

// Unassigned is shown in place of an agent name for slots with no agent.
const Unassigned = "unassigned"

// Unscheduled labels the group of slots that have no recognised weekday.
const Unscheduled = "unscheduled"

// Report holds everything a formatter renders: the week and the validation verdict.
type Report struct {
	Slots  []models.ShiftSlot
	Agents models.Directory
	Result *models.ValidationResult
}

// WeekData holds prepared schedule data used by all formatters
type WeekData struct {
	Days        []DayData                `json:"days"`
	Unscheduled []EntryData              `json:"unscheduled,omitempty"`
	Result      *models.ValidationResult `json:"result,omitempty"`
}

// DayData lists the entries of one weekday in start order
type DayData struct {
	Day     models.Day  `json:"day"`
	Entries []EntryData `json:"entries"`
}

// EntryData is a slot with its agent resolved for display
type EntryData struct {
	ID        string `json:"id"`
	Order     int    `json:"order"`
	Day       string `json:"day,omitempty"` // raw day, unscheduled entries only
	Start     string `json:"start"`
	End       string `json:"end"`
	AgentID   string `json:"agent_id,omitempty"`
	AgentName string `json:"agent_name"`
}

// prepareWeekData sorts the slots and groups them by day for formatting
func prepareWeekData(report Report) *WeekData {
	sorted := scheduler.Sort(report.Slots)
	byDay := scheduler.ByDay(sorted)

	days := make([]DayData, len(models.Days))
	for i, day := range models.Days {
		entries := make([]EntryData, 0, len(byDay[day]))
		for _, s := range byDay[day] {
			entries = append(entries, newEntry(report.Agents, s))
		}
		days[i] = DayData{Day: day, Entries: entries}
	}

	var unscheduled []EntryData
	for _, s := range scheduler.Unscheduled(sorted) {
		e := newEntry(report.Agents, s)
		e.Day = string(s.Day)
		unscheduled = append(unscheduled, e)
	}

	return &WeekData{Days: days, Unscheduled: unscheduled, Result: report.Result}
}

func newEntry(agents models.Directory, s models.ShiftSlot) EntryData {
	return EntryData{
		ID:        s.ID,
		Order:     s.Order,
		Start:     string(s.Start),
		End:       string(s.End),
		AgentID:   s.AgentID,
		AgentName: agentName(agents, s.AgentID),
	}
}

// FormatText returns the text representation of the week and verdict
func FormatText(report Report) string {
	data := prepareWeekData(report)
	var sb strings.Builder

	for _, day := range data.Days {
		sb.WriteString(formatTextLine(day))
		sb.WriteString("\n")
	}
	if len(data.Unscheduled) > 0 {
		sb.WriteString(formatUnscheduledText(data.Unscheduled))
		sb.WriteString("\n")
	}

	if data.Result != nil {
		sb.WriteString(formatResultText(*data.Result))
	}

	return sb.String()
}

// FormatJSON returns the JSON representation of the week and verdict
func FormatJSON(report Report) string {
	data := prepareWeekData(report)
	jsonBytes, _ := json.MarshalIndent(data, "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the CSV representation of the week. Diagnostics are
// appended as "error" and "warning" rows.
func FormatCSV(report Report) string {
	data := prepareWeekData(report)
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	writer.Write([]string{"Order", "Day", "Start", "End", "Agent ID", "Agent"})

	for _, day := range data.Days {
		for _, e := range day.Entries {
			writer.Write([]string{
				fmt.Sprintf("%d", e.Order), string(day.Day), e.Start, e.End, e.AgentID, e.AgentName,
			})
		}
	}
	for _, e := range data.Unscheduled {
		writer.Write([]string{
			fmt.Sprintf("%d", e.Order), e.Day, e.Start, e.End, e.AgentID, e.AgentName,
		})
	}

	if data.Result != nil {
		for _, msg := range data.Result.Errors {
			writer.Write([]string{"error", msg})
		}
		for _, msg := range data.Result.Warnings {
			writer.Write([]string{"warning", msg})
		}
	}

	writer.Flush()
	return sb.String()
}

// formatTextLine formats a single day line for text output
func formatTextLine(day DayData) string {
	if len(day.Entries) == 0 {
		return fmt.Sprintf("%-9s : none", day.Day)
	}

	parts := make([]string, 0, len(day.Entries))
	for _, e := range day.Entries {
		parts = append(parts, fmt.Sprintf("%s - %s %s", e.Start, e.End, e.AgentName))
	}
	return fmt.Sprintf("%-9s : %s", day.Day, strings.Join(parts, "; "))
}

// formatUnscheduledText lists slots without a weekday, prefixed by their raw day if any
func formatUnscheduledText(entries []EntryData) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		part := fmt.Sprintf("%s - %s %s", e.Start, e.End, e.AgentName)
		if e.Day != "" {
			part = e.Day + " " + part
		}
		parts = append(parts, part)
	}
	return fmt.Sprintf("%-9s : %s", Unscheduled, strings.Join(parts, "; "))
}

func formatResultText(result models.ValidationResult) string {
	var sb strings.Builder
	if result.OK {
		sb.WriteString("\nValidation passed\n")
	} else {
		sb.WriteString("\nValidation failed\n")
	}
	for _, msg := range result.Errors {
		sb.WriteString(fmt.Sprintf("  ✖ %s\n", msg))
	}
	for _, msg := range result.Warnings {
		sb.WriteString(fmt.Sprintf("  ⚠️  %s\n", msg))
	}
	return sb.String()
}

func agentName(agents models.Directory, id string) string {
	if id == "" {
		return Unassigned
	}
	return agents.DisplayName(id)
}
