package formatter_test

import (
	"encoding/json"
	"shift-scheduler/formatter"
	"shift-scheduler/models"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var agents = models.NewDirectory([]models.Agent{
	{ID: "a1", DisplayName: "Alice"},
	{ID: "b2", DisplayName: "Bob"},
})

func week() []models.ShiftSlot {
	return []models.ShiftSlot{
		{ID: "s2", Day: models.Monday, Start: "01 PM", End: "06 PM", AgentID: "b2"},
		{ID: "s1", Day: models.Monday, Start: "09 AM", End: "01 PM", AgentID: "a1"},
		{ID: "s3", Day: models.Wednesday, Start: "09 AM", End: "06 PM"},
	}
}

func TestFormatText(t *testing.T) {
	tests := map[string]struct {
		report   formatter.Report
		contains []string
	}{
		"EmptyWeek": {
			report: formatter.Report{},
			contains: []string{
				"Monday    : none",
				"Sunday    : none",
			},
		},
		"SortedByStart": {
			report: formatter.Report{Slots: week(), Agents: agents},
			contains: []string{
				"Monday    : 09 AM - 01 PM Alice; 01 PM - 06 PM Bob",
				"Wednesday : 09 AM - 06 PM unassigned",
				"Tuesday   : none",
			},
		},
		"WithResult": {
			report: formatter.Report{
				Slots:  week(),
				Agents: agents,
				Result: &models.ValidationResult{
					OK:       false,
					Errors:   []string{"slot 3 (s3): missing agent"},
					Warnings: []string{},
				},
			},
			contains: []string{
				"Validation failed",
				"✖ slot 3 (s3): missing agent",
			},
		},
		"WithWarning": {
			report: formatter.Report{
				Result: &models.ValidationResult{OK: true, Warnings: []string{"agent Alice is assigned to 2 slots"}},
			},
			contains: []string{
				"Validation passed",
				"⚠️  agent Alice is assigned to 2 slots",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			output := formatter.FormatText(tt.report)
			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
		})
	}
}

func TestFormatText_DayOrder(t *testing.T) {
	output := formatter.FormatText(formatter.Report{})
	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 7)
	for i, day := range models.Days {
		assert.True(t, strings.HasPrefix(lines[i], string(day)), "line %d: %s", i, lines[i])
	}
}

func TestFormatJSON(t *testing.T) {
	output := formatter.FormatJSON(formatter.Report{
		Slots:  week(),
		Agents: agents,
		Result: &models.ValidationResult{OK: true, Errors: []string{}, Warnings: []string{}},
	})

	var data formatter.WeekData
	require.NoError(t, json.Unmarshal([]byte(output), &data))
	require.Len(t, data.Days, 7)

	monday := data.Days[0]
	assert.Equal(t, models.Monday, monday.Day)
	require.Len(t, monday.Entries, 2)
	assert.Equal(t, "s1", monday.Entries[0].ID)
	assert.Equal(t, "Alice", monday.Entries[0].AgentName)
	assert.Equal(t, 1, monday.Entries[0].Order)

	assert.Empty(t, data.Days[1].Entries)
	assert.Equal(t, formatter.Unassigned, data.Days[2].Entries[0].AgentName)
	require.NotNil(t, data.Result)
	assert.True(t, data.Result.OK)
}

func TestFormatCSV(t *testing.T) {
	output := formatter.FormatCSV(formatter.Report{
		Slots:  week(),
		Agents: agents,
		Result: &models.ValidationResult{Warnings: []string{"agent Bob is assigned to 2 slots"}},
	})

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Order,Day,Start,End,Agent ID,Agent", lines[0])
	assert.Equal(t, "1,Monday,09 AM,01 PM,a1,Alice", lines[1])
	assert.Equal(t, "2,Monday,01 PM,06 PM,b2,Bob", lines[2])
	assert.Equal(t, "3,Wednesday,09 AM,06 PM,,unassigned", lines[3])
	assert.Equal(t, "warning,agent Bob is assigned to 2 slots", lines[4])
}

func TestUnscheduledSlotsAreRendered(t *testing.T) {
	report := formatter.Report{
		Slots: []models.ShiftSlot{
			{ID: "s1", Day: models.Monday, Start: "09 AM", End: "01 PM", AgentID: "a1"},
			{ID: "s2", Start: "10 AM", End: "02 PM", AgentID: "b2"},
			{ID: "s3", Day: "Funday", Start: "11 AM", End: "03 PM"},
		},
		Agents: agents,
	}

	text := formatter.FormatText(report)
	assert.Contains(t, text, "unscheduled : 10 AM - 02 PM Bob; Funday 11 AM - 03 PM unassigned")

	var data formatter.WeekData
	require.NoError(t, json.Unmarshal([]byte(formatter.FormatJSON(report)), &data))
	require.Len(t, data.Days, 7)
	require.Len(t, data.Unscheduled, 2)
	assert.Equal(t, "s2", data.Unscheduled[0].ID)
	assert.Equal(t, "Funday", data.Unscheduled[1].Day)

	lines := strings.Split(strings.TrimSpace(formatter.FormatCSV(report)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "2,,10 AM,02 PM,b2,Bob", lines[2])
	assert.Equal(t, "3,Funday,11 AM,03 PM,,unassigned", lines[3])
}
