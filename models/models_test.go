package models_test

import (
	"shift-scheduler/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrdinalTables(t *testing.T) {
	assert.Len(t, models.Days, 7)
	assert.Len(t, models.HourLabels, 24)
	assert.Equal(t, 0, models.Monday.Index())
	assert.Equal(t, 6, models.Sunday.Index())
	assert.Equal(t, -1, models.Day("Funday").Index())
	assert.Equal(t, models.HourLabel("01 AM"), models.HourLabels[0])
	assert.Equal(t, models.HourLabel("12 PM"), models.HourLabels[11])
	assert.Equal(t, models.HourLabel("12 AM"), models.HourLabels[23])
	assert.Equal(t, 8, models.HourLabel("09 AM").Index())
	assert.Equal(t, -1, models.HourLabel("13 PM").Index())
}

func TestParseDay(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected models.Day
		ok       bool
	}{
		"FullName":     {input: "Monday", expected: models.Monday, ok: true},
		"Abbreviation": {input: "wed", expected: models.Wednesday, ok: true},
		"Padded":       {input: "  Sun ", expected: models.Sunday, ok: true},
		"Unknown":      {input: "Someday", ok: false},
		"TooShort":     {input: "Mo", ok: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			day, ok := models.ParseDay(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, day)
		})
	}
}

func TestParseHourLabel(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected models.HourLabel
		ok       bool
	}{
		"Canonical":  {input: "09 AM", expected: "09 AM", ok: true},
		"Compact":    {input: "9AM", expected: "09 AM", ok: true},
		"LowerCase":  {input: "5 pm", expected: "05 PM", ok: true},
		"Noon":       {input: "12PM", expected: "12 PM", ok: true},
		"BadHour":    {input: "13 PM", ok: false},
		"NoSuffix":   {input: "09", ok: false},
		"Minutes":    {input: "9:30AM", ok: false},
		"EmptyValue": {input: "", ok: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			label, ok := models.ParseHourLabel(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, label)
		})
	}
}

func TestShiftSlot(t *testing.T) {
	s := models.ShiftSlot{Day: models.Monday, Start: "09 AM", End: "06 PM", AgentID: "a1"}
	assert.True(t, s.Complete())
	assert.Empty(t, s.Missing())
	assert.Equal(t, "09 AM - 06 PM", s.TimeRange())
	assert.Equal(t, "Mon", s.Day.Short())

	blank := models.ShiftSlot{ID: "x"}
	assert.False(t, blank.Complete())
	assert.Equal(t, []string{"day", "start", "end", "agent"}, blank.Missing())
	assert.NotEqual(t, s.Key(), blank.Key())

	other := s
	other.AgentID = "b2"
	assert.Equal(t, s.Key(), other.Key(), "key ignores the agent")
}

func TestDirectory(t *testing.T) {
	dir := models.NewDirectory([]models.Agent{
		{ID: "a1", DisplayName: "Alice"},
		{ID: "b2"},
	})

	a, ok := dir.Lookup("a1")
	assert.True(t, ok)
	assert.Equal(t, "Alice", a.DisplayName)

	_, ok = dir.Lookup("zz")
	assert.False(t, ok)

	assert.Equal(t, "Alice", dir.DisplayName("a1"))
	assert.Equal(t, "b2", dir.DisplayName("b2"), "blank name falls back to id")
	assert.Equal(t, "zz", dir.DisplayName("zz"))

	var empty models.Directory
	assert.Equal(t, "a1", empty.DisplayName("a1"))
}
