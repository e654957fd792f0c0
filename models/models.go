package models

import "strings"

// Day is one of the seven weekday symbols a slot can be placed on.
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// Days lists the weekdays in calendar order. The index of a day is its ordinal.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Index returns the calendar ordinal of the day, or -1 if it is not a known weekday.
func (d Day) Index() int {
	for i, day := range Days {
		if day == d {
			return i
		}
	}
	return -1
}

// Short returns the three-letter abbreviation ("Mon") for known days and the raw value otherwise.
func (d Day) Short() string {
	if d.Index() < 0 || len(d) < 3 {
		return string(d)
	}
	return string(d[:3])
}

// ParseDay accepts full weekday names and three-letter abbreviations, case-insensitively.
func ParseDay(s string) (Day, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 3 {
		return "", false
	}
	for _, day := range Days {
		if strings.EqualFold(s, string(day)) || strings.EqualFold(s, string(day[:3])) {
			return day, true
		}
	}
	return "", false
}

// HourLabel is a 12-hour clock label such as "09 AM".
type HourLabel string

// HourLabels is the 24-hour cycle used to order shift start and end times.
// It starts at "01 AM" and wraps through "12 PM" to end on "12 AM".
var HourLabels = []HourLabel{
	"01 AM", "02 AM", "03 AM", "04 AM", "05 AM", "06 AM", "07 AM", "08 AM", "09 AM", "10 AM", "11 AM", "12 PM",
	"01 PM", "02 PM", "03 PM", "04 PM", "05 PM", "06 PM", "07 PM", "08 PM", "09 PM", "10 PM", "11 PM", "12 AM",
}

// Index returns the position of the label in HourLabels, or -1 if it is unknown.
func (h HourLabel) Index() int {
	for i, label := range HourLabels {
		if label == h {
			return i
		}
	}
	return -1
}

// ParseHourLabel normalises loose forms like "9AM", "9 am" or "09 AM" to the canonical label.
func ParseHourLabel(s string) (HourLabel, bool) {
	s = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if len(s) < 3 {
		return "", false
	}
	suffix := s[len(s)-2:]
	if suffix != "AM" && suffix != "PM" {
		return "", false
	}
	hour := s[:len(s)-2]
	if len(hour) == 1 {
		hour = "0" + hour
	}
	label := HourLabel(hour + " " + suffix)
	if label.Index() < 0 {
		return "", false
	}
	return label, true
}

// ShiftSlot is one scheduled shift entry. An empty field means the value is absent.
type ShiftSlot struct {
	ID      string    `json:"id" yaml:"id"`
	Order   int       `json:"order" yaml:"order"`
	Day     Day       `json:"day" yaml:"day"`
	Start   HourLabel `json:"start" yaml:"start"`
	End     HourLabel `json:"end" yaml:"end"`
	AgentID string    `json:"agent_id" yaml:"agent_id"`
}

// Missing returns the names of the absent fields in the order day, start, end, agent.
func (s ShiftSlot) Missing() []string {
	var missing []string
	if s.Day == "" {
		missing = append(missing, "day")
	}
	if s.Start == "" {
		missing = append(missing, "start")
	}
	if s.End == "" {
		missing = append(missing, "end")
	}
	if s.AgentID == "" {
		missing = append(missing, "agent")
	}
	return missing
}

// Complete reports whether day, start, end and agent are all present.
func (s ShiftSlot) Complete() bool {
	return len(s.Missing()) == 0
}

// Key identifies the time slot independent of who is assigned to it.
func (s ShiftSlot) Key() string {
	return string(s.Day) + "|" + string(s.Start) + "|" + string(s.End)
}

// TimeRange renders the slot's hours in the backend's "09 AM - 06 PM" form.
func (s ShiftSlot) TimeRange() string {
	return string(s.Start) + " - " + string(s.End)
}

// Agent is a counselor that can be assigned to slots.
type Agent struct {
	ID          string `json:"account_id" yaml:"id"`
	DisplayName string `json:"account_name" yaml:"name"`
}

// Directory maps agent ids to agents. It is read-only to consumers.
type Directory map[string]Agent

// NewDirectory indexes agents by id. Later duplicates replace earlier ones.
func NewDirectory(agents []Agent) Directory {
	dir := make(Directory, len(agents))
	for _, a := range agents {
		dir[a.ID] = a
	}
	return dir
}

// Lookup returns the agent with the given id, if known.
func (d Directory) Lookup(id string) (Agent, bool) {
	a, ok := d[id]
	return a, ok
}

// DisplayName resolves an agent's display name, falling back to the raw id.
func (d Directory) DisplayName(id string) string {
	if a, ok := d.Lookup(id); ok && a.DisplayName != "" {
		return a.DisplayName
	}
	return id
}

// ValidationResult is the verdict of a validation pass.
type ValidationResult struct {
	OK       bool     `json:"ok"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// HasWarnings reports whether the pass produced any non-fatal diagnostics.
func (r ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// RotationEntry is one position of the backend's counselor rotation.
type RotationEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Dirty bool   `json:"isDirty"`
}

// RotationStatus is the backend's view of who is on duty now and next.
type RotationStatus struct {
	Current  *RotationEntry `json:"currentCounselor"`
	Next     *RotationEntry `json:"nextCounselor"`
	Selected *RotationEntry `json:"selectedCounselor"`
}
