package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"shift-scheduler/errors"
	"shift-scheduler/metrics"
	"shift-scheduler/models"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTimeRange is assumed for backend orders that carry no time.
const DefaultTimeRange = "09 AM - 06 PM"

// Document is the YAML layout accepted by ParseYAML.
type Document struct {
	Agents []models.Agent     `yaml:"agents"`
	Slots  []models.ShiftSlot `yaml:"slots"`
}

// Parse reads slot records from CSV data.
// Each record is "day, start, end, agent_id" with an optional fifth "id" column.
// Lines starting with '#' are comments. Blank fields are kept as absent values so
// that validation can report them. Days such as "Mon" and hours such as "9AM" are
// normalised when recognised and kept verbatim otherwise.
// Records without an id get a positional one ("row-3").
func Parse(r io.Reader) ([]models.ShiftSlot, error) {
	reader := newReader(r)
	var slots []models.ShiftSlot

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			metrics.ParserErrorsTotal.WithLabelValues("read").Inc()
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		if isComment(record) {
			continue
		}
		lineNum, _ := reader.FieldPos(0)

		if len(record) != 4 && len(record) != 5 {
			metrics.ParserErrorsTotal.WithLabelValues("field_count").Inc()
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    errors.ErrInvalidFieldCount,
			}
		}

		slot := models.ShiftSlot{
			Day:     normaliseDay(record[0]),
			Start:   normaliseHour(record[1]),
			End:     normaliseHour(record[2]),
			AgentID: strings.TrimSpace(record[3]),
			Order:   len(slots) + 1,
		}
		if len(record) == 5 {
			slot.ID = strings.TrimSpace(record[4])
		}
		if slot.ID == "" {
			slot.ID = fmt.Sprintf("row-%d", lineNum)
		}

		metrics.ParserRecordsTotal.Inc()
		slots = append(slots, slot)
	}

	return slots, nil
}

// ParseAgents reads "id, name" records from CSV data.
func ParseAgents(r io.Reader) ([]models.Agent, error) {
	reader := newReader(r)
	var agents []models.Agent

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			metrics.ParserErrorsTotal.WithLabelValues("read").Inc()
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		if isComment(record) {
			continue
		}
		lineNum, _ := reader.FieldPos(0)

		if len(record) != 2 {
			metrics.ParserErrorsTotal.WithLabelValues("field_count").Inc()
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    errors.ErrInvalidFieldCount,
			}
		}

		id := strings.TrimSpace(record[0])
		if id == "" {
			metrics.ParserErrorsTotal.WithLabelValues("empty_record").Inc()
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    errors.ErrEmptyRecord,
			}
		}

		metrics.ParserRecordsTotal.Inc()
		agents = append(agents, models.Agent{ID: id, DisplayName: strings.TrimSpace(record[1])})
	}

	return agents, nil
}

// ParseYAML reads a document with "agents" and "slots" lists.
// Day and hour values go through the same normalisation as Parse.
func ParseYAML(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		metrics.ParserErrorsTotal.WithLabelValues("yaml").Inc()
		return nil, fmt.Errorf("error decoding YAML: %w", err)
	}

	for i := range doc.Slots {
		s := &doc.Slots[i]
		s.Day = normaliseDay(string(s.Day))
		s.Start = normaliseHour(string(s.Start))
		s.End = normaliseHour(string(s.End))
		if s.Order == 0 {
			s.Order = i + 1
		}
		if s.ID == "" {
			s.ID = fmt.Sprintf("row-%d", i+1)
		}
	}
	metrics.ParserRecordsTotal.Add(float64(len(doc.Slots) + len(doc.Agents)))
	return &doc, nil
}

// ParseTimeRange splits a backend time string such as "09 AM - 06 PM".
// An empty value yields DefaultTimeRange and a missing half takes its default
// ("10 AM" becomes 10 AM - 06 PM). Unrecognised labels are kept verbatim so
// the slot still loads and can be corrected in the editor.
func ParseTimeRange(s string) (models.HourLabel, models.HourLabel) {
	if strings.TrimSpace(s) == "" {
		s = DefaultTimeRange
	}
	defStart, defEnd, _ := strings.Cut(DefaultTimeRange, " - ")

	startRaw, endRaw, _ := strings.Cut(s, " - ")
	if strings.TrimSpace(startRaw) == "" {
		startRaw = defStart
	}
	if strings.TrimSpace(endRaw) == "" {
		endRaw = defEnd
	}
	return normaliseHour(startRaw), normaliseHour(endRaw)
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	return reader
}

func isComment(record []string) bool {
	return len(record) > 0 && strings.HasPrefix(strings.TrimSpace(record[0]), "#")
}

func normaliseDay(s string) models.Day {
	if day, ok := models.ParseDay(s); ok {
		return day
	}
	return models.Day(strings.TrimSpace(s))
}

func normaliseHour(s string) models.HourLabel {
	if label, ok := models.ParseHourLabel(s); ok {
		return label
	}
	return models.HourLabel(strings.TrimSpace(s))
}
