package feed

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/abelgeorge323/MIT-Candidates/internal/normalize"
	"github.com/abelgeorge323/MIT-Candidates/internal/roster"
)

// trackingRow is the rich per-candidate schema (variant 1) exported from the
// placement tracking sheet.
type trackingRow struct {
	Name         string `mapstructure:"mit name"`
	Week         string `mapstructure:"week"`
	StartDate    string `mapstructure:"start date"`
	TrainingSite string `mapstructure:"training site"`
	Location     string `mapstructure:"location"`
	Status       string `mapstructure:"status"`
	Vert         string `mapstructure:"vert"`
	Salary       string `mapstructure:"salary"`
	Level        string `mapstructure:"level"`
	Notes        string `mapstructure:"notes"`
}

// combinedRow is the simplified combined schema (variant 2) produced by the
// roster merge script.
type combinedRow struct {
	Name         string `mapstructure:"mit name"`
	Week         string `mapstructure:"week"`
	StartDate    string `mapstructure:"start date"`
	TrainingSite string `mapstructure:"training site"`
	Location     string `mapstructure:"location"`
	Status       string `mapstructure:"status"`
	Source       string `mapstructure:"source"`
}

// LoadTracking reads the variant-1 candidate feed. The week value is derived
// dynamically from the start date when one is present; records whose name
// normalizes to empty are dropped, as are the template rows the sheet
// carries.
func LoadTracking(path string, now time.Time) (*roster.Candidates, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if err := t.require("mit name"); err != nil {
		return nil, fmt.Errorf("tracking feed %s: %w", path, err)
	}

	out := &roster.Candidates{}
	for _, raw := range t.rows {
		var row trackingRow
		if err := decodeRow(raw, &row); err != nil {
			return nil, fmt.Errorf("tracking feed %s: %w", path, err)
		}

		if skipName(row.Name) {
			continue
		}

		start := normalize.Date(row.StartDate)
		week := roster.WeekSince(start, now)
		if !week.Known {
			week = roster.ParseWeek(row.Week)
		}

		out.Append(&roster.Candidate{
			Name:         row.Name,
			StartDate:    start,
			TrainingSite: row.TrainingSite,
			Location:     row.Location,
			Status:       row.Status,
			Week:         week,
			Vertical:     row.Vert,
			Salary:       normalize.Salary(row.Salary),
			Level:        row.Level,
			Notes:        row.Notes,
			Source:       roster.SourceTracking,
		})
	}
	return out, nil
}

// LoadCombined reads the variant-2 candidate feed. Week values are taken
// verbatim from the export; the Source column carries feed provenance.
func LoadCombined(path string) (*roster.Candidates, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if err := t.require("mit name"); err != nil {
		return nil, fmt.Errorf("combined feed %s: %w", path, err)
	}

	out := &roster.Candidates{}
	for _, raw := range t.rows {
		var row combinedRow
		if err := decodeRow(raw, &row); err != nil {
			return nil, fmt.Errorf("combined feed %s: %w", path, err)
		}

		if skipName(row.Name) {
			continue
		}

		out.Append(&roster.Candidate{
			Name:         row.Name,
			StartDate:    normalize.Date(row.StartDate),
			TrainingSite: row.TrainingSite,
			Location:     row.Location,
			Status:       row.Status,
			Week:         roster.ParseWeek(row.Week),
			Source:       row.Source,
		})
	}
	return out, nil
}

// skipName drops empty identities and the template/header rows the sheets
// repeat mid-file.
func skipName(name string) bool {
	if normalize.Key(name) == "" {
		return true
	}
	switch name {
	case "MIT Name", "New Candidate Name":
		return true
	}
	return false
}

// decodeRow maps a header-keyed row onto a variant struct.
func decodeRow(raw map[string]string, out any) error {
	cfg := &mapstructure.DecoderConfig{
		Result: out,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}
