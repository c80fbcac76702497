package feed

import (
	"fmt"
	"strconv"

	"github.com/mitchellh/mapstructure"

	"github.com/abelgeorge323/MIT-Candidates/internal/normalize"
	"github.com/abelgeorge323/MIT-Candidates/internal/roster"
)

type jobRow struct {
	ID       string `mapstructure:"jv id"`
	Title    string `mapstructure:"job title"`
	Account  string `mapstructure:"account"`
	City     string `mapstructure:"city"`
	State    string `mapstructure:"state"`
	Vertical string `mapstructure:"vertical"`
	Notes    string `mapstructure:"notes"`
}

// LoadJobs reads the open-requisition feed. Rows without a numeric JV ID or
// an empty title are excluded before they reach the core.
func LoadJobs(path string) (*roster.Jobs, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if err := t.require("jv id", "job title"); err != nil {
		return nil, fmt.Errorf("jobs feed %s: %w", path, err)
	}

	out := &roster.Jobs{}
	for _, raw := range t.rows {
		var row jobRow
		cfg := &mapstructure.DecoderConfig{Result: &row}
		decoder, err := mapstructure.NewDecoder(cfg)
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(raw); err != nil {
			return nil, fmt.Errorf("jobs feed %s: %w", path, err)
		}

		if normalize.CleanText(row.Title) == "" {
			continue
		}
		id, err := strconv.ParseInt(normalize.CleanText(row.ID), 10, 64)
		if err != nil {
			// Header repeats and free-text section markers carry no ID.
			continue
		}

		out.Items = append(out.Items, &roster.Job{
			ID:       id,
			Title:    row.Title,
			Account:  row.Account,
			City:     row.City,
			State:    row.State,
			Vertical: row.Vertical,
			Notes:    row.Notes,
		})
	}
	return out, nil
}
