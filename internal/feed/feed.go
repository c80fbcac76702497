// Package feed adapts already-exported CSV roster files into canonical
// records. Each upstream schema variant has its own adapter; a missing
// required column is a fatal configuration error, while bad cell values
// silently degrade to missing fields.
package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/abelgeorge323/MIT-Candidates/internal/normalize"
)

// ErrMissingColumn marks a feed whose header lacks a required column. The
// run must not proceed on a partial column set.
var ErrMissingColumn = errors.New("required column missing")

// table is a parsed CSV file: cleaned header names mapped per row.
type table struct {
	headers []string
	rows    []map[string]string
}

// readTable loads a CSV export into header-keyed rows. Header names are
// whitespace-cleaned and lowercased so the trailing-space and casing quirks
// of hand-maintained spreadsheets do not leak into the adapters.
func readTable(path string) (*table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening feed: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading feed %s: %w", path, err)
	}
	if len(records) == 0 {
		return &table{}, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.ToLower(normalize.CleanText(h))
	}

	t := &table{headers: headers}
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		empty := true
		for i, h := range headers {
			if i >= len(record) {
				break
			}
			v := normalize.CleanText(record[i])
			row[h] = v
			if v != "" {
				empty = false
			}
		}
		if !empty {
			t.rows = append(t.rows, row)
		}
	}
	return t, nil
}

// require verifies the header carries every listed column.
func (t *table) require(columns ...string) error {
	for _, col := range columns {
		if !t.hasColumn(col) {
			return fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}
	return nil
}

func (t *table) hasColumn(name string) bool {
	for _, h := range t.headers {
		if h == name {
			return true
		}
	}
	return false
}

// findColumn locates the first header containing every fragment, mirroring
// the loose column detection the upstream exports need.
func (t *table) findColumn(fragments ...string) string {
	for _, h := range t.headers {
		all := true
		for _, f := range fragments {
			if !strings.Contains(h, f) {
				all = false
				break
			}
		}
		if all {
			return h
		}
	}
	return ""
}
