package feed

import (
	"fmt"
	"strings"

	"github.com/abelgeorge323/MIT-Candidates/internal/normalize"
	"github.com/abelgeorge323/MIT-Candidates/internal/roster"
)

// DefaultPrograms are the training-program values the reconciliation feed is
// filtered to.
var DefaultPrograms = []string{"MIT", "SMIT"}

// LoadActiveRoster reads the authoritative active-roster export used for
// reconciliation. Column names vary between exports, so they are detected by
// fragments; a missing name or program column is a configuration error. Rows
// outside the given training programs are dropped.
func LoadActiveRoster(path string, programs []string) (*roster.Candidates, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	nameCol := t.findColumn("trainee", "name")
	programCol := t.findColumn("training program")
	if nameCol == "" || programCol == "" {
		return nil, fmt.Errorf("active roster %s: %w: trainee name / training program", path, ErrMissingColumn)
	}
	startCol := t.findColumn("start", "date")
	siteCol := t.findColumn("site")

	if len(programs) == 0 {
		programs = DefaultPrograms
	}
	allowed := make(map[string]struct{}, len(programs))
	for _, p := range programs {
		allowed[strings.ToUpper(p)] = struct{}{}
	}

	out := &roster.Candidates{}
	for _, row := range t.rows {
		if _, ok := allowed[strings.ToUpper(row[programCol])]; !ok {
			continue
		}
		name := row[nameCol]
		if normalize.Key(name) == "" {
			continue
		}

		out.Append(&roster.Candidate{
			Name:         name,
			StartDate:    normalize.Date(row[startCol]),
			TrainingSite: row[siteCol],
			Program:      row[programCol],
			Source:       roster.SourceActiveRoster,
		})
	}
	return out, nil
}
