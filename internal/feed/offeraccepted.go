package feed

import (
	"fmt"

	"github.com/abelgeorge323/MIT-Candidates/internal/normalize"
	"github.com/abelgeorge323/MIT-Candidates/internal/roster"
)

// LoadOfferAccepted reads the accepted-offer extract cut out of the open
// requisitions section. Its columns are detected by fragments like the
// active roster's; every row represents a candidate at week zero with an
// accepted offer, so week, status and source are fixed rather than read.
func LoadOfferAccepted(path string) (*roster.Candidates, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	nameCol := t.findColumn("candidate", "name")
	if nameCol == "" {
		return nil, fmt.Errorf("offer-accepted feed %s: %w: candidate name", path, ErrMissingColumn)
	}
	startCol := t.findColumn("start", "date")
	siteCol := t.findColumn("training", "site")
	locationCol := t.findColumn("location")
	levelCol := t.findColumn("level")

	out := &roster.Candidates{}
	for _, row := range t.rows {
		name := row[nameCol]
		if skipName(name) {
			continue
		}

		out.Append(&roster.Candidate{
			Name:         name,
			StartDate:    normalize.Date(row[startCol]),
			TrainingSite: row[siteCol],
			Location:     row[locationCol],
			Level:        row[levelCol],
			Status:       "Offer Accepted",
			Week:         roster.Week{Weeks: 0, Known: true},
			Source:       roster.SourceOfferAccepted,
		})
	}
	return out, nil
}
