// Package roster holds the canonical in-memory records the engine operates
// on: training candidates, open job requisitions and their collections. All
// records are immutable snapshots for one processing run; derived fields
// (Readiness, AssignedVertical) are recomputed every run.
package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abelgeorge323/MIT-Candidates/internal/normalize"
)

// Readiness is the categorical training stage derived for a candidate.
type Readiness string

const (
	ReadyForPlacement  Readiness = "Ready for Placement"
	InTraining         Readiness = "In Training"
	StartedTraining    Readiness = "Started MIT Training"
	StartingTraining   Readiness = "Starting MIT Training"
	OfferPending       Readiness = "Offer Pending"
	PositionIdentified Readiness = "Position Identified"
	PlacedAtTraining   Readiness = "Placed at Training Site"
	NewStart           Readiness = "New Start"
)

// Well-known source tags. Source is free text at merge time but every record
// carries exactly one.
const (
	SourceTracking      = "Tracking"
	SourceActiveRoster  = "Active Roster"
	SourceOfferAccepted = "Offer Accepted"
)

// Candidate is one MIT trainee record as delivered by an upstream feed.
type Candidate struct {
	Name         string     `json:"name"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	TrainingSite string     `json:"training_site,omitempty"`
	Location     string     `json:"location,omitempty"`
	Status       string     `json:"status,omitempty"`
	Week         Week       `json:"week"`
	Vertical     string     `json:"vertical,omitempty"` // raw feed code or label
	Salary       float64    `json:"salary,omitempty"`   // <= 0 means unknown
	Level        string     `json:"level,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	Program      string     `json:"program,omitempty"` // active-roster feeds only
	Source       string     `json:"source"`

	// Derived, populated by the enrichment pipeline.
	Readiness        Readiness `json:"readiness,omitempty"`
	AssignedVertical Vertical  `json:"assigned_vertical,omitempty"`
}

// Key returns the normalized identity key for the candidate.
func (c *Candidate) Key() string {
	return normalize.Key(c.Name)
}

// Candidates is an ordered collection of candidate records.
type Candidates struct {
	Items []*Candidate
}

func (cs *Candidates) Len() int {
	return len(cs.Items)
}

func (cs *Candidates) Append(items ...*Candidate) {
	cs.Items = append(cs.Items, items...)
}

// Names returns the display names of all candidates, in order.
func (cs *Candidates) Names() []string {
	names := make([]string, 0, len(cs.Items))
	for _, c := range cs.Items {
		names = append(names, c.Name)
	}
	return names
}

// Keys returns the set of normalized identity keys. Empty keys are skipped.
func (cs *Candidates) Keys() map[string]struct{} {
	keys := make(map[string]struct{}, len(cs.Items))
	for _, c := range cs.Items {
		if k := c.Key(); k != "" {
			keys[k] = struct{}{}
		}
	}
	return keys
}

// FindByKey returns the first candidate whose normalized name equals key.
func (cs *Candidates) FindByKey(key string) *Candidate {
	for _, c := range cs.Items {
		if c.Key() == key {
			return c
		}
	}
	return nil
}

// FilterByReadiness returns candidates at the given stage, preserving order.
func (cs *Candidates) FilterByReadiness(stage Readiness) *Candidates {
	out := &Candidates{}
	for _, c := range cs.Items {
		if c.Readiness == stage {
			out.Items = append(out.Items, c)
		}
	}
	return out
}

// FilterBySource returns candidates carrying the given provenance tag.
func (cs *Candidates) FilterBySource(source string) *Candidates {
	out := &Candidates{}
	for _, c := range cs.Items {
		if c.Source == source {
			out.Items = append(out.Items, c)
		}
	}
	return out
}

// CountByReadiness tallies candidates per derived stage.
func (cs *Candidates) CountByReadiness() map[Readiness]int {
	counts := make(map[Readiness]int)
	for _, c := range cs.Items {
		counts[c.Readiness]++
	}
	return counts
}

// DumpToTmpFile writes the collection as indented JSON to a temp file and
// returns its name.
func (cs *Candidates) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "candidates_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cs); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// Week is the elapsed-weeks value of a candidate: either a week count for a
// started candidate or a "weeks until start" marker for a future start date.
type Week struct {
	Weeks  int  `json:"weeks"`
	Future bool `json:"future,omitempty"`
	Known  bool `json:"known"`
}

// ParseWeek coerces a raw week cell. Integers (including float-formatted
// ones) become a known week count; the "-N weeks from start" marker exported
// for future starts becomes a future week. Anything else is unknown.
func ParseWeek(s string) Week {
	s = normalize.CleanText(s)
	if s == "" {
		return Week{}
	}

	if strings.Contains(strings.ToLower(s), "from start") {
		n, _ := normalize.Int(strings.Trim(strings.Fields(s)[0], "-"))
		return Week{Weeks: n, Future: true, Known: true}
	}

	if n, ok := normalize.Int(s); ok {
		return Week{Weeks: n, Known: true}
	}
	return Week{}
}

// WeekSince derives the week value dynamically from a start date: weeks
// elapsed rounded down, or a future marker when the start date is ahead of
// now. A missing start date yields an unknown week.
func WeekSince(start *time.Time, now time.Time) Week {
	if start == nil {
		return Week{}
	}
	if start.After(now) {
		days := int(start.Sub(now).Hours() / 24)
		return Week{Weeks: days / 7, Future: true, Known: true}
	}
	days := int(now.Sub(*start).Hours() / 24)
	return Week{Weeks: days / 7, Known: true}
}

// String renders the week the way the upstream exports do.
func (w Week) String() string {
	if !w.Known {
		return "N/A"
	}
	if w.Future {
		return fmt.Sprintf("-%d weeks from start", w.Weeks)
	}
	return fmt.Sprintf("%d", w.Weeks)
}
