package score

import (
	"context"
	"testing"

	"github.com/abelgeorge323/MIT-Candidates/internal/roster"
)

func jobSet(items ...*roster.Job) *roster.Jobs {
	return &roster.Jobs{Items: items}
}

func TestRank(t *testing.T) {
	s := New(DefaultConfig())

	c := &roster.Candidate{
		Readiness:        roster.ReadyForPlacement,
		Week:             roster.Week{Weeks: 7, Known: true},
		Location:         "Minneapolis, MN",
		AssignedVertical: roster.Manufacturing,
		Salary:           60000,
	}
	jobs := jobSet(
		&roster.Job{ID: 1, Title: "Operations Manager", Account: "Acme", City: "Boise", State: "ID", Vertical: "hospitality"},
		&roster.Job{ID: 2, Title: "Plant Manager", Account: "3M", City: "Minneapolis", State: "MN", Vertical: "Manufacturing"},
		&roster.Job{ID: 3, Title: "Branch Manager", Account: "US Bank", City: "St. Paul", State: "MN", Vertical: "finance"},
	)

	ranked := s.Rank(c, jobs)
	if len(ranked) != 3 {
		t.Fatalf("every job must be ranked, got %d", len(ranked))
	}

	if ranked[0].JobID != 2 {
		t.Fatalf("best match must rank first, got job %d", ranked[0].JobID)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Fatalf("ranking not descending at %d: %d > %d", i, ranked[i].Score, ranked[i-1].Score)
		}
	}

	if ranked[0].Position != "Plant Manager - 3M" {
		t.Fatalf("wrong position label: %q", ranked[0].Position)
	}
	if ranked[0].Location != "Minneapolis, MN" {
		t.Fatalf("wrong location label: %q", ranked[0].Location)
	}
	if got := ranked[0].Breakdown; got.Total != ranked[0].Score {
		t.Fatalf("breakdown total must match the score: %+v", got)
	}
}

func TestRankTiesKeepJobOrder(t *testing.T) {
	s := New(DefaultConfig())

	c := &roster.Candidate{Readiness: roster.ReadyForPlacement}
	jobs := jobSet(
		&roster.Job{ID: 10, Title: "Operations Manager", Vertical: "hospitality"},
		&roster.Job{ID: 11, Title: "Shift Manager", Vertical: "hospitality"},
	)

	ranked := s.Rank(c, jobs)
	if ranked[0].Score != ranked[1].Score {
		t.Fatalf("setup: scores should tie, got %d and %d", ranked[0].Score, ranked[1].Score)
	}
	if ranked[0].JobID != 10 || ranked[1].JobID != 11 {
		t.Fatalf("tied jobs must keep feed order: %d, %d", ranked[0].JobID, ranked[1].JobID)
	}
}

func TestAll(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TopMatches = 2
	s := New(cfg)

	candidates := &roster.Candidates{}
	candidates.Append(
		&roster.Candidate{Name: "Jane Doe", Readiness: roster.ReadyForPlacement, Week: roster.Week{Weeks: 7, Known: true}},
		&roster.Candidate{Name: "Carlos Vega", Readiness: roster.InTraining, Week: roster.Week{Weeks: 3, Known: true}},
		&roster.Candidate{Name: "Priya Nair", Readiness: roster.StartingTraining, Week: roster.Week{Weeks: 2, Future: true, Known: true}},
	)
	jobs := jobSet(
		&roster.Job{ID: 1, Title: "Operations Manager", Vertical: "finance"},
		&roster.Job{ID: 2, Title: "Plant Manager", Vertical: "manufacturing"},
		&roster.Job{ID: 3, Title: "Branch Manager", Vertical: "tech"},
	)

	results, err := s.All(context.Background(), candidates, jobs)
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 3 {
		t.Fatalf("one result per candidate, got %d", len(results))
	}
	for i, want := range []string{"Jane Doe", "Carlos Vega", "Priya Nair"} {
		if results[i].Candidate != want {
			t.Fatalf("input order must be preserved: got %q at %d", results[i].Candidate, i)
		}
	}
	for _, r := range results {
		if len(r.Top) != 2 {
			t.Fatalf("top list must be capped at 2, got %d for %s", len(r.Top), r.Candidate)
		}
	}
	if results[2].Week != "-2 weeks from start" {
		t.Fatalf("week must render the future marker: %q", results[2].Week)
	}
}

func TestAllWithoutTopCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TopMatches = 0
	s := New(cfg)

	candidates := &roster.Candidates{}
	candidates.Append(&roster.Candidate{Name: "Jane Doe"})
	jobs := jobSet(
		&roster.Job{ID: 1, Title: "Operations Manager"},
		&roster.Job{ID: 2, Title: "Plant Manager"},
	)

	results, err := s.All(context.Background(), candidates, jobs)
	if err != nil {
		t.Fatal(err)
	}
	if len(results[0].Top) != 2 {
		t.Fatalf("zero cap must keep every match, got %d", len(results[0].Top))
	}
}
