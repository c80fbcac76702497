package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/abelgeorge323/MIT-Candidates/internal/normalize"
	"github.com/abelgeorge323/MIT-Candidates/internal/roster"
)

func sets(items ...*roster.Candidate) *roster.Candidates {
	cs := &roster.Candidates{}
	cs.Append(items...)
	return cs
}

func date(t *testing.T, s string) *time.Time {
	t.Helper()
	d := normalize.Date(s)
	if d == nil {
		t.Fatalf("bad test date %q", s)
	}
	return d
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("jane doe", "jane doe"); got != 1 {
		t.Fatalf("identical names should be 1.0, got %v", got)
	}
	if got := Similarity("jon smith", "john smith"); got < DefaultThreshold {
		t.Fatalf("near-identical names should clear the threshold, got %v", got)
	}
	if got := Similarity("jon smith", "maria garcia"); got >= DefaultThreshold {
		t.Fatalf("unrelated names should stay below the threshold, got %v", got)
	}
}

func TestMatchExact(t *testing.T) {
	a := sets(&roster.Candidate{
		Name:         "Jane Doe",
		StartDate:    date(t, "09/01/2025"),
		TrainingSite: "Delta - ATL",
		Location:     "Atlanta, GA",
		Status:       "Training",
		Level:        "L2",
		Vertical:     "AVI",
		Source:       roster.SourceTracking,
	})
	b := sets(&roster.Candidate{
		Name:         "jane doe",
		StartDate:    date(t, "09/15/2025"),
		TrainingSite: "ATL",
		Program:      "MIT",
	})

	report, err := New(nil).Match(context.Background(), a, b)
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Exact) != 1 {
		t.Fatalf("expected one exact pair, got %d", len(report.Exact))
	}
	if report.Exact[0].Confidence != Exact {
		t.Fatalf("wrong confidence: %s", report.Exact[0].Confidence)
	}
	if report.Exact[0].AName != "Jane Doe" || report.Exact[0].BName != "jane doe" {
		t.Fatalf("exact pairs must carry the display names of each side: %+v", report.Exact[0])
	}
	if len(report.OnlyInA) != 0 || len(report.OnlyInB) != 0 {
		t.Fatalf("exact match must leave no residuals: %v %v", report.OnlyInA, report.OnlyInB)
	}

	if len(report.Merged) != 1 {
		t.Fatalf("expected one merged record, got %d", len(report.Merged))
	}
	m := report.Merged[0]
	if m.Name != "Jane Doe" || m.StartDate != "09/01/2025" || m.TrainingSite != "Delta - ATL" {
		t.Fatalf("merged record must keep side A fields: %+v", m)
	}
	if m.CrossProgram != "MIT" || m.CrossStartDate != "09/15/2025" || m.CrossSite != "ATL" {
		t.Fatalf("merged record must carry side B cross-reference fields: %+v", m)
	}
}

func TestMatchFuzzyConfirmedBySameDate(t *testing.T) {
	a := sets(&roster.Candidate{Name: "Jon Smith", StartDate: date(t, "2025-09-08")})
	b := sets(&roster.Candidate{Name: "John Smith", StartDate: date(t, "09/08/2025")})

	report, err := New(nil).Match(context.Background(), a, b)
	if err != nil {
		t.Fatal(err)
	}

	if len(report.ConfirmedFuzzy) != 1 {
		t.Fatalf("expected one confirmed fuzzy pair, got %+v", report)
	}
	p := report.ConfirmedFuzzy[0]
	if p.AName != "Jon Smith" || p.BName != "John Smith" {
		t.Fatalf("wrong pair: %+v", p)
	}
	if !p.SameDate || p.SameSite {
		t.Fatalf("corroboration flags wrong: %+v", p)
	}
	if p.Similarity < DefaultThreshold {
		t.Fatalf("similarity should be recorded at or above threshold, got %v", p.Similarity)
	}
	if len(report.Merged) != 1 {
		t.Fatalf("confirmed pair must be merged, got %d records", len(report.Merged))
	}
	if len(report.OnlyInA) != 0 || len(report.OnlyInB) != 0 {
		t.Fatalf("confirmed pair must leave no residuals: %v %v", report.OnlyInA, report.OnlyInB)
	}
}

func TestMatchFuzzyConfirmedBySite(t *testing.T) {
	a := sets(&roster.Candidate{Name: "Jon Smith", TrainingSite: "Delta Air Lines - ATL"})
	b := sets(&roster.Candidate{Name: "John Smith", TrainingSite: "ATL"})

	report, err := New(nil).Match(context.Background(), a, b)
	if err != nil {
		t.Fatal(err)
	}

	if len(report.ConfirmedFuzzy) != 1 {
		t.Fatalf("expected one confirmed fuzzy pair, got %+v", report)
	}
	p := report.ConfirmedFuzzy[0]
	if p.SameDate || !p.SameSite {
		t.Fatalf("corroboration flags wrong: %+v", p)
	}
}

func TestMatchPossibleWithoutCorroboration(t *testing.T) {
	a := sets(&roster.Candidate{Name: "Jon Smith", StartDate: date(t, "09/01/2025"), TrainingSite: "Boeing - Everett"})
	b := sets(&roster.Candidate{Name: "John Smith", StartDate: date(t, "10/01/2025"), TrainingSite: "Delta - ATL"})

	report, err := New(nil).Match(context.Background(), a, b)
	if err != nil {
		t.Fatal(err)
	}

	if len(report.ConfirmedFuzzy) != 0 {
		t.Fatalf("pair without corroboration must not be confirmed: %+v", report.ConfirmedFuzzy)
	}
	if len(report.Possible) != 1 {
		t.Fatalf("expected one possible pair, got %d", len(report.Possible))
	}
	p := report.Possible[0]
	if p.Confidence != Possible || p.SameDate || p.SameSite {
		t.Fatalf("wrong possible pair: %+v", p)
	}
	if p.AStartDate != "09/01/2025" || p.BStartDate != "10/01/2025" {
		t.Fatalf("review fields missing: %+v", p)
	}

	// Both sides stay residual until a reviewer decides.
	if len(report.OnlyInA) != 1 || len(report.OnlyInB) != 1 {
		t.Fatalf("possible pair must keep both residuals: %v %v", report.OnlyInA, report.OnlyInB)
	}
	if len(report.Merged) != 0 {
		t.Fatalf("possible pair must not be merged: %+v", report.Merged)
	}
}

func TestMatchResiduals(t *testing.T) {
	a := sets(
		&roster.Candidate{Name: "Jane Doe"},
		&roster.Candidate{Name: "Carlos Vega"},
	)
	b := sets(
		&roster.Candidate{Name: "Jane Doe"},
		&roster.Candidate{Name: "Priya Nair"},
	)

	report, err := New(nil).Match(context.Background(), a, b)
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Exact) != 1 {
		t.Fatalf("expected one exact pair, got %d", len(report.Exact))
	}
	if len(report.OnlyInA) != 1 || report.OnlyInA[0] != "carlos vega" {
		t.Fatalf("wrong A residuals: %v", report.OnlyInA)
	}
	if len(report.OnlyInB) != 1 || report.OnlyInB[0] != "priya nair" {
		t.Fatalf("wrong B residuals: %v", report.OnlyInB)
	}
}

func TestMatchGreedyFirstCorroboratedWins(t *testing.T) {
	start := date(t, "09/01/2025")
	a := sets(&roster.Candidate{Name: "Jon Smith", StartDate: start})
	b := sets(
		&roster.Candidate{Name: "John Smith", StartDate: start},
		&roster.Candidate{Name: "Jonn Smith", StartDate: start},
	)

	report, err := New(nil).Match(context.Background(), a, b)
	if err != nil {
		t.Fatal(err)
	}

	if len(report.ConfirmedFuzzy) != 1 {
		t.Fatalf("one A record can confirm at most one pair, got %d", len(report.ConfirmedFuzzy))
	}
	if got := report.ConfirmedFuzzy[0].BName; got != "John Smith" {
		t.Fatalf("first corroborated pair in order must win, got %q", got)
	}
	if len(report.OnlyInB) != 1 || report.OnlyInB[0] != "jonn smith" {
		t.Fatalf("losing B record stays residual: %v", report.OnlyInB)
	}
}

func TestPromote(t *testing.T) {
	a := sets(&roster.Candidate{Name: "Jon Smith", Location: "Dallas, TX", Source: roster.SourceTracking})
	b := sets(&roster.Candidate{Name: "John Smith", Program: "SMIT"})

	report, err := New(nil).Match(context.Background(), a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Possible) != 1 {
		t.Fatalf("setup: expected one possible pair, got %d", len(report.Possible))
	}

	if report.Promote("Jon Smith", "Nobody") {
		t.Fatal("promoting an unknown pair must fail")
	}

	if !report.Promote("Jon Smith", "John Smith") {
		t.Fatal("promoting the reviewed pair must succeed")
	}
	if len(report.Possible) != 0 {
		t.Fatalf("promoted pair must leave the review list: %+v", report.Possible)
	}
	if len(report.ConfirmedFuzzy) != 1 || report.ConfirmedFuzzy[0].Confidence != ConfirmedFuzzy {
		t.Fatalf("promoted pair must be confirmed: %+v", report.ConfirmedFuzzy)
	}
	if len(report.Merged) != 1 || report.Merged[0].CrossProgram != "SMIT" {
		t.Fatalf("promoted pair must be merged with cross fields: %+v", report.Merged)
	}
	if len(report.OnlyInA) != 0 || len(report.OnlyInB) != 0 {
		t.Fatalf("promotion must clear residuals: %v %v", report.OnlyInA, report.OnlyInB)
	}
}

func TestWithThreshold(t *testing.T) {
	a := sets(&roster.Candidate{Name: "Jon Smith"})
	b := sets(&roster.Candidate{Name: "John Smith"})

	// A threshold above the pair's similarity suppresses the fuzzy phase.
	report, err := New(nil, WithThreshold(0.99)).Match(context.Background(), a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Possible) != 0 {
		t.Fatalf("pair below threshold must not surface: %+v", report.Possible)
	}

	// Out-of-range values are ignored and the default applies.
	m := New(nil, WithThreshold(0), WithThreshold(1.5))
	if m.threshold != DefaultThreshold {
		t.Fatalf("invalid thresholds must keep the default, got %v", m.threshold)
	}
}
