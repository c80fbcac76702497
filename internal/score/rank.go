package score

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/abelgeorge323/MIT-Candidates/internal/roster"
)

// Ranked pairs a job with the score it earned for one candidate.
type Ranked struct {
	Job       *roster.Job `json:"-"`
	JobID     int64       `json:"jv_id"`
	Position  string      `json:"position"`
	Location  string      `json:"location"`
	Vertical  string      `json:"vertical"`
	Score     int         `json:"score"`
	Breakdown Breakdown   `json:"breakdown"`
}

// CandidateMatches is the ranked match list for one candidate.
type CandidateMatches struct {
	Candidate string           `json:"candidate"`
	Readiness roster.Readiness `json:"readiness"`
	Week      string           `json:"week"`
	Top       []Ranked         `json:"top_matches"`
}

// Rank scores the candidate against every job and returns the results in
// descending score order. Ties keep the input order of jobs.
func (s *Scorer) Rank(c *roster.Candidate, jobs *roster.Jobs) []Ranked {
	ranked := make([]Ranked, 0, jobs.Len())
	for _, j := range jobs.Items {
		b := s.Score(c, j)
		ranked = append(ranked, Ranked{
			Job:       j,
			JobID:     j.ID,
			Position:  j.Position(),
			Location:  j.LocationLabel(),
			Vertical:  j.Vertical,
			Score:     b.Total,
			Breakdown: b,
		})
	}

	sort.SliceStable(ranked, func(i, k int) bool {
		return ranked[i].Score > ranked[k].Score
	})
	return ranked
}

// All ranks every candidate against every job, keeping the top configured
// matches per candidate. Candidates are scored concurrently; the output
// preserves the input candidate order.
func (s *Scorer) All(ctx context.Context, candidates *roster.Candidates, jobs *roster.Jobs) ([]CandidateMatches, error) {
	results := make([]CandidateMatches, candidates.Len())

	g, _ := errgroup.WithContext(ctx)
	for i, c := range candidates.Items {
		i, c := i, c

		g.Go(func() error {
			ranked := s.Rank(c, jobs)
			top := s.cfg.TopMatches
			if top <= 0 || top > len(ranked) {
				top = len(ranked)
			}

			results[i] = CandidateMatches{
				Candidate: c.Name,
				Readiness: c.Readiness,
				Week:      c.Week.String(),
				Top:       ranked[:top],
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
