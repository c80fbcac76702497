// Package reconcile resolves "same candidate" across two differently shaped
// roster exports: an exact phase on normalized names, then a fuzzy phase
// whose candidate pairs must be corroborated by an independent signal (same
// start date or overlapping site) before they are trusted.
package reconcile

import (
	"context"
	"time"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abelgeorge323/MIT-Candidates/internal/normalize"
	"github.com/abelgeorge323/MIT-Candidates/internal/roster"
)

// DefaultThreshold is the minimum name similarity for a fuzzy candidate
// pair. Hand-tuned against real roster exports; overridable, not a business
// rule.
const DefaultThreshold = 0.78

// Confidence tags how a pair was established.
type Confidence string

const (
	Exact          Confidence = "exact"
	ConfirmedFuzzy Confidence = "confirmed-fuzzy"
	Possible       Confidence = "possible"
)

// Pair is one cross-source identity match with its corroborating evidence.
type Pair struct {
	AName      string     `json:"a_name"`
	BName      string     `json:"b_name"`
	Confidence Confidence `json:"confidence"`
	Similarity float64    `json:"similarity,omitempty"`
	SameDate   bool       `json:"same_date"`
	SameSite   bool       `json:"same_site"`

	// Original field values surfaced for manual review.
	AStartDate string `json:"a_start_date,omitempty"`
	BStartDate string `json:"b_start_date,omitempty"`
	ASite      string `json:"a_site,omitempty"`
	BSite      string `json:"b_site,omitempty"`
}

// MergedRecord is the canonical row for a matched pair. Side A is
// authoritative for identity and program fields; side B contributes the
// cross-reference columns.
type MergedRecord struct {
	Name         string `json:"name"`
	StartDate    string `json:"start_date,omitempty"`
	TrainingSite string `json:"training_site,omitempty"`
	Location     string `json:"location,omitempty"`
	Status       string `json:"status,omitempty"`
	Level        string `json:"level,omitempty"`
	Vertical     string `json:"vertical,omitempty"`
	Source       string `json:"source,omitempty"`

	CrossProgram   string `json:"cross_program,omitempty"`
	CrossStartDate string `json:"cross_start_date,omitempty"`
	CrossSite      string `json:"cross_site,omitempty"`
}

// Report partitions the two record sets after matching.
type Report struct {
	Exact          []Pair         `json:"exact"`
	ConfirmedFuzzy []Pair         `json:"confirmed_fuzzy"`
	Possible       []Pair         `json:"possible"`
	OnlyInA        []string       `json:"only_in_a"`
	OnlyInB        []string       `json:"only_in_b"`
	Merged         []MergedRecord `json:"merged"`

	a *roster.Candidates
	b *roster.Candidates
}

// Matcher reconciles candidate records across two sources.
type Matcher struct {
	threshold float64
	logger    *zap.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithThreshold overrides the fuzzy similarity threshold.
func WithThreshold(t float64) Option {
	return func(m *Matcher) {
		if t > 0 && t <= 1 {
			m.threshold = t
		}
	}
}

// New creates a matcher. A nil logger is replaced with a no-op one.
func New(logger *zap.Logger, opts ...Option) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Matcher{threshold: DefaultThreshold, logger: logger}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Similarity returns the difflib-style sequence ratio between two normalized
// names, in [0, 1].
func Similarity(a, b string) float64 {
	return float64(fuzzy.Ratio(a, b)) / 100
}

// Match partitions sets A and B into exact matches, corroborated fuzzy
// matches, possible matches held for manual review, and per-side residuals,
// and builds the merged canonical table for the trusted pairs.
func (m *Matcher) Match(ctx context.Context, a, b *roster.Candidates) (*Report, error) {
	report := &Report{a: a, b: b}

	aKeys := orderedKeys(a)
	bKeys := b.Keys()

	matched := make(map[string]struct{})
	var aResidual []string
	for _, k := range aKeys {
		if _, ok := bKeys[k]; ok {
			// Pairs carry the display names; the normalized key is an
			// internal detail.
			report.Exact = append(report.Exact, Pair{
				AName:      a.FindByKey(k).Name,
				BName:      b.FindByKey(k).Name,
				Confidence: Exact,
			})
			matched[k] = struct{}{}
			continue
		}
		aResidual = append(aResidual, k)
	}

	var bResidual []string
	for _, k := range orderedKeys(b) {
		if _, ok := matched[k]; !ok {
			bResidual = append(bResidual, k)
		}
	}

	pairs, err := m.similarityPairs(ctx, aResidual, bResidual)
	if err != nil {
		return nil, err
	}

	m.corroborate(report, pairs, aResidual, bResidual)
	m.merge(report)

	m.logger.Info("reconciliation finished",
		zap.Int("exact", len(report.Exact)),
		zap.Int("confirmed_fuzzy", len(report.ConfirmedFuzzy)),
		zap.Int("possible", len(report.Possible)),
		zap.Int("only_in_a", len(report.OnlyInA)),
		zap.Int("only_in_b", len(report.OnlyInB)),
	)

	return report, nil
}

type scoredPair struct {
	ai, bi     int
	similarity float64
}

// similarityPairs scores every residual A x B pair concurrently, then
// returns the pairs at or above the threshold in deterministic (A-major,
// B-minor) order so that first-corroborated-wins stays reproducible.
func (m *Matcher) similarityPairs(ctx context.Context, aResidual, bResidual []string) ([]scoredPair, error) {
	if len(aResidual) == 0 || len(bResidual) == 0 {
		return nil, nil
	}

	rows := make([][]scoredPair, len(aResidual))

	g, _ := errgroup.WithContext(ctx)
	for i, aName := range aResidual {
		i, aName := i, aName

		g.Go(func() error {
			for k, bName := range bResidual {
				sim := Similarity(aName, bName)
				if sim >= m.threshold {
					rows[i] = append(rows[i], scoredPair{ai: i, bi: k, similarity: sim})
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var pairs []scoredPair
	for _, row := range rows {
		pairs = append(pairs, row...)
	}
	return pairs, nil
}

// corroborate promotes fuzzy candidate pairs backed by a secondary signal
// and surfaces the rest for manual review. Matching is greedy per A name:
// the first corroborated pair in deterministic order wins.
func (m *Matcher) corroborate(report *Report, pairs []scoredPair, aResidual, bResidual []string) {
	confirmedA := make(map[string]struct{})
	usedB := make(map[string]struct{})

	for _, p := range pairs {
		aKey, bKey := aResidual[p.ai], bResidual[p.bi]
		if _, done := confirmedA[aKey]; done {
			continue
		}

		aRec := report.a.FindByKey(aKey)
		bRec := report.b.FindByKey(bKey)
		if aRec == nil || bRec == nil {
			continue
		}

		pair := Pair{
			AName:      aRec.Name,
			BName:      bRec.Name,
			Similarity: p.similarity,
			SameDate:   normalize.SameDay(aRec.StartDate, bRec.StartDate),
			SameSite:   normalize.SameSite(aRec.TrainingSite, bRec.TrainingSite),
			AStartDate: dateLabel(aRec.StartDate),
			BStartDate: dateLabel(bRec.StartDate),
			ASite:      aRec.TrainingSite,
			BSite:      bRec.TrainingSite,
		}

		if pair.SameDate || pair.SameSite {
			pair.Confidence = ConfirmedFuzzy
			report.ConfirmedFuzzy = append(report.ConfirmedFuzzy, pair)
			confirmedA[aKey] = struct{}{}
			usedB[bKey] = struct{}{}
			continue
		}

		pair.Confidence = Possible
		report.Possible = append(report.Possible, pair)
	}

	for _, k := range aResidual {
		if _, ok := confirmedA[k]; !ok {
			report.OnlyInA = append(report.OnlyInA, k)
		}
	}
	for _, k := range bResidual {
		if _, ok := usedB[k]; !ok {
			report.OnlyInB = append(report.OnlyInB, k)
		}
	}
}

// merge builds the canonical row for every trusted pair: exact matches
// first, then confirmed fuzzy ones.
func (m *Matcher) merge(report *Report) {
	for _, p := range report.Exact {
		report.appendMerged(normalize.Key(p.AName), normalize.Key(p.BName))
	}
	for _, p := range report.ConfirmedFuzzy {
		report.appendMerged(normalize.Key(p.AName), normalize.Key(p.BName))
	}
}

func (r *Report) appendMerged(aKey, bKey string) {
	aRec := r.a.FindByKey(aKey)
	bRec := r.b.FindByKey(bKey)
	if aRec == nil || bRec == nil {
		return
	}

	r.Merged = append(r.Merged, MergedRecord{
		Name:           aRec.Name,
		StartDate:      dateLabel(aRec.StartDate),
		TrainingSite:   aRec.TrainingSite,
		Location:       aRec.Location,
		Status:         aRec.Status,
		Level:          aRec.Level,
		Vertical:       aRec.Vertical,
		Source:         aRec.Source,
		CrossProgram:   bRec.Program,
		CrossStartDate: dateLabel(bRec.StartDate),
		CrossSite:      bRec.TrainingSite,
	})
}

// Promote confirms a possible pair after manual review, moving it to the
// confirmed partition and extending the merged table. It returns false when
// the pair is not in the review list.
func (r *Report) Promote(aName, bName string) bool {
	for i, p := range r.Possible {
		if p.AName != aName || p.BName != bName {
			continue
		}

		p.Confidence = ConfirmedFuzzy
		r.ConfirmedFuzzy = append(r.ConfirmedFuzzy, p)
		r.Possible = append(r.Possible[:i], r.Possible[i+1:]...)

		r.appendMerged(normalize.Key(aName), normalize.Key(bName))
		r.dropResiduals(normalize.Key(aName), normalize.Key(bName))
		return true
	}
	return false
}

func (r *Report) dropResiduals(aKey, bKey string) {
	r.OnlyInA = remove(r.OnlyInA, aKey)
	r.OnlyInB = remove(r.OnlyInB, bKey)
}

func remove(list []string, v string) []string {
	for i, item := range list {
		if item == v {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// orderedKeys returns the normalized keys of a set in first-seen order,
// without duplicates or empties.
func orderedKeys(cs *roster.Candidates) []string {
	seen := make(map[string]struct{}, cs.Len())
	keys := make([]string, 0, cs.Len())
	for _, c := range cs.Items {
		k := c.Key()
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

func dateLabel(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("01/02/2006")
}
