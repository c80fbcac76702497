// Package score computes the deterministic 0-100 compatibility score between
// a candidate and an open requisition. Every cap and threshold was hand-tuned
// over several revisions of the rubric, so all of them are named
// configuration rather than literals.
package score

import (
	"strings"

	"github.com/abelgeorge323/MIT-Candidates/internal/normalize"
	"github.com/abelgeorge323/MIT-Candidates/internal/roster"
)

const maxTotal = 100

// Config exposes the scoring rubric knobs.
type Config struct {
	ReadinessCap int `mapstructure:"readiness-cap"`
	LocationCap  int `mapstructure:"location-cap"`
	VerticalCap  int `mapstructure:"vertical-cap"`
	SalaryCap    int `mapstructure:"salary-cap"`
	LevelCap     int `mapstructure:"level-cap"`

	// SalaryAware selects the salary-scoring variant of the rubric. When
	// false the salary component is skipped entirely and an unset
	// VerticalCap defaults to 20 instead of 15, so the vertical component
	// absorbs the salary points.
	SalaryAware bool `mapstructure:"salary-aware"`

	// InTraining tiers within the readiness component.
	WeekTierHigh int `mapstructure:"week-tier-high"` // >= => 30
	WeekTierMid  int `mapstructure:"week-tier-mid"`  // >= => 20

	// ReadyWeek gates the full level score for non-senior titles; SeniorWeek
	// gates it for senior ones.
	ReadyWeek  int `mapstructure:"ready-week"`
	SeniorWeek int `mapstructure:"senior-week"`

	// SalaryBreakpoint separates experienced from entry-level expectations.
	SalaryBreakpoint float64 `mapstructure:"salary-breakpoint"`

	// MajorStateMentions are matched as substrings of the candidate
	// location; MajorStates is the set a job state is compared against.
	MajorStateMentions []string `mapstructure:"major-state-mentions"`
	MajorStates        []string `mapstructure:"major-states"`

	// TopMatches is how many ranked jobs a report keeps per candidate.
	TopMatches int `mapstructure:"top-matches"`
}

// DefaultConfig returns the current production rubric (the salary-aware
// variant).
func DefaultConfig() Config {
	return Config{
		ReadinessCap:     40,
		LocationCap:      30,
		VerticalCap:      15,
		SalaryCap:        15,
		LevelCap:         10,
		SalaryAware:      true,
		WeekTierHigh:     4,
		WeekTierMid:      2,
		ReadyWeek:        6,
		SeniorWeek:       8,
		SalaryBreakpoint: 70000,
		MajorStateMentions: []string{
			"ca", "california", "ny", "new york", "tx", "texas",
			"il", "illinois", "mn", "minnesota",
		},
		MajorStates: []string{"ca", "ny", "tx", "il", "mn"},
		TopMatches:  3,
	}
}

// Breakdown carries the component subscores for explainability.
type Breakdown struct {
	Readiness int `json:"readiness"`
	Location  int `json:"location"`
	Vertical  int `json:"vertical"`
	Salary    int `json:"salary"`
	Level     int `json:"level"`
	Total     int `json:"total"`
}

// Scorer evaluates candidates against open requisitions.
type Scorer struct {
	cfg Config
}

// New creates a scorer. Unset knobs fall back to the default rubric field by
// field, so a partial config section overrides only the knobs it names and
// the SalaryAware switch is always honored.
func New(cfg Config) *Scorer {
	return &Scorer{cfg: cfg.withDefaults()}
}

// verticalWeightedCap is the vertical cap of the variant without a salary
// component.
const verticalWeightedCap = 20

func (cfg Config) withDefaults() Config {
	def := DefaultConfig()
	if cfg.ReadinessCap == 0 {
		cfg.ReadinessCap = def.ReadinessCap
	}
	if cfg.LocationCap == 0 {
		cfg.LocationCap = def.LocationCap
	}
	if cfg.VerticalCap == 0 {
		cfg.VerticalCap = def.VerticalCap
		if !cfg.SalaryAware {
			cfg.VerticalCap = verticalWeightedCap
		}
	}
	if cfg.SalaryCap == 0 {
		cfg.SalaryCap = def.SalaryCap
	}
	if cfg.LevelCap == 0 {
		cfg.LevelCap = def.LevelCap
	}
	if cfg.WeekTierHigh == 0 {
		cfg.WeekTierHigh = def.WeekTierHigh
	}
	if cfg.WeekTierMid == 0 {
		cfg.WeekTierMid = def.WeekTierMid
	}
	if cfg.ReadyWeek == 0 {
		cfg.ReadyWeek = def.ReadyWeek
	}
	if cfg.SeniorWeek == 0 {
		cfg.SeniorWeek = def.SeniorWeek
	}
	if cfg.SalaryBreakpoint == 0 {
		cfg.SalaryBreakpoint = def.SalaryBreakpoint
	}
	if cfg.MajorStateMentions == nil {
		cfg.MajorStateMentions = def.MajorStateMentions
	}
	if cfg.MajorStates == nil {
		cfg.MajorStates = def.MajorStates
	}
	// TopMatches stays as given: zero means "keep every match".
	return cfg
}

// Score computes the match score between a candidate and a job. Missing
// fields always degrade to the no-match branch of each rule; the function
// never fails.
func (s *Scorer) Score(c *roster.Candidate, j *roster.Job) Breakdown {
	b := Breakdown{
		Readiness: s.readinessScore(c),
		Location:  s.locationScore(c, j),
		Vertical:  s.verticalScore(c, j),
		Level:     s.levelScore(c, j),
	}
	if s.cfg.SalaryAware {
		b.Salary = s.salaryScore(c)
	}

	b.Total = b.Readiness + b.Location + b.Vertical + b.Salary + b.Level
	if b.Total > maxTotal {
		b.Total = maxTotal
	}
	return b
}

func (s *Scorer) readinessScore(c *roster.Candidate) int {
	week := 0
	if c.Week.Known && !c.Week.Future {
		week = c.Week.Weeks
	}

	switch c.Readiness {
	case roster.ReadyForPlacement:
		return s.cfg.ReadinessCap
	case roster.InTraining:
		switch {
		case week >= s.cfg.WeekTierHigh:
			return 30
		case week >= s.cfg.WeekTierMid:
			return 20
		default:
			return 10
		}
	case roster.OfferPending, roster.PlacedAtTraining:
		return 0
	default:
		// Started, starting and anything unrecognized share the base score.
		return 5
	}
}

func (s *Scorer) locationScore(c *roster.Candidate, j *roster.Job) int {
	location := strings.ToLower(normalize.CleanText(c.Location))
	city := strings.ToLower(normalize.CleanText(j.City))
	state := strings.ToLower(normalize.CleanText(j.State))

	candidateState := ""
	if i := strings.LastIndex(location, ","); i >= 0 {
		candidateState = strings.TrimSpace(location[i+1:])
	}

	switch {
	case city != "" && strings.Contains(location, city):
		return s.cfg.LocationCap
	case state != "" && state == candidateState:
		return 20
	case mentionsAny(location, s.cfg.MajorStateMentions):
		if contains(s.cfg.MajorStates, state) {
			return 15
		}
		return 8
	default:
		return 5
	}
}

func (s *Scorer) verticalScore(c *roster.Candidate, j *roster.Job) int {
	candidate := strings.ToLower(string(c.AssignedVertical))
	job := strings.ToLower(normalize.CleanText(j.Vertical))
	cap := s.cfg.VerticalCap

	switch {
	case candidate == job && candidate != "" && candidate != "unknown":
		return cap
	case relatedVerticals(candidate, job):
		return cap * 4 / 5
	case contains(commonVerticals, job):
		return cap / 2
	default:
		return cap / 4
	}
}

var commonVerticals = []string{"tech", "finance", "life science", "manufacturing"}

// relatedVerticals encodes the adjacent-industry pairs that still earn most
// of the vertical points.
func relatedVerticals(candidate, job string) bool {
	switch candidate {
	case "technology", "manufacturing":
		return job == "tech" || job == "manufacturing"
	case "life science":
		return job == "life science" || job == "manufacturing"
	case "finance":
		return job == "finance" || job == "tech"
	}
	return false
}

func (s *Scorer) salaryScore(c *roster.Candidate) int {
	if c.Salary <= 0 {
		return 3
	}
	if c.Salary >= s.cfg.SalaryBreakpoint {
		return 10 + 5
	}
	return 10 + 3
}

func (s *Scorer) levelScore(c *roster.Candidate, j *roster.Job) int {
	week := 0
	if c.Week.Known && !c.Week.Future {
		week = c.Week.Weeks
	}

	title := strings.ToLower(j.Title)
	if strings.Contains(title, "sr.") || strings.Contains(title, "senior") {
		if week >= s.cfg.SeniorWeek {
			return s.cfg.LevelCap
		}
		return 5
	}

	if week >= s.cfg.ReadyWeek {
		return s.cfg.LevelCap
	}
	return 7
}

func mentionsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
